package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/poofware/contractor-access-service/internal/models"
	"github.com/poofware/contractor-access-service/internal/repositories"
	"github.com/poofware/contractor-access-service/internal/utils"
)

var (
	seedBuildingAID = uuid.MustParse("aaaaaaaa-0000-4000-8000-00000000000a")
	seedBuildingBID = uuid.MustParse("aaaaaaaa-0000-4000-8000-00000000000b")
)

type seedBuilding struct {
	id           uuid.UUID
	name, code   string
	instructions string
	north, south []string
	pin          string
}

var seedBuildings = []seedBuilding{
	{
		id:           seedBuildingAID,
		name:         "Building A",
		code:         "A",
		instructions: "Lockbox is mounted beside the north entrance.",
		north:        []string{"A1A", "A1B", "A2A", "A2B"},
		south:        []string{"A1C", "A1D", "A2C", "A2D"},
		pin:          "1379",
	},
	{
		id:           seedBuildingBID,
		name:         "Building B",
		code:         "B",
		instructions: "Lockbox is left of the south stairwell.",
		north:        []string{"B1A", "B1B", "B2A", "B2B"},
		south:        []string{"B1G", "B1H", "B2G", "B2H"},
		pin:          "4821",
	},
}

// SeedAllTestData loads two buildings, their units and a PIN live for the
// next 30 property-local days. It is a no-op when building A already exists.
func SeedAllTestData(
	ctx context.Context,
	buildingRepo repositories.BuildingRepository,
	unitRepo repositories.ValidUnitRepository,
	pinRepo repositories.ActivePinRepository,
	loc *time.Location,
	clock utils.Clock,
) error {
	if existing, err := buildingRepo.GetByID(ctx, seedBuildingAID); err != nil {
		return fmt.Errorf("check existing seed building: %w", err)
	} else if existing != nil {
		utils.Logger.Info("Seed data already present; skipping seeding")
		return nil
	}

	now := clock()
	today := utils.DateOnlyIn(now, loc)

	for _, sb := range seedBuildings {
		b := &models.Building{
			ID:                 sb.id,
			Name:               sb.name,
			Code:               sb.code,
			AccessInstructions: utils.Ptr(sb.instructions),
			NorthUnits:         sb.north,
			SouthUnits:         sb.south,
			CreatedAt:          now,
		}
		if err := buildingRepo.Create(ctx, b); err != nil {
			return fmt.Errorf("seed building %s: %w", sb.code, err)
		}

		for _, units := range [][]string{sb.north, sb.south} {
			for _, u := range units {
				if err := unitRepo.Create(ctx, u); err != nil {
					return fmt.Errorf("seed unit %s: %w", u, err)
				}
			}
		}

		pin := &models.ActivePin{
			ID:         uuid.New(),
			BuildingID: sb.id,
			PinCode:    sb.pin,
			ValidFrom:  today,
			ValidUntil: today.AddDate(0, 0, 30),
			CreatedAt:  now,
		}
		if err := pinRepo.Create(ctx, pin); err != nil {
			return fmt.Errorf("seed pin for building %s: %w", sb.code, err)
		}
	}

	// Registered but unmapped: exercises the "contact property management" reply.
	if err := unitRepo.Create(ctx, "C1A"); err != nil {
		return fmt.Errorf("seed unit C1A: %w", err)
	}

	utils.Logger.Infof("Seeded %d buildings with units and PINs", len(seedBuildings))
	return nil
}
