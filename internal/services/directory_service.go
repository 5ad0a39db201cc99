package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/poofware/contractor-access-service/internal/models"
	"github.com/poofware/contractor-access-service/internal/repositories"
	"github.com/poofware/contractor-access-service/internal/utils"
)

// DirectoryService maps contractor-supplied unit codes to buildings.
type DirectoryService interface {
	// ResolveUnit returns utils.ErrUnitUnknown when the unit is not in the
	// registry and utils.ErrBuildingNotMapped when no building owns its
	// prefix. The side is accepted as-is and not checked against the building.
	ResolveUnit(ctx context.Context, unitCode, side string) (*models.Building, error)
	GetBuilding(ctx context.Context, id uuid.UUID) (*models.Building, error)
}

type directoryService struct {
	unitRepo     repositories.ValidUnitRepository
	buildingRepo repositories.BuildingRepository
}

func NewDirectoryService(
	unitRepo repositories.ValidUnitRepository,
	buildingRepo repositories.BuildingRepository,
) DirectoryService {
	return &directoryService{unitRepo: unitRepo, buildingRepo: buildingRepo}
}

func (s *directoryService) ResolveUnit(ctx context.Context, unitCode, side string) (*models.Building, error) {
	unitCode = strings.ToUpper(strings.TrimSpace(unitCode))

	known, err := s.unitRepo.Exists(ctx, unitCode)
	if err != nil {
		return nil, fmt.Errorf("valid unit lookup for %s: %w", unitCode, err)
	}
	if !known {
		return nil, utils.ErrUnitUnknown
	}

	bldg, err := s.buildingRepo.GetByCode(ctx, unitCode[:1])
	if err != nil {
		return nil, fmt.Errorf("building lookup for code %s: %w", unitCode[:1], err)
	}
	if bldg == nil {
		utils.Logger.Warnf("Unit %s is registered but no building has code %s", unitCode, unitCode[:1])
		return nil, utils.ErrBuildingNotMapped
	}
	return bldg, nil
}

func (s *directoryService) GetBuilding(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	bldg, err := s.buildingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("building lookup %s: %w", id, err)
	}
	return bldg, nil
}
