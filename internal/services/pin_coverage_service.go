package services

import (
	"context"
	"fmt"

	"github.com/poofware/contractor-access-service/internal/models"
	"github.com/poofware/contractor-access-service/internal/repositories"
	"github.com/poofware/contractor-access-service/internal/utils"
)

// PinCoverageService finds buildings that would leave a contractor with
// the "no active access code" reply. It only reads.
type PinCoverageService struct {
	buildingRepo repositories.BuildingRepository
	pins         PinService
	notifier     AccessNotifier
	clock        utils.Clock
}

func NewPinCoverageService(
	buildingRepo repositories.BuildingRepository,
	pins PinService,
	notifier AccessNotifier,
	clock utils.Clock,
) *PinCoverageService {
	return &PinCoverageService{
		buildingRepo: buildingRepo,
		pins:         pins,
		notifier:     notifier,
		clock:        clock,
	}
}

// Audit returns every building without a live PIN today and reports them
// to management.
func (s *PinCoverageService) Audit(ctx context.Context) ([]*models.Building, error) {
	buildings, err := s.buildingRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list buildings: %w", err)
	}

	now := s.clock()
	var uncovered []*models.Building
	for _, b := range buildings {
		pin, err := s.pins.CurrentPin(ctx, b.ID, now)
		if err != nil {
			return nil, err
		}
		if pin == nil {
			utils.Logger.Warnf("Building %s (%s) has no active access PIN", b.Name, b.Code)
			uncovered = append(uncovered, b)
		}
	}

	if len(uncovered) == 0 {
		utils.Logger.Infof("PIN coverage audit: all %d buildings covered", len(buildings))
		return nil, nil
	}
	s.notifier.PinCoverageGaps(ctx, uncovered, now)
	return uncovered, nil
}
