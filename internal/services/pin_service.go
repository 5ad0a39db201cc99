package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/poofware/contractor-access-service/internal/models"
	"github.com/poofware/contractor-access-service/internal/repositories"
	"github.com/poofware/contractor-access-service/internal/utils"
)

type PinService interface {
	// CurrentPin returns nil, nil when the building has no live PIN on the
	// property-local date of now.
	CurrentPin(ctx context.Context, buildingID uuid.UUID, now time.Time) (*models.ActivePin, error)
}

type pinService struct {
	repo   repositories.ActivePinRepository
	window utils.ServiceWindow
}

func NewPinService(repo repositories.ActivePinRepository, window utils.ServiceWindow) PinService {
	return &pinService{repo: repo, window: window}
}

func (s *pinService) CurrentPin(ctx context.Context, buildingID uuid.UUID, now time.Time) (*models.ActivePin, error) {
	pin, err := s.repo.FindCurrent(ctx, buildingID, s.window.Today(now))
	if err != nil {
		return nil, fmt.Errorf("active pin lookup for building %s: %w", buildingID, err)
	}
	return pin, nil
}
