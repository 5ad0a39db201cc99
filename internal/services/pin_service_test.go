package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/poofware/contractor-access-service/internal/models"
	"github.com/poofware/contractor-access-service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentPin_UsesPropertyLocalDate(t *testing.T) {
	loc := eastern(t)
	buildingID := uuid.New()
	repo := &fakeActivePinRepo{rows: []*models.ActivePin{{
		ID:         uuid.New(),
		BuildingID: buildingID,
		PinCode:    "1111",
		ValidFrom:  time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		ValidUntil: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
	}}}
	svc := NewPinService(repo, utils.ServiceWindow{Location: loc})

	// 22:00 Eastern on the 10th is already the 11th in UTC.
	pin, err := svc.CurrentPin(context.Background(), buildingID, time.Date(2025, time.March, 10, 22, 0, 0, 0, loc))
	require.NoError(t, err)
	require.NotNil(t, pin)
	assert.Equal(t, "1111", pin.PinCode)
	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), repo.lastDay)

	pin, err = svc.CurrentPin(context.Background(), buildingID, time.Date(2025, time.March, 11, 9, 0, 0, 0, loc))
	require.NoError(t, err)
	assert.Nil(t, pin)
}

func TestCurrentPin_InclusiveBounds(t *testing.T) {
	loc := eastern(t)
	buildingID := uuid.New()
	repo := &fakeActivePinRepo{rows: []*models.ActivePin{{
		BuildingID: buildingID,
		PinCode:    "2222",
		ValidFrom:  time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
		ValidUntil: time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC),
	}}}
	svc := NewPinService(repo, utils.ServiceWindow{Location: loc})

	for day, want := range map[int]bool{2: false, 3: true, 5: true, 7: true, 8: false} {
		pin, err := svc.CurrentPin(context.Background(), buildingID, time.Date(2025, time.March, day, 12, 0, 0, 0, loc))
		require.NoError(t, err)
		assert.Equal(t, want, pin != nil, "day %d", day)
	}
}

func TestCurrentPin_RepoError(t *testing.T) {
	repo := &fakeActivePinRepo{err: errors.New("timeout")}
	svc := NewPinService(repo, utils.ServiceWindow{Location: eastern(t)})

	_, err := svc.CurrentPin(context.Background(), uuid.New(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}
