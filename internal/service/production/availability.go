package production

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"bakery-production/internal/apperr"
	"bakery-production/internal/storage"
)

type AvailabilityStorage interface {
	UserAvailability(ctx context.Context, date string, excludeScheduleID int64) ([]storage.UserAvailability, error)
	EquipmentAvailability(ctx context.Context, date string, excludeScheduleID int64) ([]storage.EquipmentAvailability, error)
}

type Availability struct {
	Date      string                          `json:"date"`
	Users     []storage.UserAvailability      `json:"users"`
	Equipment []storage.EquipmentAvailability `json:"equipment"`
}

type AvailabilityService struct {
	storage AvailabilityStorage
}

func NewAvailabilityService(storage AvailabilityStorage) *AvailabilityService {
	return &AvailabilityService{storage: storage}
}

// Resolve reports who and what is free on date. The answer is advisory: writes re-check
// conflicts inside their own transaction.
func (s *AvailabilityService) Resolve(ctx context.Context, date string, excludeScheduleID int64) (*Availability, error) {
	if _, err := time.Parse(storage.DateLayout, date); err != nil {
		return nil, apperr.Validation("date must be in YYYY-MM-DD format")
	}
	if excludeScheduleID < 0 {
		return nil, apperr.Validation("exclude_schedule_id must not be negative")
	}

	var (
		users     []storage.UserAvailability
		equipment []storage.EquipmentAvailability
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.storage.UserAvailability(gCtx, date, excludeScheduleID)
		if err != nil {
			return fmt.Errorf("users: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		equipment, err = s.storage.EquipmentAvailability(gCtx, date, excludeScheduleID)
		if err != nil {
			return fmt.Errorf("equipment: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, apperr.Ensure(err)
	}

	if users == nil {
		users = []storage.UserAvailability{}
	}
	if equipment == nil {
		equipment = []storage.EquipmentAvailability{}
	}

	return &Availability{Date: date, Users: users, Equipment: equipment}, nil
}
