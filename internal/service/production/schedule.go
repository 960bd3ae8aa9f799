package production

import (
	"context"
	"errors"
	"strings"
	"time"

	"bakery-production/internal/apperr"
	"bakery-production/internal/storage"
)

type ScheduleStorage interface {
	GetRecipe(ctx context.Context, id int64) (*storage.Recipe, error)
	CreateSchedule(ctx context.Context, w storage.ScheduleWrite) (int64, error)
	UpdateSchedule(ctx context.Context, id int64, w storage.ScheduleWrite) error
	DeleteSchedule(ctx context.Context, id int64) error
	GetSchedule(ctx context.Context, id int64) (*storage.Schedule, error)
	ListSchedules(ctx context.Context, f storage.ScheduleFilter) ([]storage.Schedule, error)
}

type CreateScheduleRequest struct {
	RecipeID     int64   `json:"recipe_id"`
	Date         string  `json:"schedule_date"`
	OrderVolume  int     `json:"order_volume"`
	UserIDs      []int64 `json:"user_ids"`
	EquipmentIDs []int64 `json:"equipment_ids"`
}

func (r *CreateScheduleRequest) Validate() error {
	if r.RecipeID <= 0 {
		return apperr.Validation("recipe_id is required")
	}
	r.Date = strings.TrimSpace(r.Date)
	if _, err := time.Parse(storage.DateLayout, r.Date); err != nil {
		return apperr.Validation("schedule_date must be in YYYY-MM-DD format")
	}
	if r.OrderVolume <= 0 {
		return apperr.Validation("order_volume must be a positive whole number")
	}

	var err error
	if r.UserIDs, err = normalizeIDs("user_ids", r.UserIDs); err != nil {
		return err
	}
	if r.EquipmentIDs, err = normalizeIDs("equipment_ids", r.EquipmentIDs); err != nil {
		return err
	}
	return nil
}

type UpdateScheduleRequest struct {
	CreateScheduleRequest
	Status storage.Status `json:"status"`
}

func (r *UpdateScheduleRequest) Validate() error {
	if err := r.CreateScheduleRequest.Validate(); err != nil {
		return err
	}
	if !r.Status.Valid() {
		return apperr.Validation("status must be one of Pending, In Progress, Completed")
	}
	return nil
}

type ScheduleResult struct {
	ScheduleID int64 `json:"schedule_id"`
	Capacity
}

type ScheduleService struct {
	storage ScheduleStorage
}

func NewScheduleService(storage ScheduleStorage) *ScheduleService {
	return &ScheduleService{storage: storage}
}

func (s *ScheduleService) Create(ctx context.Context, req CreateScheduleRequest) (*ScheduleResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	capacity, err := s.capacityFor(ctx, req.RecipeID, req.OrderVolume)
	if err != nil {
		return nil, err
	}

	id, err := s.storage.CreateSchedule(ctx, storage.ScheduleWrite{
		RecipeID:          req.RecipeID,
		Date:              req.Date,
		OrderVolume:       req.OrderVolume,
		BatchNumber:       capacity.BatchNumber,
		QuantityToProduce: capacity.QuantityToProduce,
		Status:            storage.StatusPending,
		UserIDs:           req.UserIDs,
		EquipmentIDs:      req.EquipmentIDs,
	})
	if err != nil {
		return nil, apperr.Ensure(err)
	}

	return &ScheduleResult{ScheduleID: id, Capacity: capacity}, nil
}

// Update replaces the schedule's fields and assignment sets. Batch number and quantity are
// always recomputed from the order volume.
func (s *ScheduleService) Update(ctx context.Context, id int64, req UpdateScheduleRequest) (*ScheduleResult, error) {
	if id <= 0 {
		return nil, apperr.Validation("schedule id is required")
	}

	// A completed schedule refuses every edit, whatever the body holds. Storage repeats the
	// check under the row lock.
	current, err := s.storage.GetSchedule(ctx, id)
	if err != nil {
		return nil, apperr.Ensure(err)
	}
	if current.Status == storage.StatusCompleted {
		return nil, apperr.New(apperr.KindImmutableSchedule, "schedule %d is completed and can no longer be edited", id)
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	capacity, err := s.capacityFor(ctx, req.RecipeID, req.OrderVolume)
	if err != nil {
		return nil, err
	}

	err = s.storage.UpdateSchedule(ctx, id, storage.ScheduleWrite{
		RecipeID:          req.RecipeID,
		Date:              req.Date,
		OrderVolume:       req.OrderVolume,
		BatchNumber:       capacity.BatchNumber,
		QuantityToProduce: capacity.QuantityToProduce,
		Status:            req.Status,
		UserIDs:           req.UserIDs,
		EquipmentIDs:      req.EquipmentIDs,
	})
	if err != nil {
		return nil, apperr.Ensure(err)
	}

	return &ScheduleResult{ScheduleID: id, Capacity: capacity}, nil
}

func (s *ScheduleService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperr.Validation("schedule id is required")
	}
	return apperr.Ensure(s.storage.DeleteSchedule(ctx, id))
}

func (s *ScheduleService) Get(ctx context.Context, id int64) (*storage.Schedule, error) {
	if id <= 0 {
		return nil, apperr.Validation("schedule id is required")
	}
	sc, err := s.storage.GetSchedule(ctx, id)
	if err != nil {
		return nil, apperr.Ensure(err)
	}
	return sc, nil
}

func (s *ScheduleService) List(ctx context.Context, f storage.ScheduleFilter) ([]storage.Schedule, error) {
	for _, d := range []string{f.Date, f.From, f.To} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(storage.DateLayout, d); err != nil {
			return nil, apperr.Validation("dates must be in YYYY-MM-DD format")
		}
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, apperr.Validation("status must be one of Pending, In Progress, Completed")
	}

	schedules, err := s.storage.ListSchedules(ctx, f)
	if err != nil {
		return nil, apperr.Ensure(err)
	}
	return schedules, nil
}

// Capacity computes batch count and quantity for an order of the given recipe.
func (s *ScheduleService) Capacity(ctx context.Context, recipeID int64, orderVolume int) (Capacity, error) {
	if recipeID <= 0 {
		return Capacity{}, apperr.Validation("recipe_id is required")
	}
	return s.capacityFor(ctx, recipeID, orderVolume)
}

func (s *ScheduleService) capacityFor(ctx context.Context, recipeID int64, orderVolume int) (Capacity, error) {
	recipe, err := s.storage.GetRecipe(ctx, recipeID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Capacity{}, apperr.Validation("recipe %d does not exist", recipeID)
		}
		return Capacity{}, apperr.Ensure(err)
	}
	return CalculateCapacity(orderVolume, recipe.BatchSize)
}

// normalizeIDs rejects non-positive ids and drops duplicates, keeping the first occurrence.
func normalizeIDs(field string, ids []int64) ([]int64, error) {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, apperr.Validation("%s must contain positive ids", field)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
