package production

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"bakery-production/internal/apperr"
	"bakery-production/internal/storage"
)

type DashboardStorage interface {
	CountRecipes(ctx context.Context) (int64, error)
	CountSchedules(ctx context.Context) (int64, error)
	CountBatches(ctx context.Context) (int64, error)
	CountStaff(ctx context.Context) (int64, error)
}

type DashboardService struct {
	storage DashboardStorage
}

func NewDashboardService(storage DashboardStorage) *DashboardService {
	return &DashboardService{storage: storage}
}

// Stats collects the dashboard totals. The staff count is only reported to admins.
func (s *DashboardService) Stats(ctx context.Context, role storage.Role) (*storage.DashboardStats, error) {
	var stats storage.DashboardStats

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if stats.TotalRecipes, err = s.storage.CountRecipes(gCtx); err != nil {
			return fmt.Errorf("recipes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if stats.TotalSchedules, err = s.storage.CountSchedules(gCtx); err != nil {
			return fmt.Errorf("schedules: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if stats.TotalBatches, err = s.storage.CountBatches(gCtx); err != nil {
			return fmt.Errorf("batches: %w", err)
		}
		return nil
	})
	if role == storage.RoleAdmin {
		g.Go(func() error {
			n, err := s.storage.CountStaff(gCtx)
			if err != nil {
				return fmt.Errorf("staff: %w", err)
			}
			stats.TotalBakers = &n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, apperr.Ensure(err)
	}

	return &stats, nil
}
