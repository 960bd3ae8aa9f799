package mysql

import (
	"context"
	"fmt"

	"bakery-production/internal/storage"
)

func (s *Storage) CountRecipes(ctx context.Context) (int64, error) {
	return s.count(ctx, "storage.mysql.CountRecipes", `SELECT COUNT(*) FROM tbl_recipe`)
}

func (s *Storage) CountSchedules(ctx context.Context) (int64, error) {
	return s.count(ctx, "storage.mysql.CountSchedules", `SELECT COUNT(*) FROM tbl_schedule`)
}

func (s *Storage) CountBatches(ctx context.Context) (int64, error) {
	return s.count(ctx, "storage.mysql.CountBatches", `SELECT COUNT(*) FROM tbl_batches`)
}

// CountStaff counts the users that can be put on a schedule.
func (s *Storage) CountStaff(ctx context.Context) (int64, error) {
	return s.count(ctx, "storage.mysql.CountStaff", `SELECT COUNT(*) FROM tbl_users WHERE user_role IN (?, ?)`,
		storage.RoleBaker, storage.RoleSupervisor)
}

func (s *Storage) count(ctx context.Context, op, query string, args ...interface{}) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
