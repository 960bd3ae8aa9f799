package production

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bakery-production/internal/storage"
)

type MockScheduleStorage struct {
	mock.Mock
}

func (m *MockScheduleStorage) GetRecipe(ctx context.Context, id int64) (*storage.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Recipe), args.Error(1)
}

func (m *MockScheduleStorage) CreateSchedule(ctx context.Context, w storage.ScheduleWrite) (int64, error) {
	args := m.Called(ctx, w)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockScheduleStorage) UpdateSchedule(ctx context.Context, id int64, w storage.ScheduleWrite) error {
	args := m.Called(ctx, id, w)
	return args.Error(0)
}

func (m *MockScheduleStorage) DeleteSchedule(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockScheduleStorage) GetSchedule(ctx context.Context, id int64) (*storage.Schedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Schedule), args.Error(1)
}

func (m *MockScheduleStorage) ListSchedules(ctx context.Context, f storage.ScheduleFilter) ([]storage.Schedule, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Schedule), args.Error(1)
}

type MockBatchStorage struct {
	mock.Mock
}

func (m *MockBatchStorage) CreateBatch(ctx context.Context, w storage.BatchWrite) (int64, error) {
	args := m.Called(ctx, w)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBatchStorage) UpdateBatch(ctx context.Context, id int64, w storage.BatchWrite) error {
	args := m.Called(ctx, id, w)
	return args.Error(0)
}

func (m *MockBatchStorage) DeleteBatch(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBatchStorage) GetBatch(ctx context.Context, id int64) (*storage.Batch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Batch), args.Error(1)
}

func (m *MockBatchStorage) ListBatches(ctx context.Context, f storage.BatchFilter) ([]storage.Batch, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Batch), args.Error(1)
}

type MockAvailabilityStorage struct {
	mock.Mock
}

func (m *MockAvailabilityStorage) UserAvailability(ctx context.Context, date string, excludeScheduleID int64) ([]storage.UserAvailability, error) {
	args := m.Called(ctx, date, excludeScheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.UserAvailability), args.Error(1)
}

func (m *MockAvailabilityStorage) EquipmentAvailability(ctx context.Context, date string, excludeScheduleID int64) ([]storage.EquipmentAvailability, error) {
	args := m.Called(ctx, date, excludeScheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.EquipmentAvailability), args.Error(1)
}

type MockDashboardStorage struct {
	mock.Mock
}

func (m *MockDashboardStorage) CountRecipes(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardStorage) CountSchedules(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardStorage) CountBatches(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardStorage) CountStaff(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockRecipeStorage struct {
	mock.Mock
}

func (m *MockRecipeStorage) GetRecipe(ctx context.Context, id int64) (*storage.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Recipe), args.Error(1)
}

func (m *MockRecipeStorage) ListRecipes(ctx context.Context) ([]storage.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Recipe), args.Error(1)
}

func (m *MockRecipeStorage) GetIngredients(ctx context.Context, recipeID int64) ([]storage.Ingredient, error) {
	args := m.Called(ctx, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Ingredient), args.Error(1)
}
