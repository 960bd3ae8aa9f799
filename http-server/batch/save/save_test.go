package save

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bakery-production/internal/apperr"
	"bakery-production/internal/service/production"
	"bakery-production/internal/storage"
)

type MockBatchCreator struct {
	mock.Mock
}

func (m *MockBatchCreator) Create(ctx context.Context, req production.CreateBatchRequest) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

const body = `{
	"schedule_id": 3,
	"recipe_id": 1,
	"start_time": "2030-03-01T06:00",
	"end_time": "2030-03-01T08:00",
	"remarks": "rye flour",
	"assignments": [{"user_id": 4, "task": "Mixing"}, {"user_id": 4, "task": "Baking"}]
}`

func post(creator BatchCreator, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/batches", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	SaveBatch(slog.Default(), creator).ServeHTTP(rr, req)
	return rr
}

func TestSaveBatch_Success(t *testing.T) {
	creator := new(MockBatchCreator)
	creator.On("Create", mock.Anything, production.CreateBatchRequest{
		ScheduleID: 3,
		RecipeID:   1,
		StartTime:  "2030-03-01T06:00",
		EndTime:    "2030-03-01T08:00",
		Remarks:    "rye flour",
		Assignments: []storage.TaskAssignment{
			{UserID: 4, Task: storage.TaskMixing},
			{UserID: 4, Task: storage.TaskBaking},
		},
	}).Return(int64(21), nil)

	rr := post(creator, body)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"success":true,"message":"Batch created successfully","batch_id":21}`, rr.Body.String())
	creator.AssertExpectations(t)
}

func TestSaveBatch_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"capacity", apperr.New(apperr.KindCapacityExceeded, "schedule 3 already has 3 of 3 batches"), http.StatusConflict},
		{"completed schedule", apperr.New(apperr.KindImmutableSchedule, "schedule 3 is completed"), http.StatusConflict},
		{"bad times", apperr.Validation("end_time must be after start_time"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creator := new(MockBatchCreator)
			creator.On("Create", mock.Anything, mock.Anything).Return(int64(0), tt.err)

			rr := post(creator, body)

			assert.Equal(t, tt.status, rr.Code)
			assert.Contains(t, rr.Body.String(), apperr.Message(tt.err))
		})
	}
}

func TestSaveBatch_InvalidJSON(t *testing.T) {
	creator := new(MockBatchCreator)

	rr := post(creator, `[`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	creator.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
