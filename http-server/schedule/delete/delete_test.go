package delete

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bakery-production/internal/apperr"
)

type MockScheduleDeleter struct {
	mock.Mock
}

func (m *MockScheduleDeleter) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func newRouter(deleter ScheduleDeleter) http.Handler {
	router := chi.NewRouter()
	router.Delete("/api/schedules/{id}", DeleteSchedule(slog.Default(), deleter))
	router.Post("/api/schedules/delete", DeleteScheduleByBody(slog.Default(), deleter))
	return router
}

func TestDeleteSchedule_ByPath(t *testing.T) {
	deleter := new(MockScheduleDeleter)
	deleter.On("Delete", mock.Anything, int64(8)).Return(nil)

	rr := httptest.NewRecorder()
	newRouter(deleter).ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/schedules/8", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"message":"Schedule deleted successfully"}`, rr.Body.String())
	deleter.AssertExpectations(t)
}

func TestDeleteSchedule_ByBody(t *testing.T) {
	deleter := new(MockScheduleDeleter)
	deleter.On("Delete", mock.Anything, int64(8)).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/schedules/delete", strings.NewReader(`{"schedule_id": 8}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	newRouter(deleter).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	deleter.AssertExpectations(t)
}

func TestDeleteSchedule_MissingBodyID(t *testing.T) {
	deleter := new(MockScheduleDeleter)

	req := httptest.NewRequest(http.MethodPost, "/api/schedules/delete", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	newRouter(deleter).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	deleter.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteSchedule_NotFound(t *testing.T) {
	deleter := new(MockScheduleDeleter)
	deleter.On("Delete", mock.Anything, int64(9)).Return(apperr.NotFound("schedule 9 not found"))

	rr := httptest.NewRecorder()
	newRouter(deleter).ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/schedules/9", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"success":false,"message":"schedule 9 not found"}`, rr.Body.String())
}
