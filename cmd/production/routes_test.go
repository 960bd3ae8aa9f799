package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakery-production/internal/config"
	"bakery-production/internal/middleware/auth"
	"bakery-production/internal/service/production"
	"bakery-production/internal/storage"
)

const (
	testSecret = "0123456789abcdef0123456789abcdef"
	testIssuer = "bakery-test"
)

type stubSchedules struct{ deleted []int64 }

func (s *stubSchedules) Get(ctx context.Context, id int64) (*storage.Schedule, error) {
	return &storage.Schedule{ID: id}, nil
}

func (s *stubSchedules) List(ctx context.Context, f storage.ScheduleFilter) ([]storage.Schedule, error) {
	return []storage.Schedule{{ID: 1, RecipeName: "Sourdough"}}, nil
}

func (s *stubSchedules) Create(ctx context.Context, req production.CreateScheduleRequest) (*production.ScheduleResult, error) {
	return &production.ScheduleResult{ScheduleID: 9}, nil
}

func (s *stubSchedules) Update(ctx context.Context, id int64, req production.UpdateScheduleRequest) (*production.ScheduleResult, error) {
	return &production.ScheduleResult{ScheduleID: id}, nil
}

func (s *stubSchedules) Delete(ctx context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubSchedules) Capacity(ctx context.Context, recipeID int64, orderVolume int) (production.Capacity, error) {
	return production.Capacity{BatchNumber: 1, QuantityToProduce: 30}, nil
}

type stubReports struct{}

func (stubReports) GenerateExcel(ctx context.Context, from, to string) ([]byte, error) {
	return []byte("xlsx"), nil
}

type stubEquipment struct{ status storage.EquipmentStatus }

func (s *stubEquipment) SetEquipmentStatus(ctx context.Context, id int64, status storage.EquipmentStatus) error {
	s.status = status
	return nil
}

type fixture struct {
	handler   http.Handler
	schedules *stubSchedules
	equipment *stubEquipment
}

func newFixture() *fixture {
	cfg := config.Config{
		RequestTimeout: 5 * time.Second,
		Auth:           config.Auth{JWTSecret: testSecret, Issuer: testIssuer, TokenTTL: time.Hour},
		CORS:           config.CORS{AllowedOrigins: []string{"http://localhost:5173"}},
		AdminLogin:     "operator",
		AdminPass:      "s3cret",
	}
	f := &fixture{schedules: &stubSchedules{}, equipment: &stubEquipment{}}
	f.handler = routes(cfg, slog.Default(), services{
		schedules: f.schedules,
		reports:   stubReports{},
		equipment: f.equipment,
	})
	return f
}

func bearer(t *testing.T, role storage.Role) (string, string) {
	t.Helper()
	token, csrf, err := auth.IssueToken(testSecret, testIssuer, time.Hour, 3, "Ana Baker", role)
	require.NoError(t, err)
	return "Bearer " + token, csrf
}

func TestRoutes_RequireSession(t *testing.T) {
	f := newFixture()

	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/schedules", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRoutes_ListSchedulesWithSession(t *testing.T) {
	f := newFixture()
	authz, _ := bearer(t, storage.RoleBaker)

	req := httptest.NewRequest(http.MethodGet, "/api/schedules", nil)
	req.Header.Set("Authorization", authz)
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Sourdough")
}

func TestRoutes_MutationsNeedCSRF(t *testing.T) {
	f := newFixture()
	authz, csrf := bearer(t, storage.RoleSupervisor)

	req := httptest.NewRequest(http.MethodDelete, "/api/schedules/4", nil)
	req.Header.Set("Authorization", authz)
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Empty(t, f.schedules.deleted)

	req = httptest.NewRequest(http.MethodDelete, "/api/schedules/4", nil)
	req.Header.Set("Authorization", authz)
	req.Header.Set(auth.CSRFHeader, csrf)
	rr = httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []int64{4}, f.schedules.deleted)
}

func TestRoutes_ReportsByRole(t *testing.T) {
	f := newFixture()

	for role, want := range map[storage.Role]int{
		storage.RoleBaker:      http.StatusForbidden,
		storage.RoleSupervisor: http.StatusOK,
		storage.RoleAdmin:      http.StatusOK,
	} {
		authz, _ := bearer(t, role)
		req := httptest.NewRequest(http.MethodGet, "/api/reports/schedules.xlsx", nil)
		req.Header.Set("Authorization", authz)
		rr := httptest.NewRecorder()
		f.handler.ServeHTTP(rr, req)

		assert.Equal(t, want, rr.Code, string(role))
	}
}

func TestRoutes_AdminUsesBasicAuth(t *testing.T) {
	f := newFixture()

	req := httptest.NewRequest(http.MethodPut, "/api/admin/equipment/7/status", strings.NewReader(`{"status":"Out of Order"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req = httptest.NewRequest(http.MethodPut, "/api/admin/equipment/7/status", strings.NewReader(`{"status":"Out of Order"}`))
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("operator", "s3cret")
	rr = httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, storage.EquipmentOutOfOrder, f.equipment.status)
}

func TestRoutes_CORSPreflight(t *testing.T) {
	f := newFixture()

	req := httptest.NewRequest(http.MethodOptions, "/api/schedules", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", strings.ToLower(auth.CSRFHeader))
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)

	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, strings.ToLower(rr.Header().Get("Access-Control-Allow-Headers")), strings.ToLower(auth.CSRFHeader))
}
