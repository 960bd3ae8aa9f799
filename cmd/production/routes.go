package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	updateequipment "bakery-production/http-server/admin/update"
	getavailability "bakery-production/http-server/availability/get"
	deletebatch "bakery-production/http-server/batch/delete"
	getbatch "bakery-production/http-server/batch/get"
	savebatch "bakery-production/http-server/batch/save"
	updatebatch "bakery-production/http-server/batch/update"
	"bakery-production/http-server/capacity/calculate"
	getdashboard "bakery-production/http-server/dashboard/get"
	generate_excel "bakery-production/http-server/generate-report/generate-excel"
	getrecipe "bakery-production/http-server/recipe/get"
	deleteschedule "bakery-production/http-server/schedule/delete"
	getschedule "bakery-production/http-server/schedule/get"
	saveschedule "bakery-production/http-server/schedule/save"
	updateschedule "bakery-production/http-server/schedule/update"
	"bakery-production/internal/config"
	"bakery-production/internal/middleware/auth"
	"bakery-production/internal/storage"
)

type scheduleService interface {
	getschedule.ScheduleProvider
	saveschedule.ScheduleCreator
	updateschedule.ScheduleUpdater
	deleteschedule.ScheduleDeleter
	calculate.CapacityProvider
}

type batchService interface {
	getbatch.BatchProvider
	savebatch.BatchCreator
	updatebatch.BatchUpdater
	deletebatch.BatchDeleter
}

type services struct {
	schedules    scheduleService
	batches      batchService
	availability getavailability.AvailabilityResolver
	dashboard    getdashboard.StatsProvider
	recipes      getrecipe.RecipeProvider
	reports      generate_excel.GenerateExcelHandler
	equipment    updateequipment.EquipmentStatusProvider
}

func routes(cfg config.Config, log *slog.Logger, svc services) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", auth.CSRFHeader},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(cfg.RequestTimeout))

	router.Route("/api", func(r chi.Router) {
		r.Use(auth.Sessions(cfg.Auth.JWTSecret, cfg.Auth.Issuer))
		r.Use(auth.CSRF)

		r.Post("/capacity/calculate", calculate.CalculateCapacity(log, svc.schedules))
		r.Get("/availability", getavailability.GetAvailability(log, svc.availability))
		r.Get("/dashboard", getdashboard.GetDashboard(log, svc.dashboard))

		r.Route("/schedules", func(r chi.Router) {
			r.Get("/", getschedule.ListSchedules(log, svc.schedules))
			r.Post("/", saveschedule.SaveSchedule(log, svc.schedules))
			r.Post("/delete", deleteschedule.DeleteScheduleByBody(log, svc.schedules))
			r.Get("/{id}", getschedule.GetSchedule(log, svc.schedules))
			r.Put("/{id}", updateschedule.UpdateSchedule(log, svc.schedules))
			r.Delete("/{id}", deleteschedule.DeleteSchedule(log, svc.schedules))
		})

		r.Route("/batches", func(r chi.Router) {
			r.Get("/", getbatch.ListBatches(log, svc.batches))
			r.Post("/", savebatch.SaveBatch(log, svc.batches))
			r.Post("/delete", deletebatch.DeleteBatchByBody(log, svc.batches))
			r.Get("/{id}", getbatch.GetBatch(log, svc.batches))
			r.Put("/{id}", updatebatch.UpdateBatch(log, svc.batches))
			r.Delete("/{id}", deletebatch.DeleteBatch(log, svc.batches))
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", getrecipe.ListRecipes(log, svc.recipes))
			r.Get("/{id}/ingredients", getrecipe.GetIngredients(log, svc.recipes))
			r.Get("/{id}/instructions", getrecipe.GetInstructions(log, svc.recipes))
		})

		r.With(auth.RequireRole(storage.RoleAdmin, storage.RoleSupervisor)).
			Get("/reports/schedules.xlsx", generate_excel.GenerateReportExcel(log, svc.reports))
	})

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))
	adminRouter.Put("/equipment/{id}/status", updateequipment.UpdateEquipmentStatus(log, svc.equipment))
	router.Mount("/api/admin", adminRouter)

	return router
}
