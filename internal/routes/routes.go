package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/maximumcrm/salon-scheduler/internal/accounts"
	"github.com/maximumcrm/salon-scheduler/internal/audit"
	"github.com/maximumcrm/salon-scheduler/internal/config"
	domainSchedule "github.com/maximumcrm/salon-scheduler/internal/domain/schedule"
	"github.com/maximumcrm/salon-scheduler/internal/handlers"
	infraRepo "github.com/maximumcrm/salon-scheduler/internal/infra/repository"
	"github.com/maximumcrm/salon-scheduler/internal/middleware"
	ucSchedule "github.com/maximumcrm/salon-scheduler/internal/usecase/schedule"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)
	overlapGuard := domainSchedule.NewGuard(scheduleRepo)

	accountsSvc := accounts.NewService(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — SCHEDULE
	// ======================================================
	createBookingUC := ucSchedule.NewCreateBooking(
		scheduleRepo,
		overlapGuard,
		auditDispatcher,
	)

	listEventsUC := ucSchedule.NewListEvents(scheduleRepo)

	rescheduleUC := ucSchedule.NewReschedule(
		scheduleRepo,
		overlapGuard,
		auditDispatcher,
	)

	deleteAppointmentUC := ucSchedule.NewDeleteAppointment(
		scheduleRepo,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(accountsSvc, cfg)
	meHandler := handlers.NewMeHandler(accountsSvc)

	scheduleHandler := handlers.NewScheduleHandler(
		createBookingUC,
		listEventsUC,
		rescheduleUC,
		deleteAppointmentUC,
	)

	clientHandler := handlers.NewClientHandler(db)
	employeeHandler := handlers.NewEmployeeHandler(db)
	adminHandler := handlers.NewAdminHandler(accountsSvc, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")

	if rdb != nil {
		api.Use(middleware.RateLimit(rdb, cfg.RateLimitPerIP, time.Minute))
	}

	{
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// SCHEDULE
			// ------------------------------
			secured.GET("/schedule/events", scheduleHandler.Events)
			secured.POST("/schedule/appointments", scheduleHandler.Create)
			secured.PATCH("/schedule/appointments/:id", scheduleHandler.Reschedule)
			secured.DELETE("/schedule/appointments/:id", scheduleHandler.Delete)

			// ------------------------------
			// CLIENTS / EMPLOYEES
			// ------------------------------
			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.PATCH("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)

			secured.GET("/employees", employeeHandler.List)
			secured.POST("/employees", employeeHandler.Create)
			secured.PATCH("/employees/:id", employeeHandler.Update)
			secured.DELETE("/employees/:id", employeeHandler.Delete)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(accounts.RoleAdmin))
			{
				admin.GET("/users", adminHandler.ListUsers)
				admin.POST("/users", adminHandler.CreateUser)
				admin.PATCH("/users/:id", adminHandler.UpdateUser)
				admin.DELETE("/users/:id", adminHandler.DeleteUser)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
