package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/studiobook/internal/audit"
	"github.com/BruksfildServices01/studiobook/internal/auth"
	"github.com/BruksfildServices01/studiobook/internal/config"
	"github.com/BruksfildServices01/studiobook/internal/handlers"
	infraRepo "github.com/BruksfildServices01/studiobook/internal/infra/repository"
	"github.com/BruksfildServices01/studiobook/internal/middleware"
	"github.com/BruksfildServices01/studiobook/internal/models"
	"github.com/BruksfildServices01/studiobook/internal/storage"
	ucAppointment "github.com/BruksfildServices01/studiobook/internal/usecase/appointment"
	ucBusiness "github.com/BruksfildServices01/studiobook/internal/usecase/business"
	ucCatalog "github.com/BruksfildServices01/studiobook/internal/usecase/catalog"
	ucUser "github.com/BruksfildServices01/studiobook/internal/usecase/user"
)

// Infra holds the process-wide collaborators built in main.
type Infra struct {
	Audit   *audit.Dispatcher
	Limiter middleware.Limiter
	// Images is nil when no bucket is configured.
	Images *storage.ImageStore
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, infra Infra) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	userRepo := infraRepo.NewUserGormRepository(db)
	businessRepo := infraRepo.NewBusinessGormRepository(db)
	serviceRepo := infraRepo.NewServiceGormRepository(db)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, auth.DefaultTTL)

	// ======================================================
	// USE CASES
	// ======================================================
	users := ucUser.NewService(userRepo, infra.Images, infra.Audit, cfg.CheckEmailDomain)
	businesses := ucBusiness.NewService(businessRepo, infra.Images, infra.Audit)
	catalog := ucCatalog.NewService(serviceRepo, businessRepo, userRepo, infra.Audit)

	appointmentHandler := handlers.NewAppointmentHandler(
		ucAppointment.NewCreateAppointment(appointmentRepo, serviceRepo, userRepo, infra.Audit),
		ucAppointment.NewUpdateAppointment(appointmentRepo, serviceRepo, infra.Audit, cfg.StrictStatusTransitions),
		ucAppointment.NewCancelAppointment(appointmentRepo, infra.Audit),
		ucAppointment.NewCompleteAppointment(appointmentRepo, infra.Audit),
		ucAppointment.NewDeleteAppointment(appointmentRepo, infra.Audit),
		ucAppointment.NewFindAppointments(appointmentRepo),
		ucAppointment.NewListAppointmentsByDate(appointmentRepo, businessRepo, userRepo, serviceRepo),
		ucAppointment.NewListAppointmentsByMonth(appointmentRepo, businessRepo, userRepo, serviceRepo),
		ucAppointment.NewGetAvailability(appointmentRepo, userRepo, serviceRepo, businessRepo),
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(users, tokens)
	userHandler := handlers.NewUserHandler(users)
	businessHandler := handlers.NewBusinessHandler(businesses)
	serviceHandler := handlers.NewServiceHandler(catalog)
	auditLogsHandler := handlers.NewAuditLogsHandler(audit.New(db))

	requireAuth := middleware.AuthMiddleware(tokens)
	authLimit := middleware.RateLimit(infra.Limiter, "auth", cfg.RateLimitFailOpen)
	bookingLimit := middleware.RateLimit(infra.Limiter, "booking", cfg.RateLimitFailOpen)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authLimit, authHandler.Register)
		api.POST("/auth/login", authLimit, authHandler.Login)

		api.GET("/me", requireAuth, authHandler.Me)
		api.GET("/me/audit-logs", requireAuth, auditLogsHandler.List)

		// ------------------------------
		// USERS
		// ------------------------------
		api.GET("/users/:id", userHandler.Get)
		api.GET("/users/business/:business_id", userHandler.ListByBusiness)
		api.PATCH("/users/:id", requireAuth, userHandler.Update)
		api.POST("/users/:id/avatar", requireAuth, userHandler.UploadAvatar)
		api.POST("/users/barbers",
			requireAuth,
			middleware.RequireRoles("Only managers can create barbers",
				models.RoleManager, models.RoleOwner, models.RoleAdmin),
			userHandler.CreateBarber,
		)

		// ------------------------------
		// BUSINESSES
		// ------------------------------
		api.GET("/businesses", businessHandler.List)
		api.GET("/businesses/:id", businessHandler.Get)
		api.GET("/businesses/:id/hours", businessHandler.GetHours)
		api.POST("/businesses", requireAuth, businessHandler.Create)
		api.PATCH("/businesses/:id", requireAuth, businessHandler.Update)
		api.DELETE("/businesses/:id", requireAuth, businessHandler.Delete)
		api.PUT("/businesses/:id/hours", requireAuth, businessHandler.SetHours)
		api.POST("/businesses/:id/cover", requireAuth, businessHandler.UploadCover)

		// ------------------------------
		// SERVICES
		// ------------------------------
		api.GET("/services", serviceHandler.List)
		api.GET("/services/:id", serviceHandler.Get)
		api.GET("/services/barbershop/:business_id", serviceHandler.ListByBusiness)
		api.POST("/services/barbershop/:business_id", requireAuth, serviceHandler.Create)
		api.PATCH("/services/:id", requireAuth, serviceHandler.Update)
		api.DELETE("/services/:id", requireAuth, serviceHandler.Delete)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		appointments := api.Group("/appointments")
		{
			appointments.GET("", appointmentHandler.List)
			appointments.GET("/range", appointmentHandler.ListByRange)
			appointments.GET("/:id", appointmentHandler.Get)
			appointments.GET("/barber/:owner_id", appointmentHandler.ListByOwner)
			appointments.GET("/barber/:owner_id/availability", appointmentHandler.Availability)
			appointments.GET("/client/:client_id", appointmentHandler.ListByClient)
			appointments.GET("/barbershop/:business_id", appointmentHandler.ListByBusiness)
			appointments.GET("/barbershop/:business_id/day", appointmentHandler.ListByDate)
			appointments.GET("/barbershop/:business_id/month", appointmentHandler.ListByMonth)

			appointments.POST("/barber/:owner_id/barbershop/:business_id",
				requireAuth, bookingLimit, appointmentHandler.Create)
			appointments.PATCH("/:id", requireAuth, appointmentHandler.Update)
			appointments.PATCH("/:id/cancel", requireAuth, appointmentHandler.Cancel)
			appointments.PATCH("/:id/complete", requireAuth, appointmentHandler.Complete)
			appointments.DELETE("/:id", requireAuth, appointmentHandler.Delete)
		}
	}
}
