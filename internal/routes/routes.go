package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-appointments/internal/audit"
	"github.com/BruksfildServices01/barbershop-appointments/internal/config"
	"github.com/BruksfildServices01/barbershop-appointments/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barbershop-appointments/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-appointments/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barbershop-appointments/internal/usecase/appointment"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	auditDispatcher *audit.Dispatcher,
) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORS))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
		})
	})

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	// ======================================================
	// 🧠 USE CASES: APPOINTMENTS
	// ======================================================
	appointmentUC := handlers.AppointmentUseCases{
		Check:    ucAppointment.NewCheckAvailability(appointmentRepo),
		Create:   ucAppointment.NewCreateAppointment(appointmentRepo, auditDispatcher),
		Update:   ucAppointment.NewUpdateAppointment(appointmentRepo, auditDispatcher),
		Delete:   ucAppointment.NewDeleteAppointment(appointmentRepo, auditDispatcher),
		Complete: ucAppointment.NewCompleteAppointment(appointmentRepo, auditDispatcher),
		List:     ucAppointment.NewListAppointments(appointmentRepo),
		Get:      ucAppointment.NewGetAppointment(appointmentRepo),
	}

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(appointmentUC, !cfg.IsProduction())
	clientHandler := handlers.NewClientHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	barberHandler := handlers.NewBarberHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg.Auth))
	{
		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		appointments := api.Group("/appointments")
		{
			appointments.POST("/check-availability", appointmentHandler.CheckAvailability)
			appointments.POST("", appointmentHandler.Create)
			appointments.GET("", appointmentHandler.List)
			appointments.GET("/:id", appointmentHandler.Get)
			appointments.PUT("/:id", appointmentHandler.Update)
			appointments.DELETE("/:id", appointmentHandler.Delete)
			appointments.PATCH("/:id/complete", appointmentHandler.Complete)
		}

		// ------------------------------
		// REGISTRY
		// ------------------------------
		api.POST("/clients", clientHandler.Create)
		api.GET("/clients", clientHandler.List)
		api.PATCH("/clients/:id/points", clientHandler.AddPoint)

		api.POST("/services", serviceHandler.Create)
		api.GET("/services", serviceHandler.List)
		api.PUT("/services/:id", serviceHandler.Update)
		api.DELETE("/services/:id", serviceHandler.Delete)

		api.POST("/barbers", barberHandler.Create)
		api.GET("/barbers", barberHandler.List)
		api.PUT("/barbers/:id", barberHandler.Update)
		api.DELETE("/barbers/:id", barberHandler.Delete)

		api.GET("/audit-logs", auditLogsHandler.List)
	}
}
