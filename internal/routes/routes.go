package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendaflow/salon-scheduler/internal/clock"
	"github.com/agendaflow/salon-scheduler/internal/config"
	"github.com/agendaflow/salon-scheduler/internal/events"
	"github.com/agendaflow/salon-scheduler/internal/handlers"
	"github.com/agendaflow/salon-scheduler/internal/infra/repository"
	"github.com/agendaflow/salon-scheduler/internal/metrics"
	"github.com/agendaflow/salon-scheduler/internal/middleware"
	ucAppointment "github.com/agendaflow/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// ROTAS
// ======================================================

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// ---------- infraestrutura ----------
	rdb := events.NewRedisClient(cfg.RedisAddr, cfg.RedisPass)
	dispatcher := events.NewDispatcher(events.NewStore(db), events.NewPublisher(rdb))
	clk := clock.Real{}

	// ---------- repositórios ----------
	apptRepo := repository.NewAppointmentGormRepository(db)
	settleRepo := repository.NewSettlementGormRepository(db)
	scheduleRepo := repository.NewScheduleGormRepository(db)

	// ---------- casos de uso ----------
	availabilityUC := ucAppointment.NewGetAvailability(apptRepo, clk)
	createUC := ucAppointment.NewCreateAppointment(apptRepo, dispatcher, clk)
	rescheduleUC := ucAppointment.NewRescheduleAppointment(apptRepo, dispatcher, clk)
	confirmUC := ucAppointment.NewConfirmAppointment(apptRepo, dispatcher)
	cancelUC := ucAppointment.NewCancelAppointment(apptRepo, dispatcher, clk)
	settleUC := ucAppointment.NewSettleAppointment(apptRepo, settleRepo, dispatcher, clk)
	listByDateUC := ucAppointment.NewListAgendaByDate(apptRepo)
	listByMonthUC := ucAppointment.NewListAgendaByMonth(apptRepo)

	// ---------- handlers ----------
	appointmentHandler := handlers.NewAppointmentHandler(
		availabilityUC, createUC, rescheduleUC,
		confirmUC, cancelUC, settleUC,
		listByDateUC, listByMonthUC,
	)
	publicHandler := handlers.NewPublicHandler(apptRepo, availabilityUC, createUC)
	scheduleHandler := handlers.NewScheduleHandler(scheduleRepo)
	auditHandler := handlers.NewAuditHandler(events.NewStore(db))

	// ---------- operacional ----------
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	// ---------- página pública (por slug, sem auth) ----------
	public := r.Group("/public/:slug")
	{
		public.GET("", publicHandler.GetCompany)
		public.GET("/services", publicHandler.ListServices)
		public.GET("/collaborators", publicHandler.ListCollaborators)
		public.GET("/availability", publicHandler.Availability)
		public.POST("/appointments", publicHandler.CreateBooking)
	}

	// ---------- área autenticada ----------
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		api.GET("/availability", appointmentHandler.Availability)

		api.POST("/appointments", appointmentHandler.Create)
		api.PUT("/appointments/:id", appointmentHandler.Reschedule)
		api.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
		api.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		api.POST("/appointments/:id/settle", appointmentHandler.Settle)

		api.GET("/agenda", appointmentHandler.ListByDate)
		api.GET("/agenda/month", appointmentHandler.ListByMonth)

		api.GET("/schedule/windows", scheduleHandler.ListWindows)
		api.PUT("/schedule/windows", scheduleHandler.ReplaceWindows)
		api.GET("/schedule/exceptions", scheduleHandler.ListExceptions)
		api.PUT("/schedule/exceptions", scheduleHandler.UpsertException)
		api.DELETE("/schedule/exceptions/:date", scheduleHandler.DeleteException)

		api.GET("/audit-logs", auditHandler.List)
	}
}
