package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agendaflow/salon-scheduler/internal/domain/schedule"
	"github.com/agendaflow/salon-scheduler/internal/httperr"
	"github.com/agendaflow/salon-scheduler/internal/httpresp"
	"github.com/agendaflow/salon-scheduler/internal/middleware"
	"github.com/agendaflow/salon-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// ScheduleHandler administra a grade recorrente e as exceções do
// colaborador autenticado.
type ScheduleHandler struct {
	repo schedule.AdminRepository
}

func NewScheduleHandler(repo schedule.AdminRepository) *ScheduleHandler {
	return &ScheduleHandler{repo: repo}
}

// ======================================================
// REQUESTS
// ======================================================

type WorkingWindowInput struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Active    *bool  `json:"active"`
}

type ReplaceWindowsRequest struct {
	Windows []WorkingWindowInput `json:"windows"`
}

type UpsertExceptionRequest struct {
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	DayOff    bool   `json:"day_off"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

// ======================================================
// JANELAS RECORRENTES
// ======================================================

func (h *ScheduleHandler) ListWindows(c *gin.Context) {
	collaboratorID := c.MustGet(middleware.ContextCollaboratorID).(uint)

	windows, err := h.repo.ListWindows(c.Request.Context(), collaboratorID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_windows", "Erro ao listar grade.")
		return
	}
	httpresp.List(c, windows)
}

func (h *ScheduleHandler) ReplaceWindows(c *gin.Context) {
	collaboratorID := c.MustGet(middleware.ContextCollaboratorID).(uint)

	var req ReplaceWindowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	windows := make([]models.WorkingWindow, 0, len(req.Windows))
	for _, in := range req.Windows {
		if in.Weekday < 0 || in.Weekday > 6 {
			httperr.BadRequest(c, "invalid_weekday", "Dia da semana inválido.")
			return
		}
		if !validHMRange(in.StartTime, in.EndTime) {
			httperr.BadRequest(c, "invalid_window", "Janela com horários inválidos.")
			return
		}
		active := true
		if in.Active != nil {
			active = *in.Active
		}
		windows = append(windows, models.WorkingWindow{
			Weekday:   in.Weekday,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
			Active:    active,
		})
	}

	saved, err := h.repo.ReplaceWindows(c.Request.Context(), collaboratorID, windows)
	if err != nil {
		httperr.Internal(c, "failed_to_save_windows", "Erro ao salvar grade.")
		return
	}
	httpresp.List(c, saved)
}

// ======================================================
// EXCEÇÕES
// ======================================================

func (h *ScheduleHandler) ListExceptions(c *gin.Context) {
	collaboratorID := c.MustGet(middleware.ContextCollaboratorID).(uint)

	excs, err := h.repo.ListExceptions(
		c.Request.Context(), collaboratorID, c.Query("from"), c.Query("to"),
	)
	if err != nil {
		httperr.Internal(c, "failed_to_list_exceptions", "Erro ao listar exceções.")
		return
	}
	httpresp.List(c, excs)
}

func (h *ScheduleHandler) UpsertException(c *gin.Context) {
	collaboratorID := c.MustGet(middleware.ContextCollaboratorID).(uint)

	var req UpsertExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	// Dia de folga não carrega janela; horário especial exige janela válida.
	if !req.DayOff && !validHMRange(req.StartTime, req.EndTime) {
		httperr.BadRequest(c, "invalid_window", "Exceção com horários inválidos.")
		return
	}

	exc := &models.ScheduleException{
		CollaboratorID: collaboratorID,
		Date:           req.Date,
		DayOff:         req.DayOff,
		Reason:         req.Reason,
	}
	if !req.DayOff {
		exc.StartTime = req.StartTime
		exc.EndTime = req.EndTime
	}

	saved, err := h.repo.UpsertException(c.Request.Context(), exc)
	if err != nil {
		httperr.Internal(c, "failed_to_save_exception", "Erro ao salvar exceção.")
		return
	}
	httpresp.OK(c, saved)
}

func (h *ScheduleHandler) DeleteException(c *gin.Context) {
	collaboratorID := c.MustGet(middleware.ContextCollaboratorID).(uint)

	date := c.Param("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	if err := h.repo.DeleteException(c.Request.Context(), collaboratorID, date); err != nil {
		httperr.Internal(c, "failed_to_delete_exception", "Erro ao remover exceção.")
		return
	}
	c.Status(http.StatusNoContent)
}

// ======================================================
// HELPERS
// ======================================================

func validHMRange(start, end string) bool {
	s, errS := time.Parse("15:04", start)
	e, errE := time.Parse("15:04", end)
	return errS == nil && errE == nil && s.Before(e)
}
