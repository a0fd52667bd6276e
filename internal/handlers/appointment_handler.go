package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agendaflow/salon-scheduler/internal/domain/settlement"
	"github.com/agendaflow/salon-scheduler/internal/httperr"
	"github.com/agendaflow/salon-scheduler/internal/httpresp"
	"github.com/agendaflow/salon-scheduler/internal/middleware"
	ucAppointment "github.com/agendaflow/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	availabilityUC *ucAppointment.GetAvailability
	createUC       *ucAppointment.CreateAppointment
	rescheduleUC   *ucAppointment.RescheduleAppointment
	confirmUC      *ucAppointment.ConfirmAppointment
	cancelUC       *ucAppointment.CancelAppointment
	settleUC       *ucAppointment.SettleAppointment
	listByDateUC   *ucAppointment.ListAgendaByDate
	listByMonthUC  *ucAppointment.ListAgendaByMonth
}

func NewAppointmentHandler(
	availabilityUC *ucAppointment.GetAvailability,
	createUC *ucAppointment.CreateAppointment,
	rescheduleUC *ucAppointment.RescheduleAppointment,
	confirmUC *ucAppointment.ConfirmAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	settleUC *ucAppointment.SettleAppointment,
	listByDateUC *ucAppointment.ListAgendaByDate,
	listByMonthUC *ucAppointment.ListAgendaByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		availabilityUC: availabilityUC,
		createUC:       createUC,
		rescheduleUC:   rescheduleUC,
		confirmUC:      confirmUC,
		cancelUC:       cancelUC,
		settleUC:       settleUC,
		listByDateUC:   listByDateUC,
		listByMonthUC:  listByMonthUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName   string `json:"client_name" binding:"required"`
	ClientPhone  string `json:"client_phone" binding:"required"`
	ClientEmail  string `json:"client_email"`
	ServiceIDs   []uint `json:"service_ids" binding:"required,min=1"`
	Date         string `json:"date" binding:"required"` // YYYY-MM-DD
	Time         string `json:"time" binding:"required"` // HH:mm
	Observations string `json:"observations"`
}

type RescheduleAppointmentRequest struct {
	Date         string  `json:"date" binding:"required"`
	Time         string  `json:"time" binding:"required"`
	ServiceIDs   []uint  `json:"service_ids"`
	Observations *string `json:"observations"`
}

type SettleAppointmentRequest struct {
	PaymentMethod string                   `json:"payment_method" binding:"required"`
	ProductLines  []settlement.ProductLine `json:"product_lines"`
	Notes         string                   `json:"notes"`
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	collaboratorID := c.MustGet(middleware.ContextCollaboratorID).(uint)
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	dateStr := c.Query("date")
	serviceIDs, err := parseUintList(c.Query("service_ids"))
	if dateStr == "" || err != nil || len(serviceIDs) == 0 {
		httperr.BadRequest(c, "missing_params", "Data e serviços obrigatórios.")
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	granularity, _ := strconv.Atoi(c.DefaultQuery("granularity", "0"))
	excludeID, _ := strconv.ParseUint(c.DefaultQuery("exclude_appointment_id", "0"), 10, 64)

	result, err := h.availabilityUC.Execute(c.Request.Context(), ucAppointment.AvailabilityInput{
		CompanyID:            companyID,
		CollaboratorID:       collaboratorID,
		ServiceIDs:           serviceIDs,
		Date:                 date,
		GranularityMin:       granularity,
		ExcludeAppointmentID: uint(excludeID),
	})
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "availability_failed", "Erro ao calcular horários.")
		}
		return
	}

	httpresp.OK(c, result)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	collaboratorID := c.MustGet(middleware.ContextCollaboratorID).(uint)
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		CompanyID:      companyID,
		CollaboratorID: collaboratorID,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		ClientEmail:    req.ClientEmail,
		ServiceIDs:     req.ServiceIDs,
		Date:           req.Date,
		Time:           req.Time,
		Observations:   req.Observations,
	})
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "failed_to_create_appointment", "Erro ao criar agendamento.")
		}
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// RESCHEDULE / EDIT
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	collaboratorID := c.MustGet(middleware.ContextCollaboratorID).(uint)
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	appointmentID, ok := paramID(c)
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), ucAppointment.RescheduleAppointmentInput{
		CompanyID:      companyID,
		CollaboratorID: collaboratorID,
		AppointmentID:  appointmentID,
		Date:           req.Date,
		Time:           req.Time,
		ServiceIDs:     req.ServiceIDs,
		Observations:   req.Observations,
	})
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "failed_to_reschedule", "Erro ao remarcar agendamento.")
		}
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	collaboratorID := c.MustGet(middleware.ContextCollaboratorID).(uint)
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	appointmentID, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.confirmUC.Execute(c.Request.Context(), companyID, collaboratorID, appointmentID)
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "failed_to_confirm", "Erro ao confirmar agendamento.")
		}
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	collaboratorID := c.MustGet(middleware.ContextCollaboratorID).(uint)
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	appointmentID, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), companyID, collaboratorID, appointmentID)
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "failed_to_cancel", "Erro ao cancelar agendamento.")
		}
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// SETTLE (fechamento)
// ======================================================

func (h *AppointmentHandler) Settle(c *gin.Context) {
	collaboratorID := c.MustGet(middleware.ContextCollaboratorID).(uint)
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	appointmentID, ok := paramID(c)
	if !ok {
		return
	}

	var req SettleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	result, err := h.settleUC.Execute(c.Request.Context(), ucAppointment.SettleAppointmentInput{
		CompanyID:      companyID,
		CollaboratorID: collaboratorID,
		AppointmentID:  appointmentID,
		PaymentMethod:  req.PaymentMethod,
		ProductLines:   req.ProductLines,
		Notes:          req.Notes,
	})
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "failed_to_settle", "Erro ao fechar agendamento.")
		}
		return
	}

	httpresp.OK(c, result)
}

// ======================================================
// AGENDA
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	collaboratorID := c.MustGet(middleware.ContextCollaboratorID).(uint)
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	items, err := h.listByDateUC.Execute(c.Request.Context(), companyID, collaboratorID, date)
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "failed_to_list", "Erro ao listar agenda.")
		}
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	collaboratorID := c.MustGet(middleware.ContextCollaboratorID).(uint)
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Ano e mês inválidos.")
		return
	}

	items, err := h.listByMonthUC.Execute(
		c.Request.Context(), companyID, collaboratorID, year, time.Month(month),
	)
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "failed_to_list", "Erro ao listar agenda.")
		}
		return
	}

	httpresp.List(c, items)
}

// ======================================================
// HELPERS
// ======================================================

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

func queryUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Parâmetro "+name+" inválido.")
		return 0, false
	}
	return uint(v), true
}

func parseUintList(raw string) ([]uint, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	out := make([]uint, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, uint(v))
	}
	return out, nil
}
