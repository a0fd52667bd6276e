package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/agendaflow/salon-scheduler/internal/domain/appointment"
	"github.com/agendaflow/salon-scheduler/internal/httperr"
	"github.com/agendaflow/salon-scheduler/internal/httpresp"
	"github.com/agendaflow/salon-scheduler/internal/models"
	ucAppointment "github.com/agendaflow/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// PublicHandler atende a página pública de agendamento (por slug da
// empresa, sem autenticação).
type PublicHandler struct {
	repo           domain.Repository
	availabilityUC *ucAppointment.GetAvailability
	createUC       *ucAppointment.CreateAppointment
}

func NewPublicHandler(
	repo domain.Repository,
	availabilityUC *ucAppointment.GetAvailability,
	createUC *ucAppointment.CreateAppointment,
) *PublicHandler {
	return &PublicHandler{
		repo:           repo,
		availabilityUC: availabilityUC,
		createUC:       createUC,
	}
}

// ======================================================
// DTOs
// ======================================================

type PublicCompanyDTO struct {
	Name              string `json:"name"`
	Slug              string `json:"slug"`
	Timezone          string `json:"timezone"`
	MinAdvanceMinutes int    `json:"min_advance_minutes"`
}

type PublicServiceDTO struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`
}

type PublicCollaboratorDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type PublicBookingRequest struct {
	CollaboratorID uint   `json:"collaborator_id" binding:"required"`
	ClientName     string `json:"client_name" binding:"required"`
	ClientPhone    string `json:"client_phone" binding:"required"`
	ClientEmail    string `json:"client_email"`
	ServiceIDs     []uint `json:"service_ids" binding:"required,min=1"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	Observations   string `json:"observations"`
}

// ======================================================
// COMPANY / CATALOG
// ======================================================

func (h *PublicHandler) GetCompany(c *gin.Context) {
	company, err := h.companyBySlug(c)
	if err != nil {
		return
	}

	httpresp.OK(c, PublicCompanyDTO{
		Name:              company.Name,
		Slug:              company.Slug,
		Timezone:          company.Timezone,
		MinAdvanceMinutes: company.MinAdvanceMinutes,
	})
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	company, err := h.companyBySlug(c)
	if err != nil {
		return
	}

	services, err := h.repo.ListActiveServices(c.Request.Context(), company.ID)
	if err != nil {
		httperr.ServiceUnavailable(c, "catalog_unavailable", "Catálogo indisponível no momento.")
		return
	}

	out := make([]PublicServiceDTO, 0, len(services))
	for _, s := range services {
		out = append(out, PublicServiceDTO{
			ID:          s.ID,
			Name:        s.Name,
			DurationMin: s.DurationMin,
			Price:       s.Price,
		})
	}
	httpresp.List(c, out)
}

func (h *PublicHandler) ListCollaborators(c *gin.Context) {
	company, err := h.companyBySlug(c)
	if err != nil {
		return
	}

	collabs, err := h.repo.ListCollaborators(c.Request.Context(), company.ID)
	if err != nil {
		httperr.ServiceUnavailable(c, "catalog_unavailable", "Catálogo indisponível no momento.")
		return
	}

	out := make([]PublicCollaboratorDTO, 0, len(collabs))
	for _, col := range collabs {
		out = append(out, PublicCollaboratorDTO{ID: col.ID, Name: col.Name})
	}
	httpresp.List(c, out)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	company, err := h.companyBySlug(c)
	if err != nil {
		return
	}

	collaboratorID, ok := queryUint(c, "collaborator_id")
	if !ok {
		return
	}

	serviceIDs, errIDs := parseUintList(c.Query("service_ids"))
	dateStr := c.Query("date")
	if errIDs != nil || len(serviceIDs) == 0 || dateStr == "" {
		httperr.BadRequest(c, "missing_params", "Data e serviços obrigatórios.")
		return
	}

	date, errDate := time.Parse("2006-01-02", dateStr)
	if errDate != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	// Colaborador precisa pertencer à empresa do slug.
	if _, err := h.repo.GetCollaborator(c.Request.Context(), company.ID, collaboratorID); err != nil {
		httperr.NotFound(c, "collaborator_not_found", "Profissional não encontrado.")
		return
	}

	result, err := h.availabilityUC.Execute(c.Request.Context(), ucAppointment.AvailabilityInput{
		CompanyID:      company.ID,
		CollaboratorID: collaboratorID,
		ServiceIDs:     serviceIDs,
		Date:           date,
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
// BOOKING
// ======================================================

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	company, err := h.companyBySlug(c)
	if err != nil {
		return
	}

	var req PublicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if _, err := h.repo.GetCollaborator(c.Request.Context(), company.ID, req.CollaboratorID); err != nil {
		httperr.NotFound(c, "collaborator_not_found", "Profissional não encontrado.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		CompanyID:      company.ID,
		CollaboratorID: req.CollaboratorID,
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
// HELPERS
// ======================================================

func (h *PublicHandler) companyBySlug(c *gin.Context) (*models.Company, error) {
	slug := c.Param("slug")
	company, err := h.repo.GetCompanyBySlug(c.Request.Context(), slug)
	if err != nil {
		httperr.NotFound(c, "company_not_found", "Empresa não encontrada.")
		return nil, err
	}
	return company, nil
}
