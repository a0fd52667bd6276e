package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/agendaflow/salon-scheduler/internal/events"
	"github.com/agendaflow/salon-scheduler/internal/httperr"
	"github.com/agendaflow/salon-scheduler/internal/httpresp"
	"github.com/agendaflow/salon-scheduler/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

// AuditHandler expõe a trilha de eventos da empresa (criações,
// remarcações, conflitos, fechamentos).
type AuditHandler struct {
	store *events.Store
}

func NewAuditHandler(store *events.Store) *AuditHandler {
	return &AuditHandler{store: store}
}

func (h *AuditHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	logs, err := h.store.ListByCompany(companyID, c.Query("action"), limit, offset)
	if err != nil {
		httperr.Internal(c, "failed_to_list_audit", "Erro ao listar eventos.")
		return
	}

	httpresp.List(c, logs)
}
