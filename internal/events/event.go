package events

import (
	"time"

	"github.com/google/uuid"
)

// Ações publicadas pelo motor de agenda. Read-models externos assinam o
// canal Redis em vez de re-consultar a API depois de cada mutação.
const (
	AppointmentCreated     = "appointment_created"
	AppointmentConfirmed   = "appointment_confirmed"
	AppointmentRescheduled = "appointment_rescheduled"
	AppointmentCancelled   = "appointment_cancelled"
	AppointmentCompleted   = "appointment_completed"
	AppointmentConflict    = "appointment_conflict"
	SettlementStockRepair  = "settlement_stock_repair"
)

type Event struct {
	ID             uuid.UUID `json:"id"`
	CompanyID      uint      `json:"company_id"`
	CollaboratorID *uint     `json:"collaborator_id,omitempty"`
	Action         string    `json:"action"`
	Entity         string    `json:"entity"`
	EntityID       *uint     `json:"entity_id,omitempty"`
	Metadata       any       `json:"metadata,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
