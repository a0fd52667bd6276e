package appointment

import "github.com/agendaflow/salon-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// IsTerminal indica estados finais: nenhuma transição sai deles.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// IsActive indica se o agendamento ainda aceita transições e edição.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// OccupiesSlot indica se o agendamento bloqueia o horário na agenda.
// Só o cancelamento libera o slot; concluir (liquidar) não libera.
func (s Status) OccupiesSlot() bool {
	return s != StatusCancelled
}

// ===============================
// Validations
// ===============================

// CanConfirm: confirmação é opcional e só vale a partir de pending.
func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	if !current.IsActive() {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}

// CanComplete define se um agendamento pode ser concluído (via liquidação).
// pending → completed é válido: confirmar é bookkeeping, não pré-requisito.
func CanComplete(current Status) error {
	if !current.IsActive() {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}

// CanEdit: data/horário/serviços só mudam enquanto o agendamento está vivo.
func CanEdit(current Status) error {
	if !current.IsActive() {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}

// InitialStatus valida status inicial
func InitialStatus() Status {
	return StatusPending
}
