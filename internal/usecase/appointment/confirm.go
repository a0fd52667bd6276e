package appointment

import (
	"context"

	domain "github.com/agendaflow/salon-scheduler/internal/domain/appointment"
	"github.com/agendaflow/salon-scheduler/internal/events"
	"github.com/agendaflow/salon-scheduler/internal/httperr"
	"github.com/agendaflow/salon-scheduler/internal/models"
)

// ConfirmAppointment marca a confirmação da equipe. É bookkeeping opcional:
// nenhum outro fluxo depende dela.
type ConfirmAppointment struct {
	repo   domain.Repository
	events *events.Dispatcher
}

func NewConfirmAppointment(
	repo domain.Repository,
	dispatcher *events.Dispatcher,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		repo:   repo,
		events: dispatcher,
	}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	companyID uint,
	collaboratorID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForCollaborator(ctx, appointmentID, collaboratorID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.Confirm(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointmentStatus(ctx, ap); err != nil {
		return nil, asDependencyErr(err)
	}

	uc.events.Dispatch(events.Event{
		CompanyID:      companyID,
		CollaboratorID: &collaboratorID,
		Action:         events.AppointmentConfirmed,
		Entity:         "appointment",
		EntityID:       &ap.ID,
	})

	return ap, nil
}
