package appointment

import (
	"context"

	"github.com/agendaflow/salon-scheduler/internal/clock"
	domain "github.com/agendaflow/salon-scheduler/internal/domain/appointment"
	"github.com/agendaflow/salon-scheduler/internal/events"
	"github.com/agendaflow/salon-scheduler/internal/httperr"
	"github.com/agendaflow/salon-scheduler/internal/models"
)

// CancelAppointment encerra o agendamento e libera o horário na hora: o
// status cancelado some do conjunto ocupado da disponibilidade.
type CancelAppointment struct {
	repo   domain.Repository
	events *events.Dispatcher
	clock  clock.Clock
}

func NewCancelAppointment(
	repo domain.Repository,
	dispatcher *events.Dispatcher,
	clk clock.Clock,
) *CancelAppointment {
	return &CancelAppointment{
		repo:   repo,
		events: dispatcher,
		clock:  clk,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	companyID uint,
	collaboratorID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	company, err := uc.repo.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, asDependencyErr(err)
	}

	ap, err := uc.repo.GetAppointmentForCollaborator(ctx, appointmentID, collaboratorID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := uc.clock.NowIn(company.Timezone)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointmentStatus(ctx, ap); err != nil {
		return nil, asDependencyErr(err)
	}

	uc.events.Dispatch(events.Event{
		CompanyID:      companyID,
		CollaboratorID: &collaboratorID,
		Action:         events.AppointmentCancelled,
		Entity:         "appointment",
		EntityID:       &ap.ID,
	})

	return ap, nil
}
