package appointment

import (
	"context"
	"time"

	"github.com/agendaflow/salon-scheduler/internal/clock"
	domain "github.com/agendaflow/salon-scheduler/internal/domain/appointment"
	"github.com/agendaflow/salon-scheduler/internal/events"
	"github.com/agendaflow/salon-scheduler/internal/httperr"
	"github.com/agendaflow/salon-scheduler/internal/metrics"
	"github.com/agendaflow/salon-scheduler/internal/models"
	"github.com/agendaflow/salon-scheduler/internal/timezone"
)

type RescheduleAppointmentInput struct {
	CompanyID      uint
	CollaboratorID uint
	AppointmentID  uint

	Date string
	Time string

	// Vazio mantém o pacote de serviços atual.
	ServiceIDs []uint

	Observations *string
}

// RescheduleAppointment edita data/horário/serviços de um agendamento vivo.
// Toda edição passa de novo pela escrita conflict-safe, excluindo o próprio
// intervalo do conjunto ocupado.
type RescheduleAppointment struct {
	repo   domain.Repository
	events *events.Dispatcher
	clock  clock.Clock
}

func NewRescheduleAppointment(
	repo domain.Repository,
	dispatcher *events.Dispatcher,
	clk clock.Clock,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:   repo,
		events: dispatcher,
		clock:  clk,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	company, err := uc.repo.GetCompanyByID(ctx, in.CompanyID)
	if err != nil {
		return nil, asDependencyErr(err)
	}

	ap, err := uc.repo.GetAppointmentForCollaborator(ctx, in.AppointmentID, in.CollaboratorID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CanEdit(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	loc := timezone.Location(company.Timezone)
	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidInput)
	}

	// Pacote de serviços: novo snapshot quando informado, senão mantém
	var lines []models.AppointmentService
	totalDuration := ap.TotalDurationMin
	totalPrice := ap.TotalPrice

	if len(in.ServiceIDs) > 0 {
		lines, totalDuration, totalPrice, err = buildServiceLines(
			ctx, uc.repo, in.CompanyID, in.CollaboratorID, in.ServiceIDs,
		)
		if err != nil {
			return nil, err
		}
	}

	end := start.Add(time.Duration(totalDuration) * time.Minute)

	if err := assertWithinWorkingWindows(ctx, uc.repo, in.CollaboratorID, start, end, loc); err != nil {
		return nil, err
	}

	ap.StartTime = start
	ap.EndTime = end
	ap.TotalDurationMin = totalDuration
	ap.TotalPrice = totalPrice
	if in.Observations != nil {
		ap.Observations = *in.Observations
	}

	if err := uc.repo.RescheduleAppointment(ctx, ap, lines); err != nil {
		if httperr.IsBusiness(err, httperr.CodeSlotTaken) {
			metrics.BookingConflicts.Inc()
			return nil, err
		}
		return nil, asDependencyErr(err)
	}

	uc.events.Dispatch(events.Event{
		CompanyID:      in.CompanyID,
		CollaboratorID: &in.CollaboratorID,
		Action:         events.AppointmentRescheduled,
		Entity:         "appointment",
		EntityID:       &ap.ID,
		Metadata:       map[string]any{"start": start, "end": end},
	})

	return ap, nil
}
