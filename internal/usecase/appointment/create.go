package appointment

import (
	"context"
	"time"

	"github.com/agendaflow/salon-scheduler/internal/clock"
	domain "github.com/agendaflow/salon-scheduler/internal/domain/appointment"
	"github.com/agendaflow/salon-scheduler/internal/domain/schedule"
	"github.com/agendaflow/salon-scheduler/internal/events"
	"github.com/agendaflow/salon-scheduler/internal/httperr"
	"github.com/agendaflow/salon-scheduler/internal/metrics"
	"github.com/agendaflow/salon-scheduler/internal/models"
	"github.com/agendaflow/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	CompanyID      uint
	CollaboratorID uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceIDs []uint

	Date         string // "2006-01-02"
	Time         string // "15:04"
	Observations string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	events *events.Dispatcher
	clock  clock.Clock
}

func NewCreateAppointment(
	repo domain.Repository,
	dispatcher *events.Dispatcher,
	clk clock.Clock,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		events: dispatcher,
		clock:  clk,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// 1. Empresa
	company, err := uc.repo.GetCompanyByID(ctx, in.CompanyID)
	if err != nil {
		return nil, asDependencyErr(err)
	}

	// 2. Data/hora no timezone da empresa
	loc := timezone.Location(company.Timezone)
	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidInput)
	}

	// 3. Antecedência mínima: mesma política da disponibilidade.
	// Zero explícito permite agendar para já; só negativo é saneado.
	minAdvance := company.MinAdvanceMinutes
	if minAdvance < 0 {
		minAdvance = 0
	}

	now := uc.clock.NowIn(company.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness(httperr.CodeTooSoon)
	}

	// 4. Serviços do pacote: duração e preço vêm do catálogo e são congelados
	lines, totalDuration, totalPrice, err := buildServiceLines(ctx, uc.repo, in.CompanyID, in.CollaboratorID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	end := start.Add(time.Duration(totalDuration) * time.Minute)

	// 5. Janelas de atendimento (exceção de agenda incluída)
	if err := assertWithinWorkingWindows(ctx, uc.repo, in.CollaboratorID, start, end, loc); err != nil {
		return nil, err
	}

	// 6. Cliente (get or create, adota cliente sem vínculo)
	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.CompanyID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, asDependencyErr(err)
	}

	// 7. Escrita com revalidação de conflito dentro da transação
	ap := &models.Appointment{
		CompanyID:        in.CompanyID,
		CollaboratorID:   in.CollaboratorID,
		ClientID:         client.ID,
		StartTime:        start,
		EndTime:          end,
		TotalDurationMin: totalDuration,
		TotalPrice:       totalPrice,
		Status:           string(domain.InitialStatus()),
		Observations:     in.Observations,
	}

	if err := uc.repo.CreateAppointment(ctx, ap, lines); err != nil {
		if httperr.IsBusiness(err, httperr.CodeSlotTaken) {
			metrics.BookingConflicts.Inc()
			uc.events.Dispatch(events.Event{
				CompanyID:      in.CompanyID,
				CollaboratorID: &in.CollaboratorID,
				Action:         events.AppointmentConflict,
				Entity:         "appointment",
				Metadata:       map[string]any{"start": start, "end": end},
			})
			return nil, err
		}
		return nil, asDependencyErr(err)
	}

	metrics.BookingsCreated.Inc()

	// 8. Evento de domínio
	uc.events.Dispatch(events.Event{
		CompanyID:      in.CompanyID,
		CollaboratorID: &in.CollaboratorID,
		Action:         events.AppointmentCreated,
		Entity:         "appointment",
		EntityID:       &ap.ID,
	})

	return ap, nil
}

// buildServiceLines resolve o pacote de serviços e congela duração, preço e
// termos de comissão vigentes (snapshot para exibição).
func buildServiceLines(
	ctx context.Context,
	repo domain.Repository,
	companyID uint,
	collaboratorID uint,
	serviceIDs []uint,
) ([]models.AppointmentService, int, float64, error) {

	if len(serviceIDs) == 0 {
		return nil, 0, 0, httperr.ErrBusiness(httperr.CodeInvalidInput)
	}

	services, err := repo.ListServices(ctx, companyID, serviceIDs)
	if err != nil {
		return nil, 0, 0, asDependencyErr(err)
	}
	if len(services) != len(serviceIDs) {
		return nil, 0, 0, httperr.ErrBusiness("service_not_found")
	}

	rules, err := repo.GetActiveCommissionRules(ctx, collaboratorID, serviceIDs)
	if err != nil {
		return nil, 0, 0, asDependencyErr(err)
	}

	var (
		lines         []models.AppointmentService
		totalDuration int
		totalPrice    float64
	)

	for _, svc := range services {
		line := models.AppointmentService{
			ServiceID:   svc.ID,
			ServiceName: svc.Name,
			DurationMin: svc.DurationMin,
			Price:       svc.Price,
		}

		if rule, ok := rules[svc.ID]; ok {
			line.CommissionType = rule.CommissionType
			line.CommissionValue = rule.CommissionValue
		}

		totalDuration += svc.DurationMin
		totalPrice += svc.Price
		lines = append(lines, line)
	}

	if totalDuration <= 0 {
		return nil, 0, 0, httperr.ErrBusiness(httperr.CodeInvalidInput)
	}

	return lines, totalDuration, totalPrice, nil
}

// assertWithinWorkingWindows exige que [start, end) caiba inteiro em alguma
// janela resolvida do dia.
func assertWithinWorkingWindows(
	ctx context.Context,
	repo domain.Repository,
	collaboratorID uint,
	start time.Time,
	end time.Time,
	loc *time.Location,
) error {

	windows, err := repo.ListWorkingWindows(ctx, collaboratorID, int(start.Weekday()))
	if err != nil {
		return asDependencyErr(err)
	}

	exc, err := repo.GetScheduleException(ctx, collaboratorID, start.Format("2006-01-02"))
	if err != nil {
		return asDependencyErr(err)
	}

	resolved, _ := schedule.ResolveDayWindows(windows, exc, start, loc)

	for _, w := range resolved {
		if !start.Before(w.Start) && !end.After(w.End) {
			return nil
		}
	}

	return httperr.ErrBusiness(httperr.CodeOutsideWorkingHours)
}
