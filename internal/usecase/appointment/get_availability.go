package appointment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/agendaflow/salon-scheduler/internal/clock"
	domain "github.com/agendaflow/salon-scheduler/internal/domain/appointment"
	"github.com/agendaflow/salon-scheduler/internal/domain/schedule"
	"github.com/agendaflow/salon-scheduler/internal/httperr"
	"github.com/agendaflow/salon-scheduler/internal/logger"
	"github.com/agendaflow/salon-scheduler/internal/timezone"
)

const DefaultGranularityMin = 30

type AvailabilityInput struct {
	CompanyID      uint
	CollaboratorID uint
	ServiceIDs     []uint
	Date           time.Time
	GranularityMin int

	// Caso "editando o meu próprio horário": o intervalo desse agendamento
	// não conta como ocupado.
	ExcludeAppointmentID uint
}

type AvailabilityResult struct {
	Slots []schedule.TimeSlot `json:"slots"`

	// Preenchido quando uma exceção de agenda malformada foi ignorada e as
	// janelas recorrentes foram usadas no lugar.
	Warning string `json:"warning,omitempty"`
}

type GetAvailability struct {
	repo  domain.Repository
	clock clock.Clock
}

func NewGetAvailability(repo domain.Repository, clk clock.Clock) *GetAvailability {
	return &GetAvailability{repo: repo, clock: clk}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (*AvailabilityResult, error) {

	company, err := uc.repo.GetCompanyByID(ctx, in.CompanyID)
	if err != nil {
		return nil, asDependencyErr(err)
	}

	loc := timezone.Location(company.Timezone)
	date := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, loc)

	// Duração total vem do catálogo, nunca do chamador.
	services, err := uc.repo.ListServices(ctx, in.CompanyID, in.ServiceIDs)
	if err != nil {
		return nil, asDependencyErr(err)
	}
	if len(services) != len(in.ServiceIDs) {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	totalDuration := 0
	for _, svc := range services {
		totalDuration += svc.DurationMin
	}
	if totalDuration <= 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidInput)
	}

	granularity := in.GranularityMin
	if granularity == 0 {
		granularity = DefaultGranularityMin
	}
	if granularity < 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidInput)
	}

	// 1. Janelas do dia (exceção de agenda tem precedência)
	windows, err := uc.repo.ListWorkingWindows(ctx, in.CollaboratorID, int(date.Weekday()))
	if err != nil {
		return nil, asDependencyErr(err)
	}

	exc, err := uc.repo.GetScheduleException(ctx, in.CollaboratorID, date.Format("2006-01-02"))
	if err != nil {
		return nil, asDependencyErr(err)
	}

	resolved, malformed := schedule.ResolveDayWindows(windows, exc, date, loc)

	result := &AvailabilityResult{Slots: []schedule.TimeSlot{}}
	if malformed {
		result.Warning = "exceção de agenda com horário incompleto foi ignorada"
		logger.WithFields(logger.Fields{
			"collaborator_id": in.CollaboratorID,
			"date":            date.Format("2006-01-02"),
		}).Warn("availability: exceção de agenda malformada, usando janelas recorrentes")
	}

	if len(resolved) == 0 {
		return result, nil
	}

	// 2. Intervalos ocupados (agendamentos ativos do dia)
	busyAps, err := uc.repo.ListAppointmentsForDay(
		ctx,
		in.CollaboratorID,
		date,
		date.Add(24*time.Hour),
		in.ExcludeAppointmentID,
	)
	if err != nil {
		return nil, asDependencyErr(err)
	}

	busy := make([]domain.Interval, 0, len(busyAps))
	for _, ap := range busyAps {
		busy = append(busy, domain.Interval{Start: ap.StartTime, End: ap.EndTime})
	}

	// 3-5. Candidatos por janela, filtrados e ordenados
	duration := time.Duration(totalDuration) * time.Minute
	slots, err := schedule.GenerateSlots(resolved, busy, duration, time.Duration(granularity)*time.Minute)
	if err != nil {
		return nil, err
	}

	// Política de passado: nada antes de agora + antecedência mínima da empresa.
	minAdvance := company.MinAdvanceMinutes
	if minAdvance < 0 {
		minAdvance = 0
	}
	limit := uc.clock.NowIn(company.Timezone).Add(time.Duration(minAdvance) * time.Minute)
	slots = schedule.FilterBefore(slots, limit)

	for _, s := range slots {
		result.Slots = append(result.Slots, schedule.TimeSlot{
			Start: s.Format("15:04"),
			End:   s.Add(duration).Format("15:04"),
		})
	}

	return result, nil
}

// asDependencyErr traduz falhas de leitura do store em erro retryable,
// preservando "não encontrado" como erro de negócio.
func asDependencyErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness("not_found")
	}
	logger.WithError(err).Error("store indisponível")
	return httperr.ErrBusiness(httperr.CodeDependencyUnavailable)
}
