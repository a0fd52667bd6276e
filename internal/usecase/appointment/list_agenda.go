package appointment

import (
	"context"
	"time"

	domain "github.com/agendaflow/salon-scheduler/internal/domain/appointment"
	"github.com/agendaflow/salon-scheduler/internal/dto"
	"github.com/agendaflow/salon-scheduler/internal/timezone"
)

type ListAgendaByDate struct {
	repo domain.Repository
}

func NewListAgendaByDate(repo domain.Repository) *ListAgendaByDate {
	return &ListAgendaByDate{repo: repo}
}

func (uc *ListAgendaByDate) Execute(
	ctx context.Context,
	companyID uint,
	collaboratorID uint,
	date time.Time,
) ([]dto.AgendaItemDTO, error) {

	company, err := uc.repo.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, asDependencyErr(err)
	}

	loc := timezone.Location(company.Timezone)

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24 * time.Hour)

	return uc.list(ctx, collaboratorID, start, end)
}

func (uc *ListAgendaByDate) list(
	ctx context.Context,
	collaboratorID uint,
	start time.Time,
	end time.Time,
) ([]dto.AgendaItemDTO, error) {

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, collaboratorID, start, end)
	if err != nil {
		return nil, asDependencyErr(err)
	}

	out := make([]dto.AgendaItemDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.BuildAgendaItem(ap))
	}

	return out, nil
}

type ListAgendaByMonth struct {
	repo domain.Repository
}

func NewListAgendaByMonth(repo domain.Repository) *ListAgendaByMonth {
	return &ListAgendaByMonth{repo: repo}
}

func (uc *ListAgendaByMonth) Execute(
	ctx context.Context,
	companyID uint,
	collaboratorID uint,
	year int,
	month time.Month,
) ([]dto.AgendaItemDTO, error) {

	company, err := uc.repo.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, asDependencyErr(err)
	}

	loc := timezone.Location(company.Timezone)

	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, collaboratorID, start, end)
	if err != nil {
		return nil, asDependencyErr(err)
	}

	out := make([]dto.AgendaItemDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.BuildAgendaItem(ap))
	}

	return out, nil
}
