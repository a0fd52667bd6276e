package schedule

import (
	"context"

	"github.com/agendaflow/salon-scheduler/internal/models"
)

// AdminRepository mantém a grade recorrente e as exceções de um
// colaborador. A leitura usada no cálculo de disponibilidade fica no
// repositório de agendamentos.
type AdminRepository interface {
	ListWindows(
		ctx context.Context,
		collaboratorID uint,
	) ([]models.WorkingWindow, error)

	// ReplaceWindows troca a grade inteira de forma atômica.
	ReplaceWindows(
		ctx context.Context,
		collaboratorID uint,
		windows []models.WorkingWindow,
	) ([]models.WorkingWindow, error)

	ListExceptions(
		ctx context.Context,
		collaboratorID uint,
		from string,
		to string,
	) ([]models.ScheduleException, error)

	// UpsertException grava a exceção do dia; no máximo uma por data.
	UpsertException(
		ctx context.Context,
		exc *models.ScheduleException,
	) (*models.ScheduleException, error)

	DeleteException(
		ctx context.Context,
		collaboratorID uint,
		date string,
	) error
}
