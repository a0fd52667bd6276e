package appointment

import (
	"context"
	"time"

	"github.com/agendaflow/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Company --------
	GetCompanyByID(
		ctx context.Context,
		id uint,
	) (*models.Company, error)

	GetCompanyBySlug(
		ctx context.Context,
		slug string,
	) (*models.Company, error)

	// -------- Catalog --------
	// ListActiveServices retorna o catálogo público (somente ativos).
	ListActiveServices(
		ctx context.Context,
		companyID uint,
	) ([]models.Service, error)

	ListServices(
		ctx context.Context,
		companyID uint,
		serviceIDs []uint,
	) ([]models.Service, error)

	// GetActiveCommissionRules indexa por service_id as regras ativas do
	// colaborador (snapshot de termos gravado na reserva).
	GetActiveCommissionRules(
		ctx context.Context,
		collaboratorID uint,
		serviceIDs []uint,
	) (map[uint]models.CommissionRule, error)

	// -------- Collaborator --------
	ListCollaborators(
		ctx context.Context,
		companyID uint,
	) ([]models.Collaborator, error)

	GetCollaborator(
		ctx context.Context,
		companyID uint,
		collaboratorID uint,
	) (*models.Collaborator, error)

	// -------- Client --------
	// GetOrCreateClient localiza o cliente pelo telefone e, se necessário,
	// cria o registro já vinculado à empresa. Cliente existente sem vínculo
	// é adotado pela empresa (reparo de dados, não invariante).
	GetOrCreateClient(
		ctx context.Context,
		companyID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Calendar source --------
	ListWorkingWindows(
		ctx context.Context,
		collaboratorID uint,
		weekday int,
	) ([]models.WorkingWindow, error)

	// GetScheduleException retorna nil sem erro quando não há exceção.
	GetScheduleException(
		ctx context.Context,
		collaboratorID uint,
		date string,
	) (*models.ScheduleException, error)

	// -------- Busy intervals --------
	// Somente agendamentos ativos (pending/confirmed); excludeID > 0 remove o
	// próprio agendamento do conjunto (caso "editando o meu horário").
	ListAppointmentsForDay(
		ctx context.Context,
		collaboratorID uint,
		dayStart time.Time,
		dayEnd time.Time,
		excludeID uint,
	) ([]models.Appointment, error)

	// -------- Conflict-safe write --------
	// Revalidam a sobreposição dentro da mesma transação do insert/update
	// (SELECT ... FOR UPDATE) e falham com slot_taken em conflito.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		lines []models.AppointmentService,
	) error

	RescheduleAppointment(
		ctx context.Context,
		ap *models.Appointment,
		lines []models.AppointmentService,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForCollaborator(
		ctx context.Context,
		appointmentID uint,
		collaboratorID uint,
	) (*models.Appointment, error)

	UpdateAppointmentStatus(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Agenda reads --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		collaboratorID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
