package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/agendaflow/salon-scheduler/internal/domain/appointment"
	"github.com/agendaflow/salon-scheduler/internal/httperr"
	"github.com/agendaflow/salon-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Company
// --------------------------------------------------

func (r *AppointmentGormRepository) GetCompanyByID(
	ctx context.Context,
	id uint,
) (*models.Company, error) {

	var company models.Company
	if err := r.db.WithContext(ctx).First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *AppointmentGormRepository) GetCompanyBySlug(
	ctx context.Context,
	slug string,
) (*models.Company, error) {

	var company models.Company
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveServices(
	ctx context.Context,
	companyID uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND active = true", companyID).
		Order("name ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *AppointmentGormRepository) ListServices(
	ctx context.Context,
	companyID uint,
	serviceIDs []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id IN ? AND active = true", companyID, serviceIDs).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *AppointmentGormRepository) GetActiveCommissionRules(
	ctx context.Context,
	collaboratorID uint,
	serviceIDs []uint,
) (map[uint]models.CommissionRule, error) {

	var rules []models.CommissionRule
	if err := r.db.WithContext(ctx).
		Where(
			"collaborator_id = ? AND service_id IN ? AND active = true",
			collaboratorID, serviceIDs,
		).
		Find(&rules).Error; err != nil {
		return nil, err
	}

	byService := make(map[uint]models.CommissionRule, len(rules))
	for _, rule := range rules {
		byService[rule.ServiceID] = rule
	}
	return byService, nil
}

// --------------------------------------------------
// Collaborator
// --------------------------------------------------

func (r *AppointmentGormRepository) ListCollaborators(
	ctx context.Context,
	companyID uint,
) ([]models.Collaborator, error) {

	var collabs []models.Collaborator
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND active = true", companyID).
		Order("name ASC").
		Find(&collabs).Error; err != nil {
		return nil, err
	}
	return collabs, nil
}

func (r *AppointmentGormRepository) GetCollaborator(
	ctx context.Context,
	companyID uint,
	collaboratorID uint,
) (*models.Collaborator, error) {

	var collab models.Collaborator
	if err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ? AND active = true", collaboratorID, companyID).
		First(&collab).Error; err != nil {
		return nil, err
	}
	return &collab, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	companyID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("(company_id = ? OR company_id IS NULL) AND phone = ?", companyID, phone).
		First(&client).Error

	if err == nil {
		// Reparo de dados: cliente sem vínculo passa a pertencer à empresa.
		if client.CompanyID == nil {
			client.CompanyID = &companyID
			if err := r.db.WithContext(ctx).
				Model(&client).
				Update("company_id", companyID).Error; err != nil {
				return nil, err
			}
		}
		return &client, nil
	}

	client = models.Client{
		CompanyID: &companyID,
		Name:      name,
		Phone:     phone,
		Email:     email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Calendar source
// --------------------------------------------------

func (r *AppointmentGormRepository) ListWorkingWindows(
	ctx context.Context,
	collaboratorID uint,
	weekday int,
) ([]models.WorkingWindow, error) {

	var windows []models.WorkingWindow
	if err := r.db.WithContext(ctx).
		Where("collaborator_id = ? AND weekday = ?", collaboratorID, weekday).
		Order("start_time ASC").
		Find(&windows).Error; err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *AppointmentGormRepository) GetScheduleException(
	ctx context.Context,
	collaboratorID uint,
	date string,
) (*models.ScheduleException, error) {

	// O índice único garante uma exceção por data; o Order cobre dados
	// antigos anteriores à constraint (a editada por último vence).
	var exceptions []models.ScheduleException
	if err := r.db.WithContext(ctx).
		Where("collaborator_id = ? AND date = ?", collaboratorID, date).
		Order("updated_at DESC").
		Limit(1).
		Find(&exceptions).Error; err != nil {
		return nil, err
	}

	if len(exceptions) == 0 {
		return nil, nil
	}
	return &exceptions[0], nil
}

// --------------------------------------------------
// Busy intervals
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	collaboratorID uint,
	dayStart time.Time,
	dayEnd time.Time,
	excludeID uint,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time").
		Where(
			"collaborator_id = ? AND status <> 'cancelled' AND start_time >= ? AND start_time < ?",
			collaboratorID, dayStart, dayEnd,
		)

	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Conflict-safe write
// --------------------------------------------------

// CreateAppointment revalida a sobreposição dentro da transação do insert:
// trava as linhas ativas do colaborador que tocam o intervalo pedido
// (FOR UPDATE) e só cria se nada colidir. A exclusion constraint do banco
// cobre o que escapar por corrida entre conexões.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	lines []models.AppointmentService,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := assertNoOverlap(tx, ap.CollaboratorID, ap.StartTime, ap.EndTime, 0); err != nil {
			return err
		}

		if err := tx.Create(ap).Error; err != nil {
			return err
		}

		for i := range lines {
			lines[i].AppointmentID = ap.ID
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}

		ap.Services = lines
		return nil
	})

	if httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness(httperr.CodeSlotTaken)
	}
	return err
}

// RescheduleAppointment aplica uma edição de data/horário/serviços com a
// mesma revalidação transacional, ignorando o próprio intervalo.
func (r *AppointmentGormRepository) RescheduleAppointment(
	ctx context.Context,
	ap *models.Appointment,
	lines []models.AppointmentService,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := assertNoOverlap(tx, ap.CollaboratorID, ap.StartTime, ap.EndTime, ap.ID); err != nil {
			return err
		}

		if err := tx.Omit("Services", "Company", "Collaborator", "Client").
			Save(ap).Error; err != nil {
			return err
		}

		// Novo pacote de serviços substitui o snapshot anterior
		if len(lines) > 0 {
			if err := tx.
				Where("appointment_id = ?", ap.ID).
				Delete(&models.AppointmentService{}).Error; err != nil {
				return err
			}

			for i := range lines {
				lines[i].AppointmentID = ap.ID
			}
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
			ap.Services = lines
		}

		return nil
	})

	if httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness(httperr.CodeSlotTaken)
	}
	return err
}

func assertNoOverlap(
	tx *gorm.DB,
	collaboratorID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) error {

	q := tx.Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"collaborator_id = ? AND status <> 'cancelled' AND start_time < ? AND end_time > ?",
			collaboratorID, end, start,
		)

	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}

	// Pluck em vez de Count: FOR UPDATE não aceita agregação no Postgres.
	var ids []uint
	if err := q.Pluck("id", &ids).Error; err != nil {
		return err
	}

	if len(ids) > 0 {
		return httperr.ErrBusiness(httperr.CodeSlotTaken)
	}
	return nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentForCollaborator(
	ctx context.Context,
	appointmentID uint,
	collaboratorID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Where("id = ? AND collaborator_id = ?", appointmentID, collaboratorID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", ap.ID).
		Updates(map[string]any{
			"status":       ap.Status,
			"cancelled_at": ap.CancelledAt,
			"completed_at": ap.CompletedAt,
		}).Error
}

// --------------------------------------------------
// Agenda reads
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	collaboratorID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Services").
		Where(
			"collaborator_id = ? AND start_time >= ? AND start_time < ?",
			collaboratorID, start, end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
