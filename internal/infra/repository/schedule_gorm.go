package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/agendaflow/salon-scheduler/internal/domain/schedule"
	"github.com/agendaflow/salon-scheduler/internal/models"
)

// ======================================================
// REPOSITÓRIO DE GRADE (gorm)
// ======================================================

type ScheduleGormRepository struct {
	db *gorm.DB
}

var _ schedule.AdminRepository = (*ScheduleGormRepository)(nil)

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Janelas recorrentes
// --------------------------------------------------

func (r *ScheduleGormRepository) ListWindows(
	ctx context.Context,
	collaboratorID uint,
) ([]models.WorkingWindow, error) {

	var windows []models.WorkingWindow
	if err := r.db.WithContext(ctx).
		Where("collaborator_id = ?", collaboratorID).
		Order("weekday ASC, start_time ASC").
		Find(&windows).Error; err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *ScheduleGormRepository) ReplaceWindows(
	ctx context.Context,
	collaboratorID uint,
	windows []models.WorkingWindow,
) ([]models.WorkingWindow, error) {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("collaborator_id = ?", collaboratorID).
			Delete(&models.WorkingWindow{}).Error; err != nil {
			return err
		}

		for i := range windows {
			windows[i].ID = 0
			windows[i].CollaboratorID = collaboratorID
		}
		if len(windows) == 0 {
			return nil
		}
		return tx.Create(&windows).Error
	})
	if err != nil {
		return nil, err
	}
	return windows, nil
}

// --------------------------------------------------
// Exceções
// --------------------------------------------------

func (r *ScheduleGormRepository) ListExceptions(
	ctx context.Context,
	collaboratorID uint,
	from string,
	to string,
) ([]models.ScheduleException, error) {

	q := r.db.WithContext(ctx).Where("collaborator_id = ?", collaboratorID)
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}

	var excs []models.ScheduleException
	if err := q.Order("date ASC").Find(&excs).Error; err != nil {
		return nil, err
	}
	return excs, nil
}

func (r *ScheduleGormRepository) UpsertException(
	ctx context.Context,
	exc *models.ScheduleException,
) (*models.ScheduleException, error) {

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "collaborator_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"day_off", "start_time", "end_time", "reason", "updated_at",
			}),
		}).
		Create(exc).Error
	if err != nil {
		return nil, err
	}
	return exc, nil
}

func (r *ScheduleGormRepository) DeleteException(
	ctx context.Context,
	collaboratorID uint,
	date string,
) error {

	return r.db.WithContext(ctx).
		Where("collaborator_id = ? AND date = ?", collaboratorID, date).
		Delete(&models.ScheduleException{}).Error
}
