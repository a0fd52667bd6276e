package events

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/agendaflow/salon-scheduler/internal/models"
)

// Store persiste cada evento como linha de auditoria (trilha consultável
// pela empresa, independente de quem assina o canal Redis).
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Save(ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		CompanyID:      ev.CompanyID,
		CollaboratorID: ev.CollaboratorID,
		Action:         ev.Action,
		Entity:         ev.Entity,
		EntityID:       ev.EntityID,
		Metadata:       metaJSON,
	}

	return s.db.Create(&row).Error
}

// ListByCompany retorna a trilha mais recente primeiro, com filtro
// opcional por ação e paginação simples.
func (s *Store) ListByCompany(
	companyID uint,
	action string,
	limit int,
	offset int,
) ([]models.AuditLog, error) {

	if limit <= 0 || limit > 200 {
		limit = 50
	}

	q := s.db.Where("company_id = ?", companyID)
	if action != "" {
		q = q.Where("action = ?", action)
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
