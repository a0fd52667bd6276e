package models

import "time"

// Exceção pontual de agenda: folga ou horário especial para uma data exata.
// Índice único em (collaborator_id, date): no máximo uma exceção por dia.
type ScheduleException struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	CollaboratorID uint `gorm:"uniqueIndex:idx_exception_collab_date" json:"collaborator_id"`

	Date   string `gorm:"size:10;uniqueIndex:idx_exception_collab_date" json:"date"` // "2006-01-02"
	DayOff bool   `json:"day_off"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Reason    string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
