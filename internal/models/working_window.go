package models

import "time"

// Janela semanal recorrente de atendimento. Um colaborador pode ter mais de
// uma janela no mesmo dia (manhã e tarde, por exemplo).
type WorkingWindow struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	CollaboratorID uint `gorm:"index:idx_window_collab_weekday" json:"collaborator_id"`

	Weekday int `gorm:"index:idx_window_collab_weekday" json:"weekday"` // 0=domingo .. 6=sábado

	StartTime string `gorm:"size:5" json:"start_time"` // "09:00"
	EndTime   string `gorm:"size:5" json:"end_time"`   // "18:00"
	Active    bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
