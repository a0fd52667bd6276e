package models

import "time"

const (
	CommissionPercent = "PERCENT"
	CommissionFixed   = "FIXED"
)

// Regra de comissão vigente por (colaborador, serviço). A liquidação usa a
// regra ativa no momento do fechamento.
type CommissionRule struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	CollaboratorID uint `gorm:"index:idx_commission_collab_service" json:"collaborator_id"`
	ServiceID      uint `gorm:"index:idx_commission_collab_service" json:"service_id"`

	CommissionType  string  `gorm:"size:10;not null" json:"commission_type"`
	CommissionValue float64 `json:"commission_value"`
	Active          bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
