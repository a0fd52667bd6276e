package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CompanyID uint    `json:"company_id"`
	Company   Company `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"company"`

	CollaboratorID uint         `gorm:"index" json:"collaborator_id"`
	Collaborator   Collaborator `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"collaborator"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// Somas denormalizadas dos serviços vinculados, congeladas na criação/edição.
	// Não são recalculadas se o catálogo mudar depois.
	TotalDurationMin int     `json:"total_duration_min"`
	TotalPrice       float64 `json:"total_price"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Observations string     `gorm:"size:255" json:"observations"`
	CancelledAt  *time.Time `json:"cancelled_at"`
	CompletedAt  *time.Time `json:"completed_at"`

	Services []AppointmentService `gorm:"foreignKey:AppointmentID" json:"services"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Linha de serviço do agendamento. Nome, preço e termos de comissão são um
// snapshot do momento da reserva (exibição); a liquidação consulta a regra
// ativa em CommissionRule.
type AppointmentService struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index" json:"appointment_id"`
	ServiceID     uint `json:"service_id"`

	ServiceName string  `gorm:"size:100" json:"service_name"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`

	CommissionType  string  `gorm:"size:10" json:"commission_type"` // "PERCENT" | "FIXED" | ""
	CommissionValue float64 `json:"commission_value"`

	CreatedAt time.Time `json:"created_at"`
}
