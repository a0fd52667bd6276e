package models

import "time"

// Cliente simples, sem login. CompanyID é nulo enquanto o cliente ainda não
// foi vinculado a nenhuma empresa (vínculo acontece no primeiro agendamento
// público, ver usecase de criação).
type Client struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	CompanyID *uint `gorm:"index" json:"company_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20;index" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
