package models

import "time"

type Product struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `gorm:"index" json:"company_id"`

	Name          string  `gorm:"size:100;not null" json:"name"`
	UnitPrice     float64 `json:"unit_price"`
	StockQuantity int     `json:"stock_quantity"`
	Active        bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Venda de produto registrada na liquidação de um agendamento.
type ProductSaleLine struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index" json:"appointment_id"`
	ProductID     uint `json:"product_id"`

	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`

	CreatedAt time.Time `json:"created_at"`
}
