package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	LedgerIncome  = "INCOME"
	LedgerExpense = "EXPENSE"
)

// Lançamento financeiro append-only. Nunca é alterado ou removido depois de
// inserido; correções entram como novos lançamentos.
type CashLedgerEntry struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	CompanyID     uint  `gorm:"index" json:"company_id"`
	AppointmentID *uint `gorm:"index" json:"appointment_id"`

	Amount float64 `json:"amount"`
	Type   string  `gorm:"size:10;not null" json:"type"` // INCOME | EXPENSE
	Method string  `gorm:"size:30" json:"method"`

	TransactionDate time.Time `json:"transaction_date"`
	Notes           string    `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
}
