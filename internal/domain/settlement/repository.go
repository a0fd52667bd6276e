package settlement

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agendaflow/salon-scheduler/internal/models"
)

// ProductLine é uma linha de venda de produto informada no fechamento.
type ProductLine struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// StockWarning registra uma baixa de estoque que falhou depois do commit
// financeiro. Nunca reverte a receita já reconhecida; vai para a fila de
// reparo do operador.
type StockWarning struct {
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

// Result é a resposta da liquidação.
type Result struct {
	AppointmentID   uint           `json:"appointment_id"`
	CommissionTotal float64        `json:"commission_total"`
	Status          string         `json:"status"`
	LedgerEntryIDs  []uuid.UUID    `json:"ledger_entry_ids"`
	StockWarnings   []StockWarning `json:"stock_warnings,omitempty"`
}

// CommitInput agrupa tudo que precisa entrar na transação financeira.
type CommitInput struct {
	AppointmentID uint
	CompletedAt   time.Time
	Entries       []models.CashLedgerEntry
	SaleLines     []models.ProductSaleLine
}

type Repository interface {
	// GetActiveRules indexa por service_id as regras ativas do colaborador.
	GetActiveRules(
		ctx context.Context,
		collaboratorID uint,
		serviceIDs []uint,
	) (map[uint]models.CommissionRule, error)

	ListProducts(
		ctx context.Context,
		companyID uint,
		productIDs []uint,
	) ([]models.Product, error)

	// CommitSettlement roda em uma única transação: trava o agendamento,
	// revalida o guard de idempotência (status ativo), marca completed e
	// grava lançamentos + linhas de venda. Agendamento já terminal resulta
	// em invalid_transition e nada é persistido.
	CommitSettlement(ctx context.Context, in CommitInput) error

	// DecrementStock baixa o estoque condicionalmente
	// (stock_quantity >= quantity). Roda fora da transação financeira.
	DecrementStock(ctx context.Context, productID uint, quantity int) error
}
