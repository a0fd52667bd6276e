package appointment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/agendaflow/salon-scheduler/internal/clock"
	domain "github.com/agendaflow/salon-scheduler/internal/domain/appointment"
	"github.com/agendaflow/salon-scheduler/internal/domain/settlement"
	"github.com/agendaflow/salon-scheduler/internal/events"
	"github.com/agendaflow/salon-scheduler/internal/httperr"
	"github.com/agendaflow/salon-scheduler/internal/logger"
	"github.com/agendaflow/salon-scheduler/internal/metrics"
	"github.com/agendaflow/salon-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type SettleAppointmentInput struct {
	CompanyID      uint
	CollaboratorID uint
	AppointmentID  uint

	PaymentMethod string
	ProductLines  []settlement.ProductLine
	Notes         string
}

// ======================================================
// USE CASE
// ======================================================

// SettleAppointment fecha o agendamento: marca completed, calcula comissão
// pelas regras ativas, grava os lançamentos de caixa e registra a venda de
// produtos. Status + financeiro são uma transação só; a baixa de estoque roda
// depois do commit e nunca reverte a receita reconhecida.
type SettleAppointment struct {
	repo       domain.Repository
	settleRepo settlement.Repository
	events     *events.Dispatcher
	clock      clock.Clock
}

func NewSettleAppointment(
	repo domain.Repository,
	settleRepo settlement.Repository,
	dispatcher *events.Dispatcher,
	clk clock.Clock,
) *SettleAppointment {
	return &SettleAppointment{
		repo:       repo,
		settleRepo: settleRepo,
		events:     dispatcher,
		clock:      clk,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *SettleAppointment) Execute(
	ctx context.Context,
	in SettleAppointmentInput,
) (*settlement.Result, error) {

	company, err := uc.repo.GetCompanyByID(ctx, in.CompanyID)
	if err != nil {
		return nil, asDependencyErr(err)
	}

	ap, err := uc.repo.GetAppointmentForCollaborator(ctx, in.AppointmentID, in.CollaboratorID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	// 1. Guard de idempotência (revalidado dentro da transação de commit)
	if err := domain.CanComplete(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	// 2. Comissão pelas regras ativas de (colaborador, serviço)
	serviceIDs := make([]uint, 0, len(ap.Services))
	for _, line := range ap.Services {
		serviceIDs = append(serviceIDs, line.ServiceID)
	}

	rules, err := uc.settleRepo.GetActiveRules(ctx, ap.CollaboratorID, serviceIDs)
	if err != nil {
		return nil, asDependencyErr(err)
	}

	commissionTotal, commissionLines := settlement.ComputeCommission(ap.Services, rules)

	// 3. Linhas de venda de produto
	saleLines, productsTotal, err := uc.buildSaleLines(ctx, in)
	if err != nil {
		return nil, err
	}

	// 4. Lançamentos: despesa de comissão (datada no dia do atendimento, não
	// em "agora") e receita de serviços + produtos
	var entries []models.CashLedgerEntry

	if commissionTotal > 0 {
		entries = append(entries, models.CashLedgerEntry{
			ID:              uuid.New(),
			CompanyID:       in.CompanyID,
			AppointmentID:   &ap.ID,
			Amount:          commissionTotal,
			Type:            models.LedgerExpense,
			Method:          "commission",
			TransactionDate: ap.StartTime,
			Notes:           settlement.Breakdown(commissionLines),
		})
	}

	entries = append(entries, models.CashLedgerEntry{
		ID:              uuid.New(),
		CompanyID:       in.CompanyID,
		AppointmentID:   &ap.ID,
		Amount:          ap.TotalPrice + productsTotal,
		Type:            models.LedgerIncome,
		Method:          in.PaymentMethod,
		TransactionDate: ap.StartTime,
		Notes:           in.Notes,
	})

	// 5. Transação financeira: status + lançamentos + linhas de venda
	completedAt := uc.clock.NowIn(company.Timezone)

	err = uc.settleRepo.CommitSettlement(ctx, settlement.CommitInput{
		AppointmentID: ap.ID,
		CompletedAt:   completedAt,
		Entries:       entries,
		SaleLines:     saleLines,
	})
	if err != nil {
		if httperr.BusinessCode(err) != "" {
			return nil, err
		}
		return nil, asDependencyErr(err)
	}

	metrics.Settlements.Inc()

	result := &settlement.Result{
		AppointmentID:   ap.ID,
		CommissionTotal: commissionTotal,
	}
	for _, e := range entries {
		result.LedgerEntryIDs = append(result.LedgerEntryIDs, e.ID)
	}

	// 6. Baixa de estoque, fora da transação: falha aqui não desfaz o
	// financeiro, vira pendência na fila do operador
	result.StockWarnings = uc.decrementStock(ctx, in, ap)
	result.Status = "settled"
	if len(result.StockWarnings) > 0 {
		result.Status = httperr.CodeSettlementPartial
	}

	uc.events.Dispatch(events.Event{
		CompanyID:      in.CompanyID,
		CollaboratorID: &in.CollaboratorID,
		Action:         events.AppointmentCompleted,
		Entity:         "appointment",
		EntityID:       &ap.ID,
		Metadata: map[string]any{
			"commission_total": commissionTotal,
			"income_total":     ap.TotalPrice + productsTotal,
		},
	})

	return result, nil
}

func (uc *SettleAppointment) buildSaleLines(
	ctx context.Context,
	in SettleAppointmentInput,
) ([]models.ProductSaleLine, float64, error) {

	if len(in.ProductLines) == 0 {
		return nil, 0, nil
	}

	ids := make([]uint, 0, len(in.ProductLines))
	for _, pl := range in.ProductLines {
		if pl.Quantity <= 0 {
			return nil, 0, httperr.ErrBusiness(httperr.CodeInvalidInput)
		}
		ids = append(ids, pl.ProductID)
	}

	products, err := uc.settleRepo.ListProducts(ctx, in.CompanyID, ids)
	if err != nil {
		return nil, 0, asDependencyErr(err)
	}

	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var (
		lines []models.ProductSaleLine
		total float64
	)

	for _, pl := range in.ProductLines {
		product, ok := byID[pl.ProductID]
		if !ok {
			return nil, 0, httperr.ErrBusiness("product_not_found")
		}

		lines = append(lines, models.ProductSaleLine{
			AppointmentID: in.AppointmentID,
			ProductID:     product.ID,
			Quantity:      pl.Quantity,
			UnitPrice:     product.UnitPrice,
		})
		total += float64(pl.Quantity) * product.UnitPrice
	}

	return lines, total, nil
}

func (uc *SettleAppointment) decrementStock(
	ctx context.Context,
	in SettleAppointmentInput,
	ap *models.Appointment,
) []settlement.StockWarning {

	var warnings []settlement.StockWarning

	for _, pl := range in.ProductLines {
		if err := uc.settleRepo.DecrementStock(ctx, pl.ProductID, pl.Quantity); err != nil {
			metrics.SettlementStockFailures.Inc()

			warning := settlement.StockWarning{
				ProductID: pl.ProductID,
				Quantity:  pl.Quantity,
				Reason:    err.Error(),
			}
			warnings = append(warnings, warning)

			logger.WithError(err).WithFields(logger.Fields{
				"appointment_id": ap.ID,
				"product_id":     pl.ProductID,
				"quantity":       pl.Quantity,
			}).Error("settle: baixa de estoque falhou após commit financeiro")

			if repairErr := uc.events.DispatchRepair(ctx, events.Event{
				CompanyID:      in.CompanyID,
				CollaboratorID: &in.CollaboratorID,
				Action:         events.SettlementStockRepair,
				Entity:         "product",
				EntityID:       &pl.ProductID,
				Metadata: map[string]any{
					"appointment_id": ap.ID,
					"quantity":       pl.Quantity,
					"reason":         err.Error(),
				},
			}); repairErr != nil {
				logger.WithError(repairErr).Error(
					fmt.Sprintf("settle: fila de reparo indisponível para produto %d", pl.ProductID),
				)
			}
		}
	}

	return warnings
}
