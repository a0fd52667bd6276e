package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/agendaflow/salon-scheduler/internal/domain/appointment"
	"github.com/agendaflow/salon-scheduler/internal/domain/settlement"
	"github.com/agendaflow/salon-scheduler/internal/httperr"
	"github.com/agendaflow/salon-scheduler/internal/models"
)

type SettlementGormRepository struct {
	db *gorm.DB
}

func NewSettlementGormRepository(db *gorm.DB) *SettlementGormRepository {
	return &SettlementGormRepository{db: db}
}

func (r *SettlementGormRepository) GetActiveRules(
	ctx context.Context,
	collaboratorID uint,
	serviceIDs []uint,
) (map[uint]models.CommissionRule, error) {

	if len(serviceIDs) == 0 {
		return map[uint]models.CommissionRule{}, nil
	}

	var rules []models.CommissionRule
	if err := r.db.WithContext(ctx).
		Where(
			"collaborator_id = ? AND service_id IN ? AND active = true",
			collaboratorID, serviceIDs,
		).
		Find(&rules).Error; err != nil {
		return nil, err
	}

	byService := make(map[uint]models.CommissionRule, len(rules))
	for _, rule := range rules {
		byService[rule.ServiceID] = rule
	}
	return byService, nil
}

func (r *SettlementGormRepository) ListProducts(
	ctx context.Context,
	companyID uint,
	productIDs []uint,
) ([]models.Product, error) {

	var products []models.Product
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id IN ? AND active = true", companyID, productIDs).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// CommitSettlement é a transação financeira da liquidação: trava o
// agendamento, revalida o guard de idempotência com o status corrente do
// banco, marca completed e grava lançamentos + linhas de venda. Qualquer
// falha desfaz tudo, inclusive a mudança de status.
func (r *SettlementGormRepository) CommitSettlement(
	ctx context.Context,
	in settlement.CommitInput,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var ap models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&ap, in.AppointmentID).Error; err != nil {
			return err
		}

		if !domain.Status(ap.Status).IsActive() {
			return httperr.ErrBusiness(httperr.CodeInvalidTransition)
		}

		if err := tx.Model(&ap).Updates(map[string]any{
			"status":       string(domain.StatusCompleted),
			"completed_at": in.CompletedAt,
		}).Error; err != nil {
			return err
		}

		if len(in.Entries) > 0 {
			if err := tx.Create(&in.Entries).Error; err != nil {
				return err
			}
		}

		if len(in.SaleLines) > 0 {
			if err := tx.Create(&in.SaleLines).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// DecrementStock baixa o estoque de forma condicional: nunca deixa a
// quantidade negativa. Estoque insuficiente é erro para o chamador tratar
// como pendência (a transação financeira já foi commitada).
func (r *SettlementGormRepository) DecrementStock(
	ctx context.Context,
	productID uint,
	quantity int,
) error {

	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", productID, quantity).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("estoque insuficiente para o produto %d (baixa de %d)", productID, quantity)
	}

	return nil
}

// Compile-time check
var _ settlement.Repository = (*SettlementGormRepository)(nil)
