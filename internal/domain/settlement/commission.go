package settlement

import (
	"fmt"
	"math"

	"github.com/agendaflow/salon-scheduler/internal/models"
)

// CommissionLine é o resultado do cálculo para um serviço do agendamento.
type CommissionLine struct {
	ServiceID   uint
	ServiceName string
	Price       float64
	Amount      float64
	Description string
}

// ComputeCommission calcula a comissão de cada serviço a partir das regras
// ativas (indexadas por service_id). Serviço sem regra contribui com zero;
// não é erro, o colaborador simplesmente não recebe por aquela linha.
func ComputeCommission(
	services []models.AppointmentService,
	rules map[uint]models.CommissionRule,
) (total float64, lines []CommissionLine) {

	for _, svc := range services {
		rule, ok := rules[svc.ServiceID]
		if !ok || !rule.Active {
			continue
		}

		var amount float64
		var desc string

		switch rule.CommissionType {
		case models.CommissionPercent:
			amount = round2(svc.Price * rule.CommissionValue / 100)
			desc = fmt.Sprintf("%s: R$ %.2f (%.0f%%)", svc.ServiceName, amount, rule.CommissionValue)
		case models.CommissionFixed:
			amount = round2(rule.CommissionValue)
			desc = fmt.Sprintf("%s: R$ %.2f (fixo)", svc.ServiceName, amount)
		default:
			continue
		}

		total = round2(total + amount)
		lines = append(lines, CommissionLine{
			ServiceID:   svc.ServiceID,
			ServiceName: svc.ServiceName,
			Price:       svc.Price,
			Amount:      amount,
			Description: desc,
		})
	}

	return total, lines
}

// Breakdown monta o texto legível gravado nas observações do lançamento de
// despesa, uma linha por serviço comissionado.
func Breakdown(lines []CommissionLine) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l.Description
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
