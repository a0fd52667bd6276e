package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendaflow/salon-scheduler/internal/models"
)

func TestComputeCommission_Percentual(t *testing.T) {
	services := []models.AppointmentService{
		{ServiceID: 1, ServiceName: "Corte", Price: 100},
	}
	rules := map[uint]models.CommissionRule{
		1: {ServiceID: 1, CommissionType: models.CommissionPercent, CommissionValue: 20, Active: true},
	}

	total, lines := ComputeCommission(services, rules)

	assert.Equal(t, 20.0, total)
	require.Len(t, lines, 1)
	assert.Equal(t, "Corte: R$ 20.00 (20%)", lines[0].Description)
}

func TestComputeCommission_Fixa(t *testing.T) {
	services := []models.AppointmentService{
		{ServiceID: 2, ServiceName: "Barba", Price: 40},
	}
	rules := map[uint]models.CommissionRule{
		2: {ServiceID: 2, CommissionType: models.CommissionFixed, CommissionValue: 15, Active: true},
	}

	total, lines := ComputeCommission(services, rules)

	assert.Equal(t, 15.0, total)
	require.Len(t, lines, 1)
	assert.Equal(t, "Barba: R$ 15.00 (fixo)", lines[0].Description)
}

func TestComputeCommission_ServicoSemRegraContribuiZero(t *testing.T) {
	services := []models.AppointmentService{
		{ServiceID: 1, ServiceName: "Corte", Price: 80},
		{ServiceID: 9, ServiceName: "Sobrancelha", Price: 30},
	}
	rules := map[uint]models.CommissionRule{
		1: {ServiceID: 1, CommissionType: models.CommissionPercent, CommissionValue: 15, Active: true},
	}

	total, lines := ComputeCommission(services, rules)

	// 15% de 80 = 12; sobrancelha sem regra não entra
	assert.Equal(t, 12.0, total)
	assert.Len(t, lines, 1)
}

func TestComputeCommission_Misto(t *testing.T) {
	services := []models.AppointmentService{
		{ServiceID: 1, ServiceName: "Corte", Price: 80},
		{ServiceID: 2, ServiceName: "Barba", Price: 40},
	}
	rules := map[uint]models.CommissionRule{
		1: {ServiceID: 1, CommissionType: models.CommissionPercent, CommissionValue: 15, Active: true},
		2: {ServiceID: 2, CommissionType: models.CommissionFixed, CommissionValue: 10, Active: true},
	}

	total, lines := ComputeCommission(services, rules)

	assert.Equal(t, 22.0, total)
	require.Len(t, lines, 2)
}

func TestComputeCommission_RegraInativaOuDesconhecidaNaoConta(t *testing.T) {
	services := []models.AppointmentService{
		{ServiceID: 1, ServiceName: "Corte", Price: 100},
		{ServiceID: 2, ServiceName: "Barba", Price: 40},
	}
	rules := map[uint]models.CommissionRule{
		1: {ServiceID: 1, CommissionType: models.CommissionPercent, CommissionValue: 20, Active: false},
		2: {ServiceID: 2, CommissionType: "CASHBACK", CommissionValue: 5, Active: true},
	}

	total, lines := ComputeCommission(services, rules)

	assert.Equal(t, 0.0, total)
	assert.Empty(t, lines)
}

func TestComputeCommission_Arredondamento(t *testing.T) {
	services := []models.AppointmentService{
		{ServiceID: 1, ServiceName: "Corte", Price: 33.33},
	}
	rules := map[uint]models.CommissionRule{
		1: {ServiceID: 1, CommissionType: models.CommissionPercent, CommissionValue: 10, Active: true},
	}

	total, _ := ComputeCommission(services, rules)
	assert.Equal(t, 3.33, total)
}

func TestBreakdown(t *testing.T) {
	lines := []CommissionLine{
		{Description: "Corte: R$ 20.00 (20%)"},
		{Description: "Barba: R$ 15.00 (fixo)"},
	}

	assert.Equal(t, "Corte: R$ 20.00 (20%)\nBarba: R$ 15.00 (fixo)", Breakdown(lines))
	assert.Equal(t, "", Breakdown(nil))
}
