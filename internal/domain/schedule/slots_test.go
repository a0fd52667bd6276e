package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/agendaflow/salon-scheduler/internal/domain/appointment"
	"github.com/agendaflow/salon-scheduler/internal/httperr"
)

var saoPaulo, _ = time.LoadLocation("America/Sao_Paulo")

func at(t *testing.T, hm string) time.Time {
	t.Helper()
	parsed, ok := ParseHM(hm, time.Date(2026, 3, 2, 0, 0, 0, 0, saoPaulo), saoPaulo)
	require.True(t, ok, "horário inválido no teste: %s", hm)
	return parsed
}

func starts(slots []time.Time) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Format("15:04"))
	}
	return out
}

func TestGenerateSlots_JanelaLivre(t *testing.T) {
	windows := []Window{{Start: at(t, "09:00"), End: at(t, "12:00")}}

	slots, err := GenerateSlots(windows, nil, 60*time.Minute, 30*time.Minute)
	require.NoError(t, err)

	// O último candidato precisa terminar dentro da janela: 11:30+60min não cabe.
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00"}, starts(slots))
}

func TestGenerateSlots_ServicoCurto(t *testing.T) {
	windows := []Window{{Start: at(t, "09:00"), End: at(t, "12:00")}}

	slots, err := GenerateSlots(windows, nil, 30*time.Minute, 30*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, starts(slots))
}

func TestGenerateSlots_RemoveColisoes(t *testing.T) {
	windows := []Window{{Start: at(t, "09:00"), End: at(t, "12:00")}}
	busy := []domain.Interval{{Start: at(t, "10:00"), End: at(t, "11:00")}}

	slots, err := GenerateSlots(windows, busy, 60*time.Minute, 30*time.Minute)
	require.NoError(t, err)

	// 09:00 termina exatamente onde o ocupado começa: encostar não é colidir.
	assert.Equal(t, []string{"09:00", "11:00"}, starts(slots))
}

func TestGenerateSlots_JanelasSobrepostasSemDuplicata(t *testing.T) {
	windows := []Window{
		{Start: at(t, "09:00"), End: at(t, "12:00")},
		{Start: at(t, "11:00"), End: at(t, "14:00")},
	}

	slots, err := GenerateSlots(windows, nil, 60*time.Minute, 60*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "10:00", "11:00", "12:00", "13:00"}, starts(slots))
}

func TestGenerateSlots_ServicoMaiorQueAJanela(t *testing.T) {
	windows := []Window{{Start: at(t, "09:00"), End: at(t, "10:00")}}

	slots, err := GenerateSlots(windows, nil, 90*time.Minute, 30*time.Minute)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_DuracaoInvalida(t *testing.T) {
	windows := []Window{{Start: at(t, "09:00"), End: at(t, "12:00")}}

	_, err := GenerateSlots(windows, nil, 0, 30*time.Minute)
	require.Error(t, err)
	assert.Equal(t, "invalid_input", httperr.BusinessCode(err))

	_, err = GenerateSlots(windows, nil, 60*time.Minute, -time.Minute)
	require.Error(t, err)
	assert.Equal(t, "invalid_input", httperr.BusinessCode(err))
}

func TestFilterBefore(t *testing.T) {
	slots := []time.Time{at(t, "09:00"), at(t, "10:00"), at(t, "11:00")}

	// Limite exatamente em cima do slot não o corta.
	kept := FilterBefore(slots, at(t, "10:00"))
	assert.Equal(t, []string{"10:00", "11:00"}, starts(kept))
}
