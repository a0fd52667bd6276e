package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendaflow/salon-scheduler/internal/httperr"
	"github.com/agendaflow/salon-scheduler/internal/models"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		name    string
		check   func(Status) error
		from    Status
		allowed bool
	}{
		{"confirmar pending", CanConfirm, StatusPending, true},
		{"confirmar confirmed", CanConfirm, StatusConfirmed, false},
		{"confirmar cancelled", CanConfirm, StatusCancelled, false},
		{"confirmar completed", CanConfirm, StatusCompleted, false},

		{"cancelar pending", CanCancel, StatusPending, true},
		{"cancelar confirmed", CanCancel, StatusConfirmed, true},
		{"cancelar cancelled", CanCancel, StatusCancelled, false},
		{"cancelar completed", CanCancel, StatusCompleted, false},

		// confirmar é opcional: pending vai direto para completed
		{"concluir pending", CanComplete, StatusPending, true},
		{"concluir confirmed", CanComplete, StatusConfirmed, true},
		{"concluir cancelled", CanComplete, StatusCancelled, false},
		{"concluir completed", CanComplete, StatusCompleted, false},

		{"editar pending", CanEdit, StatusPending, true},
		{"editar confirmed", CanEdit, StatusConfirmed, true},
		{"editar cancelled", CanEdit, StatusCancelled, false},
		{"editar completed", CanEdit, StatusCompleted, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.check(tc.from)
			if tc.allowed {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, "invalid_transition", httperr.BusinessCode(err))
		})
	}
}

func TestStatusFlags(t *testing.T) {
	assert.True(t, StatusPending.IsActive())
	assert.True(t, StatusConfirmed.IsActive())
	assert.False(t, StatusCancelled.IsActive())
	assert.False(t, StatusCompleted.IsActive())

	// liquidar não libera o horário; cancelar libera
	assert.True(t, StatusPending.OccupiesSlot())
	assert.True(t, StatusConfirmed.OccupiesSlot())
	assert.True(t, StatusCompleted.OccupiesSlot())
	assert.False(t, StatusCancelled.OccupiesSlot())

	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())

	assert.Equal(t, StatusPending, InitialStatus())
}

func TestDomainActions(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	t.Run("confirm", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusPending)}
		require.NoError(t, Confirm(ap))
		assert.Equal(t, string(StatusConfirmed), ap.Status)
	})

	t.Run("cancel grava timestamp", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusConfirmed)}
		require.NoError(t, Cancel(ap, now))
		assert.Equal(t, string(StatusCancelled), ap.Status)
		require.NotNil(t, ap.CancelledAt)
		assert.Equal(t, now, *ap.CancelledAt)
	})

	t.Run("complete grava timestamp", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusPending)}
		require.NoError(t, Complete(ap, now))
		assert.Equal(t, string(StatusCompleted), ap.Status)
		require.NotNil(t, ap.CompletedAt)
	})

	t.Run("estado terminal nao transita", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusCompleted)}
		assert.Error(t, Confirm(ap))
		assert.Error(t, Cancel(ap, now))
		assert.Error(t, Complete(ap, now))
		assert.Equal(t, string(StatusCompleted), ap.Status)
	})
}

func TestIntervalOverlaps(t *testing.T) {
	base := Interval{
		Start: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC),
	}

	overlapping := Interval{
		Start: base.Start.Add(30 * time.Minute),
		End:   base.End.Add(30 * time.Minute),
	}
	assert.True(t, base.Overlaps(overlapping))
	assert.True(t, overlapping.Overlaps(base))

	// encostar (fim == início) não é colisão
	touching := Interval{Start: base.End, End: base.End.Add(time.Hour)}
	assert.False(t, base.Overlaps(touching))
	assert.False(t, touching.Overlaps(base))

	contained := Interval{
		Start: base.Start.Add(15 * time.Minute),
		End:   base.Start.Add(30 * time.Minute),
	}
	assert.True(t, base.Overlaps(contained))
}
