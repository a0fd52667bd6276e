package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu    sync.Mutex
	saved []Event
}

func (s *memStore) Save(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, ev)
	return nil
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}

type memSink struct {
	mu        sync.Mutex
	published []Event
	repairs   []Event
}

func (s *memSink) Publish(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.published = append(s.published, ev)
	return nil
}

func (s *memSink) EnqueueRepair(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repairs = append(s.repairs, ev)
	return nil
}

func (s *memSink) publishedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.published)
}

func TestDispatch_PersisteEPublica(t *testing.T) {
	store := &memStore{}
	sink := &memSink{}
	d := NewDispatcher(store, sink)

	d.Dispatch(Event{CompanyID: 1, Action: AppointmentCreated, Entity: "appointment"})

	require.Eventually(t, func() bool {
		return store.count() == 1 && sink.publishedCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	store.mu.Lock()
	defer store.mu.Unlock()
	ev := store.saved[0]
	assert.NotEqual(t, uuid.Nil, ev.ID, "id preenchido na entrega")
	assert.False(t, ev.OccurredAt.IsZero())
	assert.Equal(t, AppointmentCreated, ev.Action)
}

func TestDispatchRepair_EhSincrono(t *testing.T) {
	store := &memStore{}
	sink := &memSink{}
	d := NewDispatcher(store, sink)

	err := d.DispatchRepair(context.Background(), Event{
		CompanyID: 1,
		Action:    SettlementStockRepair,
		Entity:    "product",
	})
	require.NoError(t, err)

	// sem Eventually: a pendência já está na fila quando a chamada retorna
	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Len(t, sink.repairs, 1)
	assert.Equal(t, SettlementStockRepair, sink.repairs[0].Action)
}

func TestDispatcher_SemStoreNemSinkNaoQuebra(t *testing.T) {
	d := NewDispatcher(nil, nil)

	d.Dispatch(Event{CompanyID: 1, Action: AppointmentCancelled})
	err := d.DispatchRepair(context.Background(), Event{CompanyID: 1, Action: SettlementStockRepair})
	assert.NoError(t, err)
}
