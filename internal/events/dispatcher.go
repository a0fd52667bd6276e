package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agendaflow/salon-scheduler/internal/logger"
	"github.com/agendaflow/salon-scheduler/internal/metrics"
)

// Sink é o destino externo dos eventos (Redis em produção, fake nos testes).
type Sink interface {
	Publish(ctx context.Context, ev Event) error
	EnqueueRepair(ctx context.Context, ev Event) error
}

// AuditStore persiste a trilha de auditoria dos eventos.
type AuditStore interface {
	Save(ev Event) error
}

// Dispatcher entrega eventos de forma assíncrona: persiste a trilha de
// auditoria e publica no sink. A fila tem buffer fixo; quando enche, o evento
// é descartado com log: a API nunca bloqueia nem falha por causa de evento.
type Dispatcher struct {
	store AuditStore
	sink  Sink
	queue chan Event
}

func NewDispatcher(store AuditStore, sink Sink) *Dispatcher {
	d := &Dispatcher{
		store: store,
		sink:  sink,
		queue: make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

		if err := d.save(ev); err != nil {
			logger.WithError(err).WithFields(logger.Fields{
				"action": ev.Action,
			}).Error("events: falha ao gravar auditoria")
		}

		if d.sink != nil {
			if err := d.sink.Publish(ctx, ev); err != nil {
				logger.WithError(err).WithFields(logger.Fields{
					"action": ev.Action,
				}).Warn("events: falha ao publicar no redis")
			}
		}

		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}

	select {
	case d.queue <- ev:
	default:
		metrics.EventsDropped.Inc()
		logger.WithFields(logger.Fields{"action": ev.Action}).
			Warn("events: fila cheia, evento descartado")
	}
}

// DispatchRepair grava a pendência de estoque na fila do operador de forma
// síncrona: diferente dos eventos informativos, ela não pode se perder.
func (d *Dispatcher) DispatchRepair(ctx context.Context, ev Event) error {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}

	if err := d.save(ev); err != nil {
		logger.WithError(err).Error("events: falha ao gravar pendência de reparo")
	}

	if d.sink == nil {
		return nil
	}
	return d.sink.EnqueueRepair(ctx, ev)
}

func (d *Dispatcher) save(ev Event) error {
	if d.store == nil {
		return nil
	}
	return d.store.Save(ev)
}
