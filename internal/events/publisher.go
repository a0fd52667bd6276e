package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	// Canal pub/sub assinado pelos read-models (notificações, dashboards).
	Channel = "agenda:events"

	// Fila de reparo do operador: baixas de estoque que falharam depois do
	// commit financeiro. Consumida manualmente, nunca re-tentada automática.
	RepairQueue = "agenda:settlement:repairs"
)

// Publisher empurra eventos para fora do processo via Redis.
type Publisher struct {
	rdb *redis.Client
}

func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

func (p *Publisher) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, Channel, payload).Err()
}

// EnqueueRepair registra uma pendência para o operador resolver.
func (p *Publisher) EnqueueRepair(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.rdb.LPush(ctx, RepairQueue, payload).Err()
}

// NewRedisClient abre a conexão usada pelo publisher.
func NewRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}
