package clock

import (
	"time"

	"github.com/agendaflow/salon-scheduler/internal/timezone"
)

// Clock injeta o "agora" nos usecases no lugar de time.Now ambiente, para
// testes determinísticos de disponibilidade e antecedência mínima.
type Clock interface {
	Now() time.Time
	NowIn(tz string) time.Time
}

type Real struct{}

func (Real) Now() time.Time {
	return time.Now().In(timezone.Location(timezone.DefaultTimezone))
}

func (Real) NowIn(tz string) time.Time {
	return time.Now().In(timezone.Location(tz))
}

// Fixed é um relógio congelado para testes.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T
}

func (f Fixed) NowIn(tz string) time.Time {
	return f.T.In(timezone.Location(tz))
}
