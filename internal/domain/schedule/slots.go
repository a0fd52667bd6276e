package schedule

import (
	"sort"
	"time"

	domain "github.com/agendaflow/salon-scheduler/internal/domain/appointment"
	"github.com/agendaflow/salon-scheduler/internal/httperr"
)

// GenerateSlots gera os horários de início livres para a duração pedida.
// Candidatos avançam de granularity em granularity a partir do início de cada
// janela; um candidato sobrevive se couber inteiro na janela e não colidir
// com nenhum intervalo ocupado. O resultado vem ordenado e sem duplicatas
// (janelas sobrepostas podem gerar o mesmo candidato duas vezes).
func GenerateSlots(
	windows []Window,
	busy []domain.Interval,
	duration time.Duration,
	granularity time.Duration,
) ([]time.Time, error) {

	if duration <= 0 || granularity <= 0 {
		return nil, httperr.ErrBusiness("invalid_input")
	}

	var slots []time.Time
	seen := make(map[int64]struct{})

	for _, w := range windows {
		for cur := w.Start; !cur.Add(duration).After(w.End); cur = cur.Add(granularity) {

			candidate := domain.Interval{Start: cur, End: cur.Add(duration)}

			conflict := false
			for _, b := range busy {
				if candidate.Overlaps(b) {
					conflict = true
					break
				}
			}
			if conflict {
				continue
			}

			key := cur.Unix()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			slots = append(slots, cur)
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Before(slots[j])
	})

	return slots, nil
}

// FilterBefore remove horários que começam antes do limite (política de
// "passado" do chamador: now + antecedência mínima).
func FilterBefore(slots []time.Time, limit time.Time) []time.Time {
	out := slots[:0]
	for _, s := range slots {
		if !s.Before(limit) {
			out = append(out, s)
		}
	}
	return out
}
