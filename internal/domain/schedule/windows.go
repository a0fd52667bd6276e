package schedule

import (
	"time"

	"github.com/agendaflow/salon-scheduler/internal/models"
)

// Window é uma janela de atendimento já resolvida para uma data concreta.
type Window struct {
	Start time.Time
	End   time.Time
}

// ParseHM materializa um "HH:MM" na data/timezone informadas.
func ParseHM(hm string, date time.Time, loc *time.Location) (time.Time, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		loc,
	), true
}

// ResolveDayWindows resolve as janelas do dia: a exceção de agenda, quando
// existe, substitui as janelas recorrentes daquela data. Folga significa
// nenhuma janela. Exceção com horário incompleto ou inválido é ignorada (voltamos
// para as janelas recorrentes) e sinalizada via malformed para o chamador
// registrar o aviso.
func ResolveDayWindows(
	windows []models.WorkingWindow,
	exc *models.ScheduleException,
	date time.Time,
	loc *time.Location,
) (resolved []Window, malformed bool) {

	if exc != nil {
		if exc.DayOff {
			return nil, false
		}

		start, okS := ParseHM(exc.StartTime, date, loc)
		end, okE := ParseHM(exc.EndTime, date, loc)
		if okS && okE && start.Before(end) {
			return []Window{{Start: start, End: end}}, false
		}

		// exceção quebrada: start sem end, end sem start ou intervalo vazio
		malformed = true
	}

	for _, wh := range windows {
		if !wh.Active {
			continue
		}

		start, okS := ParseHM(wh.StartTime, date, loc)
		end, okE := ParseHM(wh.EndTime, date, loc)
		if !okS || !okE || !start.Before(end) {
			continue
		}

		resolved = append(resolved, Window{Start: start, End: end})
	}

	return resolved, malformed
}
