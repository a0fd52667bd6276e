package dto

import (
	"time"

	"github.com/agendaflow/salon-scheduler/internal/models"
)

// AgendaItemDTO é o read-model montado fora do motor: nomes prontos para
// exibição, sem exigir que a UI navegue relações.
type AgendaItemDTO struct {
	ID         uint      `json:"id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Status     string    `json:"status"`
	ClientName string    `json:"client_name"`
	Services   []string  `json:"services"`
	TotalPrice float64   `json:"total_price"`
}

func BuildAgendaItem(ap models.Appointment) AgendaItemDTO {
	services := make([]string, 0, len(ap.Services))
	for _, line := range ap.Services {
		services = append(services, line.ServiceName)
	}

	return AgendaItemDTO{
		ID:         ap.ID,
		StartTime:  ap.StartTime,
		EndTime:    ap.EndTime,
		Status:     ap.Status,
		ClientName: ap.Client.Name,
		Services:   services,
		TotalPrice: ap.TotalPrice,
	}
}
