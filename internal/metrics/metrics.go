package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agenda_bookings_created_total",
		Help: "Agendamentos criados com sucesso.",
	})

	BookingConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agenda_booking_conflicts_total",
		Help: "Tentativas de reserva rejeitadas por conflito de horário.",
	})

	Settlements = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agenda_settlements_total",
		Help: "Liquidações concluídas.",
	})

	SettlementStockFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agenda_settlement_stock_failures_total",
		Help: "Baixas de estoque que falharam após o commit financeiro.",
	})

	EventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agenda_events_dropped_total",
		Help: "Eventos de domínio descartados por fila cheia.",
	})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agenda_http_request_duration_seconds",
		Help:    "Duração das requisições HTTP.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

// Middleware observa a duração de cada requisição por rota registrada.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		httpDuration.
			WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler expõe /metrics no formato Prometheus.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
