package metrics

import "github.com/prometheus/client_golang/prometheus"

// ConversationMetrics exposes counters/histograms for the booking flows.
type ConversationMetrics struct {
	inboundTotal  *prometheus.CounterVec
	bookingsTotal *prometheus.CounterVec
	turnLatency   *prometheus.HistogramVec
}

func NewConversationMetrics(reg prometheus.Registerer) *ConversationMetrics {
	m := &ConversationMetrics{
		inboundTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "termio",
			Subsystem: "conversation",
			Name:      "inbound_total",
			Help:      "Total inbound messages",
		}, []string{"channel", "status"}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "termio",
			Subsystem: "booking",
			Name:      "attempts_total",
			Help:      "Total booking attempts by outcome",
		}, []string{"outcome"}),
		turnLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "termio",
			Subsystem: "conversation",
			Name:      "turn_latency_seconds",
			Help:      "Latency of a single conversation turn",
			Buckets:   prometheus.DefBuckets,
		}, []string{"channel"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.inboundTotal, m.bookingsTotal, m.turnLatency)
	return m
}

func (m *ConversationMetrics) ObserveInbound(channel, status string) {
	if m == nil {
		return
	}
	m.inboundTotal.WithLabelValues(channel, status).Inc()
}

// ObserveBooking records a booking attempt outcome: created, conflict or error.
func (m *ConversationMetrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
}

func (m *ConversationMetrics) ObserveTurnLatency(channel string, seconds float64) {
	if m == nil {
		return
	}
	m.turnLatency.WithLabelValues(channel).Observe(seconds)
}
