// Package metrics exposes Prometheus instruments for the chat pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lavamaster"

// ConversationMetrics counts processed messages and reply deliveries.
type ConversationMetrics struct {
	messagesTotal   *prometheus.CounterVec
	deliveriesTotal *prometheus.CounterVec
}

// NewConversationMetrics registers the conversation counters on the given
// registerer.
func NewConversationMetrics(reg prometheus.Registerer) *ConversationMetrics {
	m := &ConversationMetrics{
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "conversation",
			Name:      "messages_total",
			Help:      "Inbound chat messages by classified intent and outcome.",
		}, []string{"intent", "outcome"}),
		deliveriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "conversation",
			Name:      "reply_deliveries_total",
			Help:      "Outbound reply delivery attempts by status.",
		}, []string{"status"}),
	}
	reg.MustRegister(m.messagesTotal, m.deliveriesTotal)
	return m
}

// ObserveMessage records one processed message. An empty failure means
// success.
func (m *ConversationMetrics) ObserveMessage(intent, failure string) {
	outcome := failure
	if outcome == "" {
		outcome = "ok"
	}
	m.messagesTotal.WithLabelValues(intent, outcome).Inc()
}

// ObserveDelivery records one reply delivery attempt.
func (m *ConversationMetrics) ObserveDelivery(ok bool) {
	status := "ok"
	if !ok {
		status = "error"
	}
	m.deliveriesTotal.WithLabelValues(status).Inc()
}
