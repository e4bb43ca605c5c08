package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveMessage(t *testing.T) {
	m := NewConversationMetrics(prometheus.NewRegistry())

	m.ObserveMessage("register_client", "")
	m.ObserveMessage("register_client", "")
	m.ObserveMessage("schedule_appointment", "missing_input")

	assert.Equal(t, float64(2),
		testutil.ToFloat64(m.messagesTotal.WithLabelValues("register_client", "ok")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.messagesTotal.WithLabelValues("schedule_appointment", "missing_input")))
}

func TestObserveDelivery(t *testing.T) {
	m := NewConversationMetrics(prometheus.NewRegistry())

	m.ObserveDelivery(true)
	m.ObserveDelivery(false)
	m.ObserveDelivery(false)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.deliveriesTotal.WithLabelValues("ok")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.deliveriesTotal.WithLabelValues("error")))
}
