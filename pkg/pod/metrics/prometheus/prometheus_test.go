package prometheus

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/loopholelabs/logging"
	"github.com/loopholelabs/podcomm/pkg/pod/command"
	"github.com/loopholelabs/podcomm/pkg/pod/definition"
	"github.com/loopholelabs/podcomm/pkg/pod/metrics"
	"github.com/loopholelabs/podcomm/pkg/pod/protocol"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ metrics.PodMetrics = (*Metrics)(nil)

func testConfig() *MetricsConfig {
	config := DefaultConfig()
	config.TickToPod = 5 * time.Millisecond
	config.TickLogger = 5 * time.Millisecond
	return config
}

func TestMetricsToPod(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, testConfig())
	t.Cleanup(m.Shutdown)

	mt := protocol.NewMockTransport()
	tp := protocol.NewToPod(0x1f0e89f0, mt)
	m.AddToPod("primary", tp)

	err := tp.Send(context.TODO(),
		command.NewAssignAddress(0x1f0e89f0),
		command.NewGetStatus(definition.PodInfoNormal),
		command.NewGetStatus(definition.PodInfoActiveAlerts),
	)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(m.toPodBlocksSent.WithLabelValues("primary", "GetStatus")) == 2 &&
			testutil.ToFloat64(m.toPodBlocksSent.WithLabelValues("primary", "AssignAddress")) == 1 &&
			testutil.ToFloat64(m.toPodBytesSent.WithLabelValues("primary")) == 12
	}, time.Second, 5*time.Millisecond)

	mt.FailWith(errors.New("radio off"))
	err = tp.Send(context.TODO(), command.NewDeactivatePod(1))
	assert.Error(t, err)

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(m.toPodSendErrors.WithLabelValues("primary")) == 1
	}, time.Second, 5*time.Millisecond)

	m.RemoveToPod("primary")
}

func TestMetricsLogger(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, testConfig())
	t.Cleanup(m.Shutdown)

	log := logging.New(logging.Zerolog, "podcomm", io.Discard)
	mt := protocol.NewMockTransport()
	l := protocol.NewLogger("primary", mt, log)
	m.AddLogger("primary", l)

	tp := protocol.NewToPod(0x1f0e89f0, l)
	err := tp.Send(context.TODO(), command.NewAssignAddress(0x1f0e89f0))
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(m.loggerTotalSends.WithLabelValues("primary")) == 1 &&
			testutil.ToFloat64(m.loggerPendingSends.WithLabelValues("primary")) == 0
	}, time.Second, 5*time.Millisecond)

	m.RemoveLogger("primary")
}

func TestMetricsRemovePublishesFinalCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	// Default ticks are far slower than the sends below
	m := New(reg, DefaultConfig())
	t.Cleanup(m.Shutdown)

	log := logging.New(logging.Zerolog, "podcomm", io.Discard)
	mt := protocol.NewMockTransport()
	l := protocol.NewLogger("primary", mt, log)
	tp := protocol.NewToPod(0x1f0e89f0, l)

	m.AddToPod("primary", tp)
	m.AddLogger("primary", l)

	err := tp.Send(context.TODO(), command.NewAssignAddress(0x1f0e89f0))
	require.NoError(t, err)

	m.RemoveToPod("primary")
	m.RemoveLogger("primary")

	assert.Equal(t, float64(6), testutil.ToFloat64(m.toPodBytesSent.WithLabelValues("primary")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.toPodBlocksSent.WithLabelValues("primary", "AssignAddress")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.loggerTotalSends.WithLabelValues("primary")))

	// Removing again is harmless
	m.RemoveToPod("primary")
}

func TestMetricsRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, DefaultConfig())
	m.Shutdown()

	assert.Panics(t, func() {
		New(reg, DefaultConfig())
	})
}
