package protocol

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/loopholelabs/logging/types"
	"github.com/loopholelabs/podcomm/pkg/pod/definition"
)

// Send latency is averaged over this window.
const latencyWindow = 10 * time.Second

// Logger wraps a Transport and logs every block handed to it.
type Logger struct {
	name      string
	transport Transport
	log       types.Logger
	enabled   atomic.Bool

	metricTotalSends   int64
	metricPendingSends int64
	metricFailedSends  int64

	latency *Readings
}

type LoggerMetrics struct {
	TotalSends     int64
	PendingSends   int64
	FailedSends    int64
	AvgSendLatency time.Duration
}

func NewLogger(name string, t Transport, log types.Logger) *Logger {
	l := &Logger{
		name:      name,
		transport: t,
		log:       log,
		latency:   NewReadings(latencyWindow),
	}
	l.enabled.Store(true)
	return l
}

func (l *Logger) Disable() {
	if l.enabled.Load() && l.log != nil {
		l.log.Debug().Str("name", l.name).Msg("logging disabled")
	}
	l.enabled.Store(false)
}

func (l *Logger) Enable() {
	l.enabled.Store(true)
	if l.log != nil {
		l.log.Debug().Str("name", l.name).Msg("logging enabled")
	}
}

func (l *Logger) SendBlock(ctx context.Context, address uint32, raw []byte) error {
	typeName := "empty"
	if len(raw) > 0 {
		typeName = definition.MessageBlockType(raw[0]).String()
	}
	atomic.AddInt64(&l.metricPendingSends, 1)
	ctime := time.Now()
	err := l.transport.SendBlock(ctx, address, raw)
	took := time.Since(ctime)
	atomic.AddInt64(&l.metricPendingSends, -1)
	l.latency.Add(float64(took))
	atomic.AddInt64(&l.metricTotalSends, 1)
	if err != nil {
		atomic.AddInt64(&l.metricFailedSends, 1)
	}

	if l.enabled.Load() && l.log != nil {
		l.log.Debug().
			Str("name", l.name).
			Str("address", fmt.Sprintf("0x%08x", address)).
			Str("type", typeName).
			Int("length", len(raw)).
			Str("took", took.String()).
			Err(err).
			Msg("SendBlock")
	}
	return err
}

func (l *Logger) GetMetrics() *LoggerMetrics {
	return &LoggerMetrics{
		TotalSends:     atomic.LoadInt64(&l.metricTotalSends),
		PendingSends:   atomic.LoadInt64(&l.metricPendingSends),
		FailedSends:    atomic.LoadInt64(&l.metricFailedSends),
		AvgSendLatency: time.Duration(l.latency.GetAverage(latencyWindow)),
	}
}
