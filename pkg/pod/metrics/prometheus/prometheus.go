package prometheus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/loopholelabs/podcomm/pkg/pod/protocol"
	"github.com/prometheus/client_golang/prometheus"
)

type MetricsConfig struct {
	Namespace  string
	SubToPod   string
	SubLogger  string
	TickToPod  time.Duration
	TickLogger time.Duration
}

func DefaultConfig() *MetricsConfig {
	return &MetricsConfig{
		Namespace:  "podcomm",
		SubToPod:   "topod",
		SubLogger:  "logger",
		TickToPod:  100 * time.Millisecond,
		TickLogger: 100 * time.Millisecond,
	}
}

type Metrics struct {
	reg    prometheus.Registerer
	lock   sync.Mutex
	config *MetricsConfig

	// toPod
	toPodBlocksSent *prometheus.GaugeVec
	toPodBytesSent  *prometheus.GaugeVec
	toPodSendErrors *prometheus.GaugeVec

	// logger
	loggerTotalSends   *prometheus.GaugeVec
	loggerPendingSends *prometheus.GaugeVec
	loggerFailedSends  *prometheus.GaugeVec
	loggerAvgLatency   *prometheus.GaugeVec

	pollers map[string]*poller
}

type poller struct {
	cancelfn context.CancelFunc
	tickfn   func()
}

func New(reg prometheus.Registerer, config *MetricsConfig) *Metrics {
	met := &Metrics{
		config: config,
		reg:    reg,

		// ToPod
		toPodBlocksSent: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: config.Namespace, Subsystem: config.SubToPod, Name: "blocks_sent", Help: "blocksSent"}, []string{"pod", "type"}),
		toPodBytesSent: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: config.Namespace, Subsystem: config.SubToPod, Name: "bytes_sent", Help: "bytesSent"}, []string{"pod"}),
		toPodSendErrors: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: config.Namespace, Subsystem: config.SubToPod, Name: "send_errors", Help: "sendErrors"}, []string{"pod"}),

		// Logger
		loggerTotalSends: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: config.Namespace, Subsystem: config.SubLogger, Name: "total_sends", Help: "totalSends"}, []string{"pod"}),
		loggerPendingSends: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: config.Namespace, Subsystem: config.SubLogger, Name: "pending_sends", Help: "pendingSends"}, []string{"pod"}),
		loggerFailedSends: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: config.Namespace, Subsystem: config.SubLogger, Name: "failed_sends", Help: "failedSends"}, []string{"pod"}),
		loggerAvgLatency: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: config.Namespace, Subsystem: config.SubLogger, Name: "avg_send_latency_seconds", Help: "avgSendLatency"}, []string{"pod"}),

		pollers: make(map[string]*poller),
	}

	reg.MustRegister(met.toPodBlocksSent, met.toPodBytesSent, met.toPodSendErrors)
	reg.MustRegister(met.loggerTotalSends, met.loggerPendingSends, met.loggerFailedSends, met.loggerAvgLatency)

	return met
}

// remove stops the poller and takes one last sample, so counts from a short
// lived sender are still published.
func (m *Metrics) remove(subsystem string, name string) {
	m.lock.Lock()
	p, ok := m.pollers[fmt.Sprintf("%s_%s", subsystem, name)]
	if ok {
		p.cancelfn()
		delete(m.pollers, fmt.Sprintf("%s_%s", subsystem, name))
	}
	m.lock.Unlock()

	if ok {
		p.tickfn()
	}
}

func (m *Metrics) add(subsystem string, name string, interval time.Duration, tickfn func()) {
	ctx, cancelfn := context.WithCancel(context.TODO())
	m.lock.Lock()
	// Adding the same name twice replaces the earlier poller
	if old, ok := m.pollers[fmt.Sprintf("%s_%s", subsystem, name)]; ok {
		old.cancelfn()
	}
	m.pollers[fmt.Sprintf("%s_%s", subsystem, name)] = &poller{cancelfn: cancelfn, tickfn: tickfn}
	m.lock.Unlock()

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				tickfn()
			}
		}
	}()
}

// Shutdown everything
func (m *Metrics) Shutdown() {
	m.lock.Lock()
	for _, p := range m.pollers {
		p.cancelfn()
	}
	m.pollers = make(map[string]*poller)
	m.lock.Unlock()
}

func (m *Metrics) AddToPod(name string, tp *protocol.ToPod) {
	m.add(m.config.SubToPod, name, m.config.TickToPod, func() {
		met := tp.GetMetrics()

		for typ, count := range met.SentByType {
			m.toPodBlocksSent.WithLabelValues(name, typ.String()).Set(float64(count))
		}
		m.toPodBytesSent.WithLabelValues(name).Set(float64(met.BytesSent))
		m.toPodSendErrors.WithLabelValues(name).Set(float64(met.SendErrors))
	})
}

func (m *Metrics) RemoveToPod(name string) {
	m.remove(m.config.SubToPod, name)
}

func (m *Metrics) AddLogger(name string, l *protocol.Logger) {
	m.add(m.config.SubLogger, name, m.config.TickLogger, func() {
		met := l.GetMetrics()

		m.loggerTotalSends.WithLabelValues(name).Set(float64(met.TotalSends))
		m.loggerPendingSends.WithLabelValues(name).Set(float64(met.PendingSends))
		m.loggerFailedSends.WithLabelValues(name).Set(float64(met.FailedSends))
		m.loggerAvgLatency.WithLabelValues(name).Set(met.AvgSendLatency.Seconds())
	})
}

func (m *Metrics) RemoveLogger(name string) {
	m.remove(m.config.SubLogger, name)
}
