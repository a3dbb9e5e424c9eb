package protocol

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/loopholelabs/podcomm/pkg/pod/command"
	"github.com/loopholelabs/podcomm/pkg/pod/definition"
)

// ToPod sends message blocks to a single pod address.
type ToPod struct {
	address   uint32
	transport Transport

	metricBlocksSent uint64
	metricBytesSent  uint64
	metricSendErrors uint64

	sentByTypeLock sync.Mutex
	sentByType     map[definition.MessageBlockType]uint64
}

type ToPodMetrics struct {
	BlocksSent uint64
	BytesSent  uint64
	SendErrors uint64
	SentByType map[definition.MessageBlockType]uint64
}

func NewToPod(address uint32, t Transport) *ToPod {
	return &ToPod{
		address:    address,
		transport:  t,
		sentByType: make(map[definition.MessageBlockType]uint64),
	}
}

func (tp *ToPod) Address() uint32 {
	return tp.address
}

// Send encodes and sends blocks in order, stopping at the first failure.
func (tp *ToPod) Send(ctx context.Context, blocks ...command.MessageBlock) error {
	for _, mb := range blocks {
		if err := ctx.Err(); err != nil {
			return err
		}
		raw := command.Encode(mb)
		err := tp.transport.SendBlock(ctx, tp.address, raw)
		if err != nil {
			atomic.AddUint64(&tp.metricSendErrors, 1)
			return fmt.Errorf("send %s to 0x%08x: %w", mb.Type(), tp.address, err)
		}
		atomic.AddUint64(&tp.metricBlocksSent, 1)
		atomic.AddUint64(&tp.metricBytesSent, uint64(len(raw)))

		tp.sentByTypeLock.Lock()
		tp.sentByType[mb.Type()]++
		tp.sentByTypeLock.Unlock()
	}
	return nil
}

func (tp *ToPod) GetMetrics() *ToPodMetrics {
	byType := make(map[definition.MessageBlockType]uint64)
	tp.sentByTypeLock.Lock()
	for t, v := range tp.sentByType {
		byType[t] = v
	}
	tp.sentByTypeLock.Unlock()

	return &ToPodMetrics{
		BlocksSent: atomic.LoadUint64(&tp.metricBlocksSent),
		BytesSent:  atomic.LoadUint64(&tp.metricBytesSent),
		SendErrors: atomic.LoadUint64(&tp.metricSendErrors),
		SentByType: byType,
	}
}
