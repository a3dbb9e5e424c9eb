package protocol

import (
	"bytes"
	"context"
	"sync"

	"github.com/loopholelabs/podcomm/pkg/pod/definition"
)

type waitKey struct {
	address uint32
	tag     byte
}

// MockTransport is an in-memory link. Blocks sent to it are recorded per
// address and can be picked up by type with WaitForBlock.
type MockTransport struct {
	lock    sync.Mutex
	sent    map[uint32][][]byte
	queues  map[waitKey][][]byte
	notify  chan struct{}
	failErr error
	closed  bool
}

func NewMockTransport() *MockTransport {
	return &MockTransport{
		sent:   make(map[uint32][][]byte),
		queues: make(map[waitKey][][]byte),
		notify: make(chan struct{}),
	}
}

// FailWith makes every following send return err. A nil err clears it.
func (mt *MockTransport) FailWith(err error) {
	mt.lock.Lock()
	defer mt.lock.Unlock()
	mt.failErr = err
}

func (mt *MockTransport) SendBlock(ctx context.Context, address uint32, raw []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mt.lock.Lock()
	defer mt.lock.Unlock()
	if mt.closed {
		return ErrTransportClosed
	}
	if mt.failErr != nil {
		return mt.failErr
	}

	data := bytes.Clone(raw)
	mt.sent[address] = append(mt.sent[address], data)
	if len(data) > 0 {
		k := waitKey{address: address, tag: data[0]}
		mt.queues[k] = append(mt.queues[k], data)
	}

	// Wake up anyone waiting
	close(mt.notify)
	mt.notify = make(chan struct{})
	return nil
}

// Sent returns everything sent to address so far.
func (mt *MockTransport) Sent(address uint32) [][]byte {
	mt.lock.Lock()
	defer mt.lock.Unlock()
	sent := make([][]byte, len(mt.sent[address]))
	for i, b := range mt.sent[address] {
		sent[i] = bytes.Clone(b)
	}
	return sent
}

// WaitForBlock returns the next unclaimed block of type typ sent to address.
func (mt *MockTransport) WaitForBlock(ctx context.Context, address uint32, typ definition.MessageBlockType) ([]byte, error) {
	k := waitKey{address: address, tag: typ.Tag()}
	for {
		mt.lock.Lock()
		q := mt.queues[k]
		if len(q) > 0 {
			mt.queues[k] = q[1:]
			mt.lock.Unlock()
			return q[0], nil
		}
		if mt.closed {
			mt.lock.Unlock()
			return nil, ErrTransportClosed
		}
		notify := mt.notify
		mt.lock.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-notify:
		}
	}
}

func (mt *MockTransport) Close() error {
	mt.lock.Lock()
	defer mt.lock.Unlock()
	if !mt.closed {
		mt.closed = true
		close(mt.notify)
	}
	return nil
}
