package protocol

import (
	"context"
	"errors"
)

var ErrTransportClosed = errors.New("transport closed")

// Transport is the link layer. It takes raw message blocks for a pod
// address and gets it onto the radio.
type Transport interface {
	SendBlock(ctx context.Context, address uint32, raw []byte) error
}
