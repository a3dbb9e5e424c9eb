package command

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/loopholelabs/podcomm/pkg/pod/definition"
)

var ErrInvalidBlock = errors.New("invalid message block")
var ErrInvalidLength = errors.New("invalid message block length")
var ErrInvalidField = errors.New("invalid message block field")
var ErrUnsupportedBlock = errors.New("unsupported message block")

// Raw blocks are laid out as [type][payload length][payload].
const RawHeaderSize = 2

// MaxPayloadSize is the most the one byte length field can describe.
const MaxPayloadSize = 0xff

// MessageBlock is a single command before the link layer frames it. The set
// of implementations is closed to this package.
type MessageBlock interface {
	Type() definition.MessageBlockType
	// EncodedData returns a copy of the payload computed at construction.
	EncodedData() []byte
	String() string

	messageBlock()
}

// block holds what every variant has in common. The payload is written
// once by the constructor and never touched again.
type block struct {
	typ  definition.MessageBlockType
	data []byte
}

func (b *block) Type() definition.MessageBlockType {
	return b.typ
}

func (b *block) EncodedData() []byte {
	return bytes.Clone(b.data)
}

func (b *block) messageBlock() {}

// Encode returns the raw block for mb, ready to be placed in a message. It
// panics if the payload does not fit the length byte, since constructors
// never build one that large.
func Encode(mb MessageBlock) []byte {
	data := mb.EncodedData()
	if len(data) > MaxPayloadSize {
		panic(fmt.Sprintf("%s payload of %d bytes exceeds %d", mb.Type(), len(data), MaxPayloadSize))
	}
	buff := make([]byte, RawHeaderSize+len(data))
	buff[0] = mb.Type().Tag()
	buff[1] = byte(len(data))
	copy(buff[RawHeaderSize:], data)
	return buff
}

// Equal reports whether a and b encode to the same block.
func Equal(a MessageBlock, b MessageBlock) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Type() == b.Type() && bytes.Equal(a.EncodedData(), b.EncodedData())
}
