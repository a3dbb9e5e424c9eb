package command

import (
	"encoding/binary"
	"fmt"

	"github.com/loopholelabs/podcomm/pkg/pod/definition"
)

const nonceSize = 4

type DeactivatePod struct {
	block
	nonce uint32
}

func NewDeactivatePod(nonce uint32) *DeactivatePod {
	data := make([]byte, nonceSize)
	binary.BigEndian.PutUint32(data, nonce)
	return &DeactivatePod{
		block: block{typ: definition.DeactivatePod, data: data},
		nonce: nonce,
	}
}

func (c *DeactivatePod) Nonce() uint32 {
	return c.nonce
}

func (c *DeactivatePod) String() string {
	return fmt.Sprintf("DeactivatePodCommand{nonce=%d}", c.nonce)
}

func decodeDeactivatePod(data []byte) (*DeactivatePod, error) {
	if len(data) != nonceSize {
		return nil, ErrInvalidLength
	}
	return NewDeactivatePod(binary.BigEndian.Uint32(data)), nil
}
