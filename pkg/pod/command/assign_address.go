package command

import (
	"encoding/binary"
	"fmt"

	"github.com/loopholelabs/podcomm/pkg/pod/definition"
)

const assignAddressSize = 4

// AssignAddress binds the pod to a 32-bit address. Whether the address is
// one the pod should accept is up to the caller.
type AssignAddress struct {
	block
	address uint32
}

func NewAssignAddress(address uint32) *AssignAddress {
	data := make([]byte, assignAddressSize)
	binary.BigEndian.PutUint32(data, address)
	return &AssignAddress{
		block:   block{typ: definition.AssignAddress, data: data},
		address: address,
	}
}

func (c *AssignAddress) Address() uint32 {
	return c.address
}

func (c *AssignAddress) String() string {
	return fmt.Sprintf("AssignAddressCommand{address=%d}", c.address)
}

func decodeAssignAddress(data []byte) (*AssignAddress, error) {
	if len(data) != assignAddressSize {
		return nil, ErrInvalidLength
	}
	return NewAssignAddress(binary.BigEndian.Uint32(data)), nil
}
