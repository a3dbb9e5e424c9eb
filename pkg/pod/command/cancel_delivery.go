package command

import (
	"encoding/binary"
	"fmt"

	"github.com/loopholelabs/podcomm/pkg/pod/definition"
)

type CancelDelivery struct {
	block
	nonce    uint32
	beep     definition.BeepType
	delivery definition.DeliveryType
}

// NewCancelDelivery packs the beep pattern and the delivery mask into one
// byte, so both must fit in four bits.
func NewCancelDelivery(nonce uint32, beep definition.BeepType, delivery definition.DeliveryType) (*CancelDelivery, error) {
	if beep > definition.MaxBeepType {
		return nil, fmt.Errorf("beep type 0x%02x: %w", byte(beep), ErrInvalidField)
	}
	if delivery > 0x0f {
		return nil, fmt.Errorf("delivery type 0x%02x: %w", byte(delivery), ErrInvalidField)
	}
	data := make([]byte, nonceSize+1)
	binary.BigEndian.PutUint32(data, nonce)
	data[nonceSize] = byte(beep)<<4 | byte(delivery)
	return &CancelDelivery{
		block:    block{typ: definition.CancelDelivery, data: data},
		nonce:    nonce,
		beep:     beep,
		delivery: delivery,
	}, nil
}

func (c *CancelDelivery) Nonce() uint32 {
	return c.nonce
}

func (c *CancelDelivery) BeepType() definition.BeepType {
	return c.beep
}

func (c *CancelDelivery) DeliveryType() definition.DeliveryType {
	return c.delivery
}

func (c *CancelDelivery) String() string {
	return fmt.Sprintf("CancelDeliveryCommand{nonce=%d, beepType=%s, deliveryType=%s}", c.nonce, c.beep, c.delivery)
}

func decodeCancelDelivery(data []byte) (*CancelDelivery, error) {
	if len(data) != nonceSize+1 {
		return nil, ErrInvalidLength
	}
	b := data[nonceSize]
	return NewCancelDelivery(binary.BigEndian.Uint32(data),
		definition.BeepType(b>>4),
		definition.DeliveryType(b&0x0f))
}
