package command

import (
	"fmt"

	"github.com/loopholelabs/podcomm/pkg/pod/definition"
)

// Decode reads the first raw block in buff and returns it together with the
// number of bytes it occupied.
func Decode(buff []byte) (MessageBlock, int, error) {
	payload, n, err := splitOne(buff)
	if err != nil {
		return nil, 0, err
	}

	typ, err := definition.ParseMessageBlockType(buff[0])
	if err != nil {
		return nil, 0, err
	}

	var mb MessageBlock
	switch typ {
	case definition.AssignAddress:
		mb, err = decodeAssignAddress(payload)
	case definition.SetupPod:
		mb, err = decodeSetupPod(payload)
	case definition.GetStatus:
		mb, err = decodeGetStatus(payload)
	case definition.DeactivatePod:
		mb, err = decodeDeactivatePod(payload)
	case definition.AcknowledgeAlert:
		mb, err = decodeAcknowledgeAlerts(payload)
	case definition.CancelDelivery:
		mb, err = decodeCancelDelivery(payload)
	default:
		return nil, 0, fmt.Errorf("%s: %w", typ, ErrUnsupportedBlock)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", typ, err)
	}
	return mb, n, nil
}

// DecodeAll decodes a run of concatenated raw blocks.
func DecodeAll(buff []byte) ([]MessageBlock, error) {
	blocks := make([]MessageBlock, 0)
	for len(buff) > 0 {
		mb, n, err := Decode(buff)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", len(blocks), err)
		}
		blocks = append(blocks, mb)
		buff = buff[n:]
	}
	return blocks, nil
}

// SplitRaw cuts concatenated raw blocks apart without interpreting their
// type, so responses and unknown tags pass through.
func SplitRaw(buff []byte) ([][]byte, error) {
	raws := make([][]byte, 0)
	for len(buff) > 0 {
		_, n, err := splitOne(buff)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", len(raws), err)
		}
		raw := make([]byte, n)
		copy(raw, buff[:n])
		raws = append(raws, raw)
		buff = buff[n:]
	}
	return raws, nil
}

func splitOne(buff []byte) ([]byte, int, error) {
	if len(buff) < RawHeaderSize {
		return nil, 0, ErrInvalidBlock
	}
	n := RawHeaderSize + int(buff[1])
	if len(buff) < n {
		return nil, 0, ErrInvalidBlock
	}
	return buff[RawHeaderSize:n], n, nil
}
