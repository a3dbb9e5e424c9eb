package command

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/loopholelabs/podcomm/pkg/pod/definition"
)

const setupPodSize = 19
const setupPodMarker = 0x14

const minSetupYear = 2000
const maxSetupYear = minSetupYear + 0xff

// SetupPod assigns the address and hands the pod its activation date along
// with the lot and TID printed on it.
//
// Payload: address(4) 0x14 timeoutLimit month day year-2000 hour minute lot(4) tid(4)
type SetupPod struct {
	block
	address            uint32
	lot                uint32
	tid                uint32
	date               time.Time
	packetTimeoutLimit byte
}

// NewSetupPod truncates date to the minute, which is all the pod stores.
func NewSetupPod(address uint32, lot uint32, tid uint32, date time.Time, packetTimeoutLimit byte) (*SetupPod, error) {
	if date.Year() < minSetupYear || date.Year() > maxSetupYear {
		return nil, fmt.Errorf("setup year %d: %w", date.Year(), ErrInvalidField)
	}
	date = time.Date(date.Year(), date.Month(), date.Day(), date.Hour(), date.Minute(), 0, 0, date.Location())

	data := make([]byte, setupPodSize)
	binary.BigEndian.PutUint32(data[0:], address)
	data[4] = setupPodMarker
	data[5] = packetTimeoutLimit
	data[6] = byte(date.Month())
	data[7] = byte(date.Day())
	data[8] = byte(date.Year() - minSetupYear)
	data[9] = byte(date.Hour())
	data[10] = byte(date.Minute())
	binary.BigEndian.PutUint32(data[11:], lot)
	binary.BigEndian.PutUint32(data[15:], tid)

	return &SetupPod{
		block:              block{typ: definition.SetupPod, data: data},
		address:            address,
		lot:                lot,
		tid:                tid,
		date:               date,
		packetTimeoutLimit: packetTimeoutLimit,
	}, nil
}

func (c *SetupPod) Address() uint32 {
	return c.address
}

func (c *SetupPod) Lot() uint32 {
	return c.lot
}

func (c *SetupPod) TID() uint32 {
	return c.tid
}

func (c *SetupPod) Date() time.Time {
	return c.date
}

func (c *SetupPod) PacketTimeoutLimit() byte {
	return c.packetTimeoutLimit
}

func (c *SetupPod) String() string {
	return fmt.Sprintf("SetupPodCommand{address=%d, date=%s, lot=%d, tid=%d, packetTimeoutLimit=%d}",
		c.address, c.date.Format("2006-01-02T15:04"), c.lot, c.tid, c.packetTimeoutLimit)
}

// decodeSetupPod returns the date in UTC since the pod has no notion of zones.
func decodeSetupPod(data []byte) (*SetupPod, error) {
	if len(data) != setupPodSize {
		return nil, ErrInvalidLength
	}
	if data[4] != setupPodMarker {
		return nil, fmt.Errorf("setup marker 0x%02x: %w", data[4], ErrInvalidField)
	}
	month, day, hour, minute := int(data[6]), int(data[7]), int(data[9]), int(data[10])
	if month < 1 || month > 12 || day < 1 || day > 31 || hour > 23 || minute > 59 {
		return nil, fmt.Errorf("setup date %02d-%02d %02d:%02d: %w", month, day, hour, minute, ErrInvalidField)
	}
	date := time.Date(minSetupYear+int(data[8]), time.Month(month), day, hour, minute, 0, 0, time.UTC)
	if date.Day() != day {
		return nil, fmt.Errorf("setup date %02d-%02d: %w", month, day, ErrInvalidField)
	}
	return NewSetupPod(binary.BigEndian.Uint32(data[0:]),
		binary.BigEndian.Uint32(data[11:]),
		binary.BigEndian.Uint32(data[15:]),
		date,
		data[5])
}
