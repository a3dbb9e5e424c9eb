package transcript

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/loopholelabs/podcomm/pkg/pod/command"
)

// Transcript is the ordered list of raw blocks that went out to one pod.
type Transcript struct {
	ID      uuid.UUID
	Address uint32
	Created time.Time

	lock   sync.Mutex
	blocks [][]byte
}

func New(address uint32) *Transcript {
	return &Transcript{
		ID:      uuid.New(),
		Address: address,
		Created: time.Now().UTC(),
		blocks:  make([][]byte, 0),
	}
}

// FromBytes rebuilds a transcript from its serialized form.
func FromBytes(id uuid.UUID, address uint32, created time.Time, data []byte) (*Transcript, error) {
	blocks, err := command.SplitRaw(data)
	if err != nil {
		return nil, fmt.Errorf("transcript %s: %w", id, err)
	}
	return &Transcript{
		ID:      id,
		Address: address,
		Created: created.UTC(),
		blocks:  blocks,
	}, nil
}

func (t *Transcript) Append(raw []byte) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.blocks = append(t.blocks, bytes.Clone(raw))
}

func (t *Transcript) Len() int {
	t.lock.Lock()
	defer t.lock.Unlock()
	return len(t.blocks)
}

func (t *Transcript) Blocks() [][]byte {
	t.lock.Lock()
	defer t.lock.Unlock()
	blocks := make([][]byte, len(t.blocks))
	for i, b := range t.blocks {
		blocks[i] = bytes.Clone(b)
	}
	return blocks
}

// Bytes is the serialized form, every raw block back to back.
func (t *Transcript) Bytes() []byte {
	t.lock.Lock()
	defer t.lock.Unlock()
	var buff bytes.Buffer
	for _, b := range t.blocks {
		buff.Write(b)
	}
	return buff.Bytes()
}

func (t *Transcript) Decode() ([]command.MessageBlock, error) {
	return command.DecodeAll(t.Bytes())
}

func (t *Transcript) String() string {
	return fmt.Sprintf("Transcript{id=%s, address=0x%08x, created=%s, blocks=%d}",
		t.ID, t.Address, t.Created.Format(time.RFC3339), t.Len())
}
