package archive

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/loopholelabs/podcomm/pkg/pod/transcript"
)

type memoryEntry struct {
	address uint32
	created time.Time
	data    []byte
}

type MemoryArchive struct {
	lock    sync.Mutex
	entries map[uuid.UUID]*memoryEntry
}

func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{
		entries: make(map[uuid.UUID]*memoryEntry),
	}
}

func (ma *MemoryArchive) Put(ctx context.Context, t *transcript.Transcript) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ma.lock.Lock()
	defer ma.lock.Unlock()
	ma.entries[t.ID] = &memoryEntry{
		address: t.Address,
		created: t.Created,
		data:    t.Bytes(),
	}
	return nil
}

func (ma *MemoryArchive) Get(ctx context.Context, id uuid.UUID) (*transcript.Transcript, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ma.lock.Lock()
	e, ok := ma.entries[id]
	ma.lock.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	return transcript.FromBytes(id, e.address, e.created, e.data)
}

func (ma *MemoryArchive) List(ctx context.Context) ([]uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ma.lock.Lock()
	defer ma.lock.Unlock()
	ids := make([]uuid.UUID, 0, len(ma.entries))
	for id := range ma.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ei, ej := ma.entries[ids[i]], ma.entries[ids[j]]
		if !ei.created.Equal(ej.created) {
			return ei.created.Before(ej.created)
		}
		return ids[i].String() < ids[j].String()
	})
	return ids, nil
}

func (ma *MemoryArchive) Close() error {
	return nil
}
