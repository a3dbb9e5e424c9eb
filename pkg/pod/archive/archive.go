// Package archive keeps transcripts of what was sent to pods.
package archive

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/loopholelabs/podcomm/pkg/pod/transcript"
)

var ErrNotFound = errors.New("transcript not found")

type Archive interface {
	Put(ctx context.Context, t *transcript.Transcript) error
	Get(ctx context.Context, id uuid.UUID) (*transcript.Transcript, error)
	// List returns the ids of stored transcripts, oldest first.
	List(ctx context.Context) ([]uuid.UUID, error)
	Close() error
}
