package protocol

import (
	"context"

	"github.com/loopholelabs/podcomm/pkg/pod/transcript"
)

// Recorder appends every block its inner transport accepted to a transcript.
type Recorder struct {
	transport  Transport
	transcript *transcript.Transcript
}

func NewRecorder(t Transport, tr *transcript.Transcript) *Recorder {
	return &Recorder{
		transport:  t,
		transcript: tr,
	}
}

func (r *Recorder) SendBlock(ctx context.Context, address uint32, raw []byte) error {
	err := r.transport.SendBlock(ctx, address, raw)
	if err != nil {
		return err
	}
	r.transcript.Append(raw)
	return nil
}

func (r *Recorder) Transcript() *transcript.Transcript {
	return r.transcript
}
