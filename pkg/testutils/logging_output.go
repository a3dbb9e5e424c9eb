package testutils

import (
	"bytes"
	"strings"
	"sync"
)

// SafeWriteBuffer collects log output written from several goroutines.
type SafeWriteBuffer struct {
	bufferLock sync.Mutex
	buffer     bytes.Buffer
}

func (swb *SafeWriteBuffer) Write(p []byte) (n int, err error) {
	swb.bufferLock.Lock()
	defer swb.bufferLock.Unlock()
	return swb.buffer.Write(p)
}

func (swb *SafeWriteBuffer) Bytes() []byte {
	swb.bufferLock.Lock()
	defer swb.bufferLock.Unlock()
	return bytes.Clone(swb.buffer.Bytes())
}

// Lines returns the non-empty lines written so far.
func (swb *SafeWriteBuffer) Lines() []string {
	swb.bufferLock.Lock()
	defer swb.bufferLock.Unlock()
	lines := make([]string, 0)
	for _, l := range strings.Split(swb.buffer.String(), "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func (swb *SafeWriteBuffer) Len() int {
	swb.bufferLock.Lock()
	defer swb.bufferLock.Unlock()
	return swb.buffer.Len()
}
