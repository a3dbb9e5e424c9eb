package metrics

import (
	"github.com/loopholelabs/podcomm/pkg/pod/protocol"
)

type PodMetrics interface {
	Shutdown()

	AddToPod(name string, tp *protocol.ToPod)
	RemoveToPod(name string)

	AddLogger(name string, l *protocol.Logger)
	RemoveLogger(name string)
}
