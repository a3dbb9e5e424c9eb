package command

import (
	"fmt"

	"github.com/loopholelabs/podcomm/pkg/pod/definition"
)

type GetStatus struct {
	block
	podInfoType definition.PodInfoType
}

func NewGetStatus(podInfoType definition.PodInfoType) *GetStatus {
	return &GetStatus{
		block:       block{typ: definition.GetStatus, data: []byte{byte(podInfoType)}},
		podInfoType: podInfoType,
	}
}

func (c *GetStatus) PodInfoType() definition.PodInfoType {
	return c.podInfoType
}

func (c *GetStatus) String() string {
	return fmt.Sprintf("GetStatusCommand{podInfoType=%s}", c.podInfoType)
}

func decodeGetStatus(data []byte) (*GetStatus, error) {
	if len(data) != 1 {
		return nil, ErrInvalidLength
	}
	return NewGetStatus(definition.PodInfoType(data[0])), nil
}
