package command

import (
	"encoding/binary"
	"fmt"

	"github.com/loopholelabs/podcomm/pkg/pod/definition"
)

type AcknowledgeAlerts struct {
	block
	nonce  uint32
	alerts definition.AlertSet
}

func NewAcknowledgeAlerts(nonce uint32, alerts definition.AlertSet) *AcknowledgeAlerts {
	data := make([]byte, nonceSize+1)
	binary.BigEndian.PutUint32(data, nonce)
	data[nonceSize] = byte(alerts)
	return &AcknowledgeAlerts{
		block:  block{typ: definition.AcknowledgeAlert, data: data},
		nonce:  nonce,
		alerts: alerts,
	}
}

func (c *AcknowledgeAlerts) Nonce() uint32 {
	return c.nonce
}

func (c *AcknowledgeAlerts) Alerts() definition.AlertSet {
	return c.alerts
}

func (c *AcknowledgeAlerts) String() string {
	return fmt.Sprintf("AcknowledgeAlertsCommand{nonce=%d, alerts=%s}", c.nonce, c.alerts)
}

func decodeAcknowledgeAlerts(data []byte) (*AcknowledgeAlerts, error) {
	if len(data) != nonceSize+1 {
		return nil, ErrInvalidLength
	}
	return NewAcknowledgeAlerts(binary.BigEndian.Uint32(data), definition.AlertSet(data[nonceSize])), nil
}
