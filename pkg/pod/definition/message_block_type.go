package definition

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownMessageBlockType = errors.New("unknown message block type")

// MessageBlockType is the wire tag of a message block. The values are fixed by
// the pod firmware and must never be renumbered or reused.
type MessageBlockType byte

const (
	VersionResponse    = MessageBlockType(0x01)
	PodInfoResponse    = MessageBlockType(0x02)
	SetupPod           = MessageBlockType(0x03)
	ErrorResponse      = MessageBlockType(0x06)
	AssignAddress      = MessageBlockType(0x07)
	FaultConfig        = MessageBlockType(0x08)
	GetStatus          = MessageBlockType(0x0e)
	AcknowledgeAlert   = MessageBlockType(0x11)
	BasalScheduleExtra = MessageBlockType(0x13)
	TempBasalExtra     = MessageBlockType(0x16)
	BolusExtra         = MessageBlockType(0x17)
	ConfigureAlerts    = MessageBlockType(0x19)
	SetInsulinSchedule = MessageBlockType(0x1a)
	DeactivatePod      = MessageBlockType(0x1c)
	StatusResponse     = MessageBlockType(0x1d)
	BeepConfig         = MessageBlockType(0x1e)
	CancelDelivery     = MessageBlockType(0x1f)
)

var allMessageBlockTypes = []MessageBlockType{
	VersionResponse,
	PodInfoResponse,
	SetupPod,
	ErrorResponse,
	AssignAddress,
	FaultConfig,
	GetStatus,
	AcknowledgeAlert,
	BasalScheduleExtra,
	TempBasalExtra,
	BolusExtra,
	ConfigureAlerts,
	SetInsulinSchedule,
	DeactivatePod,
	StatusResponse,
	BeepConfig,
	CancelDelivery,
}

// AllMessageBlockTypes returns every known type in tag order.
func AllMessageBlockTypes() []MessageBlockType {
	types := make([]MessageBlockType, len(allMessageBlockTypes))
	copy(types, allMessageBlockTypes)
	return types
}

// Tag returns the byte written on the wire for this type.
func (t MessageBlockType) Tag() byte {
	return byte(t)
}

func (t MessageBlockType) IsResponse() bool {
	switch t {
	case VersionResponse, PodInfoResponse, ErrorResponse, StatusResponse:
		return true
	}
	return false
}

func (t MessageBlockType) String() string {
	switch t {
	case VersionResponse:
		return "VersionResponse"
	case PodInfoResponse:
		return "PodInfoResponse"
	case SetupPod:
		return "SetupPod"
	case ErrorResponse:
		return "ErrorResponse"
	case AssignAddress:
		return "AssignAddress"
	case FaultConfig:
		return "FaultConfig"
	case GetStatus:
		return "GetStatus"
	case AcknowledgeAlert:
		return "AcknowledgeAlert"
	case BasalScheduleExtra:
		return "BasalScheduleExtra"
	case TempBasalExtra:
		return "TempBasalExtra"
	case BolusExtra:
		return "BolusExtra"
	case ConfigureAlerts:
		return "ConfigureAlerts"
	case SetInsulinSchedule:
		return "SetInsulinSchedule"
	case DeactivatePod:
		return "DeactivatePod"
	case StatusResponse:
		return "StatusResponse"
	case BeepConfig:
		return "BeepConfig"
	case CancelDelivery:
		return "CancelDelivery"
	}
	return "unknown"
}

// ParseMessageBlockType maps a wire tag back onto the registry.
func ParseMessageBlockType(b byte) (MessageBlockType, error) {
	t := MessageBlockType(b)
	if t.String() == "unknown" {
		return 0, fmt.Errorf("tag 0x%02x: %w", b, ErrUnknownMessageBlockType)
	}
	return t, nil
}

// LookupMessageBlockType finds a type by name. Case and underscores are
// ignored, so "assign_address" and "AssignAddress" both match.
func LookupMessageBlockType(name string) (MessageBlockType, error) {
	n := normalizeName(name)
	for _, t := range allMessageBlockTypes {
		if normalizeName(t.String()) == n {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownMessageBlockType)
}

func normalizeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "_", "")
	return strings.ReplaceAll(n, "-", "")
}
