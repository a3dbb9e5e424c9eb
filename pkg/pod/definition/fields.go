package definition

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownValue = errors.New("unknown value")

// PodInfoType selects the kind of status a GetStatus command asks for.
type PodInfoType byte

const (
	PodInfoNormal                      = PodInfoType(0x00)
	PodInfoActiveAlerts                = PodInfoType(0x01)
	PodInfoFaultEvent                  = PodInfoType(0x02)
	PodInfoDataLog                     = PodInfoType(0x03)
	PodInfoFaultDataInitializationTime = PodInfoType(0x05)
	PodInfoHardcodedTestValues         = PodInfoType(0x06)
	PodInfoResetStatus                 = PodInfoType(0x46)
	PodInfoFlashLogRecent              = PodInfoType(0x50)
	PodInfoDumpOlderFlashLog           = PodInfoType(0x51)
)

var podInfoNames = map[PodInfoType]string{
	PodInfoNormal:                      "Normal",
	PodInfoActiveAlerts:                "ActiveAlerts",
	PodInfoFaultEvent:                  "FaultEvent",
	PodInfoDataLog:                     "DataLog",
	PodInfoFaultDataInitializationTime: "FaultDataInitializationTime",
	PodInfoHardcodedTestValues:         "HardcodedTestValues",
	PodInfoResetStatus:                 "ResetStatus",
	PodInfoFlashLogRecent:              "FlashLogRecent",
	PodInfoDumpOlderFlashLog:           "DumpOlderFlashLog",
}

func (p PodInfoType) String() string {
	if n, ok := podInfoNames[p]; ok {
		return n
	}
	return "unknown"
}

func LookupPodInfoType(name string) (PodInfoType, error) {
	n := normalizeName(name)
	for v, vn := range podInfoNames {
		if normalizeName(vn) == n {
			return v, nil
		}
	}
	return 0, fmt.Errorf("pod info type %q: %w", name, ErrUnknownValue)
}

// BeepType is a 4-bit beep pattern played by the pod.
type BeepType byte

const (
	BeepNone                  = BeepType(0x00)
	BeepBeepBeepBeepBeep      = BeepType(0x01)
	BeepBipBeepBipBeepBipBeep = BeepType(0x02)
	BeepBipBip                = BeepType(0x03)
	BeepBeep                  = BeepType(0x04)
	BeepBeepBeepBeep          = BeepType(0x05)
	BeepLong                  = BeepType(0x06)
	BeepBipBipBipBipBipBip    = BeepType(0x07)
	BeepLongLong              = BeepType(0x08)
	BeepBeepBeep              = BeepType(0x0b)
	BeepMedium                = BeepType(0x0c)
	BeepBipLong               = BeepType(0x0d)
	BeepFiveSeconds           = BeepType(0x0e)
	BeepConfigNoBeep          = BeepType(0x0f)
	MaxBeepType               = BeepConfigNoBeep
)

var beepNames = map[BeepType]string{
	BeepNone:                  "None",
	BeepBeepBeepBeepBeep:      "BeepBeepBeepBeep",
	BeepBipBeepBipBeepBipBeep: "BipBeepBipBeepBipBeep",
	BeepBipBip:                "BipBip",
	BeepBeep:                  "Beep",
	BeepBeepBeepBeep:          "BeepBeepBeep",
	BeepLong:                  "Long",
	BeepBipBipBipBipBipBip:    "BipBipBipBipBipBip",
	BeepLongLong:              "LongLong",
	BeepBeepBeep:              "BeepBeep",
	BeepMedium:                "Medium",
	BeepBipLong:               "BipLong",
	BeepFiveSeconds:           "FiveSeconds",
	BeepConfigNoBeep:          "ConfigNoBeep",
}

func (b BeepType) String() string {
	if n, ok := beepNames[b]; ok {
		return n
	}
	return "unknown"
}

func LookupBeepType(name string) (BeepType, error) {
	n := normalizeName(name)
	for v, vn := range beepNames {
		if normalizeName(vn) == n {
			return v, nil
		}
	}
	return 0, fmt.Errorf("beep type %q: %w", name, ErrUnknownValue)
}

// DeliveryType is a 4-bit mask of insulin delivery kinds.
type DeliveryType byte

const (
	DeliveryNone      = DeliveryType(0x00)
	DeliveryBasal     = DeliveryType(0x01)
	DeliveryTempBasal = DeliveryType(0x02)
	DeliveryBolus     = DeliveryType(0x04)
	DeliveryAll       = DeliveryBasal | DeliveryTempBasal | DeliveryBolus
)

func (d DeliveryType) Has(o DeliveryType) bool {
	return o != DeliveryNone && d&o == o
}

func (d DeliveryType) String() string {
	if d == DeliveryNone {
		return "None"
	}
	parts := make([]string, 0, 3)
	if d.Has(DeliveryBasal) {
		parts = append(parts, "Basal")
	}
	if d.Has(DeliveryTempBasal) {
		parts = append(parts, "TempBasal")
	}
	if d.Has(DeliveryBolus) {
		parts = append(parts, "Bolus")
	}
	if rest := d &^ DeliveryAll; rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%02x", byte(rest)))
	}
	return strings.Join(parts, "|")
}

// LookupDeliveryType ORs together the named delivery kinds.
func LookupDeliveryType(names ...string) (DeliveryType, error) {
	d := DeliveryNone
	for _, name := range names {
		switch normalizeName(name) {
		case "none":
		case "basal":
			d |= DeliveryBasal
		case "tempbasal":
			d |= DeliveryTempBasal
		case "bolus":
			d |= DeliveryBolus
		case "all":
			d |= DeliveryAll
		default:
			return 0, fmt.Errorf("delivery type %q: %w", name, ErrUnknownValue)
		}
	}
	return d, nil
}

// AlertSlot is one of the eight alert slots of the pod.
type AlertSlot byte

const MaxAlertSlot = AlertSlot(7)

// AlertSet is a bitmask of alert slots, bit n for slot n.
type AlertSet byte

func NewAlertSet(slots ...AlertSlot) (AlertSet, error) {
	var s AlertSet
	for _, slot := range slots {
		if slot > MaxAlertSlot {
			return 0, fmt.Errorf("alert slot %d: %w", slot, ErrUnknownValue)
		}
		s |= AlertSet(1 << slot)
	}
	return s, nil
}

func (s AlertSet) Contains(slot AlertSlot) bool {
	return slot <= MaxAlertSlot && s&AlertSet(1<<slot) != 0
}

func (s AlertSet) Slots() []AlertSlot {
	slots := make([]AlertSlot, 0)
	for slot := AlertSlot(0); slot <= MaxAlertSlot; slot++ {
		if s.Contains(slot) {
			slots = append(slots, slot)
		}
	}
	return slots
}

func (s AlertSet) String() string {
	return fmt.Sprintf("%v", s.Slots())
}
