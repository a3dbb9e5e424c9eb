package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/loopholelabs/podcomm/pkg/pod/command"
	"github.com/loopholelabs/podcomm/pkg/pod/definition"
)

var ErrInvalidScript = errors.New("invalid script")
var ErrUnsupportedCommand = errors.New("unsupported command")

// Dates are accepted with or without seconds and zone.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

type ScriptSchema struct {
	Pod []*PodSchema `hcl:"pod,block"`
}

type PodSchema struct {
	Name    string           `hcl:"name,label"`
	Address string           `hcl:"address,attr"`
	Command []*CommandSchema `hcl:"command,block"`
}

// CommandSchema describes one message block. Which attributes are used
// depends on the type label.
type CommandSchema struct {
	Type     string   `hcl:"type,label"`
	Address  string   `hcl:"address,optional"`
	Nonce    string   `hcl:"nonce,optional"`
	Info     string   `hcl:"info,optional"`
	Beep     string   `hcl:"beep,optional"`
	Delivery []string `hcl:"delivery,optional"`
	Alerts   []int    `hcl:"alerts,optional"`
	Lot      string   `hcl:"lot,optional"`
	TID      string   `hcl:"tid,optional"`
	Date     string   `hcl:"date,optional"`
	Timeout  int      `hcl:"timeout,optional"`
}

func parseUint32(field string, val string) (uint32, error) {
	s := strings.TrimSpace(val)
	if s == "" {
		return 0, fmt.Errorf("%s is required: %w", field, ErrInvalidScript)
	}
	// Base 0 so hex addresses like 0x1f0e89f0 work
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", field, val, ErrInvalidScript)
	}
	return uint32(v), nil
}

func parseDate(val string) (time.Time, error) {
	s := strings.TrimSpace(val)
	if s == "" {
		return time.Time{}, fmt.Errorf("date is required: %w", ErrInvalidScript)
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("date %q: %w", val, ErrInvalidScript)
}

func ReadScript(path string) (*ScriptSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script file: %w", err)
	}

	s := new(ScriptSchema)
	return s, s.Decode(data)
}

func (s *ScriptSchema) Decode(data []byte) error {
	file, diag := hclsyntax.ParseConfig(data, "", hcl.Pos{Line: 1, Column: 1})
	if diag.HasErrors() {
		return diag.Errs()[0]
	}

	diag = gohcl.DecodeBody(file.Body, nil, s)
	if diag.HasErrors() {
		return diag.Errs()[0]
	}

	return nil
}

func (s *ScriptSchema) Encode() []byte {
	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(s, f.Body())
	return f.Bytes()
}

func (ps *PodSchema) AddressValue() (uint32, error) {
	return parseUint32(fmt.Sprintf("pod %s address", ps.Name), ps.Address)
}

// MessageBlocks builds every command of the pod in script order.
func (ps *PodSchema) MessageBlocks() ([]command.MessageBlock, error) {
	blocks := make([]command.MessageBlock, 0, len(ps.Command))
	for i, cs := range ps.Command {
		mb, err := cs.MessageBlock()
		if err != nil {
			return nil, fmt.Errorf("pod %s command %d: %w", ps.Name, i, err)
		}
		blocks = append(blocks, mb)
	}
	return blocks, nil
}

func (cs *CommandSchema) MessageBlock() (command.MessageBlock, error) {
	typ, err := definition.LookupMessageBlockType(cs.Type)
	if err != nil {
		return nil, err
	}

	switch typ {
	case definition.AssignAddress:
		address, err := parseUint32("address", cs.Address)
		if err != nil {
			return nil, err
		}
		return command.NewAssignAddress(address), nil

	case definition.GetStatus:
		info := definition.PodInfoNormal
		if strings.TrimSpace(cs.Info) != "" {
			info, err = definition.LookupPodInfoType(cs.Info)
			if err != nil {
				return nil, err
			}
		}
		return command.NewGetStatus(info), nil

	case definition.DeactivatePod:
		nonce, err := parseUint32("nonce", cs.Nonce)
		if err != nil {
			return nil, err
		}
		return command.NewDeactivatePod(nonce), nil

	case definition.AcknowledgeAlert:
		nonce, err := parseUint32("nonce", cs.Nonce)
		if err != nil {
			return nil, err
		}
		slots := make([]definition.AlertSlot, 0, len(cs.Alerts))
		for _, a := range cs.Alerts {
			if a < 0 || a > int(definition.MaxAlertSlot) {
				return nil, fmt.Errorf("alert slot %d: %w", a, ErrInvalidScript)
			}
			slots = append(slots, definition.AlertSlot(a))
		}
		alerts, err := definition.NewAlertSet(slots...)
		if err != nil {
			return nil, err
		}
		return command.NewAcknowledgeAlerts(nonce, alerts), nil

	case definition.CancelDelivery:
		nonce, err := parseUint32("nonce", cs.Nonce)
		if err != nil {
			return nil, err
		}
		beep := definition.BeepNone
		if strings.TrimSpace(cs.Beep) != "" {
			beep, err = definition.LookupBeepType(cs.Beep)
			if err != nil {
				return nil, err
			}
		}
		delivery, err := definition.LookupDeliveryType(cs.Delivery...)
		if err != nil {
			return nil, err
		}
		cd, err := command.NewCancelDelivery(nonce, beep, delivery)
		if err != nil {
			return nil, err
		}
		return cd, nil

	case definition.SetupPod:
		address, err := parseUint32("address", cs.Address)
		if err != nil {
			return nil, err
		}
		lot, err := parseUint32("lot", cs.Lot)
		if err != nil {
			return nil, err
		}
		tid, err := parseUint32("tid", cs.TID)
		if err != nil {
			return nil, err
		}
		date, err := parseDate(cs.Date)
		if err != nil {
			return nil, err
		}
		if cs.Timeout < 0 || cs.Timeout > 0xff {
			return nil, fmt.Errorf("timeout %d: %w", cs.Timeout, ErrInvalidScript)
		}
		sp, err := command.NewSetupPod(address, lot, tid, date, byte(cs.Timeout))
		if err != nil {
			return nil, err
		}
		return sp, nil
	}

	return nil, fmt.Errorf("%s: %w", typ, ErrUnsupportedCommand)
}
