package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/loopholelabs/podcomm/pkg/pod/command"
	"github.com/loopholelabs/podcomm/pkg/pod/definition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScript = `
pod "primary" {
	address = "0x1f0e89f0"

	command "assign_address" {
		address = "0x1f0e89f0"
	}

	command "setup_pod" {
		address = "0x1f0e89f0"
		lot     = "44147"
		tid     = "1100256"
		date    = "2024-05-01T09:30"
		timeout = 3
	}

	command "get_status" {
		info = "active_alerts"
	}

	command "acknowledge_alert" {
		nonce  = "0x10203040"
		alerts = [2, 5]
	}

	command "cancel_delivery" {
		nonce    = "0x10203040"
		beep     = "beep"
		delivery = ["basal", "bolus"]
	}

	command "deactivate_pod" {
		nonce = "1"
	}
}

pod "secondary" {
	address = "520"

	command "get_status" {}
}
`

func TestScriptDecode(t *testing.T) {
	s := new(ScriptSchema)
	err := s.Decode([]byte(testScript))
	require.NoError(t, err)

	require.Equal(t, 2, len(s.Pod))
	assert.Equal(t, "primary", s.Pod[0].Name)
	assert.Equal(t, "secondary", s.Pod[1].Name)

	address, err := s.Pod[0].AddressValue()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x1f0e89f0), address)

	address, err = s.Pod[1].AddressValue()
	require.NoError(t, err)
	assert.Equal(t, uint32(520), address)

	blocks, err := s.Pod[0].MessageBlocks()
	require.NoError(t, err)
	require.Equal(t, 6, len(blocks))

	aa, ok := blocks[0].(*command.AssignAddress)
	require.True(t, ok)
	assert.Equal(t, uint32(0x1f0e89f0), aa.Address())

	sp, ok := blocks[1].(*command.SetupPod)
	require.True(t, ok)
	assert.Equal(t, uint32(44147), sp.Lot())
	assert.Equal(t, uint32(1100256), sp.TID())
	assert.Equal(t, byte(3), sp.PacketTimeoutLimit())
	assert.True(t, time.Date(2024, time.May, 1, 9, 30, 0, 0, time.UTC).Equal(sp.Date()))

	gs, ok := blocks[2].(*command.GetStatus)
	require.True(t, ok)
	assert.Equal(t, definition.PodInfoActiveAlerts, gs.PodInfoType())

	ack, ok := blocks[3].(*command.AcknowledgeAlerts)
	require.True(t, ok)
	assert.True(t, ack.Alerts().Contains(2))
	assert.True(t, ack.Alerts().Contains(5))
	assert.False(t, ack.Alerts().Contains(0))

	cd, ok := blocks[4].(*command.CancelDelivery)
	require.True(t, ok)
	assert.Equal(t, definition.BeepBeep, cd.BeepType())
	assert.Equal(t, definition.DeliveryBasal|definition.DeliveryBolus, cd.DeliveryType())

	dp, ok := blocks[5].(*command.DeactivatePod)
	require.True(t, ok)
	assert.Equal(t, uint32(1), dp.Nonce())

	// Defaults to a normal status request
	blocks, err = s.Pod[1].MessageBlocks()
	require.NoError(t, err)
	require.Equal(t, 1, len(blocks))
	assert.Equal(t, []byte{0x00}, blocks[0].EncodedData())
}

func TestScriptDecodeSyntaxError(t *testing.T) {
	s := new(ScriptSchema)
	err := s.Decode([]byte(`pod "broken" {`))
	assert.Error(t, err)
}

func TestScriptDecodeMissingAddress(t *testing.T) {
	s := new(ScriptSchema)
	err := s.Decode([]byte(`pod "noaddr" {}`))
	assert.Error(t, err)
}

func TestScriptEncode(t *testing.T) {
	s := new(ScriptSchema)
	err := s.Decode([]byte(testScript))
	require.NoError(t, err)

	data := s.Encode()
	assert.Contains(t, string(data), `pod "primary"`)
	assert.Contains(t, string(data), `command "assign_address"`)
	assert.Contains(t, string(data), `"0x1f0e89f0"`)
}

func TestReadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.hcl")
	err := os.WriteFile(path, []byte(testScript), 0600)
	require.NoError(t, err)

	s, err := ReadScript(path)
	require.NoError(t, err)
	assert.Equal(t, 2, len(s.Pod))

	_, err = ReadScript(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}

func TestCommandSchemaErrors(t *testing.T) {
	tests := []struct {
		name   string
		cs     CommandSchema
		target error
	}{
		{"unknown type", CommandSchema{Type: "make_coffee"}, definition.ErrUnknownMessageBlockType},
		{"response type", CommandSchema{Type: "status_response"}, ErrUnsupportedCommand},
		{"missing address", CommandSchema{Type: "assign_address"}, ErrInvalidScript},
		{"address too wide", CommandSchema{Type: "assign_address", Address: "0x100000000"}, ErrInvalidScript},
		{"negative address", CommandSchema{Type: "assign_address", Address: "-1"}, ErrInvalidScript},
		{"bad info", CommandSchema{Type: "get_status", Info: "everything"}, definition.ErrUnknownValue},
		{"missing nonce", CommandSchema{Type: "deactivate_pod"}, ErrInvalidScript},
		{"bad alert", CommandSchema{Type: "acknowledge_alert", Nonce: "1", Alerts: []int{8}}, ErrInvalidScript},
		{"bad beep", CommandSchema{Type: "cancel_delivery", Nonce: "1", Beep: "honk"}, definition.ErrUnknownValue},
		{"bad delivery", CommandSchema{Type: "cancel_delivery", Nonce: "1", Delivery: []string{"square"}}, definition.ErrUnknownValue},
		{"bad date", CommandSchema{Type: "setup_pod", Address: "1", Lot: "1", TID: "1", Date: "yesterday"}, ErrInvalidScript},
		{"bad timeout", CommandSchema{Type: "setup_pod", Address: "1", Lot: "1", TID: "1", Date: "2024-05-01T09:30", Timeout: 256}, ErrInvalidScript},
		{"year out of range", CommandSchema{Type: "setup_pod", Address: "1", Lot: "1", TID: "1", Date: "1999-05-01T09:30"}, command.ErrInvalidField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cs.MessageBlock()
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestAssignAddressFromScriptMatchesConstructor(t *testing.T) {
	cs := CommandSchema{Type: "AssignAddress", Address: "305419896"}
	mb, err := cs.MessageBlock()
	require.NoError(t, err)
	assert.True(t, command.Equal(command.NewAssignAddress(0x12345678), mb))
	assert.Equal(t, []byte{0x12, 0x34, 0x56, 0x78}, mb.EncodedData())
}
