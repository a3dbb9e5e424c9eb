package command

import (
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/loopholelabs/podcomm/pkg/pod/definition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignAddressPayload(t *testing.T) {
	cases := []struct {
		address uint32
		payload []byte
	}{
		{0, []byte{0x00, 0x00, 0x00, 0x00}},
		{1, []byte{0x00, 0x00, 0x00, 0x01}},
		{0x12345678, []byte{0x12, 0x34, 0x56, 0x78}},
		{0xffffffff, []byte{0xff, 0xff, 0xff, 0xff}},
	}

	for _, c := range cases {
		cmd := NewAssignAddress(c.address)
		assert.Equal(t, c.payload, cmd.EncodedData())
		assert.Equal(t, c.address, cmd.Address())
		assert.Equal(t, definition.AssignAddress, cmd.Type())
	}
}

func TestAssignAddressRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	addresses := []uint32{0, 1, 0x7fffffff, 0x80000000, 0xffffffff}
	for i := 0; i < 1000; i++ {
		addresses = append(addresses, r.Uint32())
	}

	for _, address := range addresses {
		cmd := NewAssignAddress(address)
		data := cmd.EncodedData()
		assert.Len(t, data, 4)
		assert.Equal(t, address, binary.BigEndian.Uint32(data))
		assert.Equal(t, definition.AssignAddress, cmd.Type())

		// Same address, same bytes.
		assert.Equal(t, data, NewAssignAddress(address).EncodedData())
	}
}

func TestAssignAddressImmutable(t *testing.T) {
	cmd := NewAssignAddress(0x1f0e89f0)

	data := cmd.EncodedData()
	data[0] = 0xaa
	data[3] = 0xbb

	assert.Equal(t, []byte{0x1f, 0x0e, 0x89, 0xf0}, cmd.EncodedData())
	assert.Equal(t, uint32(0x1f0e89f0), cmd.Address())
	assert.Equal(t, cmd.EncodedData(), cmd.EncodedData())
}

func TestAssignAddressIndependentInstances(t *testing.T) {
	a := NewAssignAddress(42)
	b := NewAssignAddress(42)

	assert.Equal(t, a.EncodedData(), b.EncodedData())
	assert.Equal(t, a.Type(), b.Type())
	assert.True(t, Equal(a, b))
	assert.NotSame(t, a, b)
}

func TestAssignAddressRaw(t *testing.T) {
	cmd := NewAssignAddress(0x12345678)
	raw := Encode(cmd)
	assert.Equal(t, []byte{0x07, 0x04, 0x12, 0x34, 0x56, 0x78}, raw)

	mb, n, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.True(t, Equal(cmd, mb))

	decoded, ok := mb.(*AssignAddress)
	require.True(t, ok)
	assert.Equal(t, uint32(0x12345678), decoded.Address())
}

func TestAssignAddressString(t *testing.T) {
	assert.Equal(t, "AssignAddressCommand{address=305419896}", NewAssignAddress(0x12345678).String())
}

func TestAssignAddressBadLength(t *testing.T) {
	_, _, err := Decode([]byte{0x07, 0x03, 0x12, 0x34, 0x56})
	assert.ErrorIs(t, err, ErrInvalidLength)
}
