package definition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPodInfoType(t *testing.T) {
	p, err := LookupPodInfoType("active_alerts")
	require.NoError(t, err)
	assert.Equal(t, PodInfoActiveAlerts, p)
	assert.Equal(t, "ActiveAlerts", p.String())

	_, err = LookupPodInfoType("nope")
	assert.ErrorIs(t, err, ErrUnknownValue)

	assert.Equal(t, "unknown", PodInfoType(0x99).String())
}

func TestBeepType(t *testing.T) {
	for b, name := range beepNames {
		assert.LessOrEqual(t, b, MaxBeepType)
		found, err := LookupBeepType(name)
		require.NoError(t, err)
		assert.Equal(t, b, found)
	}

	_, err := LookupBeepType("klaxon")
	assert.ErrorIs(t, err, ErrUnknownValue)
}

func TestDeliveryType(t *testing.T) {
	d, err := LookupDeliveryType("basal", "Bolus")
	require.NoError(t, err)
	assert.Equal(t, DeliveryBasal|DeliveryBolus, d)
	assert.True(t, d.Has(DeliveryBasal))
	assert.False(t, d.Has(DeliveryTempBasal))
	assert.Equal(t, "Basal|Bolus", d.String())

	d, err = LookupDeliveryType("all")
	require.NoError(t, err)
	assert.Equal(t, DeliveryType(0x07), d)

	d, err = LookupDeliveryType()
	require.NoError(t, err)
	assert.Equal(t, DeliveryNone, d)
	assert.Equal(t, "None", d.String())

	_, err = LookupDeliveryType("basal", "extended")
	assert.ErrorIs(t, err, ErrUnknownValue)

	assert.Equal(t, "TempBasal|0x08", (DeliveryTempBasal | DeliveryType(0x08)).String())
}

func TestAlertSet(t *testing.T) {
	s, err := NewAlertSet(0, 3, 7)
	require.NoError(t, err)
	assert.Equal(t, AlertSet(0x89), s)
	assert.True(t, s.Contains(3))
	assert.False(t, s.Contains(1))
	assert.False(t, s.Contains(9))
	assert.Equal(t, []AlertSlot{0, 3, 7}, s.Slots())

	_, err = NewAlertSet(8)
	assert.ErrorIs(t, err, ErrUnknownValue)

	empty, err := NewAlertSet()
	require.NoError(t, err)
	assert.Equal(t, []AlertSlot{}, empty.Slots())
}
