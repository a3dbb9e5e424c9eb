package protocol

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReadingsAverage(t *testing.T) {
	r := NewReadings(time.Minute)
	assert.Equal(t, float64(0), r.GetAverage(time.Minute))

	r.Add(10)
	r.Add(20)
	r.Add(30)
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, float64(20), r.GetAverage(time.Minute))
}

func TestReadingsWindow(t *testing.T) {
	r := NewReadings(20 * time.Millisecond)
	r.Add(100)
	r.Add(100)

	time.Sleep(50 * time.Millisecond)

	// Old values fall out of the average and are dropped on the next Add
	assert.Equal(t, float64(0), r.GetAverage(20*time.Millisecond))
	r.Add(4)
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, float64(4), r.GetAverage(time.Second))
}
