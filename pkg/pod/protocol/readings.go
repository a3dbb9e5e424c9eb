package protocol

import (
	"sync"
	"time"
)

type entry struct {
	time  time.Time
	value float64
}

// Readings keeps timestamped values for a rolling window and drops anything
// older on Add.
type Readings struct {
	window     time.Duration
	values     []*entry
	valuesLock sync.Mutex
}

func NewReadings(window time.Duration) *Readings {
	return &Readings{window: window}
}

func (r *Readings) Add(v float64) {
	r.valuesLock.Lock()
	defer r.valuesLock.Unlock()
	now := time.Now()
	r.prune(now)
	r.values = append(r.values, &entry{
		time:  now,
		value: v,
	})
}

func (r *Readings) prune(now time.Time) {
	ctime := now.Add(-r.window)
	keep := 0
	for keep < len(r.values) && !r.values[keep].time.After(ctime) {
		keep++
	}
	if keep > 0 {
		r.values = append(r.values[:0], r.values[keep:]...)
	}
}

func (r *Readings) Len() int {
	r.valuesLock.Lock()
	defer r.valuesLock.Unlock()
	return len(r.values)
}

// GetAverage averages the values added within d. Anything beyond the window
// has already been dropped.
func (r *Readings) GetAverage(d time.Duration) float64 {
	r.valuesLock.Lock()
	defer r.valuesLock.Unlock()
	ctime := time.Now().Add(-d)
	num := 0
	total := float64(0)
	for _, e := range r.values {
		if e.time.After(ctime) {
			total += e.value
			num++
		}
	}
	if num == 0 {
		return 0
	}
	return total / float64(num)
}
