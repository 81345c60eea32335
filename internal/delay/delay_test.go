package delay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockWaitsAtLeastDuration(t *testing.T) {
	start := time.Now()
	Clock{}.After(20 * time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestClockIgnoresNonPositive(t *testing.T) {
	start := time.Now()
	Clock{}.After(-time.Second)
	Clock{}.After(0)
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestRecorder(t *testing.T) {
	var seen []int
	r := &Recorder{OnWait: func(n int, d time.Duration) { seen = append(seen, n) }}

	r.After(250 * time.Millisecond)
	r.After(time.Second)

	require.Equal(t, []time.Duration{250 * time.Millisecond, time.Second}, r.Waits())
	assert.Equal(t, 1250*time.Millisecond, r.Total())
	assert.Equal(t, []int{1, 2}, seen)
}
