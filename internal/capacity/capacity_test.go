package capacity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InitializesEverySlotToFull(t *testing.T) {
	m := New([]string{"a_b", "c_d"}, 3)
	for _, rk := range []string{"a_b", "c_d"} {
		for h := 0; h < 3; h++ {
			assert.Equal(t, float64(SlotSeconds), m.Available(rk, h))
		}
	}
}

func TestAvailable_UninitializedSlotReportsZero(t *testing.T) {
	m := New([]string{"a_b"}, 1)
	assert.Zero(t, m.Available("never_seen", 0))
}

func TestReserve_DecrementsRemaining(t *testing.T) {
	m := New([]string{"a_b"}, 1)
	require.NoError(t, m.Reserve("a_b", 0, 1000))
	assert.Equal(t, SlotSeconds-1000, m.Available("a_b", 0))
}

func TestReserve_FailsAndLeavesModelUnchangedWhenOverCapacity(t *testing.T) {
	m := New([]string{"a_b"}, 1)
	require.Error(t, m.Reserve("a_b", 0, SlotSeconds+1))
	assert.Equal(t, float64(SlotSeconds), m.Available("a_b", 0))
}

func TestRelease_ClampsToSlotSeconds(t *testing.T) {
	m := New([]string{"a_b"}, 1)
	m.Release("a_b", 0, 500) // releasing capacity that was never reserved
	assert.Equal(t, float64(SlotSeconds), m.Available("a_b", 0))
}

func TestReserveThenRelease_RoundTrips(t *testing.T) {
	m := New([]string{"a_b"}, 1)
	require.NoError(t, m.Reserve("a_b", 0, 1200))
	m.Release("a_b", 0, 1200)
	assert.Equal(t, float64(SlotSeconds), m.Available("a_b", 0))
}
