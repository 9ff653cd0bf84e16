package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnboundedNeverBlocksSender(t *testing.T) {
	in, out := unbounded[int]()

	// Send far more than any channel buffer would hold, without draining.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10000; i++ {
			in <- i
		}
		close(in)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("sender blocked on undrained queue")
	}

	var got []int
	for v := range out {
		got = append(got, v)
	}
	require.Len(t, got, 10000)
	assert.Equal(t, 0, got[0])
	assert.Equal(t, 9999, got[9999])
}

func TestUnboundedPreservesOrder(t *testing.T) {
	in, out := unbounded[string]()
	in <- "a"
	in <- "b"
	in <- "c"
	close(in)

	var got []string
	for v := range out {
		got = append(got, v)
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestUnboundedCloseWithoutSends(t *testing.T) {
	in, out := unbounded[int]()
	close(in)

	_, ok := <-out
	assert.False(t, ok)
}
