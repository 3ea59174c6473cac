package lookup

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	values []string
}

func (r *recorder) record(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.values))
	copy(out, r.values)
	return out
}

// Eight rapid keystrokes completing a postal code must produce exactly one
// lookup, fired after the final keystroke plus the quiet window.
func TestDebouncer_RapidTypingFiresOnce(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(50*time.Millisecond, rec.record)
	defer d.Stop()

	partial := ""
	for _, digit := range "01310100" {
		partial += string(digit)
		d.Input(partial)
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)

	got := rec.snapshot()
	require.Len(t, got, 1)
	assert.Equal(t, "01310100", got[0], "only the final value triggers the lookup")
}

func TestDebouncer_SeparateBurstsFireSeparately(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(30*time.Millisecond, rec.record)
	defer d.Stop()

	d.Input("01310")
	time.Sleep(80 * time.Millisecond)
	d.Input("01310100")
	time.Sleep(80 * time.Millisecond)

	assert.Equal(t, []string{"01310", "01310100"}, rec.snapshot())
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(50*time.Millisecond, rec.record)

	d.Input("01310100")
	d.Stop()
	time.Sleep(120 * time.Millisecond)

	assert.Empty(t, rec.snapshot())
}
