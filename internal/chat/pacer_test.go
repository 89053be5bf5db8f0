package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects sent lines with their send times.
type recorder struct {
	mu    sync.Mutex
	lines []string
	times []time.Time
}

func (r *recorder) say(line string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
	r.times = append(r.times, time.Now())
	return nil
}

func (r *recorder) sent() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

func TestPacer_BatchesInOrder(t *testing.T) {
	const interval = 40 * time.Millisecond
	p := NewPacer(interval, 2)
	rec := &recorder{}
	lines := []string{"1", "2", "3", "4", "5"}

	sent, err := p.Say(context.Background(), "#moose", lines, rec.say)
	require.NoError(t, err)
	assert.Equal(t, 5, sent)
	assert.Equal(t, lines, rec.sent())

	// lines 1-2, 3-4 and 5 go out in three batches
	assert.Less(t, rec.times[1].Sub(rec.times[0]), interval)
	assert.GreaterOrEqual(t, rec.times[2].Sub(rec.times[1]), interval)
	assert.Less(t, rec.times[3].Sub(rec.times[2]), interval)
	assert.GreaterOrEqual(t, rec.times[4].Sub(rec.times[3]), interval)
}

func TestPacer_Empty(t *testing.T) {
	p := NewPacer(time.Hour, 2)
	rec := &recorder{}

	sent, err := p.Say(context.Background(), "#moose", nil, rec.say)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
}

func TestPacer_CancelAndResume(t *testing.T) {
	p := NewPacer(time.Hour, 2)
	rec := &recorder{}
	lines := []string{"1", "2", "3", "4", "5"}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		// cancel while the pacer waits after the first batch
		for len(rec.sent()) < 2 {
			time.Sleep(time.Millisecond)
		}
		cancel()
	}()

	sent, err := p.Say(ctx, "#moose", lines, rec.say)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, sent)

	// resume the rest on a fresh context with no delay
	fast := NewPacer(0, 2)
	more, err := fast.Say(context.Background(), "#moose", lines[sent:], rec.say)
	require.NoError(t, err)
	assert.Equal(t, 3, more)
	assert.Equal(t, lines, rec.sent())
}

func TestPacer_SendError(t *testing.T) {
	p := NewPacer(0, 2)
	boom := errors.New("connection reset")
	calls := 0

	sent, err := p.Say(context.Background(), "#moose", []string{"1", "2", "3"}, func(string) error {
		calls++
		if calls == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, sent)
}

func TestPacer_SameTargetDoesNotInterleave(t *testing.T) {
	p := NewPacer(5*time.Millisecond, 1)
	rec := &recorder{}

	a := []string{"a1", "a2", "a3"}
	b := []string{"b1", "b2", "b3"}

	var wg sync.WaitGroup
	for _, lines := range [][]string{a, b} {
		wg.Add(1)
		go func(lines []string) {
			defer wg.Done()
			_, err := p.Say(context.Background(), "#moose", lines, rec.say)
			assert.NoError(t, err)
		}(lines)
	}
	wg.Wait()

	got := rec.sent()
	require.Len(t, got, 6)
	first, second := got[:3], got[3:]
	if first[0] == "a1" {
		assert.Equal(t, a, first)
		assert.Equal(t, b, second)
	} else {
		assert.Equal(t, b, first)
		assert.Equal(t, a, second)
	}
}

func TestPacer_WaitingForTargetHonoursContext(t *testing.T) {
	p := NewPacer(time.Hour, 1)
	rec := &recorder{}

	// first sender holds the target while it waits between batches
	holder, cancelHolder := context.WithCancel(context.Background())
	defer cancelHolder()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = p.Say(holder, "#moose", []string{"1", "2"}, rec.say)
	}()
	for len(rec.sent()) < 1 {
		time.Sleep(time.Millisecond)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	sent, err := p.Say(ctx, "#moose", []string{"x"}, rec.say)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, sent)

	// other targets are not blocked
	sent, err = p.Say(context.Background(), "#other", []string{"y"}, rec.say)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	cancelHolder()
	<-done
}

func TestNewPacer_MinimumBatch(t *testing.T) {
	p := NewPacer(0, 0)
	assert.Equal(t, 1, p.batch)
}
