package chat

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// SayFunc sends one line to a channel.
type SayFunc func(line string) error

// Pacer sends lines to rate-limited targets.
type Pacer struct {
	interval time.Duration
	batch    int

	mu      sync.Mutex
	targets map[string]chan struct{}
}

// NewPacer returns a pacer sending at most batch lines per interval.
// A batch below 1 is treated as 1.
func NewPacer(interval time.Duration, batch int) *Pacer {
	if batch < 1 {
		batch = 1
	}
	return &Pacer{
		interval: interval,
		batch:    batch,
		targets:  make(map[string]chan struct{}),
	}
}

// Say sends lines to target in order, batch lines at a time, waiting the
// pacing interval between batches.
//
// Concurrent calls for the same target run one after another. Say returns
// the number of lines sent; on cancellation or a send failure the caller
// can resume with lines[sent:].
func (p *Pacer) Say(ctx context.Context, target string, lines []string, say SayFunc) (int, error) {
	slot := p.slot(target)
	select {
	case slot <- struct{}{}:
	case <-ctx.Done():
		return 0, ctx.Err()
	}
	defer func() { <-slot }()

	sent := 0
	for sent < len(lines) {
		if sent > 0 {
			if err := wait(ctx, p.interval); err != nil {
				return sent, err
			}
		}
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		end := min(sent+p.batch, len(lines))
		for ; sent < end; sent++ {
			if err := say(lines[sent]); err != nil {
				return sent, fmt.Errorf("failed to send line %d to %s: %w", sent, target, err)
			}
		}
	}
	return sent, nil
}

// slot returns the single-entry semaphore guarding target.
func (p *Pacer) slot(target string) chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.targets[target]
	if !ok {
		s = make(chan struct{}, 1)
		p.targets[target] = s
	}
	return s
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
