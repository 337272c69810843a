package device

import (
	"context"
	"time"
)

// Bridge turns Watcher events into calls to post on a single goroutine.
// Events that arrive while a post is pending are merged into it.
type Bridge struct {
	watcher Watcher
	post    func()
	pending chan struct{}
}

// NewBridge creates a Bridge that calls post after each burst of events
// from w.
func NewBridge(w Watcher, post func()) *Bridge {
	return &Bridge{watcher: w, post: post, pending: make(chan struct{}, 1)}
}

// Notify records that a refresh is needed. Safe to call from any goroutine;
// never blocks.
func (b *Bridge) Notify(Event) {
	select {
	case b.pending <- struct{}{}:
	default:
	}
}

// Run starts the watcher and the delivery loop and blocks until ctx is
// cancelled or the watcher fails.
func (b *Bridge) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case <-b.pending:
				b.post()
			}
		}
	}()

	err := b.watcher.Watch(ctx, b.Notify)
	cancel()
	<-done
	return err
}

// PollWatcher emulates change notifications for backends that have none by
// re-querying the HAL every Interval.
type PollWatcher struct {
	HAL      HAL
	Interval time.Duration
}

// Watch implements Watcher.
func (p *PollWatcher) Watch(ctx context.Context, notify func(Event)) error {
	interval := p.Interval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	last := Query(p.HAL)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			snap := Query(p.HAL)
			if !snap.Same(last) {
				notify(Event{Kind: DevicesChanged})
			}
			last = snap
		}
	}
}
