// Package hotkey registers global key combinations that work while another
// application has focus.
package hotkey

import "context"

// Listener listens for global hotkey press/release events.
type Listener interface {
	Start(ctx context.Context, onDown func(), onUp func()) error
	Stop()
	KeyName() string
}

// Binding pairs a listener with the action it triggers on key-down.
type Binding struct {
	Listener Listener
	OnDown   func()
}

// StartAll starts every binding on its own goroutine and reports each
// listener's terminal error (nil when it stopped because ctx ended) on the
// returned channel, which is closed once all listeners have returned.
func StartAll(ctx context.Context, bindings ...Binding) <-chan Result {
	results := make(chan Result, len(bindings))
	done := make(chan struct{}, len(bindings))
	for _, b := range bindings {
		go func(b Binding) {
			err := b.Listener.Start(ctx, b.OnDown, nil)
			if ctx.Err() != nil {
				err = nil
			}
			results <- Result{KeyName: b.Listener.KeyName(), Err: err}
			done <- struct{}{}
		}(b)
	}
	go func() {
		for range bindings {
			<-done
		}
		close(results)
	}()
	return results
}

// Result is the outcome of one listener started by StartAll.
type Result struct {
	KeyName string
	Err     error
}
