//go:build darwin

package coreaudio

/*
#include <stdint.h>
#include "hal_darwin.h"
*/
import "C"

import (
	"context"
	"fmt"
	"runtime/cgo"
	"sync/atomic"

	"github.com/Danondso/soundswitch/internal/device"
)

// subscription is what the C listener's client data points at.
type subscription struct {
	stopped atomic.Bool
	notify  func(device.Event)
}

//export soundswitchPropertyChanged
func soundswitchPropertyChanged(handle C.uintptr_t, kind C.int) {
	sub, ok := cgo.Handle(handle).Value().(*subscription)
	if !ok || sub.stopped.Load() {
		return
	}
	ev := device.Event{Kind: device.DevicesChanged}
	switch kind {
	case C.ssChangeDefaultInput:
		ev.Kind = device.DefaultInputChanged
	case C.ssChangeDefaultOutput:
		ev.Kind = device.DefaultOutputChanged
	}
	sub.notify(ev)
}

// Watch registers listeners for the default input, default output and
// device list properties. CoreAudio invokes them on its own threads; notify
// must only hand the event off. Watch blocks until ctx is cancelled.
func (b *Backend) Watch(ctx context.Context, notify func(device.Event)) error {
	sub := &subscription{notify: notify}
	h := cgo.NewHandle(sub)
	if err := check(C.ssAddListeners(C.uintptr_t(h))); err != nil {
		h.Delete()
		return fmt.Errorf("add property listeners: %w", err)
	}

	<-ctx.Done()
	sub.stopped.Store(true)
	err := check(C.ssRemoveListeners(C.uintptr_t(h)))
	h.Delete()
	if err != nil {
		return fmt.Errorf("remove property listeners: %w", err)
	}
	return ctx.Err()
}
