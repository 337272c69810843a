//go:build darwin

package coreaudio

import (
	"testing"

	"github.com/Danondso/soundswitch/internal/device"
)

func TestStatusErrorFourCC(t *testing.T) {
	if got := statusError(0x216F626A).Error(); got != "OSStatus '!obj'" {
		t.Errorf("unexpected message %q", got)
	}
	if got := statusError(-50).Error(); got != "OSStatus -50" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestIDRoundTrip(t *testing.T) {
	n, err := parseID("73")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if formatID(n) != device.ID("73") {
		t.Errorf("expected 73, got %s", formatID(n))
	}
	if _, err := parseID("BuiltInSpeakerDevice"); err == nil {
		t.Error("expected error for non-numeric id")
	}
}
