package gui

import (
	"testing"
	"time"
)

func TestDebouncer(t *testing.T) {
	d := NewDebouncer(DefaultCooldown)
	start := time.Unix(0, 0)

	tests := []struct {
		name   string
		action Action
		offset time.Duration
		want   bool
	}{
		{"first press", ActionPause, 0, true},
		{"held next frame", ActionPause, 16 * time.Millisecond, false},
		{"held within cooldown", ActionPause, 199 * time.Millisecond, false},
		{"other action unaffected", ActionReset, 100 * time.Millisecond, true},
		{"after cooldown", ActionPause, 200 * time.Millisecond, true},
		{"cooldown restarts", ActionPause, 300 * time.Millisecond, false},
		{"reset still locked", ActionReset, 250 * time.Millisecond, false},
		{"reset after cooldown", ActionReset, 300 * time.Millisecond, true},
	}

	for _, tt := range tests {
		if got := d.Allow(tt.action, start.Add(tt.offset)); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}
