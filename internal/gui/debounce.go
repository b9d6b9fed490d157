package gui

import "time"

// DefaultCooldown is how long an action stays locked after it fires.
const DefaultCooldown = 200 * time.Millisecond

// Action is a discrete host command.
type Action int

const (
	ActionPause Action = iota
	ActionReset
	ActionQuit
)

// Debouncer turns a polled "key is down" level into single actions. Once
// an action fires it is ignored until Cooldown has passed, without blocking
// the frame loop.
type Debouncer struct {
	Cooldown time.Duration
	last     map[Action]time.Time
}

func NewDebouncer(cooldown time.Duration) *Debouncer {
	return &Debouncer{Cooldown: cooldown, last: make(map[Action]time.Time)}
}

// Allow reports whether action may fire at now, and if so starts its
// cooldown.
func (d *Debouncer) Allow(a Action, now time.Time) bool {
	if last, ok := d.last[a]; ok && now.Sub(last) < d.Cooldown {
		return false
	}
	d.last[a] = now
	return true
}
