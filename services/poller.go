package services

import (
	"context"
	"time"
)

// Poller drives periodic refreshes. It stays inert unless enabled.
type Poller struct {
	enabled  bool
	interval time.Duration
}

// NewPoller creates a poller; a non-positive interval disables it
func NewPoller(enabled bool, interval time.Duration) *Poller {
	return &Poller{enabled: enabled && interval > 0, interval: interval}
}

// Enabled reports whether polling is switched on
func (p *Poller) Enabled() bool {
	return p != nil && p.enabled
}

// RefreshSeconds returns the interval in whole seconds, or 0 when disabled
func (p *Poller) RefreshSeconds() int {
	if !p.Enabled() {
		return 0
	}
	secs := int(p.interval / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}

// Poll calls fn on every tick until ctx is done. When polling is disabled it
// returns at once without starting a timer.
func (p *Poller) Poll(ctx context.Context, fn func(context.Context)) {
	if !p.Enabled() {
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// a tick and cancellation can be ready together
			if ctx.Err() != nil {
				return
			}
			fn(ctx)
		}
	}
}
