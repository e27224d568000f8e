package watch

import (
	"sync"
	"time"
)

// CooldownTracker suppresses repeat alerts for the same expression and symbol
// until a cooldown window has passed
type CooldownTracker struct {
	mu        sync.Mutex
	window    time.Duration
	cooldowns map[string]time.Time // key: "expression|symbol", value: cooldown end
	now       func() time.Time
	stats     CooldownStats
}

// CooldownStats holds statistics about cooldown tracking
type CooldownStats struct {
	Active  int64
	Checked int64
	Hit     int64 // alerts suppressed
	Expired int64
}

// NewCooldownTracker creates a tracker; a zero window disables suppression
func NewCooldownTracker(window time.Duration) *CooldownTracker {
	return &CooldownTracker{
		window:    window,
		cooldowns: make(map[string]time.Time),
		now:       time.Now,
	}
}

// IsOnCooldown reports whether symbol already alerted for expression within the window
func (ct *CooldownTracker) IsOnCooldown(expression, symbol string) bool {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	ct.stats.Checked++
	key := cooldownKey(expression, symbol)
	end, exists := ct.cooldowns[key]
	if !exists {
		return false
	}

	if !ct.now().Before(end) {
		delete(ct.cooldowns, key)
		ct.stats.Expired++
		ct.stats.Active = int64(len(ct.cooldowns))
		return false
	}

	ct.stats.Hit++
	return true
}

// Record starts the cooldown window for expression and symbol
func (ct *CooldownTracker) Record(expression, symbol string) {
	if ct.window <= 0 {
		return
	}

	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.cooldowns[cooldownKey(expression, symbol)] = ct.now().Add(ct.window)
	ct.stats.Active = int64(len(ct.cooldowns))
}

// ClearExpired removes all expired cooldowns and returns how many were removed
func (ct *CooldownTracker) ClearExpired() int {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	now := ct.now()
	expired := 0
	for key, end := range ct.cooldowns {
		if !now.Before(end) {
			delete(ct.cooldowns, key)
			expired++
		}
	}

	ct.stats.Expired += int64(expired)
	ct.stats.Active = int64(len(ct.cooldowns))
	return expired
}

// Stats returns a copy of the current statistics
func (ct *CooldownTracker) Stats() CooldownStats {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return ct.stats
}

func cooldownKey(expression, symbol string) string {
	return expression + "|" + symbol
}
