// Package idle implements the forced-logout countdown: a resettable timer
// driven by user-activity signals. Activity resets are throttled so bursts of
// input do not churn the timer, and the idle callback fires exactly once per
// arming.
package idle

import (
	"sync"
	"time"
)

// Monitor counts down to an idle callback unless activity keeps resetting it
type Monitor struct {
	timeout  time.Duration
	throttle time.Duration
	onIdle   func()

	mu        sync.Mutex
	timer     *time.Timer
	lastTouch time.Time
	fired     bool
	stopped   bool
}

// NewMonitor starts an armed monitor. onIdle runs on the timer goroutine once
// the timeout elapses with no activity; it will not run again until Rearm.
func NewMonitor(timeout, throttle time.Duration, onIdle func()) *Monitor {
	m := &Monitor{
		timeout:  timeout,
		throttle: throttle,
		onIdle:   onIdle,
	}
	m.timer = time.AfterFunc(timeout, m.fire)
	return m
}

// Touch records user activity and pushes the deadline out. Calls within the
// throttle window of the previous accepted touch are dropped.
func (m *Monitor) Touch() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fired || m.stopped {
		return
	}

	now := time.Now()
	if !m.lastTouch.IsZero() && now.Sub(m.lastTouch) < m.throttle {
		return
	}
	m.lastTouch = now
	m.timer.Reset(m.timeout)
}

// Rearm re-enables the monitor after the idle callback has fired. A stopped
// monitor stays stopped.
func (m *Monitor) Rearm() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopped || !m.fired {
		return
	}
	m.fired = false
	m.lastTouch = time.Time{}
	m.timer.Reset(m.timeout)
}

// Stop disarms the monitor for good. Safe to call more than once.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopped = true
	m.timer.Stop()
}

func (m *Monitor) fire() {
	m.mu.Lock()
	if m.fired || m.stopped {
		m.mu.Unlock()
		return
	}
	m.fired = true
	m.mu.Unlock()

	m.onIdle()
}
