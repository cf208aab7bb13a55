package idle

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestMonitor_FiresExactlyOnce(t *testing.T) {
	var fires int32
	m := NewMonitor(20*time.Millisecond, time.Millisecond, func() {
		atomic.AddInt32(&fires, 1)
	})
	defer m.Stop()

	time.Sleep(120 * time.Millisecond)

	if got := atomic.LoadInt32(&fires); got != 1 {
		t.Errorf("idle callback fired %d times, want 1", got)
	}
}

func TestMonitor_TouchSuppressesCallback(t *testing.T) {
	var fires int32
	m := NewMonitor(60*time.Millisecond, time.Millisecond, func() {
		atomic.AddInt32(&fires, 1)
	})
	defer m.Stop()

	// keep touching well inside the deadline
	for i := 0; i < 8; i++ {
		time.Sleep(20 * time.Millisecond)
		m.Touch()
	}

	if got := atomic.LoadInt32(&fires); got != 0 {
		t.Fatalf("idle callback fired %d times despite activity", got)
	}

	// once activity stops, the countdown completes
	time.Sleep(150 * time.Millisecond)
	if got := atomic.LoadInt32(&fires); got != 1 {
		t.Errorf("idle callback fired %d times after activity stopped, want 1", got)
	}
}

func TestMonitor_ActivityAfterFireIsIgnoredUntilRearm(t *testing.T) {
	var fires int32
	m := NewMonitor(15*time.Millisecond, time.Millisecond, func() {
		atomic.AddInt32(&fires, 1)
	})
	defer m.Stop()

	time.Sleep(60 * time.Millisecond)
	if got := atomic.LoadInt32(&fires); got != 1 {
		t.Fatalf("expected one fire, got %d", got)
	}

	// touches after the fire must not restart the countdown
	m.Touch()
	time.Sleep(60 * time.Millisecond)
	if got := atomic.LoadInt32(&fires); got != 1 {
		t.Fatalf("monitor re-fired without Rearm, fires = %d", got)
	}

	m.Rearm()
	time.Sleep(60 * time.Millisecond)
	if got := atomic.LoadInt32(&fires); got != 2 {
		t.Errorf("expected second fire after Rearm, got %d", got)
	}
}

func TestMonitor_ThrottleDropsRapidTouches(t *testing.T) {
	m := NewMonitor(time.Hour, 50*time.Millisecond, func() {})
	defer m.Stop()

	m.Touch()
	first := m.lastAccepted()

	// immediate second touch falls inside the throttle window
	m.Touch()
	if got := m.lastAccepted(); !got.Equal(first) {
		t.Error("rapid touch was not dropped by the throttle")
	}

	time.Sleep(60 * time.Millisecond)
	m.Touch()
	if got := m.lastAccepted(); got.Equal(first) {
		t.Error("touch after the throttle window was dropped")
	}
}

func TestMonitor_StopPreventsFire(t *testing.T) {
	var fires int32
	m := NewMonitor(15*time.Millisecond, time.Millisecond, func() {
		atomic.AddInt32(&fires, 1)
	})

	m.Stop()
	time.Sleep(60 * time.Millisecond)

	if got := atomic.LoadInt32(&fires); got != 0 {
		t.Errorf("stopped monitor fired %d times", got)
	}
}

// lastAccepted exposes the accepted-touch timestamp for throttle tests
func (m *Monitor) lastAccepted() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastTouch
}
