package state

import (
	"sync"
	"testing"
)

func TestStore_GetSet(t *testing.T) {
	s := New(10)

	if got := s.Get(); got != 10 {
		t.Errorf("Get() = %d, want 10", got)
	}

	s.Set(42)
	if got := s.Get(); got != 42 {
		t.Errorf("Get() after Set = %d, want 42", got)
	}
}

func TestStore_SubscribeFiresInRegistrationOrder(t *testing.T) {
	s := New(0)

	var order []string
	s.Subscribe(func(int) { order = append(order, "first") }, false)
	s.Subscribe(func(int) { order = append(order, "second") }, false)
	s.Subscribe(func(int) { order = append(order, "third") }, false)

	s.Set(1)

	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("got %d notifications, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("notification[%d] = %s, want %s", i, order[i], want[i])
		}
	}
}

func TestStore_FireImmediately(t *testing.T) {
	s := New("hello")

	var got string
	var calls int
	s.Subscribe(func(v string) {
		got = v
		calls++
	}, true)

	if calls != 1 {
		t.Fatalf("expected 1 immediate call, got %d", calls)
	}
	if got != "hello" {
		t.Errorf("immediate value = %q, want %q", got, "hello")
	}
}

func TestStore_DisposeStopsNotifications(t *testing.T) {
	s := New(0)

	var calls int
	dispose := s.Subscribe(func(int) { calls++ }, false)

	s.Set(1)
	dispose()
	s.Set(2)
	s.Set(3)

	if calls != 1 {
		t.Errorf("got %d calls after dispose, want 1", calls)
	}
}

func TestStore_DisposeIsIdempotent(t *testing.T) {
	s := New(0)

	dispose := s.Subscribe(func(int) {}, false)
	var survivorCalls int
	s.Subscribe(func(int) { survivorCalls++ }, false)

	dispose()
	dispose() // must not remove the surviving listener

	s.Set(1)
	if survivorCalls != 1 {
		t.Errorf("surviving listener called %d times, want 1", survivorCalls)
	}
}

func TestStore_Update(t *testing.T) {
	s := New(5)

	var notified int
	s.Subscribe(func(v int) { notified = v }, false)

	s.Update(func(v int) int { return v * 2 })

	if got := s.Get(); got != 10 {
		t.Errorf("Get() = %d, want 10", got)
	}
	if notified != 10 {
		t.Errorf("listener saw %d, want 10", notified)
	}
}

// Listeners may call back into the store without deadlocking.
func TestStore_ListenerMayReadStore(t *testing.T) {
	s := New(0)

	var seen int
	s.Subscribe(func(int) { seen = s.Get() }, false)

	s.Set(7)
	if seen != 7 {
		t.Errorf("listener read %d, want 7", seen)
	}
}

func TestStore_ConcurrentSetAndGet(t *testing.T) {
	s := New(0)
	s.Subscribe(func(int) {}, false)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(v int) {
			defer wg.Done()
			s.Set(v)
		}(i)
		go func() {
			defer wg.Done()
			_ = s.Get()
		}()
	}
	wg.Wait()
}
