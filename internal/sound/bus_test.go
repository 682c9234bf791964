package sound

import "testing"

func TestBusNoDedup(t *testing.T) {
	bus := NewBus()

	var got []ID
	bus.Subscribe(func(id ID) { got = append(got, id) })

	bus.Trigger(Fire)
	bus.Trigger(Fire)

	if len(got) != 2 {
		t.Fatalf("listener called %d times, expected 2", len(got))
	}
	for i, id := range got {
		if id != Fire {
			t.Errorf("call %d = %v, expected %v", i, id, Fire)
		}
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()

	var a, b int
	unsubA := bus.Subscribe(func(ID) { a++ })
	bus.Subscribe(func(ID) { b++ })

	bus.Trigger(Life)
	unsubA()
	unsubA()
	bus.Trigger(Life)

	if a != 1 {
		t.Errorf("unsubscribed listener calls = %d, expected 1", a)
	}
	if b != 2 {
		t.Errorf("remaining listener calls = %d, expected 2", b)
	}
	if len(bus.listeners) != 1 {
		t.Errorf("listeners = %d, expected 1", len(bus.listeners))
	}
}

func TestBusManyListeners(t *testing.T) {
	bus := NewBus()

	calls := 0
	for i := 0; i < 100; i++ {
		bus.Subscribe(func(ID) { calls++ })
	}
	bus.Trigger(Saucer)

	if calls != 100 {
		t.Errorf("calls = %d, expected 100", calls)
	}
}
