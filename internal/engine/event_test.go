package engine

import "testing"

func TestEventWithArgOrder(t *testing.T) {
	var e EventWithArg[int]
	var got []int
	e.AddListener(func(v int) { got = append(got, v) })
	e.AddListener(func(v int) { got = append(got, v*10) })

	e.Invoke(2)

	if len(got) != 2 || got[0] != 2 || got[1] != 20 {
		t.Errorf("Expected [2 20], got %v", got)
	}
}

func TestEventWithArgRemoveListener(t *testing.T) {
	var e EventWithArg[string]
	calls := 0
	id := e.AddListener(func(string) { calls++ })
	e.AddListener(func(string) { calls += 10 })

	if !e.RemoveListener(id) {
		t.Fatal("RemoveListener should report true for a registered ID")
	}
	if e.RemoveListener(id) {
		t.Error("RemoveListener should report false the second time")
	}

	e.Invoke("x")
	if calls != 10 {
		t.Errorf("Expected only the second listener to run, calls=%d", calls)
	}
	if e.GetListenerCount() != 1 {
		t.Errorf("Expected 1 listener, got %d", e.GetListenerCount())
	}
}

func TestEventWithArgRemoveDuringInvoke(t *testing.T) {
	var e EventWithArg[int]
	calls := 0
	var id ListenerID
	id = e.AddListener(func(int) {
		calls++
		e.RemoveListener(id)
	})

	e.Invoke(0)
	e.Invoke(0)

	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
}

func TestEventNilListener(t *testing.T) {
	var e Event
	if id := e.AddListener(nil); id != 0 {
		t.Errorf("nil listener should yield 0, got %d", id)
	}
	fired := false
	e.AddListener(func() { fired = true })
	e.Invoke()
	if !fired {
		t.Error("Listener did not fire")
	}
}
