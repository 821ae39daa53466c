package event_test

import (
	"testing"

	"github.com/kris48k/gcloud-node/event"
)

func TestSubscribe_CountsSubscribers(t *testing.T) {
	r := event.New[string]()

	if r.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", r.Len())
	}
	if r.Active() {
		t.Fatal("Active() = true with no subscribers")
	}

	cancel1 := r.Subscribe(func(string) {})
	cancel2 := r.Subscribe(func(string) {})
	cancel3 := r.Subscribe(func(string) {})

	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
	if !r.Active() {
		t.Error("Active() = false with 3 subscribers")
	}

	cancel2()
	if r.Len() != 2 {
		t.Errorf("Len() after one cancel = %d, want 2", r.Len())
	}

	cancel1()
	cancel3()
	if r.Len() != 0 {
		t.Errorf("Len() after all cancels = %d, want 0", r.Len())
	}
	if r.Active() {
		t.Error("Active() = true after all cancels")
	}
}

func TestSubscribe_CancelIsIdempotent(t *testing.T) {
	r := event.New[int]()

	cancelA := r.Subscribe(func(int) {})
	cancelB := r.Subscribe(func(int) {})

	cancelA()
	cancelA()
	cancelA()

	// Double-cancel must not eat cancelB's registration.
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}

	cancelB()
	if r.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", r.Len())
	}
}

func TestFirstHook_FiresExactlyOncePerTransition(t *testing.T) {
	var firstCalls int
	r := event.New(event.WithFirstHook[int](func() { firstCalls++ }))

	cancel1 := r.Subscribe(func(int) {})
	r.Subscribe(func(int) {})
	r.Subscribe(func(int) {})

	if firstCalls != 1 {
		t.Fatalf("first hook fired %d times after 3 subscribes, want 1", firstCalls)
	}

	// The hook fires again on the next 0→1 transition.
	cancel1()
	if firstCalls != 1 {
		t.Fatalf("first hook fired on non-transition, count = %d", firstCalls)
	}
}

func TestFirstHook_RefiresAfterDrainingToZero(t *testing.T) {
	var firstCalls int
	r := event.New(event.WithFirstHook[int](func() { firstCalls++ }))

	cancel := r.Subscribe(func(int) {})
	cancel()
	r.Subscribe(func(int) {})

	if firstCalls != 2 {
		t.Errorf("first hook fired %d times, want 2 (one per 0→1 transition)", firstCalls)
	}
}

func TestLastHook_FiresOnDrainOnly(t *testing.T) {
	var lastCalls int
	r := event.New(event.WithLastHook[int](func() { lastCalls++ }))

	cancel1 := r.Subscribe(func(int) {})
	cancel2 := r.Subscribe(func(int) {})

	cancel1()
	if lastCalls != 0 {
		t.Fatalf("last hook fired with a subscriber still attached")
	}

	cancel2()
	if lastCalls != 1 {
		t.Errorf("last hook fired %d times, want 1", lastCalls)
	}

	// Idempotent cancels do not re-fire the hook.
	cancel2()
	if lastCalls != 1 {
		t.Errorf("last hook fired %d times after double cancel, want 1", lastCalls)
	}
}

func TestNotify_DeliversToAllSubscribers(t *testing.T) {
	r := event.New[string]()

	var got []string
	r.Subscribe(func(v string) { got = append(got, "a:"+v) })
	r.Subscribe(func(v string) { got = append(got, "b:"+v) })

	r.Notify("done")

	if len(got) != 2 {
		t.Fatalf("delivered to %d subscribers, want 2: %v", len(got), got)
	}
	seen := map[string]bool{got[0]: true, got[1]: true}
	if !seen["a:done"] || !seen["b:done"] {
		t.Errorf("unexpected deliveries: %v", got)
	}
}

func TestNotify_SkipsCancelledSubscribers(t *testing.T) {
	r := event.New[int]()

	var calls int
	cancel := r.Subscribe(func(int) { calls++ })
	cancel()

	r.Notify(1)
	if calls != 0 {
		t.Errorf("cancelled subscriber received %d notifications", calls)
	}
}

func TestNotify_SubscriberMayUnsubscribeDuringDelivery(t *testing.T) {
	r := event.New[int]()

	var cancel func()
	var calls int
	cancel = r.Subscribe(func(int) {
		calls++
		cancel()
	})

	r.Notify(1)
	r.Notify(2)

	if calls != 1 {
		t.Errorf("subscriber called %d times, want 1", calls)
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}
