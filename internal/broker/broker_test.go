package broker

import (
	"testing"
	"time"
)

func TestPublishFanOut(t *testing.T) {
	b := New()
	ch1, cancel1 := b.Subscribe("s1")
	ch2, cancel2 := b.Subscribe("s1")
	defer cancel1()
	defer cancel2()

	b.Publish("s1", "hello")

	for i, ch := range []<-chan string{ch1, ch2} {
		select {
		case got := <-ch:
			if got != "hello" {
				t.Errorf("subscriber %d got %q, want hello", i, got)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d never received the event", i)
		}
	}
}

func TestPublishOrder(t *testing.T) {
	b := New()
	ch, cancel := b.Subscribe("s1")
	defer cancel()

	b.Publish("s1", "a")
	b.Publish("s1", "b")
	b.Publish("s1", "c")

	for _, want := range []string{"a", "b", "c"} {
		if got := <-ch; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}

func TestPublishScopedToSession(t *testing.T) {
	b := New()
	ch1, cancel1 := b.Subscribe("s1")
	ch2, cancel2 := b.Subscribe("s2")
	defer cancel1()
	defer cancel2()

	b.Publish("s1", "only-s1")

	if got := <-ch1; got != "only-s1" {
		t.Errorf("s1 subscriber got %q", got)
	}
	select {
	case got := <-ch2:
		t.Errorf("s2 subscriber unexpectedly got %q", got)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestCancelRemovesSubscriber(t *testing.T) {
	b := New()
	_, cancel := b.Subscribe("s1")
	if n := b.Subscribers("s1"); n != 1 {
		t.Fatalf("Subscribers = %d, want 1", n)
	}
	cancel()
	cancel() // second call is a no-op
	if n := b.Subscribers("s1"); n != 0 {
		t.Errorf("Subscribers after cancel = %d, want 0", n)
	}

	// Publishing to a session with no subscribers must not panic or block.
	b.Publish("s1", "dropped")
}

func TestSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	b := New()
	_, cancel := b.Subscribe("s1")
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < subscriberBuffer*2; i++ {
			b.Publish("s1", "burst")
		}
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
}
