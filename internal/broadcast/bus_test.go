package broadcast

import (
	"testing"
	"time"
)

func recv(t *testing.T, ch <-chan Message) Message {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return Message{}
	}
}

func TestBusDeliversToAllSubscribers(t *testing.T) {
	bus := NewBus(nil)

	first, cancelFirst := bus.Subscribe()
	defer cancelFirst()
	second, cancelSecond := bus.Subscribe()
	defer cancelSecond()

	bus.Publish(Message{Type: TypeStateChange})

	if msg := recv(t, first); msg.Type != TypeStateChange {
		t.Errorf("first subscriber got %v", msg.Type)
	}
	if msg := recv(t, second); msg.Type != TypeStateChange {
		t.Errorf("second subscriber got %v", msg.Type)
	}
}

func TestBusUnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus(nil)

	ch, cancel := bus.Subscribe()
	if bus.Subscribers() != 1 {
		t.Fatalf("subscribers = %d, want 1", bus.Subscribers())
	}

	cancel()
	if bus.Subscribers() != 0 {
		t.Errorf("subscribers = %d after cancel, want 0", bus.Subscribers())
	}

	if _, open := <-ch; open {
		t.Error("channel should be closed after cancel")
	}

	// Cancel twice is safe.
	cancel()
}

func TestBusPublishNeverBlocks(t *testing.T) {
	bus := NewBus(nil)

	_, cancel := bus.Subscribe()
	defer cancel()

	// Nobody drains the channel; overflow must be dropped, not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*3; i++ {
			bus.Publish(Message{Type: TypeTabChange})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a lagging subscriber")
	}
}

func TestBusPublishWithoutSubscribers(t *testing.T) {
	bus := NewBus(nil)
	bus.Publish(Message{Type: TypeAuthChange}) // must not panic
}
