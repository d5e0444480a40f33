package notify

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDeliversPerEquipment(t *testing.T) {
	hub := NewHub()
	eqA := uuid.New()
	eqB := uuid.New()

	chA, cancelA := hub.Subscribe(eqA)
	defer cancelA()
	chB, cancelB := hub.Subscribe(eqB)
	defer cancelB()

	hub.Publish(Event{Table: "charging_sessions", Action: ActionSessionStarted, EquipmentID: eqA})

	select {
	case event := <-chA:
		assert.Equal(t, ActionSessionStarted, event.Action)
	case <-time.After(time.Second):
		t.Fatal("subscriber for eqA received nothing")
	}

	select {
	case <-chB:
		t.Fatal("subscriber for eqB received an event for eqA")
	default:
	}
}

func TestHubDropsWhenSubscriberFull(t *testing.T) {
	hub := NewHub()
	eq := uuid.New()

	ch, cancel := hub.Subscribe(eq)
	defer cancel()

	// Overfill the buffer; Publish must never block.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			hub.Publish(Event{Action: ActionSwapRecorded, EquipmentID: eq})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}

	// The buffer holds what fit; the rest were dropped.
	received := 0
	for {
		select {
		case <-ch:
			received++
			continue
		default:
		}
		break
	}
	require.Greater(t, received, 0)
	assert.LessOrEqual(t, received, 16)
}

func TestCancelRemovesSubscriber(t *testing.T) {
	hub := NewHub()
	eq := uuid.New()

	ch, cancel := hub.Subscribe(eq)
	cancel()

	hub.Publish(Event{Action: ActionSessionStopped, EquipmentID: eq})

	select {
	case <-ch:
		t.Fatal("cancelled subscriber still received an event")
	default:
	}
}
