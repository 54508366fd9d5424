package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus()

	received := false
	var receivedEvent Event

	bus.SubscribeFunc(TypeGameStarted, func(e Event) {
		received = true
		receivedEvent = e
	})

	bus.Publish(NewGameStartedEvent("test-game", 0, 30, 20, 7))

	assert.True(t, received, "Event handler should have been called")
	require.NotNil(t, receivedEvent)
	assert.Equal(t, TypeGameStarted, receivedEvent.Type())
	assert.Equal(t, "test-game", receivedEvent.GameID())
	assert.False(t, receivedEvent.Timestamp().IsZero())
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	bus := NewEventBus()

	handler1Called := false
	handler2Called := false

	id1 := bus.SubscribeFunc(TypeEconomyTicked, func(e Event) { handler1Called = true })
	id2 := bus.SubscribeFunc(TypeEconomyTicked, func(e Event) { handler2Called = true })

	bus.Publish(NewEconomyTickedEvent("test-game", time.Second, nil, nil))

	assert.True(t, handler1Called)
	assert.True(t, handler2Called)
	assert.NotEqual(t, id1, id2)
	assert.Equal(t, "economy.ticked_func_2", id2)
	assert.Equal(t, 2, bus.GetFuncHandlerCount(TypeEconomyTicked))
}

// TestSubscriber is a test implementation of Subscriber
type TestSubscriber struct {
	id              string
	interestedTypes map[string]bool
	receivedEvents  []Event
	log             *[]string
}

func (ts *TestSubscriber) ID() string {
	return ts.id
}

func (ts *TestSubscriber) HandleEvent(e Event) {
	ts.receivedEvents = append(ts.receivedEvents, e)
	if ts.log != nil {
		*ts.log = append(*ts.log, ts.id)
	}
}

func (ts *TestSubscriber) InterestedIn(eventType string) bool {
	if ts.interestedTypes == nil {
		return true
	}
	return ts.interestedTypes[eventType]
}

func TestEventBusSubscriber(t *testing.T) {
	bus := NewEventBus()

	subscriber := &TestSubscriber{
		id: "test-subscriber",
		interestedTypes: map[string]bool{
			TypeGameStarted: true,
			TypeGameEnded:   true,
		},
	}

	bus.Subscribe(subscriber)
	assert.Equal(t, 1, bus.GetSubscriberCount())

	bus.Publish(NewGameStartedEvent("test-game", 0, 30, 20, 7))
	bus.Publish(NewBulletFiredEvent("test-game", time.Second, core.Handle{Gen: 1}, core.Handle{Gen: 1}, core.Handle{Index: 1, Gen: 1}, core.Player))
	bus.Publish(NewGameEndedEvent("test-game", time.Minute, core.Player))

	require.Len(t, subscriber.receivedEvents, 2)
	assert.Equal(t, TypeGameStarted, subscriber.receivedEvents[0].Type())
	assert.Equal(t, TypeGameEnded, subscriber.receivedEvents[1].Type())
	assert.Equal(t, time.Minute, subscriber.receivedEvents[1].SimTime())

	bus.Unsubscribe(subscriber.ID())
	bus.Publish(NewGameStartedEvent("test-game", 0, 30, 20, 7))

	assert.Len(t, subscriber.receivedEvents, 2)
	assert.Equal(t, 0, bus.GetSubscriberCount())
}

type panickingSubscriber struct{}

func (panickingSubscriber) ID() string { return "a-panics" }
func (panickingSubscriber) HandleEvent(Event) { panic("boom") }
func (panickingSubscriber) InterestedIn(string) bool { return true }

func TestEventBusPanicIsolation(t *testing.T) {
	bus := NewEventBus()
	good := &TestSubscriber{id: "b-good"}

	bus.Subscribe(panickingSubscriber{})
	bus.Subscribe(good)
	bus.SubscribeFunc(TypeUnitKilled, func(Event) { panic("handler boom") })

	assert.NotPanics(t, func() {
		bus.Publish(NewUnitKilledEvent("g", 0, core.Handle{Gen: 1}, core.Computer, core.Coordinate{}, core.NilHandle, core.Neutral))
	})
	assert.Len(t, good.receivedEvents, 1)
}

func TestEventBusDeliversInIDOrder(t *testing.T) {
	bus := NewEventBus()
	var order []string
	for _, id := range []string{"metrics", "logger", "recorder"} {
		bus.Subscribe(&TestSubscriber{id: id, log: &order})
	}

	bus.Publish(NewGameStartedEvent("g", 0, 1, 1, 0))
	assert.Equal(t, []string{"logger", "metrics", "recorder"}, order)

	// Re-subscribing the same id replaces without duplicating.
	bus.Subscribe(&TestSubscriber{id: "logger", log: &order})
	assert.Equal(t, 3, bus.GetSubscriberCount())
}

func TestEventConstructors(t *testing.T) {
	cell := core.Coordinate{X: 3, Y: 4}
	unit := core.Handle{Index: 2, Gen: 1}

	spawned := NewUnitSpawnedEvent("g", time.Second, unit, core.Player, "tank", cell, 100)
	assert.Equal(t, TypeUnitSpawned, spawned.Type())
	assert.Equal(t, cell, spawned.Cell)
	assert.Equal(t, 100, spawned.Cost)

	captured := NewBaseCapturedEvent("g", 2*time.Second, core.Handle{Gen: 1}, cell, core.Neutral, core.Player, unit)
	assert.Equal(t, TypeBaseCaptured, captured.Type())
	assert.Equal(t, core.Neutral, captured.From)
	assert.Equal(t, unit, captured.By)

	aborted := NewMoveAbortedEvent("g", 0, unit, core.Player, cell, cell.Add(core.Coordinate{X: 1}))
	assert.Equal(t, core.Coordinate{X: 4, Y: 4}, aborted.Blocked)
	assert.Equal(t, time.Duration(0), aborted.SimTime())

	tr := NewStateTransitionEvent("g", 0, "running", "ended", "all bases held")
	assert.Equal(t, TypeStateTransition, tr.Type())
}
