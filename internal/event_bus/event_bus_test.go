package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_Publish(t *testing.T) {
	t.Run("should call handlers in subscription order", func(t *testing.T) {
		// given
		bus := NewEventBus()
		var calls []int
		for i := 1; i <= 5; i++ {
			bus.Subscribe(RecordsChangedEvent, func(Event) error {
				calls = append(calls, i)
				return nil
			})
		}

		// when
		err := bus.Publish(NewEvent(context.Background(), RecordsChangedEvent, RecordsChanged{Collection: "tag"}))

		// then
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, calls)
	})

	t.Run("should only reach handlers of the published topic", func(t *testing.T) {
		// given
		bus := NewEventBus()
		called := false
		bus.Subscribe(SettingsChangedEvent, func(Event) error {
			called = true
			return nil
		})

		// when
		err := bus.Publish(NewEvent(context.Background(), RecordsChangedEvent, nil))

		// then
		require.NoError(t, err)
		assert.False(t, called)
	})

	t.Run("should keep going after a failing or panicking handler", func(t *testing.T) {
		// given
		bus := NewEventBus()
		boom := errors.New("boom")
		reached := false
		bus.Subscribe(RecordsChangedEvent, func(Event) error { return boom })
		bus.Subscribe(RecordsChangedEvent, func(Event) error { panic("oops") })
		bus.Subscribe(RecordsChangedEvent, func(Event) error {
			reached = true
			return nil
		})

		// when
		err := bus.Publish(NewEvent(context.Background(), RecordsChangedEvent, nil))

		// then
		assert.True(t, reached)
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "2 handler(s) failed")
		assert.Contains(t, err.Error(), "panicked")
	})

	t.Run("should refuse to publish with a cancelled context", func(t *testing.T) {
		// given
		bus := NewEventBus()
		called := false
		bus.Subscribe(RecordsChangedEvent, func(Event) error {
			called = true
			return nil
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// when
		err := bus.Publish(NewEvent(ctx, RecordsChangedEvent, nil))

		// then
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})
}

func TestEventBus_Unsubscribe(t *testing.T) {
	// given
	bus := NewEventBus()
	var calls []string
	unsubFirst := bus.Subscribe(RecordsChangedEvent, func(Event) error {
		calls = append(calls, "first")
		return nil
	})
	bus.Subscribe(RecordsChangedEvent, func(Event) error {
		calls = append(calls, "second")
		return nil
	})

	// when
	unsubFirst()
	unsubFirst()
	err := bus.Publish(NewEvent(context.Background(), RecordsChangedEvent, nil))

	// then
	require.NoError(t, err)
	assert.Equal(t, []string{"second"}, calls)
}

func TestSubscribeTyped(t *testing.T) {
	// given
	bus := NewEventBus()
	var received []RecordsChanged
	SubscribeTyped(bus, RecordsChangedEvent, func(e EventT[RecordsChanged]) error {
		received = append(received, e.Data)
		return nil
	})

	// when
	require.NoError(t, bus.Publish(NewEvent(context.Background(), RecordsChangedEvent, "not a payload")))
	require.NoError(t, bus.Publish(NewEvent(context.Background(), RecordsChangedEvent, nil)))
	require.NoError(t, bus.Publish(NewEvent(context.Background(), RecordsChangedEvent,
		RecordsChanged{Collection: "expense", Op: OpAdd, Ids: []string{"exp1"}})))

	// then
	require.Len(t, received, 1)
	assert.Equal(t, "expense", received[0].Collection)
	assert.Equal(t, OpAdd, received[0].Op)
}
