package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"horse_portal_backend/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingEvent struct{ BaseEvent }

func (pingEvent) EventName() string { return "test.ping" }

func TestInMemoryBusPublishReachesSubscribers(t *testing.T) {
	bus := NewInMemoryBus(logger.Nop())
	var calls atomic.Int32
	bus.Subscribe("test.ping", HandlerFunc(func(context.Context, Event) error {
		calls.Add(1)
		return nil
	}))
	bus.Subscribe("test.ping", HandlerFunc(func(context.Context, Event) error {
		calls.Add(1)
		return errors.New("logged, not returned")
	}))

	ctx, cancel := context.WithCancel(context.Background())
	bus.Publish(ctx, pingEvent{BaseEvent: NewBaseEvent()})
	cancel()
	bus.Wait()

	assert.Equal(t, int32(2), calls.Load())
}

func TestInMemoryBusPublishSyncJoinsErrors(t *testing.T) {
	bus := NewInMemoryBus(logger.Nop())
	bus.Subscribe("test.ping", HandlerFunc(func(context.Context, Event) error { return errors.New("boom") }))

	err := bus.PublishSync(context.Background(), pingEvent{BaseEvent: BaseEvent{Timestamp: time.Now()}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestInMemoryBusPublishSyncKeepsSubscriptionOrder(t *testing.T) {
	bus := NewInMemoryBus(logger.Nop())
	var order []string
	for _, name := range []string{"notify", "cleanup", "audit"} {
		bus.Subscribe("test.ping", HandlerFunc(func(context.Context, Event) error {
			order = append(order, name)
			return nil
		}))
	}
	bus.Subscribe("test.other", HandlerFunc(func(context.Context, Event) error {
		order = append(order, "other")
		return nil
	}))

	ev := pingEvent{BaseEvent: NewBaseEvent()}
	require.NoError(t, bus.PublishSync(context.Background(), ev))
	assert.Equal(t, []string{"notify", "cleanup", "audit"}, order)
	assert.Equal(t, time.UTC, ev.OccurredAt().Location())
}

func TestInMemoryBusPublishOutlivesCanceledContext(t *testing.T) {
	bus := NewInMemoryBus(logger.Nop())
	got := make(chan error, 1)
	bus.Subscribe("test.ping", HandlerFunc(func(ctx context.Context, _ Event) error {
		got <- ctx.Err()
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, pingEvent{BaseEvent: NewBaseEvent()})
	bus.Wait()

	assert.NoError(t, <-got)
}
