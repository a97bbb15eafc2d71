// Package feed turns record change events into a stream of collection snapshots.
package feed

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/yuuzu/spenderman/internal/event_bus"
)

// Watch sends the current snapshot of collection right away and a fresh one after
// every change published for it. A slow reader only ever sees the latest snapshot;
// intermediate ones are dropped. The channel is closed when ctx is done.
func Watch[T any](ctx context.Context, bus *event_bus.EventBus, collection string, load func(context.Context) ([]T, error)) (<-chan []T, error) {
	initial, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial %s snapshot: %w", collection, err)
	}

	changed := make(chan struct{}, 1)
	unsubscribe := event_bus.SubscribeTyped(bus, event_bus.RecordsChangedEvent, func(e event_bus.EventT[event_bus.RecordsChanged]) error {
		if e.Data.Collection != collection {
			return nil
		}
		select {
		case changed <- struct{}{}:
		default:
		}
		return nil
	})

	out := make(chan []T, 1)
	out <- initial

	go func() {
		defer close(out)
		defer unsubscribe()
		for {
			select {
			case <-ctx.Done():
				return
			case <-changed:
			}
			snapshot, err := load(ctx)
			if err != nil {
				log.Warnf("failed to reload %s snapshot: %v", collection, err)
				continue
			}
			offer(out, snapshot)
		}
	}()
	return out, nil
}

// offer replaces an unread snapshot in out with the newer one.
func offer[T any](out chan []T, snapshot []T) {
	for {
		select {
		case out <- snapshot:
			return
		default:
		}
		select {
		case <-out:
		default:
		}
	}
}
