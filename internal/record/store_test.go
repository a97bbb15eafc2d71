package record

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuuzu/spenderman/internal/event_bus"
	"github.com/yuuzu/spenderman/internal/kv"
)

type note struct {
	Id     string   `json:"id"`
	Text   string   `json:"text"`
	Amount float64  `json:"amount"`
	Labels []string `json:"labels"`
}

func noteId(n note) string {
	return n.Id
}

func setup(t *testing.T) (context.Context, *Store[note], *kv.FailingStore) {
	t.Helper()
	backend := kv.NewFailingStore()
	return context.Background(), NewStore(backend, "note", noteId), backend
}

func TestStore_RoundTrip(t *testing.T) {
	// given
	ctx, store, _ := setup(t)
	original := note{Id: "n1", Text: "coffee", Amount: 0.1 + 0.2, Labels: []string{"b", "a"}}

	// when
	ok, err := store.Add(ctx, original)
	require.NoError(t, err)
	require.True(t, ok)
	got, found, err := store.GetById(ctx, "n1")

	// then
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, original, got)
}

func TestStore_GetById_Absent(t *testing.T) {
	ctx, store, _ := setup(t)

	got, found, err := store.GetById(ctx, "missing")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, note{}, got)
}

func TestStore_GetAll(t *testing.T) {
	t.Run("should return an empty slice for an empty collection", func(t *testing.T) {
		ctx, store, _ := setup(t)

		items, err := store.GetAll(ctx)

		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("should return records in id order", func(t *testing.T) {
		// given
		ctx, store, _ := setup(t)
		for _, id := range []string{"c", "a", "b"} {
			_, err := store.Add(ctx, note{Id: id})
			require.NoError(t, err)
		}

		// when
		items, err := store.GetAll(ctx)

		// then
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "a", items[0].Id)
		assert.Equal(t, "b", items[1].Id)
		assert.Equal(t, "c", items[2].Id)
	})

	t.Run("should skip listed ids without a value", func(t *testing.T) {
		// given
		ctx, store, backend := setup(t)
		_, _ = store.Add(ctx, note{Id: "a"})
		_, _ = store.Add(ctx, note{Id: "b"})
		require.NoError(t, backend.RemoveKey(ctx, "note_a"))

		// when
		items, err := store.GetAll(ctx)

		// then
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "b", items[0].Id)
	})

	t.Run("should read an unsorted id set with duplicates", func(t *testing.T) {
		// given
		ctx, store, backend := setup(t)
		require.NoError(t, backend.SetString(ctx, "note_all_ids", `["z","a","z"]`))
		require.NoError(t, backend.SetString(ctx, "note_a", `{"id":"a"}`))
		require.NoError(t, backend.SetString(ctx, "note_z", `{"id":"z"}`))

		// when
		items, err := store.GetAll(ctx)

		// then
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "a", items[0].Id)
		assert.Equal(t, "z", items[1].Id)
	})

	t.Run("should report a corrupt record as a codec failure", func(t *testing.T) {
		// given
		ctx, store, backend := setup(t)
		_, _ = store.Add(ctx, note{Id: "a"})
		require.NoError(t, backend.SetString(ctx, "note_a", "{not json"))

		// when
		_, err := store.GetAll(ctx)

		// then
		assert.ErrorIs(t, err, ErrCodec)
	})

	t.Run("should report a failing backend as a storage failure", func(t *testing.T) {
		// given
		ctx, store, backend := setup(t)
		backend.FailOn = kv.FailAlways(kv.OpGet)

		// when
		_, err := store.GetAll(ctx)

		// then
		assert.ErrorIs(t, err, ErrStorage)
		assert.ErrorIs(t, err, kv.ErrInjected)
	})
}

func TestStore_KeyLayout(t *testing.T) {
	// given
	ctx, store, backend := setup(t)

	// when
	_, _ = store.Add(ctx, note{Id: "b", Text: "second"})
	_, _ = store.Add(ctx, note{Id: "a", Text: "first"})

	// then
	ids, ok, _ := backend.GetString(ctx, "note_all_ids")
	assert.True(t, ok)
	assert.JSONEq(t, `["a","b"]`, ids)
	raw, ok, _ := backend.GetString(ctx, "note_a")
	assert.True(t, ok)
	assert.JSONEq(t, `{"id":"a","text":"first","amount":0,"labels":null}`, raw)
}

func TestStore_Add(t *testing.T) {
	t.Run("should overwrite when the id is added again", func(t *testing.T) {
		// given
		ctx, store, _ := setup(t)
		_, _ = store.Add(ctx, note{Id: "a", Text: "old"})

		// when
		ok, err := store.Add(ctx, note{Id: "a", Text: "new"})

		// then
		require.NoError(t, err)
		assert.True(t, ok)
		items, _ := store.GetAll(ctx)
		require.Len(t, items, 1)
		assert.Equal(t, "new", items[0].Text)
	})

	t.Run("should fail with a storage error when the write fails", func(t *testing.T) {
		// given
		ctx, store, backend := setup(t)
		backend.FailOn = kv.FailKey(kv.OpSet, "note_a")

		// when
		ok, err := store.Add(ctx, note{Id: "a"})

		// then
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrStorage)
		assert.False(t, Succeeded(ok, err))
		assert.Equal(t, OutcomeStorageFailure, Classify(ok, err))
		_, found, _ := store.GetById(ctx, "a")
		assert.False(t, found)
	})

	t.Run("should fail with a codec error for an unencodable record", func(t *testing.T) {
		// given
		ctx, store, backend := setup(t)

		// when
		ok, err := store.Add(ctx, note{Id: "nan", Amount: math.NaN()})

		// then
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrCodec)
		assert.Equal(t, OutcomeCodecFailure, Classify(ok, err))
		assert.Empty(t, backend.Keys())
	})
}

type entry struct {
	Id   string         `json:"id"`
	Date civil.DateTime `json:"date"`
}

func TestStore_RejectsValuesThatCannotBeReadBack(t *testing.T) {
	// given
	ctx := context.Background()
	store := NewStore(kv.NewMemoryStore(), "entry", func(e entry) string { return e.Id })
	valid := entry{Id: "e1", Date: civil.DateTime{Date: civil.Date{Year: 2024, Month: time.May, Day: 2}}}
	_, err := store.Add(ctx, valid)
	require.NoError(t, err)

	// when
	addOk, addErr := store.Add(ctx, entry{Id: "undated"})
	updateOk, updateErr := store.Update(ctx, entry{Id: "e1"})

	// then
	assert.False(t, addOk)
	assert.ErrorIs(t, addErr, ErrCodec)
	assert.False(t, updateOk)
	assert.ErrorIs(t, updateErr, ErrCodec)
	items, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entry{valid}, items)
}

func TestStore_Update(t *testing.T) {
	t.Run("should replace an existing record", func(t *testing.T) {
		// given
		ctx, store, _ := setup(t)
		_, _ = store.Add(ctx, note{Id: "a", Text: "old"})

		// when
		ok, err := store.Update(ctx, note{Id: "a", Text: "new"})

		// then
		require.NoError(t, err)
		assert.True(t, ok)
		got, _, _ := store.GetById(ctx, "a")
		assert.Equal(t, "new", got.Text)
	})

	t.Run("should not create a record that was never added", func(t *testing.T) {
		// given
		ctx, store, backend := setup(t)

		// when
		ok, err := store.Update(ctx, note{Id: "ghost"})

		// then
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, OutcomeNotFound, Classify(ok, err))
		_, found, _ := store.GetById(ctx, "ghost")
		assert.False(t, found)
		assert.Empty(t, backend.Keys())
	})

	t.Run("should not resurrect a deleted record", func(t *testing.T) {
		// given
		ctx, store, _ := setup(t)
		_, _ = store.Add(ctx, note{Id: "a"})
		_, _ = store.Delete(ctx, "a")

		// when
		ok, err := store.Update(ctx, note{Id: "a", Text: "again"})

		// then
		require.NoError(t, err)
		assert.False(t, ok)
		items, _ := store.GetAll(ctx)
		assert.Empty(t, items)
	})
}

func TestStore_Delete(t *testing.T) {
	t.Run("should remove the record and its id", func(t *testing.T) {
		// given
		ctx, store, backend := setup(t)
		_, _ = store.Add(ctx, note{Id: "a"})
		_, _ = store.Add(ctx, note{Id: "b"})

		// when
		ok, err := store.Delete(ctx, "a")

		// then
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []string{"note_all_ids", "note_b"}, backend.Keys())
	})

	t.Run("should report an unknown id and leave the collection unchanged", func(t *testing.T) {
		// given
		ctx, store, _ := setup(t)
		_, _ = store.Add(ctx, note{Id: "a"})
		before, _ := store.GetAll(ctx)

		// when
		ok, err := store.Delete(ctx, "unknown")

		// then
		require.NoError(t, err)
		assert.False(t, ok)
		after, _ := store.GetAll(ctx)
		assert.Equal(t, before, after)
	})

	t.Run("should keep the id listed when removing the value fails", func(t *testing.T) {
		// given
		ctx, store, backend := setup(t)
		_, _ = store.Add(ctx, note{Id: "a"})
		backend.FailOn = kv.FailAlways(kv.OpRemove)

		// when
		ok, err := store.Delete(ctx, "a")

		// then
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrStorage)
		backend.FailOn = nil
		_, found, _ := store.GetById(ctx, "a")
		assert.True(t, found)
	})
}

func TestStore_DeleteAll(t *testing.T) {
	// given
	ctx, store, backend := setup(t)
	for _, id := range []string{"a", "b", "c"} {
		_, _ = store.Add(ctx, note{Id: id})
	}

	// when
	ok, err := store.DeleteAll(ctx)

	// then
	require.NoError(t, err)
	assert.True(t, ok)
	items, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
	for _, id := range []string{"a", "b", "c"} {
		_, found, _ := backend.GetString(ctx, "note_"+id)
		assert.False(t, found)
	}
	ids, _, _ := backend.GetString(ctx, "note_all_ids")
	assert.Equal(t, "[]", ids)
}

func TestStore_UpdateEach(t *testing.T) {
	t.Run("should write only the records fn changed", func(t *testing.T) {
		// given
		ctx, _, backend := setup(t)
		bus := event_bus.NewEventBus()
		store := NewStore(backend, "note", noteId, WithEventBus[note](bus))
		for _, id := range []string{"a", "b", "c"} {
			_, _ = store.Add(ctx, note{Id: id, Text: "x"})
		}
		var events []event_bus.RecordsChanged
		event_bus.SubscribeTyped(bus, event_bus.RecordsChangedEvent, func(e event_bus.EventT[event_bus.RecordsChanged]) error {
			events = append(events, e.Data)
			return nil
		})

		// when
		ok, err := store.UpdateEach(ctx, func(n note) note {
			if n.Id != "b" {
				n.Text = "y"
			}
			return n
		})

		// then
		require.NoError(t, err)
		assert.True(t, ok)
		items, _ := store.GetAll(ctx)
		assert.Equal(t, []string{"y", "x", "y"}, []string{items[0].Text, items[1].Text, items[2].Text})
		require.Len(t, events, 1)
		assert.Equal(t, []string{"a", "c"}, events[0].Ids)
	})

	t.Run("should restore written records when a later write fails", func(t *testing.T) {
		// given
		ctx, store, backend := setup(t)
		for _, id := range []string{"a", "b", "c"} {
			_, _ = store.Add(ctx, note{Id: id, Text: "x"})
		}
		backend.FailOn = kv.FailKey(kv.OpSet, "note_c")

		// when
		ok, err := store.UpdateEach(ctx, func(n note) note {
			n.Text = "y"
			return n
		})

		// then
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrStorage)
		backend.FailOn = nil
		items, _ := store.GetAll(ctx)
		for _, item := range items {
			assert.Equal(t, "x", item.Text, "record %s", item.Id)
		}
	})

	t.Run("should write nothing when an item cannot be encoded", func(t *testing.T) {
		// given
		ctx, store, _ := setup(t)
		_, _ = store.Add(ctx, note{Id: "a", Amount: 1})
		_, _ = store.Add(ctx, note{Id: "b", Amount: 2})

		// when
		ok, err := store.UpdateEach(ctx, func(n note) note {
			if n.Id == "b" {
				n.Amount = math.Inf(1)
			} else {
				n.Amount = 10
			}
			return n
		})

		// then
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrCodec)
		got, _, _ := store.GetById(ctx, "a")
		assert.Equal(t, 1.0, got.Amount)
	})
}

func TestStore_Events(t *testing.T) {
	// given
	ctx := context.Background()
	bus := event_bus.NewEventBus()
	store := NewStore(kv.NewMemoryStore(), "note", noteId, WithEventBus[note](bus))
	var events []event_bus.RecordsChanged
	event_bus.SubscribeTyped(bus, event_bus.RecordsChangedEvent, func(e event_bus.EventT[event_bus.RecordsChanged]) error {
		// Reading back from a handler must not deadlock.
		_, err := store.GetAll(e.Context())
		events = append(events, e.Data)
		return err
	})

	// when
	_, _ = store.Add(ctx, note{Id: "a"})
	_, _ = store.Update(ctx, note{Id: "a", Text: "t"})
	_, _ = store.Update(ctx, note{Id: "missing"})
	_, _ = store.Delete(ctx, "missing")
	_, _ = store.Delete(ctx, "a")
	_, _ = store.DeleteAll(ctx)

	// then
	require.Len(t, events, 4)
	assert.Equal(t, event_bus.RecordsChanged{Collection: "note", Op: event_bus.OpAdd, Ids: []string{"a"}}, events[0])
	assert.Equal(t, event_bus.OpUpdate, events[1].Op)
	assert.Equal(t, event_bus.OpDelete, events[2].Op)
	assert.Equal(t, event_bus.OpDeleteAll, events[3].Op)
	assert.Empty(t, events[3].Ids)
}

func TestStore_ConcurrentAdds(t *testing.T) {
	// given
	ctx, store, _ := setup(t)
	var wg sync.WaitGroup

	// when
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Add(ctx, note{Id: fmt.Sprintf("n%02d", i)})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// then
	items, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 50)
}
