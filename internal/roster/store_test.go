package roster_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/mauv0809/squad-scheduler/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// setupStore creates a roster backed by an in-memory persister holding
// the given opponents. A nil slice leaves the persister empty.
func setupStore(t *testing.T, opponents []roster.Opponent) (roster.Store, *roster.MockPersister) {
	t.Helper()

	p := roster.NewMockPersister()
	if opponents != nil {
		data, err := json.Marshal(opponents)
		require.NoError(t, err)
		p.Seed(roster.StorageKey, data)
	}
	store, err := roster.New(p)
	require.NoError(t, err)
	return store, p
}

func TestNew(t *testing.T) {
	t.Run("falls back to seed when nothing stored", func(t *testing.T) {
		store, p := setupStore(t, nil)
		assert.Equal(t, roster.Seed, store.List())
		assert.Zero(t, p.PutCalls, "loading must not write")
	})

	t.Run("loads stored roster", func(t *testing.T) {
		store, _ := setupStore(t, []roster.Opponent{{ID: 9, Name: "Ana", Phone: "1"}})
		o, ok := store.Lookup(9)
		require.True(t, ok)
		assert.Equal(t, "Ana", o.Name)
	})

	t.Run("stored empty list is not replaced by seed", func(t *testing.T) {
		store, _ := setupStore(t, []roster.Opponent{})
		assert.Empty(t, store.List())
	})

	t.Run("corrupt payload is an error", func(t *testing.T) {
		p := roster.NewMockPersister()
		p.Seed(roster.StorageKey, []byte("{not json"))
		_, err := roster.New(p)
		assert.Error(t, err)
	})

	t.Run("read failure is an error", func(t *testing.T) {
		p := roster.NewMockPersister()
		p.GetErr = errors.New("disk on fire")
		_, err := roster.New(p)
		assert.ErrorIs(t, err, p.GetErr)
	})
}

func TestAdd(t *testing.T) {
	t.Run("empty roster starts at 1", func(t *testing.T) {
		store, _ := setupStore(t, []roster.Opponent{})
		o, err := store.Add(roster.OpponentPatch{Name: strPtr("Ana"), Phone: strPtr("85 9999")})
		require.NoError(t, err)
		assert.Equal(t, 1, o.ID)
	})

	t.Run("next id follows the max", func(t *testing.T) {
		store, p := setupStore(t, nil)
		o, err := store.Add(roster.OpponentPatch{Name: strPtr("Bia"), Phone: strPtr("123"), Club: strPtr("Porto")})
		require.NoError(t, err)
		assert.Equal(t, 5, o.ID)
		assert.Equal(t, "Porto", o.Club)
		assert.Equal(t, 1, p.PutCalls)

		var persisted []roster.Opponent
		require.NoError(t, json.Unmarshal(p.Raw(roster.StorageKey), &persisted))
		assert.Len(t, persisted, 5, "full roster is rewritten")
	})

	t.Run("deleted ids are reused only when they were the max", func(t *testing.T) {
		store, _ := setupStore(t, nil)

		require.NoError(t, store.Remove(2))
		o, err := store.Add(roster.OpponentPatch{Name: strPtr("C"), Phone: strPtr("1")})
		require.NoError(t, err)
		assert.Equal(t, 5, o.ID)

		require.NoError(t, store.Remove(5))
		o, err = store.Add(roster.OpponentPatch{Name: strPtr("D"), Phone: strPtr("1")})
		require.NoError(t, err)
		assert.Equal(t, 5, o.ID)
	})

	t.Run("missing name or phone is refused", func(t *testing.T) {
		store, p := setupStore(t, nil)

		_, err := store.Add(roster.OpponentPatch{Name: strPtr("Ana")})
		assert.ErrorIs(t, err, roster.ErrMissingRequired)
		_, err = store.Add(roster.OpponentPatch{Phone: strPtr("1"), Name: strPtr("")})
		assert.ErrorIs(t, err, roster.ErrMissingRequired)

		assert.Zero(t, p.PutCalls)
		assert.Len(t, store.List(), 4)
	})

	t.Run("persist failure leaves roster unchanged", func(t *testing.T) {
		store, p := setupStore(t, nil)
		p.PutErr = errors.New("read only")

		_, err := store.Add(roster.OpponentPatch{Name: strPtr("Ana"), Phone: strPtr("1")})
		assert.ErrorIs(t, err, p.PutErr)
		assert.Len(t, store.List(), 4)
	})
}

func TestUpdate(t *testing.T) {
	store, _ := setupStore(t, nil)

	o, err := store.Update(3, roster.OpponentPatch{Club: strPtr("Göztepe"), Observation: strPtr("só à noite")})
	require.NoError(t, err)
	assert.Equal(t, roster.Opponent{ID: 3, Name: "Cláudio Santos", Phone: "85992221100", Club: "Göztepe", Observation: "só à noite"}, o)

	got, ok := store.Lookup(3)
	require.True(t, ok)
	assert.Equal(t, o, got)

	_, err = store.Update(3, roster.OpponentPatch{Phone: strPtr("")})
	assert.ErrorIs(t, err, roster.ErrMissingRequired)

	_, err = store.Update(42, roster.OpponentPatch{Name: strPtr("x")})
	assert.ErrorIs(t, err, roster.ErrNotFound)
}

func TestRemove(t *testing.T) {
	store, p := setupStore(t, nil)

	require.NoError(t, store.Remove(1))
	_, ok := store.Lookup(1)
	assert.False(t, ok)
	assert.Equal(t, 1, p.PutCalls)

	require.NoError(t, store.Remove(1), "removing an absent id is a no-op")
	assert.Equal(t, 1, p.PutCalls)
}

func TestMerge(t *testing.T) {
	base := roster.Opponent{ID: 7, Name: "A", Phone: "1", Club: "X", Observation: "obs"}

	assert.Equal(t, base, roster.Merge(base, roster.OpponentPatch{}))
	assert.Equal(t,
		roster.Opponent{ID: 7, Name: "B", Phone: "1", Club: "X", Observation: ""},
		roster.Merge(base, roster.OpponentPatch{Name: strPtr("B"), Observation: strPtr("")}),
	)
}

func TestChangeHook(t *testing.T) {
	var ops []string
	store, err := roster.New(roster.NewMockPersister(), roster.WithChangeHook(func(op string) { ops = append(ops, op) }))
	require.NoError(t, err)

	_, err = store.Add(roster.OpponentPatch{Name: strPtr("A"), Phone: strPtr("1")})
	require.NoError(t, err)
	_, err = store.Update(1, roster.OpponentPatch{Club: strPtr("Y")})
	require.NoError(t, err)
	require.NoError(t, store.Remove(1))
	require.NoError(t, store.Remove(1))

	assert.Equal(t, []string{"add", "update", "remove"}, ops)
}
