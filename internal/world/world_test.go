package world

import (
	"testing"

	"github.com/agentic-research/spyglass/internal/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type health struct{ HP int32 }

type tag struct{ Label string }

func TestObjectIDRoundTrip(t *testing.T) {
	id := ObjectID{Index: 12, Generation: 3}
	assert.Equal(t, "12v3", id.String())

	back, err := ParseObjectID("12v3")
	require.NoError(t, err)
	assert.Equal(t, id, back)

	bare, err := ParseObjectID("7")
	require.NoError(t, err)
	assert.Equal(t, ObjectID{Index: 7}, bare)

	_, err = ParseObjectID("x1")
	assert.Error(t, err)
	_, err = ParseObjectID("1vq")
	assert.Error(t, err)
}

func TestSpawnAndRead(t *testing.T) {
	w := New()
	src := &health{HP: 10}
	id := w.Spawn(Name("hero"), src)
	src.HP = 99 // the world holds its own copy

	err := w.View(func(r *Reader) error {
		assert.True(t, r.Contains(id))
		name, ok := r.Name(id)
		assert.True(t, ok)
		assert.Equal(t, "hero", name)

		h, ok := Get[health](r, id)
		require.True(t, ok)
		assert.Equal(t, int32(10), h.HP)

		assert.Equal(t, []shape.TypeID{shape.TypeIDFor[Name](), shape.TypeIDFor[health]()}, r.Components(id))

		v, err := r.Component(id, shape.TypeIDFor[health]())
		require.NoError(t, err)
		assert.True(t, v.IsReadOnly())

		_, err = r.Component(id, shape.TypeIDFor[tag]())
		assert.ErrorIs(t, err, ErrComponentNotFound)
		_, err = r.Component(ObjectID{Index: 40}, shape.TypeIDFor[tag]())
		assert.ErrorIs(t, err, ErrObjectNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestComponentMutWritesThrough(t *testing.T) {
	w := New()
	id := w.Spawn(health{HP: 1})

	require.NoError(t, w.Update(func(m *Mutator) error {
		v, err := m.ComponentMut(id, shape.TypeIDFor[health]())
		require.NoError(t, err)
		hp, ok := v.FieldByName("HP")
		require.True(t, ok)
		return hp.SetInt(5)
	}))

	_ = w.View(func(r *Reader) error {
		h, _ := Get[health](r, id)
		assert.Equal(t, int32(5), h.HP)
		return nil
	})
}

func TestQueryUsesIndex(t *testing.T) {
	w := New()
	a := w.Spawn(health{}, tag{})
	b := w.Spawn(health{})
	c := w.Spawn(tag{})

	_ = w.View(func(r *Reader) error {
		assert.Equal(t, []ObjectID{a, b}, r.Query(shape.TypeIDFor[health]()))
		assert.Equal(t, []ObjectID{a}, r.Query(shape.TypeIDFor[health](), shape.TypeIDFor[tag]()))
		assert.Equal(t, []ObjectID{a, b, c}, r.Query())
		assert.Empty(t, r.Query(shape.TypeIDFor[Internal]()))
		return nil
	})

	require.NoError(t, w.Update(func(m *Mutator) error {
		return m.Remove(a, shape.TypeIDFor[tag]())
	}))
	_ = w.View(func(r *Reader) error {
		assert.Equal(t, []ObjectID{c}, r.Query(shape.TypeIDFor[tag]()))
		return nil
	})
}

func TestHierarchyAndDespawn(t *testing.T) {
	w := New()
	parent := w.Spawn(Name("parent"))
	kid := w.Spawn(Name("kid"))
	grandkid := w.Spawn(Name("grandkid"))

	require.NoError(t, w.Update(func(m *Mutator) error {
		require.NoError(t, m.SetParent(kid, parent))
		require.NoError(t, m.SetParent(grandkid, kid))
		assert.ErrorIs(t, m.SetParent(parent, grandkid), ErrCycle)
		assert.ErrorIs(t, m.SetParent(parent, parent), ErrCycle)
		return nil
	}))

	_ = w.View(func(r *Reader) error {
		p, ok := r.Parent(kid)
		assert.True(t, ok)
		assert.Equal(t, parent, p)
		assert.Equal(t, []ObjectID{kid}, r.Children(parent))
		_, ok = r.Parent(parent)
		assert.False(t, ok)
		return nil
	})

	require.NoError(t, w.Update(func(m *Mutator) error { return m.Despawn(kid) }))

	_ = w.View(func(r *Reader) error {
		assert.False(t, r.Contains(kid))
		assert.False(t, r.Contains(grandkid))
		assert.Empty(t, r.Children(parent))
		assert.Equal(t, []ObjectID{parent}, r.Objects())
		return nil
	})

	reused := w.Spawn(Name("new"))
	assert.Equal(t, uint32(1), reused.Generation)
	_ = w.View(func(r *Reader) error {
		assert.False(t, r.Contains(kid), "stale generation must not resolve")
		assert.True(t, r.Contains(reused))
		return nil
	})
}

func TestMetadataRefreshIsIncremental(t *testing.T) {
	w := New()
	md := NewMetadata()
	w.Spawn(health{})

	_ = w.View(func(r *Reader) error {
		assert.Equal(t, 1, md.Refresh(r))
		assert.Equal(t, 0, md.Refresh(r))
		return nil
	})

	w.Spawn(health{}, tag{})
	_ = w.View(func(r *Reader) error {
		assert.Equal(t, 1, md.Refresh(r))
		return nil
	})

	info, ok := md.Lookup(shape.TypeIDFor[health]())
	require.True(t, ok)
	assert.Equal(t, "health", info.Short)
	assert.Equal(t, uintptr(4), info.Size)
	assert.Equal(t, uint64(4), md.Size([]shape.TypeID{info.ID, "missing"}))
	assert.Equal(t, 2, md.Len())
	assert.Len(t, md.Types(), 2)

	found, ok := md.Find("tag")
	require.True(t, ok)
	assert.Equal(t, shape.TypeIDFor[tag](), found.ID)
	found, ok = md.Find(string(info.ID))
	require.True(t, ok)
	assert.Equal(t, info.ID, found.ID)
	_, ok = md.Find("missing")
	assert.False(t, ok)
}

func TestClearParent(t *testing.T) {
	w := New()
	parent := w.Spawn(Name("parent"))
	kid := w.Spawn(Name("kid"))

	require.NoError(t, w.Update(func(m *Mutator) error {
		require.NoError(t, m.SetParent(kid, parent))
		require.NoError(t, m.ClearParent(kid))
		require.NoError(t, m.ClearParent(kid), "clearing a root is a no-op")
		assert.ErrorIs(t, m.ClearParent(ObjectID{Index: 9}), ErrObjectNotFound)
		return nil
	}))

	_ = w.View(func(r *Reader) error {
		_, ok := r.Parent(kid)
		assert.False(t, ok)
		assert.Empty(t, r.Children(parent))
		return nil
	})

	require.NoError(t, w.Update(func(m *Mutator) error { return m.Despawn(parent) }))
	_ = w.View(func(r *Reader) error {
		assert.True(t, r.Contains(kid), "detached children survive their old parent")
		return nil
	})
}

func TestGetMut(t *testing.T) {
	w := New()
	id := w.Spawn(health{HP: 10})

	require.NoError(t, w.Update(func(m *Mutator) error {
		h, ok := GetMut[health](m, id)
		require.True(t, ok)
		h.HP = 25
		_, ok = GetMut[tag](m, id)
		assert.False(t, ok)
		return nil
	}))

	_ = w.View(func(r *Reader) error {
		h, ok := Get[health](r, id)
		require.True(t, ok)
		assert.Equal(t, int32(25), h.HP)
		return nil
	})
}
