// Package world is an in-memory object store: generation-tagged objects,
// each holding typed components and an optional parent. Reads and writes
// happen inside explicit phases so a write never overlaps a read.
package world

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/RoaringBitmap/roaring"
	"github.com/agentic-research/spyglass/internal/shape"
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrComponentNotFound = errors.New("component not found")
	ErrCycle             = errors.New("parent would create a cycle")
)

// Name is the display name component.
type Name string

// Internal marks objects that belong to the tooling and are hidden from
// object listings.
type Internal struct{}

type slot struct {
	gen      uint32
	alive    bool
	comps    map[shape.TypeID]reflect.Value // pointer to the component
	order    []shape.TypeID                 // insertion order
	parent   ObjectID
	hasPar   bool
	children []ObjectID
}

// World owns every object and component.
type World struct {
	mu    sync.RWMutex
	slots []slot
	free  []uint32

	// Roaring bitmap index: component type → set of live slot indices.
	index map[shape.TypeID]*roaring.Bitmap
	live  *roaring.Bitmap

	types    []reflect.Type // registration order, read by Metadata.Refresh
	typeSeen map[shape.TypeID]struct{}
}

func New() *World {
	return &World{
		index:    make(map[shape.TypeID]*roaring.Bitmap),
		live:     roaring.New(),
		typeSeen: make(map[shape.TypeID]struct{}),
	}
}

// View runs fn with read access. Any number of views may run together, but
// never alongside an Update. The Reader must not outlive fn.
func (w *World) View(fn func(r *Reader) error) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return fn(&Reader{w: w})
}

// Update runs fn with exclusive write access. The Mutator must not outlive fn.
func (w *World) Update(fn func(m *Mutator) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return fn(&Mutator{Reader{w: w}})
}

// Spawn creates an object holding comps.
func (w *World) Spawn(comps ...any) ObjectID {
	var id ObjectID
	_ = w.Update(func(m *Mutator) error {
		id = m.Spawn(comps...)
		return nil
	})
	return id
}

func (w *World) slot(id ObjectID) (*slot, bool) {
	if int(id.Index) >= len(w.slots) {
		return nil, false
	}
	s := &w.slots[id.Index]
	if !s.alive || s.gen != id.Generation {
		return nil, false
	}
	return s, true
}

func (w *World) mustSlot(id ObjectID) (*slot, error) {
	s, ok := w.slot(id)
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrObjectNotFound)
	}
	return s, nil
}

func (w *World) registerType(t reflect.Type) shape.TypeID {
	id := shape.TypeIDOf(t)
	if _, ok := w.typeSeen[id]; !ok {
		w.typeSeen[id] = struct{}{}
		w.types = append(w.types, t)
	}
	return id
}

// Reader is the read-phase token.
type Reader struct {
	w *World
}

// Contains reports whether id is a live object.
func (r *Reader) Contains(id ObjectID) bool {
	_, ok := r.w.slot(id)
	return ok
}

// Objects returns every live object ordered by index.
func (r *Reader) Objects() []ObjectID {
	out := make([]ObjectID, 0, r.w.live.GetCardinality())
	it := r.w.live.Iterator()
	for it.HasNext() {
		i := it.Next()
		out = append(out, ObjectID{Index: i, Generation: r.w.slots[i].gen})
	}
	return out
}

// Parent returns the parent of id, if any.
func (r *Reader) Parent(id ObjectID) (ObjectID, bool) {
	s, ok := r.w.slot(id)
	if !ok || !s.hasPar {
		return ObjectID{}, false
	}
	return s.parent, true
}

// Children returns the direct children of id in attach order.
func (r *Reader) Children(id ObjectID) []ObjectID {
	s, ok := r.w.slot(id)
	if !ok {
		return nil
	}
	return append([]ObjectID(nil), s.children...)
}

// Components lists the component types of id in insertion order.
func (r *Reader) Components(id ObjectID) []shape.TypeID {
	s, ok := r.w.slot(id)
	if !ok {
		return nil
	}
	return append([]shape.TypeID(nil), s.order...)
}

// Has reports whether id holds a component of type t.
func (r *Reader) Has(id ObjectID, t shape.TypeID) bool {
	s, ok := r.w.slot(id)
	if !ok {
		return false
	}
	_, ok = s.comps[t]
	return ok
}

// Component returns a read-only view of one component.
func (r *Reader) Component(id ObjectID, t shape.TypeID) (shape.Value, error) {
	p, err := r.component(id, t)
	if err != nil {
		return shape.Value{}, err
	}
	return shape.FromReflect(p).ReadOnly(), nil
}

func (r *Reader) component(id ObjectID, t shape.TypeID) (reflect.Value, error) {
	s, err := r.w.mustSlot(id)
	if err != nil {
		return reflect.Value{}, err
	}
	p, ok := s.comps[t]
	if !ok {
		return reflect.Value{}, fmt.Errorf("%s on %s: %w", t.Short(), id, ErrComponentNotFound)
	}
	return p, nil
}

// Name returns the Name component of id.
func (r *Reader) Name(id ObjectID) (string, bool) {
	n, ok := Get[Name](r, id)
	return string(n), ok
}

// Query returns live objects holding every listed type, ordered by index.
// With no types it returns every live object.
func (r *Reader) Query(types ...shape.TypeID) []ObjectID {
	if len(types) == 0 {
		return r.Objects()
	}
	bms := make([]*roaring.Bitmap, 0, len(types))
	for _, t := range types {
		bm, ok := r.w.index[t]
		if !ok {
			return nil
		}
		bms = append(bms, bm)
	}
	hits := roaring.FastAnd(bms...)
	out := make([]ObjectID, 0, hits.GetCardinality())
	it := hits.Iterator()
	for it.HasNext() {
		i := it.Next()
		out = append(out, ObjectID{Index: i, Generation: r.w.slots[i].gen})
	}
	return out
}

// Get returns a copy of the T component of id.
func Get[T any](r *Reader, id ObjectID) (T, bool) {
	var zero T
	p, err := r.component(id, shape.TypeIDFor[T]())
	if err != nil {
		return zero, false
	}
	return p.Elem().Interface().(T), true
}

// Mutator is the write-phase token.
type Mutator struct {
	Reader
}

// ComponentMut returns a settable view of one component.
func (m *Mutator) ComponentMut(id ObjectID, t shape.TypeID) (shape.Value, error) {
	p, err := m.component(id, t)
	if err != nil {
		return shape.Value{}, err
	}
	return shape.FromReflect(p), nil
}

// GetMut returns a pointer to the T component of id, valid until the
// phase ends.
func GetMut[T any](m *Mutator, id ObjectID) (*T, bool) {
	p, err := m.component(id, shape.TypeIDFor[T]())
	if err != nil {
		return nil, false
	}
	return p.Interface().(*T), true
}

// Spawn creates an object holding comps. Freed slots are reused with a
// bumped generation.
func (m *Mutator) Spawn(comps ...any) ObjectID {
	w := m.w
	var idx uint32
	if n := len(w.free); n > 0 {
		idx = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		idx = uint32(len(w.slots))
		w.slots = append(w.slots, slot{})
	}
	s := &w.slots[idx]
	s.alive = true
	s.comps = make(map[shape.TypeID]reflect.Value, len(comps))
	w.live.Add(idx)

	id := ObjectID{Index: idx, Generation: s.gen}
	for _, c := range comps {
		_ = m.Insert(id, c)
	}
	return id
}

// Insert adds or replaces a component. A pointer argument is copied, never
// retained.
func (m *Mutator) Insert(id ObjectID, comp any) error {
	s, err := m.w.mustSlot(id)
	if err != nil {
		return err
	}
	rv := reflect.ValueOf(comp)
	if !rv.IsValid() {
		return fmt.Errorf("insert into %s: nil component", id)
	}
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return fmt.Errorf("insert into %s: nil component", id)
		}
		rv = rv.Elem()
	}
	p := reflect.New(rv.Type())
	p.Elem().Set(rv)

	t := m.w.registerType(rv.Type())
	if _, exists := s.comps[t]; !exists {
		s.order = append(s.order, t)
	}
	s.comps[t] = p

	bm, ok := m.w.index[t]
	if !ok {
		bm = roaring.New()
		m.w.index[t] = bm
	}
	bm.Add(id.Index)
	return nil
}

// Remove drops the component of type t from id.
func (m *Mutator) Remove(id ObjectID, t shape.TypeID) error {
	s, err := m.w.mustSlot(id)
	if err != nil {
		return err
	}
	if _, ok := s.comps[t]; !ok {
		return fmt.Errorf("%s on %s: %w", t.Short(), id, ErrComponentNotFound)
	}
	delete(s.comps, t)
	for i, o := range s.order {
		if o == t {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if bm, ok := m.w.index[t]; ok {
		bm.Remove(id.Index)
	}
	return nil
}

// SetParent attaches child under parent, detaching it from any previous
// parent.
func (m *Mutator) SetParent(child, parent ObjectID) error {
	cs, err := m.w.mustSlot(child)
	if err != nil {
		return err
	}
	if _, err := m.w.mustSlot(parent); err != nil {
		return err
	}
	for p, ok := parent, true; ok; p, ok = m.Parent(p) {
		if p == child {
			return fmt.Errorf("%s under %s: %w", child, parent, ErrCycle)
		}
	}
	m.detach(child, cs)
	cs.parent, cs.hasPar = parent, true
	ps, _ := m.w.slot(parent)
	ps.children = append(ps.children, child)
	return nil
}

// ClearParent makes child a root object.
func (m *Mutator) ClearParent(child ObjectID) error {
	cs, err := m.w.mustSlot(child)
	if err != nil {
		return err
	}
	m.detach(child, cs)
	return nil
}

func (m *Mutator) detach(child ObjectID, cs *slot) {
	if !cs.hasPar {
		return
	}
	if ps, ok := m.w.slot(cs.parent); ok {
		for i, c := range ps.children {
			if c == child {
				ps.children = append(ps.children[:i], ps.children[i+1:]...)
				break
			}
		}
	}
	cs.hasPar = false
	cs.parent = ObjectID{}
}

// Despawn removes id and, recursively, its children.
func (m *Mutator) Despawn(id ObjectID) error {
	s, err := m.w.mustSlot(id)
	if err != nil {
		return err
	}
	for _, c := range append([]ObjectID(nil), s.children...) {
		_ = m.Despawn(c)
	}
	m.detach(id, s)
	for t := range s.comps {
		if bm, ok := m.w.index[t]; ok {
			bm.Remove(id.Index)
		}
	}
	m.w.live.Remove(id.Index)
	*s = slot{gen: s.gen + 1}
	m.w.free = append(m.w.free, id.Index)
	return nil
}
