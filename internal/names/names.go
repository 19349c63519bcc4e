// Package names maps positional fields of well-known tuple types to
// readable labels, so a Vec3 shows x, y, z instead of .0, .1, .2.
package names

import (
	"sync"

	"github.com/agentic-research/spyglass/internal/shape"
	"github.com/agentic-research/spyglass/internal/vmath"
)

var (
	xy   = []string{"x", "y"}
	xyz  = []string{"x", "y", "z"}
	xyzw = []string{"x", "y", "z", "w"}
)

// Registry holds label lists keyed by type. The zero value is empty and
// ready to use.
type Registry struct {
	mu     sync.RWMutex
	labels map[shape.TypeID][]string
}

// New returns a registry seeded with the vmath vector and rotation types.
func New() *Registry {
	r := &Registry{}
	RegisterFor[vmath.Vec2](r, xy...)
	RegisterFor[vmath.Vec3](r, xyz...)
	RegisterFor[vmath.Vec4](r, xyzw...)
	RegisterFor[vmath.DVec2](r, xy...)
	RegisterFor[vmath.DVec3](r, xyz...)
	RegisterFor[vmath.DVec4](r, xyzw...)
	RegisterFor[vmath.IVec2](r, xy...)
	RegisterFor[vmath.IVec3](r, xyz...)
	RegisterFor[vmath.IVec4](r, xyzw...)
	RegisterFor[vmath.UVec2](r, xy...)
	RegisterFor[vmath.UVec3](r, xyz...)
	RegisterFor[vmath.UVec4](r, xyzw...)
	RegisterFor[vmath.Quat](r, xyzw...)
	return r
}

// Register replaces the labels for id.
func (r *Registry) Register(id shape.TypeID, labels ...string) {
	cp := append([]string(nil), labels...)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.labels == nil {
		r.labels = make(map[shape.TypeID][]string)
	}
	r.labels[id] = cp
}

// RegisterFor registers labels for the type parameter.
func RegisterFor[T any](r *Registry, labels ...string) {
	r.Register(shape.TypeIDFor[T](), labels...)
}

// Lookup returns the label for position i of id. A nil registry has no
// entries.
func (r *Registry) Lookup(id shape.TypeID, i int) (string, bool) {
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	labels, ok := r.labels[id]
	if !ok || i < 0 || i >= len(labels) {
		return "", false
	}
	return labels[i], true
}

// Len reports the number of registered types.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.labels)
}
