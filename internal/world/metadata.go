package world

import (
	"reflect"
	"sort"
	"sync"

	"github.com/agentic-research/spyglass/internal/shape"
)

// TypeInfo describes one registered component type.
type TypeInfo struct {
	ID    shape.TypeID
	Name  string // full display name
	Short string
	Size  uintptr
	Type  reflect.Type
}

// Metadata caches TypeInfo for every component type the world has seen.
// Refresh only ingests types registered since the previous call.
type Metadata struct {
	mu    sync.RWMutex
	seen  int
	infos map[shape.TypeID]TypeInfo
}

func NewMetadata() *Metadata {
	return &Metadata{infos: make(map[shape.TypeID]TypeInfo)}
}

// Refresh pulls newly registered types from the world and returns how many
// were added.
func (md *Metadata) Refresh(r *Reader) int {
	md.mu.Lock()
	defer md.mu.Unlock()
	fresh := r.w.types[md.seen:]
	for _, t := range fresh {
		id := shape.TypeIDOf(t)
		md.infos[id] = TypeInfo{
			ID:    id,
			Name:  t.String(),
			Short: id.Short(),
			Size:  t.Size(),
			Type:  t,
		}
	}
	md.seen = len(r.w.types)
	return len(fresh)
}

// Lookup returns the info for id.
func (md *Metadata) Lookup(id shape.TypeID) (TypeInfo, bool) {
	md.mu.RLock()
	defer md.mu.RUnlock()
	info, ok := md.infos[id]
	return info, ok
}

// Len reports the number of known types.
func (md *Metadata) Len() int {
	md.mu.RLock()
	defer md.mu.RUnlock()
	return len(md.infos)
}

// Size sums the shallow byte size of the given component types. Unknown
// types count as zero.
func (md *Metadata) Size(types []shape.TypeID) uint64 {
	md.mu.RLock()
	defer md.mu.RUnlock()
	var total uint64
	for _, t := range types {
		total += uint64(md.infos[t].Size)
	}
	return total
}

// Find returns the type whose short name or full ID is name. Short names
// shared by several types resolve to the one with the smallest ID.
func (md *Metadata) Find(name string) (TypeInfo, bool) {
	var best TypeInfo
	found := false
	for _, info := range md.Types() {
		if string(info.ID) == name {
			return info, true
		}
		if !found && info.Short == name {
			best, found = info, true
		}
	}
	return best, found
}

// Types returns every known type ordered by ID.
func (md *Metadata) Types() []TypeInfo {
	md.mu.RLock()
	out := make([]TypeInfo, 0, len(md.infos))
	for _, info := range md.infos {
		out = append(out, info)
	}
	md.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
