package writeback

import (
	"sort"
	"sync"
)

// Status is the outcome of the last write to one locator.
type Status struct {
	Locator string
	OK      bool
	Message string
}

// Diagnostics keeps the last write status per locator for operators.
type Diagnostics struct {
	status sync.Map // Locator.Key() → Status
}

func (d *Diagnostics) record(r Result) {
	key := r.Change.Locator.Key()
	st := Status{Locator: r.Change.Locator.String(), OK: r.Err == nil}
	if r.Err != nil {
		st.Message = r.Err.Error()
	}
	d.status.Store(key, st)
}

// Lookup returns the status recorded for a Locator.Key.
func (d *Diagnostics) Lookup(key string) (Status, bool) {
	v, ok := d.status.Load(key)
	if !ok {
		return Status{}, false
	}
	return v.(Status), true
}

// Snapshot returns every recorded status ordered by locator text.
func (d *Diagnostics) Snapshot() []Status {
	var out []Status
	d.status.Range(func(_, v any) bool {
		out = append(out, v.(Status))
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Locator < out[j].Locator })
	return out
}

// Failures returns the statuses whose last write failed.
func (d *Diagnostics) Failures() []Status {
	var out []Status
	for _, st := range d.Snapshot() {
		if !st.OK {
			out = append(out, st)
		}
	}
	return out
}
