package writeback

import (
	"log"
)

// Result is the outcome of one applied change. Before and After are the
// leaf's stored values around the write and are zero when Err is set.
type Result struct {
	Change Change
	Before float64
	After  float64
	Err    error
}

// Engine drains queues into a store.
type Engine struct {
	Logger      *log.Logger
	Diagnostics *Diagnostics
}

// NewEngine returns an engine logging to the default logger.
func NewEngine() *Engine {
	return &Engine{Logger: log.Default(), Diagnostics: &Diagnostics{}}
}

// ApplyPending drains q and applies every change in order. Failures are
// logged and recorded, and never stop the batch. Later changes to the same
// locator overwrite earlier ones.
func (e *Engine) ApplyPending(s Store, q *Queue) []Result {
	changes := q.Drain()
	if len(changes) == 0 {
		return nil
	}
	results := make([]Result, 0, len(changes))
	for _, c := range changes {
		r := Result{Change: c}
		r.Before, r.After, r.Err = apply(s, c.Locator, c.Value)
		if r.Err != nil && e.Logger != nil {
			e.Logger.Printf("writeback: %v", r.Err)
		}
		if e.Diagnostics != nil {
			e.Diagnostics.record(r)
		}
		results = append(results, r)
	}
	return results
}
