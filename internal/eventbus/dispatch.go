// Package eventbus fans permission lifecycle events out to registered
// outputs without ever blocking the Holder that emitted them. The
// dispatch mechanism is an atomic snapshot read by a lock-free hot
// path, mutated only by Register/Unregister under a write lock.
package eventbus

import (
	"sync"
	"sync/atomic"

	"github.com/permlattice/permlattice/internal/permission"
)

// Output receives every dispatched event. Write must not retain entry
// beyond the call; Dispatcher passes the same pointer to every output
// in a round.
type Output interface {
	Write(event *permission.Event) error
	Close() error
}

// Dispatcher implements permission.EventSink by fanning out to a set
// of Outputs. The output slice is stored behind an atomic.Pointer so
// Emit never takes a lock — a slow or wedged output only delays its
// own goroutine, never the holder that called Emit nor any other
// output.
type Dispatcher struct {
	mu       sync.Mutex // guards Register/Unregister only
	snapshot atomic.Pointer[[]Output]
}

// NewDispatcher returns an empty Dispatcher ready to Emit.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{}
	empty := make([]Output, 0)
	d.snapshot.Store(&empty)
	return d
}

// Register adds an output to the dispatch set.
func (d *Dispatcher) Register(out Output) {
	d.mu.Lock()
	defer d.mu.Unlock()
	current := *d.snapshot.Load()
	next := make([]Output, len(current), len(current)+1)
	copy(next, current)
	next = append(next, out)
	d.snapshot.Store(&next)
}

// Unregister removes an output by identity. It is a no-op if out was
// never registered.
func (d *Dispatcher) Unregister(out Output) {
	d.mu.Lock()
	defer d.mu.Unlock()
	current := *d.snapshot.Load()
	next := make([]Output, 0, len(current))
	for _, o := range current {
		if o == out {
			continue
		}
		next = append(next, o)
	}
	d.snapshot.Store(&next)
}

// Emit implements permission.EventSink. It is lock-free: the snapshot
// load is a single atomic read, and each output is written to on its
// own goroutine so one slow sink never delays another or the caller.
func (d *Dispatcher) Emit(e permission.Event) {
	snapshot := d.snapshot.Load()
	if snapshot == nil {
		return
	}
	for _, out := range *snapshot {
		o := out
		go func() {
			_ = o.Write(&e)
		}()
	}
}

// CloseAll closes every registered output, e.g. during shutdown.
func (d *Dispatcher) CloseAll() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	var firstErr error
	for _, out := range *d.snapshot.Load() {
		if err := out.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
