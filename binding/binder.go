package binding

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"

	"github.com/bindery/listbind-golang/diff"
)

// State is where the binder is in its update cycle
type State string

const (
	StateIdle         State = "idle"          // No cycle in flight
	StateDiffComputed State = "diff_computed" // Edit script ready, batch not started
	StateApplying     State = "applying"      // Batch in flight against the host
)

// ErrBinderClosed is returned by Update after Close
var ErrBinderClosed = errors.New("binder is closed")

// UpdateListener is notified after each completed update cycle with the
// cycle's ULID and the script that was applied
type UpdateListener func(cycle string, script *diff.EditScript)

// Binder coordinates update cycles between a snapshot producer and a
// live host view. It owns the current/next snapshot pair, runs the
// nested diff, drives the applier and serves as the host's data source
// for section and item content.
//
// All methods must be called from the goroutine that owns the host
// view. A snapshot pushed while a batch is in flight (for example from
// a host callback during PerformBatch) is coalesced: only the latest
// pending snapshot starts the next cycle, intermediate ones are
// skipped. Cycles never overlap and are applied in push order.
type Binder[S comparable, I any] struct {
	mu        sync.Mutex
	host      HostView
	oracle    Oracle[S, I]
	applier   Applier
	animation Animation

	current Snapshot[S, I]  // what the data source serves; becomes "before" of the next diff
	pending *Snapshot[S, I] // latest snapshot pushed while a cycle was in flight
	state   State
	loaded  bool
	closed  bool

	listeners *HandleRegistry[UpdateListener]
	streams   *HandleRegistry[CancelFunc]
}

// NewBinder returns an idle binder bound to the given host. The oracle
// decides identity and equality for the diffs; see NewOracle for the
// common defaults.
func NewBinder[S comparable, I any](host HostView, oracle Oracle[S, I]) *Binder[S, I] {
	return &Binder[S, I]{
		host:      host,
		oracle:    oracle.normalized(),
		animation: AnimationFade,
		state:     StateIdle,
		listeners: NewHandleRegistry[UpdateListener](),
		streams:   NewHandleRegistry[CancelFunc](),
	}
}

// SetAnimation selects the animation style for subsequent batches
func (b *Binder[S, I]) SetAnimation(animation Animation) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.animation = animation
}

// SetResolver installs the recovery policy for rejected batches. The
// default is AutoResolver.
func (b *Binder[S, I]) SetResolver(resolver ReloadResolver) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.applier.Resolver = resolver
}

// SetDiagnosticHandler installs a callback for recovered apply failures
func (b *Binder[S, I]) SetDiagnosticHandler(fn func(Diagnostic)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.applier.OnDiagnostic = fn
}

// State returns the binder's position in the update cycle
func (b *Binder[S, I]) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Current returns the snapshot the data source is serving
func (b *Binder[S, I]) Current() Snapshot[S, I] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// SectionCount serves the host's section count query
func (b *Binder[S, I]) SectionCount() int {
	return b.Current().SectionCount()
}

// ItemCount serves the host's per-section item count query
func (b *Binder[S, I]) ItemCount(section int) int {
	return b.Current().ItemCount(section)
}

// Item returns the item the data source serves at the given path
func (b *Binder[S, I]) Item(path diff.ItemPath) (I, bool) {
	return b.Current().Item(path)
}

// SectionID returns the identity token of the given visible section
func (b *Binder[S, I]) SectionID(section int) (S, bool) {
	return b.Current().SectionID(section)
}

// Update starts an update cycle that brings the host from the current
// snapshot to next. The first update skips diffing and loads the host
// with a full reload; later updates apply the minimal edit script in
// one batch. If a cycle is already in flight next is queued, replacing
// any previously queued snapshot.
func (b *Binder[S, I]) Update(next Snapshot[S, I]) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBinderClosed
	}
	if b.state != StateIdle {
		log.Debug("Cycle in flight, coalescing snapshot", "sections", next.SectionCount())
		b.pending = &next
		b.mu.Unlock()
		return nil
	}
	b.state = StateDiffComputed
	b.mu.Unlock()

	for {
		err := b.runCycle(next)
		if err != nil {
			b.mu.Lock()
			b.state = StateIdle
			b.mu.Unlock()
			return err
		}

		b.mu.Lock()
		if b.pending == nil || b.closed {
			b.state = StateIdle
			b.mu.Unlock()
			return nil
		}
		next = *b.pending
		b.pending = nil
		b.state = StateDiffComputed
		b.mu.Unlock()
	}
}

// runCycle performs one Idle -> DiffComputed -> Applying -> Idle pass
func (b *Binder[S, I]) runCycle(next Snapshot[S, I]) error {
	cycle := ulid.Make().String()

	b.mu.Lock()
	before := b.current
	firstLoad := !b.loaded
	animation := b.animation
	// Publish next before the batch runs: the host pulls inserted
	// content from the data source using after-space indices.
	b.current = next
	b.loaded = true
	b.mu.Unlock()

	var script *diff.EditScript
	if firstLoad {
		script = &diff.EditScript{}
		log.Debug("First load, skipping diff", "cycle", cycle, "sections", next.SectionCount())
	} else {
		script = diff.Nested(before.Sections, next.Sections, b.oracle.IsSameSection, b.oracle.IsSameItem, b.oracle.IsEqualItem)
		log.Debug("Computed edit script", "cycle", cycle, "operations", script.Len(), "script", script.String())
	}

	b.mu.Lock()
	b.state = StateApplying
	b.mu.Unlock()

	var err error
	if firstLoad {
		b.host.ReloadData()
	} else {
		err = b.applier.Apply(b.host, script, before.Counts(), cycle, animation)
	}
	if err != nil {
		return err
	}

	b.listeners.Each(func(_ Handle, fn UpdateListener) {
		fn(cycle, script)
	})
	return nil
}

// AddUpdateListener registers a cycle-completion callback and returns
// its handle. The callback holds no reference back to the binder; it
// stops firing once the handle is removed or the binder closes.
func (b *Binder[S, I]) AddUpdateListener(fn UpdateListener) Handle {
	return b.listeners.Register(fn)
}

// RemoveUpdateListener invalidates a listener handle
func (b *Binder[S, I]) RemoveUpdateListener(h Handle) {
	b.listeners.Invalidate(h)
}

// BindSource pulls one snapshot from a plain producer and applies it
func (b *Binder[S, I]) BindSource(source SnapshotSource[S, I]) error {
	snapshot, err := source.Pull()
	if err != nil {
		return fmt.Errorf("failed to pull snapshot: %w", err)
	}
	return b.Update(snapshot)
}

// BindStream subscribes to a reactive producer. Every pushed snapshot
// starts (or queues) an update cycle. The returned handle cancels the
// subscription via Unbind or Close.
func (b *Binder[S, I]) BindStream(stream SnapshotStream[S, I]) (Handle, error) {
	cancel, err := stream.Subscribe(func(snapshot Snapshot[S, I]) {
		if err := b.Update(snapshot); err != nil {
			log.Errorf("Failed to apply streamed snapshot: %v", err)
		}
	})
	if err != nil {
		return 0, fmt.Errorf("failed to subscribe to snapshot stream: %w", err)
	}
	return b.streams.Register(cancel), nil
}

// Unbind cancels one stream subscription
func (b *Binder[S, I]) Unbind(h Handle) {
	if cancel, ok := b.streams.Invalidate(h); ok {
		cancel()
	}
}

// Close cancels all subscriptions, drops all listeners and rejects
// further updates. The host view is left showing the last applied
// snapshot.
func (b *Binder[S, I]) Close() {
	b.mu.Lock()
	b.closed = true
	b.pending = nil
	b.mu.Unlock()

	for _, cancel := range b.streams.Clear() {
		cancel()
	}
	b.listeners.Clear()
	log.Debug("Binder closed")
}
