package binding

import "github.com/bindery/listbind-golang/diff"

// Animation selects how the host presents a batch of structural edits
type Animation string

const (
	AnimationNone  Animation = "none"  // Apply edits without any transition
	AnimationFade  Animation = "fade"  // Fade changed rows in and out
	AnimationSlide Animation = "slide" // Slide rows into their new position
)

// BatchTarget receives the structural edits of one atomic batch.
// Deletions, move origins, update and reload positions address the
// host's state before the batch; insertions and move destinations
// address the state after it. The host stages all calls and commits
// them together when the batch closes.
type BatchTarget interface {
	DeleteSections(at []int)
	InsertSections(at []int)
	MoveSection(from, to int)
	ReloadSections(at []int)

	DeleteItems(at []diff.ItemPath)
	InsertItems(at []diff.ItemPath)
	MoveItem(from, to diff.ItemPath)
	ReloadItems(at []diff.ItemPath)
}

// HostView is the live list-UI collaborator the applier drives. The
// host is stateful and not reentrant-safe: at most one batch may be in
// flight at a time, on the goroutine that owns the view.
type HostView interface {
	// SectionCount and ItemCount report the structure the host is
	// currently displaying, used to validate pre-batch assumptions.
	SectionCount() int
	ItemCount(section int) int

	// PerformBatch runs apply against a staged target and commits the
	// staged edits atomically. When the edits cannot be reconciled with
	// the displayed structure the host discards the whole batch and
	// returns an error; it must never commit a partial batch.
	PerformBatch(animation Animation, apply func(BatchTarget) error) error

	// ReloadData discards incremental semantics and re-synchronizes the
	// entire displayed structure from the host's data source.
	ReloadData()
}
