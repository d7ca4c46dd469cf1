package diff

import "fmt"

// OpType represents the kind of edit in a flat sequence diff
type OpType string

const (
	OpDelete OpType = "delete" // Remove the element at From
	OpInsert OpType = "insert" // Insert an element at To
	OpMove   OpType = "move"   // Relocate the element at From to To
	OpUpdate OpType = "update" // Element at From kept its place but changed content
)

// Operation is one edit in a flat sequence diff. Delete, update and
// move origins are indices into the "from" sequence; insert and move
// destinations are indices into the "to" sequence. Unused indices are -1.
type Operation struct {
	Type OpType
	From int
	To   int
}

func (o Operation) String() string {
	switch o.Type {
	case OpDelete:
		return fmt.Sprintf("delete(%d)", o.From)
	case OpInsert:
		return fmt.Sprintf("insert(%d)", o.To)
	case OpMove:
		return fmt.Sprintf("move(%d->%d)", o.From, o.To)
	case OpUpdate:
		return fmt.Sprintf("update(%d)", o.From)
	}
	return fmt.Sprintf("unknown(%d,%d)", o.From, o.To)
}

// Equality is the tri-state verdict of a content comparison between two
// identity-matched elements
type Equality string

const (
	EqualitySame    Equality = "same"    // No visible change
	EqualityChanged Equality = "changed" // Content differs, element needs an update
	EqualityUnknown Equality = "unknown" // Comparison not possible, treated as changed
)

// MatchFunc reports whether a and b represent the same logical entity.
// It must be pure and consistent across both sequences being diffed.
type MatchFunc[T any] func(a, b T) bool

// EqualFunc reports whether two identity-matched elements have identical
// visible content. A nil EqualFunc disables update detection entirely.
type EqualFunc[T any] func(a, b T) Equality
