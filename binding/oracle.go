package binding

import (
	"github.com/mitchellh/hashstructure/v2"

	"github.com/bindery/listbind-golang/diff"
)

// Oracle bundles the identity and equality predicates the diff engine
// consults. IsSameSection and IsSameItem decide whether two values
// represent the same logical entity across snapshots; IsEqualItem
// decides whether two identity-matched items still render the same.
//
// All three must be pure. A nil IsSameSection falls back to == on the
// section identity; a nil IsEqualItem disables update detection. The
// predicates are trusted to be consistent: an inconsistent identity
// predicate degrades the edit script but never breaks it.
type Oracle[S comparable, I any] struct {
	IsSameSection diff.MatchFunc[S]
	IsSameItem    diff.MatchFunc[I]
	IsEqualItem   diff.EqualFunc[I]
}

// NewOracle returns an oracle that matches sections by identity token
// equality, items by the given predicate and item content by structural
// hashing
func NewOracle[S comparable, I any](isSameItem diff.MatchFunc[I]) Oracle[S, I] {
	return Oracle[S, I]{
		IsSameItem:  isSameItem,
		IsEqualItem: HashEquality[I](),
	}
}

// normalized fills in the default section predicate so the diff engine
// never sees a nil identity oracle
func (o Oracle[S, I]) normalized() Oracle[S, I] {
	if o.IsSameSection == nil {
		o.IsSameSection = func(a, b S) bool { return a == b }
	}
	return o
}

// HashEquality compares item content by structural hash. When hashing
// fails for either value the verdict is EqualityUnknown, which the
// engine treats as "needs update" so stale content never survives an
// inconclusive comparison.
func HashEquality[I any]() diff.EqualFunc[I] {
	return func(a, b I) diff.Equality {
		ha, err := hashstructure.Hash(a, hashstructure.FormatV2, nil)
		if err != nil {
			return diff.EqualityUnknown
		}
		hb, err := hashstructure.Hash(b, hashstructure.FormatV2, nil)
		if err != nil {
			return diff.EqualityUnknown
		}
		if ha == hb {
			return diff.EqualitySame
		}
		return diff.EqualityChanged
	}
}
