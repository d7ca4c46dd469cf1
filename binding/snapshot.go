// Package binding connects sectioned in-memory data to a live list-UI
// host. A Binder owns a pair of snapshots (last applied, most recently
// pushed), computes the edit script between them with the diff package
// and drives the host through one atomic batch per update cycle.
package binding

import (
	"github.com/bindery/listbind-golang/diff"
)

// Snapshot is one immutable view of the sectioned data at a point in
// time. The section identity type S must be comparable so sections can
// be matched across snapshots by default; I is the item (row model)
// type. A snapshot handed to a Binder must not be mutated afterwards.
type Snapshot[S comparable, I any] struct {
	Sections []diff.Section[S, I]
}

// NewSnapshot builds a snapshot from the given sections
func NewSnapshot[S comparable, I any](sections ...diff.Section[S, I]) Snapshot[S, I] {
	return Snapshot[S, I]{Sections: sections}
}

// NewSection builds one section for snapshot construction
func NewSection[S comparable, I any](id S, items ...I) diff.Section[S, I] {
	return diff.Section[S, I]{ID: id, Items: items}
}

// SectionCount returns the number of sections
func (s Snapshot[S, I]) SectionCount() int {
	return len(s.Sections)
}

// ItemCount returns the number of items in the given section, or 0 when
// the section index is out of range
func (s Snapshot[S, I]) ItemCount(section int) int {
	if section < 0 || section >= len(s.Sections) {
		return 0
	}
	return len(s.Sections[section].Items)
}

// Item returns the item at the given path
func (s Snapshot[S, I]) Item(path diff.ItemPath) (I, bool) {
	var zero I
	if path.Section < 0 || path.Section >= len(s.Sections) {
		return zero, false
	}
	items := s.Sections[path.Section].Items
	if path.Item < 0 || path.Item >= len(items) {
		return zero, false
	}
	return items[path.Item], true
}

// SectionID returns the identity token of the given section
func (s Snapshot[S, I]) SectionID(section int) (S, bool) {
	var zero S
	if section < 0 || section >= len(s.Sections) {
		return zero, false
	}
	return s.Sections[section].ID, true
}

// Counts is the structural shape of a snapshot: one entry per section
// holding that section's item count. The applier compares this against
// the live host before trusting an incremental batch.
type Counts []int

// Counts returns the snapshot's structural shape
func (s Snapshot[S, I]) Counts() Counts {
	counts := make(Counts, len(s.Sections))
	for i := range s.Sections {
		counts[i] = len(s.Sections[i].Items)
	}
	return counts
}
