package diff

import (
	"fmt"
	"strings"
)

// ItemPath addresses one item inside one section
type ItemPath struct {
	Section int
	Item    int
}

func (p ItemPath) String() string {
	return fmt.Sprintf("%d in %d", p.Item, p.Section)
}

// SectionMove relocates a whole section. From is an index into the
// "before" snapshot, To an index into the "after" snapshot.
type SectionMove struct {
	From int
	To   int
}

// ItemMove relocates one item, possibly across sections. From addresses
// the "before" snapshot, To the "after" snapshot.
type ItemMove struct {
	From ItemPath
	To   ItemPath
}

// EditScript is the unified set of section- and item-level edits that
// transforms one snapshot into another. Deleted/updated/move-origin
// indices address the "before" snapshot; inserted/move-destination
// indices address the "after" snapshot. The groups carry no ordering
// constraint between each other because the two index spaces never mix.
type EditScript struct {
	SectionsDeleted  []int
	SectionsInserted []int
	SectionsMoved    []SectionMove
	SectionsUpdated  []int // never populated: section content equality is not checked

	ItemsDeleted  []ItemPath
	ItemsInserted []ItemPath
	ItemsMoved    []ItemMove
	ItemsUpdated  []ItemPath
}

// Empty reports whether the script contains no operations
func (s *EditScript) Empty() bool {
	return s.Len() == 0
}

// Len returns the total number of operations in the script
func (s *EditScript) Len() int {
	return len(s.SectionsDeleted) + len(s.SectionsInserted) + len(s.SectionsMoved) + len(s.SectionsUpdated) +
		len(s.ItemsDeleted) + len(s.ItemsInserted) + len(s.ItemsMoved) + len(s.ItemsUpdated)
}

// String renders every operation with a human-readable tag, one per
// entry, for logging and diagnostics
func (s *EditScript) String() string {
	if s.Empty() {
		return "no changes"
	}

	parts := make([]string, 0, s.Len())
	for _, at := range s.SectionsDeleted {
		parts = append(parts, fmt.Sprintf("deleteSection(%d)", at))
	}
	for _, at := range s.SectionsInserted {
		parts = append(parts, fmt.Sprintf("insertSection(%d)", at))
	}
	for _, mv := range s.SectionsMoved {
		parts = append(parts, fmt.Sprintf("moveSection(%d->%d)", mv.From, mv.To))
	}
	for _, at := range s.SectionsUpdated {
		parts = append(parts, fmt.Sprintf("updateSection(%d)", at))
	}
	for _, at := range s.ItemsDeleted {
		parts = append(parts, fmt.Sprintf("deleteItem(%s)", at))
	}
	for _, at := range s.ItemsInserted {
		parts = append(parts, fmt.Sprintf("insertItem(%s)", at))
	}
	for _, mv := range s.ItemsMoved {
		parts = append(parts, fmt.Sprintf("moveItem(%s -> %s)", mv.From, mv.To))
	}
	for _, at := range s.ItemsUpdated {
		parts = append(parts, fmt.Sprintf("updateItem(%s)", at))
	}
	return strings.Join(parts, ", ")
}
