package diff

// Section is the sectioned shape the nested engine diffs: an identity
// token plus the ordered items it owns. S identifies the section across
// snapshots; I is the item type.
type Section[S, I any] struct {
	ID    S
	Items []I
}

// Nested diffs two snapshots of sectioned data and returns the unified
// edit script covering section-level and item-level operations.
//
// Section-level edits come from diffing the section identity sequences
// with isSameSection. Sections are never marked updated: section content
// equality is deliberately not checked, content-level section updates
// are the caller's concern.
//
// For each section move the item diff runs across the move, with item
// deletions (and updates and move origins) tagged with the section's
// origin index and insertions (and move destinations) tagged with its
// destination index. Matched sections diff their items in place under
// the same tagging rule. A deleted section also reports a delete for
// each of its items and an inserted section an insert for each of its
// items, so the script alone is enough to rebuild the structure.
// isSameSection and isSameItem must not be nil;
// isEqualItem may be nil to disable item update detection.
func Nested[S, I any](from, to []Section[S, I], isSameSection MatchFunc[S], isSameItem MatchFunc[I], isEqualItem EqualFunc[I]) *EditScript {
	fromIDs := make([]S, len(from))
	for i := range from {
		fromIDs[i] = from[i].ID
	}
	toIDs := make([]S, len(to))
	for i := range to {
		toIDs[i] = to[i].ID
	}

	script := &EditScript{}
	sections := diffSequence(fromIDs, toIDs, isSameSection, nil)

	for _, op := range sections.ops {
		switch op.Type {
		case OpDelete:
			script.SectionsDeleted = append(script.SectionsDeleted, op.From)
			diffItems(script, from[op.From].Items, nil, op.From, -1, isSameItem, isEqualItem)
		case OpInsert:
			script.SectionsInserted = append(script.SectionsInserted, op.To)
			diffItems(script, nil, to[op.To].Items, -1, op.To, isSameItem, isEqualItem)
		case OpMove:
			script.SectionsMoved = append(script.SectionsMoved, SectionMove{From: op.From, To: op.To})
			diffItems(script, from[op.From].Items, to[op.To].Items, op.From, op.To, isSameItem, isEqualItem)
		}
	}

	for _, m := range sections.matches {
		diffItems(script, from[m[0]].Items, to[m[1]].Items, m[0], m[1], isSameItem, isEqualItem)
	}

	return script
}

// diffItems diffs one section's items across snapshots and merges the
// resulting operations into the script. origin is the section's index in
// the "before" snapshot, destination its index in the "after" snapshot.
func diffItems[I any](script *EditScript, from, to []I, origin, destination int, isSame MatchFunc[I], isEqual EqualFunc[I]) {
	for _, op := range Sequence(from, to, isSame, isEqual) {
		switch op.Type {
		case OpDelete:
			script.ItemsDeleted = append(script.ItemsDeleted, ItemPath{Section: origin, Item: op.From})
		case OpInsert:
			script.ItemsInserted = append(script.ItemsInserted, ItemPath{Section: destination, Item: op.To})
		case OpMove:
			script.ItemsMoved = append(script.ItemsMoved, ItemMove{
				From: ItemPath{Section: origin, Item: op.From},
				To:   ItemPath{Section: destination, Item: op.To},
			})
		case OpUpdate:
			script.ItemsUpdated = append(script.ItemsUpdated, ItemPath{Section: origin, Item: op.From})
		}
	}
}
