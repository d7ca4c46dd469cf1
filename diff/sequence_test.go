package diff

import (
	"sort"
	"testing"
)

// row is the element type used throughout the sequence engine tests:
// identity by ID, content by Val
type row struct {
	ID  int
	Val string
}

func sameRow(a, b row) bool { return a.ID == b.ID }

func equalRow(a, b row) Equality {
	if a.Val == b.Val {
		return EqualitySame
	}
	return EqualityChanged
}

func rows(ids ...int) []row {
	out := make([]row, len(ids))
	for i, id := range ids {
		out[i] = row{ID: id, Val: "v"}
	}
	return out
}

func countOps(ops []Operation, kind OpType) int {
	n := 0
	for _, op := range ops {
		if op.Type == kind {
			n++
		}
	}
	return n
}

func TestSequenceIdenticalInputs(t *testing.T) {
	from := []row{{1, "a"}, {2, "b"}, {3, "c"}}
	to := []row{{1, "a"}, {2, "b"}, {3, "c"}}

	ops := Sequence(from, to, sameRow, equalRow)
	if len(ops) != 0 {
		t.Errorf("Expected no operations for identical inputs, got %v", ops)
	}
}

func TestSequenceEmptyInputs(t *testing.T) {
	if ops := Sequence(nil, nil, sameRow, equalRow); len(ops) != 0 {
		t.Errorf("Expected no operations for two empty sequences, got %v", ops)
	}

	ops := Sequence(nil, rows(1, 2), sameRow, equalRow)
	if len(ops) != 2 || countOps(ops, OpInsert) != 2 {
		t.Errorf("Expected two inserts for empty-to-full, got %v", ops)
	}

	ops = Sequence(rows(1, 2), nil, sameRow, equalRow)
	if len(ops) != 2 || countOps(ops, OpDelete) != 2 {
		t.Errorf("Expected two deletes for full-to-empty, got %v", ops)
	}
}

func TestSequencePureDelete(t *testing.T) {
	ops := Sequence(rows(1, 2, 3), rows(1, 3), sameRow, nil)

	if len(ops) != 1 {
		t.Fatalf("Expected exactly one operation, got %v", ops)
	}
	if ops[0].Type != OpDelete || ops[0].From != 1 {
		t.Errorf("Expected delete(1), got %s", ops[0])
	}
}

func TestSequencePureInsert(t *testing.T) {
	ops := Sequence(rows(1, 3), rows(1, 2, 3), sameRow, nil)

	if len(ops) != 1 {
		t.Fatalf("Expected exactly one operation, got %v", ops)
	}
	if ops[0].Type != OpInsert || ops[0].To != 1 {
		t.Errorf("Expected insert(1), got %s", ops[0])
	}
}

func TestSequenceMoveDetection(t *testing.T) {
	// Rotating the tail element to the front is one move, not a
	// delete/insert pair
	ops := Sequence(rows(1, 2, 3), rows(3, 1, 2), sameRow, nil)

	if len(ops) != 1 {
		t.Fatalf("Expected exactly one operation, got %v", ops)
	}
	if ops[0].Type != OpMove || ops[0].From != 2 || ops[0].To != 0 {
		t.Errorf("Expected move(2->0), got %s", ops[0])
	}
}

func TestSequenceUpdateDetection(t *testing.T) {
	from := []row{{1, "a"}}
	to := []row{{1, "b"}}

	ops := Sequence(from, to, sameRow, equalRow)
	if len(ops) != 1 {
		t.Fatalf("Expected exactly one operation, got %v", ops)
	}
	if ops[0].Type != OpUpdate || ops[0].From != 0 {
		t.Errorf("Expected update(0), got %s", ops[0])
	}
}

func TestSequenceNilEqualDisablesUpdates(t *testing.T) {
	from := []row{{1, "a"}, {2, "b"}}
	to := []row{{1, "x"}, {2, "y"}}

	ops := Sequence(from, to, sameRow, nil)
	if len(ops) != 0 {
		t.Errorf("Expected identity-only matching to report no operations, got %v", ops)
	}
}

func TestSequenceUnknownEqualityForcesUpdate(t *testing.T) {
	unknown := func(a, b row) Equality { return EqualityUnknown }

	ops := Sequence(rows(1, 2), rows(1, 2), sameRow, unknown)
	if len(ops) != 2 || countOps(ops, OpUpdate) != 2 {
		t.Errorf("Expected an update at every matched position for unknown equality, got %v", ops)
	}
}

func TestSequencePrefixPreferredOnAmbiguousInput(t *testing.T) {
	// [1,2,1] -> [1] has two minimal edit paths; the engine must keep
	// the leading match so the surviving element stays at position 0
	ops := Sequence(rows(1, 2, 1), rows(1), sameRow, nil)

	if len(ops) != 2 {
		t.Fatalf("Expected two deletes, got %v", ops)
	}
	froms := []int{ops[0].From, ops[1].From}
	sort.Ints(froms)
	if froms[0] != 1 || froms[1] != 2 {
		t.Errorf("Expected deletes at 1 and 2, got %v", ops)
	}
}

func TestSequenceCombinedEdits(t *testing.T) {
	from := []row{{1, "a"}, {2, "b"}, {3, "c"}, {4, "d"}}
	to := []row{{4, "d"}, {1, "a"}, {3, "z"}, {5, "e"}}

	ops := Sequence(from, to, sameRow, equalRow)

	if n := countOps(ops, OpDelete); n != 1 {
		t.Errorf("Expected 1 delete, got %d in %v", n, ops)
	}
	if n := countOps(ops, OpInsert); n != 1 {
		t.Errorf("Expected 1 insert, got %d in %v", n, ops)
	}
	if n := countOps(ops, OpMove); n != 1 {
		t.Errorf("Expected 1 move, got %d in %v", n, ops)
	}
	if n := countOps(ops, OpUpdate); n != 1 {
		t.Errorf("Expected 1 update, got %d in %v", n, ops)
	}
	t.Logf("Combined edit script: %v", ops)
}

func TestSequenceIndexValidity(t *testing.T) {
	cases := []struct {
		name string
		from []row
		to   []row
	}{
		{"disjoint", rows(1, 2, 3), rows(4, 5)},
		{"reversal", rows(1, 2, 3, 4), rows(4, 3, 2, 1)},
		{"interleaved", rows(1, 3, 5, 7), rows(2, 3, 4, 5, 6)},
		{"shrink", rows(1, 2, 3, 4, 5, 6), rows(6, 2)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, op := range Sequence(tc.from, tc.to, sameRow, equalRow) {
				switch op.Type {
				case OpDelete, OpUpdate:
					if op.From < 0 || op.From >= len(tc.from) {
						t.Errorf("Operation %s has out-of-bounds before index", op)
					}
				case OpInsert:
					if op.To < 0 || op.To >= len(tc.to) {
						t.Errorf("Operation %s has out-of-bounds after index", op)
					}
				case OpMove:
					if op.From < 0 || op.From >= len(tc.from) || op.To < 0 || op.To >= len(tc.to) {
						t.Errorf("Operation %s has out-of-bounds index", op)
					}
				}
			}
		})
	}
}

// applySequence replays an edit script against from and returns the
// rebuilt sequence, mimicking how a host control consumes a batch:
// deletions and move origins leave the before index space, then inserts
// and move destinations land in the after index space.
func applySequence(from, to []row, ops []Operation) []row {
	type insertion struct {
		at    int
		value row
	}

	var removals []int
	var insertions []insertion
	for _, op := range ops {
		switch op.Type {
		case OpDelete:
			removals = append(removals, op.From)
		case OpMove:
			removals = append(removals, op.From)
			insertions = append(insertions, insertion{at: op.To, value: from[op.From]})
		case OpInsert:
			insertions = append(insertions, insertion{at: op.To, value: to[op.To]})
		}
	}

	result := append([]row(nil), from...)
	sort.Sort(sort.Reverse(sort.IntSlice(removals)))
	for _, at := range removals {
		result = append(result[:at], result[at+1:]...)
	}
	sort.Slice(insertions, func(i, j int) bool { return insertions[i].at < insertions[j].at })
	for _, ins := range insertions {
		result = append(result[:ins.at], append([]row{ins.value}, result[ins.at:]...)...)
	}
	for _, op := range ops {
		if op.Type == OpUpdate {
			result[op.To] = to[op.To]
		}
	}
	return result
}

func TestSequenceRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		from []row
		to   []row
	}{
		{"identical", rows(1, 2, 3), rows(1, 2, 3)},
		{"rotation", rows(1, 2, 3), rows(3, 1, 2)},
		{"churn", []row{{1, "a"}, {2, "b"}, {3, "c"}, {4, "d"}}, []row{{4, "d"}, {1, "a"}, {3, "z"}, {5, "e"}}},
		{"replace all", rows(1, 2), rows(3, 4)},
		{"empty to full", nil, rows(1, 2, 3)},
		{"full to empty", rows(1, 2, 3), nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ops := Sequence(tc.from, tc.to, sameRow, equalRow)
			got := applySequence(tc.from, tc.to, ops)

			if len(got) != len(tc.to) {
				t.Fatalf("Rebuilt length %d, want %d (ops: %v)", len(got), len(tc.to), ops)
			}
			for i := range got {
				if !sameRow(got[i], tc.to[i]) || equalRow(got[i], tc.to[i]) != EqualitySame {
					t.Errorf("Position %d: got %v, want %v", i, got[i], tc.to[i])
				}
			}
		})
	}
}
