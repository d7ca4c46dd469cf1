package diff

// traceKind tags a point on the edit path through the comparison graph
type traceKind int

const (
	traceMatch  traceKind = iota // from[x] and to[y] are the same entity
	traceDelete                  // from[x] has no counterpart in to
	traceInsert                  // to[y] has no counterpart in from
)

// tracePoint is one step of the LCS edit path. Only the index relevant
// to its kind is meaningful: x for deletions, y for insertions, both
// for matches.
type tracePoint struct {
	kind traceKind
	x    int
	y    int
}

// pairing is the full result of a flat diff: the edit operations plus
// the identity-matched index pairs the nested engine recurses into.
type pairing struct {
	ops     []Operation
	matches [][2]int // [from index, to index] for every in-place match
}

// Sequence computes the edits that transform from into to, using isSame
// as the identity predicate. Matched elements at different positions are
// reported as moves rather than delete/insert pairs. When isEqual is
// non-nil, identity-matched elements whose content comparison does not
// report EqualitySame produce an update at their "from" position.
//
// Identical sequences yield no operations. Either sequence may be empty.
// isSame must not be nil.
func Sequence[T any](from, to []T, isSame MatchFunc[T], isEqual EqualFunc[T]) []Operation {
	return diffSequence(from, to, isSame, isEqual).ops
}

// diffSequence runs the LCS trace, the move post-pass and the update
// pass, returning operations together with the surviving match pairs.
func diffSequence[T any](from, to []T, isSame MatchFunc[T], isEqual EqualFunc[T]) pairing {
	trace := lcsTrace(from, to, isSame)

	var deletes []int
	var inserts []int
	var result pairing
	for _, pt := range trace {
		switch pt.kind {
		case traceMatch:
			result.matches = append(result.matches, [2]int{pt.x, pt.y})
		case traceDelete:
			deletes = append(deletes, pt.x)
		case traceInsert:
			inserts = append(inserts, pt.y)
		}
	}

	// Move detection: a deleted element that is the same entity as an
	// inserted one is one relocation, not two edits. Candidates are
	// scanned in ascending order so the pairing is deterministic.
	usedInsert := make([]bool, len(inserts))
	for _, di := range deletes {
		moved := false
		for k, ii := range inserts {
			if usedInsert[k] {
				continue
			}
			if isSame(from[di], to[ii]) {
				result.ops = append(result.ops, Operation{Type: OpMove, From: di, To: ii})
				usedInsert[k] = true
				moved = true
				break
			}
		}
		if !moved {
			result.ops = append(result.ops, Operation{Type: OpDelete, From: di, To: -1})
		}
	}
	for k, ii := range inserts {
		if !usedInsert[k] {
			result.ops = append(result.ops, Operation{Type: OpInsert, From: -1, To: ii})
		}
	}

	if isEqual != nil {
		for _, m := range result.matches {
			if isEqual(from[m[0]], to[m[1]]) != EqualitySame {
				result.ops = append(result.ops, Operation{Type: OpUpdate, From: m[0], To: m[1]})
			}
		}
	}

	return result
}

// lcsTrace walks a longest-common-subsequence of from and to and returns
// the edit path as trace points in ascending index order. Runs of common
// prefix and suffix are matched greedily before the table is built, which
// both bounds the table to the changed middle and guarantees the engine
// prefers maximal unchanged prefix/suffix runs when several minimal edit
// paths exist.
func lcsTrace[T any](from, to []T, isSame MatchFunc[T]) []tracePoint {
	n, m := len(from), len(to)

	prefix := 0
	for prefix < n && prefix < m && isSame(from[prefix], to[prefix]) {
		prefix++
	}
	suffix := 0
	for suffix < n-prefix && suffix < m-prefix && isSame(from[n-1-suffix], to[m-1-suffix]) {
		suffix++
	}

	var trace []tracePoint
	for i := 0; i < prefix; i++ {
		trace = append(trace, tracePoint{kind: traceMatch, x: i, y: i})
	}

	mid := lcsMiddle(from[prefix:n-suffix], to[prefix:m-suffix], isSame)
	for _, pt := range mid {
		pt.x += prefix
		pt.y += prefix
		trace = append(trace, pt)
	}

	for i := suffix; i > 0; i-- {
		trace = append(trace, tracePoint{kind: traceMatch, x: n - i, y: m - i})
	}
	return trace
}

// lcsMiddle computes the edit path for the changed middle of the inputs
// with a classic dynamic-programming LCS table. Backtracking prefers
// matches, then deletions, so the path is deterministic.
func lcsMiddle[T any](from, to []T, isSame MatchFunc[T]) []tracePoint {
	n, m := len(from), len(to)
	if n == 0 && m == 0 {
		return nil
	}

	table := make([][]int, n+1)
	for i := range table {
		table[i] = make([]int, m+1)
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if isSame(from[i-1], to[j-1]) {
				table[i][j] = table[i-1][j-1] + 1
			} else if table[i-1][j] >= table[i][j-1] {
				table[i][j] = table[i-1][j]
			} else {
				table[i][j] = table[i][j-1]
			}
		}
	}

	var reversed []tracePoint
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && isSame(from[i-1], to[j-1]) && table[i][j] == table[i-1][j-1]+1:
			reversed = append(reversed, tracePoint{kind: traceMatch, x: i - 1, y: j - 1})
			i--
			j--
		case i > 0 && (j == 0 || table[i-1][j] >= table[i][j-1]):
			reversed = append(reversed, tracePoint{kind: traceDelete, x: i - 1, y: -1})
			i--
		default:
			reversed = append(reversed, tracePoint{kind: traceInsert, x: -1, y: j - 1})
			j--
		}
	}

	for a, b := 0, len(reversed)-1; a < b; a, b = a+1, b-1 {
		reversed[a], reversed[b] = reversed[b], reversed[a]
	}
	return reversed
}
