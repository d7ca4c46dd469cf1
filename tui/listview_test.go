package tui

import (
	"strings"
	"testing"

	"github.com/bindery/listbind-golang/binding"
	"github.com/bindery/listbind-golang/diff"
)

// stubSource is a RowSource the tests swap to the "after" shape right
// before issuing a batch, the way the binder publishes the next
// snapshot before applying
type stubSource struct {
	titles []string
	rows   [][]string
}

func (s *stubSource) SectionCount() int { return len(s.titles) }
func (s *stubSource) ItemCount(section int) int {
	if section < 0 || section >= len(s.rows) {
		return 0
	}
	return len(s.rows[section])
}
func (s *stubSource) SectionTitle(section int) string { return s.titles[section] }
func (s *stubSource) RowText(section, row int) string { return s.rows[section][row] }

func loadedView(t *testing.T, source *stubSource) *ListView {
	t.Helper()
	view := NewListView(source)
	view.ReloadData()
	return view
}

func TestListViewReload(t *testing.T) {
	source := &stubSource{
		titles: []string{"Departures", "Arrivals"},
		rows:   [][]string{{"LX 14", "BA 711"}, {"AF 90"}},
	}
	view := loadedView(t, source)

	if view.SectionCount() != 2 {
		t.Fatalf("Expected 2 sections, got %d", view.SectionCount())
	}
	if view.ItemCount(0) != 2 || view.ItemCount(1) != 1 {
		t.Errorf("Unexpected item counts: %d, %d", view.ItemCount(0), view.ItemCount(1))
	}
	if view.SectionTitleAt(0) != "Departures" {
		t.Errorf("Unexpected title: %q", view.SectionTitleAt(0))
	}
	if got := view.RowTexts(1); len(got) != 1 || got[0] != "AF 90" {
		t.Errorf("Unexpected rows: %v", got)
	}
}

func TestListViewBatchInsertAndDelete(t *testing.T) {
	source := &stubSource{titles: []string{"A"}, rows: [][]string{{"a", "b", "c"}}}
	view := loadedView(t, source)

	// after: [a, c, d]
	source.rows = [][]string{{"a", "c", "d"}}
	err := view.PerformBatch(binding.AnimationFade, func(target binding.BatchTarget) error {
		target.DeleteItems([]diff.ItemPath{{Section: 0, Item: 1}})
		target.InsertItems([]diff.ItemPath{{Section: 0, Item: 2}})
		return nil
	})
	if err != nil {
		t.Fatalf("PerformBatch failed: %v", err)
	}

	got := view.RowTexts(0)
	want := []string{"a", "c", "d"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Row %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestListViewSectionMoveCarriesRows(t *testing.T) {
	source := &stubSource{
		titles: []string{"A", "B"},
		rows:   [][]string{{"a1", "a2"}, {"b1"}},
	}
	view := loadedView(t, source)

	// after: B first, A second
	source.titles = []string{"B", "A"}
	source.rows = [][]string{{"b1"}, {"a1", "a2"}}
	err := view.PerformBatch(binding.AnimationNone, func(target binding.BatchTarget) error {
		target.MoveSection(1, 0)
		return nil
	})
	if err != nil {
		t.Fatalf("PerformBatch failed: %v", err)
	}

	if view.SectionTitleAt(0) != "B" || view.SectionTitleAt(1) != "A" {
		t.Errorf("Unexpected section order: %q, %q", view.SectionTitleAt(0), view.SectionTitleAt(1))
	}
	if got := view.RowTexts(1); len(got) != 2 || got[0] != "a1" {
		t.Errorf("Moved section lost its rows: %v", got)
	}
}

func TestListViewMovedSectionWithInternalInsert(t *testing.T) {
	source := &stubSource{
		titles: []string{"A", "B"},
		rows:   [][]string{{"a1", "a2"}, {"b1"}},
	}
	view := loadedView(t, source)

	// after: B first; A second with a new row between a1 and a2
	source.titles = []string{"B", "A"}
	source.rows = [][]string{{"b1"}, {"a1", "a3", "a2"}}
	err := view.PerformBatch(binding.AnimationNone, func(target binding.BatchTarget) error {
		target.MoveSection(1, 0)
		target.InsertItems([]diff.ItemPath{{Section: 1, Item: 1}})
		return nil
	})
	if err != nil {
		t.Fatalf("PerformBatch failed: %v", err)
	}

	got := view.RowTexts(1)
	want := []string{"a1", "a3", "a2"}
	if len(got) != 3 {
		t.Fatalf("Expected 3 rows, got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Row %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestListViewReloadItemsTracksShiftedRows(t *testing.T) {
	source := &stubSource{titles: []string{"A"}, rows: [][]string{{"a", "b", "c"}}}
	view := loadedView(t, source)

	// after: first row gone, second row updated in place
	source.rows = [][]string{{"b2", "c"}}
	err := view.PerformBatch(binding.AnimationFade, func(target binding.BatchTarget) error {
		target.DeleteItems([]diff.ItemPath{{Section: 0, Item: 0}})
		target.ReloadItems([]diff.ItemPath{{Section: 0, Item: 1}})
		return nil
	})
	if err != nil {
		t.Fatalf("PerformBatch failed: %v", err)
	}

	got := view.RowTexts(0)
	if len(got) != 2 || got[0] != "b2" || got[1] != "c" {
		t.Errorf("Reload addressed the wrong row: %v", got)
	}
}

func TestListViewRejectsOutOfBoundsBatch(t *testing.T) {
	source := &stubSource{titles: []string{"A"}, rows: [][]string{{"a"}}}
	view := loadedView(t, source)

	err := view.PerformBatch(binding.AnimationNone, func(target binding.BatchTarget) error {
		target.DeleteItems([]diff.ItemPath{{Section: 0, Item: 7}})
		return nil
	})
	if err == nil {
		t.Fatal("Expected the batch to be rejected")
	}
	if got := view.RowTexts(0); len(got) != 1 || got[0] != "a" {
		t.Errorf("Rejected batch must not mutate the view, got %v", got)
	}
}

func TestListViewRejectsBatchWithWrongFinalShape(t *testing.T) {
	source := &stubSource{titles: []string{"A"}, rows: [][]string{{"a", "b"}}}
	view := loadedView(t, source)

	// The source still serves two rows, but the batch deletes one
	// without a matching insert: the shapes cannot reconcile
	err := view.PerformBatch(binding.AnimationNone, func(target binding.BatchTarget) error {
		target.DeleteItems([]diff.ItemPath{{Section: 0, Item: 0}})
		return nil
	})
	if err == nil {
		t.Fatal("Expected the batch to be rejected")
	}
	if view.ItemCount(0) != 2 {
		t.Errorf("Rejected batch must not mutate the view, got %d rows", view.ItemCount(0))
	}
}

func TestListViewRenderShowsSectionsAndRows(t *testing.T) {
	source := &stubSource{titles: []string{"Departures"}, rows: [][]string{{"LX 14"}}}
	view := loadedView(t, source)

	rendered := view.Render()
	if !strings.Contains(rendered, "Departures") || !strings.Contains(rendered, "LX 14") {
		t.Errorf("Render output missing content:\n%s", rendered)
	}

	empty := NewListView(&stubSource{})
	empty.ReloadData()
	if !strings.Contains(empty.Render(), "empty") {
		t.Errorf("Empty view should say so, got %q", empty.Render())
	}
}
