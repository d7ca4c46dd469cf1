// Package tui provides a terminal list view that implements the
// binding.HostView collaborator: a scrollable, sectioned list that
// accepts atomic batches of structural edits and renders with lipgloss.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bindery/listbind-golang/binding"
	"github.com/bindery/listbind-golang/diff"
)

// RowSource is the data source the view pulls displayed content from.
// During a batch it must already serve the "after" snapshot, since
// inserted positions are addressed in after space; the binder
// guarantees this ordering.
type RowSource interface {
	SectionCount() int
	ItemCount(section int) int
	SectionTitle(section int) string
	RowText(section, row int) string
}

// rowOrigin is the position a displayed row had before the current
// batch. Inserted rows have no origin.
type rowOrigin struct {
	section int
	item    int
	valid   bool
}

type viewRow struct {
	text   string
	origin rowOrigin
	fresh  bool // inserted or updated by the last batch
}

type viewSection struct {
	title  string
	origin int // before-batch section index, -1 for inserted sections
	rows   []viewRow
}

// ListView is a live sectioned list. It owns its displayed structure
// independently of the data source so that a desynchronized binder is
// detected instead of silently repaired: every batch is validated
// against the displayed state and committed atomically, or rejected as
// a whole.
//
// Not safe for concurrent use; the owning goroutine drives it.
type ListView struct {
	source   RowSource
	styles   Styles
	sections []viewSection
}

// NewListView returns an empty view. The source may be set later with
// SetSource, but must be present before the first reload or batch.
func NewListView(source RowSource) *ListView {
	return &ListView{source: source, styles: DefaultStyles()}
}

// SetSource installs the data source. Used to resolve the construction
// cycle between a view, a binder and the source adapter between them.
func (v *ListView) SetSource(source RowSource) {
	v.source = source
}

// SetStyles replaces the render styles
func (v *ListView) SetStyles(styles Styles) {
	v.styles = styles
}

// SectionCount reports the number of sections currently displayed
func (v *ListView) SectionCount() int {
	return len(v.sections)
}

// ItemCount reports the number of rows currently displayed in a section
func (v *ListView) ItemCount(section int) int {
	if section < 0 || section >= len(v.sections) {
		return 0
	}
	return len(v.sections[section].rows)
}

// ReloadData rebuilds the entire displayed structure from the source,
// dropping incremental state
func (v *ListView) ReloadData() {
	sections := make([]viewSection, v.source.SectionCount())
	for i := range sections {
		sections[i] = viewSection{title: v.source.SectionTitle(i), origin: -1}
		rows := make([]viewRow, v.source.ItemCount(i))
		for j := range rows {
			rows[j] = viewRow{text: v.source.RowText(i, j)}
		}
		sections[i].rows = rows
	}
	v.sections = sections
	log.Debug("List view reloaded", "sections", len(sections))
}

// PerformBatch stages the edits apply issues, validates them against
// the displayed structure and commits them in one step. A batch that
// does not reconcile is discarded entirely and reported as an error.
func (v *ListView) PerformBatch(animation binding.Animation, apply func(binding.BatchTarget) error) error {
	staged := &stagedBatch{}
	if err := apply(staged); err != nil {
		return err
	}

	sections, err := v.commit(staged, animation)
	if err != nil {
		return fmt.Errorf("batch does not reconcile with displayed structure: %w", err)
	}
	v.sections = sections
	return nil
}

// stagedBatch records the operation groups of one batch
type stagedBatch struct {
	sectionsDeleted  []int
	sectionsInserted []int
	sectionsReloaded []int
	sectionMoves     []diff.SectionMove

	itemsDeleted  []diff.ItemPath
	itemsInserted []diff.ItemPath
	itemsReloaded []diff.ItemPath
	itemMoves     []diff.ItemMove
}

func (b *stagedBatch) DeleteSections(at []int) { b.sectionsDeleted = append(b.sectionsDeleted, at...) }
func (b *stagedBatch) InsertSections(at []int) { b.sectionsInserted = append(b.sectionsInserted, at...) }
func (b *stagedBatch) MoveSection(from, to int) {
	b.sectionMoves = append(b.sectionMoves, diff.SectionMove{From: from, To: to})
}
func (b *stagedBatch) ReloadSections(at []int) { b.sectionsReloaded = append(b.sectionsReloaded, at...) }
func (b *stagedBatch) DeleteItems(at []diff.ItemPath) {
	b.itemsDeleted = append(b.itemsDeleted, at...)
}
func (b *stagedBatch) InsertItems(at []diff.ItemPath) {
	b.itemsInserted = append(b.itemsInserted, at...)
}
func (b *stagedBatch) MoveItem(from, to diff.ItemPath) {
	b.itemMoves = append(b.itemMoves, diff.ItemMove{From: from, To: to})
}
func (b *stagedBatch) ReloadItems(at []diff.ItemPath) {
	b.itemsReloaded = append(b.itemsReloaded, at...)
}

// commit applies a staged batch to a working copy of the displayed
// structure and returns the new structure. Deletions, move origins and
// reload positions are interpreted in the before index space,
// insertions and move destinations in the after space. Any
// inconsistency aborts the whole batch.
func (v *ListView) commit(staged *stagedBatch, animation binding.Animation) ([]viewSection, error) {
	highlight := animation != binding.AnimationNone

	// Working copy, with every section and row tagged with its
	// before-batch position so reloads can find survivors afterwards.
	work := make([]viewSection, len(v.sections))
	for i, sec := range v.sections {
		rows := make([]viewRow, len(sec.rows))
		for j, row := range sec.rows {
			rows[j] = viewRow{text: row.text, origin: rowOrigin{section: i, item: j, valid: true}}
		}
		work[i] = viewSection{title: sec.title, origin: i, rows: rows}
	}

	// Row removals (deletes and move origins), before space.
	movedRows := make(map[diff.ItemPath]viewRow)
	removals := make(map[int][]int)
	seenRow := make(map[diff.ItemPath]bool)
	takeRow := func(path diff.ItemPath) (viewRow, error) {
		if path.Section < 0 || path.Section >= len(work) || path.Item < 0 || path.Item >= len(work[path.Section].rows) {
			return viewRow{}, fmt.Errorf("row %s does not exist", path)
		}
		if seenRow[path] {
			return viewRow{}, fmt.Errorf("row %s removed twice", path)
		}
		seenRow[path] = true
		removals[path.Section] = append(removals[path.Section], path.Item)
		return work[path.Section].rows[path.Item], nil
	}
	for _, path := range staged.itemsDeleted {
		if _, err := takeRow(path); err != nil {
			return nil, err
		}
	}
	for _, mv := range staged.itemMoves {
		row, err := takeRow(mv.From)
		if err != nil {
			return nil, err
		}
		movedRows[mv.From] = row
	}
	for section, items := range removals {
		sort.Sort(sort.Reverse(sort.IntSlice(items)))
		rows := work[section].rows
		for _, item := range items {
			rows = append(rows[:item], rows[item+1:]...)
		}
		work[section].rows = rows
	}

	// Section removals (deletes and move origins), before space.
	movedSections := make(map[int]viewSection)
	seenSection := make(map[int]bool)
	var sectionRemovals []int
	takeSection := func(at int) (viewSection, error) {
		if at < 0 || at >= len(work) {
			return viewSection{}, fmt.Errorf("section %d does not exist", at)
		}
		if seenSection[at] {
			return viewSection{}, fmt.Errorf("section %d removed twice", at)
		}
		seenSection[at] = true
		sectionRemovals = append(sectionRemovals, at)
		return work[at], nil
	}
	for _, at := range staged.sectionsDeleted {
		if _, err := takeSection(at); err != nil {
			return nil, err
		}
	}
	for _, mv := range staged.sectionMoves {
		sec, err := takeSection(mv.From)
		if err != nil {
			return nil, err
		}
		movedSections[mv.From] = sec
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sectionRemovals)))
	for _, at := range sectionRemovals {
		work = append(work[:at], work[at+1:]...)
	}

	// Section insertions (inserts and move destinations), after space.
	type sectionInsertion struct {
		at  int
		sec viewSection
	}
	var sectionInsertions []sectionInsertion
	for _, at := range staged.sectionsInserted {
		sectionInsertions = append(sectionInsertions, sectionInsertion{
			at:  at,
			sec: viewSection{title: v.source.SectionTitle(at), origin: -1},
		})
	}
	for _, mv := range staged.sectionMoves {
		sectionInsertions = append(sectionInsertions, sectionInsertion{at: mv.To, sec: movedSections[mv.From]})
	}
	sort.Slice(sectionInsertions, func(i, j int) bool { return sectionInsertions[i].at < sectionInsertions[j].at })
	for _, ins := range sectionInsertions {
		if ins.at < 0 || ins.at > len(work) {
			return nil, fmt.Errorf("section insertion at %d out of range", ins.at)
		}
		work = append(work[:ins.at], append([]viewSection{ins.sec}, work[ins.at:]...)...)
	}

	// Row insertions (inserts and move destinations), after space.
	type rowInsertion struct {
		at  diff.ItemPath
		row viewRow
	}
	var rowInsertions []rowInsertion
	for _, path := range staged.itemsInserted {
		rowInsertions = append(rowInsertions, rowInsertion{
			at:  path,
			row: viewRow{text: v.source.RowText(path.Section, path.Item), fresh: highlight},
		})
	}
	for _, mv := range staged.itemMoves {
		rowInsertions = append(rowInsertions, rowInsertion{at: mv.To, row: movedRows[mv.From]})
	}
	sort.Slice(rowInsertions, func(i, j int) bool {
		if rowInsertions[i].at.Section != rowInsertions[j].at.Section {
			return rowInsertions[i].at.Section < rowInsertions[j].at.Section
		}
		return rowInsertions[i].at.Item < rowInsertions[j].at.Item
	})
	for _, ins := range rowInsertions {
		if ins.at.Section < 0 || ins.at.Section >= len(work) {
			return nil, fmt.Errorf("row insertion into missing section %d", ins.at.Section)
		}
		rows := work[ins.at.Section].rows
		if ins.at.Item < 0 || ins.at.Item > len(rows) {
			return nil, fmt.Errorf("row insertion at %s out of range", ins.at)
		}
		work[ins.at.Section].rows = append(rows[:ins.at.Item], append([]viewRow{ins.row}, rows[ins.at.Item:]...)...)
	}

	// Reloads address before-space positions; the tagged origins locate
	// where those rows and sections ended up.
	for _, at := range staged.sectionsReloaded {
		found := false
		for i := range work {
			if work[i].origin == at {
				work[i].title = v.source.SectionTitle(i)
				rows := make([]viewRow, v.source.ItemCount(i))
				for j := range rows {
					rows[j] = viewRow{text: v.source.RowText(i, j), fresh: highlight}
				}
				work[i].rows = rows
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("reload of removed section %d", at)
		}
	}
	for _, path := range staged.itemsReloaded {
		found := false
		for i := range work {
			for j := range work[i].rows {
				if work[i].rows[j].origin == (rowOrigin{section: path.Section, item: path.Item, valid: true}) {
					work[i].rows[j].text = v.source.RowText(i, j)
					work[i].rows[j].fresh = highlight
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("reload of removed row %s", path)
		}
	}

	// The batch must land exactly on the shape the source now serves.
	if len(work) != v.source.SectionCount() {
		return nil, fmt.Errorf("section count after batch is %d, source serves %d", len(work), v.source.SectionCount())
	}
	for i := range work {
		if len(work[i].rows) != v.source.ItemCount(i) {
			return nil, fmt.Errorf("row count in section %d after batch is %d, source serves %d", i, len(work[i].rows), v.source.ItemCount(i))
		}
	}
	return work, nil
}

// Render returns the styled textual representation of the list
func (v *ListView) Render() string {
	if len(v.sections) == 0 {
		return v.styles.EmptyList.Render("(empty list)")
	}

	var b strings.Builder
	for i, sec := range v.sections {
		if i > 0 || sec.title != "" {
			b.WriteString(v.styles.SectionHeader.Render(sec.title))
			b.WriteString("\n")
		}
		for _, row := range sec.rows {
			style := v.styles.Row
			if row.fresh {
				style = v.styles.FreshRow
			}
			b.WriteString(style.Render(row.text))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RowTexts returns the displayed rows of one section, in order. Used
// by tests and diagnostics.
func (v *ListView) RowTexts(section int) []string {
	if section < 0 || section >= len(v.sections) {
		return nil
	}
	texts := make([]string, len(v.sections[section].rows))
	for i, row := range v.sections[section].rows {
		texts[i] = row.text
	}
	return texts
}

// SectionTitleAt returns the displayed title of one section
func (v *ListView) SectionTitleAt(section int) string {
	if section < 0 || section >= len(v.sections) {
		return ""
	}
	return v.sections[section].title
}
