// Command listbind-demo drives a terminal departure board through a
// scripted sequence of snapshots, showing incremental list updates:
// rows appear, change status, move between sections and disappear
// without the board ever reloading wholesale after the first frame.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/bindery/listbind-golang/binding"
	"github.com/bindery/listbind-golang/diff"
	"github.com/bindery/listbind-golang/tui"
)

type flight struct {
	Number string
	Gate   string
	Status string
}

func sameFlight(a, b flight) bool { return a.Number == b.Number }

// boardSource adapts the binder's generic data source to the text rows
// the list view renders
type boardSource struct {
	binder *binding.Binder[string, flight]
}

func (s boardSource) SectionCount() int         { return s.binder.SectionCount() }
func (s boardSource) ItemCount(section int) int { return s.binder.ItemCount(section) }

func (s boardSource) SectionTitle(section int) string {
	id, _ := s.binder.SectionID(section)
	return id
}

func (s boardSource) RowText(section, row int) string {
	f, err := binding.ItemAs[flight](s.binder.Current(), diff.ItemPath{Section: section, Item: row})
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return fmt.Sprintf("%-8s gate %-3s %s", f.Number, f.Gate, f.Status)
}

// snapshotMsg carries the next snapshot into the UI goroutine; the
// binder must only ever run there
type snapshotMsg struct {
	snap binding.Snapshot[string, flight]
}

type app struct {
	tui.Model
	binder *binding.Binder[string, flight]
}

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m, ok := msg.(snapshotMsg); ok {
		if err := a.binder.Update(m.snap); err != nil {
			log.Errorf("Failed to apply snapshot: %v", err)
		}
		inner, cmd := a.Model.Update(tui.RefreshMsg{})
		a.Model = inner.(tui.Model)
		return a, cmd
	}

	inner, cmd := a.Model.Update(msg)
	a.Model = inner.(tui.Model)
	return a, cmd
}

func snapshots() []binding.Snapshot[string, flight] {
	return []binding.Snapshot[string, flight]{
		binding.NewSnapshot(
			binding.NewSection("Boarding",
				flight{"LX 14", "A12", "boarding"},
				flight{"BA 711", "B03", "boarding"},
			),
			binding.NewSection("Scheduled",
				flight{"AF 90", "C22", "on time"},
				flight{"KL 1953", "C24", "on time"},
			),
		),
		binding.NewSnapshot(
			binding.NewSection("Boarding",
				flight{"BA 711", "B03", "final call"},
				flight{"AF 90", "C22", "boarding"},
			),
			binding.NewSection("Scheduled",
				flight{"KL 1953", "C24", "delayed"},
				flight{"UA 988", "D01", "on time"},
			),
			binding.NewSection("Departed",
				flight{"LX 14", "A12", "departed"},
			),
		),
		binding.NewSnapshot(
			binding.NewSection("Departed",
				flight{"LX 14", "A12", "departed"},
				flight{"BA 711", "B03", "departed"},
			),
			binding.NewSection("Boarding",
				flight{"AF 90", "C22", "final call"},
				flight{"KL 1953", "C24", "boarding"},
			),
			binding.NewSection("Scheduled",
				flight{"UA 988", "D01", "on time"},
			),
		),
	}
}

func produce(p *tea.Program) {
	for _, snap := range snapshots() {
		p.Send(snapshotMsg{snap: snap})
		time.Sleep(2 * time.Second)
	}
}

func main() {
	if path := os.Getenv("LISTBIND_DEBUG"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open debug log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetOutput(io.Discard)
	}

	view := tui.NewListView(nil)
	binder := binding.NewBinder[string, flight](view, binding.NewOracle[string](sameFlight))
	view.SetSource(boardSource{binder: binder})
	defer binder.Close()

	model := app{Model: tui.NewModel(view), binder: binder}
	model.Title = "Departures"

	p := tea.NewProgram(model, tea.WithAltScreen())
	go produce(p)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "demo failed: %v\n", err)
		os.Exit(1)
	}
}
