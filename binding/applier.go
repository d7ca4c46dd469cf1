package binding

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/bindery/listbind-golang/diff"
)

// Diagnostic describes a recovered apply failure. It is surfaced to the
// caller as an event, never as a hard error: by the time the handler
// runs the view has already been reloaded (or deliberately skipped).
type Diagnostic struct {
	Cycle  string       // ULID of the update cycle that failed
	Reason string       // Why the batch could not be applied
	Err    error        // The host's rejection error, when there is one
	Choice ReloadChoice // How the failure was resolved
}

// Applier translates an edit script into one atomic batch against a
// live host, with pre-batch validation and reload fallback. The zero
// value uses AutoResolver and no diagnostic handler.
type Applier struct {
	Resolver     ReloadResolver
	OnDiagnostic func(Diagnostic)
}

// Apply issues the script against host inside a single batch. before is
// the structural shape of the snapshot the script's delete-space
// indices refer to; when the host's displayed structure disagrees with
// it the batch is not attempted at all. Any failure is recovered by a
// full reload (or skipped, when a resolver says so) and reported
// through OnDiagnostic. The returned error is non-nil only when the
// resolver itself failed.
func (a *Applier) Apply(host HostView, script *diff.EditScript, before Counts, cycle string, animation Animation) error {
	if script.Empty() {
		log.Debug("Nothing to apply", "cycle", cycle)
		return nil
	}

	if reason := a.validate(host, before); reason != "" {
		return a.recover(host, cycle, reason, nil)
	}

	err := host.PerformBatch(animation, func(target BatchTarget) error {
		if len(script.SectionsDeleted) > 0 {
			target.DeleteSections(script.SectionsDeleted)
		}
		if len(script.SectionsInserted) > 0 {
			target.InsertSections(script.SectionsInserted)
		}
		for _, mv := range script.SectionsMoved {
			target.MoveSection(mv.From, mv.To)
		}
		if len(script.SectionsUpdated) > 0 {
			target.ReloadSections(script.SectionsUpdated)
		}
		if len(script.ItemsDeleted) > 0 {
			target.DeleteItems(script.ItemsDeleted)
		}
		if len(script.ItemsInserted) > 0 {
			target.InsertItems(script.ItemsInserted)
		}
		for _, mv := range script.ItemsMoved {
			target.MoveItem(mv.From, mv.To)
		}
		if len(script.ItemsUpdated) > 0 {
			target.ReloadItems(script.ItemsUpdated)
		}
		return nil
	})
	if err != nil {
		return a.recover(host, cycle, "host rejected batch", err)
	}

	log.Debug("Batch applied", "cycle", cycle, "operations", script.Len())
	return nil
}

// validate compares the host's displayed structure against the shape
// the edit script was computed from. An empty string means they agree.
func (a *Applier) validate(host HostView, before Counts) string {
	if got := host.SectionCount(); got != len(before) {
		return fmt.Sprintf("section count mismatch: host shows %d, model expects %d", got, len(before))
	}
	for section, want := range before {
		if got := host.ItemCount(section); got != want {
			return fmt.Sprintf("item count mismatch in section %d: host shows %d, model expects %d", section, got, want)
		}
	}
	return ""
}

// recover resolves a failed batch. The host has not committed anything
// at this point, so a reload is always a clean recovery.
func (a *Applier) recover(host HostView, cycle string, reason string, batchErr error) error {
	resolver := a.Resolver
	if resolver == nil {
		resolver = AutoResolver{}
	}

	choice, err := resolver.ResolveApplyFailure(cycle, reason, batchErr)
	if err != nil {
		return fmt.Errorf("failed to resolve apply failure: %w", err)
	}

	if choice == ChoiceReload {
		host.ReloadData()
	}

	if a.OnDiagnostic != nil {
		a.OnDiagnostic(Diagnostic{Cycle: cycle, Reason: reason, Err: batchErr, Choice: choice})
	}
	return nil
}
