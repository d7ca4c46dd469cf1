package binding

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
)

// ReloadChoice is what to do after the host rejected a batch
type ReloadChoice string

const (
	ChoiceReload ReloadChoice = "reload" // Fall back to a full non-animated reload
	ChoiceSkip   ReloadChoice = "skip"   // Leave the view as it is (may display stale structure)
)

// ReloadResolver decides how to recover when the host rejects a batch
// or the pre-batch validation fails. reason describes the failure;
// batchErr is the host's error when there is one.
type ReloadResolver interface {
	ResolveApplyFailure(cycle string, reason string, batchErr error) (ReloadChoice, error)
}

// AutoResolver always falls back to a full reload. This is the default:
// the view must never be left in a partially-applied state, and a
// reload is the one recovery that cannot be wrong.
type AutoResolver struct{}

func (AutoResolver) ResolveApplyFailure(cycle string, reason string, batchErr error) (ReloadChoice, error) {
	log.Warnf("Update %s could not be applied incrementally (%s), falling back to full reload", cycle, reason)
	return ChoiceReload, nil
}

// InteractiveResolver prompts the user for the recovery choice. Meant
// for development tooling where a silent reload would hide the bug that
// desynchronized the view.
type InteractiveResolver struct{}

func (InteractiveResolver) ResolveApplyFailure(cycle string, reason string, batchErr error) (ReloadChoice, error) {
	description := reason
	if batchErr != nil {
		description = fmt.Sprintf("%s: %v", reason, batchErr)
	}

	var choice string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("The list view rejected update %s. How should it recover?", cycle)).
				Description(description).
				Options(
					huh.NewOption("Reload the whole list (no animation)", "reload"),
					huh.NewOption("Skip this update (view keeps stale structure)", "skip"),
				).
				Value(&choice),
		),
	)

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("failed to get user input for reload resolution: %v", err)
	}

	switch choice {
	case "reload":
		log.Infof("User chose to reload after failed update %s", cycle)
		return ChoiceReload, nil
	case "skip":
		log.Infof("User chose to skip failed update %s", cycle)
		return ChoiceSkip, nil
	default:
		return "", fmt.Errorf("unexpected choice: %s", choice)
	}
}
