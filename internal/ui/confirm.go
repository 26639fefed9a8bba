package ui

import (
	"errors"

	"github.com/charmbracelet/huh"

	"github.com/renato0307/cc-orchestrator/internal/logging"
)

// Confirm asks a yes/no question on the terminal. Aborting the prompt
// (esc or ctrl+c) counts as "no".
func Confirm(title, description string) (bool, error) {
	var confirmed bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			logging.Logger.Info("Confirmation aborted", "title", title)
			return false, nil
		}
		return false, err
	}

	logging.Logger.Debug("Confirmation answered", "title", title, "confirmed", confirmed)
	return confirmed, nil
}
