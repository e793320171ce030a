package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/kanban/internal/cli/formatter"
)

// kanbanHuhTheme matches huh forms to the formatter palette.
func kanbanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorRed).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// confirmForm builds a yes/no form writing the answer into result.
func confirmForm(prompt string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Delete").
				Negative("Cancel").
				Value(result),
		),
	).WithTheme(kanbanHuhTheme()).WithShowHelp(false)
}

func runConfirm(prompt string) (bool, error) {
	var ok bool
	if err := confirmForm(prompt, &ok).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// confirmDestructive asks before a delete on interactive terminals. --yes
// and non-interactive runs skip the prompt.
func confirmDestructive(cmd *cobra.Command, app *App, yes bool, prompt string) (bool, error) {
	if yes || !app.interactive() {
		return true, nil
	}
	ok, err := app.confirm(prompt)
	if err != nil {
		return false, fmt.Errorf("confirmation: %w", err)
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Aborted."))
	}
	return ok, nil
}
