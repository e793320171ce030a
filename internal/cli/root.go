package cli

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/kanban/internal/service"
)

// App holds the services and process hooks used by CLI commands.
type App struct {
	Boards  service.BoardService
	Columns service.ColumnService
	Tasks   service.TaskService
	Users   service.UserService

	// DefaultUser is the acting identity when --as is not given.
	DefaultUser string

	// Serve runs the HTTP API on addr until ctx is cancelled. When nil the
	// serve command reports that the server is not available.
	Serve       func(ctx context.Context, addr string) error
	DefaultAddr string

	// IsInteractive reports whether stdin is a terminal. Confirmation
	// prompts are only shown when it returns true.
	IsInteractive func() bool

	// Confirm asks a yes/no question. Defaults to a huh confirmation form.
	Confirm func(prompt string) (bool, error)

	// RunTUI runs a bubbletea model to completion. Defaults to a full
	// screen tea.Program.
	RunTUI func(m tea.Model) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) confirm(prompt string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm(prompt)
	}
	return runConfirm(prompt)
}

func (a *App) runTUI(m tea.Model) error {
	if a.RunTUI != nil {
		return a.RunTUI(m)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// NewRootCmd creates the top-level "kanban" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "kanban",
		Short:         "Kanban boards with ordered columns and tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetGlobalNormalizationFunc(normalizeFlagName)
	root.PersistentFlags().String("as", "", "Act as this user ID (defaults to KANBAN_USER / default_user)")

	root.AddCommand(
		newBoardCmd(app),
		newColumnCmd(app),
		newTaskCmd(app),
		newUserCmd(app),
		newServeCmd(app),
	)

	return root
}

// actingUser returns --as when set, else the configured default user.
func actingUser(cmd *cobra.Command, app *App) string {
	if as, err := cmd.Flags().GetString("as"); err == nil && strings.TrimSpace(as) != "" {
		return strings.TrimSpace(as)
	}
	return app.DefaultUser
}

// flagAliases maps long spellings onto the registered flag names.
var flagAliases = map[string]string{
	"description": "desc",
	"ordinal":     "order",
	"reassign":    "reassign-to",
}

// normalizeFlagName accepts underscores in place of dashes and a few long
// spellings, so --reassign_to and --description work too.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	name = strings.ReplaceAll(name, "_", "-")
	if alias, ok := flagAliases[name]; ok {
		name = alias
	}
	return pflag.NormalizedName(name)
}
