package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/kanban/internal/cli/formatter"
	"github.com/alexanderramin/kanban/internal/domain"
	"github.com/alexanderramin/kanban/internal/service"
)

func newBoardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Manage boards",
	}

	cmd.AddCommand(
		newBoardListCmd(app),
		newBoardAddCmd(app),
		newBoardShowCmd(app),
		newBoardUpdateCmd(app),
		newBoardRemoveCmd(app),
	)

	return cmd
}

func newBoardListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List boards, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			boards, err := app.Boards.ListBoards(cmd.Context())
			if err != nil {
				return err
			}
			if len(boards) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No boards found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBoardList(boards))
			return nil
		},
	}
}

func newBoardAddCmd(app *App) *cobra.Command {
	var name, desc, owner string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if owner == "" {
				owner = actingUser(cmd, app)
			}
			if owner == "" {
				return fmt.Errorf("owner is required: pass --owner or --as, or set KANBAN_USER")
			}
			ownerID, err := resolveUserID(ctx, app, owner)
			if err != nil {
				return err
			}

			in := service.CreateBoardInput{Name: name, OwnerID: ownerID}
			if cmd.Flags().Changed("desc") {
				in.Description = &desc
			}
			b, err := app.Boards.CreateBoard(ctx, in)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Created board %s [%s]", b.Name, b.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Board name")
	cmd.Flags().StringVar(&desc, "desc", "", "Board description")
	cmd.Flags().StringVar(&owner, "owner", "", "Owner user ID, ID prefix or name (defaults to the acting user)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newBoardShowCmd(app *App) *cobra.Command {
	var tui bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a board with its columns and tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			boardID, err := resolveBoardID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if tui {
				return app.runTUI(newBoardViewer(app, boardID))
			}

			view, err := app.Boards.GetBoardDetail(ctx, boardID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBoardView(view, 0))
			return nil
		},
	}

	cmd.Flags().BoolVar(&tui, "tui", false, "Open the interactive board viewer")

	return cmd
}

func newBoardUpdateCmd(app *App) *cobra.Command {
	var name, desc string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Rename a board or change its description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			boardID, err := resolveBoardID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var patch domain.BoardPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("desc") {
				patch.Description = &desc
			}

			b, err := app.Boards.UpdateBoard(ctx, boardID, patch)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Updated board %s", b.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New board name")
	cmd.Flags().StringVar(&desc, "desc", "", "New description (empty clears it)")

	return cmd
}

func newBoardRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Delete a board with all of its columns and tasks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			boardID, err := resolveBoardID(ctx, app, args[0])
			if err != nil {
				return err
			}
			view, err := app.Boards.GetBoardDetail(ctx, boardID)
			if err != nil {
				return err
			}

			prompt := fmt.Sprintf("Delete board %q with %d column(s) and %d task(s)?",
				view.Name, len(view.Columns), view.TaskCount())
			ok, err := confirmDestructive(cmd, app, yes, prompt)
			if err != nil || !ok {
				return err
			}

			if err := app.Boards.DeleteBoard(ctx, boardID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Deleted board %s", view.Name)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
