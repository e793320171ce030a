package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/kanban/internal/cli/formatter"
	"github.com/alexanderramin/kanban/internal/domain"
)

func newColumnCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "column",
		Short: "Manage board columns",
	}

	cmd.AddCommand(
		newColumnAddCmd(app),
		newColumnUpdateCmd(app),
		newColumnRemoveCmd(app),
	)

	return cmd
}

func newColumnAddCmd(app *App) *cobra.Command {
	var board, name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a column to a board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			boardID, err := resolveBoardID(ctx, app, board)
			if err != nil {
				return err
			}
			c, err := app.Columns.CreateColumn(ctx, boardID, name)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(
				fmt.Sprintf("Created column %s %s [%s]", c.Name, formatter.OrderBadge(c.Ordinal), c.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&board, "board", "", "Board ID or unique prefix")
	cmd.Flags().StringVar(&name, "name", "", "Column name")
	_ = cmd.MarkFlagRequired("board")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newColumnUpdateCmd(app *App) *cobra.Command {
	var name string
	var order int

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Rename a column or set its order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.ColumnPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("order") {
				patch.Ordinal = &order
			}

			c, err := app.Columns.UpdateColumn(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(
				fmt.Sprintf("Updated column %s %s", c.Name, formatter.OrderBadge(c.Ordinal))))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New column name")
	cmd.Flags().IntVar(&order, "order", 0, "New order value (non-negative)")

	return cmd
}

func newColumnRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Delete a column and its tasks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := app.Columns.GetColumn(ctx, args[0])
			if err != nil {
				return err
			}

			ok, err := confirmDestructive(cmd, app, yes, fmt.Sprintf("Delete column %q and its tasks?", c.Name))
			if err != nil || !ok {
				return err
			}

			if err := app.Columns.DeleteColumn(ctx, c.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Deleted column %s", c.Name)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
