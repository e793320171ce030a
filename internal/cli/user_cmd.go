package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/kanban/internal/cli/formatter"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users referenced by boards and tasks",
	}

	cmd.AddCommand(
		newUserListCmd(app),
		newUserAddCmd(app),
		newUserRemoveCmd(app),
	)

	return cmd
}

func newUserListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := app.Users.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			if len(users) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No users found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUserList(users))
			return nil
		},
	}
}

func newUserAddCmd(app *App) *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var emailPtr *string
			if cmd.Flags().Changed("email") {
				emailPtr = &email
			}
			u, err := app.Users.CreateUser(cmd.Context(), name, emailPtr)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Created user %s [%s]", u.Name, u.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address (unique)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newUserRemoveCmd(app *App) *cobra.Command {
	var reassignTo string
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Delete a user; owned boards need --reassign-to",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := resolveUserID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var target *string
			if reassignTo != "" {
				id, err := resolveUserID(ctx, app, reassignTo)
				if err != nil {
					return err
				}
				target = &id
			}

			prompt := fmt.Sprintf("Delete user %s? Their tasks keep no creator.", userID)
			if target != nil {
				prompt = fmt.Sprintf("Delete user %s and hand their boards to %s?", userID, *target)
			}
			ok, err := confirmDestructive(cmd, app, yes, prompt)
			if err != nil || !ok {
				return err
			}

			if err := app.Users.DeleteUser(ctx, userID, target); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Deleted user %s", userID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&reassignTo, "reassign-to", "", "Give the user's boards to this user")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
