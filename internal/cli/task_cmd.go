package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/kanban/internal/cli/formatter"
	"github.com/alexanderramin/kanban/internal/domain"
	"github.com/alexanderramin/kanban/internal/service"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskUpdateCmd(app),
		newTaskMoveCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

// readImageFile loads an image for upload. The image store sniffs the
// content type.
func readImageFile(path string) (*domain.ImageUpload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image %s: %w", path, err)
	}
	return &domain.ImageUpload{Data: data}, nil
}

func newTaskAddCmd(app *App) *cobra.Command {
	var column, title, desc, creator, image string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a task to a column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in := service.CreateTaskInput{ColumnID: column, Title: title}
			if cmd.Flags().Changed("desc") {
				in.Description = &desc
			}

			if creator == "" {
				creator = actingUser(cmd, app)
			}
			if creator != "" {
				creatorID, err := resolveUserID(ctx, app, creator)
				if err != nil {
					return err
				}
				in.CreatorID = &creatorID
			}

			if image != "" {
				upload, err := readImageFile(image)
				if err != nil {
					return err
				}
				in.Image = upload
			}

			t, err := app.Tasks.CreateTask(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(
				fmt.Sprintf("Created task %s %s [%s]", t.Title, formatter.OrderBadge(t.Ordinal), t.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "Column ID")
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&desc, "desc", "", "Task description")
	cmd.Flags().StringVar(&creator, "creator", "", "Creator user ID, prefix or name (defaults to the acting user)")
	cmd.Flags().StringVar(&image, "image", "", "Attach an image file")
	_ = cmd.MarkFlagRequired("column")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var title, desc, column, image string
	var order int
	var removeImage bool

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Edit a task; a different --column moves it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.TaskPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("desc") {
				patch.Description = &desc
			}
			if cmd.Flags().Changed("column") {
				patch.ColumnID = &column
			}
			if cmd.Flags().Changed("order") {
				patch.Ordinal = &order
			}
			switch {
			case image != "":
				upload, err := readImageFile(image)
				if err != nil {
					return err
				}
				patch.Image = domain.ImagePatch{Action: domain.ImageReplace, Upload: upload}
			case removeImage:
				patch.Image = domain.ImagePatch{Action: domain.ImageRemove}
			}

			t, err := app.Tasks.UpdateTask(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(
				fmt.Sprintf("Updated task %s %s", t.Title, formatter.OrderBadge(t.Ordinal))))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&desc, "desc", "", "New description (empty clears it)")
	cmd.Flags().StringVar(&column, "column", "", "Move to this column")
	cmd.Flags().IntVar(&order, "order", 0, "New order value (non-negative)")
	cmd.Flags().StringVar(&image, "image", "", "Replace the image with this file")
	cmd.Flags().BoolVar(&removeImage, "remove-image", false, "Remove the image")
	cmd.MarkFlagsMutuallyExclusive("image", "remove-image")

	return cmd
}

func newTaskMoveCmd(app *App) *cobra.Command {
	var column string
	var order int

	cmd := &cobra.Command{
		Use:   "move ID",
		Short: "Move a task to a column, at the end unless --order is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ordinal *int
			if cmd.Flags().Changed("order") {
				ordinal = &order
			}
			t, err := app.Tasks.MoveTask(cmd.Context(), args[0], column, ordinal)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(
				fmt.Sprintf("Moved task %s to %s %s", t.Title, t.ColumnID, formatter.OrderBadge(t.Ordinal))))
			return nil
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "Destination column ID")
	cmd.Flags().IntVar(&order, "order", 0, "Order value in the destination column")
	_ = cmd.MarkFlagRequired("column")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := app.Tasks.GetTask(ctx, args[0])
			if err != nil {
				return err
			}

			ok, err := confirmDestructive(cmd, app, yes, fmt.Sprintf("Delete task %q?", t.Title))
			if err != nil || !ok {
				return err
			}

			if err := app.Tasks.DeleteTask(ctx, t.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Deleted task %s", t.Title)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
