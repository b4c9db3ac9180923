package cli

import (
	"github.com/spf13/cobra"

	"til-cli/internal/api"
)

func newBoardsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boards",
		Short: "Board commands",
	}
	cmd.AddCommand(newBoardsShowCmd(app))
	cmd.AddCommand(newBoardsCreateCmd(app))
	cmd.AddCommand(newBoardsUpdateCmd(app))
	cmd.AddCommand(newBoardsDeleteCmd(app))
	return cmd
}

func newBoardsShowCmd(app *App) *cobra.Command {
	var projectID, boardID int64

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one board",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.connectAuthed()
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := client.Board(cmd.Context(), projectID, boardID)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": b})
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Project id")
	cmd.Flags().Int64Var(&boardID, "board", 0, "Board id")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("board")
	return cmd
}

func newBoardsCreateCmd(app *App) *cobra.Command {
	var projectID int64
	var title string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a board in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.connectAuthed()
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := client.CreateBoard(cmd.Context(), projectID, api.BoardCreate{Title: title})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": b})
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Project id")
	cmd.Flags().StringVar(&title, "title", "", "Board title")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newBoardsUpdateCmd(app *App) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "update <board-id>",
		Short: "Update board fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "board")
			if err != nil {
				return writeErr(cmd, err)
			}
			client, _, err := app.connectAuthed()
			if err != nil {
				return writeErr(cmd, err)
			}
			var req api.BoardUpdate
			if cmd.Flags().Changed("title") {
				req.Title = &title
			}
			b, err := client.UpdateBoard(cmd.Context(), id, req)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": b})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	return cmd
}

func newBoardsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <board-id>",
		Short: "Delete a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "board")
			if err != nil {
				return writeErr(cmd, err)
			}
			client, _, err := app.connectAuthed()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.DeleteBoard(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]int64{"deleted": id}})
		},
	}
}
