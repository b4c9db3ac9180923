package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"til-cli/internal/api"
)

func newColumnsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Kanban column commands",
	}
	cmd.AddCommand(newColumnsListCmd(app))
	cmd.AddCommand(newColumnsCreateCmd(app))
	cmd.AddCommand(newColumnsUpdateCmd(app))
	cmd.AddCommand(newColumnsReorderCmd(app))
	cmd.AddCommand(newColumnsDeleteCmd(app))
	return cmd
}

func newColumnsListCmd(app *App) *cobra.Command {
	var boardID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a board's columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.connectAuthed()
			if err != nil {
				return writeErr(cmd, err)
			}
			cols, err := client.ColumnsByBoard(cmd.Context(), boardID)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": cols})
		},
	}

	cmd.Flags().Int64Var(&boardID, "board", 0, "Board id")
	_ = cmd.MarkFlagRequired("board")
	return cmd
}

func newColumnsCreateCmd(app *App) *cobra.Command {
	var boardID int64
	var title string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Append a column to a board",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.connectAuthed()
			if err != nil {
				return writeErr(cmd, err)
			}
			col, err := client.CreateColumn(cmd.Context(), boardID, api.ColumnCreate{Title: title})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": col})
		},
	}

	cmd.Flags().Int64Var(&boardID, "board", 0, "Board id")
	cmd.Flags().StringVar(&title, "title", "", "Column title")
	_ = cmd.MarkFlagRequired("board")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newColumnsUpdateCmd(app *App) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "update <column-id>",
		Short: "Rename a column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "column")
			if err != nil {
				return writeErr(cmd, err)
			}
			client, _, err := app.connectAuthed()
			if err != nil {
				return writeErr(cmd, err)
			}
			var req api.ColumnUpdate
			if cmd.Flags().Changed("title") {
				req.Title = &title
			}
			col, err := client.UpdateColumn(cmd.Context(), id, req)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": col})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	return cmd
}

func newColumnsReorderCmd(app *App) *cobra.Command {
	var boardID int64

	cmd := &cobra.Command{
		Use:   "reorder <column-id>...",
		Short: "Replace a board's column order with the given id sequence",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := parseID(strings.TrimSuffix(arg, ","), "column")
				if err != nil {
					return writeErr(cmd, err)
				}
				ids = append(ids, id)
			}
			client, _, err := app.connectAuthed()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.ReorderColumns(cmd.Context(), boardID, ids); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": ids})
		},
	}

	cmd.Flags().Int64Var(&boardID, "board", 0, "Board id")
	_ = cmd.MarkFlagRequired("board")
	return cmd
}

func newColumnsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <column-id>",
		Short: "Delete a column and its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "column")
			if err != nil {
				return writeErr(cmd, err)
			}
			client, _, err := app.connectAuthed()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.DeleteColumn(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]int64{"deleted": id}})
		},
	}
}
