package cli

import (
	"github.com/spf13/cobra"

	"til-cli/internal/api"
)

func newCardsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Card commands",
	}
	cmd.AddCommand(newCardsListCmd(app))
	cmd.AddCommand(newCardsCreateCmd(app))
	cmd.AddCommand(newCardsUpdateCmd(app))
	cmd.AddCommand(newCardsMoveCmd(app))
	cmd.AddCommand(newCardsDeleteCmd(app))
	return cmd
}

func newCardsListCmd(app *App) *cobra.Command {
	var projectID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all cards in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, sess, err := app.connectAuthed()
			if err != nil {
				return writeErr(cmd, err)
			}
			if projectID == 0 {
				projectID = sess.Config().SelectedProjectID
			}
			if projectID == 0 {
				return writeErr(cmd, errNoProject)
			}
			cards, err := client.CardsByProject(cmd.Context(), projectID)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": cards})
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Project id (default: selected project)")
	return cmd
}

func newCardsCreateCmd(app *App) *cobra.Command {
	var columnID int64
	var title, content string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a card at the end of a column",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.connectAuthed()
			if err != nil {
				return writeErr(cmd, err)
			}
			card, err := client.CreateCard(cmd.Context(), columnID, api.CardCreate{
				Title:   title,
				Content: content,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": card})
		},
	}

	cmd.Flags().Int64Var(&columnID, "column", 0, "Column id")
	cmd.Flags().StringVar(&title, "title", "", "Card title")
	cmd.Flags().StringVar(&content, "content", "", "Card body (markdown)")
	_ = cmd.MarkFlagRequired("column")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newCardsUpdateCmd(app *App) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "update <card-id>",
		Short: "Update card fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "card")
			if err != nil {
				return writeErr(cmd, err)
			}
			client, _, err := app.connectAuthed()
			if err != nil {
				return writeErr(cmd, err)
			}
			var req api.CardUpdate
			if cmd.Flags().Changed("title") {
				req.Title = &title
			}
			if cmd.Flags().Changed("content") {
				req.Content = &content
			}
			card, err := client.UpdateCard(cmd.Context(), id, req)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": card})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New body")
	return cmd
}

func newCardsMoveCmd(app *App) *cobra.Command {
	var columnID int64
	var position int

	cmd := &cobra.Command{
		Use:   "move <card-id>",
		Short: "Move a card to a column and slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "card")
			if err != nil {
				return writeErr(cmd, err)
			}
			client, _, err := app.connectAuthed()
			if err != nil {
				return writeErr(cmd, err)
			}
			req := api.CardShift{NewColumnID: columnID, NewPosition: position}
			if err := client.ShiftCard(cmd.Context(), id, req); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"cardId":      id,
				"newColumnId": columnID,
				"newPosition": position,
			}})
		},
	}

	cmd.Flags().Int64Var(&columnID, "column", 0, "Destination column id")
	cmd.Flags().IntVar(&position, "position", 0, "Destination slot (0-based)")
	_ = cmd.MarkFlagRequired("column")
	return cmd
}

func newCardsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <card-id>",
		Short: "Delete a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "card")
			if err != nil {
				return writeErr(cmd, err)
			}
			client, _, err := app.connectAuthed()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.DeleteCard(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]int64{"deleted": id}})
		},
	}
}
