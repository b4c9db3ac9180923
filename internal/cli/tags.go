package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"til-cli/internal/api"
	"til-cli/internal/model"
)

func newTagsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Tag commands",
	}
	cmd.AddCommand(newTagsListCmd(app))
	cmd.AddCommand(newTagsCreateCmd(app))
	cmd.AddCommand(newTagsUpdateCmd(app))
	cmd.AddCommand(newTagsDeleteCmd(app))
	cmd.AddCommand(newTagsAttachCmd(app))
	cmd.AddCommand(newTagsDetachCmd(app))
	return cmd
}

func newTagsListCmd(app *App) *cobra.Command {
	var projectID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's tags",
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
			tags, err := client.TagsByProject(cmd.Context(), projectID)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": tags})
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Project id (default: selected project)")
	return cmd
}

func newTagsCreateCmd(app *App) *cobra.Command {
	var projectID int64
	var name, color string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a tag in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			tagColor, ok := model.TagColorByName(color)
			if !ok {
				return writeErr(cmd, fmt.Errorf("invalid tag color %q; one of %s", color, strings.Join(model.TagColorNames(), " ")))
			}
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
			tag, err := client.CreateTag(cmd.Context(), projectID, api.TagCreate{Name: name, Color: strings.ToUpper(tagColor.Name)})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": tag})
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Project id (default: selected project)")
	cmd.Flags().StringVar(&name, "name", "", "Tag name")
	cmd.Flags().StringVar(&color, "color", "", "Tag color name ("+strings.Join(model.TagColorNames(), ", ")+")")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("color")
	return cmd
}

func newTagsUpdateCmd(app *App) *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "update <tag-id>",
		Short: "Update tag fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "tag")
			if err != nil {
				return writeErr(cmd, err)
			}
			var req api.TagUpdate
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			if cmd.Flags().Changed("color") {
				tagColor, ok := model.TagColorByName(color)
				if !ok {
					return writeErr(cmd, fmt.Errorf("invalid tag color %q; one of %s", color, strings.Join(model.TagColorNames(), " ")))
				}
				wire := strings.ToUpper(tagColor.Name)
				req.Color = &wire
			}
			client, _, err := app.connectAuthed()
			if err != nil {
				return writeErr(cmd, err)
			}
			tag, err := client.UpdateTag(cmd.Context(), id, req)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": tag})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&color, "color", "", "New color name")
	return cmd
}

func newTagsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <tag-id>",
		Short: "Delete a tag everywhere it is attached",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "tag")
			if err != nil {
				return writeErr(cmd, err)
			}
			client, _, err := app.connectAuthed()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.DeleteTag(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]int64{"deleted": id}})
		},
	}
}

func newTagsAttachCmd(app *App) *cobra.Command {
	var cardID int64

	cmd := &cobra.Command{
		Use:   "attach <tag-id>",
		Short: "Attach a tag to a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "tag")
			if err != nil {
				return writeErr(cmd, err)
			}
			client, _, err := app.connectAuthed()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.AttachTag(cmd.Context(), cardID, id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]int64{
				"cardId": cardID,
				"tagId":  id,
			}})
		},
	}

	cmd.Flags().Int64Var(&cardID, "card", 0, "Card id")
	_ = cmd.MarkFlagRequired("card")
	return cmd
}

func newTagsDetachCmd(app *App) *cobra.Command {
	var cardID int64

	cmd := &cobra.Command{
		Use:   "detach <tag-id>",
		Short: "Detach a tag from a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "tag")
			if err != nil {
				return writeErr(cmd, err)
			}
			client, _, err := app.connectAuthed()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.DetachTag(cmd.Context(), cardID, id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]int64{
				"cardId": cardID,
				"tagId":  id,
			}})
		},
	}

	cmd.Flags().Int64Var(&cardID, "card", 0, "Card id")
	_ = cmd.MarkFlagRequired("card")
	return cmd
}
