package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"til-cli/internal/board"
	"til-cli/internal/model"
	"til-cli/internal/store"
)

func newBoardCmd(app *App) *cobra.Command {
	var projectID int64
	var cached, asJSON bool

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Print the selected project's board",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, sess, err := app.connectAuthed()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg := sess.Config()
			if projectID == 0 {
				projectID = cfg.SelectedProjectID
			}
			if projectID == 0 {
				return writeErr(cmd, errNoProject)
			}
			var project model.Project
			if cached && cfg.SelectedProject != nil && cfg.SelectedProject.ID == projectID {
				// Offline path: the selection mirrored the project metadata,
				// so no network round trip is needed.
				project = *cfg.SelectedProject
			} else {
				project, err = client.Project(cmd.Context(), projectID)
				if err != nil {
					return writeErr(cmd, err)
				}
			}

			cachePath, err := store.CachePath()
			if err != nil {
				return writeErr(cmd, err)
			}
			cache, err := store.OpenCache(cachePath)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer cache.Close()

			ctrl := board.NewController(client, cache, app.logger)
			var cachedAt string
			if cached {
				_, _, fetchedAt, ok, err := cache.LoadSnapshot(cmd.Context(), project.MainBoardID)
				if err != nil {
					return writeErr(cmd, err)
				}
				if !ok {
					return writeErr(cmd, fmt.Errorf("board %d was never cached; run without --cached first", project.MainBoardID))
				}
				if _, err := ctrl.LoadCached(cmd.Context(), project); err != nil {
					return writeErr(cmd, err)
				}
				cachedAt = humanize.Time(fetchedAt)
			} else if err := ctrl.Load(cmd.Context(), project); err != nil {
				return writeErr(cmd, err)
			}

			if asJSON {
				type columnOut struct {
					ID    int64  `json:"id"`
					Title string `json:"title"`
					Cards any    `json:"cards"`
				}
				cols := ctrl.Columns()
				out := make([]columnOut, 0, len(cols))
				for _, col := range cols {
					out = append(out, columnOut{ID: col.ID, Title: col.Title, Cards: ctrl.CardsFor(col.ID)})
				}
				return writeOut(cmd, app, map[string]any{"data": out})
			}

			var b strings.Builder
			fmt.Fprintf(&b, "%s\n", project.Title)
			if cachedAt != "" {
				fmt.Fprintf(&b, "(cached %s)\n", cachedAt)
			}
			for _, col := range ctrl.Columns() {
				cards := ctrl.CardsFor(col.ID)
				fmt.Fprintf(&b, "\n%s (%d)\n", col.Title, len(cards))
				for _, card := range cards {
					line := fmt.Sprintf("  %d. %s", card.ID, card.Title)
					if len(card.Tags) > 0 {
						names := make([]string, len(card.Tags))
						for i, t := range card.Tags {
							names[i] = t.Name
						}
						line += " [" + strings.Join(names, ", ") + "]"
					}
					b.WriteString(line + "\n")
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), b.String())
			return nil
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Project id (default: selected project)")
	cmd.Flags().BoolVar(&cached, "cached", false, "Render the last cached snapshot without touching the network")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the board as JSON instead of text")
	return cmd
}
