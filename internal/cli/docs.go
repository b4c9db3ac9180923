package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"til-cli/internal/docs"
)

func newDocsCmd(app *App) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show help topics (" + strings.Join(docs.Topics(), ", ") + ")",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, t := range docs.Topics() {
					fmt.Fprintln(cmd.OutOrStdout(), t)
				}
				return nil
			}
			body, ok := docs.Get(args[0])
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown topic %q; available: %s", args[0], strings.Join(docs.Topics(), ", ")))
			}
			if plain {
				fmt.Fprintln(cmd.OutOrStdout(), body)
				return nil
			}
			r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), body)
				return nil
			}
			out, err := r.Render(body)
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), body)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print raw markdown without terminal styling")
	return cmd
}
