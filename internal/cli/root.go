package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"til-cli/internal/api"
	"til-cli/internal/format"
	"til-cli/internal/session"
	"til-cli/internal/store"
	"til-cli/internal/tui"
)

type App struct {
	BaseURL    string
	PrettyJSON bool

	logger *log.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{
		logger: log.NewWithOptions(os.Stderr, log.Options{Prefix: "til"}),
	}

	cmd := &cobra.Command{
		Use:          "til",
		Short:        "TIL kanban client (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  til

  # Scriptable commands
  til login --email a@b.com --password secret
  til projects list
  til cards move 7 --column 2 --position 1
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.BaseURL, "base-url", envOr("TIL_BASE_URL", ""), "Backend origin (default from config, then "+store.DefaultBaseURL+")")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newSignupCmd(app))
	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newBoardsCmd(app))
	cmd.AddCommand(newColumnsCmd(app))
	cmd.AddCommand(newCardsCmd(app))
	cmd.AddCommand(newTagsCmd(app))
	cmd.AddCommand(newBoardCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	sess, err := session.Load()
	if err != nil {
		return err
	}
	client := api.New(store.ResolveBaseURL(app.BaseURL, sess.Config()), sess)
	return tui.Run(client, sess)
}

// connect builds the session and API client for one command
// invocation. The CLI is stateless per invocation beyond the persisted
// config.
func (app *App) connect() (*api.Client, *session.Session, error) {
	sess, err := session.Load()
	if err != nil {
		return nil, nil, err
	}
	client := api.New(store.ResolveBaseURL(app.BaseURL, sess.Config()), sess)
	return client, sess, nil
}

// connectAuthed additionally requires an authenticated session; commands
// other than login/signup have no business running without a token.
func (app *App) connectAuthed() (*api.Client, *session.Session, error) {
	client, sess, err := app.connect()
	if err != nil {
		return nil, nil, err
	}
	if sess.State() != session.Authenticated {
		return nil, nil, session.ErrNotAuthenticated
	}
	return client, sess, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

func parseID(arg, kind string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id: %q", kind, arg)
	}
	return id, nil
}
