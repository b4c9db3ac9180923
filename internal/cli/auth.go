package cli

import (
	"github.com/spf13/cobra"

	"til-cli/internal/api"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and persist the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, sess, err := app.connect()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := sess.Login(cmd.Context(), client, email, password); err != nil {
				// The auth surface is the one place server messages reach
				// the user directly.
				return writeErr(cmd, errLogin(err))
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{
				"state": sess.State().String(),
			}})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sess, err := app.connect()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := sess.Logout(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{
				"state": sess.State().String(),
			}})
		},
	}
}

func newSignupCmd(app *App) *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.connect()
			if err != nil {
				return writeErr(cmd, err)
			}
			req := api.SignupRequest{Username: username, Email: email, Password: password}
			if err := client.Signup(cmd.Context(), req); err != nil {
				return writeErr(cmd, errSignup(err))
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{
				"email": email,
			}})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
