package tui

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"til-cli/internal/api"
	"til-cli/internal/session"
	"til-cli/internal/store"
)

// Run starts the interactive board UI. Logs go to a file under the
// config dir: stderr belongs to the alternate screen while the program
// runs.
func Run(client *api.Client, sess *session.Session) error {
	applyColorProfilePreference()

	logger := log.Default()
	if dir, err := store.ConfigDir(); err == nil {
		if err := os.MkdirAll(dir, 0o755); err == nil {
			if f, err := os.OpenFile(filepath.Join(dir, "tui.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				logger = log.NewWithOptions(f, log.Options{Prefix: "til-tui"})
			}
		}
	}

	var cache *store.Cache
	if path, err := store.CachePath(); err == nil {
		if c, err := store.OpenCache(path); err == nil {
			cache = c
			defer c.Close()
		} else {
			logger.Warn("opening snapshot cache", "err", err)
		}
	}

	m := newAppModel(client, sess, cache, logger)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
