package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"til-cli/internal/model"
)

// Config is the per-user client configuration, stored as
// ~/.til/config.json. The access token lives here so a login survives
// across invocations until explicit logout.
type Config struct {
	// BaseURL is the backend origin (scheme://host[:port]); the /api/v1
	// prefix is appended by the API client.
	BaseURL string `json:"baseUrl,omitempty"`

	// AccessToken is the bearer token from the last successful login.
	// Empty means unauthenticated.
	AccessToken string `json:"accessToken,omitempty"`

	// DeviceID is a stable per-machine identifier, assigned on first save.
	DeviceID string `json:"deviceId,omitempty"`

	// SelectedProjectID remembers the last active project across runs.
	SelectedProjectID int64 `json:"selectedProjectId,omitempty"`

	// SelectedProject mirrors the selected project's metadata at selection
	// time, so cached board rendering can resolve the main board offline.
	SelectedProject *model.Project `json:"selectedProject,omitempty"`

	// TUI holds optional user preferences for the interactive TUI.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Glyphs selects the glyph set (e.g. "unicode", "ascii").
	Glyphs string `json:"glyphs,omitempty"`
}

const DefaultBaseURL = "http://localhost:8080"

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.til).
	if v := strings.TrimSpace(os.Getenv("TIL_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".til"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func SaveConfig(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.DeviceID) == "" {
		cfg.DeviceID = uuid.NewString()
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	// Unique temp file name + atomic rename so concurrent CLI and TUI
	// processes can't clobber each other's writes. Token is in here, so 0600.
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

// ResolveBaseURL picks the backend origin: flag > env > config > default.
func ResolveBaseURL(flagValue string, cfg *Config) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("TIL_BASE_URL")); v != "" {
		return v
	}
	if cfg != nil && strings.TrimSpace(cfg.BaseURL) != "" {
		return cfg.BaseURL
	}
	return DefaultBaseURL
}
