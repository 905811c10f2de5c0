package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

// Settings holds all configuration options.
type Settings struct {
	// Session settings
	SessionID string `json:"session_id"`
	UserAgent string `json:"user_agent"`

	// Download settings
	OutputPath          string `json:"output_path"`
	MaxConcurrentImages int    `json:"max_concurrent_images"`
	UsePostSubfolders   bool   `json:"use_post_subfolders"`
	PostFetchDelayMs    int    `json:"post_fetch_delay_ms"`

	// Preview settings
	SavePreviewThumbnail bool `json:"save_preview_thumbnail"`
	PreviewMaxSize       int  `json:"preview_max_size"`

	// Archive settings
	KeepFolderAfterArchive bool `json:"keep_folder_after_archive"`
}

// DefaultPath returns the default location of the config file,
// "pixiv-downloader/config.json" under the user's config directory.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(configDir, "pixiv-downloader", "config.json")
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		SessionID: "",
		UserAgent: "",

		OutputPath:          filepath.Join(homeDir, "Downloads", "Pixiv"),
		MaxConcurrentImages: 10,
		UsePostSubfolders:   false,
		PostFetchDelayMs:    500,

		SavePreviewThumbnail: false,
		PreviewMaxSize:       500,

		KeepFolderAfterArchive: false,
	}
}

// Load reads settings from a JSON file, then applies environment
// overrides.
//
// A missing file is not an error; defaults are used. The environment
// variables PIXIV_SESSION_ID and PIXIV_WORKERS override session_id and
// max_concurrent_images respectively.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, settings); err != nil {
			return nil, err
		}
	case os.IsNotExist(err):
		// fall through to env overrides
	default:
		return nil, err
	}

	settings.applyEnv()

	if settings.MaxConcurrentImages < 1 {
		settings.MaxConcurrentImages = 1
	}
	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func (s *Settings) applyEnv() {
	if v := os.Getenv("PIXIV_SESSION_ID"); v != "" {
		s.SessionID = v
	}
	if v := os.Getenv("PIXIV_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.MaxConcurrentImages = n
		}
	}
}
