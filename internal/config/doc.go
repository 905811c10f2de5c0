// Package config provides configuration management for pixiv-downloader.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Environment variable overrides
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Downloads to ~/Downloads/Pixiv
//	// 10 concurrent image downloads
//	// Anonymous session (public posts only)
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Environment Overrides
//
// Two variables override the file for credential and tuning purposes:
//
//	PIXIV_SESSION_ID  overrides session_id
//	PIXIV_WORKERS     overrides max_concurrent_images
//
// # Saving Settings
//
//	settings.OutputPath = "/mnt/archive/pixiv"
//	err := settings.Save("/path/to/config.json")
package config
