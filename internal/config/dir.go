// Package config resolves clickup-export settings from flags, environment,
// env files and an optional YAML config file.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the configuration directory.
const AppName = "clickup-export"

// Dir returns the clickup-export configuration directory.
//
// Resolution:
//   - $CLICKUP_EXPORT_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/clickup-export if set (respects XDG on any platform)
//   - %AppData%/clickup-export on Windows
//   - ~/.config/clickup-export on macOS and Linux
func Dir() string {
	if dir := os.Getenv("CLICKUP_EXPORT_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// EnvFilePaths lists env files in load order: per-directory overrides first,
// then the global file in Dir().
func EnvFilePaths() []string {
	paths := []string{".env.local", ".env"}
	if dir := Dir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "env"))
	}
	return paths
}

// FilePath returns the YAML config file location, or "" when no config
// directory can be determined.
func FilePath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}
