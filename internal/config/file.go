package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/clickup-export/internal/output"
)

// File is the optional config.yaml. Every key is optional.
//
//	workspace_id: "9012345"
//	output_dir: ~/notes/clickup
//	on_collision: fail
type File struct {
	WorkspaceID string `yaml:"workspace_id"`
	OutputDir   string `yaml:"output_dir"`
	OnCollision string `yaml:"on_collision"`
}

// LoadFile reads a config file. A missing file yields a zero File.
// A leading "~/" in output_dir is expanded to the home directory.
func LoadFile(path string) (File, error) {
	if path == "" {
		return File{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return File{}, nil
		}
		return File{}, output.NewSystemErrorWithCause("failed to read config file "+path, err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return File{}, output.NewUserErrorWithCause("invalid config file "+path, err)
	}
	file.OutputDir = expandHome(file.OutputDir)
	return file, nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok && path != "~" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
