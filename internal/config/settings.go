package config

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/gorewood/clickup-export/internal/output"
)

// DefaultOutputDir is used when no output directory is configured.
const DefaultOutputDir = "./clickup_docs_export"

// Collision policy names accepted in settings.
const (
	CollisionOverwrite = "overwrite"
	CollisionFail      = "fail"
)

// Flags carries values given on the command line. Empty means "not given".
type Flags struct {
	APIKey      string
	WorkspaceID string
	DocID       string
	OutputDir   string
	OnCollision string
}

// Settings is the resolved configuration for one run, built once at startup
// and passed to everything that needs it.
type Settings struct {
	APIKey      string
	WorkspaceID string
	DocID       string
	OutputDir   string
	OnCollision string
	APIURL      string
	Timeout     time.Duration
}

// Resolve merges sources: flags, then environment, then config file, then
// defaults. The first non-empty value wins.
func Resolve(flags Flags, env Env, file File) Settings {
	return Settings{
		APIKey:      firstNonEmpty(flags.APIKey, env.APIToken),
		WorkspaceID: firstNonEmpty(flags.WorkspaceID, env.WorkspaceID, file.WorkspaceID),
		DocID:       flags.DocID,
		OutputDir:   firstNonEmpty(flags.OutputDir, file.OutputDir, DefaultOutputDir),
		OnCollision: firstNonEmpty(flags.OnCollision, file.OnCollision, CollisionOverwrite),
		APIURL:      env.APIURL,
		Timeout:     env.Timeout,
	}
}

// Load reads the environment and config file and resolves them with flags.
// Env files must already be loaded.
func Load(flags Flags) (Settings, error) {
	env, err := LoadEnv()
	if err != nil {
		return Settings{}, err
	}
	file, err := LoadFile(FilePath())
	if err != nil {
		return Settings{}, err
	}
	return Resolve(flags, env, file), nil
}

// Validate checks everything needed to fetch and export a doc.
func (s Settings) Validate() error {
	return firstError(
		validation.Validate(s.APIKey,
			validation.Required.Error("API key is required. Provide it via --apiKey or the CLICKUP_API_TOKEN environment variable")),
		validation.Validate(s.WorkspaceID,
			validation.Required.Error("--workspaceId is required")),
		validation.Validate(s.DocID,
			validation.Required.Error("--docId is required")),
		s.ValidateOutput(),
	)
}

// ValidateOutput checks only the settings used when writing files.
func (s Settings) ValidateOutput() error {
	return firstError(
		validation.Validate(s.OutputDir,
			validation.Required.Error("--outputDir must not be empty")),
		validation.Validate(s.OnCollision,
			validation.In(CollisionOverwrite, CollisionFail).Error("--on-collision must be \"overwrite\" or \"fail\"")),
	)
}

// firstError returns the first failure as a user error.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err == nil {
			continue
		}
		var exitErr *output.ExitError
		if errors.As(err, &exitErr) {
			return err
		}
		return output.NewUserError(err.Error())
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
