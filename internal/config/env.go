package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/gorewood/clickup-export/internal/output"
)

// Env holds settings read from the environment.
type Env struct {
	// APIToken is the ClickUp personal API token used when --apiKey is absent.
	APIToken string `envconfig:"CLICKUP_API_TOKEN"`

	WorkspaceID string `envconfig:"CLICKUP_WORKSPACE_ID"`

	// APIURL overrides the ClickUp API host.
	APIURL string `envconfig:"CLICKUP_API_URL" default:"https://api.clickup.com"`

	Timeout time.Duration `envconfig:"CLICKUP_TIMEOUT" default:"2m"`
}

// LoadEnv reads Env from the process environment.
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, output.NewUserErrorWithCause("invalid environment", err)
	}
	return env, nil
}
