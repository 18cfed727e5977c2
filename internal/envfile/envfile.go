// Package envfile loads environment variables from .env files.
// Variables already set in the environment take precedence.
package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Load reads each env file in order and sets variables not already in the
// environment, so earlier files win over later ones. Missing files are
// skipped. A file that cannot be read or parsed does not stop the others
// from loading; its error is joined into the result.
func Load(paths ...string) error {
	var errs []error
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			errs = append(errs, fmt.Errorf("loading env file %s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}
