package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// DotEnvFile is looked up in the working directory.
const DotEnvFile = ".env"

// envNamingConvention maps a flag name to its environment variable,
// eg. "api-url" -> "MAPCONF_API_URL".
type envNamingConvention struct{}

func (envNamingConvention) Replace(flag string) string {
	if flag == "" {
		panic(errors.New("flag name cannot be empty"))
	}

	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// loadDotEnv loads dir/.env if present. Variables already set win.
func loadDotEnv(dir string) error {
	path := filepath.Join(dir, DotEnvFile)

	stat, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check %q: %w", path, err)
	case stat.IsDir():
		return fmt.Errorf("expected file, found dir at %q", path)
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %q: %w", path, err)
	}

	return nil
}
