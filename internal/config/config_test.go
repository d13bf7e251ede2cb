package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapconf/internal/flatfile"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(flags)
	require.NoError(t, flags.Parse(args))

	return flags
}

func TestEnvNamingConvention(t *testing.T) {
	c := envNamingConvention{}
	assert.Equal(t, "MAPCONF_FOO", c.Replace("foo"))
	assert.Equal(t, "MAPCONF_API_URL", c.Replace("api-url"))
	assert.Equal(t, "MAPCONF_FOO_BAR_BAZ", c.Replace("foo-Bar-BAZ"))
}

func TestEnvNamingConventionFlagNameEmpty(t *testing.T) {
	assert.PanicsWithError(t, "flag name cannot be empty", func() {
		envNamingConvention{}.Replace("")
	})
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(newFlags(t, "--working-dir", dir))
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultRetries, cfg.Retries)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, dir, cfg.WorkingDir)
	assert.Equal(t, 10, cfg.MaxDepth)
	assert.Equal(t, 50, cfg.PreviewLength)
	assert.Equal(t, "heuristic", cfg.Naming)
}

func TestLoad_FlagsAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MAPCONF_API_URL", "http://backend.test:9000/")
	t.Setenv("MAPCONF_RETRIES", "7")

	cfg, err := Load(newFlags(t, "-d", dir, "--retries", "1", "--timeout", "5s", "--naming", "Positional", "-v"))
	require.NoError(t, err)

	// Env beats the default, flag beats env.
	assert.Equal(t, "http://backend.test:9000", cfg.APIURL)
	assert.Equal(t, 1, cfg.Retries)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "positional", cfg.Naming)
	assert.Equal(t, flatfile.NamingPositional, cfg.Detector().Naming)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	content := "MAPCONF_MAX_DEPTH=4\nMAPCONF_PREVIEW_LENGTH=12\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, DotEnvFile), []byte(content), 0o600))

	// An existing variable is not overwritten by the file.
	t.Setenv("MAPCONF_PREVIEW_LENGTH", "20")
	// The file sets a variable for the process; register cleanup.
	t.Setenv("MAPCONF_MAX_DEPTH", "")
	require.NoError(t, os.Unsetenv("MAPCONF_MAX_DEPTH"))

	cfg, err := Load(newFlags(t, "-d", dir))
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.MaxDepth)
	assert.Equal(t, 20, cfg.PreviewLength)

	x := cfg.Extractor()
	assert.Equal(t, 4, x.MaxDepth)
	assert.Equal(t, 20, x.PreviewLength)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(newFlags(t, "-d", dir, "--max-depth", "0", "--naming", "random", "--api-url", "not a url"))
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, `invalid api-url: value "not a url" failed "url" validation`)
	assert.Contains(t, msg, `invalid max-depth: value "0" failed "gte" validation, use "--max-depth" flag or ENV variable "MAPCONF_MAX_DEPTH"`)
	assert.Contains(t, msg, `invalid naming: value "random" failed "oneof" validation`)
}

func TestLoadDotEnv_Missing(t *testing.T) {
	assert.NoError(t, loadDotEnv(t.TempDir()))
}

func TestLoadDotEnv_Dir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, DotEnvFile), 0o700))

	err := loadDotEnv(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected file, found dir")
}

func TestConfig_Path(t *testing.T) {
	cfg := &Config{WorkingDir: "/work"}
	assert.Equal(t, "/work/a/b.yaml", cfg.Path("a/b.yaml"))
	assert.Equal(t, "/abs.yaml", cfg.Path("/abs.yaml"))
	assert.Equal(t, "", cfg.Path(""))
}
