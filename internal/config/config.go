package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"mapconf/internal/flatfile"
	"mapconf/internal/structure"
)

const (
	EnvPrefix = "MAPCONF"

	DefaultAPIURL  = "http://localhost:8082"
	DefaultTimeout = 30 * time.Second
	DefaultRetries = 3
)

// Flag names, also the viper keys.
const (
	FlagAPIURL        = "api-url"
	FlagTimeout       = "timeout"
	FlagRetries       = "retries"
	FlagVerbose       = "verbose"
	FlagLogFile       = "log-file"
	FlagWorkingDir    = "working-dir"
	FlagMaxDepth      = "max-depth"
	FlagPreviewLength = "preview-length"
	FlagNaming        = "naming"
)

// Config contains the parsed flags and environment variables.
type Config struct {
	APIURL        string        `json:"api-url" validate:"required,url"`
	Timeout       time.Duration `json:"timeout" validate:"gt=0"`
	Retries       int           `json:"retries" validate:"gte=0,lte=10"`
	Verbose       bool          `json:"verbose"`
	LogFile       string        `json:"log-file"`
	WorkingDir    string        `json:"working-dir" validate:"required"`
	MaxDepth      int           `json:"max-depth" validate:"gte=1,lte=100"`
	PreviewLength int           `json:"preview-length" validate:"gte=1"`
	Naming        string        `json:"naming" validate:"oneof=heuristic positional"`
}

// BindFlags registers the options shared by all commands.
func BindFlags(flags *pflag.FlagSet) {
	flags.SortFlags = true
	flags.StringP(FlagAPIURL, "u", DefaultAPIURL, "conversion backend url")
	flags.Duration(FlagTimeout, DefaultTimeout, "timeout of one backend request")
	flags.Int(FlagRetries, DefaultRetries, "retries of a failed backend request")
	flags.BoolP(FlagVerbose, "v", false, "print details")
	flags.StringP(FlagLogFile, "l", "", "path to a log file for details")
	flags.StringP(FlagWorkingDir, "d", "", "use other working directory")
	flags.Int(FlagMaxDepth, structure.DefaultMaxDepth, "nested containers expanded when extracting JSON paths")
	flags.Int(FlagPreviewLength, structure.DefaultPreviewLength, "length of the example values")
	flags.String(FlagNaming, flatfile.NamingHeuristic.String(), `naming of detected segments, "heuristic" or "positional"`)
}

// Load reads the flags, the .env file and the environment.
func Load(flags *pflag.FlagSet) (*Config, error) {
	parser := viper.NewWithOptions(viper.EnvKeyReplacer(envNamingConvention{}))
	if err := parser.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	parser.AutomaticEnv()

	dir, err := workingDir(parser)
	if err != nil {
		return nil, err
	}

	if err := loadDotEnv(dir); err != nil {
		return nil, err
	}

	cfg := &Config{
		APIURL:        strings.TrimRight(strings.TrimSpace(parser.GetString(FlagAPIURL)), "/"),
		Timeout:       parser.GetDuration(FlagTimeout),
		Retries:       parser.GetInt(FlagRetries),
		Verbose:       parser.GetBool(FlagVerbose),
		LogFile:       parser.GetString(FlagLogFile),
		WorkingDir:    dir,
		MaxDepth:      parser.GetInt(FlagMaxDepth),
		PreviewLength: parser.GetInt(FlagPreviewLength),
		Naming:        strings.ToLower(strings.TrimSpace(parser.GetString(FlagNaming))),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the value ranges.
func (c *Config) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}

		return name
	})

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate config: %w", err)
	}

	errs := make([]error, 0, len(verrs))
	for _, e := range verrs {
		errs = append(errs, fmt.Errorf(
			`invalid %s: value "%v" failed "%s" validation, use "--%s" flag or ENV variable "%s"`,
			e.Field(),
			e.Value(),
			e.ActualTag(),
			e.Field(),
			envNamingConvention{}.Replace(e.Field()),
		))
	}

	return errors.Join(errs...)
}

// Extractor returns a JSON path extractor with the configured bounds.
func (c *Config) Extractor() *structure.Extractor {
	return &structure.Extractor{MaxDepth: c.MaxDepth, PreviewLength: c.PreviewLength}
}

// Detector returns a segment detector with the configured naming.
func (c *Config) Detector() *flatfile.Detector {
	naming, err := flatfile.ParseNaming(c.Naming)
	if err != nil {
		naming = flatfile.NamingHeuristic
	}

	return &flatfile.Detector{Naming: naming}
}

// Path resolves p against the working directory.
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(c.WorkingDir, p)
}

func workingDir(parser *viper.Viper) (string, error) {
	if dir := parser.GetString(FlagWorkingDir); dir != "" {
		return strings.TrimRight(dir, string(os.PathSeparator)), nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	return dir, nil
}
