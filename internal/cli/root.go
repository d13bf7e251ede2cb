package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mapconf/internal/backend"
	"mapconf/internal/config"
	"mapconf/internal/log"
	"mapconf/internal/mapping"
	"mapconf/internal/wizard"
)

const description = `
mapconf

Configure how records of a CSV, XML or fixed-width file
are mapped onto the paths of a JSON document,
and let the conversion backend generate the JSON.

Start with the "paths" and "segments" sub-commands to inspect
your samples, or run a whole mapping file with "run".
`

type rootCommand struct {
	cmd         *cobra.Command
	ctx         context.Context
	stdout      io.Writer
	stderr      io.Writer
	config      *config.Config     // parsed flags and env variables
	client      *backend.Client    // GetClient should be used to initialize
	transport   http.RoundTripper  // replaces the HTTP transport of the client
	initialized bool               // init method was called
	logFile     *os.File           // log file instance
	logger      *zap.SugaredLogger // log to console and logFile
}

// NewRootCommand creates parent of all sub-commands.
func NewRootCommand(stdin io.Reader, stdout io.Writer, stderr io.Writer) *rootCommand {
	root := &rootCommand{
		ctx:    context.Background(),
		stdout: stdout,
		stderr: stderr,
	}

	root.cmd = &cobra.Command{
		Use:          filepath.Base(os.Args[0]),
		Short:        description,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.cmd.Help()
		},
	}

	root.cmd.SetIn(stdin)
	root.cmd.SetOut(stdout)
	root.cmd.SetErr(stderr)

	config.BindFlags(root.cmd.PersistentFlags())

	root.cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return root.init(cmd)
	}

	root.cmd.AddCommand(
		pathsCommand(root),
		segmentsCommand(root),
		fieldsCommand(root),
		automapCommand(root),
		validateCommand(root),
		uploadCommand(root),
		structureCommand(root),
		saveCommand(root),
		generateCommand(root),
		resultsCommand(root),
		runCommand(root),
	)

	return root
}

// Execute command or sub-command.
func (root *rootCommand) Execute() (exitCode int) {
	defer root.tearDown()

	if err := root.cmd.Execute(); err != nil {
		// Flag errors happen before PersistentPreRunE
		if root.logger == nil {
			root.setupLogger()
		}

		return 1
	}

	return 0
}

// GetClient returns the backend client and initializes it the first time.
func (root *rootCommand) GetClient() *backend.Client {
	if root.client == nil {
		root.client = backend.New(backend.Options{
			BaseURL:    root.config.APIURL,
			Timeout:    root.config.Timeout,
			RetryCount: root.config.Retries,
			NoRetry:    root.config.Retries == 0,
			Transport:  root.transport,
		}, root.logger)
	}

	return root.client
}

// NewSession starts a wizard session with the configured detector and extractor.
func (root *rootCommand) NewSession() *wizard.Session {
	return wizard.New(root.GetClient(), root.logger, wizard.Options{
		Extractor: root.config.Extractor(),
		Detector:  root.config.Detector(),
	})
}

// ImportSession loads the mapping file and restores a session from it.
func (root *rootCommand) ImportSession(path string) (*wizard.Session, *mapping.MappingFile, error) {
	path = root.config.Path(path)

	mf, err := mapping.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}

	s := root.NewSession()
	if err := s.Import(mf, filepath.Dir(path)); err != nil {
		return nil, nil, err
	}

	root.logger.Debugf(`Loaded mapping file "%s".`, path)

	return s, mf, nil
}

// ReadFile reads a file relative to the working directory.
func (root *rootCommand) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(root.config.Path(path))
	if err != nil {
		return nil, fmt.Errorf("cannot read file \"%s\": %w", path, err)
	}

	return data, nil
}

// tearDown makes clean-up after command execution.
func (root *rootCommand) tearDown() {
	if root.logger != nil {
		_ = root.logger.Sync()
	}

	if root.logFile != nil {
		if err := root.logFile.Close(); err != nil {
			_, _ = fmt.Fprintf(root.stderr, "cannot close log file \"%s\": %s\n", root.config.LogFile, err)
		}
	}
}

// init sets logger and config after flags are parsed.
func (root *rootCommand) init(cmd *cobra.Command) (err error) {
	if root.initialized {
		return nil
	}

	root.initialized = true

	// Logger must always be set up
	defer func() {
		if root.logger == nil {
			root.setupLogger()
		}
	}()

	if root.config, err = config.Load(cmd.Flags()); err != nil {
		return err
	}

	root.setupLogger()
	root.logger.Debugf("Working dir: %s", root.config.WorkingDir)
	root.logger.Debugf("Backend: %s", root.config.APIURL)

	return nil
}

// setupLogger according to the config.
func (root *rootCommand) setupLogger() {
	verbose := false
	var logFileErr error

	if root.config != nil {
		verbose = root.config.Verbose
		root.logFile, logFileErr = log.OpenFile(root.config.Path(root.config.LogFile))
	}

	var file io.Writer
	if root.logFile != nil {
		file = root.logFile
	}

	root.logger = log.NewLogger(root.stdout, root.stderr, file, verbose)
	root.cmd.SetErr(log.NewWriter(root.logger, zapcore.WarnLevel))

	if logFileErr != nil {
		root.logger.Warnf("Cannot open log file: %s", logFileErr)
	}
}
