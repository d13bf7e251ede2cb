package wizard

import (
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mapconf/internal/backend"
	"mapconf/internal/flatfile"
	"mapconf/internal/mapping"
	"mapconf/internal/match"
	"mapconf/internal/source"
	"mapconf/internal/structure"
)

// DefaultOutputFile is fetched when the session has no destination name.
const DefaultOutputFile = "output.json"

var (
	ErrStepNotReady  = errors.New("step not ready")
	ErrNoDestination = errors.New("destination name is empty")
)

// Options configure a Session. Nil members use the package defaults.
type Options struct {
	Extractor *structure.Extractor
	Detector  *flatfile.Detector
	Match     *match.Options
}

// Session is the in-memory state of one configuration run.
type Session struct {
	client    *backend.Client
	logger    *zap.SugaredLogger
	extractor *structure.Extractor
	detector  *flatfile.Detector
	matchOpts match.Options

	// source step
	sample    *source.Sample
	sourceRaw []byte
	fields    *flatfile.FieldSet
	fileID    int64

	// structure step
	structureName string
	structureRaw  []byte
	paths         []structure.JSONPathEntry
	destination   string

	// mapping step
	mappings  *mapping.MappingSet
	unmatched []match.Unmatched

	// save step
	configMappingID int64
}

// New creates an empty session talking to client.
func New(client *backend.Client, logger *zap.SugaredLogger, opts Options) *Session {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	s := &Session{
		client:    client,
		logger:    logger,
		extractor: opts.Extractor,
		detector:  opts.Detector,
		fields:    flatfile.NewFieldSet(),
		mappings:  &mapping.MappingSet{},
	}

	if s.extractor == nil {
		s.extractor = structure.NewExtractor()
	}

	if s.detector == nil {
		s.detector = &flatfile.Detector{}
	}

	if opts.Match != nil {
		s.matchOpts = *opts.Match
	} else {
		s.matchOpts = match.DefaultOptions()
	}

	return s
}

// Sample returns the loaded source sample, nil before LoadSource.
func (s *Session) Sample() *source.Sample {
	return s.sample
}

// Fields returns the editable flat field definitions.
func (s *Session) Fields() *flatfile.FieldSet {
	return s.fields
}

// FileID returns the backend id of the uploaded source, 0 before UploadSource.
func (s *Session) FileID() int64 {
	return s.fileID
}

// Paths returns the leaf paths of the target structure.
func (s *Session) Paths() []structure.JSONPathEntry {
	return s.paths
}

// Destination returns the destination name the structure is stored under.
func (s *Session) Destination() string {
	return s.destination
}

// SetDestination names the destination without pushing anything.
func (s *Session) SetDestination(name string) {
	s.destination = name
}

// Mappings returns the editable mapping set.
func (s *Session) Mappings() *mapping.MappingSet {
	return s.mappings
}

// ConfigMappingID returns the id of the saved mapping, 0 before Save.
func (s *Session) ConfigMappingID() int64 {
	return s.configMappingID
}

// SourceFields returns the field names offered as mapping sources.
func (s *Session) SourceFields() []string {
	if s.sample == nil {
		return nil
	}

	if s.sample.Type == source.FLAT {
		return s.fields.Names()
	}

	return s.sample.Fields
}

func (s *Session) requireSource() error {
	if s.sample == nil {
		return fmt.Errorf("%w: load a source file first", ErrStepNotReady)
	}

	return nil
}

func (s *Session) requireStructure() error {
	if len(s.paths) == 0 {
		return fmt.Errorf("%w: load a JSON structure first", ErrStepNotReady)
	}

	return nil
}

// dump logs v at debug level, skipping the formatting when debug is off.
func (s *Session) dump(msg string, v any) {
	if !s.logger.Desugar().Core().Enabled(zapcore.DebugLevel) {
		return
	}

	s.logger.Debugf("%s:\n%s", msg, spew.Sdump(v))
}
