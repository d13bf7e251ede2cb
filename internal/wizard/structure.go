package wizard

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"mapconf/internal/backend"
	"mapconf/internal/linetype"
	"mapconf/internal/structure"
)

// LoadStructure extracts the leaf paths of a JSON sample. The result
// replaces the previous structure.
func (s *Session) LoadStructure(name string, data []byte) ([]structure.JSONPathEntry, error) {
	entries, err := s.extractor.Parse(name, data)
	if err != nil {
		return nil, err
	}

	s.structureName = name
	s.structureRaw = data
	s.paths = entries
	s.mappings.ApplyStructure(s.paths)

	s.logger.Infof(`Loaded JSON structure "%s", %d paths.`, name, len(entries))
	s.dump("Structure paths", structure.Paths(entries))

	return entries, nil
}

// SetStructure replaces the structure by entries that have no JSON sample,
// eg. read from a mapping file. Such a structure can be pulled but not pushed.
func (s *Session) SetStructure(entries []structure.JSONPathEntry) {
	s.structureName = ""
	s.structureRaw = nil
	s.paths = withIDs(entries)
	s.mappings.ApplyStructure(s.paths)
}

// SetLineType tags one structure path.
func (s *Session) SetLineType(path string, lt linetype.LineType) error {
	if err := s.requireStructure(); err != nil {
		return err
	}

	if err := structure.SetLineType(s.paths, path, lt); err != nil {
		return err
	}

	s.mappings.ApplyStructure(s.paths)

	return nil
}

// DefaultPositions gives every structure path a ten character range.
func (s *Session) DefaultPositions() error {
	if err := s.requireStructure(); err != nil {
		return err
	}

	structure.DefaultPositions(s.paths)
	s.mappings.ApplyStructure(s.paths)

	return nil
}

// PushStructure stores the JSON sample with its positions and line types
// on the backend under destination.
func (s *Session) PushStructure(ctx context.Context, destination string) (string, error) {
	if err := s.requireStructure(); err != nil {
		return "", err
	}

	if s.structureRaw == nil {
		return "", fmt.Errorf("%w: the structure has no JSON sample to push", ErrStepNotReady)
	}

	if destination == "" {
		return "", ErrNoDestination
	}

	req := backend.NewJSONUploadRequest(destination, s.paths)
	s.dump("Structure upload", req)

	answer, err := s.client.UploadStructure(ctx, s.structureName, s.structureRaw, req)
	if err != nil {
		return "", err
	}

	s.destination = destination
	s.logger.Infof(`Pushed %d paths to destination "%s".`, len(s.paths), destination)

	return answer, nil
}

// PullStructure replaces the structure by the paths stored for destination.
func (s *Session) PullStructure(ctx context.Context, destination string) ([]structure.JSONPathEntry, error) {
	stored, err := s.client.StructuresByDestination(ctx, destination)
	if err != nil {
		return nil, err
	}

	if len(stored) == 0 {
		return nil, fmt.Errorf(`no structure is stored for destination "%s"`, destination)
	}

	s.SetStructure(backend.Entries(stored))
	s.destination = destination
	s.logger.Infof(`Pulled %d paths of destination "%s".`, len(s.paths), destination)

	return s.paths, nil
}

// Destinations lists the destinations stored on the backend.
func (s *Session) Destinations(ctx context.Context) ([]string, error) {
	return s.client.AllDestinations(ctx)
}

func withIDs(entries []structure.JSONPathEntry) []structure.JSONPathEntry {
	out := make([]structure.JSONPathEntry, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			e.ID = uuid.Must(uuid.NewV4()).String()
		}

		e.LineType = e.LineType.OrDefault()
		out[i] = e
	}

	return out
}
