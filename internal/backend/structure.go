package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"mapconf/internal/structure"
)

// MetadataFileName is the file name of the metadata part, as browsers send it.
const MetadataFileName = "blob"

// UploadStructure sends a JSON sample of a destination with the positions
// and line types of its key paths.
func (c *Client) UploadStructure(ctx context.Context, name string, data []byte, req JSONUploadRequest) (string, error) {
	meta, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode the structure metadata: %w", err)
	}

	res, err := c.R(ctx).
		SetFileReader("file", name, bytes.NewReader(data)).
		SetMultipartField("metadata", MetadataFileName, "application/json", bytes.NewReader(meta)).
		Post("/api/json-keys/saveKeys-withPosition")
	if err := check(res, err, msgUploadStructure); err != nil {
		return "", err
	}

	return res.String(), nil
}

// UploadStructureLegacy sends a JSON sample without positions.
func (c *Client) UploadStructureLegacy(ctx context.Context, name string, data []byte, destination string) (string, error) {
	res, err := c.R(ctx).
		SetFileReader("file", name, bytes.NewReader(data)).
		SetMultipartFormData(map[string]string{"fileDestination": destination}).
		Post("/api/json-structure/upload")
	if err := check(res, err, msgUploadStructure); err != nil {
		return "", err
	}

	return res.String(), nil
}

// StructuresByDestination returns the stored key paths of a destination.
func (c *Client) StructuresByDestination(ctx context.Context, destination string) ([]JSONStructure, error) {
	var out []JSONStructure

	res, err := c.jsonR(ctx).
		SetQueryParam("fileDestination", destination).
		SetResult(&out).
		Get("/api/json-keys/getByDestination")
	if err := check(res, err, msgStructures); err != nil {
		return nil, err
	}

	return out, nil
}

// AllDestinations returns the names of every stored destination.
func (c *Client) AllDestinations(ctx context.Context) ([]string, error) {
	var out []string

	res, err := c.jsonR(ctx).
		SetResult(&out).
		Get("/api/json-keys/getAllDestinations")
	if err := check(res, err, msgDestinations); err != nil {
		return nil, err
	}

	return out, nil
}

// StructureKeys returns the key paths stored by the legacy upload.
func (c *Client) StructureKeys(ctx context.Context, destination string) ([]string, error) {
	var out []JSONStructure

	res, err := c.jsonR(ctx).
		SetQueryParam("fileDestination", destination).
		SetResult(&out).
		Get("/api/json-structure/keys")
	if err := check(res, err, msgStructureKeys); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(out))
	for _, s := range out {
		keys = append(keys, s.KeyPath)
	}

	return keys, nil
}

// NewJSONUploadRequest builds the metadata of a structure upload.
func NewJSONUploadRequest(destination string, entries []structure.JSONPathEntry) JSONUploadRequest {
	req := JSONUploadRequest{
		FileDestination:  destination,
		PositionJSONDtos: make([]PositionJSONDto, 0, len(entries)),
	}

	for _, e := range entries {
		req.PositionJSONDtos = append(req.PositionJSONDtos, PositionJSONDto{
			KeyPayh:       e.Path,
			StartPosition: e.Start,
			EndPosition:   e.End,
			TypeLigne:     e.LineType.OrDefault(),
		})
	}

	return req
}

// Entries converts stored key paths back to path entries.
func Entries(structures []JSONStructure) []structure.JSONPathEntry {
	out := make([]structure.JSONPathEntry, 0, len(structures))
	for _, s := range structures {
		out = append(out, structure.JSONPathEntry{
			Path:     s.KeyPath,
			LineType: s.LineType(),
			Start:    s.StartPosition,
			End:      s.EndPosition,
		})
	}

	return out
}
