package backend

import (
	"context"

	"mapconf/internal/mapping"
	"mapconf/internal/source"
	"mapconf/internal/structure"
)

// Positions used when neither the structure nor the entry has one.
const (
	DefaultStartPos = 1
	DefaultEndPos   = 10
)

// SaveMapping creates the mapping header record of a destination.
func (c *Client) SaveMapping(ctx context.Context, dto MappingDTO) (*ConfigMapping, error) {
	out := &ConfigMapping{}

	res, err := c.jsonR(withoutRetry(ctx)).
		SetBody(dto).
		SetResult(out).
		Post("/api/mapping/save-map")
	if err := check(res, err, msgSaveMapping); err != nil {
		return nil, err
	}

	return out, nil
}

// SaveConfigMapping stores the field associations of a mapping.
func (c *Client) SaveConfigMapping(ctx context.Context, dtos []ConfigMappingDTO) ([]ConfigMappingDetail, error) {
	var out []ConfigMappingDetail

	res, err := c.jsonR(withoutRetry(ctx)).
		SetBody(dtos).
		SetResult(&out).
		Post("/api/conf-map/save_confmap")
	if err := check(res, err, msgSaveConfigMapping); err != nil {
		return nil, err
	}

	return out, nil
}

// ConfigMappingDTOs converts the complete entries of a mapping set.
// Positions come from the destination structure first, then from the
// entry, then DefaultStartPos and DefaultEndPos.
func ConfigMappingDTOs(
	entries []mapping.MappingEntry,
	paths []structure.JSONPathEntry,
	ft source.FileType,
	configMappingID int64,
	fileID int64,
) []ConfigMappingDTO {
	typeFile := string(ft)
	if typeFile == "" {
		typeFile = TypeFileFlat
	}

	var out []ConfigMappingDTO

	for _, e := range entries {
		if !e.IsComplete() {
			continue
		}

		dto := ConfigMappingDTO{
			KeySource:            e.Source,
			TypeFile:             typeFile,
			KeyDistination:       e.Destination,
			StartPos:             firstPositive(e.Start, DefaultStartPos),
			EndPos:               firstPositive(e.End, DefaultEndPos),
			NrLineFiles:          firstPositive(e.LineNumber, mapping.DefaultLineNumber),
			ConfigMappingID:      configMappingID,
			FileDetailID:         fileID,
			TypeLigneSource:      e.SourceLineType.OrDefault(),
			TypeLigneDestination: e.DestinationLineType.OrDefault(),
		}

		if p, ok := structure.Find(paths, e.Destination); ok {
			dto.StartPos = firstPositive(p.Start, dto.StartPos)
			dto.EndPos = firstPositive(p.End, dto.EndPos)

			if e.DestinationLineType == "" {
				dto.TypeLigneDestination = p.LineType.OrDefault()
			}
		}

		out = append(out, dto)
	}

	return out
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}

	return 0
}
