package backend

import (
	"mapconf/internal/linetype"
)

// FileType values sent in ConfigMappingDTO.TypeFile.
const (
	TypeFileFlat = "FLAT"
	TypeFileCSV  = "CSV"
	TypeFileXML  = "XML"
)

// FileEntity is an uploaded sample file.
type FileEntity struct {
	ID            int64          `json:"id"`
	FileName      string         `json:"fileName"`
	LocalDateTime string         `json:"localDateTime,omitempty"`
	TypeFile      string         `json:"typeFile,omitempty"`
	FileDetails   []FileDetail   `json:"fileDetails,omitempty"`
	ConfigMapping *ConfigMapping `json:"configMapping,omitempty"`
}

// FileDetail is one stored line of an uploaded file.
type FileDetail struct {
	ID          int64  `json:"id"`
	NrLines     int    `json:"nrLines"`
	ContentFile string `json:"contentFile"`
	Statut      string `json:"statut"`
}

// ConfigMapping is the header record of a saved mapping.
type ConfigMapping struct {
	ID                   int64                 `json:"id"`
	FileSource           string                `json:"fileSource,omitempty"`
	FileDestinqtionJSON  string                `json:"fileDestinqtionJson,omitempty"`
	Status               string                `json:"status,omitempty"`
	LocalDateTime        string                `json:"localDateTime,omitempty"`
	ConfigMappingDetails []ConfigMappingDetail `json:"configMappingDetails,omitempty"`
}

// ConfigMappingDetail is one saved field association.
type ConfigMappingDetail struct {
	ID                   int64        `json:"id"`
	NrLineFiles          int          `json:"nrLineFiles"`
	KeySource            string       `json:"keySource"`
	TypeFile             string       `json:"typeFile"`
	KeyDistination       string       `json:"keyDistination"`
	ValueDistination     string       `json:"valueDistination,omitempty"`
	StartPos             int          `json:"startPos"`
	EndPos               int          `json:"endPos"`
	TypeLigneSource      string       `json:"typeLigneSource,omitempty"`
	TypeLigneDestination string       `json:"typeLigneDestination,omitempty"`
	OutMappings          []OutMapping `json:"outMappings,omitempty"`
}

// OutMapping is one generated output.
type OutMapping struct {
	ID            int64  `json:"id"`
	ContentMapper string `json:"contentMapper"`
	DateMapping   string `json:"dateMapping,omitempty"`
}

// JSONStructure is one stored key path of a destination.
type JSONStructure struct {
	ID              int64  `json:"id"`
	KeyPath         string `json:"keyPath"`
	FileDestination string `json:"fileDestination"`
	DateCreated     string `json:"dateCreated,omitempty"`
	StartPosition   int    `json:"start_position,omitempty"`
	EndPosition     int    `json:"end_position,omitempty"`
	TypeLigne       string `json:"typeLigne,omitempty"`
}

// LineType returns the parsed line type, the default for unknown codes.
func (s JSONStructure) LineType() linetype.LineType {
	lt, err := linetype.Parse(s.TypeLigne)
	if err != nil {
		return linetype.Default
	}

	return lt
}

// MappingDTO creates a ConfigMapping.
type MappingDTO struct {
	FileDestinationName string `json:"fileDestinationName"`
}

// ConfigMappingDTO creates a ConfigMappingDetail.
type ConfigMappingDTO struct {
	KeySource            string            `json:"keySource"`
	TypeFile             string            `json:"typeFile"`
	KeyDistination       string            `json:"keyDistination"`
	StartPos             int               `json:"startPos"`
	EndPos               int               `json:"endPos"`
	NrLineFiles          int               `json:"nrLineFiles,omitempty"`
	ConfigMappingID      int64             `json:"configMappingId,omitempty"`
	FileDetailID         int64             `json:"fileDetailId,omitempty"`
	TypeLigneSource      linetype.LineType `json:"typeLigneSource,omitempty"`
	TypeLigneDestination linetype.LineType `json:"typeLigneDestination,omitempty"`
}

// PositionJSONDto is one key path sent with a structure upload.
type PositionJSONDto struct {
	KeyPayh       string            `json:"keyPayh"`
	StartPosition int               `json:"start_position,omitempty"`
	EndPosition   int               `json:"end_position,omitempty"`
	TypeLigne     linetype.LineType `json:"typeLigne,omitempty"`
}

// JSONUploadRequest is the metadata part of a structure upload.
type JSONUploadRequest struct {
	FileDestination  string            `json:"fileDestination"`
	PositionJSONDtos []PositionJSONDto `json:"positionJsonDtos"`
}
