package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/jabrailkhalil/photoshutterinspector/internal/record"
)

// Document is the JSON report envelope for batch analysis.
type Document struct {
	ReportID        string                 `json:"report_id"`
	GeneratedAt     time.Time              `json:"generated_at"`
	ExiftoolVersion string                 `json:"exiftool_version,omitempty"`
	Incomplete      bool                   `json:"incomplete,omitempty"`
	Files           []record.ShutterRecord `json:"files"`
}

// ComparisonDocument is the JSON report envelope for compare mode.
type ComparisonDocument struct {
	ReportID        string                  `json:"report_id"`
	GeneratedAt     time.Time               `json:"generated_at"`
	ExiftoolVersion string                  `json:"exiftool_version,omitempty"`
	Comparison      record.ComparisonResult `json:"comparison"`
}

func writeRecordsJSON(w io.Writer, recs []record.ShutterRecord, meta Meta) error {
	doc := Document{
		ReportID:        uuid.NewString(),
		GeneratedAt:     time.Now().UTC(),
		ExiftoolVersion: meta.ExiftoolVersion,
		Incomplete:      meta.Incomplete,
		Files:           recs,
	}
	if doc.Files == nil {
		doc.Files = []record.ShutterRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func writeComparisonJSON(w io.Writer, res record.ComparisonResult, meta Meta) error {
	doc := ComparisonDocument{
		ReportID:        uuid.NewString(),
		GeneratedAt:     time.Now().UTC(),
		ExiftoolVersion: meta.ExiftoolVersion,
		Comparison:      res,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
