package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jabrailkhalil/photoshutterinspector/internal/record"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatPretty, false},
		{"pretty", FormatPretty, false},
		{"JSON", FormatJSON, false},
		{" csv ", FormatCSV, false},
		{"xml", "", true},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func sampleRecords() []record.ShutterRecord {
	return []record.ShutterRecord{
		{
			Path:         "IMG_0001.CR2",
			Make:         "Canon",
			Model:        "EOS 5D Mark IV",
			ShutterCount: record.Int64(15342),
			SourceTag:    "MakerNotes:ShutterCount",
			Confidence:   record.ConfidenceExact,
		},
		{
			Path:       "edited.jpg",
			Make:       "Canon",
			Confidence: record.ConfidenceUnavailable,
			Warnings:   []string{record.WarnEditedSoftware},
		},
	}
}

func TestWriteRecordsJSON_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	meta := Meta{ExiftoolVersion: "12.76", Incomplete: true}
	if err := WriteRecords(&buf, FormatJSON, sampleRecords(), meta); err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if doc.ReportID == "" {
		t.Fatal("missing report id")
	}
	if doc.ExiftoolVersion != "12.76" || !doc.Incomplete {
		t.Fatalf("meta lost: %+v", doc)
	}
	if len(doc.Files) != 2 {
		t.Fatalf("files = %d, want 2", len(doc.Files))
	}
	if doc.Files[0].ShutterCount == nil || *doc.Files[0].ShutterCount != 15342 {
		t.Fatalf("first record count = %v", doc.Files[0].ShutterCount)
	}
	if doc.Files[1].ShutterCount != nil {
		t.Fatal("unavailable count must stay null")
	}
}

func TestWriteRecordsJSON_EmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRecords(&buf, FormatJSON, nil, Meta{}); err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}
	if !strings.Contains(buf.String(), `"files": []`) {
		t.Fatalf("expected empty files array, got %s", buf.String())
	}
}

func TestWriteRecordsCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRecords(&buf, FormatCSV, sampleRecords(), Meta{}); err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("report is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}

	header := strings.Join(rows[0], ",")
	if header != "path,make,model,shutter_count,source_tag,confidence,warnings" {
		t.Fatalf("header = %q", header)
	}
	if rows[1][3] != "15342" || rows[1][5] != "exact" {
		t.Fatalf("first row = %v", rows[1])
	}
	if rows[2][3] != "" {
		t.Fatalf("unavailable count must be an empty cell, got %q", rows[2][3])
	}
	if rows[2][6] != record.WarnEditedSoftware {
		t.Fatalf("warnings cell = %q", rows[2][6])
	}
}

func TestWriteRecordsPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRecords(&buf, FormatPretty, sampleRecords(), Meta{}); err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "IMG_0001.CR2") {
		t.Fatalf("missing file path in output:\n%s", out)
	}
	if !strings.Contains(out, "15,342") {
		t.Fatalf("missing grouped count in output:\n%s", out)
	}
}

func TestWriteComparison_JSON(t *testing.T) {
	res := record.ComparisonResult{
		First:    sampleRecords()[0],
		Second:   sampleRecords()[0],
		Delta:    record.Int64(0),
		SameMake: true,
	}

	var buf bytes.Buffer
	if err := WriteComparison(&buf, FormatJSON, res, Meta{ExiftoolVersion: "12.76"}); err != nil {
		t.Fatalf("WriteComparison: %v", err)
	}

	var doc ComparisonDocument
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if doc.Comparison.Delta == nil || *doc.Comparison.Delta != 0 {
		t.Fatalf("delta = %v", doc.Comparison.Delta)
	}
	if !doc.Comparison.SameMake {
		t.Fatal("same_make lost")
	}
}

func TestWriteComparison_CSVHasBothFiles(t *testing.T) {
	recs := sampleRecords()
	res := record.ComparisonResult{First: recs[0], Second: recs[1]}

	var buf bytes.Buffer
	if err := WriteComparison(&buf, FormatCSV, res, Meta{}); err != nil {
		t.Fatalf("WriteComparison: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
}

func TestGroupDigits(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{15342, "15,342"},
		{1234567, "1,234,567"},
		{-500, "-500"},
		{-15342, "-15,342"},
	}
	for _, tt := range tests {
		if got := groupDigits(tt.in); got != tt.want {
			t.Errorf("groupDigits(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
