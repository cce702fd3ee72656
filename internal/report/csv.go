package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/jabrailkhalil/photoshutterinspector/internal/record"
)

// csvHeader is the fixed column set; one row per file.
var csvHeader = []string{
	"path", "make", "model", "shutter_count", "source_tag", "confidence", "warnings",
}

func writeRecordsCSV(w io.Writer, recs []record.ShutterRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i := range recs {
		r := &recs[i]
		count := ""
		if r.ShutterCount != nil {
			count = strconv.FormatInt(*r.ShutterCount, 10)
		}
		row := []string{
			r.Path,
			r.Make,
			r.Model,
			count,
			r.SourceTag,
			string(r.Confidence),
			strings.Join(r.Warnings, ";"),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
