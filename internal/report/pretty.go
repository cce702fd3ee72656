package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jabrailkhalil/photoshutterinspector/internal/record"
	"github.com/jabrailkhalil/photoshutterinspector/internal/ui"
)

func writeRecordsPretty(w io.Writer, recs []record.ShutterRecord, meta Meta) error {
	for i := range recs {
		if _, err := fmt.Fprintln(w, recordBlock(&recs[i])); err != nil {
			return err
		}
	}

	withCount := 0
	failures := 0
	for i := range recs {
		if recs[i].ShutterCount != nil {
			withCount++
		}
		if recs[i].ToolError {
			failures++
		}
	}
	summary := fmt.Sprintf("%d file(s) · %d with shutter count · %d failed", len(recs), withCount, failures)
	if meta.Incomplete {
		summary += " · " + ui.Warning.Render("batch incomplete")
	}
	_, err := fmt.Fprintln(w, ui.Bold.Render(summary))
	return err
}

// recordBlock renders the human-readable multi-line block for one file.
func recordBlock(r *record.ShutterRecord) string {
	var b strings.Builder

	b.WriteString(ui.SectionHeader.Render(r.Path))
	b.WriteString("\n")

	camera := strings.TrimSpace(r.Make + " " + r.Model)
	if camera == "" {
		camera = ui.Muted.Render("unknown camera")
	}
	b.WriteString("  " + ui.FormatKeyValue("Camera", camera) + "\n")
	if r.SerialNumber != "" {
		b.WriteString("  " + ui.FormatKeyValue("Serial", r.SerialNumber) + "\n")
	}
	if r.LensModel != "" {
		b.WriteString("  " + ui.FormatKeyValue("Lens", r.LensModel) + "\n")
	}
	if r.Firmware != "" {
		b.WriteString("  " + ui.FormatKeyValue("Firmware", r.Firmware) + "\n")
	}
	if r.DateTimeOriginal != "" {
		b.WriteString("  " + ui.FormatKeyValue("Captured", r.DateTimeOriginal) + "\n")
	}

	switch {
	case r.ShutterCount != nil:
		line := fmt.Sprintf("%s %s actuations", ui.GetCheckMark(),
			ui.Highlight.Render(groupDigits(*r.ShutterCount)))
		line += " " + ui.Dim.Render(fmt.Sprintf("(%s, from %s)", r.Confidence, r.SourceTag))
		b.WriteString("  " + line + "\n")
	case r.ToolError:
		b.WriteString("  " + ui.GetCrossMark() + " " + ui.Error.Render(r.Error) + "\n")
	default:
		b.WriteString("  " + ui.GetWarnMark() + " " +
			ui.Warning.Render("shutter count not recorded in this file") + "\n")
		if r.SourceTag != "" {
			b.WriteString("  " + ui.Dim.Render("tried: "+r.SourceTag) + "\n")
		}
	}

	if r.FileNumber != nil {
		b.WriteString("  " + ui.FormatKeyValue("File number",
			groupDigits(*r.FileNumber)+" "+ui.Muted.Render("(hint only, not an actuation count)")) + "\n")
	}

	for _, warn := range r.Warnings {
		b.WriteString("  " + ui.GetBullet() + " " + ui.Warning.Render(warn) + "\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func writeComparisonPretty(w io.Writer, res record.ComparisonResult) error {
	var b strings.Builder

	b.WriteString(ui.Title.Render("Comparison") + "\n\n")
	b.WriteString(recordBlock(&res.First) + "\n\n")
	b.WriteString(recordBlock(&res.Second) + "\n\n")

	if res.Delta != nil {
		mark := ui.GetCheckMark()
		if *res.Delta < 0 {
			mark = ui.GetWarnMark()
		}
		b.WriteString(fmt.Sprintf("%s %s\n", mark,
			ui.FormatKeyValue("Delta", ui.Highlight.Render(groupDigits(*res.Delta))+" actuations")))
	} else {
		b.WriteString(ui.GetWarnMark() + " " +
			ui.Warning.Render("delta unavailable: one or both counts missing") + "\n")
	}

	if res.SameMake {
		b.WriteString(ui.GetCheckMark() + " " + "same camera make\n")
	}
	for _, warn := range res.Warnings {
		b.WriteString(ui.GetWarnMark() + " " + ui.Warning.Render(warn) + "\n")
	}

	_, err := fmt.Fprint(w, ui.Box.Render(strings.TrimSuffix(b.String(), "\n"))+"\n")
	return err
}

// groupDigits renders 15342 as "15,342".
func groupDigits(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
