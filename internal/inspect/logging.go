package inspect

import (
	"io"

	"github.com/jabrailkhalil/photoshutterinspector/internal/logging"
	"github.com/jabrailkhalil/photoshutterinspector/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Inspector:", PrefixColor: ui.FgGreen}

// SetLogger sets an optional destination for pipeline logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(file string, format string, args ...any) {
	logger.Logf(file, format, args...)
}
