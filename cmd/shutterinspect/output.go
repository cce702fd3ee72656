package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/jabrailkhalil/photoshutterinspector/internal/apperr"
	"github.com/jabrailkhalil/photoshutterinspector/internal/ui"
)

// resolveOutput returns the report destination. An empty path means
// stdout. An existing file is only overwritten after an interactive
// confirmation, unless --yes was given or there is no terminal to ask.
func resolveOutput(path string, assumeYes bool) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	if _, err := os.Stat(path); err == nil && !assumeYes {
		if !isatty.IsTerminal(os.Stdin.Fd()) {
			return nil, nil, apperr.Userf("%s already exists (use --yes to overwrite)", path)
		}
		var confirm bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Overwrite existing file?").
					Description(path).
					Value(&confirm).
					Affirmative("Yes").
					Negative("No"),
			),
		)
		if err := form.Run(); err != nil {
			return nil, nil, err
		}
		if !confirm {
			return nil, nil, apperr.ErrCancelled
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", path, err)
	}
	closeFn := func() {
		if err := f.Close(); err == nil {
			fmt.Fprintln(os.Stderr, ui.GetCheckMark()+" "+ui.Dim.Render("report written to ")+ui.Secondary.Render(path))
		}
	}
	return f, closeFn, nil
}
