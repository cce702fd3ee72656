package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jabrailkhalil/photoshutterinspector/internal/apperr"
	"github.com/jabrailkhalil/photoshutterinspector/internal/camera"
	"github.com/jabrailkhalil/photoshutterinspector/internal/compare"
	"github.com/jabrailkhalil/photoshutterinspector/internal/exiftool"
	"github.com/jabrailkhalil/photoshutterinspector/internal/inspect"
	"github.com/jabrailkhalil/photoshutterinspector/internal/report"
	"github.com/jabrailkhalil/photoshutterinspector/internal/ui"
)

var (
	compareFormat     string
	compareOutput     string
	compareTimeoutSec int
	compareExiftool   string
	compareLogLevel   string
	compareYes        bool
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare <file1> <file2> | compare <directory>",
	Short: "Compare the shutter counts of two files",
	Long: `Compare two files from (supposedly) the same camera and report the
actuation delta between them, plus the anomalies that matter when
verifying a seller's sample shots: decreasing counts, serial number
mismatches and reversed capture times.

Given a single directory, an interactive selector lets you pick the two
files to compare.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCompare,
}

func runCompare(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel(viper.GetString("compare.log-level"))
	if err != nil {
		return err
	}
	if level == "debug" {
		enableDebugLogging()
	}

	format, err := report.ParseFormat(viper.GetString("compare.format"))
	if err != nil {
		return apperr.User(err.Error())
	}

	first, second, err := compareTargets(args)
	if err != nil {
		return err
	}

	timeout := time.Duration(viper.GetInt("compare.timeout")) * time.Second
	source := exiftool.New(viper.GetString("compare.exiftool"), timeout)
	inspector := inspect.New(source, camera.Default())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	toolVersion, err := source.Version(ctx)
	if err != nil {
		return fmt.Errorf("exiftool is required: %w", err)
	}

	a := inspector.InspectFile(ctx, first)
	b := inspector.InspectFile(ctx, second)
	result := compare.Compare(a, b)

	out, closeOut, err := resolveOutput(viper.GetString("compare.output"), viper.GetBool("compare.yes"))
	if err != nil {
		return err
	}
	defer closeOut()

	meta := report.Meta{ExiftoolVersion: toolVersion}
	if err := report.WriteComparison(out, format, result, meta); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if a.ToolError || b.ToolError {
		return fmt.Errorf("one or both files could not be processed")
	}
	return nil
}

// compareTargets resolves the two files to compare: either both given on
// the command line, or picked interactively from a directory listing.
func compareTargets(args []string) (string, string, error) {
	if len(args) == 2 {
		for _, p := range args {
			info, err := os.Stat(p)
			if err != nil {
				return "", "", apperr.Userf("path not found: %s", p)
			}
			if info.IsDir() {
				return "", "", apperr.Userf("compare needs files, not a directory: %s", p)
			}
		}
		return args[0], args[1], nil
	}

	info, err := os.Stat(args[0])
	if err != nil {
		return "", "", apperr.Userf("path not found: %s", args[0])
	}
	if !info.IsDir() {
		return "", "", apperr.User("compare needs two files, or one directory to pick from")
	}

	paths, err := inspect.ListDir(args[0])
	if err != nil {
		return "", "", fmt.Errorf("listing %s: %w", args[0], err)
	}
	if len(paths) < 2 {
		return "", "", apperr.Userf("need at least two supported image files in %s", args[0])
	}

	entries := make([]ui.FileEntry, 0, len(paths))
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			continue
		}
		entries = append(entries, ui.FileEntry{
			Path:    p,
			Name:    fi.Name(),
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
	}

	picked, err := ui.RunFileSelector(entries)
	if err != nil {
		return "", "", err
	}
	return picked[0], picked[1], nil
}

func init() {
	compareCmd.Flags().StringVarP(&compareFormat, "format", "f", "", "Output format: pretty|json|csv")
	compareCmd.Flags().StringVarP(&compareOutput, "output", "o", "", "Output file path (defaults to stdout)")
	compareCmd.Flags().IntVar(&compareTimeoutSec, "timeout", 0, "Per-file exiftool timeout in seconds")
	compareCmd.Flags().StringVar(&compareExiftool, "exiftool", "", "Path to the exiftool executable")
	compareCmd.Flags().StringVar(&compareLogLevel, "log-level", "", "Log level: quiet|standard|debug")
	compareCmd.Flags().BoolVarP(&compareYes, "yes", "y", false, "Overwrite the output file without asking")

	// Bind all flags to viper for config file support
	viper.BindPFlag("compare.format", compareCmd.Flags().Lookup("format"))
	viper.BindPFlag("compare.output", compareCmd.Flags().Lookup("output"))
	viper.BindPFlag("compare.timeout", compareCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("compare.exiftool", compareCmd.Flags().Lookup("exiftool"))
	viper.BindPFlag("compare.log-level", compareCmd.Flags().Lookup("log-level"))
	viper.BindPFlag("compare.yes", compareCmd.Flags().Lookup("yes"))
}
