package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jabrailkhalil/photoshutterinspector/internal/apperr"
	"github.com/jabrailkhalil/photoshutterinspector/internal/camera"
	"github.com/jabrailkhalil/photoshutterinspector/internal/exiftool"
	"github.com/jabrailkhalil/photoshutterinspector/internal/extract"
	"github.com/jabrailkhalil/photoshutterinspector/internal/inspect"
	"github.com/jabrailkhalil/photoshutterinspector/internal/record"
	"github.com/jabrailkhalil/photoshutterinspector/internal/report"
	"github.com/jabrailkhalil/photoshutterinspector/internal/ui"
)

var (
	inspectFormat      string
	inspectOutput      string
	inspectConcurrency int
	inspectTimeoutSec  int
	inspectExiftool    string
	inspectLogLevel    string
	inspectYes         bool
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <file-or-directory>",
	Short: "Analyze one file or every supported file in a directory",
	Long: `Analyze a camera file (or all supported files in a directory) and report
the shutter actuation count found in its maker notes, with a confidence
level and plausibility warnings.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel(viper.GetString("inspect.log-level"))
	if err != nil {
		return err
	}
	quiet := level == "quiet"
	if level == "debug" {
		enableDebugLogging()
	}

	format, err := report.ParseFormat(viper.GetString("inspect.format"))
	if err != nil {
		return apperr.User(err.Error())
	}

	target := args[0]
	info, err := os.Stat(target)
	if err != nil {
		return apperr.Userf("path not found: %s", target)
	}

	timeout := time.Duration(viper.GetInt("inspect.timeout")) * time.Second
	source := exiftool.New(viper.GetString("inspect.exiftool"), timeout)
	inspector := inspect.New(source, camera.Default())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var paths []string
	if info.IsDir() {
		paths, err = inspect.ListDir(target)
		if err != nil {
			return fmt.Errorf("listing %s: %w", target, err)
		}
		if len(paths) == 0 {
			return apperr.Userf("no supported image files in %s", target)
		}
	} else {
		if !inspect.Supported(target) {
			return apperr.Userf("unsupported file type: %s", target)
		}
		paths = []string{target}
	}

	var workflow *ui.Workflow
	var probeTask, analyzeTask int
	if !quiet {
		workflow = ui.NewWorkflow(os.Stderr)
		probeTask = workflow.AddTask("Checking exiftool")
		analyzeTask = workflow.AddTask("Analyzing files")
		workflow.Start()
		workflow.StartTask(probeTask, "")
	}

	toolVersion, err := source.Version(ctx)
	if err != nil {
		if workflow != nil {
			workflow.FailTask(probeTask, err.Error())
			workflow.Stop()
		}
		return fmt.Errorf("exiftool is required: %w", err)
	}
	if workflow != nil {
		workflow.CompleteTask(probeTask, "version "+toolVersion)
		workflow.StartTask(analyzeTask, ui.Dim.Render(fmt.Sprintf("0/%d", len(paths))))
	}

	var doneCount atomic.Int64
	onDone := func(i int, rec record.ShutterRecord) {
		n := doneCount.Add(1)
		if workflow != nil {
			workflow.UpdateMessage(analyzeTask, ui.Dim.Render(fmt.Sprintf("%d/%d", n, len(paths))))
		}
	}

	result := inspector.Batch(ctx, paths, viper.GetInt("inspect.concurrency"), onDone)

	if workflow != nil {
		if result.Incomplete {
			workflow.SkipTask(analyzeTask, fmt.Sprintf("interrupted after %d/%d file(s)", len(result.Records), len(paths)))
		} else {
			workflow.CompleteTask(analyzeTask, fmt.Sprintf("%d file(s)", len(result.Records)))
		}
		workflow.Stop()
		fmt.Fprintln(os.Stderr)
	}

	meta := report.Meta{ExiftoolVersion: toolVersion, Incomplete: result.Incomplete}
	out, closeOut, err := resolveOutput(viper.GetString("inspect.output"), viper.GetBool("inspect.yes"))
	if err != nil {
		return err
	}
	defer closeOut()

	if err := report.WriteRecords(out, format, result.Records, meta); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if failures := result.ToolFailures(); failures > 0 {
		return fmt.Errorf("%d file(s) could not be processed", failures)
	}
	return nil
}

func resolveLogLevel(raw string) (string, error) {
	level := strings.ToLower(strings.TrimSpace(raw))
	if level == "" {
		level = "standard"
	}
	switch level {
	case "quiet", "standard", "debug":
		return level, nil
	default:
		return "", apperr.Userf("invalid --log-level %q (expected quiet|standard|debug)", raw)
	}
}

// enableDebugLogging points every per-package logger at stderr.
func enableDebugLogging() {
	camera.SetLogger(os.Stderr)
	exiftool.SetLogger(os.Stderr)
	extract.SetLogger(os.Stderr)
	inspect.SetLogger(os.Stderr)
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "", "Output format: pretty|json|csv")
	inspectCmd.Flags().StringVarP(&inspectOutput, "output", "o", "", "Output file path (defaults to stdout)")
	inspectCmd.Flags().IntVarP(&inspectConcurrency, "concurrency", "c", 0, "Worker count for directory batches (0 = number of CPUs)")
	inspectCmd.Flags().IntVar(&inspectTimeoutSec, "timeout", 0, "Per-file exiftool timeout in seconds")
	inspectCmd.Flags().StringVar(&inspectExiftool, "exiftool", "", "Path to the exiftool executable")
	inspectCmd.Flags().StringVar(&inspectLogLevel, "log-level", "", "Log level: quiet|standard|debug")
	inspectCmd.Flags().BoolVarP(&inspectYes, "yes", "y", false, "Overwrite the output file without asking")

	// Bind all flags to viper for config file support
	viper.BindPFlag("inspect.format", inspectCmd.Flags().Lookup("format"))
	viper.BindPFlag("inspect.output", inspectCmd.Flags().Lookup("output"))
	viper.BindPFlag("inspect.concurrency", inspectCmd.Flags().Lookup("concurrency"))
	viper.BindPFlag("inspect.timeout", inspectCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("inspect.exiftool", inspectCmd.Flags().Lookup("exiftool"))
	viper.BindPFlag("inspect.log-level", inspectCmd.Flags().Lookup("log-level"))
	viper.BindPFlag("inspect.yes", inspectCmd.Flags().Lookup("yes"))
}
