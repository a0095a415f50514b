package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/flowlint/flowlint/pkg/constants"
	"github.com/flowlint/flowlint/pkg/fileutil"
	"github.com/flowlint/flowlint/pkg/logger"
	"github.com/flowlint/flowlint/pkg/validation"
)

var runLog = logger.New("cli:run")

// RunConfig carries the settings for a validation run, assembled from the
// command line flags.
type RunConfig struct {
	File       string
	ConfigPath string
	Categories []validation.Category
	Timing     bool
	Verbose    bool
	Parallel   bool
	JSON       bool
	Watch      bool
	Output     io.Writer
}

// RunValidation validates the configured document and renders the result.
// In watch mode it keeps re-validating until the context is cancelled. For a
// single run it returns ErrFindings when the document has error findings.
func RunValidation(ctx context.Context, config RunConfig) error {
	runLog.Printf("Starting validation: file=%s, categories=%v, watch=%v", config.File, config.Categories, config.Watch)

	if err := ctx.Err(); err != nil {
		return err
	}
	if config.Output == nil {
		config.Output = os.Stdout
	}

	if config.Watch {
		return watchAndValidate(ctx, config)
	}

	summary, err := validateOnce(ctx, config)
	if err != nil {
		return err
	}
	if !summary.Succeeded() {
		return ErrFindings
	}
	return nil
}

// validateOnce performs one scheduler run over the document and writes either
// the human report or the JSON summary to the configured output.
func validateOnce(ctx context.Context, config RunConfig) (*validation.RunSummary, error) {
	limits, err := resolveLimits(config)
	if err != nil {
		return nil, err
	}

	scheduler := validation.NewScheduler(validation.Options{
		Path:       config.File,
		Categories: config.Categories,
		Parallel:   config.Parallel,
		Limits:     limits,
	})
	summary := scheduler.Run(ctx)
	runLog.Printf("Run finished: errors=%d, warnings=%d, fatal=%v", summary.Errors, summary.Warnings, summary.Fatal)

	if config.JSON {
		if err := renderJSON(config.Output, summary); err != nil {
			return nil, err
		}
		return summary, nil
	}
	renderReport(config.Output, config.File, summary, reportOptions{
		Timing:  config.Timing,
		Verbose: config.Verbose,
	})
	return summary, nil
}

// resolveLimits loads the limits file. Without an explicit --config it probes
// for the default limits file next to the document and falls back to built-in
// defaults when none exists.
func resolveLimits(config RunConfig) (validation.Limits, error) {
	path := config.ConfigPath
	if path == "" {
		candidate := filepath.Join(filepath.Dir(config.File), constants.DefaultLimitsFileName)
		if fileutil.FileExists(candidate) {
			runLog.Printf("Using limits file %s", candidate)
			path = candidate
		}
	}
	return validation.LoadLimits(path)
}
