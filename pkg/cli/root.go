package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowlint/flowlint/pkg/constants"
	"github.com/flowlint/flowlint/pkg/logger"
	"github.com/flowlint/flowlint/pkg/validation"
)

var rootLog = logger.New("cli:root")

// ErrFindings reports that validation completed and produced error findings.
// The report has already been rendered by the time it is returned, so callers
// map it to a non-zero exit code without printing anything further.
var ErrFindings = errors.New("validation found errors")

// categoryFlags maps each restriction flag to the single category it keeps
// enabled. The flags are mutually exclusive.
var categoryFlags = []struct {
	Name     string
	Usage    string
	Category validation.Category
}{
	{"structure-only", "Run only the structure checks", validation.CategoryStructure},
	{"security-only", "Run only the security checks", validation.CategorySecurity},
	{"performance-only", "Run only the performance checks", validation.CategoryPerformance},
	{"docs-only", "Run only the documentation checks", validation.CategoryDocumentation},
	{"tests-only", "Run only the companion script checks", validation.CategoryTests},
}

// NewRootCommand builds the flowlint root command. Running it without a
// subcommand validates a workflow document and renders the findings report.
func NewRootCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flowlint",
		Short: "Validate automation workflow documents",
		Long: `Flowlint validates declarative automation workflow documents.

It checks graph structure, scans node parameters and function code for
embedded credentials and injection patterns, enforces size and density
limits, and verifies that companion documentation and shell scripts are
present and sound.

Examples:
  flowlint
  flowlint --file deploy/workflow.json
  flowlint --security-only --verbose
  flowlint --json > findings.json
  flowlint --watch`,
		Args: cobra.NoArgs,
		// Errors are printed by main; usage still renders for flag mistakes
		// because SilenceUsage is only set once flag parsing has succeeded.
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			file, _ := cmd.Flags().GetString("file")
			configPath, _ := cmd.Flags().GetString("config")
			timing, _ := cmd.Flags().GetBool("timing")
			verbose, _ := cmd.Flags().GetBool("verbose")
			noParallel, _ := cmd.Flags().GetBool("no-parallel")
			jsonOutput, _ := cmd.Flags().GetBool("json")
			watch, _ := cmd.Flags().GetBool("watch")

			config := RunConfig{
				File:       file,
				ConfigPath: configPath,
				Categories: selectedCategories(cmd),
				Timing:     timing,
				Verbose:    verbose,
				Parallel:   !noParallel,
				JSON:       jsonOutput,
				Watch:      watch,
				Output:     cmd.OutOrStdout(),
			}
			return RunValidation(cmd.Context(), config)
		},
	}

	cmd.Flags().StringP("file", "f", constants.DefaultDocumentName, "Workflow document to validate")
	cmd.Flags().StringP("config", "c", "", "Limits file (default: "+constants.DefaultLimitsFileName+" next to the document)")
	for _, flag := range categoryFlags {
		cmd.Flags().Bool(flag.Name, false, flag.Usage)
	}
	cmd.MarkFlagsMutuallyExclusive("structure-only", "security-only", "performance-only", "docs-only", "tests-only")
	cmd.Flags().Bool("timing", false, "Show per-validator timings after the report")
	cmd.Flags().BoolP("verbose", "v", false, "Include finding details in the report")
	cmd.Flags().Bool("no-parallel", false, "Run validators sequentially regardless of document size")
	cmd.Flags().Bool("json", false, "Emit the run summary as JSON instead of the report")
	cmd.Flags().Bool("watch", false, "Re-validate whenever the document or its companions change")

	cmd.AddCommand(NewVersionCommand(version))

	return cmd
}

// NewVersionCommand returns the version subcommand.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the flowlint version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "flowlint %s\n", version)
		},
	}
}

// selectedCategories translates the restriction flags into a category filter.
// It returns nil when no flag is set, which enables every category.
func selectedCategories(cmd *cobra.Command) []validation.Category {
	for _, flag := range categoryFlags {
		if on, _ := cmd.Flags().GetBool(flag.Name); on {
			rootLog.Printf("Category restricted to %s via --%s", flag.Category, flag.Name)
			return []validation.Category{flag.Category}
		}
	}
	return nil
}
