package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/pysmell/app"
	"github.com/ludo-technologies/pysmell/domain"
	"github.com/ludo-technologies/pysmell/internal/config"
	"github.com/ludo-technologies/pysmell/service"
)

var (
	analyzeJSON   bool
	analyzeYAML   bool
	analyzeOutput string

	analyzeOnly    []string
	analyzeExclude []string

	analyzeRecursive       bool
	analyzeIncludePatterns []string
	analyzeExcludePatterns []string

	analyzeConfigPath string
	analyzeVerbose    bool
	analyzeNoProgress bool
)

// analyzeCmd runs every enabled detector over the given paths
var analyzeCmd = &cobra.Command{
	Use:   "analyze [paths...]",
	Short: "Detect code smells in Python files",
	Long: `Detect code smells in the given Python files or directories.

Each file is parsed once and all enabled detectors run over the result.
Files that fail to parse are reported as warnings and skipped; they do
not abort the run.

Examples:
  pysmell analyze src/                       # Analyze all Python files in src/
  pysmell analyze --json src/                # Output findings as JSON
  pysmell analyze --only LongMethod src/     # Run a single detector
  pysmell analyze --exclude MagicNumbers .   # Run everything but one detector
  pysmell analyze -o report.txt src/         # Write the report to a file

Detectors:
  LongMethod, GodClass, DuplicatedCode, LargeParameterList,
  MagicNumbers, FeatureEnvy`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyzeCommand,
}

// NewAnalyzeCmd creates and returns the analyze cobra command
func NewAnalyzeCmd() *cobra.Command {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Output as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeYAML, "yaml", false, "Output as YAML")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Write the report to a file instead of stdout")

	analyzeCmd.Flags().StringSliceVar(&analyzeOnly, "only", nil, "Run only these detectors")
	analyzeCmd.Flags().StringSliceVar(&analyzeExclude, "exclude-detector", nil, "Skip these detectors")

	analyzeCmd.Flags().BoolVar(&analyzeRecursive, "recursive", true, "Recursively analyze subdirectories")
	analyzeCmd.Flags().StringSliceVar(&analyzeIncludePatterns, "include", nil, "Include file patterns")
	analyzeCmd.Flags().StringSliceVar(&analyzeExcludePatterns, "exclude", nil, "Exclude file patterns")

	analyzeCmd.Flags().StringVarP(&analyzeConfigPath, "config", "c", "", "Configuration file path")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Enable verbose output")
	analyzeCmd.Flags().BoolVar(&analyzeNoProgress, "no-progress", false, "Disable the progress bar")

	return analyzeCmd
}

func runAnalyzeCommand(cmd *cobra.Command, args []string) error {
	if analyzeJSON && analyzeYAML {
		return fmt.Errorf("--json and --yaml are mutually exclusive")
	}

	outputFormat := domain.OutputFormatText
	switch {
	case analyzeJSON:
		outputFormat = domain.OutputFormatJSON
	case analyzeYAML:
		outputFormat = domain.OutputFormatYAML
	default:
		// Without a format flag the config file's output.format applies.
		if cfg, err := config.LoadConfig(analyzeConfigPath); err == nil && cfg.Output.Format != "" {
			outputFormat = domain.OutputFormat(cfg.Output.Format)
		}
	}

	detectors, err := resolveDetectors(analyzeOnly, analyzeExclude)
	if err != nil {
		return err
	}

	request := domain.SmellRequest{
		Paths:           args,
		Detectors:       detectors,
		OutputFormat:    outputFormat,
		OutputWriter:    os.Stdout,
		OutputPath:      analyzeOutput,
		ConfigPath:      analyzeConfigPath,
		Recursive:       analyzeRecursive,
		IncludePatterns: analyzeIncludePatterns,
		ExcludePatterns: analyzeExcludePatterns,
		Verbose:         analyzeVerbose,
		ShowProgress:    !analyzeNoProgress,
	}

	smellService := service.NewSmellService()
	if request.ShowProgress && outputFormat == domain.OutputFormatText {
		smellService.SetProgressManager(service.NewProgressManager())
	}

	useCase, err := app.NewSmellUseCaseBuilder().
		WithService(smellService).
		WithFormatter(service.NewOutputFormatter()).
		Build()
	if err != nil {
		return fmt.Errorf("failed to create analyze use case: %w", err)
	}

	response, err := useCase.Execute(cmd.Context(), request)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeVerbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Analyzed %d files, %d findings\n",
			response.Summary.FilesAnalyzed, response.Summary.TotalFindings)
	}
	return nil
}

// resolveDetectors turns --only and --exclude-detector into the final
// detector list. An empty result with no filters means "use the config".
func resolveDetectors(only, exclude []string) ([]domain.SmellKind, error) {
	if len(only) > 0 && len(exclude) > 0 {
		return nil, fmt.Errorf("--only and --exclude-detector are mutually exclusive")
	}

	if len(only) > 0 {
		kinds := make([]domain.SmellKind, 0, len(only))
		for _, name := range only {
			kind, err := domain.ParseSmellKind(name)
			if err != nil {
				return nil, err
			}
			kinds = append(kinds, kind)
		}
		return kinds, nil
	}

	if len(exclude) > 0 {
		excluded := make(map[domain.SmellKind]bool, len(exclude))
		for _, name := range exclude {
			kind, err := domain.ParseSmellKind(name)
			if err != nil {
				return nil, err
			}
			excluded[kind] = true
		}

		var kinds []domain.SmellKind
		for _, kind := range domain.AllSmellKinds() {
			if !excluded[kind] {
				kinds = append(kinds, kind)
			}
		}
		if len(kinds) == 0 {
			return nil, fmt.Errorf("all detectors excluded")
		}
		return kinds, nil
	}

	return nil, nil
}
