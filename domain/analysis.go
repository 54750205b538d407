package domain

import (
	"context"
	"io"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// SmellRequest represents a request for a code smell analysis run
type SmellRequest struct {
	// Input files or directories to analyze
	Paths []string

	// Detectors is the already-resolved list of enabled detectors. The
	// caller applies --only/--exclude filtering before building the
	// request; an empty list means "every detector enabled in config".
	Detectors []SmellKind

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string

	// Configuration
	ConfigPath string

	// File selection
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string

	// Reporting options
	Verbose      bool
	ShowProgress bool
}

// SmellSummary represents aggregate statistics for one analysis run
type SmellSummary struct {
	TotalFindings  int               `json:"total_findings" yaml:"total_findings"`
	FilesAnalyzed  int               `json:"files_analyzed" yaml:"files_analyzed"`
	FindingsByKind map[SmellKind]int `json:"findings_by_kind" yaml:"findings_by_kind"`
	FindingsByFile map[string]int    `json:"findings_by_file" yaml:"findings_by_file"`
	BySeverity     map[Severity]int  `json:"by_severity" yaml:"by_severity"`
	ActiveKinds    []SmellKind       `json:"active_detectors" yaml:"active_detectors"`
}

// SmellResponse represents the complete result of an analysis run
type SmellResponse struct {
	Findings []Finding    `json:"findings" yaml:"findings"`
	Summary  SmellSummary `json:"summary" yaml:"summary"`

	// Warnings holds non-fatal per-file problems (typically parse errors)
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// Metadata
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
}

// SmellService defines the core business logic for smell detection
type SmellService interface {
	// Analyze performs smell detection on the given request
	Analyze(ctx context.Context, req SmellRequest) (*SmellResponse, error)
}

// FileReader defines the interface for reading and collecting Python files
type FileReader interface {
	// CollectPythonFiles recursively finds all Python files in the given paths
	CollectPythonFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// ReadFile reads the content of a file
	ReadFile(path string) ([]byte, error)

	// IsValidPythonFile checks if a file is a valid Python file
	IsValidPythonFile(path string) bool

	// FileExists checks if a file exists and returns an error if not
	FileExists(path string) (bool, error)
}

// OutputFormatter defines the interface for formatting analysis results
type OutputFormatter interface {
	// Format formats the analysis response according to the specified format
	Format(response *SmellResponse, format OutputFormat) (string, error)

	// Write writes the formatted output to the writer
	Write(response *SmellResponse, format OutputFormat, writer io.Writer) error
}

// ProgressManager reports analysis progress to the user
type ProgressManager interface {
	Initialize(maxValue int)
	Start()
	Update(processed, total int)
	Complete(success bool)
	SetWriter(writer io.Writer)
	Close()
}

// ExecutableTask represents a unit of work for the parallel executor
type ExecutableTask interface {
	Name() string
	Execute(ctx context.Context) (interface{}, error)
	IsEnabled() bool
}

// ParallelExecutor runs independent tasks concurrently. Detector passes
// are pure reads over an immutable model, so per-file analyses can fan
// out without locking.
type ParallelExecutor interface {
	Execute(ctx context.Context, tasks []ExecutableTask) error
}
