package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ludo-technologies/pysmell/domain"
	"github.com/ludo-technologies/pysmell/internal/analyzer"
	"github.com/ludo-technologies/pysmell/internal/config"
	"github.com/ludo-technologies/pysmell/internal/parser"
	"github.com/ludo-technologies/pysmell/internal/version"
)

// SmellServiceImpl implements the SmellService interface. One Analyze
// call loads configuration, collects the target files, fans the
// parse-and-detect passes out across files, and merges the findings
// into a single ordered response.
type SmellServiceImpl struct {
	fileReader domain.FileReader
	executor   *ParallelExecutorImpl
	progress   domain.ProgressManager
}

// NewSmellService creates a smell service with the default collaborators
func NewSmellService() *SmellServiceImpl {
	return &SmellServiceImpl{
		fileReader: NewFileReader(),
		executor:   NewParallelExecutor(),
		progress:   NewNoopProgressManager(),
	}
}

// SetProgressManager overrides the progress reporter
func (s *SmellServiceImpl) SetProgressManager(pm domain.ProgressManager) {
	if pm != nil {
		s.progress = pm
	}
}

// fileResult holds the outcome of one per-file analysis task. Each task
// writes only its own slot, so the fan-out needs no locking.
type fileResult struct {
	findings []domain.Finding
	warning  string
}

// Analyze performs smell detection on the given request
func (s *SmellServiceImpl) Analyze(ctx context.Context, req domain.SmellRequest) (*domain.SmellResponse, error) {
	cfg, err := config.LoadConfig(req.ConfigPath)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}

	includePatterns := req.IncludePatterns
	if len(includePatterns) == 0 {
		includePatterns = cfg.Analysis.IncludePatterns
	}
	excludePatterns := req.ExcludePatterns
	if len(excludePatterns) == 0 {
		excludePatterns = cfg.Analysis.ExcludePatterns
	}

	files, err := s.fileReader.CollectPythonFiles(req.Paths, req.Recursive, includePatterns, excludePatterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, domain.NewInvalidInputError("no Python files found in the specified paths", nil)
	}

	// Detector construction validates all thresholds before any file is
	// touched, so misconfiguration fails the whole run up front.
	detectors, err := analyzer.BuildDetectors(&cfg.Smells, req.Detectors)
	if err != nil {
		return nil, err
	}
	aggregator := analyzer.NewAggregator(detectors)

	results := make([]fileResult, len(files))
	tasks := make([]domain.ExecutableTask, len(files))

	var processed int
	var progressMu sync.Mutex
	s.progress.Initialize(len(files))
	s.progress.Start()

	for i, filePath := range files {
		i, filePath := i, filePath
		tasks[i] = NewSimpleTask(filePath, true, func(taskCtx context.Context) (interface{}, error) {
			results[i] = s.analyzeFile(taskCtx, aggregator, filePath)

			progressMu.Lock()
			processed++
			s.progress.Update(processed, len(files))
			progressMu.Unlock()
			return nil, nil
		})
	}

	if err := s.executor.Execute(ctx, tasks); err != nil {
		s.progress.Complete(false)
		return nil, domain.NewAnalysisError("analysis aborted", err)
	}
	s.progress.Complete(true)

	// Merge in collection order, then sort globally for stable output.
	var findings []domain.Finding
	var warnings []string
	for _, result := range results {
		findings = append(findings, result.findings...)
		if result.warning != "" {
			warnings = append(warnings, result.warning)
		}
	}
	analyzer.SortFindings(findings)

	response := &domain.SmellResponse{
		Findings:    findings,
		Summary:     buildSummary(findings, len(files), aggregator.Kinds()),
		Warnings:    warnings,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Short(),
	}
	return response, nil
}

// analyzeFile runs the full detector set over one file. Parse failures
// become warnings, not errors: a broken file must not sink a multi-file
// run.
func (s *SmellServiceImpl) analyzeFile(ctx context.Context, aggregator *analyzer.Aggregator, filePath string) fileResult {
	source, err := s.fileReader.ReadFile(filePath)
	if err != nil {
		return fileResult{warning: fmt.Sprintf("%s: %v", filePath, err)}
	}

	// Tree-sitter parsers are not safe for concurrent use; each task
	// owns its own instance.
	unit, err := parser.New().Parse(ctx, filePath, source)
	if err != nil {
		return fileResult{warning: fmt.Sprintf("%s: %v", filePath, err)}
	}

	return fileResult{findings: aggregator.Analyze(unit)}
}

// buildSummary derives the aggregate statistics of one run
func buildSummary(findings []domain.Finding, filesAnalyzed int, activeKinds []domain.SmellKind) domain.SmellSummary {
	summary := domain.SmellSummary{
		TotalFindings:  len(findings),
		FilesAnalyzed:  filesAnalyzed,
		FindingsByKind: make(map[domain.SmellKind]int),
		FindingsByFile: make(map[string]int),
		BySeverity:     make(map[domain.Severity]int),
		ActiveKinds:    activeKinds,
	}
	for _, finding := range findings {
		summary.FindingsByKind[finding.Kind]++
		summary.FindingsByFile[finding.Location.FilePath]++
		summary.BySeverity[finding.Severity]++
	}
	return summary
}
