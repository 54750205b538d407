package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ludo-technologies/pysmell/domain"
)

// SmellUseCase orchestrates the smell analysis workflow
type SmellUseCase struct {
	service   domain.SmellService
	formatter domain.OutputFormatter
}

// NewSmellUseCase creates a new smell use case
func NewSmellUseCase(service domain.SmellService, formatter domain.OutputFormatter) *SmellUseCase {
	return &SmellUseCase{
		service:   service,
		formatter: formatter,
	}
}

// Execute performs the complete analysis workflow and writes the report
func (uc *SmellUseCase) Execute(ctx context.Context, req domain.SmellRequest) (*domain.SmellResponse, error) {
	response, err := uc.AnalyzeAndReturn(ctx, req)
	if err != nil {
		return nil, err
	}

	writer, closeWriter, err := uc.resolveWriter(req)
	if err != nil {
		return nil, err
	}
	defer closeWriter()

	if err := uc.formatter.Write(response, req.OutputFormat, writer); err != nil {
		return nil, err
	}
	return response, nil
}

// AnalyzeAndReturn performs the analysis and returns the response without formatting
func (uc *SmellUseCase) AnalyzeAndReturn(ctx context.Context, req domain.SmellRequest) (*domain.SmellResponse, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, domain.NewInvalidInputError("invalid request", err)
	}
	return uc.service.Analyze(ctx, req)
}

// resolveWriter picks the report destination. An output path wins over
// the in-process writer.
func (uc *SmellUseCase) resolveWriter(req domain.SmellRequest) (io.Writer, func(), error) {
	if req.OutputPath != "" {
		file, err := os.Create(req.OutputPath)
		if err != nil {
			return nil, nil, domain.NewOutputError(fmt.Sprintf("failed to create output file: %s", req.OutputPath), err)
		}
		return file, func() { _ = file.Close() }, nil
	}
	return req.OutputWriter, func() {}, nil
}

// validatePaths validates input paths
func (uc *SmellUseCase) validatePaths(req domain.SmellRequest) error {
	if len(req.Paths) == 0 {
		return fmt.Errorf("no input paths specified")
	}
	return nil
}

// validateOutput validates output configuration
func (uc *SmellUseCase) validateOutput(req domain.SmellRequest) error {
	if req.OutputWriter == nil && req.OutputPath == "" {
		return fmt.Errorf("output writer or output path is required")
	}
	return nil
}

// validateFormats validates the output format
func (uc *SmellUseCase) validateFormats(req domain.SmellRequest) error {
	switch req.OutputFormat {
	case domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", req.OutputFormat)
	}
}

// validateDetectors validates the resolved detector selection
func (uc *SmellUseCase) validateDetectors(req domain.SmellRequest) error {
	for _, kind := range req.Detectors {
		if !kind.IsValid() {
			return fmt.Errorf("unknown detector: %s", kind)
		}
	}
	return nil
}

// validateRequest validates the smell request
func (uc *SmellUseCase) validateRequest(req domain.SmellRequest) error {
	validators := []func(domain.SmellRequest) error{
		uc.validatePaths,
		uc.validateOutput,
		uc.validateFormats,
		uc.validateDetectors,
	}

	for _, validator := range validators {
		if err := validator(req); err != nil {
			return err
		}
	}
	return nil
}

// SmellUseCaseBuilder provides a builder pattern for creating SmellUseCase
type SmellUseCaseBuilder struct {
	service   domain.SmellService
	formatter domain.OutputFormatter
}

// NewSmellUseCaseBuilder creates a new builder
func NewSmellUseCaseBuilder() *SmellUseCaseBuilder {
	return &SmellUseCaseBuilder{}
}

// WithService sets the smell service
func (b *SmellUseCaseBuilder) WithService(service domain.SmellService) *SmellUseCaseBuilder {
	b.service = service
	return b
}

// WithFormatter sets the output formatter
func (b *SmellUseCaseBuilder) WithFormatter(formatter domain.OutputFormatter) *SmellUseCaseBuilder {
	b.formatter = formatter
	return b
}

// Build creates the SmellUseCase with the configured dependencies
func (b *SmellUseCaseBuilder) Build() (*SmellUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("smell service is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}
	return NewSmellUseCase(b.service, b.formatter), nil
}
