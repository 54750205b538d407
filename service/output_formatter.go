package service

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ludo-technologies/pysmell/domain"
)

// OutputFormatterImpl implements the OutputFormatter interface
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter service
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// Format formats the analysis response according to the specified format
func (f *OutputFormatterImpl) Format(response *domain.SmellResponse, format domain.OutputFormat) (string, error) {
	switch format {
	case domain.OutputFormatText:
		return f.formatText(response)
	case domain.OutputFormatJSON:
		return EncodeJSON(response)
	case domain.OutputFormatYAML:
		return EncodeYAML(response)
	default:
		return "", domain.NewUnsupportedFormatError(string(format))
	}
}

// Write writes the formatted output to the writer
func (f *OutputFormatterImpl) Write(response *domain.SmellResponse, format domain.OutputFormat, writer io.Writer) error {
	output, err := f.Format(response, format)
	if err != nil {
		return err
	}
	return WriteString(writer, output)
}

// formatText formats the response as human-readable text
func (f *OutputFormatterImpl) formatText(response *domain.SmellResponse) (string, error) {
	var builder strings.Builder
	utils := NewFormatUtils()

	builder.WriteString(utils.FormatMainHeader("Code Smell Report"))

	builder.WriteString(utils.FormatSectionHeader("SUMMARY"))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Files Analyzed", response.Summary.FilesAnalyzed))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Total Findings", response.Summary.TotalFindings))
	for _, kind := range response.Summary.ActiveKinds {
		if count := response.Summary.FindingsByKind[kind]; count > 0 {
			builder.WriteString(utils.FormatLabelWithIndent(SectionPadding+2, string(kind), count))
		}
	}
	builder.WriteString("\n")

	if len(response.Findings) > 0 {
		builder.WriteString(utils.FormatSectionHeader("FINDINGS"))
		lastFile := ""
		for _, finding := range response.Findings {
			if finding.Location.FilePath != lastFile {
				lastFile = finding.Location.FilePath
				fmt.Fprintf(&builder, "\n%s\n", lastFile)
			}
			fmt.Fprintf(&builder, "  %d-%d  [%s] %s: %s\n",
				finding.Location.StartLine,
				finding.Location.EndLine,
				utils.FormatSeverityWithColor(finding.Severity),
				finding.Kind,
				finding.Message)
		}
		builder.WriteString("\n")
	}

	builder.WriteString(utils.FormatWarningsSection(response.Warnings))

	if parsedTime, err := time.Parse(time.RFC3339, response.GeneratedAt); err == nil {
		builder.WriteString(utils.FormatSectionHeader("METADATA"))
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Generated at", parsedTime.Format("2006-01-02T15:04:05-07:00")))
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Version", response.Version))
	}

	return builder.String(), nil
}
