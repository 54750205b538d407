package analyzer

import (
	"fmt"

	"github.com/ludo-technologies/pysmell/domain"
	"github.com/ludo-technologies/pysmell/internal/config"
	"github.com/ludo-technologies/pysmell/internal/parser"
)

// LargeParameterListDetector flags functions with too many parameters.
// The implicit receiver of a method does not count.
type LargeParameterListDetector struct {
	cfg config.LargeParameterListConfig
}

// NewLargeParameterListDetector validates the threshold and builds the detector
func NewLargeParameterListDetector(cfg config.LargeParameterListConfig) (*LargeParameterListDetector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, configError(err)
	}
	return &LargeParameterListDetector{cfg: cfg}, nil
}

func (d *LargeParameterListDetector) Kind() domain.SmellKind {
	return domain.SmellLargeParameterList
}

func (d *LargeParameterListDetector) Detect(unit *parser.SourceUnit) []domain.Finding {
	var findings []domain.Finding
	for _, fn := range unit.Functions {
		paramCount := fn.ParameterCount()
		if paramCount <= d.cfg.MaxParameters {
			continue
		}

		severity := domain.SeverityMedium
		if paramCount > 2*d.cfg.MaxParameters {
			severity = domain.SeverityHigh
		}

		findings = append(findings, domain.Finding{
			Kind:     d.Kind(),
			Severity: severity,
			Location: domain.Location{
				FilePath:  unit.FilePath,
				StartLine: fn.StartLine,
				EndLine:   fn.EndLine,
			},
			Message: fmt.Sprintf("Method '%s' has too many parameters (%d, max: %d)",
				fn.QualifiedName(), paramCount, d.cfg.MaxParameters),
			Metrics: map[string]float64{
				"parameter_count": float64(paramCount),
				"max_parameters":  float64(d.cfg.MaxParameters),
			},
		})
	}
	return findings
}
