package analyzer

import (
	"fmt"

	"github.com/ludo-technologies/pysmell/domain"
	"github.com/ludo-technologies/pysmell/internal/config"
	"github.com/ludo-technologies/pysmell/internal/parser"
)

// FeatureEnvyDetector flags methods that touch another object's state
// more than their own. Accesses are pre-classified on the source model;
// the detector groups the foreign ones by the apparent base object and
// scores each group against the method's self-access count.
type FeatureEnvyDetector struct {
	cfg config.FeatureEnvyConfig
}

// NewFeatureEnvyDetector validates the thresholds and builds the detector
func NewFeatureEnvyDetector(cfg config.FeatureEnvyConfig) (*FeatureEnvyDetector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, configError(err)
	}
	return &FeatureEnvyDetector{cfg: cfg}, nil
}

func (d *FeatureEnvyDetector) Kind() domain.SmellKind {
	return domain.SmellFeatureEnvy
}

func (d *FeatureEnvyDetector) Detect(unit *parser.SourceUnit) []domain.Finding {
	var findings []domain.Finding
	for _, fn := range unit.Functions {
		if !fn.IsMethod() {
			continue
		}

		selfCount := 0
		var targets []string
		foreign := map[string]int{}
		for _, access := range unit.AccessesOf(fn) {
			if access.Origin == parser.SelfAccess {
				selfCount++
				continue
			}
			if _, seen := foreign[access.Target]; !seen {
				targets = append(targets, access.Target)
			}
			foreign[access.Target]++
		}

		// One finding per envied object, in first-access order.
		for _, target := range targets {
			foreignCount := foreign[target]
			ratio := float64(foreignCount) / float64(max(selfCount, 1))
			if foreignCount < d.cfg.MinForeignAccesses || ratio < d.cfg.ForeignAccessRatio {
				continue
			}

			findings = append(findings, domain.Finding{
				Kind:     d.Kind(),
				Severity: domain.SeverityMedium,
				Location: domain.Location{
					FilePath:  unit.FilePath,
					StartLine: fn.StartLine,
					EndLine:   fn.EndLine,
				},
				Message: fmt.Sprintf("Method '%s' shows feature envy towards '%s' (foreign accesses: %d, self accesses: %d)",
					fn.QualifiedName(), target, foreignCount, selfCount),
				Metrics: map[string]float64{
					"foreign_accesses":     float64(foreignCount),
					"self_accesses":        float64(selfCount),
					"ratio":                ratio,
					"min_foreign_accesses": float64(d.cfg.MinForeignAccesses),
					"foreign_access_ratio": d.cfg.ForeignAccessRatio,
				},
			})
		}
	}
	return findings
}
