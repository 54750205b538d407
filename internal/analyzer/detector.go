package analyzer

import (
	"github.com/ludo-technologies/pysmell/domain"
	"github.com/ludo-technologies/pysmell/internal/config"
	"github.com/ludo-technologies/pysmell/internal/parser"
)

// Detector is one smell detection pass. Detectors are pure functions of
// the source model and their construction-time configuration; Detect
// never mutates the unit and never fails.
type Detector interface {
	Kind() domain.SmellKind
	Detect(unit *parser.SourceUnit) []domain.Finding
}

// BuildDetectors constructs the requested detectors, validating each
// detector's thresholds up front. kinds nil or empty means every
// detector enabled in the configuration; an explicit kind list overrides
// the per-detector enabled flags.
func BuildDetectors(cfg *config.SmellsConfig, kinds []domain.SmellKind) ([]Detector, error) {
	wanted := func(kind domain.SmellKind, enabled bool) bool {
		if len(kinds) == 0 {
			return enabled
		}
		for _, k := range kinds {
			if k == kind {
				return true
			}
		}
		return false
	}

	var detectors []Detector
	if wanted(domain.SmellLongMethod, cfg.LongMethod.Enabled) {
		d, err := NewLongMethodDetector(cfg.LongMethod)
		if err != nil {
			return nil, err
		}
		detectors = append(detectors, d)
	}
	if wanted(domain.SmellGodClass, cfg.GodClass.Enabled) {
		d, err := NewGodClassDetector(cfg.GodClass)
		if err != nil {
			return nil, err
		}
		detectors = append(detectors, d)
	}
	if wanted(domain.SmellDuplicatedCode, cfg.DuplicatedCode.Enabled) {
		d, err := NewDuplicatedCodeDetector(cfg.DuplicatedCode)
		if err != nil {
			return nil, err
		}
		detectors = append(detectors, d)
	}
	if wanted(domain.SmellLargeParameterList, cfg.LargeParameterList.Enabled) {
		d, err := NewLargeParameterListDetector(cfg.LargeParameterList)
		if err != nil {
			return nil, err
		}
		detectors = append(detectors, d)
	}
	if wanted(domain.SmellMagicNumbers, cfg.MagicNumbers.Enabled) {
		d, err := NewMagicNumbersDetector(cfg.MagicNumbers)
		if err != nil {
			return nil, err
		}
		detectors = append(detectors, d)
	}
	if wanted(domain.SmellFeatureEnvy, cfg.FeatureEnvy.Enabled) {
		d, err := NewFeatureEnvyDetector(cfg.FeatureEnvy)
		if err != nil {
			return nil, err
		}
		detectors = append(detectors, d)
	}
	return detectors, nil
}

// configError wraps a threshold validation failure as a domain error
func configError(err error) error {
	if err == nil {
		return nil
	}
	return domain.NewConfigError(err.Error(), err)
}
