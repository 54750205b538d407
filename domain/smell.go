package domain

import (
	"fmt"
)

// SmellKind identifies one of the built-in code smell detectors
type SmellKind string

const (
	SmellLongMethod         SmellKind = "LongMethod"
	SmellGodClass           SmellKind = "GodClass"
	SmellDuplicatedCode     SmellKind = "DuplicatedCode"
	SmellLargeParameterList SmellKind = "LargeParameterList"
	SmellMagicNumbers       SmellKind = "MagicNumbers"
	SmellFeatureEnvy        SmellKind = "FeatureEnvy"
)

// AllSmellKinds returns every detector kind in canonical order. The order
// doubles as the tie-break when findings share a start line.
func AllSmellKinds() []SmellKind {
	return []SmellKind{
		SmellLongMethod,
		SmellGodClass,
		SmellDuplicatedCode,
		SmellLargeParameterList,
		SmellMagicNumbers,
		SmellFeatureEnvy,
	}
}

// IsValid reports whether the kind names a known detector
func (k SmellKind) IsValid() bool {
	for _, kind := range AllSmellKinds() {
		if k == kind {
			return true
		}
	}
	return false
}

// Order returns the canonical position of the kind, used for stable sorting
func (k SmellKind) Order() int {
	for i, kind := range AllSmellKinds() {
		if k == kind {
			return i
		}
	}
	return len(AllSmellKinds())
}

// ParseSmellKind converts a user-supplied detector name into a SmellKind
func ParseSmellKind(name string) (SmellKind, error) {
	kind := SmellKind(name)
	if !kind.IsValid() {
		return "", NewInvalidInputError(fmt.Sprintf("unknown detector: %s", name), nil)
	}
	return kind, nil
}

// Severity represents how strongly a finding indicates a maintainability problem
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Rank returns a numeric rank for severity comparisons (higher is worse)
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Location represents a line range in an analyzed file
type Location struct {
	FilePath  string `json:"file_path" yaml:"file_path"`
	StartLine int    `json:"start_line" yaml:"start_line"`
	EndLine   int    `json:"end_line" yaml:"end_line"`
}

// String returns string representation of Location
func (l Location) String() string {
	return fmt.Sprintf("%s:%d-%d", l.FilePath, l.StartLine, l.EndLine)
}

// LineCount returns the number of lines covered by this location
func (l Location) LineCount() int {
	return l.EndLine - l.StartLine + 1
}

// Finding is a single detected code smell. Findings are value objects:
// once emitted by a detector they are only filtered, sorted, and rendered.
type Finding struct {
	Kind     SmellKind `json:"kind" yaml:"kind"`
	Severity Severity  `json:"severity" yaml:"severity"`
	Location Location  `json:"location" yaml:"location"`
	Message  string    `json:"message" yaml:"message"`

	// Metrics maps metric names to the measured values that justify the
	// finding's severity (line counts, thresholds, similarity scores, ...)
	Metrics map[string]float64 `json:"metrics" yaml:"metrics"`
}

// String returns a compact human-readable representation of the finding
func (f Finding) String() string {
	return fmt.Sprintf("[%s] %s %s: %s", f.Severity, f.Kind, f.Location, f.Message)
}
