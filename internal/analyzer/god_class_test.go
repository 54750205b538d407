package analyzer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/pysmell/domain"
	"github.com/ludo-technologies/pysmell/internal/config"
)

// generateClass builds a class with the given number of constructor
// fields and one-line methods.
func generateClass(name string, fields, methods int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "class %s:\n", name)
	fmt.Fprintf(&b, "    def __init__(self):\n")
	for i := 0; i < fields; i++ {
		fmt.Fprintf(&b, "        self.field_%d = None\n", i)
	}
	for i := 0; i < methods; i++ {
		fmt.Fprintf(&b, "\n    def method_%d(self):\n        pass\n", i)
	}
	return b.String()
}

func TestGodClassTriggeredByFieldsAndLines(t *testing.T) {
	cfg := config.GodClassConfig{Enabled: true, MaxFields: 3, MaxMethods: 5, MaxLines: 10}
	detector, err := NewGodClassDetector(cfg)
	require.NoError(t, err)

	// 4 fields and 4 regular methods (5 including __init__): the field
	// and line axes exceed, the method axis does not.
	unit := parseUnit(t, generateClass("Manager", 4, 4))
	require.Len(t, unit.Classes, 1)

	cls := unit.Classes[0]
	require.Len(t, cls.Fields, 4)
	require.Len(t, cls.Methods, 5)
	require.Equal(t, 17, cls.LineCount())

	findings := detector.Detect(unit)
	require.Len(t, findings, 1)

	f := findings[0]
	assert.Equal(t, domain.SmellGodClass, f.Kind)
	assert.Contains(t, f.Message, "too many fields (4, max: 3)")
	assert.Contains(t, f.Message, "too many lines (17, max: 10)")
	assert.NotContains(t, f.Message, "methods")
	assert.Equal(t, domain.SeverityHigh, f.Severity, "17/10 lines is past the 1.5x cut")

	// All three metrics are reported even for the axes that passed.
	assert.Equal(t, float64(5), f.Metrics["method_count"])
	assert.Equal(t, float64(4), f.Metrics["field_count"])
}

func TestGodClassSeverityFollowsWorstRatio(t *testing.T) {
	cfg := config.GodClassConfig{Enabled: true, MaxFields: 3, MaxMethods: 20, MaxLines: 200}
	detector, err := NewGodClassDetector(cfg)
	require.NoError(t, err)

	// 4/3 = 1.33: over the limit but under the 1.5x high severity cut.
	medium := detector.Detect(parseUnit(t, generateClass("Mild", 4, 1)))
	require.Len(t, medium, 1)
	assert.Equal(t, domain.SeverityMedium, medium[0].Severity)

	// 6/3 = 2.0: high severity.
	high := detector.Detect(parseUnit(t, generateClass("Wild", 6, 1)))
	require.Len(t, high, 1)
	assert.Equal(t, domain.SeverityHigh, high[0].Severity)
}

func TestGodClassBelowAllThresholds(t *testing.T) {
	detector, err := NewGodClassDetector(config.DefaultConfig().Smells.GodClass)
	require.NoError(t, err)

	unit := parseUnit(t, generateClass("Small", 2, 3))
	assert.Empty(t, detector.Detect(unit))
}

func TestGodClassRejectsBadConfig(t *testing.T) {
	_, err := NewGodClassDetector(config.GodClassConfig{MaxFields: -1, MaxMethods: 20, MaxLines: 200})
	assert.Error(t, err)
}
