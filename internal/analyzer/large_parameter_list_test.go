package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/pysmell/domain"
	"github.com/ludo-technologies/pysmell/internal/config"
)

func TestLargeParameterList(t *testing.T) {
	detector, err := NewLargeParameterListDetector(config.DefaultConfig().Smells.LargeParameterList)
	require.NoError(t, err)

	source := `def ok(a, b, c, d, e):
    pass


def crowded(a, b, c, d, e, f):
    pass


class Shipment:
    def update(self, a, b, c, d, e):
        pass

    def reroute(self, a, b, c, d, e, f):
        pass
`
	unit := parseUnit(t, source)
	findings := detector.Detect(unit)
	require.Len(t, findings, 2)

	assert.Contains(t, findings[0].Message, "Method 'crowded' has too many parameters (6, max: 5)")
	assert.Equal(t, domain.SeverityMedium, findings[0].Severity)

	// The receiver does not count: update has 5 effective parameters
	// and passes, reroute has 6 and is flagged.
	assert.Contains(t, findings[1].Message, "Shipment.reroute")
	assert.Equal(t, float64(6), findings[1].Metrics["parameter_count"])
}

func TestLargeParameterListHighSeverity(t *testing.T) {
	cfg := config.LargeParameterListConfig{Enabled: true, MaxParameters: 2}
	detector, err := NewLargeParameterListDetector(cfg)
	require.NoError(t, err)

	// 5 > 2x2 means high severity.
	unit := parseUnit(t, "def f(a, b, c, d, e):\n    pass\n")
	findings := detector.Detect(unit)
	require.Len(t, findings, 1)
	assert.Equal(t, domain.SeverityHigh, findings[0].Severity)
}

func TestLargeParameterListRejectsBadConfig(t *testing.T) {
	_, err := NewLargeParameterListDetector(config.LargeParameterListConfig{MaxParameters: 0})
	assert.Error(t, err)
}
