package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/pysmell/domain"
	"github.com/ludo-technologies/pysmell/internal/config"
)

func newMagicNumbersDetector(t *testing.T) *MagicNumbersDetector {
	t.Helper()
	detector, err := NewMagicNumbersDetector(config.DefaultConfig().Smells.MagicNumbers)
	require.NoError(t, err)
	return detector
}

func TestMagicNumbersGroupsAcrossFunctions(t *testing.T) {
	source := `def next_day(ts):
    return ts + 86400


def prev_day(ts):
    return ts - 86400


def window():
    return 86400 * 7
`
	unit := parseUnit(t, source)
	findings := newMagicNumbersDetector(t).Detect(unit)

	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, domain.SmellMagicNumbers, f.Kind)
	assert.Equal(t, domain.SeverityMedium, f.Severity)
	assert.Equal(t, "Magic number '86400' appears 3 times (lines 2, 6, 10)", f.Message)
	assert.Equal(t, 2, f.Location.StartLine)
	assert.Equal(t, float64(3), f.Metrics["occurrences"])
}

func TestMagicNumbersBelowMinOccurrences(t *testing.T) {
	source := "def f():\n    return 505 + 505\n"
	unit := parseUnit(t, source)
	assert.Empty(t, newMagicNumbersDetector(t).Detect(unit))
}

func TestMagicNumbersWhitelistNeverReported(t *testing.T) {
	source := `def f(xs):
    a = 0
    b = 0
    c = 0
    d = 1
    e = 1
    g = 1
    h = -1
    i = -1
    j = -1
    return a
`
	unit := parseUnit(t, source)
	assert.Empty(t, newMagicNumbersDetector(t).Detect(unit))
}

func TestMagicNumbersRangeIsAbsolute(t *testing.T) {
	// -500 repeats three times; its magnitude is inside [2, 1000].
	negative := "def f():\n    return [-500, -500, -500]\n"
	findings := newMagicNumbersDetector(t).Detect(parseUnit(t, negative))
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "'-500'")

	// 1.5 repeats but sits below the minimum magnitude.
	small := "def f():\n    return [1.5, 1.5, 1.5]\n"
	assert.Empty(t, newMagicNumbersDetector(t).Detect(parseUnit(t, small)))

	// 9999 repeats but sits above the maximum magnitude.
	large := "def f():\n    return [9999, 9999, 9999]\n"
	assert.Empty(t, newMagicNumbersDetector(t).Detect(parseUnit(t, large)))
}

func TestMagicNumbersDeterministicGroupOrder(t *testing.T) {
	source := `def f():
    a = 77
    b = 42
    c = 77
    d = 42
    e = 77
    g = 42
    return a
`
	unit := parseUnit(t, source)
	findings := newMagicNumbersDetector(t).Detect(unit)

	require.Len(t, findings, 2)
	assert.Contains(t, findings[0].Message, "'77'")
	assert.Contains(t, findings[1].Message, "'42'")
}

func TestMagicNumbersCustomWhitelist(t *testing.T) {
	cfg := config.DefaultConfig().Smells.MagicNumbers
	cfg.Whitelist = append(cfg.Whitelist, 100)
	detector, err := NewMagicNumbersDetector(cfg)
	require.NoError(t, err)

	source := "def f():\n    return [100, 100, 100]\n"
	assert.Empty(t, detector.Detect(parseUnit(t, source)))
}

func TestMagicNumbersRejectsBadConfig(t *testing.T) {
	cfg := config.DefaultConfig().Smells.MagicNumbers
	cfg.MinValue = 100
	cfg.MaxValue = 2
	_, err := NewMagicNumbersDetector(cfg)
	assert.Error(t, err)
}
