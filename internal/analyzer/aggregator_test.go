package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/pysmell/domain"
	"github.com/ludo-technologies/pysmell/internal/config"
)

func buildAllDetectors(t *testing.T) []Detector {
	t.Helper()
	detectors, err := BuildDetectors(&config.DefaultConfig().Smells, nil)
	require.NoError(t, err)
	require.Len(t, detectors, 6)
	return detectors
}

func TestBuildDetectorsSelection(t *testing.T) {
	cfg := &config.DefaultConfig().Smells

	only, err := BuildDetectors(cfg, []domain.SmellKind{domain.SmellLongMethod, domain.SmellFeatureEnvy})
	require.NoError(t, err)
	require.Len(t, only, 2)
	assert.Equal(t, domain.SmellLongMethod, only[0].Kind())
	assert.Equal(t, domain.SmellFeatureEnvy, only[1].Kind())
}

func TestBuildDetectorsHonorsEnabledFlags(t *testing.T) {
	cfg := config.DefaultConfig().Smells
	cfg.MagicNumbers.Enabled = false
	cfg.DuplicatedCode.Enabled = false

	detectors, err := BuildDetectors(&cfg, nil)
	require.NoError(t, err)
	require.Len(t, detectors, 4)
	for _, d := range detectors {
		assert.NotEqual(t, domain.SmellMagicNumbers, d.Kind())
		assert.NotEqual(t, domain.SmellDuplicatedCode, d.Kind())
	}
}

func TestBuildDetectorsExplicitKindOverridesDisabled(t *testing.T) {
	cfg := config.DefaultConfig().Smells
	cfg.MagicNumbers.Enabled = false

	detectors, err := BuildDetectors(&cfg, []domain.SmellKind{domain.SmellMagicNumbers})
	require.NoError(t, err)
	require.Len(t, detectors, 1)
	assert.Equal(t, domain.SmellMagicNumbers, detectors[0].Kind())
}

func TestBuildDetectorsFailsFastOnBadConfig(t *testing.T) {
	cfg := config.DefaultConfig().Smells
	cfg.DuplicatedCode.MinSimilarity = -2

	_, err := BuildDetectors(&cfg, nil)
	require.Error(t, err)

	var domainErr domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeConfigError, domainErr.Code)
}

func TestAggregatorEmptyUnit(t *testing.T) {
	aggregator := NewAggregator(buildAllDetectors(t))
	unit := parseUnit(t, "")
	assert.Empty(t, aggregator.Analyze(unit))
}

func TestAggregatorOrdersByLineThenKind(t *testing.T) {
	cfg := config.DefaultConfig().Smells
	cfg.LongMethod.MaxLines = 3
	cfg.LargeParameterList.MaxParameters = 2

	detectors, err := BuildDetectors(&cfg, nil)
	require.NoError(t, err)
	aggregator := NewAggregator(detectors)

	// One function triggering both long method and large parameter list,
	// followed by another long function later in the file.
	source := `def first(a, b, c, d):
    x1 = step()
    x2 = step()
    x3 = step()
    x4 = step()


def second():
    y1 = step()
    y2 = step()
    y3 = step()
    y4 = step()
`
	unit := parseUnit(t, source)
	findings := aggregator.Analyze(unit)

	// The twin bodies also trip the duplicated code detector; kind order
	// breaks the tie on line 1.
	require.Len(t, findings, 4)
	assert.Equal(t, 1, findings[0].Location.StartLine)
	assert.Equal(t, domain.SmellLongMethod, findings[0].Kind)
	assert.Equal(t, 1, findings[1].Location.StartLine)
	assert.Equal(t, domain.SmellDuplicatedCode, findings[1].Kind)
	assert.Equal(t, 1, findings[2].Location.StartLine)
	assert.Equal(t, domain.SmellLargeParameterList, findings[2].Kind)
	assert.Equal(t, 8, findings[3].Location.StartLine)
	assert.Equal(t, domain.SmellLongMethod, findings[3].Kind)
}

func TestAggregatorDeterministicAcrossRuns(t *testing.T) {
	aggregator := NewAggregator(buildAllDetectors(t))
	unit := parseUnit(t, renamedTwinSource)

	first := aggregator.Analyze(unit)
	second := aggregator.Analyze(unit)
	assert.Equal(t, first, second)
}

func TestAggregatorKinds(t *testing.T) {
	aggregator := NewAggregator(buildAllDetectors(t))
	assert.Equal(t, domain.AllSmellKinds(), aggregator.Kinds())
}
