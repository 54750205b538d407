package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/pysmell/domain"
	"github.com/ludo-technologies/pysmell/internal/config"
)

func newDuplicatedCodeDetector(t *testing.T) *DuplicatedCodeDetector {
	t.Helper()
	detector, err := NewDuplicatedCodeDetector(config.DefaultConfig().Smells.DuplicatedCode)
	require.NoError(t, err)
	return detector
}

const renamedTwinSource = `def gross_price(price):
    rate = 0.19
    tax = price * rate
    total = price + tax
    return total


def final_cost(amount):
    factor = 0.19
    extra = amount * factor
    result = amount + extra
    return result
`

func TestDuplicatedCodeRenamedTwins(t *testing.T) {
	unit := parseUnit(t, renamedTwinSource)
	findings := newDuplicatedCodeDetector(t).Detect(unit)

	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, domain.SmellDuplicatedCode, f.Kind)
	assert.Equal(t, domain.SeverityMedium, f.Severity)
	assert.Equal(t, 1.0, f.Metrics["similarity"], "identical modulo renaming must score exactly 1.0")
	assert.Contains(t, f.Message, "between 'gross_price' and 'final_cost' (similarity: 1.00)")
	assert.Equal(t, 1, f.Location.StartLine)
}

func TestDuplicatedCodePairReportedOnceRegardlessOfOrder(t *testing.T) {
	reversed := `def final_cost(amount):
    factor = 0.19
    extra = amount * factor
    result = amount + extra
    return result


def gross_price(price):
    rate = 0.19
    tax = price * rate
    total = price + tax
    return total
`
	findings := newDuplicatedCodeDetector(t).Detect(parseUnit(t, reversed))
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "between 'final_cost' and 'gross_price'")
}

func TestDuplicatedCodeThreeCopiesThreePairs(t *testing.T) {
	source := `class Checkout:
    def discount_a(self, price):
        rate = 0.1
        cut = price * rate
        total = price - cut
        return total

    def discount_b(self, cost):
        pct = 0.1
        off = cost * pct
        final = cost - off
        return final

    def discount_c(self, value):
        share = 0.1
        part = value * share
        rest = value - part
        return rest
`
	unit := parseUnit(t, source)
	findings := newDuplicatedCodeDetector(t).Detect(unit)

	require.Len(t, findings, 3, "three copies form three unordered pairs")
	for _, f := range findings {
		assert.Equal(t, 1.0, f.Metrics["similarity"])
	}
	assert.Contains(t, findings[0].Message, "'Checkout.discount_a' and 'Checkout.discount_b'")
	assert.Contains(t, findings[1].Message, "'Checkout.discount_a' and 'Checkout.discount_c'")
	assert.Contains(t, findings[2].Message, "'Checkout.discount_b' and 'Checkout.discount_c'")
}

func TestDuplicatedCodeDissimilarFunctions(t *testing.T) {
	source := `def sum_all(items):
    total = 0
    for item in items:
        total += item
    return total


def greeting(name):
    prefix = "Hello"
    suffix = "!"
    banner = prefix + name
    return banner + suffix
`
	unit := parseUnit(t, source)
	assert.Empty(t, newDuplicatedCodeDetector(t).Detect(unit))
}

func TestDuplicatedCodeShortFunctionsIneligible(t *testing.T) {
	// Identical one-statement bodies stay below the chunk size.
	source := `def a(x):
    return x


def b(y):
    return y
`
	unit := parseUnit(t, source)
	assert.Empty(t, newDuplicatedCodeDetector(t).Detect(unit))
}

func TestDuplicatedCodeEmptyUnit(t *testing.T) {
	unit := parseUnit(t, "")
	assert.Empty(t, newDuplicatedCodeDetector(t).Detect(unit))
}

func TestDuplicatedCodeSimilarityThresholdRespected(t *testing.T) {
	cfg := config.DuplicatedCodeConfig{Enabled: true, MinSimilarity: 1.0, MinChunkSize: 3}
	strict, err := NewDuplicatedCodeDetector(cfg)
	require.NoError(t, err)

	unit := parseUnit(t, renamedTwinSource)
	assert.Len(t, strict.Detect(unit), 1, "exact twins survive even a 1.0 threshold")
}

func TestDuplicatedCodeRejectsBadConfig(t *testing.T) {
	_, err := NewDuplicatedCodeDetector(config.DuplicatedCodeConfig{MinSimilarity: 1.5, MinChunkSize: 3})
	assert.Error(t, err)
}
