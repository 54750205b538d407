package analyzer

import (
	"fmt"

	"github.com/ludo-technologies/pysmell/domain"
	"github.com/ludo-technologies/pysmell/internal/config"
	"github.com/ludo-technologies/pysmell/internal/parser"
)

// DuplicatedCodeDetector compares every pair of eligible functions and
// reports those whose bodies are substantially similar. Similarity is
// the higher of two scores: Jaccard similarity over the normalized
// token sets, and a structural score over the statement-kind sequences.
// Pairs are canonicalized by source position, so each unordered pair is
// evaluated and reported exactly once in deterministic order.
type DuplicatedCodeDetector struct {
	cfg config.DuplicatedCodeConfig
}

// NewDuplicatedCodeDetector validates the thresholds and builds the detector
func NewDuplicatedCodeDetector(cfg config.DuplicatedCodeConfig) (*DuplicatedCodeDetector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, configError(err)
	}
	return &DuplicatedCodeDetector{cfg: cfg}, nil
}

func (d *DuplicatedCodeDetector) Kind() domain.SmellKind {
	return domain.SmellDuplicatedCode
}

// candidate caches the derived sequences of one eligible function so
// the pairwise loop does not recompute them.
type candidate struct {
	fn        *parser.Function
	tokenSet  map[string]struct{}
	tags      []parser.StatementKind
	lineCount int
}

func (d *DuplicatedCodeDetector) Detect(unit *parser.SourceUnit) []domain.Finding {
	var candidates []candidate
	for _, fn := range unit.Functions {
		if fn.StatementCount() < d.cfg.MinChunkSize {
			continue
		}
		candidates = append(candidates, candidate{
			fn:        fn,
			tokenSet:  tokenSet(fn.NormalizedTokens()),
			tags:      fn.KindSequence(),
			lineCount: fn.LineCount(),
		})
	}

	var findings []domain.Finding
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			a, b := candidates[i], candidates[j]

			tokenSim := jaccard(a.tokenSet, b.tokenSet)
			structSim := structuralSimilarity(a.tags, b.tags)
			similarity := tokenSim
			if structSim > similarity {
				similarity = structSim
			}

			if similarity < d.cfg.MinSimilarity {
				continue
			}
			if min(a.lineCount, b.lineCount) < d.cfg.MinChunkSize {
				continue
			}

			findings = append(findings, domain.Finding{
				Kind:     d.Kind(),
				Severity: domain.SeverityMedium,
				Location: domain.Location{
					FilePath:  unit.FilePath,
					StartLine: a.fn.StartLine,
					EndLine:   a.fn.EndLine,
				},
				Message: fmt.Sprintf("Duplicated code detected between '%s' and '%s' (similarity: %.2f)",
					a.fn.QualifiedName(), b.fn.QualifiedName(), similarity),
				Metrics: map[string]float64{
					"similarity":            similarity,
					"token_similarity":      tokenSim,
					"structural_similarity": structSim,
					"min_similarity":        d.cfg.MinSimilarity,
					"other_start_line":      float64(b.fn.StartLine),
				},
			})
		}
	}
	return findings
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}

// jaccard computes |intersection| / |union| of two sets
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	intersection := 0
	for token := range a {
		if _, ok := b[token]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// structuralSimilarity scores two statement-kind sequences. Equal-length
// sequences use Jaccard similarity over the position-independent tag
// sets; unequal lengths fall back to an edit-distance ratio, which
// penalizes the missing structure.
func structuralSimilarity(a, b []parser.StatementKind) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	if len(a) == len(b) {
		setA := make(map[string]struct{}, len(a))
		for _, tag := range a {
			setA[string(tag)] = struct{}{}
		}
		setB := make(map[string]struct{}, len(b))
		for _, tag := range b {
			setB[string(tag)] = struct{}{}
		}
		return jaccard(setA, setB)
	}

	distance := editDistance(a, b)
	longer := max(len(a), len(b))
	return 1.0 - float64(distance)/float64(longer)
}

// editDistance computes the Levenshtein distance between two tag sequences
func editDistance(a, b []parser.StatementKind) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
