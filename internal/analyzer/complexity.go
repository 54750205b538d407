package analyzer

import (
	"github.com/ludo-technologies/pysmell/internal/parser"
)

// Complexity computes the McCabe cyclomatic complexity of a function
// body: 1 for the single entry path, plus 1 per decision point.
// Decision points are conditional branches (if and elif), loops, except
// clauses, match cases, and every short-circuit and/or connective,
// counted at any nesting depth. Nested function bodies are excluded;
// they are scored as functions of their own.
func Complexity(fn *parser.Function) int {
	complexity := 1
	for _, stmt := range fn.Statements() {
		switch stmt.Kind {
		case parser.StmtIf, parser.StmtFor, parser.StmtWhile, parser.StmtExcept, parser.StmtCase:
			complexity++
		}
		complexity += stmt.BoolOps
	}
	return complexity
}
