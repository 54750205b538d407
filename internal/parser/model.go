package parser

import "fmt"

// StatementKind tags the closed set of statement shapes the detectors
// inspect. Detectors switch exhaustively over these tags instead of
// querying parse tree node types at runtime.
type StatementKind string

const (
	StmtAssign    StatementKind = "Assign"
	StmtAugAssign StatementKind = "AugAssign"
	StmtIf        StatementKind = "If"
	StmtFor       StatementKind = "For"
	StmtWhile     StatementKind = "While"
	StmtWith      StatementKind = "With"
	StmtTry       StatementKind = "Try"
	StmtExcept    StatementKind = "Except"
	StmtReturn    StatementKind = "Return"
	StmtRaise     StatementKind = "Raise"
	StmtCall      StatementKind = "Call"
	StmtExpr      StatementKind = "Expr"
	StmtImport    StatementKind = "Import"
	StmtAssert    StatementKind = "Assert"
	StmtDelete    StatementKind = "Delete"
	StmtGlobal    StatementKind = "Global"
	StmtMatch     StatementKind = "Match"
	StmtCase      StatementKind = "Case"
	StmtPass      StatementKind = "Pass"
	StmtBreak     StatementKind = "Break"
	StmtContinue  StatementKind = "Continue"
	StmtFuncDef   StatementKind = "FunctionDef"
	StmtClassDef  StatementKind = "ClassDef"
)

// Statement is one statement in a function or class body. Nested blocks
// are held as sub-statement slices; expression content is reduced to the
// normalized token form and the short-circuit connective count the
// detectors need.
type Statement struct {
	Kind      StatementKind
	StartLine int
	EndLine   int

	// Body holds the primary nested block (if/for/while/with/try body).
	Body []*Statement
	// Orelse holds elif branches (as nested If statements) followed by
	// the else block, mirroring how Python's own AST nests them.
	Orelse []*Statement
	// Handlers holds except clauses of a try statement (Kind == StmtExcept).
	Handlers []*Statement
	// Final holds the finally block of a try statement.
	Final []*Statement

	// BoolOps counts the and/or connectives appearing in this statement's
	// own expressions (conditions, assigned values, call arguments), not
	// in nested blocks.
	BoolOps int

	// Tokens is the normalized token form of the statement's own text:
	// identifiers and literals replaced by role-tagged placeholders,
	// structural keywords and operators kept verbatim.
	Tokens []string
}

// Walk visits the statement and every nested statement depth-first in
// source order. Returning false from the visitor stops descent into the
// current statement's blocks.
func (s *Statement) Walk(visitor func(*Statement) bool) {
	if s == nil {
		return
	}
	if !visitor(s) {
		return
	}
	for _, group := range [][]*Statement{s.Body, s.Orelse, s.Handlers, s.Final} {
		for _, sub := range group {
			sub.Walk(visitor)
		}
	}
}

// Parameter is one formal parameter of a function
type Parameter struct {
	Name string
	// Index is the zero-based position in the parameter list.
	Index int
	// IsReceiver marks the implicit receiver (self/cls) of a method so
	// parameter-count detectors can exclude it without re-deriving the fact.
	IsReceiver bool
}

// Function represents a function or method definition
type Function struct {
	Name       string
	StartLine  int
	EndLine    int
	Parameters []Parameter
	Body       []*Statement

	// Class is a back-reference to the owning class for methods; nil for
	// top-level and nested plain functions. Lookup only, not ownership.
	Class *Class
}

// QualifiedName returns Class.Method for methods, the bare name otherwise
func (f *Function) QualifiedName() string {
	if f.Class != nil {
		return fmt.Sprintf("%s.%s", f.Class.Name, f.Name)
	}
	return f.Name
}

// LineCount returns the function length as reported to users
func (f *Function) LineCount() int {
	return f.EndLine - f.StartLine
}

// IsMethod reports whether the function is owned by a class
func (f *Function) IsMethod() bool {
	return f.Class != nil
}

// Receiver returns the implicit receiver parameter name, or "" when the
// function has none.
func (f *Function) Receiver() string {
	if len(f.Parameters) > 0 && f.Parameters[0].IsReceiver {
		return f.Parameters[0].Name
	}
	return ""
}

// ParameterCount returns the parameter count excluding the implicit receiver
func (f *Function) ParameterCount() int {
	n := len(f.Parameters)
	if n > 0 && f.Parameters[0].IsReceiver {
		n--
	}
	return n
}

// Statements returns every statement of the body, flattened depth-first
// in source order.
func (f *Function) Statements() []*Statement {
	var all []*Statement
	for _, stmt := range f.Body {
		stmt.Walk(func(s *Statement) bool {
			all = append(all, s)
			return true
		})
	}
	return all
}

// StatementCount returns the number of statements in the body, including
// nested ones.
func (f *Function) StatementCount() int {
	return len(f.Statements())
}

// NormalizedTokens returns the concatenated normalized token form of the
// whole body, in source order.
func (f *Function) NormalizedTokens() []string {
	var tokens []string
	for _, stmt := range f.Statements() {
		tokens = append(tokens, stmt.Tokens...)
	}
	return tokens
}

// KindSequence returns the ordered statement-kind tags of the body,
// flattened depth-first. It captures control shape independent of tokens.
func (f *Function) KindSequence() []StatementKind {
	stmts := f.Statements()
	kinds := make([]StatementKind, len(stmts))
	for i, stmt := range stmts {
		kinds[i] = stmt.Kind
	}
	return kinds
}

// Class represents a class definition
type Class struct {
	Name      string
	StartLine int
	EndLine   int

	// Fields lists distinct field names: assignment targets directly in
	// the class body plus self.<name> targets in constructor-like methods.
	Fields []string

	// Methods lists the functions defined directly in the class body,
	// in source order.
	Methods []*Function
}

// LineCount returns the class length as reported to users
func (c *Class) LineCount() int {
	return c.EndLine - c.StartLine
}

// LiteralOccurrence records one numeric literal in the unit
type LiteralOccurrence struct {
	Value float64
	Line  int
	// Function is the enclosing function, nil for module or class level.
	Function *Function
}

// AccessOrigin classifies the base object of an attribute access
type AccessOrigin int

const (
	// SelfAccess means the base resolves directly to the method's receiver.
	SelfAccess AccessOrigin = iota
	// ForeignAccess means the base resolves to any other named object,
	// including objects reached through the receiver's own fields.
	ForeignAccess
)

// AttributeAccess records one attribute access expression with its origin,
// classified once at model construction time.
type AttributeAccess struct {
	Origin AccessOrigin
	// Target is the apparent base name of the foreign object; empty for
	// self accesses.
	Target    string
	Attribute string
	Line      int
	Function  *Function
}

// SourceUnit is the structural model of one analyzed compilation unit.
// It is built once per analysis pass and never mutated by detectors.
type SourceUnit struct {
	FilePath  string
	LineCount int

	// Functions lists every function in the unit in source order:
	// top-level functions, methods, and nested functions.
	Functions []*Function

	// Classes lists top-level classes in source order.
	Classes []*Class

	Literals []LiteralOccurrence
	Accesses []AttributeAccess
}

// AccessesOf returns the attribute accesses recorded inside the given
// function, in source order.
func (u *SourceUnit) AccessesOf(fn *Function) []AttributeAccess {
	var result []AttributeAccess
	for _, access := range u.Accesses {
		if access.Function == fn {
			result = append(result, access)
		}
	}
	return result
}

// IsEmpty reports whether the unit contains nothing to analyze
func (u *SourceUnit) IsEmpty() bool {
	return len(u.Functions) == 0 && len(u.Classes) == 0 && len(u.Literals) == 0
}
