package parser

import (
	"strconv"

	sitter "github.com/smacker/go-tree-sitter"
)

// constructorNames lists the methods whose self.<name> assignment targets
// count as class fields, alongside assignments directly in the class body.
var constructorNames = map[string]bool{
	"__init__":      true,
	"__new__":       true,
	"__post_init__": true,
}

// modelBuilder converts a tree-sitter parse tree into a SourceUnit
type modelBuilder struct {
	source []byte
	unit   *SourceUnit
}

func newModelBuilder(filePath string, source []byte) *modelBuilder {
	return &modelBuilder{
		source: source,
		unit: &SourceUnit{
			FilePath:  filePath,
			LineCount: countLines(source),
		},
	}
}

// build walks the module and populates the unit. The returned model is
// complete and never mutated afterwards.
func (b *modelBuilder) build(root *sitter.Node) *SourceUnit {
	b.collectLiterals(root, nil)
	b.buildStatements(root, nil)
	return b.unit
}

// buildStatements builds the statement sequence of a block-like node
// (module, block, else_clause body). Comments are dropped.
func (b *modelBuilder) buildStatements(block *sitter.Node, fn *Function) []*Statement {
	if block == nil {
		return nil
	}

	var stmts []*Statement
	childCount := int(block.NamedChildCount())
	for i := 0; i < childCount; i++ {
		child := block.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		if stmt := b.buildStatement(child, fn); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// buildStatement builds one statement, descending into nested blocks
func (b *modelBuilder) buildStatement(node *sitter.Node, fn *Function) *Statement {
	switch node.Type() {
	case "if_statement":
		return b.buildIf(node, fn)

	case "for_statement":
		stmt := b.newStatement(StmtFor, node)
		stmt.Body = b.buildStatements(node.ChildByFieldName("body"), fn)
		b.attachAlternatives(stmt, node, fn)
		return stmt

	case "while_statement":
		stmt := b.newStatement(StmtWhile, node)
		stmt.Body = b.buildStatements(node.ChildByFieldName("body"), fn)
		b.attachAlternatives(stmt, node, fn)
		return stmt

	case "with_statement":
		stmt := b.newStatement(StmtWith, node)
		stmt.Body = b.buildStatements(node.ChildByFieldName("body"), fn)
		return stmt

	case "try_statement":
		return b.buildTry(node, fn)

	case "match_statement":
		return b.buildMatch(node, fn)

	case "return_statement":
		return b.newStatement(StmtReturn, node)

	case "raise_statement":
		return b.newStatement(StmtRaise, node)

	case "import_statement", "import_from_statement", "future_import_statement":
		return b.newStatement(StmtImport, node)

	case "assert_statement":
		return b.newStatement(StmtAssert, node)

	case "delete_statement":
		return b.newStatement(StmtDelete, node)

	case "global_statement", "nonlocal_statement":
		return b.newStatement(StmtGlobal, node)

	case "pass_statement":
		return b.newStatement(StmtPass, node)

	case "break_statement":
		return b.newStatement(StmtBreak, node)

	case "continue_statement":
		return b.newStatement(StmtContinue, node)

	case "expression_statement":
		return b.buildExpressionStatement(node, fn)

	case "function_definition":
		b.buildFunction(node, nil)
		return b.newStatement(StmtFuncDef, node)

	case "class_definition":
		b.buildClass(node)
		return b.newStatement(StmtClassDef, node)

	case "decorated_definition":
		if def := node.ChildByFieldName("definition"); def != nil {
			return b.buildStatement(def, fn)
		}
		return nil

	default:
		// Unrecognized statement shapes are kept as plain expressions so
		// sequence lengths and line ranges stay faithful to the source.
		return b.newStatement(StmtExpr, node)
	}
}

// buildExpressionStatement tags expression statements by their payload
func (b *modelBuilder) buildExpressionStatement(node *sitter.Node, fn *Function) *Statement {
	kind := StmtExpr
	if inner := node.NamedChild(0); inner != nil {
		switch inner.Type() {
		case "assignment":
			kind = StmtAssign
		case "augmented_assignment":
			kind = StmtAugAssign
		case "call":
			kind = StmtCall
		case "await":
			if callNode := inner.NamedChild(0); callNode != nil && callNode.Type() == "call" {
				kind = StmtCall
			}
		}
	}
	return b.newStatement(kind, node)
}

// buildIf builds an if statement; elif branches become nested If
// statements in Orelse, mirroring Python's own AST nesting, so each one
// counts as a decision point.
func (b *modelBuilder) buildIf(node *sitter.Node, fn *Function) *Statement {
	stmt := b.newStatement(StmtIf, node)
	stmt.Body = b.buildStatements(node.ChildByFieldName("consequence"), fn)
	b.attachAlternatives(stmt, node, fn)
	return stmt
}

// attachAlternatives appends elif and else branches to Orelse
func (b *modelBuilder) attachAlternatives(stmt *Statement, node *sitter.Node, fn *Function) {
	childCount := int(node.ChildCount())
	for i := 0; i < childCount; i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "elif_clause":
			elif := b.newStatement(StmtIf, child)
			elif.Body = b.buildStatements(child.ChildByFieldName("consequence"), fn)
			stmt.Orelse = append(stmt.Orelse, elif)
		case "else_clause":
			stmt.Orelse = append(stmt.Orelse, b.buildStatements(child.ChildByFieldName("body"), fn)...)
		}
	}
}

// buildTry builds a try statement with its handler, else, and finally blocks
func (b *modelBuilder) buildTry(node *sitter.Node, fn *Function) *Statement {
	stmt := b.newStatement(StmtTry, node)
	stmt.Body = b.buildStatements(node.ChildByFieldName("body"), fn)

	childCount := int(node.ChildCount())
	for i := 0; i < childCount; i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "except_clause", "except_group_clause":
			handler := b.newStatement(StmtExcept, child)
			handler.Body = b.buildStatements(blockChild(child), fn)
			stmt.Handlers = append(stmt.Handlers, handler)
		case "else_clause":
			stmt.Orelse = append(stmt.Orelse, b.buildStatements(child.ChildByFieldName("body"), fn)...)
		case "finally_clause":
			stmt.Final = append(stmt.Final, b.buildStatements(blockChild(child), fn)...)
		}
	}
	return stmt
}

// buildMatch builds a match statement; each case becomes a Case statement
func (b *modelBuilder) buildMatch(node *sitter.Node, fn *Function) *Statement {
	stmt := b.newStatement(StmtMatch, node)
	body := node.ChildByFieldName("body")
	if body == nil {
		return stmt
	}
	childCount := int(body.NamedChildCount())
	for i := 0; i < childCount; i++ {
		child := body.NamedChild(i)
		if child == nil || child.Type() != "case_clause" {
			continue
		}
		caseStmt := b.newStatement(StmtCase, child)
		caseStmt.Body = b.buildStatements(child.ChildByFieldName("consequence"), fn)
		stmt.Body = append(stmt.Body, caseStmt)
	}
	return stmt
}

// newStatement creates a statement with its line range, normalized token
// form, and short-circuit connective count.
func (b *modelBuilder) newStatement(kind StatementKind, node *sitter.Node) *Statement {
	return &Statement{
		Kind:      kind,
		StartLine: startLine(node),
		EndLine:   endLine(node),
		Tokens:    b.tokenizeOwn(node),
		BoolOps:   b.countBoolOpsOwn(node),
	}
}

// buildFunction builds a function or method and registers it with the
// unit in source order. cls is the owning class for direct class-body
// methods, nil otherwise.
func (b *modelBuilder) buildFunction(node *sitter.Node, cls *Class) *Function {
	fn := &Function{
		StartLine: startLine(node),
		EndLine:   endLine(node),
		Class:     cls,
	}
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		fn.Name = b.content(nameNode)
	}
	fn.Parameters = b.buildParameters(node.ChildByFieldName("parameters"), cls != nil)

	// Register before descending so the unit lists enclosing functions
	// ahead of their nested ones.
	b.unit.Functions = append(b.unit.Functions, fn)

	body := node.ChildByFieldName("body")
	fn.Body = b.buildStatements(body, fn)
	b.collectLiterals(body, fn)
	b.collectAccesses(body, fn)
	return fn
}

// buildParameters extracts the parameter list. The leading self/cls
// parameter of a method is flagged as the implicit receiver.
func (b *modelBuilder) buildParameters(node *sitter.Node, isMethod bool) []Parameter {
	if node == nil {
		return nil
	}

	var params []Parameter
	childCount := int(node.NamedChildCount())
	for i := 0; i < childCount; i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}

		var name string
		switch child.Type() {
		case "identifier":
			name = b.content(child)
		case "default_parameter", "typed_default_parameter":
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				name = b.content(nameNode)
			}
		case "typed_parameter":
			if nameNode := child.NamedChild(0); nameNode != nil && nameNode.Type() == "identifier" {
				name = b.content(nameNode)
			}
		case "list_splat_pattern":
			name = "*" + b.namedChildText(child)
		case "dictionary_splat_pattern":
			name = "**" + b.namedChildText(child)
		case "positional_separator", "keyword_separator":
			// Bare / and * markers are not parameters.
			continue
		default:
			continue
		}
		if name == "" {
			continue
		}

		index := len(params)
		params = append(params, Parameter{
			Name:       name,
			Index:      index,
			IsReceiver: isMethod && index == 0 && (name == "self" || name == "cls"),
		})
	}
	return params
}

// buildClass builds a class definition and registers it with the unit
func (b *modelBuilder) buildClass(node *sitter.Node) *Class {
	cls := &Class{
		StartLine: startLine(node),
		EndLine:   endLine(node),
	}
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		cls.Name = b.content(nameNode)
	}
	b.unit.Classes = append(b.unit.Classes, cls)

	body := node.ChildByFieldName("body")
	if body == nil {
		return cls
	}

	seenFields := map[string]bool{}
	addField := func(name string) {
		if name != "" && !seenFields[name] {
			seenFields[name] = true
			cls.Fields = append(cls.Fields, name)
		}
	}

	childCount := int(body.NamedChildCount())
	for i := 0; i < childCount; i++ {
		child := body.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}

		def := child
		if def.Type() == "decorated_definition" {
			if inner := def.ChildByFieldName("definition"); inner != nil {
				def = inner
			}
		}

		switch def.Type() {
		case "function_definition":
			method := b.buildFunction(def, cls)
			cls.Methods = append(cls.Methods, method)
			if constructorNames[method.Name] {
				for _, name := range b.receiverFieldTargets(def, method.Receiver()) {
					addField(name)
				}
			}
		case "class_definition":
			b.buildClass(def)
		default:
			for _, name := range b.classFieldTargets(child) {
				addField(name)
			}
			b.collectLiterals(child, nil)
		}
	}
	return cls
}

// classFieldTargets extracts assignment target names from a direct
// class-body statement.
func (b *modelBuilder) classFieldTargets(stmt *sitter.Node) []string {
	if stmt.Type() != "expression_statement" {
		return nil
	}

	var names []string
	childCount := int(stmt.NamedChildCount())
	for i := 0; i < childCount; i++ {
		child := stmt.NamedChild(i)
		if child == nil || child.Type() != "assignment" {
			continue
		}
		names = append(names, b.assignmentTargetNames(child)...)
	}
	return names
}

// assignmentTargetNames returns identifier targets of an assignment,
// following chained assignments (a = b = value) on the right-hand side.
func (b *modelBuilder) assignmentTargetNames(assign *sitter.Node) []string {
	var names []string
	left := assign.ChildByFieldName("left")
	if left != nil {
		switch left.Type() {
		case "identifier":
			names = append(names, b.content(left))
		case "pattern_list", "tuple_pattern":
			count := int(left.NamedChildCount())
			for i := 0; i < count; i++ {
				if el := left.NamedChild(i); el != nil && el.Type() == "identifier" {
					names = append(names, b.content(el))
				}
			}
		}
	}
	if right := assign.ChildByFieldName("right"); right != nil && right.Type() == "assignment" {
		names = append(names, b.assignmentTargetNames(right)...)
	}
	return names
}

// receiverFieldTargets collects self.<name> assignment targets in a
// constructor-like method body.
func (b *modelBuilder) receiverFieldTargets(def *sitter.Node, receiver string) []string {
	if receiver == "" {
		return nil
	}
	body := def.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	var names []string
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Type() {
		case "function_definition", "class_definition":
			return
		case "assignment":
			left := n.ChildByFieldName("left")
			if left != nil && left.Type() == "attribute" {
				obj := left.ChildByFieldName("object")
				attr := left.ChildByFieldName("attribute")
				if obj != nil && attr != nil && obj.Type() == "identifier" && b.content(obj) == receiver {
					names = append(names, b.content(attr))
				}
			}
		}
		childCount := int(n.ChildCount())
		for i := 0; i < childCount; i++ {
			if child := n.Child(i); child != nil {
				walk(child)
			}
		}
	}
	walk(body)
	return names
}

// collectLiterals records numeric literal occurrences in the subtree,
// stopping at nested function and class definitions (those scan their
// own bodies when built).
func (b *modelBuilder) collectLiterals(node *sitter.Node, fn *Function) {
	if node == nil {
		return
	}

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Type() {
		case "function_definition", "class_definition":
			return
		case "unary_operator":
			// Fold a leading minus into the literal it negates so that
			// -1 matches the whitelist as a single occurrence.
			if op := n.Child(0); op != nil && b.content(op) == "-" {
				if arg := n.ChildByFieldName("argument"); arg != nil {
					if value, ok := b.numericValue(arg); ok {
						b.unit.Literals = append(b.unit.Literals, LiteralOccurrence{
							Value:    -value,
							Line:     startLine(n),
							Function: fn,
						})
						return
					}
				}
			}
		case "integer", "float":
			if value, ok := b.numericValue(n); ok {
				b.unit.Literals = append(b.unit.Literals, LiteralOccurrence{
					Value:    value,
					Line:     startLine(n),
					Function: fn,
				})
			}
			return
		}

		childCount := int(n.ChildCount())
		for i := 0; i < childCount; i++ {
			if child := n.Child(i); child != nil {
				walk(child)
			}
		}
	}
	walk(node)
}

// numericValue parses an integer or float literal node
func (b *modelBuilder) numericValue(n *sitter.Node) (float64, bool) {
	text := b.content(n)
	switch n.Type() {
	case "integer":
		if value, err := strconv.ParseInt(text, 0, 64); err == nil {
			return float64(value), true
		}
	case "float":
		if value, err := strconv.ParseFloat(text, 64); err == nil {
			return value, true
		}
	}
	return 0, false
}

// collectAccesses records every attribute access in the function body
// with its origin classification, stopping at nested definitions.
func (b *modelBuilder) collectAccesses(node *sitter.Node, fn *Function) {
	if node == nil {
		return
	}

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Type() {
		case "function_definition", "class_definition":
			return
		case "attribute":
			if access := b.classifyAccess(n, fn); access != nil {
				b.unit.Accesses = append(b.unit.Accesses, *access)
			}
		}
		childCount := int(n.ChildCount())
		for i := 0; i < childCount; i++ {
			if child := n.Child(i); child != nil {
				walk(child)
			}
		}
	}
	walk(node)
}

// classifyAccess tags one attribute access as self- or foreign-origin.
// A chain reached through a receiver field (self.store.items) is foreign
// to the first field after the receiver, not a self access.
func (b *modelBuilder) classifyAccess(n *sitter.Node, fn *Function) *AttributeAccess {
	obj := n.ChildByFieldName("object")
	attrNode := n.ChildByFieldName("attribute")
	if obj == nil || attrNode == nil {
		return nil
	}

	root, first := b.resolveBase(obj)
	if root == "" {
		return nil
	}

	access := &AttributeAccess{
		Attribute: b.content(attrNode),
		Line:      startLine(n),
		Function:  fn,
	}

	receiver := fn.Receiver()
	if receiver != "" && root == receiver {
		if first == "" {
			access.Origin = SelfAccess
			return access
		}
		access.Origin = ForeignAccess
		access.Target = first
		return access
	}

	access.Origin = ForeignAccess
	access.Target = root
	return access
}

// resolveBase resolves the root name of a base expression chain and the
// first attribute segment after the root ("" when the base is the root
// itself). Bases that do not reduce to a named object yield "".
func (b *modelBuilder) resolveBase(n *sitter.Node) (root, first string) {
	switch n.Type() {
	case "identifier":
		return b.content(n), ""
	case "attribute":
		obj := n.ChildByFieldName("object")
		attrNode := n.ChildByFieldName("attribute")
		if obj == nil || attrNode == nil {
			return "", ""
		}
		root, first = b.resolveBase(obj)
		if root == "" {
			return "", ""
		}
		if first == "" {
			return root, b.content(attrNode)
		}
		return root, first
	case "call":
		if fnNode := n.ChildByFieldName("function"); fnNode != nil {
			return b.resolveBase(fnNode)
		}
	case "subscript":
		if value := n.ChildByFieldName("value"); value != nil {
			return b.resolveBase(value)
		}
	case "parenthesized_expression":
		if inner := n.NamedChild(0); inner != nil {
			return b.resolveBase(inner)
		}
	}
	return "", ""
}

// ownStopTypes are the child subtrees excluded from a statement's "own"
// text: nested blocks and clauses become separate statements, and nested
// definitions own their bodies.
var ownStopTypes = map[string]bool{
	"block":               true,
	"elif_clause":         true,
	"else_clause":         true,
	"except_clause":       true,
	"except_group_clause": true,
	"finally_clause":      true,
	"case_clause":         true,
	"function_definition": true,
	"class_definition":    true,
	"comment":             true,
}

// tokenizeOwn produces the normalized token form of a statement's own
// text: identifiers and literals become role-tagged placeholders, while
// structural keywords and operators stay verbatim.
func (b *modelBuilder) tokenizeOwn(node *sitter.Node) []string {
	var tokens []string

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if ownStopTypes[n.Type()] {
			return
		}
		switch n.Type() {
		case "identifier":
			tokens = append(tokens, "NAME")
			return
		case "integer", "float":
			tokens = append(tokens, "NUM")
			return
		case "string", "concatenated_string":
			tokens = append(tokens, "STR")
			return
		}
		if n.ChildCount() == 0 {
			tokens = append(tokens, b.content(n))
			return
		}
		childCount := int(n.ChildCount())
		for i := 0; i < childCount; i++ {
			if child := n.Child(i); child != nil {
				walk(child)
			}
		}
	}

	childCount := int(node.ChildCount())
	for i := 0; i < childCount; i++ {
		if child := node.Child(i); child != nil {
			walk(child)
		}
	}
	if len(tokens) == 0 && node.ChildCount() == 0 {
		walk(node)
	}
	return tokens
}

// countBoolOpsOwn counts the and/or connectives in a statement's own
// expressions. Each boolean_operator node carries exactly one connective.
func (b *modelBuilder) countBoolOpsOwn(node *sitter.Node) int {
	count := 0

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if ownStopTypes[n.Type()] {
			return
		}
		if n.Type() == "boolean_operator" {
			count++
		}
		childCount := int(n.ChildCount())
		for i := 0; i < childCount; i++ {
			if child := n.Child(i); child != nil {
				walk(child)
			}
		}
	}

	childCount := int(node.ChildCount())
	for i := 0; i < childCount; i++ {
		if child := node.Child(i); child != nil {
			walk(child)
		}
	}
	return count
}

// content returns the source text of a node
func (b *modelBuilder) content(n *sitter.Node) string {
	return n.Content(b.source)
}

// namedChildText returns the text of the first named child, if any
func (b *modelBuilder) namedChildText(n *sitter.Node) string {
	if child := n.NamedChild(0); child != nil {
		return b.content(child)
	}
	return ""
}

// blockChild returns the first block child of a clause node
func blockChild(n *sitter.Node) *sitter.Node {
	childCount := int(n.ChildCount())
	for i := 0; i < childCount; i++ {
		if child := n.Child(i); child != nil && child.Type() == "block" {
			return child
		}
	}
	return nil
}

func startLine(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

func endLine(n *sitter.Node) int {
	return int(n.EndPoint().Row) + 1
}
