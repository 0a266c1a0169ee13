package types

import (
	"github.com/strata-lang/strata/internal/ast"
	"github.com/strata-lang/strata/internal/diag"
	"github.com/strata-lang/strata/internal/schema"
)

// Checker assigns a type to every expression of one document. Each document
// gets its own Checker instance; nothing here is shared, so independent
// documents can be checked on parallel workers.
type Checker struct {
	Provider schema.Provider
	Sink     *diag.Sink

	// ExprTypes is the result mapping from every visited node to its
	// resolved type, including Error entries. Once a node is recorded its
	// type never changes, which makes re-checking idempotent.
	ExprTypes map[ast.Node]Type

	fileScope  *Scope
	inProgress map[ast.Node]bool
}

// NewChecker creates a checker for one document. The provider supplies
// resource/module schemas as an already-loaded snapshot; sink receives
// diagnostics in report order.
func NewChecker(provider schema.Provider, sink *diag.Sink) *Checker {
	if sink == nil {
		sink = diag.NewSink()
	}
	return &Checker{
		Provider:   provider,
		Sink:       sink,
		ExprTypes:  make(map[ast.Node]Type),
		fileScope:  NewScope(nil),
		inProgress: make(map[ast.Node]bool),
	}
}

// Check types every declaration of the file in order. The language has no
// hoisting, so a declaration may only reference names declared above it.
// Checking always completes: malformed subtrees degrade to the error type
// and checking continues past them.
func (c *Checker) Check(file *ast.File) {
	for _, decl := range file.Decls {
		c.checkDecl(decl)
	}
}

// TypeOf returns the resolved type for a node, or nil if the node was never
// visited.
func (c *Checker) TypeOf(node ast.Node) Type {
	return c.ExprTypes[node]
}

func (c *Checker) checkDecl(decl ast.Decl) {
	// A declaration checked on an earlier pass keeps its memoized result;
	// re-checking the same tree must not re-report against its own symbol.
	if _, ok := c.ExprTypes[decl]; ok {
		return
	}

	name := decl.DeclName()
	if name != nil && c.fileScope.Symbols[name.Name] != nil {
		c.reportError(diag.CodeDuplicateDeclaration, name.Span(),
			"%q is already declared in this document", name.Name)
		c.setType(decl, TypeError)
		c.markErrored(decl)
		return
	}

	// The symbol is inserted before its value is checked, with a nil type.
	// An identifier that resolves to a nil-typed symbol whose declaration
	// is still being checked is a self-reference, reported as a cycle
	// instead of recursing.
	sym := &Symbol{Name: name.Name, DefNode: decl}
	c.fileScope.Insert(name.Name, sym)
	c.inProgress[decl] = true
	defer delete(c.inProgress, decl)

	var t Type
	switch d := decl.(type) {
	case *ast.VarDecl:
		t = c.checkExpr(d.Value, c.fileScope)

	case *ast.ResourceDecl:
		t = c.checkResourceDecl(d)

	case *ast.ModuleDecl:
		t = c.checkModuleDecl(d)

	default:
		t = TypeError
	}

	sym.Type = t
	c.setType(decl, t)
	c.setType(name, t)
}

func (c *Checker) checkResourceDecl(d *ast.ResourceDecl) Type {
	var elem Type = TypeError
	var body *Object
	if c.Provider != nil {
		if s, ok := c.Provider.Resource(d.TypeRef); ok {
			res := ResourceFor(s)
			elem, body = res, res.Body
		}
	}
	if body == nil {
		c.reportError(diag.CodeUnknownResourceType, d.Span(),
			"unknown resource type %q", d.TypeRef)
	}
	return c.checkDeclBody(d.Body, elem, body)
}

func (c *Checker) checkModuleDecl(d *ast.ModuleDecl) Type {
	var elem Type = TypeError
	var body *Object
	if c.Provider != nil {
		if s, ok := c.Provider.Module(d.Source); ok {
			mod := ModuleFor(s)
			elem, body = mod, mod.Body
		}
	}
	if body == nil {
		c.reportError(diag.CodeUnknownResourceType, d.Span(),
			"unknown module source %q", d.Source)
	}
	return c.checkDeclBody(d.Body, elem, body)
}

// setType records a node's type. First write wins: once a node is resolved,
// re-checking it observes the cached result and emits nothing new.
func (c *Checker) setType(node ast.Node, t Type) Type {
	if t == nil {
		t = TypeError
	}
	if existing, ok := c.ExprTypes[node]; ok {
		return existing
	}
	c.ExprTypes[node] = t
	return t
}

// markErrored records the error type for every expression node of a subtree
// the checker decided not to descend into, keeping the node-to-type mapping
// total without emitting diagnostics for the skipped nodes.
func (c *Checker) markErrored(root ast.Node) {
	if root == nil {
		return
	}
	ast.Walk(root, func(n ast.Node) bool {
		if _, ok := n.(ast.Expr); ok {
			c.setType(n, TypeError)
		}
		return true
	})
}
