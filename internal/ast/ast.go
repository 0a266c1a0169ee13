package ast

import "github.com/strata-lang/strata/internal/source"

// Node represents any syntax tree node with an associated source span. The
// tree is produced by the external parser service and is immutable once the
// checker sees it.
type Node interface {
	Span() source.Span
}

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode()
}

// Decl represents a top-level declaration.
type Decl interface {
	Node
	declNode()
	DeclName() *Ident
}

// Operator identifies a binary operator token.
type Operator string

const (
	OpAnd      Operator = "&&"
	OpOr       Operator = "||"
	OpEq       Operator = "=="
	OpNeq      Operator = "!="
	OpEqCI     Operator = "=~"
	OpNeqCI    Operator = "!~"
	OpLt       Operator = "<"
	OpLe       Operator = "<="
	OpGt       Operator = ">"
	OpGe       Operator = ">="
	OpAdd      Operator = "+"
	OpSub      Operator = "-"
	OpMul      Operator = "*"
	OpDiv      Operator = "/"
	OpMod      Operator = "%"
	OpCoalesce Operator = "??"
)

// File represents one checked document.
type File struct {
	Decls []Decl
	span  source.Span
}

// Span returns the span covering the entire file.
func (f *File) Span() source.Span { return f.span }

// NewFile constructs a file node with the provided span.
func NewFile(decls []Decl, span source.Span) *File {
	return &File{Decls: decls, span: span}
}

// Ident represents an identifier.
type Ident struct {
	Name string
	span source.Span
}

// Span returns the identifier span.
func (i *Ident) Span() source.Span { return i.span }

// exprNode marks Ident as an expression.
func (*Ident) exprNode() {}

// NewIdent constructs an identifier node.
func NewIdent(name string, span source.Span) *Ident {
	return &Ident{Name: name, span: span}
}

// IntegerLit represents an integer literal.
type IntegerLit struct {
	Value int64
	span  source.Span
}

// Span returns the literal span.
func (l *IntegerLit) Span() source.Span { return l.span }

// exprNode marks IntegerLit as an expression.
func (*IntegerLit) exprNode() {}

// NewIntegerLit constructs an integer literal node.
func NewIntegerLit(value int64, span source.Span) *IntegerLit {
	return &IntegerLit{Value: value, span: span}
}

// StringLit represents a string literal.
type StringLit struct {
	Value string
	span  source.Span
}

// Span returns the literal span.
func (l *StringLit) Span() source.Span { return l.span }

// exprNode marks StringLit as an expression.
func (*StringLit) exprNode() {}

// NewStringLit constructs a string literal node.
func NewStringLit(value string, span source.Span) *StringLit {
	return &StringLit{Value: value, span: span}
}

// BoolLit represents a boolean literal.
type BoolLit struct {
	Value bool
	span  source.Span
}

// Span returns the literal span.
func (l *BoolLit) Span() source.Span { return l.span }

// exprNode marks BoolLit as an expression.
func (*BoolLit) exprNode() {}

// NewBoolLit constructs a boolean literal node.
func NewBoolLit(value bool, span source.Span) *BoolLit {
	return &BoolLit{Value: value, span: span}
}

// NullLit represents the null literal.
type NullLit struct {
	span source.Span
}

// Span returns the literal span.
func (l *NullLit) Span() source.Span { return l.span }

// exprNode marks NullLit as an expression.
func (*NullLit) exprNode() {}

// NewNullLit constructs a null literal node.
func NewNullLit(span source.Span) *NullLit {
	return &NullLit{span: span}
}

// ArrayExpr represents an array literal.
type ArrayExpr struct {
	Items []Expr
	span  source.Span
}

// Span returns the expression span.
func (e *ArrayExpr) Span() source.Span { return e.span }

// exprNode marks ArrayExpr as an expression.
func (*ArrayExpr) exprNode() {}

// NewArrayExpr constructs an array literal node.
func NewArrayExpr(items []Expr, span source.Span) *ArrayExpr {
	return &ArrayExpr{Items: items, span: span}
}

// ObjectProperty is one name/value pair inside an object literal.
type ObjectProperty struct {
	Name  *Ident
	Value Expr
	span  source.Span
}

// Span returns the property span.
func (p *ObjectProperty) Span() source.Span { return p.span }

// NewObjectProperty constructs an object property node.
func NewObjectProperty(name *Ident, value Expr, span source.Span) *ObjectProperty {
	return &ObjectProperty{Name: name, Value: value, span: span}
}

// ObjectExpr represents an object literal.
type ObjectExpr struct {
	Properties []*ObjectProperty
	span       source.Span
}

// Span returns the expression span.
func (e *ObjectExpr) Span() source.Span { return e.span }

// exprNode marks ObjectExpr as an expression.
func (*ObjectExpr) exprNode() {}

// NewObjectExpr constructs an object literal node.
func NewObjectExpr(props []*ObjectProperty, span source.Span) *ObjectExpr {
	return &ObjectExpr{Properties: props, span: span}
}

// BinaryExpr represents an infix binary expression.
type BinaryExpr struct {
	Op    Operator
	Left  Expr
	Right Expr
	span  source.Span
}

// Span returns the expression span.
func (e *BinaryExpr) Span() source.Span { return e.span }

// exprNode marks BinaryExpr as an expression.
func (*BinaryExpr) exprNode() {}

// NewBinaryExpr constructs a binary expression node.
func NewBinaryExpr(op Operator, left, right Expr, span source.Span) *BinaryExpr {
	return &BinaryExpr{Op: op, Left: left, Right: right, span: span}
}

// TernaryExpr represents a conditional expression `cond ? then : else`.
type TernaryExpr struct {
	Cond Expr
	Then Expr
	Else Expr
	span source.Span
}

// Span returns the expression span.
func (e *TernaryExpr) Span() source.Span { return e.span }

// exprNode marks TernaryExpr as an expression.
func (*TernaryExpr) exprNode() {}

// NewTernaryExpr constructs a ternary expression node.
func NewTernaryExpr(cond, then, els Expr, span source.Span) *TernaryExpr {
	return &TernaryExpr{Cond: cond, Then: then, Else: els, span: span}
}

// CallExpr represents a function call. The callee is an Ident for built-in
// calls and a MemberExpr for instance-style calls on a declaration.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	span   source.Span
}

// Span returns the expression span.
func (e *CallExpr) Span() source.Span { return e.span }

// exprNode marks CallExpr as an expression.
func (*CallExpr) exprNode() {}

// NewCallExpr constructs a call expression node.
func NewCallExpr(callee Expr, args []Expr, span source.Span) *CallExpr {
	return &CallExpr{Callee: callee, Args: args, span: span}
}

// LambdaExpr represents an arrow lambda `(a, b) => body`. A nil Body means
// the parser recovered past a dangling arrow; the checker reports it rather
// than guessing.
type LambdaExpr struct {
	Params []*Ident
	Body   Expr
	span   source.Span
}

// Span returns the expression span.
func (e *LambdaExpr) Span() source.Span { return e.span }

// exprNode marks LambdaExpr as an expression.
func (*LambdaExpr) exprNode() {}

// NewLambdaExpr constructs a lambda expression node.
func NewLambdaExpr(params []*Ident, body Expr, span source.Span) *LambdaExpr {
	return &LambdaExpr{Params: params, Body: body, span: span}
}

// MemberExpr represents a property access expression `target.member`.
type MemberExpr struct {
	Target Expr
	Member *Ident
	span   source.Span
}

// Span returns the expression span.
func (e *MemberExpr) Span() source.Span { return e.span }

// exprNode marks MemberExpr as an expression.
func (*MemberExpr) exprNode() {}

// NewMemberExpr constructs a member access node.
func NewMemberExpr(target Expr, member *Ident, span source.Span) *MemberExpr {
	return &MemberExpr{Target: target, Member: member, span: span}
}

// IndexExpr represents an index access expression `target[index]`.
type IndexExpr struct {
	Target Expr
	Index  Expr
	span   source.Span
}

// Span returns the expression span.
func (e *IndexExpr) Span() source.Span { return e.span }

// exprNode marks IndexExpr as an expression.
func (*IndexExpr) exprNode() {}

// NewIndexExpr constructs an index access node.
func NewIndexExpr(target, index Expr, span source.Span) *IndexExpr {
	return &IndexExpr{Target: target, Index: index, span: span}
}

// ParenExpr represents a parenthesized expression.
type ParenExpr struct {
	Inner Expr
	span  source.Span
}

// Span returns the expression span.
func (e *ParenExpr) Span() source.Span { return e.span }

// exprNode marks ParenExpr as an expression.
func (*ParenExpr) exprNode() {}

// NewParenExpr constructs a parenthesized expression node.
func NewParenExpr(inner Expr, span source.Span) *ParenExpr {
	return &ParenExpr{Inner: inner, span: span}
}

// ForExpr represents a for-expression `[for item, i in source: body]`.
// The index variable is optional.
type ForExpr struct {
	Item   *Ident
	Index  *Ident
	Source Expr
	Body   Expr
	span   source.Span
}

// Span returns the expression span.
func (e *ForExpr) Span() source.Span { return e.span }

// exprNode marks ForExpr as an expression.
func (*ForExpr) exprNode() {}

// NewForExpr constructs a for-expression node.
func NewForExpr(item, index *Ident, src, body Expr, span source.Span) *ForExpr {
	return &ForExpr{Item: item, Index: index, Source: src, Body: body, span: span}
}

// VarDecl represents a variable declaration `var name = value`.
type VarDecl struct {
	Name  *Ident
	Value Expr
	span  source.Span
}

// Span returns the declaration span.
func (d *VarDecl) Span() source.Span { return d.span }

// DeclName returns the declared name.
func (d *VarDecl) DeclName() *Ident { return d.Name }

// declNode marks VarDecl as a declaration.
func (*VarDecl) declNode() {}

// NewVarDecl constructs a variable declaration node.
func NewVarDecl(name *Ident, value Expr, span source.Span) *VarDecl {
	return &VarDecl{Name: name, Value: value, span: span}
}

// ResourceDecl represents a resource declaration. TypeRef is the opaque
// resource type string resolved by the schema provider. The body is either
// an ObjectExpr or, for looped resources, a ForExpr whose body is the
// per-iteration ObjectExpr.
type ResourceDecl struct {
	Name    *Ident
	TypeRef string
	Body    Expr
	span    source.Span
}

// Span returns the declaration span.
func (d *ResourceDecl) Span() source.Span { return d.span }

// DeclName returns the declared name.
func (d *ResourceDecl) DeclName() *Ident { return d.Name }

// declNode marks ResourceDecl as a declaration.
func (*ResourceDecl) declNode() {}

// NewResourceDecl constructs a resource declaration node.
func NewResourceDecl(name *Ident, typeRef string, body Expr, span source.Span) *ResourceDecl {
	return &ResourceDecl{Name: name, TypeRef: typeRef, Body: body, span: span}
}

// ModuleDecl represents a module declaration. Source is the opaque module
// reference string resolved by the schema provider.
type ModuleDecl struct {
	Name   *Ident
	Source string
	Body   Expr
	span   source.Span
}

// Span returns the declaration span.
func (d *ModuleDecl) Span() source.Span { return d.span }

// DeclName returns the declared name.
func (d *ModuleDecl) DeclName() *Ident { return d.Name }

// declNode marks ModuleDecl as a declaration.
func (*ModuleDecl) declNode() {}

// NewModuleDecl constructs a module declaration node.
func NewModuleDecl(name *Ident, src string, body Expr, span source.Span) *ModuleDecl {
	return &ModuleDecl{Name: name, Source: src, Body: body, span: span}
}
