package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strata-lang/strata/internal/ast"
	"github.com/strata-lang/strata/internal/diag"
	"github.com/strata-lang/strata/internal/source"
)

// The checker is exercised over manually constructed trees: the parser
// service is a separate component, and building nodes by hand keeps each
// test focused on exactly one typing rule.

func sp() source.Span { return source.Span{Filename: "test.strata", Line: 1, Column: 1} }

func id(name string) *ast.Ident           { return ast.NewIdent(name, sp()) }
func intLit(v int64) *ast.IntegerLit      { return ast.NewIntegerLit(v, sp()) }
func strLit(v string) *ast.StringLit      { return ast.NewStringLit(v, sp()) }
func boolLit(v bool) *ast.BoolLit         { return ast.NewBoolLit(v, sp()) }
func nullLit() *ast.NullLit               { return ast.NewNullLit(sp()) }
func arr(items ...ast.Expr) *ast.ArrayExpr { return ast.NewArrayExpr(items, sp()) }

func call(name string, args ...ast.Expr) *ast.CallExpr {
	return ast.NewCallExpr(id(name), args, sp())
}

func lambda(body ast.Expr, params ...string) *ast.LambdaExpr {
	idents := make([]*ast.Ident, len(params))
	for i, p := range params {
		idents[i] = id(p)
	}
	return ast.NewLambdaExpr(idents, body, sp())
}

func binary(op ast.Operator, left, right ast.Expr) *ast.BinaryExpr {
	return ast.NewBinaryExpr(op, left, right, sp())
}

func varDecl(name string, value ast.Expr) *ast.VarDecl {
	return ast.NewVarDecl(id(name), value, sp())
}

func fileOf(decls ...ast.Decl) *ast.File {
	return ast.NewFile(decls, sp())
}

func checkFile(file *ast.File) *Checker {
	c := NewChecker(nil, diag.NewSink())
	c.Check(file)
	return c
}

func codesOf(c *Checker) []diag.Code {
	var codes []diag.Code
	for _, d := range c.Sink.All() {
		codes = append(codes, d.Code)
	}
	return codes
}

func TestCheckerLiterals(t *testing.T) {
	decls := []ast.Decl{
		varDecl("i", intLit(42)),
		varDecl("s", strLit("hello")),
		varDecl("b", boolLit(true)),
		varDecl("n", nullLit()),
	}
	file := fileOf(decls...)
	c := checkFile(file)

	require.Empty(t, c.Sink.All())
	assert.Equal(t, TypeInt, c.TypeOf(decls[0].(*ast.VarDecl).Value))
	assert.Equal(t, TypeString, c.TypeOf(decls[1].(*ast.VarDecl).Value))
	assert.Equal(t, TypeBool, c.TypeOf(decls[2].(*ast.VarDecl).Value))
	assert.Equal(t, TypeNull, c.TypeOf(decls[3].(*ast.VarDecl).Value))
}

func TestCheckerArrayLiterals(t *testing.T) {
	homogeneous := varDecl("a", arr(intLit(1), intLit(2)))
	mixed := varDecl("b", arr(boolLit(true), strLit("hello!")))
	empty := varDecl("c", arr())
	c := checkFile(fileOf(homogeneous, mixed, empty))

	require.Empty(t, c.Sink.All())
	assert.Equal(t, "array<int>", c.TypeOf(homogeneous.Value).String())
	assert.Equal(t, "array<union(bool | string)>", c.TypeOf(mixed.Value).String())
	assert.Equal(t, "array<any>", c.TypeOf(empty.Value).String())
}

func TestCheckerObjectLiteral(t *testing.T) {
	obj := ast.NewObjectExpr([]*ast.ObjectProperty{
		ast.NewObjectProperty(id("name"), strLit("bucket"), sp()),
		ast.NewObjectProperty(id("replicas"), intLit(3), sp()),
	}, sp())
	decl := varDecl("cfg", obj)
	member := varDecl("n", ast.NewMemberExpr(id("cfg"), id("replicas"), sp()))
	c := checkFile(fileOf(decl, member))

	require.Empty(t, c.Sink.All())
	assert.Equal(t, TypeInt, c.TypeOf(member.Value))
}

func TestCheckerUndefinedIdentifier(t *testing.T) {
	c := checkFile(fileOf(varDecl("x", id("missing"))))
	require.Len(t, c.Sink.All(), 1)
	assert.Equal(t, diag.CodeUndefinedIdentifier, c.Sink.All()[0].Code)
}

func TestCheckerBinaryExpressions(t *testing.T) {
	okDecl := varDecl("x", binary(ast.OpAdd, intLit(1), intLit(2)))
	badDecl := varDecl("y", binary(ast.OpAdd, strLit("a"), strLit("b")))
	c := checkFile(fileOf(okDecl, badDecl))

	assert.Equal(t, TypeInt, c.TypeOf(okDecl.Value))
	assert.Equal(t, TypeError, c.TypeOf(badDecl.Value))
	require.Len(t, c.Sink.All(), 1)
	d := c.Sink.All()[0]
	assert.Equal(t, diag.CodeNoMatchingOverload, d.Code)
	assert.Contains(t, d.Message, `"+"`)
	assert.Contains(t, d.Message, "string")
}

func TestCheckerErrorPoisonsWithoutCascades(t *testing.T) {
	// missing + 1 < 2: the undefined identifier is the only diagnostic;
	// the enclosing operators degrade silently.
	inner := binary(ast.OpAdd, id("missing"), intLit(1))
	outer := binary(ast.OpLt, inner, intLit(2))
	decl := varDecl("x", outer)
	c := checkFile(fileOf(decl))

	require.Len(t, c.Sink.All(), 1)
	assert.Equal(t, diag.CodeUndefinedIdentifier, c.Sink.All()[0].Code)
	assert.Equal(t, TypeError, c.TypeOf(inner))
	assert.Equal(t, TypeError, c.TypeOf(outer))
}

func TestCheckerTernary(t *testing.T) {
	cond := ast.NewTernaryExpr(boolLit(true), intLit(1), intLit(2), sp())
	widened := ast.NewTernaryExpr(boolLit(true), intLit(1), strLit("x"), sp())
	badCond := ast.NewTernaryExpr(intLit(1), intLit(1), intLit(2), sp())

	d1 := varDecl("a", cond)
	d2 := varDecl("b", widened)
	d3 := varDecl("c", badCond)
	c := checkFile(fileOf(d1, d2, d3))

	assert.Equal(t, TypeInt, c.TypeOf(cond))
	assert.Equal(t, "union(int | string)", c.TypeOf(widened).String())
	assert.Equal(t, []diag.Code{diag.CodeExpectedCondition}, codesOf(c))
}

func TestCheckerIndexing(t *testing.T) {
	arrDecl := varDecl("xs", arr(strLit("a"), strLit("b")))
	byInt := varDecl("x", ast.NewIndexExpr(id("xs"), intLit(0), sp()))
	byString := varDecl("y", ast.NewIndexExpr(id("xs"), strLit("k"), sp()))
	c := checkFile(fileOf(arrDecl, byInt, byString))

	assert.Equal(t, TypeString, c.TypeOf(byInt.Value))
	assert.Equal(t, TypeError, c.TypeOf(byString.Value))
	assert.Equal(t, []diag.Code{diag.CodeNoMatchingIndexer}, codesOf(c))
}

func TestCheckerLambdaOutsideCall(t *testing.T) {
	// Scenario: var x = i => 123. A lambda bound directly to a variable is
	// not a value, whatever its body looks like.
	decl := varDecl("x", lambda(intLit(123), "i"))
	c := checkFile(fileOf(decl))

	require.Len(t, c.Sink.All(), 1)
	d := c.Sink.All()[0]
	assert.Equal(t, diag.CodeLambdaNotSupportedHere, d.Code)
	assert.Contains(t, d.Help, "lambda parameter")
	assert.Equal(t, TypeError, c.TypeOf(decl.Value))
}

func TestCheckerLambdaInArrayLiteral(t *testing.T) {
	decl := varDecl("xs", arr(lambda(intLit(1), "i")))
	c := checkFile(fileOf(decl))

	assert.Equal(t, []diag.Code{diag.CodeLambdaNotSupportedHere}, codesOf(c))
	assert.Equal(t, TypeError, c.TypeOf(decl.Value))
}

func TestCheckerLambdaAsObjectPropertyValue(t *testing.T) {
	obj := ast.NewObjectExpr([]*ast.ObjectProperty{
		ast.NewObjectProperty(id("transform"), lambda(intLit(1), "i"), sp()),
	}, sp())
	c := checkFile(fileOf(varDecl("cfg", obj)))

	assert.Equal(t, []diag.Code{diag.CodeLambdaNotSupportedHere}, codesOf(c))
}

func TestCheckerIncompleteLambda(t *testing.T) {
	// A dangling arrow survives parse recovery with a nil body.
	decl := varDecl("x", lambda(nil, "i"))
	c := checkFile(fileOf(decl))

	assert.Equal(t, []diag.Code{diag.CodeIncompleteLambda}, codesOf(c))
	assert.Equal(t, TypeError, c.TypeOf(decl.Value))
}

func TestCheckerSelfReference(t *testing.T) {
	// var xs = map(range(0, 3), i => xs): the lambda body references its
	// own enclosing declaration, which must surface as a cycle, not as
	// unbounded recursion.
	lam := lambda(id("xs"), "i")
	decl := varDecl("xs", call("map", call("range", intLit(0), intLit(3)), lam))
	c := checkFile(fileOf(decl))

	assert.Contains(t, codesOf(c), diag.CodeCyclicReference)
	assert.Equal(t, TypeError, c.TypeOf(decl.Value))
}

func TestCheckerDuplicateDeclaration(t *testing.T) {
	second := varDecl("x", binary(ast.OpAdd, intLit(1), intLit(2)))
	file := fileOf(varDecl("x", intLit(1)), second)
	c := checkFile(file)

	assert.Equal(t, []diag.Code{diag.CodeDuplicateDeclaration}, codesOf(c))
	// The first declaration keeps its type; the rejected duplicate's whole
	// subtree is still typed, as error.
	sym := c.fileScope.Lookup("x")
	require.NotNil(t, sym)
	assert.Equal(t, TypeInt, sym.Type)
	ast.Walk(second, func(n ast.Node) bool {
		if _, ok := n.(ast.Expr); ok {
			assert.Equal(t, TypeError, c.TypeOf(n), "duplicate subtree node %T", n)
		}
		return true
	})
}

func TestCheckerIdempotentRecheck(t *testing.T) {
	decl := varDecl("x", binary(ast.OpAdd, strLit("a"), intLit(1)))
	file := fileOf(decl)

	c := NewChecker(nil, diag.NewSink())
	c.Check(file)
	require.Len(t, c.Sink.All(), 1)
	first := c.TypeOf(decl.Value)

	// Checking the same tree again observes memoized results: same types,
	// no duplicated diagnostics.
	c.Check(file)
	assert.Len(t, c.Sink.All(), 1)
	assert.Equal(t, first, c.TypeOf(decl.Value))
}

func TestCheckerTotalMapping(t *testing.T) {
	// Every expression node gets a type entry, including nodes inside
	// subtrees the checker abandoned.
	lam := lambda(binary(ast.OpAdd, id("i"), intLit(1)), "i")
	decl := varDecl("x", call("nosuchfn", intLit(1), lam))
	file := fileOf(decl)
	c := checkFile(file)

	assert.Equal(t, []diag.Code{diag.CodeUnknownFunction}, codesOf(c))
	ast.Walk(file, func(n ast.Node) bool {
		if _, ok := n.(ast.Expr); ok {
			assert.NotNil(t, c.TypeOf(n), "no type recorded for %T", n)
		}
		return true
	})
}
