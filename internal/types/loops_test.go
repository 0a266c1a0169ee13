package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strata-lang/strata/internal/ast"
	"github.com/strata-lang/strata/internal/diag"
	"github.com/strata-lang/strata/internal/schema"
)

// testProvider builds a registry with one storage-account resource and one
// network module, the shapes the looping tests exercise.
func testProvider() *schema.Registry {
	reg := schema.NewRegistry()
	reg.RegisterResource("cloud/storageAccount@v1", &schema.Schema{
		Ref: "cloud/storageAccount@v1",
		Body: &schema.TypeRef{
			Kind: schema.RefObject,
			Props: map[string]*schema.TypeRef{
				"name":     {Kind: schema.RefString},
				"replicas": {Kind: schema.RefInt},
				"tags":     {Kind: schema.RefArray, Elem: &schema.TypeRef{Kind: schema.RefString}},
			},
			Required: []string{"name"},
		},
		Calls: map[string]*schema.CallRef{
			"listKeys": {Return: &schema.TypeRef{
				Kind: schema.RefArray,
				Elem: &schema.TypeRef{Kind: schema.RefString},
			}},
		},
	})
	reg.RegisterModule("./network", &schema.Schema{
		Ref: "./network",
		Body: &schema.TypeRef{
			Kind: schema.RefObject,
			Props: map[string]*schema.TypeRef{
				"cidr": {Kind: schema.RefString},
			},
			Required: []string{"cidr"},
		},
	})
	return reg
}

func checkWithSchemas(file *ast.File) *Checker {
	c := NewChecker(testProvider(), diag.NewSink())
	c.Check(file)
	return c
}

func objBody(props ...*ast.ObjectProperty) *ast.ObjectExpr {
	return ast.NewObjectExpr(props, sp())
}

func prop(name string, value ast.Expr) *ast.ObjectProperty {
	return ast.NewObjectProperty(id(name), value, sp())
}

func resourceDecl(name, ref string, body ast.Expr) *ast.ResourceDecl {
	return ast.NewResourceDecl(id(name), ref, body, sp())
}

func moduleDecl(name, src string, body ast.Expr) *ast.ModuleDecl {
	return ast.NewModuleDecl(id(name), src, body, sp())
}

func forLoop(item, index string, src, body ast.Expr) *ast.ForExpr {
	var idx *ast.Ident
	if index != "" {
		idx = id(index)
	}
	return ast.NewForExpr(id(item), idx, src, body, sp())
}

func TestSingleResourceDeclaration(t *testing.T) {
	decl := resourceDecl("store", "cloud/storageAccount@v1",
		objBody(prop("name", strLit("primary")), prop("replicas", intLit(3))))
	c := checkWithSchemas(fileOf(decl))

	require.Empty(t, c.Sink.All())
	res, ok := c.TypeOf(decl).(*Resource)
	require.True(t, ok, "declaration should resolve to a resource type, got %T", c.TypeOf(decl))
	assert.Equal(t, "cloud/storageAccount@v1", res.Ref)
}

func TestLoopedResourceDeclarationIsArrayTyped(t *testing.T) {
	// resource stores 'cloud/storageAccount@v1' = [for i in range(0, 3): {...}]
	body := forLoop("i", "", rangeCall(0, 3),
		objBody(prop("name", call("string", id("i")))))
	decl := resourceDecl("stores", "cloud/storageAccount@v1", body)
	c := checkWithSchemas(fileOf(decl))

	require.Empty(t, c.Sink.All())
	arrT, ok := c.TypeOf(decl).(*Array)
	require.True(t, ok, "looped declaration should be array-typed, got %T", c.TypeOf(decl))
	_, ok = arrT.Elem.(*Resource)
	assert.True(t, ok, "array element should be the resource type, got %T", arrT.Elem)
}

func TestIndexingLoopedResourceNarrowsToElement(t *testing.T) {
	// stores[0].name is a string, and stores[0].listKeys() resolves through
	// the narrowed element's instance calls.
	body := forLoop("i", "", rangeCall(0, 3),
		objBody(prop("name", call("string", id("i")))))
	decl := resourceDecl("stores", "cloud/storageAccount@v1", body)

	elem := ast.NewIndexExpr(id("stores"), intLit(0), sp())
	name := varDecl("n", ast.NewMemberExpr(elem, id("name"), sp()))

	elem2 := ast.NewIndexExpr(id("stores"), intLit(1), sp())
	keysCall := ast.NewCallExpr(ast.NewMemberExpr(elem2, id("listKeys"), sp()), nil, sp())
	keys := varDecl("keys", keysCall)

	c := checkWithSchemas(fileOf(decl, name, keys))

	require.Empty(t, c.Sink.All())
	assert.Equal(t, TypeString, c.TypeOf(name.Value))
	assert.Equal(t, "array<string>", c.TypeOf(keys.Value).String())
}

func TestLoopIndexVariableIsInt(t *testing.T) {
	// [for item, idx in tags: {name: item, replicas: idx}]
	tags := varDecl("tags", arr(strLit("a"), strLit("b")))
	body := forLoop("item", "idx", id("tags"),
		objBody(prop("name", id("item")), prop("replicas", id("idx"))))
	decl := resourceDecl("stores", "cloud/storageAccount@v1", body)
	c := checkWithSchemas(fileOf(tags, decl))

	require.Empty(t, c.Sink.All())
	loop := decl.Body.(*ast.ForExpr)
	assert.Equal(t, TypeString, c.TypeOf(loop.Item))
	assert.Equal(t, TypeInt, c.TypeOf(loop.Index))
}

func TestLoopVariableShadowsOuterBinding(t *testing.T) {
	// An outer declaration named i is shadowed by the loop's item variable.
	outer := varDecl("i", strLit("outer"))
	body := forLoop("i", "", rangeCall(0, 3),
		objBody(prop("name", call("string", id("i"))), prop("replicas", id("i"))))
	decl := resourceDecl("stores", "cloud/storageAccount@v1", body)
	c := checkWithSchemas(fileOf(outer, decl))

	require.Empty(t, c.Sink.All())
	loop := decl.Body.(*ast.ForExpr)
	assert.Equal(t, TypeInt, c.TypeOf(loop.Item))
}

func TestLoopedModuleDeclaration(t *testing.T) {
	body := forLoop("i", "", rangeCall(0, 2),
		objBody(prop("cidr", strLit("10.0.0.0/16"))))
	decl := moduleDecl("nets", "./network", body)
	c := checkWithSchemas(fileOf(decl))

	require.Empty(t, c.Sink.All())
	arrT, ok := c.TypeOf(decl).(*Array)
	require.True(t, ok)
	mod, ok := arrT.Elem.(*Module)
	require.True(t, ok)
	assert.Equal(t, "./network", mod.Ref)
}

func TestLoopSourceMustBeArray(t *testing.T) {
	body := forLoop("i", "", intLit(42), objBody(prop("name", strLit("x"))))
	decl := resourceDecl("stores", "cloud/storageAccount@v1", body)
	c := checkWithSchemas(fileOf(decl))

	assert.Equal(t, []diag.Code{diag.CodeExpectedArrayArgument}, codesOf(c))
}

func TestMissingRequiredProperty(t *testing.T) {
	body := forLoop("i", "", rangeCall(0, 3), objBody(prop("replicas", id("i"))))
	decl := resourceDecl("stores", "cloud/storageAccount@v1", body)
	c := checkWithSchemas(fileOf(decl))

	require.Len(t, c.Sink.All(), 1)
	d := c.Sink.All()[0]
	assert.Equal(t, diag.CodePropertyTypeMismatch, d.Code)
	assert.Contains(t, d.Message, `"name"`)
}

func TestUnknownPropertyInIterationBody(t *testing.T) {
	body := objBody(prop("name", strLit("x")), prop("color", strLit("red")))
	decl := resourceDecl("store", "cloud/storageAccount@v1", body)
	c := checkWithSchemas(fileOf(decl))

	require.Len(t, c.Sink.All(), 1)
	assert.Equal(t, diag.CodeUnknownProperty, c.Sink.All()[0].Code)
}

func TestPropertyTypeMismatch(t *testing.T) {
	body := objBody(prop("name", strLit("x")), prop("replicas", strLit("three")))
	decl := resourceDecl("store", "cloud/storageAccount@v1", body)
	c := checkWithSchemas(fileOf(decl))

	require.Len(t, c.Sink.All(), 1)
	d := c.Sink.All()[0]
	assert.Equal(t, diag.CodePropertyTypeMismatch, d.Code)
	assert.Contains(t, d.Message, `"replicas"`)
}

func TestUnknownResourceType(t *testing.T) {
	decl := resourceDecl("store", "cloud/doesNotExist@v1", objBody(prop("name", strLit("x"))))
	c := checkWithSchemas(fileOf(decl))

	assert.Equal(t, []diag.Code{diag.CodeUnknownResourceType}, codesOf(c))
	assert.Equal(t, TypeError, c.TypeOf(decl))
}

func TestUnknownResourceTypeLoopedStaysError(t *testing.T) {
	// An unknown schema under a loop still yields error, not array<error>.
	body := forLoop("i", "", rangeCall(0, 2), objBody(prop("name", strLit("x"))))
	decl := resourceDecl("stores", "cloud/doesNotExist@v1", body)
	c := checkWithSchemas(fileOf(decl))

	assert.Equal(t, []diag.Code{diag.CodeUnknownResourceType}, codesOf(c))
	assert.Equal(t, TypeError, c.TypeOf(decl))
}

func TestGenericForExpression(t *testing.T) {
	// A for-expression in variable position is an ordinary comprehension.
	loop := forLoop("i", "", rangeCall(0, 5), binary(ast.OpMul, id("i"), intLit(2)))
	decl := varDecl("doubled", loop)
	c := checkWithSchemas(fileOf(decl))

	require.Empty(t, c.Sink.All())
	assert.Equal(t, "array<int>", c.TypeOf(decl.Value).String())
}

func TestLambdaOverLoopedResources(t *testing.T) {
	// map(stores, s => s.name) over a looped resource declaration: the
	// lambda parameter is the resource element, and member access resolves
	// through its schema body.
	body := forLoop("i", "", rangeCall(0, 3),
		objBody(prop("name", call("string", id("i")))))
	decl := resourceDecl("stores", "cloud/storageAccount@v1", body)

	lam := lambda(ast.NewMemberExpr(id("s"), id("name"), sp()), "s")
	names := varDecl("names", call("map", id("stores"), lam))
	c := checkWithSchemas(fileOf(decl, names))

	require.Empty(t, c.Sink.All())
	assert.Equal(t, "array<string>", c.TypeOf(names.Value).String())
}

func TestResourceReferenceBetweenDeclarations(t *testing.T) {
	// A later declaration may read properties of an earlier one.
	first := resourceDecl("store", "cloud/storageAccount@v1",
		objBody(prop("name", strLit("primary"))))
	ref := varDecl("storeName", ast.NewMemberExpr(id("store"), id("name"), sp()))
	c := checkWithSchemas(fileOf(first, ref))

	require.Empty(t, c.Sink.All())
	assert.Equal(t, TypeString, c.TypeOf(ref.Value))
}
