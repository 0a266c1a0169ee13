package types

import (
	"sync"

	"github.com/strata-lang/strata/internal/ast"
	"github.com/strata-lang/strata/internal/diag"
)

// builtin is one entry of the built-in function table: the accepted argument
// count range, the zero-based argument positions that accept a lambda, and a
// resolve rule computing the call's result type from the argument types.
// Lambda-slot arguments arrive untyped (nil) in args and are checked by
// resolve against an expectation derived from their siblings.
type builtin struct {
	name        string
	minArgs     int
	maxArgs     int
	lambdaSlots []int
	resolve     func(c *Checker, call *ast.CallExpr, args []Type, scope *Scope) Type
}

// lambdaSlot reports whether argument position i accepts a lambda.
func (b *builtin) lambdaSlot(i int) bool {
	for _, s := range b.lambdaSlots {
		if s == i {
			return true
		}
	}
	return false
}

// builtinTable is process-wide, built once, read-only afterwards. The table
// is assigned in init: the resolve rules reach back into the checker, whose
// call path consults the table again, and a package-level variable
// initializer is not allowed to close that loop.
var builtinTable func() map[string]*builtin

func init() {
	builtinTable = sync.OnceValue(buildBuiltins)
}

func buildBuiltins() map[string]*builtin {
	table := []*builtin{
		{name: "flatten", minArgs: 1, maxArgs: 1, resolve: resolveFlatten},
		{name: "map", minArgs: 2, maxArgs: 2, lambdaSlots: []int{1}, resolve: resolveMap},
		{name: "filter", minArgs: 2, maxArgs: 2, lambdaSlots: []int{1}, resolve: resolveFilter},
		{name: "sort", minArgs: 2, maxArgs: 2, lambdaSlots: []int{1}, resolve: resolveSort},
		{name: "reduce", minArgs: 3, maxArgs: 3, lambdaSlots: []int{2}, resolve: resolveReduce},

		{name: "range", minArgs: 2, maxArgs: 2, resolve: resolveRange},
		{name: "length", minArgs: 1, maxArgs: 1, resolve: resolveLength},
		{name: "concat", minArgs: 2, maxArgs: 2, resolve: resolveConcat},
		{name: "first", minArgs: 1, maxArgs: 1, resolve: resolveFirst},
		{name: "last", minArgs: 1, maxArgs: 1, resolve: resolveFirst},
		{name: "contains", minArgs: 2, maxArgs: 2, resolve: resolveContains},
		{name: "union", minArgs: 2, maxArgs: 2, resolve: resolveUnionFn},
		{name: "string", minArgs: 1, maxArgs: 1, resolve: resolveToString},
		{name: "int", minArgs: 1, maxArgs: 1, resolve: resolveToInt},
	}
	m := make(map[string]*builtin, len(table))
	for _, b := range table {
		m[b.name] = b
	}
	return m
}

// elementOf returns the element type of an array-like type. any is
// array-like with element any.
func elementOf(t Type) (Type, bool) {
	switch v := t.(type) {
	case *Array:
		return v.Elem, true
	case *Primitive:
		if v == TypeAny {
			return TypeAny, true
		}
	}
	return nil, false
}

// arrayArg resolves the element type of the call's first argument, reporting
// ExpectedArrayArgument when it is not array-like. The element type feeds
// the lambda slot's expected parameter types, so this check runs before any
// lambda checking.
func arrayArg(c *Checker, call *ast.CallExpr, args []Type) (Type, bool) {
	elem, ok := elementOf(args[0])
	if !ok {
		c.reportError(diag.CodeExpectedArrayArgument, call.Args[0].Span(),
			"argument 1 of %s must be an array, got %s", calleeName(call), args[0])
		return nil, false
	}
	return elem, true
}

func calleeName(call *ast.CallExpr) string {
	if ident, ok := call.Callee.(*ast.Ident); ok {
		return ident.Name
	}
	return "function"
}

func resolveFlatten(c *Checker, call *ast.CallExpr, args []Type, scope *Scope) Type {
	outer, ok := arrayArg(c, call, args)
	if !ok {
		return TypeError
	}
	inner, ok := elementOf(outer)
	if !ok {
		c.reportError(diag.CodeExpectedArrayArgument, call.Args[0].Span(),
			"argument 1 of flatten must be an array of arrays, got %s", args[0])
		return TypeError
	}
	return NewArray(inner)
}

func resolveMap(c *Checker, call *ast.CallExpr, args []Type, scope *Scope) Type {
	exp, ok := mapExpectation(c, call, args)
	if !ok {
		return TypeError
	}
	lt := c.checkLambdaSlot(call.Args[1], exp, 2, scope)
	if lt == nil {
		return TypeError
	}
	return NewArray(lt.Return)
}

// mapExpectation derives map's lambda slot from its source argument: arity
// 1 over an array element, additionally arity 2 (key, value) when the
// source is object-like.
func mapExpectation(c *Checker, call *ast.CallExpr, args []Type) (*ExpectedLambda, bool) {
	if obj, ok := args[0].(*Object); ok {
		value := objectValueType(obj)
		return &ExpectedLambda{
			Arities: []int{1, 2},
			ParamsFor: func(arity int) []Type {
				if arity == 2 {
					return []Type{TypeString, value}
				}
				return []Type{value}
			},
		}, true
	}

	elem, ok := arrayArg(c, call, args)
	if !ok {
		return nil, false
	}
	arities := []int{1}
	if args[0] == TypeAny {
		// An any source may turn out object-shaped at runtime, so the
		// two-parameter form stays available.
		arities = []int{1, 2}
	}
	return &ExpectedLambda{
		Arities: arities,
		ParamsFor: func(arity int) []Type {
			if arity == 2 {
				return []Type{TypeString, elem}
			}
			return []Type{elem}
		},
	}, true
}

func objectValueType(obj *Object) Type {
	if len(obj.Properties) == 0 {
		return TypeAny
	}
	values := make([]Type, 0, len(obj.Properties))
	for _, t := range obj.Properties {
		values = append(values, t)
	}
	return MakeUnion(values...)
}

func resolveFilter(c *Checker, call *ast.CallExpr, args []Type, scope *Scope) Type {
	elem, ok := arrayArg(c, call, args)
	if !ok {
		return TypeError
	}
	if c.checkLambdaSlot(call.Args[1], FixedExpectedLambda([]Type{elem}, TypeBool), 2, scope) == nil {
		return TypeError
	}
	// Filtering never changes the array's shape.
	return args[0]
}

func resolveSort(c *Checker, call *ast.CallExpr, args []Type, scope *Scope) Type {
	elem, ok := arrayArg(c, call, args)
	if !ok {
		return TypeError
	}
	exp := &ExpectedLambda{
		Arities: []int{1, 2},
		ParamsFor: func(arity int) []Type {
			if arity == 2 {
				return []Type{elem, elem}
			}
			return []Type{elem}
		},
		Return: func(arity int) Type {
			if arity == 2 {
				// Two-parameter comparators are either a less-than bool or
				// a three-way int.
				return MakeUnion(TypeBool, TypeInt)
			}
			// One-parameter form selects an orderable sort key.
			return MakeUnion(TypeInt, TypeString)
		},
	}
	if c.checkLambdaSlot(call.Args[1], exp, 2, scope) == nil {
		return TypeError
	}
	return args[0]
}

func resolveReduce(c *Checker, call *ast.CallExpr, args []Type, scope *Scope) Type {
	elem, ok := arrayArg(c, call, args)
	if !ok {
		return TypeError
	}
	acc := args[1]
	if IsError(acc) {
		return TypeError
	}
	if c.checkLambdaSlot(call.Args[2], FixedExpectedLambda([]Type{acc, elem}, acc), 3, scope) == nil {
		return TypeError
	}
	// The accumulator threads through unchanged.
	return acc
}

func resolveRange(c *Checker, call *ast.CallExpr, args []Type, scope *Scope) Type {
	for i, t := range args {
		if !IsAssignable(t, TypeInt) {
			c.reportError(diag.CodeArgumentTypeMismatch, call.Args[i].Span(),
				"argument %d of range must be int, got %s", i+1, t)
			return TypeError
		}
	}
	return NewArray(TypeInt)
}

func resolveLength(c *Checker, call *ast.CallExpr, args []Type, scope *Scope) Type {
	switch t := args[0].(type) {
	case *Array, *Object:
		return TypeInt
	case *Primitive:
		if t == TypeString || t == TypeAny {
			return TypeInt
		}
	}
	c.reportError(diag.CodeArgumentTypeMismatch, call.Args[0].Span(),
		"argument 1 of length must be an array, object or string, got %s", args[0])
	return TypeError
}

func resolveConcat(c *Checker, call *ast.CallExpr, args []Type, scope *Scope) Type {
	var elems []Type
	for i, t := range args {
		elem, ok := elementOf(t)
		if !ok {
			c.reportError(diag.CodeExpectedArrayArgument, call.Args[i].Span(),
				"argument %d of concat must be an array, got %s", i+1, t)
			return TypeError
		}
		elems = append(elems, elem)
	}
	return NewArray(MakeUnion(elems...))
}

func resolveFirst(c *Checker, call *ast.CallExpr, args []Type, scope *Scope) Type {
	elem, ok := arrayArg(c, call, args)
	if !ok {
		return TypeError
	}
	return elem
}

func resolveContains(c *Checker, call *ast.CallExpr, args []Type, scope *Scope) Type {
	switch t := args[0].(type) {
	case *Array, *Object:
		return TypeBool
	case *Primitive:
		if t == TypeString || t == TypeAny {
			return TypeBool
		}
	}
	c.reportError(diag.CodeArgumentTypeMismatch, call.Args[0].Span(),
		"argument 1 of contains must be an array, object or string, got %s", args[0])
	return TypeError
}

func resolveUnionFn(c *Checker, call *ast.CallExpr, args []Type, scope *Scope) Type {
	if args[0] == TypeAny || args[1] == TypeAny {
		return TypeAny
	}
	left, lok := args[0].(*Object)
	right, rok := args[1].(*Object)
	if !lok || !rok {
		idx := 0
		if lok {
			idx = 1
		}
		c.reportError(diag.CodeArgumentTypeMismatch, call.Args[idx].Span(),
			"argument %d of union must be an object, got %s", idx+1, args[idx])
		return TypeError
	}

	props := make(map[string]Type, len(left.Properties)+len(right.Properties))
	required := make(map[string]bool)
	for name, t := range left.Properties {
		props[name] = t
		required[name] = left.Required[name]
	}
	// Later arguments win on property collisions.
	for name, t := range right.Properties {
		props[name] = t
		required[name] = required[name] || right.Required[name]
	}
	merged := &Object{Properties: props, Required: required}
	return merged
}

func resolveToString(c *Checker, call *ast.CallExpr, args []Type, scope *Scope) Type {
	return TypeString
}

func resolveToInt(c *Checker, call *ast.CallExpr, args []Type, scope *Scope) Type {
	return TypeInt
}
