package types

import (
	"github.com/strata-lang/strata/internal/ast"
	"github.com/strata-lang/strata/internal/diag"
)

// checkExpr resolves the type of one expression node. Results are memoized
// per node for the remainder of the pass, and a node observed while its own
// check is still running is reported as a cycle instead of recursing.
func (c *Checker) checkExpr(expr ast.Expr, scope *Scope) Type {
	if expr == nil {
		return TypeError
	}
	if t, ok := c.ExprTypes[expr]; ok {
		return t
	}
	if c.inProgress[expr] {
		c.reportError(diag.CodeCyclicReference, expr.Span(),
			"cyclic reference detected while resolving this expression")
		return TypeError
	}
	c.inProgress[expr] = true
	t := c.checkExprInternal(expr, scope)
	delete(c.inProgress, expr)
	return c.setType(expr, t)
}

func (c *Checker) checkExprInternal(expr ast.Expr, scope *Scope) Type {
	switch e := expr.(type) {
	case *ast.IntegerLit:
		return TypeInt
	case *ast.StringLit:
		return TypeString
	case *ast.BoolLit:
		return TypeBool
	case *ast.NullLit:
		return TypeNull

	case *ast.Ident:
		sym := scope.Lookup(e.Name)
		if sym == nil {
			c.reportError(diag.CodeUndefinedIdentifier, e.Span(),
				"undefined identifier %q", e.Name)
			return TypeError
		}
		if sym.Type == nil {
			// The symbol's declaration is still being checked, so this
			// identifier can only be a self-reference.
			if c.inProgress[sym.DefNode] {
				c.reportError(diag.CodeCyclicReference, e.Span(),
					"%q references itself through its own declaration", e.Name)
			}
			return TypeError
		}
		return sym.Type

	case *ast.ArrayExpr:
		return c.checkArrayExpr(e, scope)

	case *ast.ObjectExpr:
		return c.checkObjectExpr(e, scope)

	case *ast.BinaryExpr:
		return c.checkBinaryExpr(e, scope)

	case *ast.TernaryExpr:
		return c.checkTernaryExpr(e, scope)

	case *ast.CallExpr:
		return c.checkCall(e, scope)

	case *ast.LambdaExpr:
		// A lambda that reaches the generic walk is not the direct argument
		// of a lambda-capable call slot; lambdas are a call-site-only
		// construct. The body is deliberately not checked: its validity
		// cannot rescue the placement.
		if e.Body == nil {
			c.reportError(diag.CodeIncompleteLambda, e.Span(),
				"lambda is missing its body expression")
		} else {
			c.reportErrorWithHelp(diag.CodeLambdaNotSupportedHere, e.Span(),
				"pass the lambda directly to a function with a lambda parameter, such as map or filter",
				"lambdas are only supported as direct call arguments")
			c.markErrored(e.Body)
		}
		return TypeError

	case *ast.MemberExpr:
		return c.checkMemberExpr(e, scope)

	case *ast.IndexExpr:
		return c.checkIndexExpr(e, scope)

	case *ast.ParenExpr:
		return c.checkExpr(e.Inner, scope)

	case *ast.ForExpr:
		// A for-expression outside a resource/module declaration loops over
		// a generic collection and produces an array of its body type.
		elem := c.checkLoopSource(e, scope)
		loopScope := c.loopScope(e, elem, scope)
		bodyType := c.checkExpr(e.Body, loopScope)
		if IsError(elem) || IsError(bodyType) {
			return TypeError
		}
		return NewArray(bodyType)

	default:
		return TypeError
	}
}

func (c *Checker) checkArrayExpr(e *ast.ArrayExpr, scope *Scope) Type {
	if len(e.Items) == 0 {
		return NewArray(TypeAny)
	}
	items := make([]Type, 0, len(e.Items))
	for _, item := range e.Items {
		items = append(items, c.checkExpr(item, scope))
	}
	for _, t := range items {
		if IsError(t) {
			return TypeError
		}
	}
	return NewArray(MakeUnion(items...))
}

func (c *Checker) checkObjectExpr(e *ast.ObjectExpr, scope *Scope) Type {
	props := make(map[string]Type, len(e.Properties))
	names := make([]string, 0, len(e.Properties))
	poisoned := false
	for _, prop := range e.Properties {
		t := c.checkExpr(prop.Value, scope)
		if IsError(t) {
			poisoned = true
		}
		props[prop.Name.Name] = t
		names = append(names, prop.Name.Name)
		c.setType(prop.Name, t)
	}
	if poisoned {
		return TypeError
	}
	return NewObject(props, names...)
}

func (c *Checker) checkBinaryExpr(e *ast.BinaryExpr, scope *Scope) Type {
	left := c.checkExpr(e.Left, scope)
	right := c.checkExpr(e.Right, scope)
	if IsError(left) || IsError(right) {
		return TypeError
	}

	result, ok := ResolveOperator(e.Op, left, right)
	if !ok {
		c.reportError(diag.CodeNoMatchingOverload, e.Span(),
			"operator %q cannot be applied to operands of type %s and %s",
			e.Op, left, right)
		return TypeError
	}
	return result
}

func (c *Checker) checkTernaryExpr(e *ast.TernaryExpr, scope *Scope) Type {
	cond := c.checkExpr(e.Cond, scope)
	if !IsError(cond) && !IsAssignable(cond, TypeBool) {
		c.reportError(diag.CodeExpectedCondition, e.Cond.Span(),
			"condition must be of type bool, got %s", cond)
	}

	then := c.checkExpr(e.Then, scope)
	els := c.checkExpr(e.Else, scope)
	if IsError(then) || IsError(els) {
		return TypeError
	}
	return unifyBranches(then, els)
}

// unifyBranches picks the type of a conditional from its two branch types:
// the wider branch when one subsumes the other, otherwise their union.
func unifyBranches(a, b Type) Type {
	aToB := IsAssignable(a, b)
	bToA := IsAssignable(b, a)
	switch {
	case aToB && bToA:
		return a
	case aToB:
		return b
	case bToA:
		return a
	default:
		return MakeUnion(a, b)
	}
}

func (c *Checker) checkMemberExpr(e *ast.MemberExpr, scope *Scope) Type {
	target := c.checkExpr(e.Target, scope)

	var body *Object
	switch t := target.(type) {
	case *Primitive:
		if IsError(t) {
			c.setType(e.Member, TypeError)
			return TypeError
		}
		if t == TypeAny {
			c.setType(e.Member, TypeAny)
			return TypeAny
		}
	case *Object:
		body = t
	case *Resource:
		body = t.Body
	case *Module:
		body = t.Body
	}

	if body != nil {
		if prop, ok := body.Properties[e.Member.Name]; ok {
			c.setType(e.Member, prop)
			return prop
		}
	}
	c.reportError(diag.CodeUnknownProperty, e.Member.Span(),
		"type %s has no property %q", target, e.Member.Name)
	c.setType(e.Member, TypeError)
	return TypeError
}

func (c *Checker) checkIndexExpr(e *ast.IndexExpr, scope *Scope) Type {
	target := c.checkExpr(e.Target, scope)
	index := c.checkExpr(e.Index, scope)
	if IsError(target) || IsError(index) {
		return TypeError
	}

	switch t := target.(type) {
	case *Array:
		// Narrowing is purely a type-level operation: any int-typed index
		// expression is accepted, bounds are a runtime concern.
		if IsAssignable(index, TypeInt) {
			return t.Elem
		}
	case *Object:
		// Property names are not statically known through an index.
		if IsAssignable(index, TypeString) {
			return TypeAny
		}
	case *Primitive:
		if t == TypeAny {
			return TypeAny
		}
	}

	c.reportError(diag.CodeNoMatchingIndexer, e.Span(),
		"type %s cannot be indexed with a value of type %s", target, index)
	return TypeError
}
