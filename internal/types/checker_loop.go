package types

import (
	"sort"

	"github.com/strata-lang/strata/internal/ast"
	"github.com/strata-lang/strata/internal/diag"
)

// checkDeclBody types the body of a resource/module declaration. elem is the
// declaration's schema type (Resource or Module, or Error when the schema is
// unknown) and body its structural shape, nil when unknown. A plain object
// body types the declaration as elem; a for-expression body replicates the
// single-iteration element across the loop, typing the declaration as
// array<elem> so that later int-indexing narrows back to elem.
func (c *Checker) checkDeclBody(bodyExpr ast.Expr, elem Type, body *Object) Type {
	switch e := bodyExpr.(type) {
	case *ast.ForExpr:
		srcElem := c.checkLoopSource(e, c.fileScope)
		loopScope := c.loopScope(e, srcElem, c.fileScope)
		c.checkIterationBody(e.Body, body, loopScope)
		c.setType(e, wrapLoop(elem))
		return wrapLoop(elem)

	case *ast.ObjectExpr:
		c.checkIterationBody(e, body, c.fileScope)
		return elem

	default:
		// Anything else is still typed so nested errors surface, and must
		// at least be object-shaped.
		t := c.checkExpr(bodyExpr, c.fileScope)
		if !IsError(t) && !IsAssignable(t, NewObject(nil)) {
			c.reportError(diag.CodePropertyTypeMismatch, bodyExpr.Span(),
				"declaration body must be an object, got %s", t)
		}
		return elem
	}
}

func wrapLoop(elem Type) Type {
	if IsError(elem) {
		return TypeError
	}
	return NewArray(elem)
}

// checkLoopSource resolves a for-expression's source collection and returns
// the loop variable's element type.
func (c *Checker) checkLoopSource(e *ast.ForExpr, scope *Scope) Type {
	src := c.checkExpr(e.Source, scope)
	if IsError(src) {
		return TypeError
	}
	elem, ok := elementOf(src)
	if !ok {
		c.reportError(diag.CodeExpectedArrayArgument, e.Source.Span(),
			"for-expression source must be an array, got %s", src)
		return TypeError
	}
	return elem
}

// loopScope introduces the per-iteration bindings: the item variable at the
// source's element type and the optional index variable at int. The scope is
// a fresh child, so inner loop variables shadow outer loop and lambda
// bindings and lookup always resolves to the innermost one.
func (c *Checker) loopScope(e *ast.ForExpr, elem Type, parent *Scope) *Scope {
	scope := parent.Child()
	if e.Item != nil {
		scope.Bind(e.Item, elem)
		c.setType(e.Item, elem)
	}
	if e.Index != nil {
		scope.Bind(e.Index, TypeInt)
		c.setType(e.Index, TypeInt)
	}
	return scope
}

// checkIterationBody checks one iteration's object literal against the
// declaration schema: every property must exist in the schema with an
// assignable type, and every required schema property must be present.
// With an unknown schema the body is still typed but not validated.
func (c *Checker) checkIterationBody(bodyExpr ast.Expr, body *Object, scope *Scope) {
	obj, ok := bodyExpr.(*ast.ObjectExpr)
	if !ok {
		t := c.checkExpr(bodyExpr, scope)
		if body != nil && !IsError(t) && !IsAssignable(t, body) {
			c.reportError(diag.CodePropertyTypeMismatch, bodyExpr.Span(),
				"declaration body of type %s does not match the declared schema", t)
		}
		return
	}

	present := make(map[string]bool, len(obj.Properties))
	for _, prop := range obj.Properties {
		t := c.checkExpr(prop.Value, scope)
		present[prop.Name.Name] = true
		if body == nil {
			continue
		}
		want, known := body.Properties[prop.Name.Name]
		if !known {
			c.reportError(diag.CodeUnknownProperty, prop.Name.Span(),
				"schema has no property %q", prop.Name.Name)
			continue
		}
		if !IsError(t) && !IsAssignable(t, want) {
			c.reportError(diag.CodePropertyTypeMismatch, prop.Value.Span(),
				"property %q expects %s, got %s", prop.Name.Name, want, t)
		}
	}

	if body != nil {
		required := make([]string, 0, len(body.Required))
		for name := range body.Required {
			required = append(required, name)
		}
		sort.Strings(required)
		for _, name := range required {
			if !present[name] {
				c.reportError(diag.CodePropertyTypeMismatch, obj.Span(),
					"missing required property %q", name)
			}
		}
	}

	// The literal itself still gets a type for the result mapping.
	c.setType(obj, c.checkObjectExpr(obj, scope))
}
