package types

import (
	"strconv"

	"github.com/strata-lang/strata/internal/ast"
	"github.com/strata-lang/strata/internal/diag"
)

// checkCall resolves a call expression: instance-style calls on a member
// target, otherwise a built-in from the function table. Lambdas are never
// values in this language, so an identifier callee can only name a
// built-in.
func (c *Checker) checkCall(call *ast.CallExpr, scope *Scope) Type {
	if member, ok := call.Callee.(*ast.MemberExpr); ok {
		return c.checkInstanceCall(call, member, scope)
	}

	ident, ok := call.Callee.(*ast.Ident)
	if !ok {
		c.reportError(diag.CodeUnknownFunction, call.Callee.Span(),
			"expression is not callable")
		c.markArgsErrored(call)
		return TypeError
	}
	c.setType(ident, TypeAny)

	b, ok := builtinTable()[ident.Name]
	if !ok {
		c.reportError(diag.CodeUnknownFunction, ident.Span(),
			"unknown function %q", ident.Name)
		c.markArgsErrored(call)
		return TypeError
	}

	// Argument count is validated before anything else; an out-of-range
	// count never reaches lambda checking.
	if len(call.Args) < b.minArgs || len(call.Args) > b.maxArgs {
		c.reportError(diag.CodeArgumentCountMismatch, call.Span(),
			"%s expects %s, got %d", b.name, countRange(b.minArgs, b.maxArgs), len(call.Args))
		c.markArgsErrored(call)
		return TypeError
	}

	// Non-lambda arguments are resolved bottom-up first: lambda slots
	// derive their expected shapes from these siblings, so a lambda-shaped
	// argument in a declared lambda slot is deferred to the resolve rule.
	// A lambda anywhere else goes through the generic walk, which rejects
	// it as misplaced.
	args := make([]Type, len(call.Args))
	poisoned := false
	for i, arg := range call.Args {
		if isLambdaShaped(arg) && b.lambdaSlot(i) {
			continue
		}
		args[i] = c.checkExpr(arg, scope)
		if IsError(args[i]) {
			poisoned = true
		}
	}
	if poisoned {
		c.markArgsErrored(call)
		return TypeError
	}

	result := b.resolve(c, call, args, scope)
	// A resolve rule that fails before reaching its lambda slot leaves the
	// deferred argument untyped; backfill error entries so the node-to-type
	// mapping stays total. Already-typed nodes are untouched.
	c.markArgsErrored(call)
	return result
}

// checkInstanceCall resolves an instance-style call such as a key-listing
// operation on a resource or module declaration.
func (c *Checker) checkInstanceCall(call *ast.CallExpr, member *ast.MemberExpr, scope *Scope) Type {
	target := c.checkExpr(member.Target, scope)
	if IsError(target) {
		c.setType(member, TypeError)
		c.setType(member.Member, TypeError)
		c.markArgsErrored(call)
		return TypeError
	}
	if target == TypeAny {
		c.setType(member, TypeAny)
		c.setType(member.Member, TypeAny)
		// No instance call takes a lambda, so every argument goes through
		// the generic walk even with an unknown signature.
		for _, arg := range call.Args {
			c.checkExpr(arg, scope)
		}
		return TypeAny
	}

	var calls map[string]*Lambda
	switch t := target.(type) {
	case *Resource:
		calls = t.Calls
	case *Module:
		calls = t.Calls
	}

	sig, ok := calls[member.Member.Name]
	if !ok {
		c.reportError(diag.CodeUnknownFunction, member.Member.Span(),
			"type %s has no function %q", target, member.Member.Name)
		c.setType(member, TypeError)
		c.markArgsErrored(call)
		return TypeError
	}
	c.setType(member, sig)
	c.setType(member.Member, sig)

	if len(call.Args) != len(sig.Params) {
		c.reportError(diag.CodeArgumentCountMismatch, call.Span(),
			"%s expects %s, got %d", member.Member.Name,
			countRange(len(sig.Params), len(sig.Params)), len(call.Args))
		c.markArgsErrored(call)
		return TypeError
	}

	result := sig.Return
	for i, arg := range call.Args {
		t := c.checkExpr(arg, scope)
		if IsError(t) {
			result = TypeError
			continue
		}
		if !IsAssignable(t, sig.Params[i]) {
			c.reportError(diag.CodeArgumentTypeMismatch, arg.Span(),
				"argument %d of %s must be %s, got %s", i+1, member.Member.Name, sig.Params[i], t)
			result = TypeError
		}
	}
	return result
}

// markArgsErrored types every unvisited argument subtree as Error so the
// node-to-type mapping stays total when a call is abandoned early.
func (c *Checker) markArgsErrored(call *ast.CallExpr) {
	for _, arg := range call.Args {
		c.markErrored(arg)
	}
}

func countRange(min, max int) string {
	if min == max {
		if min == 1 {
			return "1 argument"
		}
		return strconv.Itoa(min) + " arguments"
	}
	return "between " + strconv.Itoa(min) + " and " + strconv.Itoa(max) + " arguments"
}
