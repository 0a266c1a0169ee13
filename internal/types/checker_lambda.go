package types

import (
	"strconv"
	"strings"

	"github.com/strata-lang/strata/internal/ast"
	"github.com/strata-lang/strata/internal/diag"
)

// checkLambdaSlot checks a call argument occupying a lambda slot against the
// expectation derived from its siblings. It returns the resolved Lambda type
// or nil when the argument fails the slot; in the failure case the argument
// node is typed Error and the caller poisons the call without a second
// diagnostic. argIndex is the 1-based argument position surfaced in
// diagnostics.
func (c *Checker) checkLambdaSlot(arg ast.Expr, exp *ExpectedLambda, argIndex int, scope *Scope) *Lambda {
	switch e := arg.(type) {
	case *ast.ParenExpr:
		lt := c.checkLambdaSlot(e.Inner, exp, argIndex, scope)
		if lt == nil {
			c.setType(e, TypeError)
			return nil
		}
		c.setType(e, lt)
		return lt

	case *ast.TernaryExpr:
		if isLambdaShaped(e.Then) || isLambdaShaped(e.Else) {
			return c.checkLambdaTernary(e, exp, argIndex, scope)
		}

	case *ast.LambdaExpr:
		return c.checkLambdaAgainst(e, exp, argIndex, scope)
	}

	// Not a lambda at all. The argument still gets typed normally so nested
	// errors surface; an already-poisoned argument stays silent.
	t := c.checkExpr(arg, scope)
	if !IsError(t) {
		c.reportError(diag.CodeExpectedLambdaExpression, arg.Span(),
			"argument %d must be a lambda expression, got %s", argIndex, t)
	}
	c.setType(arg, TypeError)
	return nil
}

// checkLambdaTernary checks a conditional whose branches are lambdas inside
// a lambda slot: both branches are checked independently against the same
// expectation, and the conditional resolves to the slot's Lambda type only
// when both succeed.
func (c *Checker) checkLambdaTernary(e *ast.TernaryExpr, exp *ExpectedLambda, argIndex int, scope *Scope) *Lambda {
	cond := c.checkExpr(e.Cond, scope)
	if !IsError(cond) && !IsAssignable(cond, TypeBool) {
		c.reportError(diag.CodeExpectedCondition, e.Cond.Span(),
			"condition must be of type bool, got %s", cond)
	}

	then := c.checkLambdaSlot(e.Then, exp, argIndex, scope)
	els := c.checkLambdaSlot(e.Else, exp, argIndex, scope)
	if then == nil || els == nil {
		c.setType(e, TypeError)
		return nil
	}

	unified := &Lambda{Params: then.Params, Return: MakeUnion(then.Return, els.Return)}
	c.setType(e, unified)
	return unified
}

// checkLambdaAgainst checks one lambda node against an expected signature:
// arity must be one of the accepted set, parameter types are filled from the
// expectation, and the body is checked with the parameters bound in a fresh
// scope. A constrained return type rejects bodies that are not assignable
// to it.
func (c *Checker) checkLambdaAgainst(lam *ast.LambdaExpr, exp *ExpectedLambda, argIndex int, scope *Scope) *Lambda {
	if lam.Body == nil {
		c.reportError(diag.CodeIncompleteLambda, lam.Span(),
			"lambda is missing its body expression")
		c.setType(lam, TypeError)
		return nil
	}

	arity := len(lam.Params)
	if !exp.AcceptsArity(arity) {
		c.reportError(diag.CodeLambdaArityMismatch, lam.Span(),
			"argument %d: lambda has %d parameters but %s expected",
			argIndex, arity, arityList(exp.Arities))
		c.setType(lam, TypeError)
		c.markErrored(lam.Body)
		return nil
	}

	params := exp.ParamsFor(arity)
	lamScope := scope.Child()
	for i, param := range lam.Params {
		lamScope.Bind(param, params[i])
		c.setType(param, params[i])
	}

	bodyType := c.checkExpr(lam.Body, lamScope)
	if IsError(bodyType) {
		c.setType(lam, TypeError)
		return nil
	}

	if want := exp.ReturnFor(arity); want != nil && !IsAssignable(bodyType, want) {
		c.reportError(diag.CodeLambdaReturnTypeMismatch, lam.Body.Span(),
			"argument %d: lambda returns %s but %s was expected", argIndex, bodyType, want)
		c.setType(lam, TypeError)
		return nil
	}

	result := &Lambda{Params: params, Return: bodyType}
	c.setType(lam, result)
	return result
}

// isLambdaShaped reports whether an argument expression must be routed to a
// lambda slot instead of the generic bottom-up walk: a lambda node, possibly
// parenthesized, or a conditional with a lambda-shaped branch.
func isLambdaShaped(expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.LambdaExpr:
		return true
	case *ast.ParenExpr:
		return isLambdaShaped(e.Inner)
	case *ast.TernaryExpr:
		return isLambdaShaped(e.Then) || isLambdaShaped(e.Else)
	}
	return false
}

func arityList(arities []int) string {
	if len(arities) == 1 {
		return strconv.Itoa(arities[0]) + " was"
	}
	parts := make([]string, len(arities))
	for i, a := range arities {
		parts[i] = strconv.Itoa(a)
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " or " + parts[len(parts)-1] + " were"
}
