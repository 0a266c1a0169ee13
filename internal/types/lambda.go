package types

// ExpectedLambda describes the shape a call-site lambda slot expects. It is
// derived per call from the sibling arguments: the accepted arities, the
// parameter types for each accepted arity, and an optional return
// constraint (nil means unconstrained).
type ExpectedLambda struct {
	Arities   []int
	ParamsFor func(arity int) []Type
	Return    func(arity int) Type
}

// FixedExpectedLambda builds an expectation with a single accepted arity,
// fixed parameter types and an optional return constraint.
func FixedExpectedLambda(params []Type, ret Type) *ExpectedLambda {
	return &ExpectedLambda{
		Arities:   []int{len(params)},
		ParamsFor: func(int) []Type { return params },
		Return:    func(int) Type { return ret },
	}
}

// AcceptsArity reports whether the slot accepts a lambda with n parameters.
func (e *ExpectedLambda) AcceptsArity(n int) bool {
	for _, a := range e.Arities {
		if a == n {
			return true
		}
	}
	return false
}

// ReturnFor returns the return constraint for the given arity, or nil when
// the return type is unconstrained.
func (e *ExpectedLambda) ReturnFor(arity int) Type {
	if e.Return == nil {
		return nil
	}
	return e.Return(arity)
}
