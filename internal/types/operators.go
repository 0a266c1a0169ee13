package types

import (
	"sync"

	"github.com/strata-lang/strata/internal/ast"
)

// OverloadEntry is one row of the binary-operator table. The model is
// homogeneous-operand: both operands are checked against the same
// requirement, and operators accepting more than one operand kind carry one
// entry per kind.
type OverloadEntry struct {
	Operand Type
	Result  Type
}

// overloadTable is process-wide, built once, and read-only afterwards, so
// any number of document-checking workers may consult it concurrently.
var overloadTable = sync.OnceValue(func() map[ast.Operator][]OverloadEntry {
	return map[ast.Operator][]OverloadEntry{
		ast.OpAnd: {{Operand: TypeBool, Result: TypeBool}},
		ast.OpOr:  {{Operand: TypeBool, Result: TypeBool}},

		// Equality accepts anything and defers semantics to runtime.
		ast.OpEq:  {{Operand: TypeAny, Result: TypeBool}},
		ast.OpNeq: {{Operand: TypeAny, Result: TypeBool}},

		ast.OpEqCI:  {{Operand: TypeString, Result: TypeBool}},
		ast.OpNeqCI: {{Operand: TypeString, Result: TypeBool}},

		ast.OpLt: orderedEntries(),
		ast.OpLe: orderedEntries(),
		ast.OpGt: orderedEntries(),
		ast.OpGe: orderedEntries(),

		ast.OpAdd: {{Operand: TypeInt, Result: TypeInt}},
		ast.OpSub: {{Operand: TypeInt, Result: TypeInt}},
		ast.OpMul: {{Operand: TypeInt, Result: TypeInt}},
		ast.OpDiv: {{Operand: TypeInt, Result: TypeInt}},
		ast.OpMod: {{Operand: TypeInt, Result: TypeInt}},

		ast.OpCoalesce: {{Operand: TypeAny, Result: TypeAny}},
	}
})

func orderedEntries() []OverloadEntry {
	return []OverloadEntry{
		{Operand: TypeInt, Result: TypeBool},
		{Operand: TypeString, Result: TypeBool},
	}
}

// ResolveOperator resolves a binary operator against its operand types. It
// returns the result type and true on a match, or nil and false when no
// overload accepts the operands. Matching keeps every entry whose operand
// requirement accepts both operands; a unique survivor wins, and ties
// prefer non-any requirements over an any-wide entry, then declaration
// order, which keeps the result deterministic.
func ResolveOperator(op ast.Operator, left, right Type) (Type, bool) {
	entries := overloadTable()[op]

	var matches []OverloadEntry
	for _, entry := range entries {
		if IsAssignable(left, entry.Operand) && IsAssignable(right, entry.Operand) {
			matches = append(matches, entry)
		}
	}

	switch len(matches) {
	case 0:
		return nil, false
	case 1:
		return matches[0].Result, true
	}

	for _, entry := range matches {
		if entry.Operand != TypeAny {
			return entry.Result, true
		}
	}
	return matches[0].Result, true
}

// KnownOperator reports whether op has any overload entries at all.
func KnownOperator(op ast.Operator) bool {
	_, ok := overloadTable()[op]
	return ok
}
