package types

import "github.com/strata-lang/strata/internal/ast"

// Symbol represents a named entity in the document: a declaration, a loop
// variable, or a lambda parameter.
type Symbol struct {
	Name    string
	Type    Type
	DefNode ast.Node // The node where this symbol is introduced
}

// Scope represents a lexical scope containing symbols. Loop variables and
// lambda parameters each get a child scope, so shadowing an outer binding
// always resolves to the innermost one.
type Scope struct {
	Parent  *Scope
	Symbols map[string]*Symbol
}

// NewScope creates a new scope with an optional parent.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		Parent:  parent,
		Symbols: make(map[string]*Symbol),
	}
}

// Insert adds a symbol to the current scope.
func (s *Scope) Insert(name string, sym *Symbol) {
	s.Symbols[name] = sym
}

// Child returns a nested scope whose lookups fall back to s.
func (s *Scope) Child() *Scope {
	return NewScope(s)
}

// Bind inserts a fresh symbol for a binding identifier (a lambda parameter
// or loop variable) at the given type and returns it. A binding shadows any
// outer symbol of the same name for the lifetime of this scope.
func (s *Scope) Bind(ident *ast.Ident, t Type) *Symbol {
	sym := &Symbol{Name: ident.Name, Type: t, DefNode: ident}
	s.Insert(ident.Name, sym)
	return sym
}

// Lookup finds a symbol in the current scope or any parent scope.
func (s *Scope) Lookup(name string) *Symbol {
	if sym, ok := s.Symbols[name]; ok {
		return sym
	}
	if s.Parent != nil {
		return s.Parent.Lookup(name)
	}
	return nil
}
