package types

import (
	"sort"
	"strings"
)

// Type represents a type in the Strata type system. Types are immutable
// value objects; composite types own their nested types.
type Type interface {
	String() string
	// IsType is a marker method to ensure type safety.
	IsType()
}

// PrimitiveKind represents the kind of a primitive type.
type PrimitiveKind string

const (
	Any    PrimitiveKind = "any"
	Bool   PrimitiveKind = "bool"
	Int    PrimitiveKind = "int"
	String PrimitiveKind = "string"
	Null   PrimitiveKind = "null"
	// Err is the poison kind: it absorbs every operation without emitting a
	// further diagnostic, so one root cause produces one diagnostic.
	Err PrimitiveKind = "error"
)

// Primitive represents a primitive type.
type Primitive struct {
	Kind PrimitiveKind
}

func (p *Primitive) String() string { return string(p.Kind) }
func (p *Primitive) IsType()        {}

// Common primitive instances
var (
	TypeAny    = &Primitive{Kind: Any}
	TypeBool   = &Primitive{Kind: Bool}
	TypeInt    = &Primitive{Kind: Int}
	TypeString = &Primitive{Kind: String}
	TypeNull   = &Primitive{Kind: Null}
	TypeError  = &Primitive{Kind: Err}
)

// Array represents an array type with a single element type.
type Array struct {
	Elem Type
}

func (a *Array) String() string { return "array<" + a.Elem.String() + ">" }
func (a *Array) IsType()        {}

// NewArray constructs an array type.
func NewArray(elem Type) *Array { return &Array{Elem: elem} }

// Object represents a structural object type.
type Object struct {
	Properties map[string]Type
	Required   map[string]bool
}

func (o *Object) String() string {
	if len(o.Properties) == 0 {
		return "object"
	}
	names := make([]string, 0, len(o.Properties))
	for name := range o.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	var parts []string
	for _, name := range names {
		parts = append(parts, name+": "+o.Properties[name].String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (o *Object) IsType() {}

// NewObject constructs an object type. All properties are optional unless
// listed in required.
func NewObject(props map[string]Type, required ...string) *Object {
	req := make(map[string]bool, len(required))
	for _, name := range required {
		req[name] = true
	}
	return &Object{Properties: props, Required: req}
}

// Resource represents a declared resource of a known schema. Body is the
// structural shape of the declaration; Calls is its instance-call surface.
type Resource struct {
	Ref   string
	Body  *Object
	Calls map[string]*Lambda
}

func (r *Resource) String() string { return "resource<" + r.Ref + ">" }
func (r *Resource) IsType()        {}

// Module represents a declared module of a known schema.
type Module struct {
	Ref   string
	Body  *Object
	Calls map[string]*Lambda
}

func (m *Module) String() string { return "module<" + m.Ref + ">" }
func (m *Module) IsType()        {}

// Lambda represents a checked lambda value. Lambdas only exist in
// call-argument position, so every Lambda type is produced against an
// expected signature.
type Lambda struct {
	Params []Type
	Return Type
}

func (l *Lambda) String() string {
	var params []string
	for _, p := range l.Params {
		params = append(params, p.String())
	}
	ret := "any"
	if l.Return != nil {
		ret = l.Return.String()
	}
	return "(" + strings.Join(params, ", ") + ") => " + ret
}
func (l *Lambda) IsType() {}

// Union represents a union of member types.
type Union struct {
	Members []Type
}

func (u *Union) String() string {
	var parts []string
	for _, m := range u.Members {
		parts = append(parts, m.String())
	}
	return "union(" + strings.Join(parts, " | ") + ")"
}
func (u *Union) IsType() {}

// MakeUnion builds the union of the given types: nested unions are
// flattened, duplicates (by rendered name) collapse, Any and Error absorb
// everything, and a single surviving member is returned bare.
func MakeUnion(members ...Type) Type {
	var flat []Type
	seen := make(map[string]bool)

	var add func(t Type)
	add = func(t Type) {
		if u, ok := t.(*Union); ok {
			for _, m := range u.Members {
				add(m)
			}
			return
		}
		if !seen[t.String()] {
			seen[t.String()] = true
			flat = append(flat, t)
		}
	}
	for _, m := range members {
		add(m)
	}

	for _, m := range flat {
		if m == TypeError {
			return TypeError
		}
	}
	for _, m := range flat {
		if m == TypeAny {
			return TypeAny
		}
	}

	switch len(flat) {
	case 0:
		return TypeAny
	case 1:
		return flat[0]
	default:
		return &Union{Members: flat}
	}
}

// IsError reports whether t is the poison type.
func IsError(t Type) bool {
	return t == TypeError
}
