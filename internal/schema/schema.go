package schema

// Package schema models the read-only snapshots the checker receives from
// the deployment platform before checking begins: for every resource or
// module type string, the structural shape of its declaration body plus the
// instance-call surface (key-listing operations and the like).

// RefKind is the kind tag of a schema type reference.
type RefKind string

const (
	RefAny    RefKind = "any"
	RefBool   RefKind = "bool"
	RefInt    RefKind = "int"
	RefString RefKind = "string"
	RefArray  RefKind = "array"
	RefObject RefKind = "object"
)

// TypeRef is a structural type reference inside a schema. It deliberately
// mirrors the wire shape the platform publishes; the checker converts it
// into its own type algebra.
type TypeRef struct {
	Kind     RefKind             `json:"kind"`
	Elem     *TypeRef            `json:"elem,omitempty"`     // array element
	Props    map[string]*TypeRef `json:"props,omitempty"`    // object properties
	Required []string            `json:"required,omitempty"` // required property names
}

// CallRef describes one instance-style call available on a declaration of
// this schema, e.g. a key-listing operation returning a known object shape.
type CallRef struct {
	Params []*TypeRef `json:"params,omitempty"`
	Return *TypeRef   `json:"return"`
}

// Schema is the declaration shape for one resource or module type.
type Schema struct {
	Ref   string              `json:"-"`
	Body  *TypeRef            `json:"body"`
	Calls map[string]*CallRef `json:"calls,omitempty"`
}

// Provider supplies schemas for resource and module type strings. Lookups
// happen against an already-loaded snapshot; there is no I/O behind this
// interface during checking.
type Provider interface {
	Resource(typeRef string) (*Schema, bool)
	Module(source string) (*Schema, bool)
}

// Registry is an in-memory Provider.
type Registry struct {
	resources map[string]*Schema
	modules   map[string]*Schema
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		resources: make(map[string]*Schema),
		modules:   make(map[string]*Schema),
	}
}

// RegisterResource adds a resource schema under its type string.
func (r *Registry) RegisterResource(typeRef string, s *Schema) {
	s.Ref = typeRef
	r.resources[typeRef] = s
}

// RegisterModule adds a module schema under its source string.
func (r *Registry) RegisterModule(source string, s *Schema) {
	s.Ref = source
	r.modules[source] = s
}

// Resource returns the schema for a resource type string.
func (r *Registry) Resource(typeRef string) (*Schema, bool) {
	s, ok := r.resources[typeRef]
	return s, ok
}

// Module returns the schema for a module source string.
func (r *Registry) Module(source string) (*Schema, bool) {
	s, ok := r.modules[source]
	return s, ok
}
