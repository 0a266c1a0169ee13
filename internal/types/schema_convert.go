package types

import "github.com/strata-lang/strata/internal/schema"

// FromSchemaRef converts a schema type reference into a checker type. A nil
// or unrecognized reference degrades to any rather than error: schemas are
// trusted platform input, not user code to diagnose.
func FromSchemaRef(ref *schema.TypeRef) Type {
	if ref == nil {
		return TypeAny
	}
	switch ref.Kind {
	case schema.RefBool:
		return TypeBool
	case schema.RefInt:
		return TypeInt
	case schema.RefString:
		return TypeString
	case schema.RefArray:
		return NewArray(FromSchemaRef(ref.Elem))
	case schema.RefObject:
		props := make(map[string]Type, len(ref.Props))
		for name, p := range ref.Props {
			props[name] = FromSchemaRef(p)
		}
		return NewObject(props, ref.Required...)
	default:
		return TypeAny
	}
}

func schemaBody(s *schema.Schema) *Object {
	if body, ok := FromSchemaRef(s.Body).(*Object); ok {
		return body
	}
	return NewObject(nil)
}

func schemaCalls(s *schema.Schema) map[string]*Lambda {
	if len(s.Calls) == 0 {
		return nil
	}
	calls := make(map[string]*Lambda, len(s.Calls))
	for name, call := range s.Calls {
		params := make([]Type, 0, len(call.Params))
		for _, p := range call.Params {
			params = append(params, FromSchemaRef(p))
		}
		calls[name] = &Lambda{Params: params, Return: FromSchemaRef(call.Return)}
	}
	return calls
}

// ResourceFor builds the checker type for a declaration of the given
// resource schema.
func ResourceFor(s *schema.Schema) *Resource {
	return &Resource{Ref: s.Ref, Body: schemaBody(s), Calls: schemaCalls(s)}
}

// ModuleFor builds the checker type for a declaration of the given module
// schema.
func ModuleFor(s *schema.Schema) *Module {
	return &Module{Ref: s.Ref, Body: schemaBody(s), Calls: schemaCalls(s)}
}
