package types

// IsAssignable reports whether a value of type src may be used where dst is
// expected. The relation is directed and reflexive, not symmetric: it is the
// single compatibility check used throughout overload and call resolution.
//
// Error is absorbing in both directions so that one root cause never fans
// out into cascading diagnostics. Any accepts everything and, because the
// algebra is gradually typed, is accepted everywhere.
func IsAssignable(src, dst Type) bool {
	if src == nil || dst == nil {
		return false
	}
	if IsError(src) || IsError(dst) {
		return true
	}
	if dst == TypeAny || src == TypeAny {
		return true
	}
	if src == dst {
		return true
	}

	// A union source needs every member accepted; a union target needs one
	// member that accepts the source. Source first, so that union-to-union
	// checks each source member against the whole target.
	if u, ok := src.(*Union); ok {
		for _, m := range u.Members {
			if !IsAssignable(m, dst) {
				return false
			}
		}
		return true
	}
	if u, ok := dst.(*Union); ok {
		for _, m := range u.Members {
			if IsAssignable(src, m) {
				return true
			}
		}
		return false
	}

	switch d := dst.(type) {
	case *Primitive:
		s, ok := src.(*Primitive)
		return ok && s.Kind == d.Kind

	case *Array:
		s, ok := src.(*Array)
		return ok && IsAssignable(s.Elem, d.Elem)

	case *Object:
		switch s := src.(type) {
		case *Object:
			return objectAssignable(s, d)
		case *Resource:
			return objectAssignable(s.Body, d)
		case *Module:
			return objectAssignable(s.Body, d)
		}
		return false

	case *Resource:
		s, ok := src.(*Resource)
		return ok && s.Ref == d.Ref

	case *Module:
		s, ok := src.(*Module)
		return ok && s.Ref == d.Ref

	case *Lambda:
		s, ok := src.(*Lambda)
		if !ok || len(s.Params) != len(d.Params) {
			return false
		}
		for i := range d.Params {
			if !IsAssignable(d.Params[i], s.Params[i]) {
				return false
			}
		}
		if d.Return == nil {
			return true
		}
		return IsAssignable(s.Return, d.Return)
	}

	return false
}

// objectAssignable implements structural width subtyping: the source must
// carry every property the target requires, and every property present in
// both must be assignably typed.
func objectAssignable(src, dst *Object) bool {
	if src == nil || dst == nil {
		return false
	}
	for name, want := range dst.Properties {
		got, present := src.Properties[name]
		if !present {
			if dst.Required[name] {
				return false
			}
			continue
		}
		if !IsAssignable(got, want) {
			return false
		}
	}
	return true
}
