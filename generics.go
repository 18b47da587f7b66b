package serializer

import "reflect"

// Generic helpers as top-level functions (methods cannot have type parameters yet)

// SerializeMapping serializes a struct (or pointer to struct) and returns the
// top-level Mapping.
func SerializeMapping[T any](s *Serializer, v T) (*Mapping, error) {
	out, err := s.Serialize(v)
	if err != nil {
		return nil, err
	}
	m, ok := out.(*Mapping)
	if !ok {
		return nil, newError(KindUnsupported, "", reflect.TypeOf(v), ErrNotStruct)
	}
	return m, nil
}

// SerializeAll serializes each element of values, failing on the first error.
func SerializeAll[T any](s *Serializer, values []T) ([]any, error) {
	out := make([]any, 0, len(values))
	for _, v := range values {
		res, err := s.Serialize(v)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}
