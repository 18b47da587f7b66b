package converters

import (
	"github.com/Station-Manager/errors"
)

// Sequence converts a slice or array into an ordered []any.
//
// Elements are copied as-is and are not serialized recursively, so they are
// expected to be JSON-safe already. A collection of structs will hold the
// struct values themselves, not mappings.
type Sequence struct{}

func NewSequence() *Sequence { return &Sequence{} }

// ToStructured returns nil for a nil slice.
func (Sequence) ToStructured(src any) (any, error) {
	const op errors.Op = "converters.Sequence.ToStructured"
	rv, err := CheckCollection(op, src)
	if err != nil {
		return nil, errors.New(op).Err(err)
	}
	if !rv.IsValid() {
		return nil, nil
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}
