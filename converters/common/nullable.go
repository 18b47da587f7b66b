package common

import (
	"database/sql/driver"

	"github.com/Station-Manager/errors"
	"github.com/aarondl/null/v8"
)

// Nullable unwraps aarondl/null values into their primitive payload, or nil
// when the value is not valid.
type Nullable struct{}

func NewNullable() *Nullable { return &Nullable{} }

func (Nullable) ToStructured(src any) (any, error) {
	const op errors.Op = "converters.common.Nullable.ToStructured"
	switch v := src.(type) {
	case null.String:
		if !v.Valid {
			return nil, nil
		}
		return v.String, nil
	case null.Bool:
		if !v.Valid {
			return nil, nil
		}
		return v.Bool, nil
	case null.Int:
		if !v.Valid {
			return nil, nil
		}
		return v.Int, nil
	case null.Int64:
		if !v.Valid {
			return nil, nil
		}
		return v.Int64, nil
	case null.Float64:
		if !v.Valid {
			return nil, nil
		}
		return v.Float64, nil
	case null.Time:
		if !v.Valid {
			return nil, nil
		}
		return v.Time, nil
	case string, bool, int, int64, float64:
		return v, nil
	case nil:
		return nil, nil
	}

	// Remaining null widths (Int8, Uint32, Float32, Byte, ...) all implement
	// driver.Valuer and report nil when invalid.
	if valuer, ok := src.(driver.Valuer); ok {
		val, err := valuer.Value()
		if err != nil {
			return nil, errors.New(op).Err(err)
		}
		return val, nil
	}

	return nil, errors.New(op).Errorf("Given parameter not a null type, got %T", src)
}
