package converters

import (
	"github.com/Station-Manager/errors"
)

// Temporal formats a date as dd/MM/yyyy (two-digit day, two-digit month,
// four-digit year). The layout is fixed and not locale aware; the value is
// formatted in its own location.
type Temporal struct{}

func NewTemporal() *Temporal { return &Temporal{} }

// ToStructured accepts time.Time, *time.Time or null.Time.
func (Temporal) ToStructured(src any) (any, error) {
	const op errors.Op = "converters.Temporal.ToStructured"
	srcVal, err := CheckTime(op, src)
	if err != nil {
		return nil, errors.New(op).Err(err)
	}
	return srcVal.Format(TemporalLayout), nil
}
