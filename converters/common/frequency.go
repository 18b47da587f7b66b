package common

import (
	"math"
	"strconv"

	"github.com/Station-Manager/errors"
	"github.com/aarondl/null/v8"
)

// Frequency renders a frequency stored in Hz as a MHz string with three
// decimal places, e.g. 14074000 becomes "14.074".
type Frequency struct{}

func NewFrequency() *Frequency { return &Frequency{} }

// ToStructured accepts int, int64, uint64 and null.Int64. An invalid
// null.Int64 yields nil.
func (Frequency) ToStructured(src any) (any, error) {
	const op errors.Op = "converters.common.Frequency.ToStructured"
	var hz int64
	switch v := src.(type) {
	case int64:
		hz = v
	case int:
		hz = int64(v)
	case uint64:
		if v > math.MaxInt64 {
			return nil, errors.New(op).Errorf("Frequency %d Hz out of range", v)
		}
		hz = int64(v)
	case null.Int64:
		if !v.Valid {
			return nil, nil
		}
		hz = v.Int64
	default:
		return nil, errors.New(op).Errorf("Given parameter not an integer frequency, got %T", src)
	}
	if hz < 0 {
		return nil, errors.New(op).Errorf("Negative frequency %d", hz)
	}
	return strconv.FormatFloat(float64(hz)/1e6, 'f', 3, 64), nil
}
