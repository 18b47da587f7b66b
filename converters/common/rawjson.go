package common

import (
	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/serializer/converters"
	"github.com/aarondl/null/v8"
	boilertypes "github.com/aarondl/sqlboiler/v4/types"
	"github.com/goccy/go-json"
)

// RawJSON parses a stored JSON document into generic structured data
// (map[string]any, []any, float64, string, bool or nil).
type RawJSON struct{}

func NewRawJSON() *RawJSON { return &RawJSON{} }

// ToStructured accepts sqlboiler types.JSON, null.JSON, []byte or string.
// Empty input and invalid null.JSON yield nil.
func (RawJSON) ToStructured(src any) (any, error) {
	const op errors.Op = "converters.common.RawJSON.ToStructured"
	var raw []byte
	switch v := src.(type) {
	case boilertypes.JSON:
		raw = v
	case null.JSON:
		if !v.Valid {
			return nil, nil
		}
		raw = v.JSON
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		return nil, nil
	default:
		return nil, errors.New(op).Errorf("Given parameter not a JSON document, got %T", src)
	}

	if len(raw) == 0 {
		return nil, nil
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errors.New(op).Err(err).Msg(converters.ErrMsgBadJSONDocument)
	}
	return out, nil
}
