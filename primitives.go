package serializer

import (
	"reflect"

	"github.com/aarondl/null/v8"
	boilertypes "github.com/aarondl/sqlboiler/v4/types"
)

// NullMarker is what Serialize returns for a nil input.
const NullMarker = "null"

// opaqueTypes are already-structured values that are passed through without
// inspection. Read-only after init.
var opaqueTypes = map[reflect.Type]struct{}{
	reflect.TypeOf(map[string]any(nil)): {},
	reflect.TypeOf([]any(nil)):          {},
	reflect.TypeOf((*Mapping)(nil)):     {},
	reflect.TypeOf([]byte(nil)):         {},
	reflect.TypeOf(null.JSON{}):         {},
	reflect.TypeOf(boilertypes.JSON{}):  {},
}

// isPrimitiveType reports whether values of typ are leaves of the output tree.
// Scalar families are matched by kind so named types such as
// `type Celsius float64` qualify; the opaque set is matched exactly.
func isPrimitiveType(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return true
	}
	_, ok := opaqueTypes[typ]
	return ok
}

// IsPrimitive reports whether Serialize would return v unchanged.
func IsPrimitive(v any) bool {
	if v == nil {
		return false
	}
	return isPrimitiveType(reflect.TypeOf(v))
}
