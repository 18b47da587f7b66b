package converters

import (
	"reflect"
	"time"

	"github.com/Station-Manager/errors"
	"github.com/aarondl/null/v8"
)

// CheckTime accepts time.Time, *time.Time and null.Time. Nil pointers and
// invalid null.Time values are rejected.
func CheckTime(op errors.Op, src any) (time.Time, error) {
	switch v := src.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		if v == nil {
			return time.Time{}, errors.New(op).Msg(ErrMsgNilTemporal)
		}
		return *v, nil
	case null.Time:
		if !v.Valid {
			return time.Time{}, errors.New(op).Msg(ErrMsgNilTemporal)
		}
		return v.Time, nil
	case nil:
		return time.Time{}, errors.New(op).Msg(ErrMsgNilTemporal)
	}
	return time.Time{}, errors.New(op).Errorf("Given parameter not a time.Time, got %T", src)
}

// CheckCollection returns the slice or array held by src, dereferencing a
// single pointer. The returned value is invalid for a nil slice.
func CheckCollection(op errors.Op, src any) (reflect.Value, error) {
	if src == nil {
		return reflect.Value{}, errors.New(op).Msg(ErrMsgNotCollection)
	}
	rv := reflect.ValueOf(src)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return reflect.Value{}, nil
		}
		return rv, nil
	case reflect.Array:
		return rv, nil
	}
	return reflect.Value{}, errors.New(op).Errorf("%s got %T", ErrMsgNotCollection, src)
}
