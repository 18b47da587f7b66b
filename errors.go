package serializer

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrorKind classifies a serialization failure.
type ErrorKind int

const (
	KindAdapterInstantiation ErrorKind = iota + 1 // adapter not registered or factory failed
	KindAdapterConversion                         // adapter or MarshalText returned an error or panicked
	KindReflectionAccess                          // value cannot be read through reflection
	KindCycle                                     // reference already on the current path
	KindDepth                                     // nesting deeper than Options.MaxDepth
	KindUnsupported                               // func, chan, complex, unsafe pointer, bad map key, recovered panic
)

func (k ErrorKind) String() string {
	switch k {
	case KindAdapterInstantiation:
		return "adapter instantiation"
	case KindAdapterConversion:
		return "adapter conversion"
	case KindReflectionAccess:
		return "reflection access"
	case KindCycle:
		return "cycle"
	case KindDepth:
		return "depth"
	case KindUnsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

var (
	ErrAdapterNotRegistered = errors.New("adapter not registered")
	ErrNilAdapter           = errors.New("adapter factory returned nil")
	ErrInaccessible         = errors.New("value is not accessible")
	ErrCircularReference    = errors.New("circular reference detected")
	ErrMaxDepth             = errors.New("maximum depth exceeded")
	ErrUnsupportedKind      = errors.New("unsupported kind")
	ErrNotStruct            = errors.New("value does not serialize to a mapping")
	ErrPanicked             = errors.New("panic during serialization")
)

// SerializeError reports which field failed and why. Path is the dotted field
// path from the root value; it is empty when the root itself failed.
type SerializeError struct {
	Kind ErrorKind
	Path string
	Type reflect.Type
	Err  error
}

func (e *SerializeError) Error() string {
	path := e.Path
	if path == "" {
		path = "(root)"
	}
	if e.Type != nil {
		return fmt.Sprintf("serializer: %s failure at %s (%s): %v", e.Kind, path, e.Type, e.Err)
	}
	return fmt.Sprintf("serializer: %s failure at %s: %v", e.Kind, path, e.Err)
}

func (e *SerializeError) Unwrap() error { return e.Err }

func newError(kind ErrorKind, path string, typ reflect.Type, err error) *SerializeError {
	return &SerializeError{Kind: kind, Path: path, Type: typ, Err: err}
}
