package serializer

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/Station-Manager/errors"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// DefaultMaxDepth bounds nesting when no option overrides it.
const DefaultMaxDepth = 64

type Options struct {
	MaxDepth        int         // nesting limit for structs, maps and sequences; <= 0 means DefaultMaxDepth
	UseJSONTagNames bool        // when true, the json tag name is used as the output key and json:"-" ignores the field
	Logger          *zap.Logger // receives failure reports from SerializeOrNil; nil means no logging
}

type Option func(*Options)

func WithMaxDepth(n int) Option { return func(o *Options) { o.MaxDepth = n } }
func WithJSONTagNames(v bool) Option { return func(o *Options) { o.UseJSONTagNames = v } }
func WithLogger(l *zap.Logger) Option { return func(o *Options) { o.Logger = l } }

// Serializer converts Go values into structured values.
// See the package documentation for the rules it applies.
type Serializer struct {
	registry      atomic.Value // holds *adapterRegistry
	mu            sync.Mutex   // serializes registry writers
	metadataCache sync.Map     // map[reflect.Type]*structMetadata
	options       Options
	logger        *zap.Logger
}

// New creates a Serializer with default options and the built-in adapters.
func New() *Serializer { return NewWithOptions() }

// NewWithOptions creates a Serializer with provided options.
func NewWithOptions(opts ...Option) *Serializer {
	s := &Serializer{}
	optsState := Options{MaxDepth: DefaultMaxDepth}
	for _, f := range opts {
		f(&optsState)
	}
	if optsState.MaxDepth <= 0 {
		optsState.MaxDepth = DefaultMaxDepth
	}
	s.options = optsState
	s.logger = optsState.Logger
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	reg := newAdapterRegistry()
	for name, factory := range defaultAdapters() {
		reg.byName[name] = factory
	}
	s.registry.Store(reg)
	return s
}

// Options returns a copy of the options in effect.
func (s *Serializer) Options() Options { return s.options }

// Serialize converts v into a structured value.
//
// A nil v yields NullMarker, primitive values are returned unchanged, and
// everything else is walked. Structs produce a *Mapping. On failure the
// error is a *SerializeError and no partial result is returned. A panic
// raised by user code during the walk is returned as a KindUnsupported
// error wrapping ErrPanicked.
func (s *Serializer) Serialize(v any) (out any, err error) {
	if v == nil {
		return NullMarker, nil
	}
	if IsPrimitive(v) {
		return v, nil
	}
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = newError(KindUnsupported, "", reflect.TypeOf(v), fmt.Errorf("%w: %v", ErrPanicked, r))
		}
	}()
	out, err = s.serializeValue(reflect.ValueOf(v), "", 0, newWalkState())
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SerializeOrNil is the lenient form of Serialize: any failure is logged and
// the whole result is nil. Callers must treat nil as "serialization failed".
func (s *Serializer) SerializeOrNil(v any) any {
	out, err := s.Serialize(v)
	if err != nil {
		fields := []zap.Field{zap.String("type", fmt.Sprintf("%T", v)), zap.Error(err)}
		if se, ok := err.(*SerializeError); ok {
			fields = append(fields, zap.String("path", se.Path), zap.Stringer("kind", se.Kind))
		}
		s.logger.Error("serialization failed", fields...)
		return nil
	}
	return out
}

// Marshal serializes v and encodes the result as JSON text.
func (s *Serializer) Marshal(v any) ([]byte, error) {
	const op errors.Op = "serializer.Marshal"
	out, err := s.Serialize(v)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, errors.New(op).Err(err)
	}
	return data, nil
}

// WarmMetadata pre-builds field metadata for provided example values (pass either a T or *T).
func (s *Serializer) WarmMetadata(examples ...any) {
	for _, e := range examples {
		t := structType(e)
		if t == nil || t.Kind() != reflect.Struct {
			continue
		}
		_ = s.getOrBuildMetadata(t)
	}
}

var std = New()

// Serialize uses a shared Serializer with default options.
func Serialize(v any) (any, error) { return std.Serialize(v) }

// SerializeOrNil uses a shared Serializer with default options.
func SerializeOrNil(v any) any { return std.SerializeOrNil(v) }

// Marshal uses a shared Serializer with default options.
func Marshal(v any) ([]byte, error) { return std.Marshal(v) }
