package serializer

import (
	"fmt"
	"reflect"

	"github.com/Station-Manager/serializer/converters"
	"github.com/Station-Manager/serializer/converters/common"
	"go.uber.org/zap"
)

// Names of the adapters every Serializer starts with.
const (
	AdapterSequence = "sequence"
	AdapterDate     = "date"
	AdapterNullable = "nullable"
	AdapterRawJSON  = "rawjson"
	AdapterFreq     = "frequency"
)

// Adapter converts a single field value into a structured value. The result
// is emitted verbatim.
type Adapter interface {
	ToStructured(src any) (any, error)
}

// AdapterFunc lets an ordinary function act as an Adapter.
type AdapterFunc func(src any) (any, error)

func (f AdapterFunc) ToStructured(src any) (any, error) { return f(src) }

// AdapterFactory creates a fresh Adapter for each field conversion.
type AdapterFactory func() (Adapter, error)

// Stateless wraps a ready-made Adapter as a factory.
func Stateless(a Adapter) AdapterFactory {
	return func() (Adapter, error) { return a, nil }
}

// Composition helpers
// ComposeAdapters chains adapters left-to-right.
// If any adapter returns an error it aborts.
// Nil output propagates immediately.
func ComposeAdapters(adapters ...Adapter) Adapter {
	return AdapterFunc(func(src any) (any, error) {
		cur := src
		for _, a := range adapters {
			out, err := a.ToStructured(cur)
			if err != nil {
				return nil, err
			}
			if out == nil {
				return nil, nil
			}
			cur = out
		}
		return cur, nil
	})
}

// MapString returns an Adapter applying f when src is a string; otherwise returns src unchanged.
func MapString(f func(string) string) Adapter {
	return AdapterFunc(func(src any) (any, error) {
		if s, ok := src.(string); ok {
			return f(s), nil
		}
		return src, nil
	})
}

func defaultAdapters() map[string]AdapterFactory {
	return map[string]AdapterFactory{
		AdapterSequence: func() (Adapter, error) { return converters.NewSequence(), nil },
		AdapterDate:     func() (Adapter, error) { return converters.NewTemporal(), nil },
		AdapterNullable: func() (Adapter, error) { return common.NewNullable(), nil },
		AdapterRawJSON:  func() (Adapter, error) { return common.NewRawJSON(), nil },
		AdapterFreq:     func() (Adapter, error) { return common.NewFrequency(), nil },
	}
}

// fieldMarker is an out-of-band marker for a field of a type the caller
// cannot tag. It overrides the struct tag entirely.
type fieldMarker struct {
	ignore  bool
	adapter string
}

// adapterRegistry is swapped atomically (copy-on-write)
type adapterRegistry struct {
	byName  map[string]AdapterFactory
	markers map[reflect.Type]map[string]fieldMarker // [owner struct type][Go field name]
}

func newAdapterRegistry() *adapterRegistry {
	return &adapterRegistry{byName: make(map[string]AdapterFactory), markers: make(map[reflect.Type]map[string]fieldMarker)}
}

func (r *adapterRegistry) clone(extra int) *adapterRegistry {
	out := &adapterRegistry{
		byName:  make(map[string]AdapterFactory, len(r.byName)+extra),
		markers: make(map[reflect.Type]map[string]fieldMarker, len(r.markers)+extra),
	}
	for k, v := range r.byName {
		out.byName[k] = v
	}
	for t, m := range r.markers {
		sub := make(map[string]fieldMarker, len(m))
		for fk, fv := range m {
			sub[fk] = fv
		}
		out.markers[t] = sub
	}
	return out
}

func (r *adapterRegistry) setMarker(owner reflect.Type, field string, fm fieldMarker) {
	m := r.markers[owner]
	if m == nil {
		m = make(map[string]fieldMarker)
		r.markers[owner] = m
	}
	m[field] = fm
}

// RegisterAdapter adds or replaces the adapter factory for name.
func (s *Serializer) RegisterAdapter(name string, factory AdapterFactory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg := s.registry.Load().(*adapterRegistry).clone(1)
	reg.byName[name] = factory
	s.registry.Store(reg)
}

// IgnoreField marks field of owner (a value or pointer of the struct type) as ignored.
//
// A marker on an embedded type also applies where its fields are promoted
// into an outer struct. A marker on the outer struct wins over one on the
// embedded type. Marking a field owner does not have is logged at Warn and
// has no effect.
func (s *Serializer) IgnoreField(owner any, field string) {
	s.setMarker(owner, field, fieldMarker{ignore: true})
}

// AssignAdapter marks field of owner to be converted by the adapter registered
// as name. Promotion and precedence follow IgnoreField.
func (s *Serializer) AssignAdapter(owner any, field, name string) {
	s.setMarker(owner, field, fieldMarker{adapter: name})
}

func (s *Serializer) setMarker(owner any, field string, fm fieldMarker) {
	t := structType(owner)
	if !s.checkMarker(t, field) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	reg := s.registry.Load().(*adapterRegistry).clone(1)
	reg.setMarker(t, field, fm)
	s.registry.Store(reg)
}

// checkMarker reports whether t is a struct type. Unknown field names are
// logged but still accepted.
func (s *Serializer) checkMarker(t reflect.Type, field string) bool {
	if t == nil || t.Kind() != reflect.Struct {
		s.logger.Warn("field marker owner is not a struct", zap.String("owner", fmt.Sprint(t)), zap.String("field", field))
		return false
	}
	if _, ok := s.getOrBuildMetadata(t).fieldsByName[field]; !ok {
		s.logger.Warn("field marker names an unknown field", zap.Stringer("owner", t), zap.String("field", field))
	}
	return true
}

// HasAdapter reports whether an adapter is registered under name.
func (s *Serializer) HasAdapter(name string) bool {
	_, ok := s.registry.Load().(*adapterRegistry).byName[name]
	return ok
}

func structType(v any) reflect.Type {
	t := reflect.TypeOf(v)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// applyAdapter instantiates the named adapter and converts src. Panics from
// either step are reported as errors of the matching kind.
func (s *Serializer) applyAdapter(reg *adapterRegistry, name string, fv reflect.Value, path string) (out any, err error) {
	typ := fv.Type()
	factory, ok := reg.byName[name]
	if !ok || factory == nil {
		return nil, newError(KindAdapterInstantiation, path, typ, fmt.Errorf("%w: %q", ErrAdapterNotRegistered, name))
	}
	adapter, err := instantiate(factory)
	if err != nil {
		return nil, newError(KindAdapterInstantiation, path, typ, fmt.Errorf("adapter %q: %w", name, err))
	}
	if !fv.CanInterface() {
		return nil, newError(KindReflectionAccess, path, typ, ErrInaccessible)
	}
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = newError(KindAdapterConversion, path, typ, fmt.Errorf("adapter %q panicked: %v", name, r))
		}
	}()
	out, err = adapter.ToStructured(fv.Interface())
	if err != nil {
		return nil, newError(KindAdapterConversion, path, typ, fmt.Errorf("adapter %q: %w", name, err))
	}
	return out, nil
}

func instantiate(factory AdapterFactory) (a Adapter, err error) {
	defer func() {
		if r := recover(); r != nil {
			a = nil
			err = fmt.Errorf("factory panicked: %v", r)
		}
	}()
	a, err = factory()
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNilAdapter
	}
	return a, nil
}
