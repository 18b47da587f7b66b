package serializer

import "reflect"

// Builder provides a fluent API to construct a Serializer with options, adapters and field markers pre-registered.
type Builder struct {
	opts     []Option
	adapters map[string]AdapterFactory
	markers  map[reflect.Type]map[string]fieldMarker
}

// NewBuilder creates a new builder.
func NewBuilder() *Builder {
	return &Builder{
		adapters: make(map[string]AdapterFactory),
		markers:  make(map[reflect.Type]map[string]fieldMarker),
	}
}

// WithOptions appends serializer options to the builder.
func (b *Builder) WithOptions(opts ...Option) *Builder { b.opts = append(b.opts, opts...); return b }

// AddAdapter registers an adapter factory by name.
func (b *Builder) AddAdapter(name string, factory AdapterFactory) *Builder {
	b.adapters[name] = factory
	return b
}

// AddAdapterFunc registers a stateless function adapter by name.
func (b *Builder) AddAdapterFunc(name string, fn func(src any) (any, error)) *Builder {
	return b.AddAdapter(name, Stateless(AdapterFunc(fn)))
}

// IgnoreField marks a field of owner as ignored.
func (b *Builder) IgnoreField(owner any, field string) *Builder {
	return b.mark(owner, field, fieldMarker{ignore: true})
}

// AssignAdapter marks a field of owner to use the named adapter.
func (b *Builder) AssignAdapter(owner any, field, name string) *Builder {
	return b.mark(owner, field, fieldMarker{adapter: name})
}

func (b *Builder) mark(owner any, field string, fm fieldMarker) *Builder {
	t := structType(owner)
	m := b.markers[t]
	if m == nil {
		m = make(map[string]fieldMarker)
		b.markers[t] = m
	}
	m[field] = fm
	return b
}

// Build constructs a Serializer using a single registry swap.
func (b *Builder) Build() *Serializer {
	s := NewWithOptions(b.opts...)
	// Seed the registry in one shot to avoid many copy-on-write swaps.
	reg := s.registry.Load().(*adapterRegistry).clone(len(b.adapters))
	for k, v := range b.adapters {
		reg.byName[k] = v
	}
	for t, m := range b.markers {
		for field, fm := range m {
			if s.checkMarker(t, field) {
				reg.setMarker(t, field, fm)
			}
		}
	}
	s.registry.Store(reg)
	return s
}
