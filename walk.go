package serializer

import (
	"encoding"
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"go.uber.org/zap"
)

// visitKey includes the type because a struct and its first field share an
// address.
type visitKey struct {
	ptr uintptr
	typ reflect.Type
}

// walkState tracks references on the current descent path so that a
// reference reached again below itself is reported as a cycle. Entries are
// removed on the way back up, so shared acyclic references are serialized
// once per occurrence.
type walkState struct {
	visited map[visitKey]string
}

func newWalkState() *walkState {
	return &walkState{visited: make(map[visitKey]string)}
}

func (s *Serializer) enter(st *walkState, v reflect.Value, path string) (func(), error) {
	ptr := v.Pointer()
	if ptr == 0 {
		return func() {}, nil
	}
	key := visitKey{ptr: ptr, typ: v.Type()}
	if prev, seen := st.visited[key]; seen {
		s.logger.Debug("circular reference", zap.String("path", path), zap.String("first", prev), zap.Stringer("type", v.Type()))
		return nil, newError(KindCycle, path, v.Type(), fmt.Errorf("%w: %s -> %s", ErrCircularReference, displayPath(prev), displayPath(path)))
	}
	st.visited[key] = path
	return func() { delete(st.visited, key) }, nil
}

func displayPath(p string) string {
	if p == "" {
		return "(root)"
	}
	return p
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

// serializeValue classifies v by its runtime type and converts it.
func (s *Serializer) serializeValue(v reflect.Value, path string, depth int, st *walkState) (any, error) {
	if !v.IsValid() {
		return nil, nil
	}
	if depth > s.options.MaxDepth {
		return nil, newError(KindDepth, path, v.Type(), fmt.Errorf("%w: limit %d", ErrMaxDepth, s.options.MaxDepth))
	}
	if !v.CanInterface() {
		return nil, newError(KindReflectionAccess, path, v.Type(), ErrInaccessible)
	}
	if isPrimitiveType(v.Type()) {
		return v.Interface(), nil
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return nil, nil
		}
	}
	// Unwrap first so a typed nil held by an interface is seen as nil.
	if v.Kind() == reflect.Interface {
		return s.serializeValue(v.Elem(), path, depth, st)
	}
	if text, ok, err := marshalText(v); ok {
		if err != nil {
			return nil, newError(KindAdapterConversion, path, v.Type(), err)
		}
		return text, nil
	}

	switch v.Kind() {
	case reflect.Pointer:
		release, err := s.enter(st, v, path)
		if err != nil {
			return nil, err
		}
		defer release()
		return s.serializeValue(v.Elem(), path, depth, st)
	case reflect.Struct:
		return s.serializeStruct(v, path, depth, st)
	case reflect.Slice:
		if v.Len() > 0 {
			release, err := s.enter(st, v, path)
			if err != nil {
				return nil, err
			}
			defer release()
		}
		return s.serializeSequence(v, path, depth, st)
	case reflect.Array:
		return s.serializeSequence(v, path, depth, st)
	case reflect.Map:
		release, err := s.enter(st, v, path)
		if err != nil {
			return nil, err
		}
		defer release()
		return s.serializeMap(v, path, depth, st)
	}
	return nil, newError(KindUnsupported, path, v.Type(), fmt.Errorf("%w: %s", ErrUnsupportedKind, v.Kind()))
}

// marshalText uses encoding.TextMarshaler on the value or, when addressable,
// on its pointer. A panicking MarshalText is reported as an error.
func marshalText(v reflect.Value) (text string, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, ok, err = "", true, fmt.Errorf("MarshalText panicked: %v", r)
		}
	}()
	if tm, ok := v.Interface().(encoding.TextMarshaler); ok {
		b, err := tm.MarshalText()
		return string(b), true, err
	}
	if v.Kind() != reflect.Pointer && v.CanAddr() {
		if tm, ok := v.Addr().Interface().(encoding.TextMarshaler); ok {
			b, err := tm.MarshalText()
			return string(b), true, err
		}
	}
	return "", false, nil
}

// serializeStruct applies the per-field rules: ignore, adapter, primitive,
// recurse.
func (s *Serializer) serializeStruct(v reflect.Value, path string, depth int, st *walkState) (any, error) {
	meta := s.getOrBuildMetadata(v.Type())
	reg := s.registry.Load().(*adapterRegistry)
	markers := reg.markers[v.Type()]
	out := NewMapping(len(meta.fields))
	for i := range meta.fields {
		fi := &meta.fields[i]
		ignore, adapter := fi.ignore, fi.adapter
		m, ok := markers[fi.name]
		if !ok && fi.owner != v.Type() {
			m, ok = reg.markers[fi.owner][fi.name]
		}
		if ok {
			ignore, adapter = m.ignore, m.adapter
		}
		if ignore {
			continue
		}
		fv, ok := safeFieldByIndex(v, fi.index)
		if !ok {
			continue
		}
		fieldPath := joinPath(path, fi.name)
		if adapter != "" {
			res, err := s.applyAdapter(reg, adapter, fv, fieldPath)
			if err != nil {
				return nil, err
			}
			out.Set(fi.key, res)
			continue
		}
		if fi.primitive {
			if !fv.CanInterface() {
				return nil, newError(KindReflectionAccess, fieldPath, fi.typ, ErrInaccessible)
			}
			out.Set(fi.key, fv.Interface())
			continue
		}
		res, err := s.serializeValue(fv, fieldPath, depth+1, st)
		if err != nil {
			return nil, err
		}
		out.Set(fi.key, res)
	}
	return out, nil
}

func (s *Serializer) serializeSequence(v reflect.Value, path string, depth int, st *walkState) (any, error) {
	out := make([]any, v.Len())
	for i := range out {
		res, err := s.serializeValue(v.Index(i), path+"["+strconv.Itoa(i)+"]", depth+1, st)
		if err != nil {
			return nil, err
		}
		out[i] = res
	}
	return out, nil
}

// serializeMap produces a Mapping with keys sorted. Keys must be strings,
// integers or implement encoding.TextMarshaler.
func (s *Serializer) serializeMap(v reflect.Value, path string, depth int, st *walkState) (any, error) {
	type entry struct {
		key string
		val reflect.Value
	}
	entries := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		k, err := mapKey(iter.Key())
		if err != nil {
			return nil, newError(KindUnsupported, path, v.Type(), err)
		}
		entries = append(entries, entry{key: k, val: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	out := NewMapping(len(entries))
	for _, e := range entries {
		res, err := s.serializeValue(e.val, path+"["+strconv.Quote(e.key)+"]", depth+1, st)
		if err != nil {
			return nil, err
		}
		out.Set(e.key, res)
	}
	return out, nil
}

func mapKey(k reflect.Value) (string, error) {
	switch k.Kind() {
	case reflect.String:
		return k.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(k.Uint(), 10), nil
	}
	if tm, ok := k.Interface().(encoding.TextMarshaler); ok {
		b, err := tm.MarshalText()
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return "", fmt.Errorf("%w: map key %s", ErrUnsupportedKind, k.Type())
}
