package serializer

import (
	"reflect"
	"strings"
)

const tagKey = "adapter"

type fieldInfo struct {
	index     []int
	name      string // Go field name
	key       string // output key
	typ       reflect.Type
	owner     reflect.Type // struct type that declares the field
	depth     int          // embedding depth, 0 for fields declared on the type itself
	primitive bool
	ignore    bool
	adapter   string
}

type structMetadata struct {
	fields       []fieldInfo
	fieldsByName map[string]*fieldInfo // Go field name, promoted fields included
}

// parseTag splits an adapter tag into its ignore flag and adapter name.
func parseTag(tag string) (ignore bool, adapter string) {
	tag = strings.TrimSpace(tag)
	switch tag {
	case "":
		return false, ""
	case "ignore", "-":
		return true, ""
	}
	return false, tag
}

func jsonTagName(f reflect.StructField) (name string, skip bool) {
	jt, ok := f.Tag.Lookup("json")
	if !ok {
		return "", false
	}
	if i := strings.IndexByte(jt, ','); i >= 0 {
		jt = jt[:i]
	}
	if jt == "-" {
		return "", true
	}
	return jt, false
}

func (s *Serializer) getOrBuildMetadata(typ reflect.Type) *structMetadata {
	if cached, ok := s.metadataCache.Load(typ); ok {
		return cached.(*structMetadata)
	}
	var all []fieldInfo
	s.buildFieldMetadata(typ, &all, nil, map[reflect.Type]bool{typ: true})
	fields := dominantFields(all)
	meta := &structMetadata{fields: fields, fieldsByName: make(map[string]*fieldInfo, len(fields))}
	for i := range meta.fields {
		fi := &meta.fields[i]
		meta.fieldsByName[fi.name] = fi
	}
	actual, _ := s.metadataCache.LoadOrStore(typ, meta)
	return actual.(*structMetadata)
}

// buildFieldMetadata collects exported fields in declaration order. Untagged
// embedded structs (and pointers to structs) are flattened in place.
func (s *Serializer) buildFieldMetadata(typ reflect.Type, out *[]fieldInfo, prefix []int, seen map[reflect.Type]bool) {
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		idx := append(append([]int(nil), prefix...), i)
		ignore, adapter := parseTag(f.Tag.Get(tagKey))
		key := f.Name
		if s.options.UseJSONTagNames {
			name, skip := jsonTagName(f)
			if skip {
				ignore = true
			} else if name != "" {
				key = name
			}
		}
		if f.Anonymous && adapter == "" {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct && key == f.Name {
				if ignore || seen[ft] {
					continue
				}
				seen[ft] = true
				s.buildFieldMetadata(ft, out, idx, seen)
				delete(seen, ft)
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		*out = append(*out, fieldInfo{
			index:     idx,
			name:      f.Name,
			key:       key,
			typ:       f.Type,
			owner:     typ,
			depth:     len(prefix),
			primitive: isPrimitiveType(f.Type),
			ignore:    ignore,
			adapter:   adapter,
		})
	}
}

// dominantFields applies Go's selector rules to promoted fields: for each
// output key the shallowest field wins, and a tie at that depth drops the key.
// Declaration order is kept.
func dominantFields(all []fieldInfo) []fieldInfo {
	minDepth := make(map[string]int, len(all))
	count := make(map[string]int, len(all))
	for _, f := range all {
		d, ok := minDepth[f.key]
		switch {
		case !ok || f.depth < d:
			minDepth[f.key] = f.depth
			count[f.key] = 1
		case f.depth == d:
			count[f.key]++
		}
	}
	out := make([]fieldInfo, 0, len(all))
	for _, f := range all {
		if f.depth == minDepth[f.key] && count[f.key] == 1 {
			out = append(out, f)
		}
	}
	return out
}

// safeFieldByIndex walks index through embedded pointers, reporting false when
// one of them is nil.
func safeFieldByIndex(val reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && val.Kind() == reflect.Pointer {
			if val.IsNil() {
				return reflect.Value{}, false
			}
			val = val.Elem()
		}
		val = val.Field(x)
	}
	return val, true
}
