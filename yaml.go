package serializer

import (
	"github.com/Station-Manager/errors"
	"github.com/goccy/go-yaml"
)

// MarshalYAML lets go-yaml encode a Mapping as an ordered YAML mapping.
func (m *Mapping) MarshalYAML() (any, error) {
	if m == nil {
		return nil, nil
	}
	return m.mapSlice(), nil
}

func (m *Mapping) mapSlice() yaml.MapSlice {
	out := make(yaml.MapSlice, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, yaml.MapItem{Key: k, Value: yamlValue(m.values[k])})
	}
	return out
}

func yamlValue(v any) any {
	switch t := v.(type) {
	case *Mapping:
		if t == nil {
			return nil
		}
		return t.mapSlice()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = yamlValue(e)
		}
		return out
	default:
		return v
	}
}

// ToYAML serializes v and encodes the result as a YAML document. Struct fields
// keep their declaration order.
func (s *Serializer) ToYAML(v any) ([]byte, error) {
	const op errors.Op = "serializer.ToYAML"
	out, err := s.Serialize(v)
	if err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(yamlValue(out))
	if err != nil {
		return nil, errors.New(op).Err(err)
	}
	return data, nil
}

// ToYAML uses a shared Serializer with default options.
func ToYAML(v any) ([]byte, error) { return std.ToYAML(v) }
