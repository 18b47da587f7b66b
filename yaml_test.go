package serializer

import (
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToYAML_KeepsFieldOrder(t *testing.T) {
	type Station struct {
		Callsign string
		Grid     string
		Licensed time.Time `adapter:"date"`
		Bands    []string  `adapter:"sequence"`
		Home     *Address
	}
	st := Station{
		Callsign: "M0CMC",
		Grid:     "IO91",
		Licensed: time.Date(2019, time.July, 4, 0, 0, 0, 0, time.UTC),
		Bands:    []string{"20m", "40m"},
		Home:     &Address{Street: "High St", City: "Reading", Zip: 1},
	}

	data, err := New().ToYAML(st)
	require.NoError(t, err)

	var got yaml.MapSlice
	require.NoError(t, yaml.Unmarshal(data, &got))
	keys := make([]any, 0, len(got))
	for _, item := range got {
		keys = append(keys, item.Key)
	}
	assert.Equal(t, []any{"Callsign", "Grid", "Licensed", "Bands", "Home"}, keys)
	assert.Equal(t, "04/07/2019", got[2].Value)
	assert.Contains(t, string(data), "Callsign: M0CMC")
}

func TestToYAML_Primitive(t *testing.T) {
	data, err := ToYAML(42)
	require.NoError(t, err)
	assert.Equal(t, "42\n", string(data))
}

func TestToYAML_PropagatesSerializeError(t *testing.T) {
	type Bad struct {
		When time.Time `adapter:"missing"`
	}
	_, err := New().ToYAML(Bad{})
	var se *SerializeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindAdapterInstantiation, se.Kind)
}

func TestMapping_MarshalYAML(t *testing.T) {
	inner := NewMapping(1)
	inner.Set("z", 1)
	m := NewMapping(2)
	m.Set("b", inner)
	m.Set("a", []any{inner})

	data, err := yaml.Marshal(m)
	require.NoError(t, err)
	var got yaml.MapSlice
	require.NoError(t, yaml.Unmarshal(data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Key)
	assert.Equal(t, "a", got[1].Key)

	var nilMapping *Mapping
	v, err := nilMapping.MarshalYAML()
	require.NoError(t, err)
	assert.Nil(t, v)
}
