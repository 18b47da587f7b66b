// Package serializer turns arbitrary Go values into a generic tree of mappings,
// sequences and primitive values that is ready to be encoded as JSON.
//
// # Basic Usage
//
//	s := serializer.New()
//	out, err := s.Serialize(&order)    // *serializer.Mapping for structs
//	data, err := s.Marshal(&order)     // JSON text, keys in declaration order
//	doc, err := s.ToYAML(&order)       // YAML document, same ordering
//
// # Serialization Rules
//
// Serialize classifies the value first:
//  1. nil yields the string "null" (kept for compatibility with older callers)
//  2. primitive values (bool, integers, floats, strings, []byte and already
//     structured nodes such as map[string]any, []any, *Mapping, null.JSON and
//     sqlboiler types.JSON) are returned unchanged
//  3. everything else is walked field by field
//
// For every exported struct field, in declaration order:
//  1. fields marked ignore are skipped
//  2. fields marked with an adapter are converted by that adapter, verbatim
//  3. fields whose declared type is primitive are copied as-is
//  4. all other fields are serialized recursively by the same rules
//
// # Field Markers
//
// Markers are declared with the adapter struct tag:
//
//	type Event struct {
//	    Title    string
//	    Tags     []string  `adapter:"sequence"` // []any, elements unchanged
//	    Day      time.Time `adapter:"date"`     // "25/12/2024"
//	    Password string    `adapter:"ignore"`   // never emitted
//	    Token    string    `adapter:"-"`        // alternative syntax
//	}
//
// Types you do not own can be marked out of band with IgnoreField and
// AssignAdapter; these take precedence over struct tags.
//
// # Adapters
//
// An Adapter converts one field value into a structured value. Adapters are
// registered by name with a factory that is invoked on every use:
//
//	s.RegisterAdapter("upper", func() (serializer.Adapter, error) {
//	    return serializer.AdapterFunc(func(src any) (any, error) {
//	        return strings.ToUpper(src.(string)), nil
//	    }), nil
//	})
//
// The names sequence, date, nullable, rawjson and frequency are registered by
// default.
//
// # Cycles and Depth
//
// Pointers, maps and slices already on the current descent path are reported
// as a KindCycle error instead of being followed. Nesting deeper than
// Options.MaxDepth fails with KindDepth.
//
// # Errors
//
// Serialize returns a *SerializeError describing the failing field path.
// SerializeOrNil keeps the lenient behaviour: the failure is logged and the
// whole result is nil.
//
// # Thread Safety
//
// A Serializer is safe for concurrent use. Adapter registrations are
// copy-on-write and struct metadata is cached per type.
package serializer
