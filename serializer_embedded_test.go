package serializer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type BaseEntity struct {
	ID      int
	Created string
}

type AuditInfo struct {
	CreatedBy string
	Note      string `adapter:"ignore"`
}

type Document struct {
	BaseEntity
	*AuditInfo
	Title string
}

func TestEmbedded_FlattenedInDeclarationOrder(t *testing.T) {
	d := Document{
		BaseEntity: BaseEntity{ID: 1, Created: "2024-01-01"},
		AuditInfo:  &AuditInfo{CreatedBy: "admin", Note: "private"},
		Title:      "Spec",
	}
	out, err := SerializeMapping(New(), d)
	require.NoError(t, err)

	assert.Equal(t, []string{"ID", "Created", "CreatedBy", "Title"}, out.Keys())
	assert.Equal(t, "admin", out.ToMap()["CreatedBy"])
}

func TestEmbedded_NilPointerFieldsOmitted(t *testing.T) {
	out, err := SerializeMapping(New(), Document{BaseEntity: BaseEntity{ID: 2}, Title: "T"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "Created", "Title"}, out.Keys())
}

type Shadowing struct {
	BaseEntity
	ID string // shallower, wins over BaseEntity.ID
}

func TestEmbedded_ShallowerFieldWins(t *testing.T) {
	out, err := SerializeMapping(New(), Shadowing{BaseEntity: BaseEntity{ID: 9, Created: "c"}, ID: "outer"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Created", "ID"}, out.Keys())
	assert.Equal(t, "outer", out.ToMap()["ID"])
}

type left struct{ Name string }
type right struct{ Name string }

type Ambiguous struct {
	left
	right
	Kept int
}

func TestEmbedded_AmbiguousFieldsDropped(t *testing.T) {
	out, err := SerializeMapping(New(), Ambiguous{left: left{Name: "l"}, right: right{Name: "r"}, Kept: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Kept"}, out.Keys())
}

type unexportedBase struct {
	Visible string
	hidden  string
}

type UsesUnexportedBase struct {
	unexportedBase
	Own int
}

func TestEmbedded_UnexportedStructPromotesExportedFields(t *testing.T) {
	out, err := SerializeMapping(New(), UsesUnexportedBase{unexportedBase: unexportedBase{Visible: "v", hidden: "h"}, Own: 3})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"Visible": "v", "Own": 3}, out.ToMap())
}

type IgnoredEmbed struct {
	BaseEntity `adapter:"ignore"`
	Name       string
}

func TestEmbedded_IgnoreWholeEmbeddedStruct(t *testing.T) {
	out, err := SerializeMapping(New(), IgnoredEmbed{BaseEntity: BaseEntity{ID: 1}, Name: "n"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Name"}, out.Keys())
}

type SelfEmbed struct {
	*SelfEmbed
	Value int
}

func TestEmbedded_RecursiveEmbeddingTerminates(t *testing.T) {
	out, err := SerializeMapping(New(), SelfEmbed{Value: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Value"}, out.Keys())
}

// Out-of-band markers for types that cannot be tagged.
type ThirdPartyUser struct {
	Login    string
	Password string
	Roles    []string
}

func TestMarkers_IgnoreAndAssign(t *testing.T) {
	s := New()
	s.IgnoreField(&ThirdPartyUser{}, "Password")
	s.AssignAdapter(ThirdPartyUser{}, "Roles", AdapterSequence)

	out, err := SerializeMapping(s, ThirdPartyUser{Login: "root", Password: "pw", Roles: []string{"admin", "ops"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Login", "Roles"}, out.Keys())
	roles, _ := out.Get("Roles")
	assert.Equal(t, []any{"admin", "ops"}, roles)
}

func TestMarkers_OverrideTags(t *testing.T) {
	s := New()
	s.AssignAdapter(Contact{}, "Password", "masked")
	s.RegisterAdapter("masked", Stateless(AdapterFunc(func(any) (any, error) { return "***", nil })))

	out, err := SerializeMapping(s, Contact{Name: "n", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Email", "Password"}, out.Keys())
	assert.Equal(t, "***", out.ToMap()["Password"])
}

type VendorRecord struct {
	Serial string
	Secret string
}

type Asset struct {
	VendorRecord
	Location string
}

func TestMarkers_ApplyToPromotedFields(t *testing.T) {
	s := New()
	s.IgnoreField(VendorRecord{}, "Secret")

	out, err := SerializeMapping(s, Asset{VendorRecord: VendorRecord{Serial: "A1", Secret: "k"}, Location: "rack 4"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Serial", "Location"}, out.Keys())

	direct, err := SerializeMapping(s, VendorRecord{Serial: "A1", Secret: "k"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Serial"}, direct.Keys())
}

func TestMarkers_OuterTypeWinsOverEmbedded(t *testing.T) {
	s := New()
	s.RegisterAdapter("upper", Stateless(MapString(strings.ToUpper)))
	s.IgnoreField(VendorRecord{}, "Serial")
	s.AssignAdapter(Asset{}, "Serial", "upper")

	out, err := SerializeMapping(s, Asset{VendorRecord: VendorRecord{Serial: "a1"}})
	require.NoError(t, err)
	assert.Equal(t, "A1", out.ToMap()["Serial"])
}

func TestMarkers_UnknownFieldIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := NewWithOptions(WithLogger(zap.New(core)))

	s.IgnoreField(Asset{}, "Secret") // promoted, known
	s.IgnoreField(Asset{}, "Missing")
	s.AssignAdapter(42, "X", AdapterDate)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "field marker names an unknown field", entries[0].Message)
	assert.Equal(t, "Missing", entries[0].ContextMap()["field"])
	assert.Equal(t, "field marker owner is not a struct", entries[1].Message)

	out, err := SerializeMapping(s, Asset{VendorRecord: VendorRecord{Serial: "A1", Secret: "k"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Serial", "Location"}, out.Keys())
}

func TestBuilder_UnknownMarkerFieldIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := NewBuilder().
		WithOptions(WithLogger(zap.New(core))).
		IgnoreField(VendorRecord{}, "Nope").
		Build()

	require.Equal(t, 1, logs.Len())
	out, err := SerializeMapping(s, VendorRecord{Serial: "A1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Serial", "Secret"}, out.Keys())
}
