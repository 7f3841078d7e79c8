package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLeaf(t *testing.T) {
	n, err := Parse("string;")
	require.NoError(t, err)
	assert.Equal(t, String, n.Kind)
	assert.False(t, n.Optional)
}

func TestParseObjectWithMembers(t *testing.T) {
	n, err := Parse(`{
		string name;
		optional integer age;
	};`)
	require.NoError(t, err)
	assert.Equal(t, Object, n.Kind)
	assert.Equal(t, Forbidden, n.AdditionalProperties)
	require.Len(t, n.Children, 2)

	assert.Equal(t, "name", n.Children[0].Name)
	assert.Equal(t, String, n.Children[0].Kind)
	assert.False(t, n.Children[0].Optional)

	assert.Equal(t, "age", n.Children[1].Name)
	assert.Equal(t, Integer, n.Children[1].Kind)
	assert.True(t, n.Children[1].Optional)
}

func TestParseObjectExtra(t *testing.T) {
	n, err := Parse(`{ string name; extra; };`)
	require.NoError(t, err)
	assert.Equal(t, AnyKind, n.AdditionalProperties)
	require.Len(t, n.Children, 1)
}

func TestParseUniformArray(t *testing.T) {
	n, err := Parse(`[ integer; ];`)
	require.NoError(t, err)
	assert.Equal(t, Array, n.Kind)
	assert.False(t, n.TupleTyped)
	require.Len(t, n.Children, 1)
}

func TestParseTupleArray(t *testing.T) {
	n, err := Parse(`[ string; integer; ];`)
	require.NoError(t, err)
	assert.True(t, n.TupleTyped)
	require.Len(t, n.Children, 2)
}

func TestParseTupleArrayExtra(t *testing.T) {
	n, err := Parse(`[ string; extra; ];`)
	require.NoError(t, err)
	assert.True(t, n.TupleTyped)
	assert.Equal(t, AnyKind, n.AdditionalProperties)
}

func TestParseUnion(t *testing.T) {
	n, err := Parse(`< string; integer; >;`)
	require.NoError(t, err)
	assert.Equal(t, Union, n.Kind)
	require.Len(t, n.Children, 2)
	assert.Equal(t, String, n.Children[0].Kind)
	assert.Equal(t, Integer, n.Children[1].Kind)
}

func TestParseRange(t *testing.T) {
	n, err := Parse("integer{1,10};")
	require.NoError(t, err)
	require.True(t, n.HasRange)
	assert.True(t, n.Range.Lhs.Set)
	assert.EqualValues(t, 1, n.Range.Lhs.I)
	assert.True(t, n.Range.Rhs.Set)
	assert.EqualValues(t, 10, n.Range.Rhs.I)
}

func TestParseOpenEndedRange(t *testing.T) {
	n, err := Parse("integer{,10};")
	require.NoError(t, err)
	assert.False(t, n.Range.Lhs.Set)
	assert.True(t, n.Range.Rhs.Set)
}

func TestParseRegexModifier(t *testing.T) {
	n, err := Parse(`string/^[a-z]+$/;`)
	require.NoError(t, err)
	assert.True(t, n.HasRegex)
	assert.Equal(t, "^[a-z]+$", n.Regex)
}

func TestParseEnumModifier(t *testing.T) {
	n, err := Parse(`string#"a","b","c"#;`)
	require.NoError(t, err)
	require.True(t, n.HasEnum)
	assert.Equal(t, []any{"a", "b", "c"}, n.Enum)
}

func TestParseDefaultModifier(t *testing.T) {
	n, err := Parse(`integer=42;`)
	require.NoError(t, err)
	require.True(t, n.HasDefault)
	assert.EqualValues(t, 42, n.Default)
}

func TestParseDefaultObjectLiteral(t *testing.T) {
	n, err := Parse(`{ string name; }={"name"="bob"};`)
	require.NoError(t, err)
	require.True(t, n.HasDefault)
	assert.Equal(t, map[string]any{"name": "bob"}, n.Default)
}

func TestParseFormatModifier(t *testing.T) {
	n, err := Parse(`string format "email";`)
	require.NoError(t, err)
	assert.True(t, n.HasFormat)
	assert.Equal(t, "email", n.Format)
}

func TestParseNestedObject(t *testing.T) {
	n, err := Parse(`{
		{ string street; } address;
		[ string; ] tags;
	};`)
	require.NoError(t, err)
	require.Len(t, n.Children, 2)
	assert.Equal(t, "address", n.Children[0].Name)
	assert.Equal(t, Object, n.Children[0].Kind)
	assert.Equal(t, "tags", n.Children[1].Name)
	assert.Equal(t, Array, n.Children[1].Kind)
}

func TestParseTrailingInputError(t *testing.T) {
	_, err := Parse("string; integer;")
	require.Error(t, err)
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestParseUnknownKindError(t *testing.T) {
	_, err := Parse("wat;")
	require.Error(t, err)
}

func TestParseMissingSemicolonError(t *testing.T) {
	_, err := Parse("string")
	require.Error(t, err)
}
