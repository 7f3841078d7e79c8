package orderly

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-orderly/orderly/schema"
	"github.com/go-orderly/orderly/verr"
)

func mustCompile(t *testing.T, src string) *schema.Schema {
	t.Helper()
	s, err := schema.NewCompiler().CompileSource(src)
	require.NoError(t, err)
	return s
}

// Scenario 1: basic object match.
func TestScenarioBasicObjectMatch(t *testing.T) {
	s := mustCompile(t, `{ string name; integer age; };`)
	v := New(s)
	err := v.ParseAndValidate(strings.NewReader(`{"name":"a","age":7}`))
	require.NoError(t, err)
	require.NoError(t, v.ParseComplete())
	assert.True(t, v.Finished())
}

// Scenario 2: missing required member with a default is synthesized.
func TestScenarioMissingRequiredWithDefault(t *testing.T) {
	s := mustCompile(t, `{ string name; integer n=5; };`)
	v := New(s)
	err := v.ParseAndValidate(strings.NewReader(`{"name":"a"}`))
	require.NoError(t, err)
	require.NoError(t, v.ParseComplete())
	assert.True(t, v.Finished())
}

// Scenario 3: out-of-range integer.
func TestScenarioOutOfRangeInteger(t *testing.T) {
	s := mustCompile(t, `integer{0,10};`)
	v := New(s)
	err := v.ParseAndValidate(strings.NewReader(`42`))
	require.Error(t, err)
	ve, ok := err.(*verr.Error)
	require.True(t, ok)
	assert.Equal(t, verr.OutOfRange, ve.Code)
	assert.Equal(t, "integer 42 not in range {0,10}.", ve.Render(false))
}

// Scenario 4: unexpected property with additionalProperties forbidden.
func TestScenarioUnexpectedProperty(t *testing.T) {
	s := mustCompile(t, `{ string name; };`)
	v := New(s)
	err := v.ParseAndValidate(strings.NewReader(`{"name":"a","x":1}`))
	require.Error(t, err)
	ve := err.(*verr.Error)
	assert.Equal(t, verr.UnexpectedKey, ve.Code)
	assert.Contains(t, ve.Render(false), "while additionalProperties forbidden 'x'")
	assert.Equal(t, "x", ve.Property)
}

// Scenario 5: tuple array too short.
func TestScenarioTupleArrayShort(t *testing.T) {
	s := mustCompile(t, `[ string; integer; ];`)
	v := New(s)
	err := v.ParseAndValidate(strings.NewReader(`["a"]`))
	if err == nil {
		err = v.ParseComplete()
	}
	require.Error(t, err)
	ve := err.(*verr.Error)
	assert.Equal(t, verr.IncompleteContainer, ve.Code)
	assert.Equal(t, "incomplete structure, tuple missing 1 elements.", ve.Render(false))
}

// Scenario 6: union branch selection.
func TestScenarioUnionBranch(t *testing.T) {
	s := mustCompile(t, `<string; integer;>;`)

	v1 := New(s)
	require.NoError(t, v1.ParseAndValidate(strings.NewReader(`"a"`)))
	require.NoError(t, v1.ParseComplete())

	v2 := New(s)
	require.NoError(t, v2.ParseAndValidate(strings.NewReader(`3`)))
	require.NoError(t, v2.ParseComplete())

	v3 := New(s)
	err := v3.ParseAndValidate(strings.NewReader(`true`))
	require.Error(t, err)
	assert.Equal(t, verr.TypeMismatch, err.(*verr.Error).Code)
}

func TestValidatorValidateInMemoryValue(t *testing.T) {
	s := mustCompile(t, `{ string name; };`)
	v := New(s)
	err := v.Validate(map[string]any{"name": "bob"})
	assert.NoError(t, err)
}

func TestValidatorValidateInMemoryValueRejects(t *testing.T) {
	s := mustCompile(t, `{ string name; };`)
	v := New(s)
	err := v.Validate(map[string]any{"name": 5})
	require.Error(t, err)
	assert.Equal(t, verr.TypeMismatch, v.Err().Code)
}

func TestValidatorBytesConsumed(t *testing.T) {
	s := mustCompile(t, `integer;`)
	v := New(s)
	require.NoError(t, v.ParseAndValidate(strings.NewReader(`42`)))
	assert.Greater(t, v.BytesConsumed(), int64(0))
}

func TestValidatorErrorAndErrorRenderMatch(t *testing.T) {
	s := mustCompile(t, `integer;`)
	v := New(s)
	err := v.ParseAndValidate(strings.NewReader(`"x"`))
	require.Error(t, err)
	assert.Equal(t, v.Err().Render(false), v.Error(false))
}

func TestValidatorErrorEmptyWhenNoError(t *testing.T) {
	s := mustCompile(t, `integer;`)
	v := New(s)
	require.NoError(t, v.ParseAndValidate(strings.NewReader(`1`)))
	assert.Equal(t, "", v.Error(false))
	assert.Nil(t, v.Err())
}

func TestValidatorLocalizeNoErrorReturnsEmpty(t *testing.T) {
	s := mustCompile(t, `integer;`)
	v := New(s)
	require.NoError(t, v.ParseAndValidate(strings.NewReader(`1`)))
	assert.Equal(t, "", v.Localize(nil))
}

func TestValidatorLocalizeFallsBackWithoutLocalizer(t *testing.T) {
	s := mustCompile(t, `integer;`)
	v := New(s)
	err := v.ParseAndValidate(strings.NewReader(`"x"`))
	require.Error(t, err)
	assert.Equal(t, v.Err().Error(), v.Localize(nil))
}

func TestWithFrameCapacityOptionDoesNotBreakValidation(t *testing.T) {
	s := mustCompile(t, `{ [ { string name; }; ] users; };`)
	v := New(s, WithFrameCapacity(4))
	err := v.ParseAndValidate(strings.NewReader(`{"users":[{"name":"a"},{"name":"b"}]}`))
	require.NoError(t, err)
	require.NoError(t, v.ParseComplete())
}

func TestParseCompleteCatchesEmptyInput(t *testing.T) {
	s := mustCompile(t, `integer;`)
	v := New(s)
	require.NoError(t, v.ParseAndValidate(strings.NewReader(``)))
	err := v.ParseComplete()
	require.Error(t, err)
	assert.Equal(t, verr.IncompleteContainer, err.(*verr.Error).Code)
}
