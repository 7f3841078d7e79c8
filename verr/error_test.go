package verr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorPointer(t *testing.T) {
	e := &Error{Path: []string{"user", "0", "name"}}
	assert.Equal(t, "/user/0/name", e.Pointer())
}

func TestErrorPointerEmptyPath(t *testing.T) {
	e := &Error{}
	assert.Equal(t, "", e.Pointer())
}

func TestErrorRenderTypeMismatch(t *testing.T) {
	e := &Error{Code: TypeMismatch, Property: "age", Expected: "integer"}
	assert.Equal(t, "schema does not allow type for property 'age', expected 'integer'.", e.Render(false))
}

func TestErrorRenderTypeMismatchRoot(t *testing.T) {
	e := &Error{Code: TypeMismatch, Expected: "object"}
	assert.Equal(t, "schema does not allow type, expected 'object'.", e.Render(false))
}

func TestErrorRenderTypeMismatchArrayElement(t *testing.T) {
	e := &Error{Code: TypeMismatch, Index: 2, Expected: "string"}
	assert.Equal(t, "schema does not allow type for array element 2, expected 'string'.", e.Render(false))
}

func TestErrorRenderOutOfRange(t *testing.T) {
	e := &Error{Code: OutOfRange, Kind: "integer", Value: "42", Range: "{0,10}"}
	assert.Equal(t, "integer 42 not in range {0,10}.", e.Render(false))
}

func TestErrorRenderOutOfRangeLength(t *testing.T) {
	e := &Error{Code: OutOfRange, Kind: "string", IsLength: true, Value: "1", Range: "{2,5}"}
	assert.Equal(t, "string length 1 not in range {2,5}.", e.Render(false))
}

func TestErrorRenderIncompleteContainer(t *testing.T) {
	e := &Error{Code: IncompleteContainer, Property: "name"}
	assert.Equal(t, "incomplete structure, object missing required property 'name'.", e.Render(false))
}

func TestErrorRenderIncompleteContainerTuple(t *testing.T) {
	e := &Error{Code: IncompleteContainer, Container: "array", Missing: 1}
	assert.Equal(t, "incomplete structure, tuple missing 1 elements.", e.Render(false))
}

func TestErrorRenderUnexpectedKey(t *testing.T) {
	e := &Error{Code: UnexpectedKey, Property: "extra"}
	assert.Equal(t, "encountered unknown property, while additionalProperties forbidden 'extra'.", e.Render(false))
}

func TestErrorRenderRegexFailed(t *testing.T) {
	e := &Error{Code: RegexFailed, Pattern: "^[a-z]+$"}
	assert.Equal(t, "string did not match regular expression /^[a-z]+$/.", e.Render(false))
}

func TestErrorRenderInvalidFormat(t *testing.T) {
	e := &Error{Code: InvalidFormat, Format: "email"}
	assert.Equal(t, "string did not match format 'email'.", e.Render(false))
}

func TestErrorRenderIllegalValue(t *testing.T) {
	e := &Error{Code: IllegalValue, Value: "red"}
	assert.Equal(t, "value not permitted 'red'.", e.Render(false))
}

func TestErrorRenderTrailingInput(t *testing.T) {
	e := &Error{Code: TrailingInput}
	assert.Equal(t, "input continued after validation completed.", e.Render(false))
}

func TestErrorRenderWithLocation(t *testing.T) {
	e := &Error{Code: OutOfRange, Kind: "integer", Value: "11", Range: "{1,10}", Path: []string{"items", "2"}}
	assert.Equal(t, "integer 11 not in range {1,10}. at /items/2", e.Render(true))
}

func TestErrorImplementsErrorInterface(t *testing.T) {
	var err error = &Error{Code: TrailingInput}
	assert.Equal(t, "input continued after validation completed.", err.Error())
}
