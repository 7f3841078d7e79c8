package verr

import (
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonpointer"
)

// Error is the single live validation error a Validator carries (spec §5).
// Path is the sequence of object-property-names and array-indices (as
// strings) from the document root to the offending value; Property is the
// local name within the innermost container when one applies.
type Error struct {
	Code      Code
	Path      []string
	Property  string // offending/missing property name, or "" when not applicable
	Expected  string // expected schema.Kind, for TypeMismatch
	Index     int    // 1-based array element position, for TypeMismatch inside a tuple array (0 = not applicable)
	Kind      string // offending schema.Kind name, for OutOfRange
	IsLength  bool   // for OutOfRange: true when Range bounds a length/count rather than a value directly
	Range     string // schema.Range.String(), for OutOfRange
	Container string // "object" or "array", for IncompleteContainer
	Missing   int    // count of missing tuple elements, for IncompleteContainer's array form
	Pattern   string // regex source, for RegexFailed
	Format    string // format name, for InvalidFormat
	Value     string // rendered offending value, for IllegalValue and OutOfRange
}

// Pointer renders Path as an RFC 6901 JSON Pointer (spec §7 "errors should
// be locatable"), grounded on the teacher's use of jsonpointer.Format to
// build pointers from path segments (schema.go's Location field).
func (e *Error) Pointer() string {
	if len(e.Path) == 0 {
		return ""
	}
	return jsonpointer.Format(e.Path...)
}

// Error implements the error interface with the non-localized rendering,
// equivalent to ajv_get_error's verbose=0 concatenation.
func (e *Error) Error() string { return e.Render(false) }

// Render builds the human-readable message for e. When includeLocation is
// true, the JSON Pointer path is appended, the closest analog to
// ajv_get_error's verbose flag (which there pulls in the underlying
// parser's own positional error instead).
func (e *Error) Render(includeLocation bool) string {
	var b strings.Builder

	switch e.Code {
	case OutOfRange:
		// No base clause here: the whole message is the spec's own
		// "<kind>[ length] <value> not in range {lhs,rhs}" form.
		b.WriteString(e.Kind)
		if e.IsLength {
			b.WriteString(" length")
		}
		b.WriteByte(' ')
		b.WriteString(e.Value)
		b.WriteString(" not in range ")
		b.WriteString(e.Range)
	case IncompleteContainer:
		b.WriteString(baseMessage(e.Code))
		if e.Container == "array" {
			b.WriteString(", tuple missing ")
			b.WriteString(strconv.Itoa(e.Missing))
			b.WriteString(" elements")
		} else {
			b.WriteString(", object missing required property '")
			b.WriteString(e.Property)
			b.WriteByte('\'')
		}
	case UnexpectedKey:
		b.WriteString(baseMessage(e.Code))
		b.WriteString(", while additionalProperties forbidden '")
		b.WriteString(e.Property)
		b.WriteByte('\'')
	case TypeMismatch:
		b.WriteString(baseMessage(e.Code))
		switch {
		case e.Index > 0:
			b.WriteString(" for array element ")
			b.WriteString(strconv.Itoa(e.Index))
		case e.Property != "":
			b.WriteString(" for property '")
			b.WriteString(e.Property)
			b.WriteByte('\'')
		}
		b.WriteString(", expected '")
		b.WriteString(e.Expected)
		b.WriteByte('\'')
	case RegexFailed:
		b.WriteString(baseMessage(e.Code))
		b.WriteString(" /")
		b.WriteString(e.Pattern)
		b.WriteByte('/')
	case InvalidFormat:
		b.WriteString(baseMessage(e.Code))
		b.WriteString(" '")
		b.WriteString(e.Format)
		b.WriteByte('\'')
	case IllegalValue:
		b.WriteString(baseMessage(e.Code))
		if e.Value != "" {
			b.WriteString(" '")
			b.WriteString(e.Value)
			b.WriteByte('\'')
		}
	default:
		b.WriteString(baseMessage(e.Code))
	}
	b.WriteByte('.')

	if includeLocation {
		if p := e.Pointer(); p != "" {
			b.WriteString(" at ")
			b.WriteString(p)
		}
	}
	return b.String()
}

// vars builds the {key: value} substitution map Localize hands to the
// i18n bundle (spec §7 DOMAIN STACK: localized error rendering).
func (e *Error) vars() map[string]any {
	return map[string]any{
		"property":  e.Property,
		"expected":  e.Expected,
		"index":     e.Index,
		"kind":      e.Kind,
		"range":     e.Range,
		"container": e.Container,
		"missing":   e.Missing,
		"pattern":   e.Pattern,
		"format":    e.Format,
		"value":     e.Value,
		"pointer":   e.Pointer(),
	}
}
