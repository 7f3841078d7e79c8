// Package verr implements Orderly's validation error taxonomy and
// rendering (spec §7), grounded on ajv_state.c's ajv_error_to_string /
// ajv_get_error pair: a short base clause per error code, optionally
// extended with the offending property name, expected kind, or range.
package verr

// Code enumerates the validation error taxonomy (spec §7). Exactly one of
// these, plus context, describes the single live error a Validator holds
// at a time (spec §5).
type Code int

const (
	TypeMismatch Code = iota
	OutOfRange
	IncompleteContainer
	UnexpectedKey
	IllegalValue
	RegexFailed
	InvalidFormat
	TrailingInput
)

func (c Code) String() string {
	switch c {
	case TypeMismatch:
		return "type_mismatch"
	case OutOfRange:
		return "out_of_range"
	case IncompleteContainer:
		return "incomplete_container"
	case UnexpectedKey:
		return "unexpected_key"
	case IllegalValue:
		return "illegal_value"
	case RegexFailed:
		return "regex_failed"
	case InvalidFormat:
		return "invalid_format"
	case TrailingInput:
		return "trailing_input"
	default:
		return "unknown_error"
	}
}

// baseMessage is the non-localized base clause per code, the fallback used
// when no i18n.Localizer is supplied (mirrors ajv_error_to_string's table).
func baseMessage(c Code) string {
	switch c {
	case TypeMismatch:
		return "schema does not allow type"
	case OutOfRange:
		return "value out of range"
	case IncompleteContainer:
		return "incomplete structure"
	case UnexpectedKey:
		return "encountered unknown property"
	case IllegalValue:
		return "value not permitted"
	case RegexFailed:
		return "string did not match regular expression"
	case InvalidFormat:
		return "string did not match format"
	case TrailingInput:
		return "input continued after validation completed"
	default:
		return "internal error: unrecognized error code"
	}
}
