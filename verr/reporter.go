package verr

// Reporter holds at most one live Error at a time (spec §5 "a validator
// handle carries a single live error; setting a new one discards the
// old"), grounded on ajv_clear_error/ajv_set_error's pattern of always
// clearing before a new error is recorded.
type Reporter struct {
	err *Error
}

// Set replaces any current error with e.
func (r *Reporter) Set(e *Error) { r.err = e }

// Clear discards the current error, if any.
func (r *Reporter) Clear() { r.err = nil }

// Err returns the current error, or nil.
func (r *Reporter) Err() *Error { return r.err }

// HasError reports whether an error is currently set.
func (r *Reporter) HasError() bool { return r.err != nil }
