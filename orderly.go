// Package orderly validates a JSON document against a compiled schema as
// the document is parsed, rather than after it has been fully materialized
// (spec §1, §2). It is the public entry point over the event/schema/
// validate packages: compile a schema once with schema.NewCompiler, then
// open a Validator per document with New.
package orderly

import (
	"io"

	"github.com/kaptinlin/go-i18n"

	"github.com/go-orderly/orderly/event"
	"github.com/go-orderly/orderly/schema"
	"github.com/go-orderly/orderly/validate"
	"github.com/go-orderly/orderly/verr"
)

// Option configures a Validator at construction time, the functional-option
// replacement for the C allocator-abstraction parameter ajv_alloc took
// (spec §9 Design Note): New(s, opts...) takes Options in place of an
// allocator parameter.
type Option func(*config)

type config struct {
	frameCap int
}

// WithFrameCapacity preallocates the Validator's container stack to depth
// n, avoiding reallocation when the caller knows the schema nests deeply.
func WithFrameCapacity(n int) Option {
	return func(c *config) { c.frameCap = n }
}

// Validator is a single document's validation run against one compiled
// Schema (spec §5: "a validator handle wraps one compiled schema and
// tracks the state of exactly one in-progress validation"). Not safe for
// concurrent use; the Schema it was built from is.
type Validator struct {
	schema   *schema.Schema
	cursor   *validate.Cursor
	consumed int64
}

// New opens a Validator over s.
func New(s *schema.Schema, opts ...Option) *Validator {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	cur := validate.New(s)
	if cfg.frameCap > 0 {
		cur.Reserve(cfg.frameCap)
	}
	return &Validator{schema: s, cursor: cur}
}

// ParseAndValidate streams r's JSON token by token through the validator
// (spec §2.1's streaming path; grounded on ajv_parse_and_validate). It
// returns the first validation error encountered, or a decode error if r
// did not contain well-formed JSON.
func (v *Validator) ParseAndValidate(r io.Reader) error {
	n, err := event.FromJSON(r, v.cursor.Feed)
	v.consumed = n
	if err != nil {
		if e := v.cursor.Err(); e != nil {
			return e
		}
		return err
	}
	return nil
}

// ParseComplete finalizes a streamed validation after the last
// ParseAndValidate call, catching the case where the input ended before
// the root value ever closed (spec §4.2, the "empty root" promotion
// grounded on ajv_parse_complete).
func (v *Validator) ParseComplete() error {
	return v.cursor.Complete()
}

// Validate checks an in-memory Go value (map[string]any / []any / string /
// float64 / int64 / bool / nil, as produced by unmarshaling into `any`)
// against the schema, equivalent to ajv_validate's whole-document path.
func (v *Validator) Validate(value any) error {
	if err := event.FromValue(value, v.cursor.Feed); err != nil {
		if e := v.cursor.Err(); e != nil {
			return e
		}
		return err
	}
	return v.cursor.Complete()
}

// BytesConsumed reports how many bytes of the most recent
// ParseAndValidate's reader were consumed before validation stopped,
// equivalent to ajv_get_bytes_consumed.
func (v *Validator) BytesConsumed() int64 { return v.consumed }

// Err returns the single live validation error, or nil when the document
// validated (so far) without issue.
func (v *Validator) Err() *verr.Error { return v.cursor.Err() }

// Error renders the current error, non-localized, equivalent to
// ajv_get_error's verbose flag for the path-inclusion behavior.
func (v *Validator) Error(verbose bool) string {
	e := v.cursor.Err()
	if e == nil {
		return ""
	}
	return e.Render(verbose)
}

// Localize renders the current error through an i18n.Localizer (spec §7
// DOMAIN STACK).
func (v *Validator) Localize(localizer *i18n.Localizer) string {
	e := v.cursor.Err()
	if e == nil {
		return ""
	}
	return e.Localize(localizer)
}

// Finished reports whether the document seen so far is a complete, valid
// instance of the schema.
func (v *Validator) Finished() bool { return v.cursor.Finished() }
