package schema

import "github.com/go-orderly/orderly/lang"

// This file is the fluent Go construction API for Orderly schemas, an
// alternative entry point to lang.Parse for callers who would rather build
// a schema as Go values than write schema text (spec §6 names the surface
// syntax; nothing in the spec forbids constructing the same AST directly,
// and the teacher's own constructor.go/keywords.go establish the pattern
// this generalizes: chainable option functions over a builder value that
// ultimately produces the structure the compiler walks).
//
// Every builder here returns a *lang.Node so Compiler.Compile(...) is the
// single path from AST to arena regardless of how the AST was produced.

// Option mutates a *lang.Node while it is being built. Grounded on the
// teacher's Keyword func type (keywords.go), generalized from per-JSON-
// Schema-keyword closures to per-Orderly-modifier closures.
type Option func(*lang.Node)

func build(kind lang.Kind, opts []Option) *lang.Node {
	n := &lang.Node{Kind: kind}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Object builds an object node out of named members (spec §3 object kind).
// Each member must have been given a name via Named, or building panics —
// matching the teacher's constructor.go convention of failing fast on a
// malformed builder call rather than silently dropping the member.
func Object(members ...*lang.Node) *lang.Node {
	n := &lang.Node{Kind: lang.Object, AdditionalProperties: lang.Forbidden}
	for _, m := range members {
		if m.Name == "" {
			panic("schema: Object() member has no name; wrap it in Named(...)")
		}
		n.Children = append(n.Children, m)
	}
	return n
}

// ObjectExtra is Object, but unnamed keys are admitted as "any" rather than
// rejected (spec §3 additional_properties = any_kind).
func ObjectExtra(members ...*lang.Node) *lang.Node {
	n := Object(members...)
	n.AdditionalProperties = lang.AnyKind
	return n
}

// Named attaches a member name to a node built by one of the leaf/composite
// constructors, for use as an Object(...) argument.
func Named(name string, n *lang.Node) *lang.Node {
	n.Name = name
	return n
}

// Array builds a uniform array node: every element must satisfy elem
// (spec §3 array kind, non-tuple form).
func Array(elem *lang.Node) *lang.Node {
	return &lang.Node{Kind: lang.Array, AdditionalProperties: lang.Forbidden, TupleTyped: false, Children: []*lang.Node{elem}}
}

// Tuple builds a positional array node: element i must satisfy elems[i]
// (spec §3 array kind, tuple form).
func Tuple(elems ...*lang.Node) *lang.Node {
	return &lang.Node{Kind: lang.Array, AdditionalProperties: lang.Forbidden, TupleTyped: true, Children: elems}
}

// TupleExtra is Tuple, but elements past len(elems) are admitted as "any"
// rather than rejected.
func TupleExtra(elems ...*lang.Node) *lang.Node {
	n := Tuple(elems...)
	n.AdditionalProperties = lang.AnyKind
	return n
}

// Union builds a union node: a value matches if any alternative's top-level
// kind admits it, tried in declaration order (spec §4.2 "common preamble").
func Union(alts ...*lang.Node) *lang.Node {
	return &lang.Node{Kind: lang.Union, Children: alts}
}

// String builds a string leaf node with the given Options applied.
func String(opts ...Option) *lang.Node { return build(lang.String, opts) }

// Integer builds an integer leaf node.
func Integer(opts ...Option) *lang.Node { return build(lang.Integer, opts) }

// Number builds a number (integer-or-double) leaf node.
func Number(opts ...Option) *lang.Node { return build(lang.Number, opts) }

// Boolean builds a boolean leaf node.
func Boolean(opts ...Option) *lang.Node { return build(lang.Boolean, opts) }

// Null builds a null leaf node.
func Null(opts ...Option) *lang.Node { return build(lang.Null, opts) }

// Any builds a node that admits any value.
func Any() *lang.Node { return &lang.Node{Kind: lang.Any} }

// Optional marks a member optional (spec §3: absence of an optional member
// is not an incomplete_container error).
func Optional() Option {
	return func(n *lang.Node) { n.Optional = true }
}

// WithRange constrains a numeric value, string length, array length, or
// object size to [lhs,rhs] (either bound may be omitted by passing nil).
func WithRange(lhs, rhs *float64) Option {
	return func(n *lang.Node) {
		n.HasRange = true
		if lhs != nil {
			n.Range.Lhs = boundFromFloat(*lhs)
		}
		if rhs != nil {
			n.Range.Rhs = boundFromFloat(*rhs)
		}
	}
}

// WithIntRange is WithRange for integer-valued bounds, avoiding float64
// precision loss for large bounds.
func WithIntRange(lhs, rhs *int64) Option {
	return func(n *lang.Node) {
		n.HasRange = true
		if lhs != nil {
			n.Range.Lhs = lang.Bound{Set: true, IsInt: true, I: *lhs}
		}
		if rhs != nil {
			n.Range.Rhs = lang.Bound{Set: true, IsInt: true, I: *rhs}
		}
	}
}

func boundFromFloat(f float64) lang.Bound {
	return lang.Bound{Set: true, F: f}
}

// WithRegex constrains a string value to match pattern.
func WithRegex(pattern string) Option {
	return func(n *lang.Node) {
		n.HasRegex = true
		n.Regex = pattern
	}
}

// WithEnum constrains a leaf value to one of values.
func WithEnum(values ...any) Option {
	return func(n *lang.Node) {
		n.HasEnum = true
		n.Enum = values
	}
}

// WithDefault supplies a default value to synthesize when a non-optional
// member is absent (spec §4.2 end_object step 3); an absent optional member
// is left absent.
func WithDefault(value any) Option {
	return func(n *lang.Node) {
		n.HasDefault = true
		n.Default = value
	}
}

// WithFormat constrains a string value to satisfy a named format predicate.
func WithFormat(name string) Option {
	return func(n *lang.Node) {
		n.HasFormat = true
		n.Format = name
	}
}
