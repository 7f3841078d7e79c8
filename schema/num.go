package schema

import (
	"math/big"
	"strconv"
	"strings"
)

// Bound is one side of a Range: either unset, or a number that may have
// arrived as an integer or a double (spec §3 "each either integer or
// double"). It is kept as a *big.Rat so integer and double bounds compare
// exactly against both integer and double instance values, the same
// generalization the teacher's rat.go makes for arbitrary-precision JSON
// numbers.
type Bound struct {
	Set bool
	Rat *big.Rat
}

// NewIntBound builds a Bound from an integer literal.
func NewIntBound(v int64) Bound {
	return Bound{Set: true, Rat: new(big.Rat).SetInt64(v)}
}

// NewFloatBound builds a Bound from a double literal.
func NewFloatBound(v float64) Bound {
	r := new(big.Rat)
	r.SetFloat64(v)
	return Bound{Set: true, Rat: r}
}

// Range is a schema node's {lhs,rhs} constraint (spec §3), applied to
// number value, string length, array length, or object size depending on
// the node's Kind.
type Range struct {
	Lhs, Rhs Bound
}

// Specified reports whether either bound is set.
func (r Range) Specified() bool {
	return r.Lhs.Set || r.Rhs.Set
}

// CheckInt reports whether the integer count/value l satisfies the range.
func (r Range) CheckInt(l int64) bool {
	if !r.Specified() {
		return true
	}
	v := new(big.Rat).SetInt64(l)
	return r.check(v)
}

// CheckRat reports whether the rational value v satisfies the range.
func (r Range) CheckRat(v *big.Rat) bool {
	if !r.Specified() {
		return true
	}
	return r.check(v)
}

func (r Range) check(v *big.Rat) bool {
	if r.Lhs.Set && v.Cmp(r.Lhs.Rat) < 0 {
		return false
	}
	if r.Rhs.Set && v.Cmp(r.Rhs.Rat) > 0 {
		return false
	}
	return true
}

// String renders the range as Orderly's own "{lhs,rhs}" notation, omitting
// whichever endpoint is unbounded (spec §4.3 out_of_range rendering).
func (r Range) String() string {
	var b strings.Builder
	b.WriteByte('{')
	if r.Lhs.Set {
		b.WriteString(FormatRat(r.Lhs.Rat))
	}
	b.WriteByte(',')
	if r.Rhs.Set {
		b.WriteString(FormatRat(r.Rhs.Rat))
	}
	b.WriteByte('}')
	return b.String()
}

// NewRat parses an integer or float literal (as produced by the event
// source or the lexer) into a *big.Rat.
func NewRat(value any) *big.Rat {
	var str string
	switch v := value.(type) {
	case int64:
		str = strconv.FormatInt(v, 10)
	case int:
		str = strconv.Itoa(v)
	case float64:
		str = strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		str = v
	default:
		return nil
	}
	r := new(big.Rat)
	if _, ok := r.SetString(str); !ok {
		return nil
	}
	return r
}

// FormatRat renders a *big.Rat the way a human expects a JSON number to
// look: a plain integer when it is one, otherwise a trimmed decimal.
func FormatRat(r *big.Rat) string {
	if r == nil {
		return ""
	}
	if r.IsInt() {
		return r.Num().String()
	}
	dec := r.FloatString(10)
	dec = strings.TrimRight(dec, "0")
	dec = strings.TrimRight(dec, ".")
	if dec == "" {
		return "0"
	}
	return dec
}
