package schema

import (
	"math/big"
	"reflect"
)

// Admits reports whether a leaf value of kind valueKind may appear where a
// node of kind nodeKind is expected (spec §4.2, leaf handler step 1).
//
//	an integer value is admissible where an integer or number is expected;
//	a double is admissible only where number is expected.
func Admits(nodeKind, valueKind Kind) bool {
	if nodeKind == KindAny {
		return true
	}
	if nodeKind == valueKind {
		return true
	}
	if nodeKind == KindNumber && valueKind == KindInteger {
		return true
	}
	return false
}

// EvaluateEnum reports whether value matches one of n's enum_values
// (spec §4.2 leaf handler step 2/3). Grounded on the teacher's enum.go,
// generalized to any leaf kind rather than only object-evaluation values.
func EvaluateEnum(n *Node, value any) bool {
	if !n.HasEnum {
		return true
	}
	for _, want := range n.EnumValues {
		if enumEqual(want, value) {
			return true
		}
	}
	return false
}

// enumEqual compares enum literals and instance values irrespective of
// whether a number arrived as int64 or float64/*big.Rat, since the schema
// literal and the wire value rarely share a concrete Go type even when
// they denote the same number.
func enumEqual(want, got any) bool {
	wr, wok := toRat(want)
	gr, gok := toRat(got)
	if wok && gok {
		return wr.Cmp(gr) == 0
	}
	return reflect.DeepEqual(want, got)
}

func toRat(v any) (*big.Rat, bool) {
	switch v.(type) {
	case int64, int, float64:
		r := NewRat(v)
		return r, r != nil
	default:
		return nil, false
	}
}
