// Credit to https://github.com/santhosh-tekuri/jsonschema for the format
// validator shapes this registry is grounded on.
package schema

import (
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/oarkflow/date"
	"golang.org/x/text/unicode/norm"
)

// FormatFunc reports whether a string value satisfies a named format.
type FormatFunc func(string) bool

// Formats is the registry of built-in named format predicates, the
// supplement to spec §7's `invalid_format` taxonomy entry (the base
// Orderly grammar in spec §6 doesn't spell out format names, but the error
// taxonomy requires them, so this module carries a small built-in set
// plus room for callers to register more via Compiler.RegisterFormat).
var Formats = map[string]FormatFunc{
	"email":     isEmail,
	"hostname":  isHostname,
	"uri":       isURI,
	"ipv4":      isIPv4,
	"ipv6":      isIPv6,
	"uuid":      isUUID,
	"date":      isDate,
	"date-time": isDateTime,
}

func isEmail(v string) bool {
	_, err := mail.ParseAddress(v)
	return err == nil
}

// isHostname normalizes to NFC before matching so that visually identical
// hostnames using different Unicode compositions are judged the same way,
// generalizing the teacher's plain-ASCII length/regex check in formats.go.
func isHostname(v string) bool {
	if v == "" || len(v) > 253 {
		return false
	}
	n := norm.NFC.String(v)
	matched, err := regexp.MatchString(`^(?:(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}|localhost)$`, n)
	return err == nil && matched
}

func isURI(v string) bool {
	u, err := url.Parse(v)
	return err == nil && u.Scheme != ""
}

func isIPv4(v string) bool {
	ip := net.ParseIP(v)
	return ip != nil && !strings.Contains(v, ":")
}

func isIPv6(v string) bool {
	ip := net.ParseIP(v)
	return ip != nil && strings.Contains(v, ":")
}

var uuidRe = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

func isUUID(v string) bool {
	return uuidRe.MatchString(v)
}

// isDate accepts the looser set of layouts github.com/oarkflow/date
// tolerates (spec §4, DOMAIN STACK), not just time.Parse's single layout.
func isDate(v string) bool {
	_, err := date.Parse(v)
	return err == nil
}

func isDateTime(v string) bool {
	if _, err := time.Parse(time.RFC3339, v); err == nil {
		return true
	}
	_, err := date.Parse(v)
	return err == nil
}

// EvaluateFormat runs the named format predicate for n against value,
// preferring a compiler-registered custom format over the built-in
// registry (spec §4.2 leaf handler step 2-4 generalization: format is
// checked the same place enum/range/regex are).
func EvaluateFormat(custom map[string]FormatFunc, n *Node, value string) bool {
	if !n.HasFormat {
		return true
	}
	if fn, ok := custom[n.FormatName]; ok {
		return fn(value)
	}
	if fn, ok := Formats[n.FormatName]; ok {
		return fn(value)
	}
	// Unknown format name: treated as passing, matching the teacher's
	// "ignore unknown formats" default (format.go's evaluateFormat, the
	// AssertFormat=false branch) rather than a compile-time error.
	return true
}
