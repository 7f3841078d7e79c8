package schema

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-orderly/orderly/lang"
)

// Schema is an immutable, compiled Orderly schema tree (spec §3). Safe to
// share read-only across any number of goroutines and Validators once
// Compile returns (spec §5).
type Schema struct {
	arena         *Arena
	Root          Idx
	customFormats map[string]FormatFunc
}

// Arena exposes the compiled node arena for package validate to walk.
func (s *Schema) Arena() *Arena { return s.arena }

// Node is a convenience accessor equivalent to s.Arena().Node(i).
func (s *Schema) Node(i Idx) *Node { return s.arena.Node(i) }

var (
	// ErrEmptySchema is returned when Compile is given a schema with no root member.
	ErrEmptySchema = errors.New("schema: empty schema")
	// ErrInvalidRange is returned when a range's bounds are inverted (lhs > rhs).
	ErrInvalidRange = errors.New("schema: invalid range bounds")
)

// CompileError wraps a *lang.ParseError or a structural error discovered
// while compiling the AST into an arena, with the offending node's
// position when known.
type CompileError struct {
	Pos lang.Pos
	Err error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Col, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// Compiler compiles Orderly schema text (or a fluent schema/constructor.go
// AST) into an immutable arena, and owns the registries (custom formats)
// that affect how compiled nodes are later validated against. Grounded on
// the teacher's Compiler (compiler.go), trimmed of the $ref/anchor/media-
// type machinery that has no Orderly analog (Non-goal: resolving external
// schema references).
type Compiler struct {
	customFormatsMu sync.RWMutex
	customFormats   map[string]FormatFunc
}

// NewCompiler returns a ready-to-use Compiler, matching the teacher's
// NewCompiler() constructor style (no caller-supplied allocator needed;
// see SPEC_FULL.md §7 on the allocator-abstraction mapping).
func NewCompiler() *Compiler {
	return &Compiler{customFormats: make(map[string]FormatFunc)}
}

// RegisterFormat adds or overrides a named format predicate.
func (c *Compiler) RegisterFormat(name string, fn FormatFunc) {
	c.customFormatsMu.Lock()
	defer c.customFormatsMu.Unlock()
	c.customFormats[name] = fn
}

// customFormatsSnapshot returns a private copy of the compiler's custom format
// registry for a compiled Schema to carry forward.
func (c *Compiler) customFormatsSnapshot() map[string]FormatFunc {
	c.customFormatsMu.RLock()
	defer c.customFormatsMu.RUnlock()
	out := make(map[string]FormatFunc, len(c.customFormats))
	for k, v := range c.customFormats {
		out[k] = v
	}
	return out
}

// Formats returns the compiler-registered custom formats the schema carries.
// The built-in Formats are not included; EvaluateFormat consults this map
// first and falls back to them.
func (s *Schema) Formats() map[string]FormatFunc { return s.customFormats }

// CompileSource lexes and parses Orderly schema text, then compiles it.
func (c *Compiler) CompileSource(src string) (*Schema, error) {
	ast, err := lang.Parse(src)
	if err != nil {
		return nil, err
	}
	return c.Compile(ast)
}

// Compile turns a parsed (or fluently constructed) AST into an immutable
// arena-backed Schema (spec §3/§9 Design Note 1).
func (c *Compiler) Compile(root *lang.Node) (*Schema, error) {
	if root == nil {
		return nil, ErrEmptySchema
	}
	a := &Arena{}
	rootIdx, err := compileNode(a, root, NoIdx)
	if err != nil {
		return nil, err
	}
	s := &Schema{arena: a, Root: rootIdx}
	s.customFormats = c.customFormatsSnapshot()
	return s, nil
}

func compileNode(a *Arena, n *lang.Node, parent Idx) (Idx, error) {
	node := Node{
		Name:                 n.Name,
		Optional:             n.Optional,
		AdditionalProperties: AdditionalMode(n.AdditionalProperties),
		TupleTyped:           n.TupleTyped,
		ParentIdx:            parent,
		FirstChildIdx:        NoIdx,
		NextSiblingIdx:       NoIdx,
	}

	switch n.Kind {
	case lang.Object:
		node.Kind = KindObject
	case lang.Array:
		node.Kind = KindArray
	case lang.String:
		node.Kind = KindString
	case lang.Integer:
		node.Kind = KindInteger
	case lang.Number:
		node.Kind = KindNumber
	case lang.Boolean:
		node.Kind = KindBoolean
	case lang.Null:
		node.Kind = KindNull
	case lang.Any:
		node.Kind = KindAny
	case lang.Union:
		node.Kind = KindUnion
	default:
		return NoIdx, &CompileError{Pos: n.Pos, Err: fmt.Errorf("unknown AST kind %d", n.Kind)}
	}

	if n.HasRange {
		r := Range{}
		if n.Range.Lhs.Set {
			r.Lhs = boundFromAST(n.Range.Lhs)
		}
		if n.Range.Rhs.Set {
			r.Rhs = boundFromAST(n.Range.Rhs)
		}
		if r.Lhs.Set && r.Rhs.Set && r.Lhs.Rat.Cmp(r.Rhs.Rat) > 0 {
			return NoIdx, &CompileError{Pos: n.Pos, Err: ErrInvalidRange}
		}
		node.HasRange = true
		node.Range = r
	}
	if n.HasRegex {
		node.HasRegex = true
		node.RegexSrc = n.Regex
	}
	if n.HasEnum {
		node.HasEnum = true
		node.EnumValues = n.Enum
	}
	if n.HasDefault {
		node.HasDefault = true
		node.Default = n.Default
	}
	if n.HasFormat {
		node.HasFormat = true
		node.FormatName = n.Format
	}

	idx := a.alloc(node)

	// Pre-compile the regex now so compile-time failures surface as a
	// CompileError rather than silently at first use.
	if node.HasRegex {
		if _, err := a.CompiledRegex(idx); err != nil {
			return NoIdx, &CompileError{Pos: n.Pos, Err: fmt.Errorf("invalid regex /%s/: %w", node.RegexSrc, err)}
		}
	}

	var prev Idx = NoIdx
	for _, child := range n.Children {
		childIdx, err := compileNode(a, child, idx)
		if err != nil {
			return NoIdx, err
		}
		if prev == NoIdx {
			a.Node(idx).FirstChildIdx = childIdx
		} else {
			a.Node(prev).NextSiblingIdx = childIdx
		}
		prev = childIdx
		if node.Kind == KindUnion {
			a.Node(idx).UnionAlternatives = append(a.Node(idx).UnionAlternatives, childIdx)
		}
	}

	return idx, nil
}

func boundFromAST(b lang.Bound) Bound {
	if b.IsInt {
		return NewIntBound(b.I)
	}
	return NewFloatBound(b.F)
}
