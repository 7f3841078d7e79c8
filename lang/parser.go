package lang

import "fmt"

// ParseError reports a syntax error with position (spec §6 line/column
// tracking).
type ParseError struct {
	Pos Pos
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Col, e.Msg)
}

// Parser is a recursive-descent parser over a Lexer's token stream.
//
// Grammar (informal):
//
//	Schema    := Member
//	Member    := ['optional'] Kind Modifier* ';'
//	NamedMem  := ['optional'] Kind Ident Modifier* ';'
//	Kind      := ObjectLit | ArrayLit | Union | LeafKind
//	ObjectLit := '{' NamedMem* [Extra] '}'
//	ArrayLit  := '[' Member* [Extra] ']'
//	Union     := '<' Member* '>'
//	LeafKind  := 'string' | 'integer' | 'number' | 'boolean' | 'null' | 'any'
//	Extra     := 'extra' ';'                 -- additionalProperties: anyKind
//	Modifier  := Range | Regex | Enum | Default | Format
//	Range     := '{' Number? ',' Number? '}'
//	Regex     := regex-literal
//	Enum      := '#' Literal (',' Literal)* '#'
//	Default   := '=' Literal
//	Format    := 'format' String
//
// A member that carries a Default may be followed by one extra ';'
// ("integer n = 5;;" and "integer n = 5;" both parse).
//
// Object members are named (the identifier follows the member's kind);
// array/union/top-level members are anonymous. 'extra' is a reserved
// identifier, not a general keyword, so it never collides with a real
// member name — a member can still be literally named "extra" were it
// preceded by its own kind token, since 'extra' is only special as the
// first token right where a member or a closing bracket is expected.
type Parser struct {
	lex *Lexer
	tok Token
}

// Parse lexes and parses src into a root *Node.
func Parse(src string) (*Node, error) {
	p := &Parser{lex: NewLexer(src)}
	if err := p.next(); err != nil {
		return nil, err
	}
	root, err := p.parseMember(false)
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != TokEOF {
		return nil, &ParseError{Pos: p.tok.Pos, Msg: "trailing input after schema"}
	}
	return root, nil
}

func (p *Parser) next() error {
	t, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *Parser) expect(k TokKind, what string) error {
	if p.tok.Kind != k {
		return &ParseError{Pos: p.tok.Pos, Msg: "expected " + what}
	}
	return p.next()
}

// parseMember parses one member declaration. named=true means an object
// member is expected (leading identifier is the key); for array elements,
// union alternatives, and the schema root, named=false.
func (p *Parser) parseMember(named bool) (*Node, error) {
	n := &Node{Pos: p.tok.Pos}

	if p.tok.Kind == TokIdent && p.tok.Text == "optional" {
		n.Optional = true
		if err := p.next(); err != nil {
			return nil, err
		}
	}

	// Orderly writes "<kind> <name>", e.g. "string name;" — the name
	// identifier follows the kind token, so parse the kind first.
	if err := p.parseKind(n); err != nil {
		return nil, err
	}

	if named {
		if p.tok.Kind != TokIdent {
			return nil, &ParseError{Pos: p.tok.Pos, Msg: "expected property name"}
		}
		n.Name = p.tok.Text
		if err := p.next(); err != nil {
			return nil, err
		}
	}

	if err := p.parseModifiers(n); err != nil {
		return nil, err
	}

	if err := p.expect(TokSemicolon, "';'"); err != nil {
		return nil, err
	}
	if n.HasDefault && p.tok.Kind == TokSemicolon {
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (p *Parser) parseKind(n *Node) error {
	switch p.tok.Kind {
	case TokLBrace:
		return p.parseObject(n)
	case TokLBracket:
		return p.parseArray(n)
	case TokLt:
		return p.parseUnion(n)
	case TokIdent:
		switch p.tok.Text {
		case "string":
			n.Kind = String
		case "integer":
			n.Kind = Integer
		case "number":
			n.Kind = Number
		case "boolean":
			n.Kind = Boolean
		case "null":
			n.Kind = Null
		case "any":
			n.Kind = Any
		default:
			return &ParseError{Pos: p.tok.Pos, Msg: "unknown schema kind '" + p.tok.Text + "'"}
		}
		return p.next()
	default:
		return &ParseError{Pos: p.tok.Pos, Msg: "expected a schema kind"}
	}
}

func (p *Parser) parseObject(n *Node) error {
	n.Kind = Object
	n.AdditionalProperties = Forbidden
	if err := p.next(); err != nil { // consume '{'
		return err
	}
	for p.tok.Kind != TokRBrace {
		if p.tok.Kind == TokIdent && p.tok.Text == "extra" {
			n.AdditionalProperties = AnyKind
			if err := p.next(); err != nil {
				return err
			}
			if err := p.expect(TokSemicolon, "';' after extra"); err != nil {
				return err
			}
			break
		}
		child, err := p.parseMember(true)
		if err != nil {
			return err
		}
		n.Children = append(n.Children, child)
	}
	return p.expect(TokRBrace, "'}'")
}

func (p *Parser) parseArray(n *Node) error {
	n.Kind = Array
	n.AdditionalProperties = Forbidden
	if err := p.next(); err != nil { // consume '['
		return err
	}
	for p.tok.Kind != TokRBracket {
		if p.tok.Kind == TokIdent && p.tok.Text == "extra" {
			n.AdditionalProperties = AnyKind
			if err := p.next(); err != nil {
				return err
			}
			if err := p.expect(TokSemicolon, "';' after extra"); err != nil {
				return err
			}
			break
		}
		child, err := p.parseMember(false)
		if err != nil {
			return err
		}
		n.Children = append(n.Children, child)
	}
	n.TupleTyped = len(n.Children) != 1 || n.AdditionalProperties == AnyKind
	return p.expect(TokRBracket, "']'")
}

func (p *Parser) parseUnion(n *Node) error {
	n.Kind = Union
	if err := p.next(); err != nil { // consume '<'
		return err
	}
	for p.tok.Kind != TokGt {
		child, err := p.parseMember(false)
		if err != nil {
			return err
		}
		n.Children = append(n.Children, child)
	}
	return p.expect(TokGt, "'>'")
}

func (p *Parser) parseModifiers(n *Node) error {
	for {
		switch p.tok.Kind {
		case TokLBrace:
			rng, err := p.parseRange()
			if err != nil {
				return err
			}
			n.HasRange = true
			n.Range = rng
		case TokRegex:
			n.HasRegex = true
			n.Regex = p.tok.Text
			if err := p.next(); err != nil {
				return err
			}
		case TokHash:
			vals, err := p.parseEnum()
			if err != nil {
				return err
			}
			n.HasEnum = true
			n.Enum = vals
		case TokEquals:
			if err := p.next(); err != nil {
				return err
			}
			v, err := p.parseLiteral()
			if err != nil {
				return err
			}
			n.HasDefault = true
			n.Default = v
		case TokIdent:
			if p.tok.Text == "format" {
				if err := p.next(); err != nil {
					return err
				}
				if p.tok.Kind != TokString {
					return &ParseError{Pos: p.tok.Pos, Msg: "expected format name string"}
				}
				n.HasFormat = true
				n.Format = p.tok.Text
				if err := p.next(); err != nil {
					return err
				}
				continue
			}
			return nil
		default:
			return nil
		}
	}
}

func (p *Parser) parseRange() (Range, error) {
	var r Range
	if err := p.next(); err != nil { // consume '{'
		return r, err
	}
	if p.tok.Kind == TokNumber {
		r.Lhs = p.boundFromTok()
		if err := p.next(); err != nil {
			return r, err
		}
	}
	if err := p.expect(TokComma, "',' in range"); err != nil {
		return r, err
	}
	if p.tok.Kind == TokNumber {
		r.Rhs = p.boundFromTok()
		if err := p.next(); err != nil {
			return r, err
		}
	}
	return r, p.expect(TokRBrace, "'}' closing range")
}

func (p *Parser) boundFromTok() Bound {
	if p.tok.IsInt {
		return Bound{Set: true, IsInt: true, I: p.tok.IntVal}
	}
	return Bound{Set: true, F: p.tok.Num}
}

func (p *Parser) parseEnum() ([]any, error) {
	var vals []any
	if err := p.next(); err != nil { // consume '#'
		return nil, err
	}
	for p.tok.Kind != TokHash {
		v, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
		if p.tok.Kind == TokComma {
			if err := p.next(); err != nil {
				return nil, err
			}
		}
	}
	return vals, p.expect(TokHash, "'#' closing enum")
}

func (p *Parser) parseLiteral() (any, error) {
	switch p.tok.Kind {
	case TokString:
		v := p.tok.Text
		return v, p.next()
	case TokNumber:
		if p.tok.IsInt {
			v := p.tok.IntVal
			return v, p.next()
		}
		v := p.tok.Num
		return v, p.next()
	case TokIdent:
		switch p.tok.Text {
		case "true":
			return true, p.next()
		case "false":
			return false, p.next()
		case "null":
			return nil, p.next()
		}
		return nil, &ParseError{Pos: p.tok.Pos, Msg: "expected literal value"}
	case TokLBracket:
		return p.parseArrayLiteral()
	case TokLBrace:
		return p.parseObjectLiteral()
	default:
		return nil, &ParseError{Pos: p.tok.Pos, Msg: "expected literal value"}
	}
}

func (p *Parser) parseArrayLiteral() (any, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	arr := []any{}
	for p.tok.Kind != TokRBracket {
		v, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
		if p.tok.Kind == TokComma {
			if err := p.next(); err != nil {
				return nil, err
			}
		}
	}
	return arr, p.expect(TokRBracket, "']' closing array literal")
}

func (p *Parser) parseObjectLiteral() (any, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	obj := map[string]any{}
	for p.tok.Kind != TokRBrace {
		if p.tok.Kind != TokString {
			return nil, &ParseError{Pos: p.tok.Pos, Msg: "expected quoted key in object literal"}
		}
		key := p.tok.Text
		if err := p.next(); err != nil {
			return nil, err
		}
		if err := p.expect(TokEquals, "'=' after object literal key"); err != nil {
			return nil, err
		}
		v, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		obj[key] = v
		if p.tok.Kind == TokComma {
			if err := p.next(); err != nil {
				return nil, err
			}
		}
	}
	return obj, p.expect(TokRBrace, "'}' closing object literal")
}
