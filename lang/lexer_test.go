package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	l := NewLexer(src)
	var toks []Token
	for {
		tok, err := l.Next()
		require.NoError(t, err, "lexing %q", src)
		toks = append(toks, tok)
		if tok.Kind == TokEOF {
			return toks
		}
	}
}

func TestLexerPunctuation(t *testing.T) {
	toks := lexAll(t, ";[]{}<>,=#")
	kinds := make([]TokKind, 0, len(toks))
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []TokKind{
		TokSemicolon, TokLBracket, TokRBracket, TokLBrace, TokRBrace,
		TokLt, TokGt, TokComma, TokEquals, TokHash, TokEOF,
	}, kinds)
}

func TestLexerIdent(t *testing.T) {
	toks := lexAll(t, "string optional _foo42")
	require.Len(t, toks, 4)
	assert.Equal(t, TokIdent, toks[0].Kind)
	assert.Equal(t, "string", toks[0].Text)
	assert.Equal(t, "optional", toks[1].Text)
	assert.Equal(t, "_foo42", toks[2].Text)
}

func TestLexerNumbers(t *testing.T) {
	toks := lexAll(t, "42 -7 3.14 -2.5e3")
	require.Len(t, toks, 5)

	assert.True(t, toks[0].IsInt)
	assert.EqualValues(t, 42, toks[0].IntVal)

	assert.True(t, toks[1].IsInt)
	assert.EqualValues(t, -7, toks[1].IntVal)

	assert.False(t, toks[2].IsInt)
	assert.InDelta(t, 3.14, toks[2].Num, 1e-9)

	assert.False(t, toks[3].IsInt)
	assert.InDelta(t, -2500.0, toks[3].Num, 1e-9)
}

func TestLexerString(t *testing.T) {
	toks := lexAll(t, `"hello\nworld" "escaped \"quote\""`)
	require.Len(t, toks, 3)
	assert.Equal(t, "hello\nworld", toks[0].Text)
	assert.Equal(t, `escaped "quote"`, toks[1].Text)
}

func TestLexerStringUnterminated(t *testing.T) {
	l := NewLexer(`"unterminated`)
	_, err := l.Next()
	require.Error(t, err)
	var lexErr *LexError
	assert.ErrorAs(t, err, &lexErr)
}

func TestLexerRegex(t *testing.T) {
	toks := lexAll(t, `/^[a-z]+\/bar$/`)
	require.Len(t, toks, 2)
	assert.Equal(t, TokRegex, toks[0].Kind)
	assert.Equal(t, `^[a-z]+/bar$`, toks[0].Text)
}

func TestLexerComments(t *testing.T) {
	toks := lexAll(t, "string // a comment\nname;")
	kinds := make([]TokKind, 0, len(toks))
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []TokKind{TokIdent, TokIdent, TokSemicolon, TokEOF}, kinds)
}

func TestLexerPositionTracking(t *testing.T) {
	l := NewLexer("ab\ncd")
	first, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, Pos{Line: 1, Col: 1}, first.Pos)

	second, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, Pos{Line: 2, Col: 1}, second.Pos)
}

func TestLexerUnexpectedCharacter(t *testing.T) {
	l := NewLexer("@")
	_, err := l.Next()
	require.Error(t, err)
}
