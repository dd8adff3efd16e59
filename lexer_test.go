package thor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []string {
	result := make([]string, len(tokens))
	for i, token := range tokens {
		result[i] = token.Kind
	}
	return result
}

func TestLexEmpty(t *testing.T) {
	tokens, err := Lex("", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{TOKEN_EOF}, kinds(tokens))

	tokens, err = Lex("  \n\t  ", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{TOKEN_EOF}, kinds(tokens))
}

func TestLexOperatorsAndDelimiters(t *testing.T) {
	tokens, err := Lex("+ - * / ^ = ( ) { } , ;", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		TOKEN_PLUS, TOKEN_MINUS, TOKEN_STAR, TOKEN_SLASH, TOKEN_CARET, TOKEN_ASSIGN,
		TOKEN_LPAREN, TOKEN_RPAREN, TOKEN_LBRACE, TOKEN_RBRACE, TOKEN_COMMA, TOKEN_SEMICOLON,
		TOKEN_EOF,
	}, kinds(tokens))
}

func TestLexKeywordsAndIdentifiers(t *testing.T) {
	tokens, err := Lex("fn if else return true false foo _bar x1 iffy", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		TOKEN_FN, TOKEN_IF, TOKEN_ELSE, TOKEN_RETURN, TOKEN_TRUE, TOKEN_FALSE,
		TOKEN_IDENTIFIER, TOKEN_IDENTIFIER, TOKEN_IDENTIFIER, TOKEN_IDENTIFIER,
		TOKEN_EOF,
	}, kinds(tokens))
	assert.Equal(t, "foo", tokens[6].Literal)
	assert.Equal(t, "_bar", tokens[7].Literal)
	assert.Equal(t, "x1", tokens[8].Literal)
	assert.Equal(t, "iffy", tokens[9].Literal)
}

func TestLexNumbers(t *testing.T) {
	tokens, err := Lex("42 3.14 .5 7.", nil)
	require.NoError(t, err)
	require.Len(t, tokens, 5)
	for i, expected := range []float64{42, 3.14, 0.5, 7} {
		assert.Equal(t, TOKEN_NUMBER, tokens[i].Kind)
		assert.Equal(t, expected, tokens[i].Number)
	}
	assert.Equal(t, "3.14", tokens[1].Literal)
}

func TestLexNumberAdjacentToOperator(t *testing.T) {
	tokens, err := Lex("2*(3-1)", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		TOKEN_NUMBER, TOKEN_STAR, TOKEN_LPAREN, TOKEN_NUMBER, TOKEN_MINUS, TOKEN_NUMBER, TOKEN_RPAREN, TOKEN_EOF,
	}, kinds(tokens))
}

func TestLexMalformedNumber(t *testing.T) {
	for _, source := range []string{"1.2.3", "3abc", ".", "1e5", "x = 12_000"} {
		_, err := Lex(source, nil)
		var lexError LexError
		require.True(t, errors.As(err, &lexError), source)
		assert.Contains(t, lexError.Error(), "malformed number literal", source)
	}
}

func TestLexUnknownCharacter(t *testing.T) {
	_, err := Lex("x = 1 $", &SourceLocation{"script.thor", 1, 1})
	var lexError LexError
	require.True(t, errors.As(err, &lexError))
	assert.Equal(t, "unknown token `$`", lexError.Error())
	assert.Equal(t, &SourceLocation{"script.thor", 1, 7}, lexError.ErrorLocation())
}

func TestLexLocations(t *testing.T) {
	tokens, err := Lex("x\n  y = 2", &SourceLocation{"main.thor", 1, 1})
	require.NoError(t, err)
	assert.Equal(t, &SourceLocation{"main.thor", 1, 1}, tokens[0].Location)
	assert.Equal(t, &SourceLocation{"main.thor", 2, 3}, tokens[1].Location)
	assert.Equal(t, &SourceLocation{"main.thor", 2, 5}, tokens[2].Location)
	assert.Equal(t, &SourceLocation{"main.thor", 2, 7}, tokens[3].Location)
}

func TestLexComments(t *testing.T) {
	tokens, err := Lex("# leading comment\nx # trailing comment\n# last", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{TOKEN_IDENTIFIER, TOKEN_EOF}, kinds(tokens))
}

func TestNextTokenAfterEof(t *testing.T) {
	lexer := NewLexer("x", nil)
	token, err := lexer.NextToken()
	require.NoError(t, err)
	assert.Equal(t, TOKEN_IDENTIFIER, token.Kind)
	for i := 0; i < 2; i++ {
		token, err = lexer.NextToken()
		require.NoError(t, err)
		assert.Equal(t, TOKEN_EOF, token.Kind)
	}
}

func TestTokenString(t *testing.T) {
	tokens, err := Lex("x = 1.5 + fn", nil)
	require.NoError(t, err)
	assert.Equal(t, "identifier(x)", tokens[0].String())
	assert.Equal(t, "=", tokens[1].String())
	assert.Equal(t, "number(1.5)", tokens[2].String())
	assert.Equal(t, "+", tokens[3].String())
	assert.Equal(t, "fn", tokens[4].String())
	assert.Equal(t, "end-of-file", tokens[5].String())
}

func TestFormatTokens(t *testing.T) {
	tokens, err := Lex("x = 1", nil)
	require.NoError(t, err)
	assert.Equal(t, "[\n  identifier(x),\n  =,\n  number(1),\n  end-of-file\n]", FormatTokens(tokens))
	assert.Equal(t, "[]", FormatTokens(nil))
}
