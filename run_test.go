package thor

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLogTokens(t *testing.T) {
	ctx, out := newTestContext()
	var log bytes.Buffer
	_, err := Run(ctx, "x = 1", RunOptions{LogTokens: true, Log: &log})
	require.NoError(t, err)
	assert.Equal(t, "tokens: [\n  identifier(x),\n  =,\n  number(1),\n  end-of-file\n]\n\n", log.String())
	assert.Empty(t, out.String())
}

func TestRunLogAST(t *testing.T) {
	ctx, _ := newTestContext()
	var log bytes.Buffer
	_, err := Run(ctx, "x = 1 + 2\nprint(x)", RunOptions{LogAST: true, Log: &log})
	require.NoError(t, err)
	assert.Equal(t, "ast: x = (1 + 2),\nprint(x)\n\n", log.String())
}

func TestRunLogDefaultsToStdout(t *testing.T) {
	ctx, out := newTestContext()
	_, err := Run(ctx, "print(2)", RunOptions{LogTokens: true, LogAST: true})
	require.NoError(t, err)
	assert.Equal(t, "tokens: [\n  identifier(print),\n  (,\n  number(2),\n  ),\n  end-of-file\n]\n\nast: print(2)\n\n2\n", out.String())
}

func TestRunWithoutLogging(t *testing.T) {
	ctx, out := newTestContext()
	value, err := Run(ctx, "1 + 1", RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, "2", value.String())
	assert.Empty(t, out.String())
}

func TestRunLexError(t *testing.T) {
	ctx, _ := newTestContext()
	var log bytes.Buffer
	value, err := Run(ctx, "x = 1 @", RunOptions{LogTokens: true, Log: &log})
	assert.Nil(t, value)
	var lexError LexError
	require.True(t, errors.As(err, &lexError))
	assert.Empty(t, log.String())
}

func TestRunParseError(t *testing.T) {
	ctx, _ := newTestContext()
	value, err := Run(ctx, "x = (1", RunOptions{Location: &SourceLocation{"script.thor", 1, 1}})
	assert.Nil(t, value)
	var parseError ParseError
	require.True(t, errors.As(err, &parseError))
	assert.Equal(t, "script.thor", parseError.ErrorLocation().File)
	assert.Nil(t, ctx.Globals.Get("x"))
}

func TestRunErrorsAreLocated(t *testing.T) {
	for _, source := range []string{"$", "(", "y", "true + 1", "fn f(a) {}\nf()", "fn f() { return f() }\nf()"} {
		ctx, _ := newTestContext()
		ctx.MaxCallDepth = 10
		_, err := Run(ctx, source, RunOptions{Location: &SourceLocation{"script.thor", 1, 1}})
		var located Located
		require.True(t, errors.As(err, &located), source)
		require.NotNil(t, located.ErrorLocation(), source)
		assert.Equal(t, "script.thor", located.ErrorLocation().File, source)
	}
}

func TestRunSharesGlobalScope(t *testing.T) {
	ctx, out := newTestContext()
	_, err := Run(ctx, "fn square(n) { return n * n }\ncount = 3", RunOptions{})
	require.NoError(t, err)
	value, err := Run(ctx, "print(square(count))\nsquare(4)", RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, "9\n", out.String())
	assert.True(t, value.Equal(ctx.NewNumber(16)))
}
