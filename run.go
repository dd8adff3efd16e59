package thor

import (
	"fmt"
	"io"
)

type RunOptions struct {
	LogTokens bool
	LogAST    bool
	Location  *SourceLocation // Optional: origin of the source text.
	Log       io.Writer       // Optional: defaults to the context's stdout.
}

// Lex, parse, and evaluate a program against the context's global scope.
// Any error aborts the run and no value is produced.
func Run(ctx *Context, source string, options RunOptions) (Value, error) {
	log := options.Log
	if log == nil {
		log = ctx.stdout()
	}

	tokens, err := Lex(source, options.Location)
	if err != nil {
		return nil, err
	}
	if options.LogTokens {
		fmt.Fprintf(log, "tokens: %s\n\n", FormatTokens(tokens))
	}

	program, err := Parse(tokens)
	if err != nil {
		return nil, err
	}
	if options.LogAST {
		fmt.Fprintf(log, "ast: %s\n\n", program)
	}

	return NewInterpreter(ctx).EvaluateProgram(program, ctx.Globals)
}
