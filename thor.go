package thor

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

// Call depth at which user function invocation fails with a
// StackOverflowError.
const DefaultMaxCallDepth = 2048

func quote(s string) string {
	if strings.Contains(s, "`") {
		return fmt.Sprintf(`"%s"`, s)
	}
	return fmt.Sprintf("`%s`", s)
}

type SourceLocation struct {
	File   string
	Line   int
	Column int
}

func (self *SourceLocation) String() string {
	if self == nil {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", self.File, self.Line, self.Column)
}

type Context struct {
	Zero         *Number
	Globals      *Scope
	Stdout       io.Writer
	MaxCallDepth int
}

func NewContext() Context {
	ctx := Context{}
	ctx.Zero = ctx.NewNumber(0)
	ctx.Globals = NewScope("<program>", nil)
	ctx.Stdout = os.Stdout
	ctx.MaxCallDepth = DefaultMaxCallDepth
	return ctx
}

func (ctx *Context) NewNumber(data float64) *Number {
	return &Number{data}
}

func (ctx *Context) NewBoolean(data bool) *Boolean {
	return &Boolean{data}
}

func (ctx *Context) NewFunction(name string, argNames []string, body *StatementsNode, globals *Scope) *Function {
	return &Function{
		name:     name,
		argNames: argNames,
		body:     body,
		globals:  globals,
	}
}

// Pre-populate the global scope with the numeric constants PI and TAU and
// every known built-in function.
func (ctx *Context) LoadPrelude() {
	ctx.Globals.Set("PI", ctx.NewNumber(math.Pi))
	ctx.Globals.Set("TAU", ctx.NewNumber(math.Pi*2))
	for _, name := range BuiltinNames() {
		ctx.Globals.Set(name, &BuiltInFunction{name, builtins[name]})
	}
}

func (ctx *Context) stdout() io.Writer {
	if ctx.Stdout == nil {
		return io.Discard
	}
	return ctx.Stdout
}
