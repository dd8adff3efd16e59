package thor

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

type builtinImpl func(interp *Interpreter, location *SourceLocation, arguments []Value) (Value, error)

// The closed set of native functions. Built-ins are resolved against this
// table when they are registered, never when they are called.
var builtins = map[string]builtinImpl{
	"print": builtinPrint,
	"abs":   unaryMath("abs", math.Abs),
	"sqrt":  unaryMath("sqrt", math.Sqrt),
	"floor": unaryMath("floor", math.Floor),
	"ceil":  unaryMath("ceil", math.Ceil),
	"min":   foldMath("min", math.Min),
	"max":   foldMath("max", math.Max),
}

// Names of every known built-in function, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func NewBuiltInFunction(name string) (*BuiltInFunction, error) {
	impl, ok := builtins[name]
	if !ok {
		return nil, ConfigError{why: fmt.Sprintf("unknown built-in function %s", quote(name))}
	}
	return &BuiltInFunction{name, impl}, nil
}

// Register the named built-in in the global scope under its own name.
func (ctx *Context) RegisterBuiltin(name string) error {
	builtin, err := NewBuiltInFunction(name)
	if err != nil {
		return err
	}
	ctx.Globals.Set(name, builtin)
	return nil
}

func (self *BuiltInFunction) Call(interp *Interpreter, location *SourceLocation, arguments []Value) (Value, error) {
	return self.impl(interp, location, arguments)
}

func numberArguments(name string, location *SourceLocation, arguments []Value) ([]float64, error) {
	numbers := make([]float64, len(arguments))
	for i, argument := range arguments {
		number, ok := argument.(*Number)
		if !ok {
			return nil, TypeError{
				location,
				fmt.Sprintf("%s expected number for argument %d, found %s", quote(name), i+1, argument.Typename()),
			}
		}
		numbers[i] = number.data
	}
	return numbers, nil
}

// Write the textual rendering of each argument separated by spaces.
func builtinPrint(interp *Interpreter, location *SourceLocation, arguments []Value) (Value, error) {
	s := make([]string, len(arguments))
	for i, argument := range arguments {
		s[i] = argument.String()
	}
	if _, err := fmt.Fprintln(interp.ctx.stdout(), strings.Join(s, " ")); err != nil {
		return nil, err
	}
	return interp.ctx.Zero, nil
}

func unaryMath(name string, f func(float64) float64) builtinImpl {
	return func(interp *Interpreter, location *SourceLocation, arguments []Value) (Value, error) {
		if len(arguments) != 1 {
			return nil, ArityError{location, name, 1, len(arguments)}
		}
		numbers, err := numberArguments(name, location, arguments)
		if err != nil {
			return nil, err
		}
		return interp.ctx.NewNumber(f(numbers[0])), nil
	}
}

// Variadic reduction over one or more numbers.
func foldMath(name string, f func(float64, float64) float64) builtinImpl {
	return func(interp *Interpreter, location *SourceLocation, arguments []Value) (Value, error) {
		if len(arguments) == 0 {
			return nil, ArityError{location, name, 1, 0}
		}
		numbers, err := numberArguments(name, location, arguments)
		if err != nil {
			return nil, err
		}
		result := numbers[0]
		for _, number := range numbers[1:] {
			result = f(result, number)
		}
		return interp.ctx.NewNumber(result), nil
	}
}
