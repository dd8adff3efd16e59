package thor

import (
	"fmt"
	"math"
	"strconv"
)

type Value interface {
	Typename() string
	String() string
	Equal(Value) bool
}

// Values that may appear as the callee of a function call.
type Callable interface {
	Value
	Name() string
	Call(interp *Interpreter, location *SourceLocation, arguments []Value) (Value, error)
}

type Number struct {
	data float64
}

func (self *Number) Typename() string {
	return "number"
}

func (self *Number) String() string {
	if math.IsNaN(self.data) {
		return "NaN"
	}
	if self.data == math.Inf(+1) {
		return "Inf"
	}
	if self.data == math.Inf(-1) {
		return "-Inf"
	}
	return strconv.FormatFloat(self.data, 'g', -1, 64)
}

func (self *Number) Equal(other Value) bool {
	othr, ok := other.(*Number)
	if !ok {
		return false
	}
	return self.data == othr.data
}

func (self *Number) Data() float64 {
	return self.data
}

type Boolean struct {
	data bool
}

func (self *Boolean) Typename() string {
	return "boolean"
}

func (self *Boolean) String() string {
	if self.data {
		return "true"
	}
	return "false"
}

func (self *Boolean) Equal(other Value) bool {
	othr, ok := other.(*Boolean)
	if !ok {
		return false
	}
	return self.data == othr.data
}

func (self *Boolean) Data() bool {
	return self.data
}

// User-defined function. The globals scope is the root of the scope the
// function was defined in and becomes the parent of every call scope.
type Function struct {
	name     string
	argNames []string
	body     *StatementsNode
	globals  *Scope
}

func (self *Function) Typename() string {
	return "function"
}

func (self *Function) String() string {
	return fmt.Sprintf("<function %s>", self.name)
}

func (self *Function) Equal(other Value) bool {
	othr, ok := other.(*Function)
	return ok && self == othr
}

func (self *Function) Name() string {
	return self.name
}

func (self *Function) Arity() int {
	return len(self.argNames)
}

func (self *Function) ArgNames() []string {
	return append([]string(nil), self.argNames...)
}

func (self *Function) Body() *StatementsNode {
	return self.body
}

type BuiltInFunction struct {
	name string
	impl builtinImpl
}

func (self *BuiltInFunction) Typename() string {
	return "builtin"
}

func (self *BuiltInFunction) String() string {
	return fmt.Sprintf("<builtin %s>", self.name)
}

func (self *BuiltInFunction) Equal(other Value) bool {
	othr, ok := other.(*BuiltInFunction)
	return ok && self.name == othr.name
}

func (self *BuiltInFunction) Name() string {
	return self.name
}

// Truthiness used by conditionals. Returns false with ok unset for values
// that have no truth value.
func truthy(value Value) (result bool, ok bool) {
	switch v := value.(type) {
	case *Boolean:
		return v.data, true
	case *Number:
		return v.data != 0, true
	}
	return false, false
}
