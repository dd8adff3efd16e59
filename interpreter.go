package thor

import (
	"fmt"
	"math"
)

type ControlFlow interface {
	ControlFlowLocation() *SourceLocation
}

// Produced by a return statement and propagated through enclosing blocks
// until it reaches a function call or the program root.
type Return struct {
	Location *SourceLocation // Optional
	Value    Value
}

func (self Return) ControlFlowLocation() *SourceLocation {
	return self.Location
}

type Interpreter struct {
	ctx   *Context
	depth int // Number of active user function calls.
}

func NewInterpreter(ctx *Context) *Interpreter {
	return &Interpreter{ctx: ctx}
}

func (self *Interpreter) Context() *Context {
	return self.ctx
}

// Evaluate a node against the provided scope. A return escaping the node
// supplies the result.
func (self *Interpreter) Evaluate(node Node, scope *Scope) (Value, error) {
	value, cflow, err := node.eval(self, scope)
	if err != nil {
		return nil, err
	}
	if result, ok := cflow.(Return); ok {
		return result.Value, nil
	}
	return value, nil
}

// Evaluate the root of a program. Unlike an ordinary block, the program
// produces the value of its last statement when no return is executed.
func (self *Interpreter) EvaluateProgram(program *StatementsNode, scope *Scope) (Value, error) {
	var result Value = self.ctx.Zero
	for _, node := range program.Nodes {
		value, cflow, err := node.eval(self, scope)
		if err != nil {
			return nil, err
		}
		if ret, ok := cflow.(Return); ok {
			return ret.Value, nil
		}
		result = value
	}
	return result, nil
}

func (self *Interpreter) evalNumber(node Node, scope *Scope, operator string) (float64, error) {
	value, err := self.Evaluate(node, scope)
	if err != nil {
		return 0, err
	}
	number, ok := value.(*Number)
	if !ok {
		return 0, TypeError{
			node.NodeLocation(),
			fmt.Sprintf("operator %s expected number, found %s", quote(operator), value.Typename()),
		}
	}
	return number.data, nil
}

func (self *NumberNode) eval(interp *Interpreter, scope *Scope) (Value, ControlFlow, error) {
	return interp.ctx.NewNumber(self.Value), nil, nil
}

func (self *BooleanNode) eval(interp *Interpreter, scope *Scope) (Value, ControlFlow, error) {
	return interp.ctx.NewBoolean(self.Value), nil, nil
}

func (self *IdentifierNode) eval(interp *Interpreter, scope *Scope) (Value, ControlFlow, error) {
	value := scope.Get(self.Name)
	if value == nil {
		return nil, nil, NameError{self.Location, self.Name}
	}
	return value, nil, nil
}

func (self *AssignmentNode) eval(interp *Interpreter, scope *Scope) (Value, ControlFlow, error) {
	value, err := interp.Evaluate(self.Node, scope)
	if err != nil {
		return nil, nil, err
	}
	scope.Set(self.Identifier, value)
	return value, nil, nil
}

func (self *UnaryOpNode) eval(interp *Interpreter, scope *Scope) (Value, ControlFlow, error) {
	operand, err := interp.evalNumber(self.Node, scope, self.Operator)
	if err != nil {
		return nil, nil, err
	}
	switch self.Operator {
	case TOKEN_MINUS:
		return interp.ctx.NewNumber(-operand), nil, nil
	}
	return nil, nil, TypeError{
		self.Location,
		fmt.Sprintf("unsupported unary operator %s", quote(self.Operator)),
	}
}

func (self *BinaryOpNode) eval(interp *Interpreter, scope *Scope) (Value, ControlFlow, error) {
	left, err := interp.evalNumber(self.Left, scope, self.Operator)
	if err != nil {
		return nil, nil, err
	}
	right, err := interp.evalNumber(self.Right, scope, self.Operator)
	if err != nil {
		return nil, nil, err
	}

	var result float64
	switch self.Operator {
	case TOKEN_PLUS:
		result = left + right
	case TOKEN_MINUS:
		result = left - right
	case TOKEN_STAR:
		result = left * right
	case TOKEN_SLASH:
		// IEEE 754: division by zero produces an infinity or NaN.
		result = left / right
	case TOKEN_CARET:
		result = math.Pow(left, right)
	default:
		return nil, nil, TypeError{
			self.Location,
			fmt.Sprintf("unsupported binary operator %s", quote(self.Operator)),
		}
	}
	return interp.ctx.NewNumber(result), nil, nil
}

func (self *StatementsNode) eval(interp *Interpreter, scope *Scope) (Value, ControlFlow, error) {
	for _, node := range self.Nodes {
		value, cflow, err := node.eval(interp, scope)
		if err != nil {
			return nil, nil, err
		}
		if cflow != nil {
			return value, cflow, nil
		}
	}
	return interp.ctx.Zero, nil, nil
}

func (self *IfNode) eval(interp *Interpreter, scope *Scope) (Value, ControlFlow, error) {
	condition, err := interp.Evaluate(self.Condition, scope)
	if err != nil {
		return nil, nil, err
	}
	truth, ok := truthy(condition)
	if !ok {
		return nil, nil, TypeError{
			self.Condition.NodeLocation(),
			fmt.Sprintf("condition expected boolean or number, found %s", condition.Typename()),
		}
	}

	if truth {
		return self.Body.eval(interp, scope)
	}
	if self.ElseCase != nil {
		return self.ElseCase.eval(interp, scope)
	}
	return interp.ctx.Zero, nil, nil
}

func (self *FuncDefNode) eval(interp *Interpreter, scope *Scope) (Value, ControlFlow, error) {
	function := interp.ctx.NewFunction(self.Name, self.ArgNames, self.Body, scope.Root())
	scope.Set(self.Name, function)
	return function, nil, nil
}

func (self *FuncCallNode) eval(interp *Interpreter, scope *Scope) (Value, ControlFlow, error) {
	callee := scope.Get(self.Name)
	if callee == nil {
		return nil, nil, NameError{self.Location, self.Name}
	}
	callable, ok := callee.(Callable)
	if !ok {
		return nil, nil, TypeError{
			self.Location,
			fmt.Sprintf("%s is not callable (found %s)", quote(self.Name), callee.Typename()),
		}
	}

	arguments := make([]Value, len(self.Args))
	for i, arg := range self.Args {
		value, err := interp.Evaluate(arg, scope)
		if err != nil {
			return nil, nil, err
		}
		arguments[i] = value
	}

	result, err := callable.Call(interp, self.Location, arguments)
	if err != nil {
		return nil, nil, err
	}
	return result, nil, nil
}

func (self *ReturnNode) eval(interp *Interpreter, scope *Scope) (Value, ControlFlow, error) {
	var value Value = interp.ctx.Zero
	if self.Node != nil {
		var err error
		value, err = interp.Evaluate(self.Node, scope)
		if err != nil {
			return nil, nil, err
		}
	}
	return value, Return{self.Location, value}, nil
}

// Invoke a user function. Arguments are bound positionally in a fresh scope
// whose parent is the global scope of the function's definition.
func (self *Function) Call(interp *Interpreter, location *SourceLocation, arguments []Value) (Value, error) {
	if len(arguments) != len(self.argNames) {
		return nil, ArityError{location, self.name, len(self.argNames), len(arguments)}
	}

	limit := interp.ctx.MaxCallDepth
	if limit <= 0 {
		limit = DefaultMaxCallDepth
	}
	if interp.depth >= limit {
		return nil, StackOverflowError{location, limit}
	}
	interp.depth += 1
	defer func() { interp.depth -= 1 }()

	scope := NewScope(self.name, self.globals)
	scope.Set(self.name, self)
	for i, argName := range self.argNames {
		scope.Set(argName, arguments[i])
	}

	value, cflow, err := self.body.eval(interp, scope)
	if err != nil {
		return nil, err
	}
	if result, ok := cflow.(Return); ok {
		return result.Value, nil
	}
	return value, nil
}
