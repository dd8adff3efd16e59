package thor

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Node is the closed set of syntax tree variants produced by the parser. The
// unexported eval method seals the set to this package, so every variant is
// guaranteed to define its evaluation.
//
// String renders a node in a canonical form that lexes and parses back into
// an equivalent tree.
type Node interface {
	NodeLocation() *SourceLocation
	String() string
	eval(interp *Interpreter, scope *Scope) (Value, ControlFlow, error)
}

type NumberNode struct {
	Location *SourceLocation // Optional
	Value    float64
}

func (self *NumberNode) NodeLocation() *SourceLocation {
	return self.Location
}

// Negative values render as a negation so the text parses back to a number
// of the same value.
func (self *NumberNode) String() string {
	if math.Signbit(self.Value) {
		return fmt.Sprintf("(-%s)", strconv.FormatFloat(-self.Value, 'f', -1, 64))
	}
	return strconv.FormatFloat(self.Value, 'f', -1, 64)
}

type BooleanNode struct {
	Location *SourceLocation // Optional
	Value    bool
}

func (self *BooleanNode) NodeLocation() *SourceLocation {
	return self.Location
}

func (self *BooleanNode) String() string {
	if self.Value {
		return TOKEN_TRUE
	}
	return TOKEN_FALSE
}

type IdentifierNode struct {
	Location *SourceLocation // Optional
	Name     string
}

func (self *IdentifierNode) NodeLocation() *SourceLocation {
	return self.Location
}

func (self *IdentifierNode) String() string {
	return self.Name
}

type AssignmentNode struct {
	Location   *SourceLocation // Optional
	Identifier string
	Node       Node
}

func (self *AssignmentNode) NodeLocation() *SourceLocation {
	return self.Location
}

func (self *AssignmentNode) String() string {
	return fmt.Sprintf("%s = %s", self.Identifier, self.Node)
}

type UnaryOpNode struct {
	Location *SourceLocation // Optional
	Operator string
	Node     Node
}

func (self *UnaryOpNode) NodeLocation() *SourceLocation {
	return self.Location
}

func (self *UnaryOpNode) String() string {
	return fmt.Sprintf("(%s%s)", self.Operator, self.Node)
}

type BinaryOpNode struct {
	Location *SourceLocation // Optional
	Left     Node
	Operator string
	Right    Node
}

func (self *BinaryOpNode) NodeLocation() *SourceLocation {
	return self.Location
}

func (self *BinaryOpNode) String() string {
	return fmt.Sprintf("(%s %s %s)", self.Left, self.Operator, self.Right)
}

// A sequence of statements. Used for the program root and for every brace
// delimited block.
type StatementsNode struct {
	Location *SourceLocation // Optional
	Nodes    []Node
}

func (self *StatementsNode) NodeLocation() *SourceLocation {
	return self.Location
}

func (self *StatementsNode) String() string {
	s := make([]string, len(self.Nodes))
	for i, node := range self.Nodes {
		s[i] = node.String()
	}
	return strings.Join(s, ",\n")
}

// Brace delimited rendering of a block with its statements indented.
func renderBlock(node Node) string {
	text := node.String()
	if statements, ok := node.(*StatementsNode); ok && len(statements.Nodes) == 0 {
		return "{}"
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return fmt.Sprintf("{\n%s\n}", strings.Join(lines, "\n"))
}

type FuncDefNode struct {
	Location *SourceLocation // Optional
	Name     string
	ArgNames []string
	Body     *StatementsNode
}

func (self *FuncDefNode) NodeLocation() *SourceLocation {
	return self.Location
}

func (self *FuncDefNode) String() string {
	return fmt.Sprintf("fn %s(%s) %s", self.Name, strings.Join(self.ArgNames, ", "), renderBlock(self.Body))
}

type FuncCallNode struct {
	Location *SourceLocation // Optional
	Name     string
	Args     []Node
}

func (self *FuncCallNode) NodeLocation() *SourceLocation {
	return self.Location
}

func (self *FuncCallNode) String() string {
	s := make([]string, len(self.Args))
	for i, arg := range self.Args {
		s[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", self.Name, strings.Join(s, ", "))
}

type IfNode struct {
	Location  *SourceLocation // Optional
	Condition Node
	Body      *StatementsNode
	ElseCase  Node // Optional: *StatementsNode for else, *IfNode for else if.
}

func (self *IfNode) NodeLocation() *SourceLocation {
	return self.Location
}

func (self *IfNode) String() string {
	s := fmt.Sprintf("if (%s) %s", self.Condition, renderBlock(self.Body))
	if self.ElseCase == nil {
		return s
	}
	if elseIf, ok := self.ElseCase.(*IfNode); ok {
		return fmt.Sprintf("%s else %s", s, elseIf)
	}
	return fmt.Sprintf("%s else %s", s, renderBlock(self.ElseCase))
}

type ReturnNode struct {
	Location *SourceLocation // Optional
	Node     Node            // Optional
}

func (self *ReturnNode) NodeLocation() *SourceLocation {
	return self.Location
}

func (self *ReturnNode) String() string {
	if self.Node == nil {
		return TOKEN_RETURN
	}
	return fmt.Sprintf("return %s", self.Node)
}
