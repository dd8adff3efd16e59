package thor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asProgram(node Node) *StatementsNode {
	if program, ok := node.(*StatementsNode); ok {
		return program
	}
	return &StatementsNode{Nodes: []Node{node}}
}

// Evaluate a node as a program in a fresh context where x is bound to 3 and
// double(n) is defined.
func evaluateFresh(t *testing.T, node Node) Value {
	t.Helper()
	ctx, _ := newTestContext()
	_, err := Run(ctx, "x = 3\nfn double(n) { return n * 2 }", RunOptions{})
	require.NoError(t, err)
	value, err := NewInterpreter(ctx).EvaluateProgram(asProgram(node), ctx.Globals)
	require.NoError(t, err, node.String())
	return value
}

func assertRoundTrip(t *testing.T, node Node) {
	t.Helper()
	text := node.String()
	reparsed := parseSource(t, text)
	assert.Equal(t, text, reparsed.String())

	first := evaluateFresh(t, node)
	second := evaluateFresh(t, reparsed)
	assert.Equal(t, first.Typename(), second.Typename(), text)
	assert.Equal(t, first.String(), second.String(), text)
}

func TestRoundTripNodeVariants(t *testing.T) {
	number := func(value float64) Node { return &NumberNode{Value: value} }
	identifier := func(name string) Node { return &IdentifierNode{Name: name} }
	block := func(nodes ...Node) *StatementsNode { return &StatementsNode{Nodes: nodes} }

	for _, node := range []Node{
		number(42),
		number(2.5),
		number(-7.25),
		number(0.001),
		number(1e21),
		&BooleanNode{Value: true},
		&BooleanNode{Value: false},
		identifier("x"),
		&AssignmentNode{Identifier: "y", Node: number(9)},
		&UnaryOpNode{Operator: TOKEN_MINUS, Node: identifier("x")},
		&UnaryOpNode{Operator: TOKEN_MINUS, Node: number(-1)},
		&BinaryOpNode{Left: number(2), Operator: TOKEN_PLUS, Right: &BinaryOpNode{Left: number(3), Operator: TOKEN_STAR, Right: number(4)}},
		&BinaryOpNode{Left: &BinaryOpNode{Left: number(2), Operator: TOKEN_CARET, Right: number(3)}, Operator: TOKEN_CARET, Right: number(2)},
		&BinaryOpNode{Left: number(1), Operator: TOKEN_SLASH, Right: number(0)},
		block(),
		block(&AssignmentNode{Identifier: "z", Node: number(1)}, &BinaryOpNode{Left: identifier("z"), Operator: TOKEN_MINUS, Right: identifier("x")}),
		&FuncDefNode{Name: "f", ArgNames: []string{"a", "b"}, Body: block(&ReturnNode{Node: &BinaryOpNode{Left: identifier("a"), Operator: TOKEN_MINUS, Right: identifier("b")}})},
		&FuncDefNode{Name: "g", ArgNames: []string{}, Body: block()},
		&FuncCallNode{Name: "double", Args: []Node{&UnaryOpNode{Operator: TOKEN_MINUS, Node: identifier("x")}}},
		&FuncCallNode{Name: "max", Args: []Node{number(1), identifier("x"), number(2)}},
		&IfNode{Condition: identifier("x"), Body: block(&ReturnNode{Node: number(1)})},
		&IfNode{Condition: number(0), Body: block(&ReturnNode{Node: number(1)}), ElseCase: block(&ReturnNode{Node: number(2)})},
		&IfNode{
			Condition: &BooleanNode{Value: false},
			Body:      block(&ReturnNode{Node: number(1)}),
			ElseCase: &IfNode{
				Condition: identifier("x"),
				Body:      block(&ReturnNode{Node: number(2)}),
				ElseCase:  block(&ReturnNode{Node: number(3)}),
			},
		},
		&ReturnNode{Node: &BinaryOpNode{Left: identifier("x"), Operator: TOKEN_PLUS, Right: number(1)}},
		&ReturnNode{},
		block(&ReturnNode{}, identifier("x")),
	} {
		assertRoundTrip(t, node)
	}
}

func TestRoundTripPrograms(t *testing.T) {
	for _, source := range []string{
		"x = 2\ny = 3\nfn add(a,b){ return a + b }\nadd(x, y)",
		"fn fact(n) { if (n) { return n * fact(n - 1) } return 1 }\nfact(6)",
		"fn pick(n) { if (n) { return 1 } else if (n + 1) { return 2 } else { return 3 } }\npick(0) * 10 + pick(-1)",
		"fn outer(n) { fn inner(m) { return m ^ 2 } return inner(n) + 1 }\nouter(4)",
		"a = -2 ^ 2\nb = 2 ^ -1\na + b",
		"fn f() { return }\nf()",
	} {
		assertRoundTrip(t, parseSource(t, source))
	}
}

func TestNodeString(t *testing.T) {
	program := parseSource(t, "fn f(a) {\nif (a) { return 1 } else { b = 2\nreturn b }\n}\nprint(f(0))")
	assert.Equal(t, `fn f(a) {
  if (a) {
    return 1
  } else {
    b = 2,
    return b
  }
},
print(f(0))`, program.String())
}
