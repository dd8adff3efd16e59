package thor

import (
	"fmt"
)

// Binding power of binary operators. Unary minus binds tighter than all of
// them; `^` is right associative, the rest are left associative.
var binaryPrecedence = map[string]int{
	TOKEN_PLUS:  1,
	TOKEN_MINUS: 1,
	TOKEN_STAR:  2,
	TOKEN_SLASH: 2,
	TOKEN_CARET: 3,
}

type Parser struct {
	tokens       []Token
	position     int
	currentToken Token
}

func NewParser(tokens []Token) Parser {
	self := Parser{
		tokens:   tokens,
		position: -1,
	}
	self.advanceToken()
	return self
}

// Parse a complete program. The token sequence must be consumed up to its
// end-of-file token.
func Parse(tokens []Token) (*StatementsNode, error) {
	parser := NewParser(tokens)
	return parser.ParseProgram()
}

// Token at the provided index, or a synthesized end-of-file token past the
// end of the sequence.
func (self *Parser) tokenAt(index int) Token {
	if index < len(self.tokens) {
		return self.tokens[index]
	}
	var location *SourceLocation
	if len(self.tokens) != 0 {
		location = self.tokens[len(self.tokens)-1].Location
	}
	return Token{TOKEN_EOF, "", 0, location}
}

func (self *Parser) advanceToken() Token {
	current := self.currentToken
	self.position += 1
	self.currentToken = self.tokenAt(self.position)
	return current
}

func (self *Parser) peekToken() Token {
	return self.tokenAt(self.position + 1)
}

func (self *Parser) checkCurrent(kind string) bool {
	return self.currentToken.Kind == kind
}

func (self *Parser) expectCurrent(kind string) (Token, error) {
	current := self.currentToken
	if current.Kind != kind {
		return Token{}, ParseError{
			current.Location,
			fmt.Sprintf("expected %s, found %s", quote(kind), quote(current.String())),
		}
	}
	self.advanceToken()
	return current, nil
}

func (self *Parser) skipSeparators() {
	for self.checkCurrent(TOKEN_COMMA) || self.checkCurrent(TOKEN_SEMICOLON) {
		self.advanceToken()
	}
}

func (self *Parser) ParseProgram() (*StatementsNode, error) {
	location := self.currentToken.Location
	nodes := []Node{}
	for {
		self.skipSeparators()
		if self.checkCurrent(TOKEN_EOF) {
			break
		}
		if self.checkCurrent(TOKEN_RBRACE) {
			return nil, ParseError{
				self.currentToken.Location,
				fmt.Sprintf("unmatched %s", quote(TOKEN_RBRACE)),
			}
		}
		node, err := self.ParseStatement()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return &StatementsNode{location, nodes}, nil
}

func (self *Parser) ParseBlock() (*StatementsNode, error) {
	open, err := self.expectCurrent(TOKEN_LBRACE)
	if err != nil {
		return nil, err
	}
	nodes := []Node{}
	for {
		self.skipSeparators()
		if self.checkCurrent(TOKEN_RBRACE) {
			break
		}
		if self.checkCurrent(TOKEN_EOF) {
			return nil, ParseError{
				self.currentToken.Location,
				fmt.Sprintf("unmatched %s, expected %s before end-of-file", quote(TOKEN_LBRACE), quote(TOKEN_RBRACE)),
			}
		}
		node, err := self.ParseStatement()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	self.advanceToken()
	return &StatementsNode{open.Location, nodes}, nil
}

func (self *Parser) ParseStatement() (Node, error) {
	switch self.currentToken.Kind {
	case TOKEN_FN:
		return self.ParseFuncDef()
	case TOKEN_IF:
		return self.ParseIf()
	case TOKEN_RETURN:
		return self.ParseReturn()
	case TOKEN_IDENTIFIER:
		if self.peekToken().Kind == TOKEN_ASSIGN {
			return self.ParseAssignment()
		}
	}
	return self.ParseExpression()
}

func (self *Parser) ParseAssignment() (Node, error) {
	identifier, err := self.expectCurrent(TOKEN_IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := self.expectCurrent(TOKEN_ASSIGN); err != nil {
		return nil, err
	}
	node, err := self.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &AssignmentNode{identifier.Location, identifier.Literal, node}, nil
}

func (self *Parser) ParseFuncDef() (Node, error) {
	keyword, err := self.expectCurrent(TOKEN_FN)
	if err != nil {
		return nil, err
	}
	name, err := self.expectCurrent(TOKEN_IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := self.expectCurrent(TOKEN_LPAREN); err != nil {
		return nil, err
	}

	argNames := []string{}
	seen := map[string]bool{}
	for !self.checkCurrent(TOKEN_RPAREN) {
		if len(argNames) != 0 {
			if _, err := self.expectCurrent(TOKEN_COMMA); err != nil {
				return nil, err
			}
		}
		arg, err := self.expectCurrent(TOKEN_IDENTIFIER)
		if err != nil {
			return nil, err
		}
		if seen[arg.Literal] {
			return nil, ParseError{
				arg.Location,
				fmt.Sprintf("duplicate parameter %s in function %s", quote(arg.Literal), quote(name.Literal)),
			}
		}
		seen[arg.Literal] = true
		argNames = append(argNames, arg.Literal)
	}
	self.advanceToken()

	body, err := self.ParseBlock()
	if err != nil {
		return nil, err
	}
	return &FuncDefNode{keyword.Location, name.Literal, argNames, body}, nil
}

func (self *Parser) ParseIf() (Node, error) {
	keyword, err := self.expectCurrent(TOKEN_IF)
	if err != nil {
		return nil, err
	}
	if _, err := self.expectCurrent(TOKEN_LPAREN); err != nil {
		return nil, err
	}
	condition, err := self.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := self.expectCurrent(TOKEN_RPAREN); err != nil {
		return nil, err
	}
	body, err := self.ParseBlock()
	if err != nil {
		return nil, err
	}

	if !self.checkCurrent(TOKEN_ELSE) {
		return &IfNode{keyword.Location, condition, body, nil}, nil
	}
	self.advanceToken()

	// Each else is consumed by the innermost if being parsed, so an else
	// always attaches to the nearest preceding if.
	var elseCase Node
	if self.checkCurrent(TOKEN_IF) {
		elseCase, err = self.ParseIf()
	} else {
		elseCase, err = self.ParseBlock()
	}
	if err != nil {
		return nil, err
	}
	return &IfNode{keyword.Location, condition, body, elseCase}, nil
}

func (self *Parser) ParseReturn() (Node, error) {
	keyword, err := self.expectCurrent(TOKEN_RETURN)
	if err != nil {
		return nil, err
	}
	switch self.currentToken.Kind {
	case TOKEN_RBRACE, TOKEN_COMMA, TOKEN_SEMICOLON, TOKEN_EOF:
		return &ReturnNode{keyword.Location, nil}, nil
	}
	node, err := self.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &ReturnNode{keyword.Location, node}, nil
}

func (self *Parser) ParseExpression() (Node, error) {
	return self.parseBinary(1)
}

// Precedence climbing over the binary operator table.
func (self *Parser) parseBinary(minPrecedence int) (Node, error) {
	left, err := self.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		operator := self.currentToken
		precedence, ok := binaryPrecedence[operator.Kind]
		if !ok || precedence < minPrecedence {
			return left, nil
		}
		self.advanceToken()

		next := precedence + 1
		if operator.Kind == TOKEN_CARET {
			next = precedence
		}
		right, err := self.parseBinary(next)
		if err != nil {
			return nil, err
		}
		left = &BinaryOpNode{left.NodeLocation(), left, operator.Kind, right}
	}
}

func (self *Parser) parseUnary() (Node, error) {
	if !self.checkCurrent(TOKEN_MINUS) {
		return self.parsePrimary()
	}
	operator := self.advanceToken()
	node, err := self.parseUnary()
	if err != nil {
		return nil, err
	}
	return &UnaryOpNode{operator.Location, operator.Kind, node}, nil
}

func (self *Parser) parsePrimary() (Node, error) {
	token := self.currentToken
	switch token.Kind {
	case TOKEN_NUMBER:
		self.advanceToken()
		return &NumberNode{token.Location, token.Number}, nil
	case TOKEN_TRUE, TOKEN_FALSE:
		self.advanceToken()
		return &BooleanNode{token.Location, token.Kind == TOKEN_TRUE}, nil
	case TOKEN_IDENTIFIER:
		if self.peekToken().Kind == TOKEN_LPAREN {
			return self.ParseFuncCall()
		}
		self.advanceToken()
		return &IdentifierNode{token.Location, token.Literal}, nil
	case TOKEN_LPAREN:
		self.advanceToken()
		node, err := self.ParseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := self.expectCurrent(TOKEN_RPAREN); err != nil {
			return nil, err
		}
		return node, nil
	}

	return nil, ParseError{
		token.Location,
		fmt.Sprintf("expected expression, found %s", quote(token.String())),
	}
}

func (self *Parser) ParseFuncCall() (Node, error) {
	name, err := self.expectCurrent(TOKEN_IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := self.expectCurrent(TOKEN_LPAREN); err != nil {
		return nil, err
	}
	args := []Node{}
	for !self.checkCurrent(TOKEN_RPAREN) {
		if len(args) != 0 {
			if _, err := self.expectCurrent(TOKEN_COMMA); err != nil {
				return nil, err
			}
		}
		arg, err := self.ParseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	self.advanceToken()
	return &FuncCallNode{name.Location, name.Literal, args}, nil
}
