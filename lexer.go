package thor

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Token Kinds
const (
	// Meta
	TOKEN_EOF = "end-of-file"
	// Identifiers and Literals
	TOKEN_IDENTIFIER = "identifier"
	TOKEN_NUMBER     = "number"
	// Operators
	TOKEN_PLUS   = "+"
	TOKEN_MINUS  = "-"
	TOKEN_STAR   = "*"
	TOKEN_SLASH  = "/"
	TOKEN_CARET  = "^"
	TOKEN_ASSIGN = "="
	// Delimiters
	TOKEN_LPAREN    = "("
	TOKEN_RPAREN    = ")"
	TOKEN_LBRACE    = "{"
	TOKEN_RBRACE    = "}"
	TOKEN_COMMA     = ","
	TOKEN_SEMICOLON = ";"
	// Keywords
	TOKEN_FN     = "fn"
	TOKEN_IF     = "if"
	TOKEN_ELSE   = "else"
	TOKEN_RETURN = "return"
	TOKEN_TRUE   = "true"
	TOKEN_FALSE  = "false"
)

var keywords = map[string]string{
	TOKEN_FN:     TOKEN_FN,
	TOKEN_IF:     TOKEN_IF,
	TOKEN_ELSE:   TOKEN_ELSE,
	TOKEN_RETURN: TOKEN_RETURN,
	TOKEN_TRUE:   TOKEN_TRUE,
	TOKEN_FALSE:  TOKEN_FALSE,
}

var punctuation = map[rune]string{
	'+': TOKEN_PLUS,
	'-': TOKEN_MINUS,
	'*': TOKEN_STAR,
	'/': TOKEN_SLASH,
	'^': TOKEN_CARET,
	'=': TOKEN_ASSIGN,
	'(': TOKEN_LPAREN,
	')': TOKEN_RPAREN,
	'{': TOKEN_LBRACE,
	'}': TOKEN_RBRACE,
	',': TOKEN_COMMA,
	';': TOKEN_SEMICOLON,
}

type Token struct {
	Kind     string
	Literal  string
	Number   float64         // Set for TOKEN_NUMBER.
	Location *SourceLocation // Optional
}

func (self Token) String() string {
	switch self.Kind {
	case TOKEN_IDENTIFIER, TOKEN_NUMBER:
		return fmt.Sprintf("%s(%s)", self.Kind, self.Literal)
	}
	return self.Kind
}

// Render a token sequence for diagnostics, one token per line.
func FormatTokens(tokens []Token) string {
	if len(tokens) == 0 {
		return "[]"
	}
	s := make([]string, len(tokens))
	for i, token := range tokens {
		s[i] = token.String()
	}
	return fmt.Sprintf("[\n  %s\n]", strings.Join(s, ",\n  "))
}

type Lexer struct {
	runes    []rune
	file     string
	line     int
	column   int
	position int
}

func NewLexer(source string, location *SourceLocation) Lexer {
	if location == nil {
		location = &SourceLocation{"<source>", 1, 1}
	}
	line, column := location.Line, location.Column
	if line < 1 {
		line = 1
	}
	if column < 1 {
		column = 1
	}
	return Lexer{
		runes:    []rune(source),
		file:     location.File,
		line:     line,
		column:   column,
		position: 0,
	}
}

// Lex the entire source. The returned sequence always ends with a
// TOKEN_EOF token.
func Lex(source string, location *SourceLocation) ([]Token, error) {
	lexer := NewLexer(source, location)
	tokens := []Token{}
	for {
		token, err := lexer.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
		if token.Kind == TOKEN_EOF {
			return tokens, nil
		}
	}
}

func (self *Lexer) location() *SourceLocation {
	return &SourceLocation{self.file, self.line, self.column}
}

func (self *Lexer) currentRune() rune {
	if self.position >= len(self.runes) {
		return rune(0)
	}
	return self.runes[self.position]
}

func (self *Lexer) isEof() bool {
	return self.position >= len(self.runes)
}

func (self *Lexer) advanceRune() {
	if self.isEof() {
		return
	}
	if self.currentRune() == '\n' {
		self.line += 1
		self.column = 1
	} else {
		self.column += 1
	}
	self.position += 1
}

func (self *Lexer) skipWhitespace() {
	for !self.isEof() && unicode.IsSpace(self.currentRune()) {
		self.advanceRune()
	}
}

func (self *Lexer) skipComment() {
	if self.currentRune() != '#' {
		return
	}
	for !self.isEof() && self.currentRune() != '\n' {
		self.advanceRune()
	}
	self.advanceRune()
}

func (self *Lexer) skipWhiteSpaceAndComments() {
	for !self.isEof() && (unicode.IsSpace(self.currentRune()) || self.currentRune() == '#') {
		self.skipWhitespace()
		self.skipComment()
	}
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func (self *Lexer) lexKeywordOrIdentifier() (Token, error) {
	location := self.location()
	start := self.position
	for !self.isEof() && (isIdentifierStart(self.currentRune()) || unicode.IsDigit(self.currentRune())) {
		self.advanceRune()
	}
	literal := string(self.runes[start:self.position])

	keyword, ok := keywords[literal]
	if ok {
		return Token{
			Kind:     keyword,
			Literal:  literal,
			Location: location,
		}, nil
	}
	return Token{
		Kind:     TOKEN_IDENTIFIER,
		Literal:  literal,
		Location: location,
	}, nil
}

func (self *Lexer) lexNumber() (Token, error) {
	location := self.location()
	start := self.position
	points := 0
	for !self.isEof() && (isDigit(self.currentRune()) || self.currentRune() == '.') {
		if self.currentRune() == '.' {
			points += 1
		}
		self.advanceRune()
		if points > 1 {
			return Token{}, LexError{
				Location: location,
				why:      fmt.Sprintf("malformed number literal %s", quote(string(self.runes[start:self.position]))),
			}
		}
	}
	end := self.position
	for !self.isEof() && (isIdentifierStart(self.currentRune()) || unicode.IsDigit(self.currentRune())) {
		self.advanceRune()
	}
	literal := string(self.runes[start:self.position])

	number, err := strconv.ParseFloat(literal, 64)
	if err != nil || end != self.position {
		return Token{}, LexError{
			Location: location,
			why:      fmt.Sprintf("malformed number literal %s", quote(literal)),
		}
	}
	return Token{
		Kind:     TOKEN_NUMBER,
		Literal:  literal,
		Number:   number,
		Location: location,
	}, nil
}

func (self *Lexer) NextToken() (Token, error) {
	self.skipWhiteSpaceAndComments()
	if self.isEof() {
		return Token{
			Kind:     TOKEN_EOF,
			Literal:  "",
			Location: self.location(),
		}, nil
	}

	// Literals, Identifiers, and Keywords
	if isIdentifierStart(self.currentRune()) {
		return self.lexKeywordOrIdentifier()
	}
	if isDigit(self.currentRune()) || self.currentRune() == '.' {
		return self.lexNumber()
	}

	// Operators and Delimiters
	if kind, ok := punctuation[self.currentRune()]; ok {
		location := self.location()
		self.advanceRune()
		return Token{
			Kind:     kind,
			Literal:  kind,
			Location: location,
		}, nil
	}

	return Token{}, LexError{
		Location: self.location(),
		why:      fmt.Sprintf("unknown token %s", quote(string([]rune{self.currentRune()}))),
	}
}
