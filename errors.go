package thor

import (
	"fmt"
)

// Implemented by every error produced while lexing, parsing, or evaluating a
// program.
type Located interface {
	error
	ErrorLocation() *SourceLocation
}

// Unrecognized character or malformed numeric literal.
type LexError struct {
	Location *SourceLocation // Optional
	why      string
}

func (self LexError) Error() string {
	return self.why
}

func (self LexError) ErrorLocation() *SourceLocation {
	return self.Location
}

// Unexpected token, unmatched delimiter, or trailing input.
type ParseError struct {
	Location *SourceLocation // Optional
	why      string
}

func (self ParseError) Error() string {
	return self.why
}

func (self ParseError) ErrorLocation() *SourceLocation {
	return self.Location
}

// Reference to an unbound identifier.
type NameError struct {
	Location *SourceLocation // Optional
	Name     string
}

func (self NameError) Error() string {
	return fmt.Sprintf("identifier %s is not defined", quote(self.Name))
}

func (self NameError) ErrorLocation() *SourceLocation {
	return self.Location
}

// Operation applied to a value of the wrong type.
type TypeError struct {
	Location *SourceLocation // Optional
	why      string
}

func (self TypeError) Error() string {
	return self.why
}

func (self TypeError) ErrorLocation() *SourceLocation {
	return self.Location
}

type ArityError struct {
	Location *SourceLocation // Optional
	Name     string
	Expected int
	Received int
}

func (self ArityError) Error() string {
	return fmt.Sprintf("function %s expected %d argument(s) but received %d",
		quote(self.Name), self.Expected, self.Received)
}

func (self ArityError) ErrorLocation() *SourceLocation {
	return self.Location
}

type StackOverflowError struct {
	Location *SourceLocation // Optional
	Depth    int
}

func (self StackOverflowError) Error() string {
	return fmt.Sprintf("stack overflow: maximum call depth of %d exceeded", self.Depth)
}

func (self StackOverflowError) ErrorLocation() *SourceLocation {
	return self.Location
}

// Invalid configuration, reported when the configuration is applied rather
// than when a script runs.
type ConfigError struct {
	why string
	err error // Optional
}

func (self ConfigError) Error() string {
	if self.err != nil {
		return self.why + ": " + self.err.Error()
	}
	return self.why
}

func (self ConfigError) Unwrap() error {
	return self.err
}
