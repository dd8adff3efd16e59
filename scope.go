package thor

import (
	"sort"
)

// A named symbol table. The global scope has no parent; function call
// scopes use the global scope as their parent, so a function body sees its
// own bindings and the globals but never the locals of its caller.
type Scope struct {
	name   string
	parent *Scope // Optional
	store  map[string]Value
}

func NewScope(name string, parent *Scope) *Scope {
	return &Scope{
		name:   name,
		parent: parent,
		store:  map[string]Value{},
	}
}

func (self *Scope) Name() string {
	return self.name
}

func (self *Scope) Parent() *Scope {
	return self.parent
}

// Outermost scope in the parent chain.
func (self *Scope) Root() *Scope {
	scope := self
	for scope.parent != nil {
		scope = scope.parent
	}
	return scope
}

// Bind a value in this scope, overwriting any previous binding of the same
// name. Parent scopes are never modified.
func (self *Scope) Set(name string, value Value) {
	self.store[name] = value
}

// Returns nil on lookup failure.
func (self *Scope) Get(name string) Value {
	scope := self
	for scope != nil {
		value, ok := scope.store[name]
		if ok {
			return value
		}
		scope = scope.parent
	}
	return nil
}

// Names bound directly in this scope, sorted.
func (self *Scope) Names() []string {
	names := make([]string, 0, len(self.store))
	for name := range self.store {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
