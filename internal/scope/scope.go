package scope

import (
	"errors"
	"fmt"
)

var SYMBOL_NOT_FOUND_ON_SCOPE error = errors.New("symbol not found on scope")

// Scope maps names to values within a single function body. There is no
// nesting: a function sees its own parameters and nothing else.
type Scope[V any] struct {
	Nodes map[string]V
}

func New[V any]() *Scope[V] {
	return &Scope[V]{Nodes: map[string]V{}}
}

// Bind associates name with element. A later binding of the same name
// replaces the earlier one.
func (scope *Scope[V]) Bind(name string, element V) {
	scope.Nodes[name] = element
}

func (scope *Scope[V]) Lookup(name string) (V, error) {
	if node, ok := scope.Nodes[name]; ok {
		return node, nil
	}
	var empty V
	return empty, fmt.Errorf("%w: %s", SYMBOL_NOT_FOUND_ON_SCOPE, name)
}

func (scope *Scope[V]) Len() int {
	return len(scope.Nodes)
}

// Reset drops every binding.
func (scope *Scope[V]) Reset() {
	clear(scope.Nodes)
}

func (scope Scope[V]) String() string {
	return fmt.Sprintf("Scope: %v", scope.Nodes)
}
