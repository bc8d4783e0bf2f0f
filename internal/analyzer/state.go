// Package analyzer implements the abstract analyzer state (spec component
// C2) and the per-node stack-effect rules (spec component C4): a static
// simulation of the operand stack and local-variable environment that
// computes max_stack_size / max_vars_count and rejects ill-typed programs
// before any code is generated.
package analyzer

import (
	"github.com/stackjvm/stackc/internal/ast"
	"github.com/stackjvm/stackc/internal/diagnostics"
	"github.com/stackjvm/stackc/internal/types"
)

// State is the abstract machine the analyzer threads through a program:
// the simulated operand stack, the named-local environment, and the two
// high-water marks the orchestrator (C7) needs for the .limit directives.
type State struct {
	Stack        []types.StackElement
	Vars         map[string]types.LocalVar
	MaxStackSize int
	MaxVarsCount int
}

// NewState returns an empty initial state.
func NewState() *State {
	return &State{Vars: make(map[string]types.LocalVar)}
}

// Clone deep-copies the stack and var environment so a construct (If, Switch,
// loop bodies) can explore a branch without disturbing the caller's state.
func (s *State) Clone() *State {
	stack := make([]types.StackElement, len(s.Stack))
	copy(stack, s.Stack)
	vars := make(map[string]types.LocalVar, len(s.Vars))
	for k, v := range s.Vars {
		vars[k] = v
	}
	return &State{Stack: stack, Vars: vars, MaxStackSize: s.MaxStackSize, MaxVarsCount: s.MaxVarsCount}
}

// Types projects the stack to its element types, bottom to top.
func (s *State) Types() []types.Type {
	out := make([]types.Type, len(s.Stack))
	for i, e := range s.Stack {
		out[i] = e.Ty
	}
	return out
}

// TypesEqual reports whether two stacks have the same length and pairwise
// equal types (values ignored), the join-point check branches and loops use.
func TypesEqual(a, b []types.StackElement) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Push appends an element and lifts MaxStackSize if a new high was reached.
func (s *State) Push(ty types.Type, value types.Value) {
	s.Stack = append(s.Stack, types.StackElement{Ty: ty, Value: value})
	if len(s.Stack) > s.MaxStackSize {
		s.MaxStackSize = len(s.Stack)
	}
}

// Pop removes and returns the top element, or false if the stack is empty.
func (s *State) Pop() (types.StackElement, bool) {
	if len(s.Stack) == 0 {
		return types.StackElement{}, false
	}
	top := s.Stack[len(s.Stack)-1]
	s.Stack = s.Stack[:len(s.Stack)-1]
	return top, true
}

// ExpectAny pops whatever is on top, failing only on an empty stack.
func (s *State) ExpectAny(loc ast.Location, reason string) (types.StackElement, error) {
	e, ok := s.Pop()
	if !ok {
		return types.StackElement{}, diagnostics.NewTypeErr(diagnostics.PhaseAnalyzer, loc, "%s, found an empty stack!", reason)
	}
	return e, nil
}

// Expect pops the top and requires it to equal ty.
func (s *State) Expect(loc ast.Location, ty types.Type, reason string) (types.StackElement, error) {
	e, ok := s.Pop()
	if !ok {
		return types.StackElement{}, diagnostics.NewTypeErr(diagnostics.PhaseAnalyzer, loc, "%s, found an empty stack!", reason)
	}
	if !e.Ty.Equal(ty) {
		return types.StackElement{}, diagnostics.NewTypeErr(diagnostics.PhaseAnalyzer, loc, "%s, found %s!", reason, e.Ty)
	}
	return e, nil
}

// ExpectList pops the top and requires it to be a List, returning its
// element type.
func (s *State) ExpectList(loc ast.Location, reason string) (types.StackElement, types.Type, error) {
	e, ok := s.Pop()
	if !ok {
		return types.StackElement{}, nil, diagnostics.NewTypeErr(diagnostics.PhaseAnalyzer, loc, "%s, found an empty stack!", reason)
	}
	l, ok := e.Ty.(types.List)
	if !ok {
		return types.StackElement{}, nil, diagnostics.NewTypeErr(diagnostics.PhaseAnalyzer, loc, "%s, found %s!", reason, e.Ty)
	}
	return e, l.Elem, nil
}

// RequireAdditionalStackSize lifts MaxStackSize to account for n scratch
// slots used transiently (e.g. a Jasmin fragment's ExtraStack) without
// actually pushing durable elements.
func (s *State) RequireAdditionalStackSize(n int) {
	if need := len(s.Stack) + n; need > s.MaxStackSize {
		s.MaxStackSize = need
	}
}

// MergeMaxWith folds another state's high-water marks into this one. Used
// whenever a construct explores multiple paths (If/Else, Switch arms) on
// cloned states and must report the true maximum across all of them.
func (s *State) MergeMaxWith(other *State) {
	if other.MaxStackSize > s.MaxStackSize {
		s.MaxStackSize = other.MaxStackSize
	}
	if other.MaxVarsCount > s.MaxVarsCount {
		s.MaxVarsCount = other.MaxVarsCount
	}
}

// ForgetConstValues erases tracked constant values from every stack element,
// keeping only types. Used at branch and loop join points, where a value
// known on one path cannot be assumed known on another.
func (s *State) ForgetConstValues() {
	for i := range s.Stack {
		s.Stack[i].Value = nil
	}
}
