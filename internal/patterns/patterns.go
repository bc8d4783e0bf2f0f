// Package patterns implements the stack-pattern matcher (spec component
// C3): matching a MatchIn element against a concrete type while capturing
// generics, and resolving a MatchOut shape back through those captures.
package patterns

import (
	"fmt"

	"github.com/stackjvm/stackc/internal/ast"
	"github.com/stackjvm/stackc/internal/types"
)

// Generics maps a bound generic name to the concrete type it was first seen
// as. A fresh, empty Generics is used per match-then-resolve attempt.
type Generics map[string]types.Type

// MatchAndCapture matches pattern against concrete, binding any Generic
// names it encounters into generics (or checking them against an existing
// binding). It never mutates concrete or pattern.
func MatchAndCapture(pattern ast.MatchIn, concrete types.Type, generics Generics) bool {
	switch p := pattern.(type) {
	case ast.MatchAny:
		return true
	case ast.MatchList:
		l, ok := concrete.(types.List)
		if !ok {
			return false
		}
		return MatchAndCapture(p.Elem, l.Elem, generics)
	case ast.MatchType:
		return p.Type.Equal(concrete)
	case ast.MatchGeneric:
		if bound, ok := generics[p.Name]; ok {
			return bound.Equal(concrete)
		}
		generics[p.Name] = concrete
		return true
	default:
		panic(fmt.Sprintf("patterns: unreachable MatchIn variant %T", pattern))
	}
}

// ErrUnresolved is returned when a MatchOut names a generic that was never
// bound during input matching.
type ErrUnresolved struct{ Name string }

func (e *ErrUnresolved) Error() string {
	return fmt.Sprintf("unresolved generic %q", e.Name)
}

// Resolve turns a result shape into a concrete Type using the generics
// captured by a prior MatchAndCapture pass.
func Resolve(out ast.MatchOut, generics Generics) (types.Type, error) {
	switch o := out.(type) {
	case ast.OutType:
		return o.Type, nil
	case ast.OutList:
		elem, err := Resolve(o.Elem, generics)
		if err != nil {
			return nil, err
		}
		return types.List{Elem: elem}, nil
	case ast.OutGeneric:
		t, ok := generics[o.Name]
		if !ok {
			return nil, &ErrUnresolved{Name: o.Name}
		}
		return t, nil
	default:
		panic(fmt.Sprintf("patterns: unreachable MatchOut variant %T", out))
	}
}
