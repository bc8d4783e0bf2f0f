// Package diagnostics implements the two error kinds spec.md §6/§7 names —
// TypeErr and CompilerErr — both carrying the source Location that produced
// them. The shape (Phase-tagged, Location-carrying, formatted Error())
// mirrors the sibling Funxy snapshot's internal/diagnostics package.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/stackjvm/stackc/internal/ast"
	"github.com/stackjvm/stackc/internal/types"
)

// Phase identifies which pipeline stage produced a diagnostic.
type Phase string

const (
	PhaseAnalyzer Phase = "analyzer"
	PhaseCodegen  Phase = "codegen"
)

// Kind distinguishes the two error kinds spec.md §7 names.
type Kind string

const (
	KindType     Kind = "type"
	KindCompiler Kind = "compiler"
)

// Error is the single diagnostic type for both TypeErr and CompilerErr;
// Kind tells them apart. Every diagnostic carries the source Location
// suitable for caret-pointing in a driver (spec.md §6).
type Error struct {
	Kind    Kind
	Phase   Phase
	Message string
	Loc     ast.Location
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: [%s] %s error: %s", e.Loc, e.Phase, e.Kind, e.Message)
}

// NewTypeErr builds a TypeErr at loc with a formatted message.
func NewTypeErr(phase Phase, loc ast.Location, format string, args ...interface{}) *Error {
	return &Error{Kind: KindType, Phase: phase, Loc: loc, Message: fmt.Sprintf(format, args...)}
}

// NewCompilerErr builds a CompilerErr at loc with a formatted message.
func NewCompilerErr(phase Phase, loc ast.Location, format string, args ...interface{}) *Error {
	return &Error{Kind: KindCompiler, Phase: phase, Loc: loc, Message: fmt.Sprintf(format, args...)}
}

// InternalErr marks a structural impossibility (e.g. generating an
// unanalyzed node) rather than a user-facing stack-effect violation.
func InternalErr(loc ast.Location, message string) *Error {
	return NewCompilerErr(PhaseCodegen, loc, "internal error: %s", message)
}

// FormatStack renders a stack top-to-bottom as "[elem, elem, ...]", with
// known constant values inlined (e.g. "int(3)" instead of bare "int"),
// following original_source's Debug impl for StackElement.
func FormatStack(stack []types.StackElement) string {
	parts := make([]string, len(stack))
	for i, e := range stack {
		out := len(stack) - 1 - i
		if e.Value != nil {
			parts[out] = fmt.Sprintf("%s(%s)", e.Ty, e.Value)
		} else {
			parts[out] = e.Ty.String()
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
