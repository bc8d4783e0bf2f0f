// Package compiler implements the pipeline orchestrator (spec component
// C7): run the analyzer over a program, use its high-water marks to emit
// the .limit directives, then run the code generator to fill in the rest
// of the class body.
package compiler

import (
	"fmt"

	"github.com/stackjvm/stackc/internal/analyzer"
	"github.com/stackjvm/stackc/internal/ast"
	"github.com/stackjvm/stackc/internal/classfile"
	"github.com/stackjvm/stackc/internal/codegen"
)

// Options configures one compilation: the target class's identity and an
// optional trace sink forwarded to the analyzer.
type Options struct {
	Source  string
	Class   string
	Extends string
	Trace   func(string)
}

// Compile analyzes nodes and generates a complete .j source text, or
// returns the first diagnostics.Error encountered.
func Compile(nodes []*ast.Node, opts Options) (string, error) {
	extends := opts.Extends
	if extends == "" {
		extends = classfile.CLASS_OBJECT
	}

	az := analyzer.New(opts.Trace)
	state, err := az.Analyze(nodes)
	if err != nil {
		return "", err
	}

	class := classfile.New(opts.Source, opts.Class, extends)
	class.PushMain(classfile.DIR_STACK_LIMIT).AppendMain(fmt.Sprintf("%d", state.MaxStackSize)).MainEndl()
	// +1 beyond the distinct-variable count: local slot 0 is reserved for
	// the `String[] args` parameter of `main`, which vars never accounts for.
	class.PushMain(classfile.DIR_LOCALS_LIMIT).AppendMain(fmt.Sprintf("%d", state.MaxVarsCount+1)).MainEndl()

	gen := codegen.New(class)
	if err := gen.Generate(nodes); err != nil {
		return "", err
	}

	return class.Assemble(), nil
}
