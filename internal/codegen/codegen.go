// Package codegen implements the Jasmin code generator (spec component
// C6): walking an analyzed AST and emitting instructions into a
// classfile.ClassWriter, using each node's recorded analyzer snapshot to
// decide opcodes and descriptors.
package codegen

import (
	"fmt"

	"github.com/stackjvm/stackc/internal/ast"
	"github.com/stackjvm/stackc/internal/classfile"
	"github.com/stackjvm/stackc/internal/diagnostics"
	"github.com/stackjvm/stackc/internal/types"
)

// Generator walks an analyzed program and writes its main method into a
// ClassWriter. Unlike the source implementation, which derives jump labels
// from the current length of the emitted buffer, Generator keeps an
// explicit monotonic counter — the Design Notes section of this project's
// specification calls out buffer-length-derived labels as fragile (a label
// computed before and after emitting a zero-length fragment collides) and
// asks for a counter instead.
type Generator struct {
	Class   *classfile.ClassWriter
	nextID  int
}

// New returns a Generator that writes into class.
func New(class *classfile.ClassWriter) *Generator {
	return &Generator{Class: class}
}

// label returns a fresh, never-repeated label suffix.
func (g *Generator) label() int {
	g.nextID++
	return g.nextID
}

// Generate emits every node in order into the ClassWriter's main method.
func (g *Generator) Generate(nodes []*ast.Node) error {
	for _, n := range nodes {
		if err := g.node(n); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) node(n *ast.Node) error {
	if !n.Analyzed {
		return diagnostics.InternalErr(n.Loc, "node has not been analyzed yet")
	}
	switch item := n.Item.(type) {
	case ast.PushInt:
		g.Class.PushInt(item.Value)
	case ast.PushString:
		g.Class.PushString(item.Value)
	case ast.NewList:
		g.Class.NewList()
	case ast.ListLiteral:
		return g.itemListLiteral(n, item)
	case ast.If:
		return g.itemIf(n, item)
	case ast.Switch:
		return g.itemSwitch(n, item)
	case ast.While:
		return g.itemWhile(n, item)
	case ast.For:
		return g.itemFor(n, item)
	case ast.Block:
		for _, c := range item.Children {
			if err := g.node(c); err != nil {
				return err
			}
		}
	case ast.Store:
		return g.itemStore(n, item)
	case ast.Load:
		return g.itemLoad(n, item)
	case ast.Jasmin:
		g.Class.PushMain(item.Body)
		g.Class.MainEndl()
	case ast.TypeSwitch:
		return g.itemTypeSwitch(n, item)
	case ast.CmpErr:
		return diagnostics.InternalErr(n.Loc, "CmpErr node reached code generation; the analyzer should have rejected it")
	default:
		return diagnostics.InternalErr(n.Loc, fmt.Sprintf("unhandled ast.Item %T in codegen", item))
	}
	return nil
}

func (g *Generator) itemStore(n *ast.Node, s ast.Store) error {
	if s.Initializer != nil {
		if err := g.node(s.Initializer); err != nil {
			return err
		}
	}
	g.Class.LineDirective(n.Loc.Line)
	v, ok := n.Vars[s.Name]
	if !ok {
		return diagnostics.InternalErr(n.Loc, "store to undeclared variable "+s.Name)
	}
	op := classfile.A_STORE
	if _, isInt := v.Elem.Ty.(types.Int); isInt {
		op = classfile.I_STORE
	}
	g.Class.PushStmt(op, fmt.Sprintf("%d", v.Index))
	return nil
}

func (g *Generator) itemLoad(n *ast.Node, l ast.Load) error {
	g.Class.LineDirective(n.Loc.Line)
	v, ok := n.Vars[l.Name]
	if !ok {
		return diagnostics.InternalErr(n.Loc, "load of undeclared variable "+l.Name)
	}
	op := classfile.A_LOAD
	if _, isInt := v.Elem.Ty.(types.Int); isInt {
		op = classfile.I_LOAD
	}
	g.Class.PushStmt(op, fmt.Sprintf("%d", v.Index))
	return nil
}

// ArgDescriptors returns the target-descriptor encoding for the top nargs
// elements of node's pre-node stack snapshot, most-recently-pushed first —
// the general polymorphic invocation-descriptor assembly rule a Jasmin
// fragment invoking a method with stack-dependent argument types would use.
// The ArrayList call sites this generator itself emits all know their
// descriptors statically (via the generic-Object and explicit-types forms)
// and don't need it, but it's kept as the documented building block for
// inline Jasmin bodies that do.
func ArgDescriptors(node *ast.Node, nargs int) []string {
	stack := append([]types.StackElement(nil), node.Stack...)
	out := make([]string, 0, nargs)
	for i := 0; i < nargs; i++ {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, top.Ty.Descriptor())
	}
	return out
}
