package codegen

import (
	"github.com/stackjvm/stackc/internal/ast"
	"github.com/stackjvm/stackc/internal/classfile"
	"github.com/stackjvm/stackc/internal/diagnostics"
	"github.com/stackjvm/stackc/internal/types"
)

// itemListLiteral emits NEW ArrayList once, then for each child: DUP the
// list reference, emit the child (leaving its one element on top), box it
// if the list holds Ints, and ArrayList.add it, discarding the boolean
// `add` returns.
func (g *Generator) itemListLiteral(n *ast.Node, ll ast.ListLiteral) error {
	if len(n.Stack) == 0 {
		return diagnostics.InternalErr(n.Loc, "list literal's recorded snapshot is empty")
	}
	top := n.Stack[len(n.Stack)-1]
	listTy, ok := top.Ty.(types.List)
	if !ok {
		return diagnostics.InternalErr(n.Loc, "list literal's recorded snapshot has no list on top")
	}
	_, isIntList := listTy.Elem.(types.Int)

	g.Class.NewList()
	for _, child := range ll.Children {
		g.Class.Dup()
		if err := g.node(child); err != nil {
			return err
		}
		if isIntList {
			g.Class.IntToInteger()
		}
		g.Class.Invoke(classfile.INVOKE_VIRTUAL, "java/util/ArrayList/add", []string{classfile.TYPE_OBJECT}, classfile.TYPE_BOOL)
		g.Class.Pop()
	}
	return nil
}
