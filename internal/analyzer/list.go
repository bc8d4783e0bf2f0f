package analyzer

import (
	"github.com/stackjvm/stackc/internal/ast"
	"github.com/stackjvm/stackc/internal/diagnostics"
	"github.com/stackjvm/stackc/internal/types"
)

// itemNewList pushes a fresh, empty list of the declared element type. The
// codegen backing (NEW ArrayList + a reference on top) needs one scratch
// slot beyond the pushed list itself.
func (a *Analyzer) itemNewList(st *State, nl ast.NewList) {
	st.Push(types.List{Elem: nl.Elem}, types.ListValue{})
	st.RequireAdditionalStackSize(1)
}

// itemListLiteral analyzes each child against a private clone of the
// pre-literal state: every child must push exactly one element, of the same
// type as the first child, without otherwise touching the stack. The +4
// scratch requirement mirrors the teacher's list-construction sequence
// (NEW, DUP, INVOKESPECIAL <init>, then the per-element add).
func (a *Analyzer) itemListLiteral(st *State, n *ast.Node, ll ast.ListLiteral) error {
	if len(ll.Children) == 0 {
		return diagnostics.NewTypeErr(diagnostics.PhaseAnalyzer, n.Loc,
			"empty `List` literal has unknown type, use `list<type>`!")
	}

	sub := st.Clone()
	if err := a.node(sub, ll.Children[0]); err != nil {
		return err
	}
	first, err := sub.ExpectAny(n.Loc, "item 0 doesn't result in anything in list literal")
	if err != nil {
		return err
	}
	elemTy := first.Ty
	if !TypesEqual(st.Stack, sub.Stack) {
		return diagnostics.NewTypeErr(diagnostics.PhaseAnalyzer, n.Loc,
			"items in list literal may not alter the stack except pushing their element. (Error in element 0)")
	}
	st.MergeMaxWith(sub)

	for i, child := range ll.Children[1:] {
		if err := a.node(sub, child); err != nil {
			return err
		}
		st.MergeMaxWith(sub)
		if _, err := sub.Expect(child.Loc, elemTy, "expected "+elemTy.String()+" in element of list literal"); err != nil {
			return err
		}
		if !TypesEqual(sub.Stack, st.Stack) {
			return diagnostics.NewTypeErr(diagnostics.PhaseAnalyzer, n.Loc,
				"items in list literal may not alter the stack except pushing their element. (Error in element %d)", i+1)
		}
	}

	st.Push(types.List{Elem: elemTy}, nil)
	n.Annotate(st.Stack, st.Vars)
	st.RequireAdditionalStackSize(4)
	return nil
}
