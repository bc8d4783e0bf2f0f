package analyzer

import (
	"testing"

	"github.com/stackjvm/stackc/internal/ast"
	"github.com/stackjvm/stackc/internal/types"
)

func TestNewListPushesEmptyList(t *testing.T) {
	n := node(ast.NewList{Elem: types.Int{}})
	program := []*ast.Node{n, node(ast.Store{Name: "xs"})}
	st := mustAnalyze(t, program)
	got := st.Vars["xs"].Elem.Ty
	want := types.List{Elem: types.Int{}}
	if !got.Equal(want) {
		t.Errorf("xs has type %v, want %v", got, want)
	}
}

func TestEmptyListLiteralRejected(t *testing.T) {
	err := analyzeErr(t, []*ast.Node{node(ast.ListLiteral{})})
	if err == nil {
		t.Fatalf("expected an error for an empty list literal")
	}
}

func TestListLiteralRequiresCommonElementType(t *testing.T) {
	ll := node(ast.ListLiteral{Children: []*ast.Node{
		node(ast.PushInt{Value: 1}),
		node(ast.PushString{Value: "mismatch"}),
	}})
	if err := analyzeErr(t, []*ast.Node{ll, node(ast.Store{Name: "xs"})}); err == nil {
		t.Fatalf("expected an error for a list literal with mixed element types")
	}
}

func TestListLiteralAnnotatesElementType(t *testing.T) {
	ll := node(ast.ListLiteral{Children: []*ast.Node{
		node(ast.PushInt{Value: 1}),
		node(ast.PushInt{Value: 2}),
	}})
	mustAnalyze(t, []*ast.Node{ll, node(ast.Store{Name: "xs"})})

	if len(ll.Stack) == 0 {
		t.Fatalf("expected the list literal node to carry a post-push stack snapshot")
	}
	top := ll.Stack[len(ll.Stack)-1]
	listTy, ok := top.Ty.(types.List)
	if !ok {
		t.Fatalf("top of recorded stack is %T, want types.List", top.Ty)
	}
	if !listTy.Elem.Equal(types.Int{}) {
		t.Errorf("list literal's recorded element type is %v, want int", listTy.Elem)
	}
}
