package analyzer

import (
	"strings"
	"testing"

	"github.com/stackjvm/stackc/internal/ast"
	"github.com/stackjvm/stackc/internal/diagnostics"
	"github.com/stackjvm/stackc/internal/types"
)

func loc() ast.Location { return ast.Location{File: "t.ast.json", Line: 1, Col: 1} }

func node(item ast.Item) *ast.Node { return ast.New(item, loc()) }

func analyzeErr(t *testing.T, nodes []*ast.Node) error {
	t.Helper()
	_, err := New(nil).Analyze(nodes)
	return err
}

func mustAnalyze(t *testing.T, nodes []*ast.Node) *State {
	t.Helper()
	st, err := New(nil).Analyze(nodes)
	if err != nil {
		t.Fatalf("Analyze: unexpected error: %v", err)
	}
	return st
}

func TestAnalyzeEmptyProgram(t *testing.T) {
	st := mustAnalyze(t, nil)
	if len(st.Stack) != 0 {
		t.Errorf("expected empty stack, got %v", st.Stack)
	}
}

func TestAnalyzeRequiresEmptyFinalStack(t *testing.T) {
	err := analyzeErr(t, []*ast.Node{node(ast.PushInt{Value: 1})})
	if err == nil {
		t.Fatalf("expected an error for a program that leaves something on the stack")
	}
	diagErr, ok := err.(*diagnostics.Error)
	if !ok {
		t.Fatalf("expected *diagnostics.Error, got %T", err)
	}
	if diagErr.Kind != diagnostics.KindType {
		t.Errorf("Kind = %v, want KindType", diagErr.Kind)
	}
}

func TestStoreAndLoad(t *testing.T) {
	nodes := []*ast.Node{
		node(ast.Store{Initializer: node(ast.PushInt{Value: 5}), Name: "x"}),
		node(ast.Store{Initializer: node(ast.Load{Name: "x"}), Name: "y"}),
		node(ast.Store{Initializer: node(ast.Load{Name: "y"}), Name: "z"}),
	}
	st := mustAnalyze(t, nodes)
	if st.MaxVarsCount != 3 {
		t.Errorf("MaxVarsCount = %d, want 3", st.MaxVarsCount)
	}
	if v := st.Vars["z"]; v.Index != 2 {
		t.Errorf("z's slot index = %d, want 2", v.Index)
	}
}

func TestStoreRejectsTypeChangeOnRebind(t *testing.T) {
	nodes := []*ast.Node{
		node(ast.Store{Initializer: node(ast.PushInt{Value: 1}), Name: "x"}),
		node(ast.Store{Initializer: node(ast.PushString{Value: "s"}), Name: "x"}),
	}
	err := analyzeErr(t, nodes)
	if err == nil {
		t.Fatalf("expected an error rebinding x to a different type")
	}
}

func TestLoadUnknownVariable(t *testing.T) {
	err := analyzeErr(t, []*ast.Node{node(ast.Load{Name: "nope"})})
	if err == nil {
		t.Fatalf("expected an error loading an unbound variable")
	}
	if !strings.Contains(err.Error(), "unknown variable") {
		t.Errorf("Error() = %q, want mention of unknown variable", err.Error())
	}
}

func TestMaxStackSizeTracksHighWaterMark(t *testing.T) {
	nodes := []*ast.Node{
		node(ast.PushInt{Value: 1}),
		node(ast.PushInt{Value: 2}),
		node(ast.PushInt{Value: 3}),
		node(ast.Store{Name: "a"}),
		node(ast.Store{Name: "b"}),
		node(ast.Store{Name: "c"}),
	}
	st := mustAnalyze(t, nodes)
	if st.MaxStackSize != 3 {
		t.Errorf("MaxStackSize = %d, want 3", st.MaxStackSize)
	}
}

func TestCmpErrAlwaysFails(t *testing.T) {
	err := analyzeErr(t, []*ast.Node{node(ast.CmpErr{Message: "nope"})})
	if err == nil {
		t.Fatalf("expected CmpErr to fail analysis")
	}
	if !strings.Contains(err.Error(), "nope") {
		t.Errorf("Error() = %q, missing message", err.Error())
	}
}

func TestForgetConstValues(t *testing.T) {
	st := NewState()
	st.Push(types.Int{}, types.IntValue(7))
	st.ForgetConstValues()
	if st.Stack[0].Value != nil {
		t.Errorf("expected ForgetConstValues to clear Value, got %v", st.Stack[0].Value)
	}
}

func TestStateCloneIsIndependent(t *testing.T) {
	st := NewState()
	st.Push(types.Int{}, types.IntValue(1))
	st.Vars["x"] = types.LocalVar{Index: 0}

	clone := st.Clone()
	clone.Push(types.String{}, nil)
	clone.Vars["y"] = types.LocalVar{Index: 1}

	if len(st.Stack) != 1 {
		t.Errorf("mutating clone's stack affected the original")
	}
	if _, ok := st.Vars["y"]; ok {
		t.Errorf("mutating clone's vars affected the original")
	}
}
