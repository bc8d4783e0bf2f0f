package ast

import (
	"testing"

	"github.com/stackjvm/stackc/internal/types"
)

func TestLocationString(t *testing.T) {
	if got := (Location{Line: 3, Col: 7}).String(); got != "3:7" {
		t.Errorf("Location.String() without file = %q, want %q", got, "3:7")
	}
	if got := (Location{File: "prog.ast.json", Line: 3, Col: 7}).String(); got != "prog.ast.json:3:7" {
		t.Errorf("Location.String() with file = %q, want %q", got, "prog.ast.json:3:7")
	}
}

func TestAnnotateClonesSnapshot(t *testing.T) {
	n := New(PushInt{Value: 1}, Location{Line: 1})

	stack := []types.StackElement{{Ty: types.Int{}, Value: types.IntValue(1)}}
	vars := map[string]types.LocalVar{"x": {Index: 0, Elem: types.StackElement{Ty: types.Int{}}}}

	n.Annotate(stack, vars)
	if !n.Analyzed {
		t.Fatalf("expected Analyzed to be true after Annotate")
	}

	// Mutating the caller's slices/maps afterward must not affect the
	// recorded snapshot.
	stack[0].Value = types.IntValue(99)
	vars["y"] = types.LocalVar{Index: 1}

	if n.Stack[0].Value != types.IntValue(1) {
		t.Errorf("Node.Stack was not independently cloned")
	}
	if _, ok := n.Vars["y"]; ok {
		t.Errorf("Node.Vars was not independently cloned")
	}
}

func TestShortSpelling(t *testing.T) {
	cases := []struct {
		item Item
		want string
	}{
		{PushInt{Value: 42}, "push(42)"},
		{PushString{Value: "hi"}, `push("hi")`},
		{Store{Name: "x"}, "store(x)"},
		{Load{Name: "x"}, "x"},
		{If{}, "if"},
		{Switch{}, "switch"},
		{While{}, "while"},
		{For{}, "for"},
		{Block{}, "block"},
		{TypeSwitch{}, "typeswitch"},
		{CmpErr{}, "cmperr"},
	}
	for _, c := range cases {
		if got := c.item.ShortSpelling(); got != c.want {
			t.Errorf("%T.ShortSpelling() = %q, want %q", c.item, got, c.want)
		}
	}
}

func TestMatchInOutStringers(t *testing.T) {
	if got := (MatchGeneric{Name: "t"}).String(); got != "'t" {
		t.Errorf("MatchGeneric.String() = %q, want %q", got, "'t")
	}
	if got := (MatchList{Elem: MatchAny{}}).String(); got != "list[any]" {
		t.Errorf("MatchList.String() = %q, want %q", got, "list[any]")
	}
	if got := (OutGeneric{Name: "t"}).String(); got != "'t" {
		t.Errorf("OutGeneric.String() = %q, want %q", got, "'t")
	}
}
