package astjson

import (
	"testing"

	"github.com/stackjvm/stackc/internal/ast"
	"github.com/stackjvm/stackc/internal/types"
)

func loc() ast.Location { return ast.Location{File: "t.ast.json", Line: 3, Col: 1} }

func buildProgram() []*ast.Node {
	return []*ast.Node{
		ast.New(ast.PushInt{Value: 42}, loc()),
		ast.New(ast.Store{
			Initializer: ast.New(ast.ListLiteral{Children: []*ast.Node{
				ast.New(ast.PushString{Value: "a"}, loc()),
				ast.New(ast.PushString{Value: "b"}, loc()),
			}}, loc()),
			Name: "xs",
		}, loc()),
		ast.New(ast.If{
			Head: ast.New(ast.PushInt{Value: 1}, loc()),
			Body: ast.New(ast.Block{}, loc()),
			Else: nil,
		}, loc()),
		ast.New(ast.Jasmin{
			Name:       "add",
			ExtraStack: 1,
			Input:      []ast.MatchIn{ast.MatchGeneric{Name: "t"}, ast.MatchList{Elem: ast.MatchType{Type: types.Int{}}}},
			Output:     []ast.MatchOut{ast.OutGeneric{Name: "t"}},
			Body:       "iadd",
		}, loc()),
		ast.New(ast.TypeSwitch{
			ChosenIndex: -1,
			Arms: []ast.TypeSwitchArm{
				{Pattern: []ast.MatchIn{ast.MatchAny{}}, Body: ast.New(ast.Block{}, loc())},
			},
		}, loc()),
		ast.New(ast.CmpErr{Message: "boom"}, loc()),
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := buildProgram()

	data, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode: unexpected error: %v", err)
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: unexpected error: %v", err)
	}

	reencoded, err := Encode(decoded)
	if err != nil {
		t.Fatalf("re-Encode: unexpected error: %v", err)
	}

	if string(data) != string(reencoded) {
		t.Errorf("round trip is not byte-identical:\nfirst:  %s\nsecond: %s", data, reencoded)
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	a, err := Encode(buildProgram())
	if err != nil {
		t.Fatalf("Encode: unexpected error: %v", err)
	}
	b, err := Encode(buildProgram())
	if err != nil {
		t.Fatalf("Encode: unexpected error: %v", err)
	}
	if string(a) != string(b) {
		t.Errorf("Encode of structurally identical programs produced different bytes")
	}
}

func TestDecodeRejectsUnknownKind(t *testing.T) {
	_, err := Decode([]byte(`[{"kind":"nonsense"}]`))
	if err == nil {
		t.Fatalf("expected an error decoding an unknown node kind")
	}
}

func TestDecodeListLiteralAndTypeValues(t *testing.T) {
	data := []byte(`[
		{"kind":"newList","elem":{"kind":"list","elem":{"kind":"object","name":"Foo"}}}
	]`)
	nodes, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: unexpected error: %v", err)
	}
	nl, ok := nodes[0].Item.(ast.NewList)
	if !ok {
		t.Fatalf("decoded item is %T, want ast.NewList", nodes[0].Item)
	}
	want := types.List{Elem: types.Object{Name: "Foo"}}
	if !nl.Elem.Equal(want) {
		t.Errorf("NewList.Elem = %v, want %v", nl.Elem, want)
	}
}
