// Package astjson defines the JSON wire format this compiler accepts in
// place of a parser: a program is an array of node envelopes, each tagged
// with a "kind" discriminator naming one of ast.Item's closed variants.
// This stands in for what an in-scope parser would hand the compiler
// in-process; nothing here is specified by spec.md, which treats the
// parser as out of scope, but something has to produce *ast.Node trees
// for cmd/jasminc and internal/rpcserver to compile.
package astjson

import (
	"encoding/json"
	"fmt"

	"github.com/stackjvm/stackc/internal/ast"
	"github.com/stackjvm/stackc/internal/types"
)

type wireLoc struct {
	File string `json:"file,omitempty"`
	Line int    `json:"line"`
	Col  int    `json:"col"`
}

func (l wireLoc) toAST() ast.Location {
	return ast.Location{File: l.File, Line: l.Line, Col: l.Col}
}

// wireType mirrors types.Type as a tagged union: {"kind":"int"},
// {"kind":"string"}, {"kind":"list","elem":...}, {"kind":"object","name":"..."}.
type wireType struct {
	Kind string    `json:"kind"`
	Elem *wireType `json:"elem,omitempty"`
	Name string    `json:"name,omitempty"`
}

func (t *wireType) toAST() (types.Type, error) {
	if t == nil {
		return nil, fmt.Errorf("astjson: nil type")
	}
	switch t.Kind {
	case "int":
		return types.Int{}, nil
	case "string":
		return types.String{}, nil
	case "list":
		elem, err := t.Elem.toAST()
		if err != nil {
			return nil, err
		}
		return types.List{Elem: elem}, nil
	case "object":
		return types.Object{Name: t.Name}, nil
	default:
		return nil, fmt.Errorf("astjson: unknown type kind %q", t.Kind)
	}
}

func typeToWire(t types.Type) *wireType {
	switch v := t.(type) {
	case types.Int:
		return &wireType{Kind: "int"}
	case types.String:
		return &wireType{Kind: "string"}
	case types.List:
		return &wireType{Kind: "list", Elem: typeToWire(v.Elem)}
	case types.Object:
		return &wireType{Kind: "object", Name: v.Name}
	default:
		panic(fmt.Sprintf("astjson: unhandled types.Type %T", t))
	}
}

// wireMatchIn mirrors ast.MatchIn: {"kind":"any"}, {"kind":"list","elem":...},
// {"kind":"type","type":...}, {"kind":"generic","name":"..."}.
type wireMatchIn struct {
	Kind string       `json:"kind"`
	Elem *wireMatchIn `json:"elem,omitempty"`
	Type *wireType    `json:"type,omitempty"`
	Name string       `json:"name,omitempty"`
}

func (m *wireMatchIn) toAST() (ast.MatchIn, error) {
	if m == nil {
		return nil, fmt.Errorf("astjson: nil match-in")
	}
	switch m.Kind {
	case "any":
		return ast.MatchAny{}, nil
	case "list":
		elem, err := m.Elem.toAST()
		if err != nil {
			return nil, err
		}
		return ast.MatchList{Elem: elem}, nil
	case "type":
		ty, err := m.Type.toAST()
		if err != nil {
			return nil, err
		}
		return ast.MatchType{Type: ty}, nil
	case "generic":
		return ast.MatchGeneric{Name: m.Name}, nil
	default:
		return nil, fmt.Errorf("astjson: unknown match-in kind %q", m.Kind)
	}
}

// wireMatchOut mirrors ast.MatchOut: {"kind":"type","type":...},
// {"kind":"list","elem":...}, {"kind":"generic","name":"..."}.
type wireMatchOut struct {
	Kind string        `json:"kind"`
	Elem *wireMatchOut `json:"elem,omitempty"`
	Type *wireType     `json:"type,omitempty"`
	Name string        `json:"name,omitempty"`
}

func (m *wireMatchOut) toAST() (ast.MatchOut, error) {
	if m == nil {
		return nil, fmt.Errorf("astjson: nil match-out")
	}
	switch m.Kind {
	case "type":
		ty, err := m.Type.toAST()
		if err != nil {
			return nil, err
		}
		return ast.OutType{Type: ty}, nil
	case "list":
		elem, err := m.Elem.toAST()
		if err != nil {
			return nil, err
		}
		return ast.OutList{Elem: elem}, nil
	case "generic":
		return ast.OutGeneric{Name: m.Name}, nil
	default:
		return nil, fmt.Errorf("astjson: unknown match-out kind %q", m.Kind)
	}
}

// wireNode is the envelope for one *ast.Node. Only the fields relevant to
// Kind are populated; the rest are left zero.
type wireNode struct {
	Kind string  `json:"kind"`
	Loc  wireLoc `json:"loc"`

	// PushInt / PushString
	Int int32  `json:"int,omitempty"`
	Str string `json:"str,omitempty"`

	// NewList
	Elem *wireType `json:"elem,omitempty"`

	// ListLiteral / Block
	Children []*wireNode `json:"children,omitempty"`

	// If
	Head *wireNode `json:"head,omitempty"`
	Body *wireNode `json:"body,omitempty"`
	Else *wireNode `json:"else,omitempty"`

	// Switch
	Arms    []wireSwitchArm `json:"arms,omitempty"`
	Default *wireNode       `json:"default,omitempty"`

	// While / For
	Init      *wireNode `json:"init,omitempty"`
	Condition *wireNode `json:"condition,omitempty"`
	Modifier  *wireNode `json:"modifier,omitempty"`

	// Store / Load / Jasmin
	Name        string    `json:"name,omitempty"`
	Initializer *wireNode `json:"initializer,omitempty"`

	// Jasmin
	ExtraStack int             `json:"extraStack,omitempty"`
	Input      []*wireMatchIn  `json:"input,omitempty"`
	Output     []*wireMatchOut `json:"output,omitempty"`
	JasminBody string          `json:"jasminBody,omitempty"`

	// TypeSwitch
	TypeSwitchArms []wireTypeSwitchArm `json:"typeSwitchArms,omitempty"`

	// CmpErr
	Message string `json:"message,omitempty"`
}

type wireSwitchArm struct {
	Label int32     `json:"label"`
	Body  *wireNode `json:"body"`
}

type wireTypeSwitchArm struct {
	Pattern []*wireMatchIn `json:"pattern"`
	Body    *wireNode      `json:"body"`
}

// Decode parses a JSON-encoded program into the *ast.Node trees the
// analyzer and code generator operate on.
func Decode(data []byte) ([]*ast.Node, error) {
	var wire []*wireNode
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("astjson: decoding program: %w", err)
	}
	nodes := make([]*ast.Node, 0, len(wire))
	for _, w := range wire {
		n, err := w.toAST()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (w *wireNode) toAST() (*ast.Node, error) {
	if w == nil {
		return nil, nil
	}
	loc := w.Loc.toAST()

	switch w.Kind {
	case "pushInt":
		return ast.New(ast.PushInt{Value: w.Int}, loc), nil
	case "pushString":
		return ast.New(ast.PushString{Value: w.Str}, loc), nil
	case "newList":
		elem, err := w.Elem.toAST()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.NewList{Elem: elem}, loc), nil
	case "listLiteral":
		children, err := nodesToAST(w.Children)
		if err != nil {
			return nil, err
		}
		return ast.New(ast.ListLiteral{Children: children}, loc), nil
	case "block":
		children, err := nodesToAST(w.Children)
		if err != nil {
			return nil, err
		}
		return ast.New(ast.Block{Children: children}, loc), nil
	case "if":
		head, err := w.Head.toAST()
		if err != nil {
			return nil, err
		}
		body, err := w.Body.toAST()
		if err != nil {
			return nil, err
		}
		elseNode, err := w.Else.toAST()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.If{Head: head, Body: body, Else: elseNode}, loc), nil
	case "switch":
		arms := make([]ast.SwitchArm, 0, len(w.Arms))
		for _, a := range w.Arms {
			body, err := a.Body.toAST()
			if err != nil {
				return nil, err
			}
			arms = append(arms, ast.SwitchArm{Label: a.Label, Body: body})
		}
		def, err := w.Default.toAST()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.Switch{Arms: arms, Default: def}, loc), nil
	case "while":
		head, err := w.Head.toAST()
		if err != nil {
			return nil, err
		}
		body, err := w.Body.toAST()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.While{Head: head, Body: body}, loc), nil
	case "for":
		init, err := w.Init.toAST()
		if err != nil {
			return nil, err
		}
		cond, err := w.Condition.toAST()
		if err != nil {
			return nil, err
		}
		mod, err := w.Modifier.toAST()
		if err != nil {
			return nil, err
		}
		body, err := w.Body.toAST()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.For{Init: init, Condition: cond, Modifier: mod, Body: body}, loc), nil
	case "store":
		init, err := w.Initializer.toAST()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.Store{Initializer: init, Name: w.Name}, loc), nil
	case "load":
		return ast.New(ast.Load{Name: w.Name}, loc), nil
	case "jasmin":
		input := make([]ast.MatchIn, 0, len(w.Input))
		for _, i := range w.Input {
			m, err := i.toAST()
			if err != nil {
				return nil, err
			}
			input = append(input, m)
		}
		output := make([]ast.MatchOut, 0, len(w.Output))
		for _, o := range w.Output {
			m, err := o.toAST()
			if err != nil {
				return nil, err
			}
			output = append(output, m)
		}
		return ast.New(ast.Jasmin{Name: w.Name, ExtraStack: w.ExtraStack, Input: input, Output: output, Body: w.JasminBody}, loc), nil
	case "typeSwitch":
		arms := make([]ast.TypeSwitchArm, 0, len(w.TypeSwitchArms))
		for _, a := range w.TypeSwitchArms {
			pattern := make([]ast.MatchIn, 0, len(a.Pattern))
			for _, p := range a.Pattern {
				m, err := p.toAST()
				if err != nil {
					return nil, err
				}
				pattern = append(pattern, m)
			}
			body, err := a.Body.toAST()
			if err != nil {
				return nil, err
			}
			arms = append(arms, ast.TypeSwitchArm{Pattern: pattern, Body: body})
		}
		return ast.New(ast.TypeSwitch{Arms: arms, ChosenIndex: -1}, loc), nil
	case "cmpErr":
		return ast.New(ast.CmpErr{Message: w.Message}, loc), nil
	default:
		return nil, fmt.Errorf("astjson: unknown node kind %q", w.Kind)
	}
}

func nodesToAST(ws []*wireNode) ([]*ast.Node, error) {
	out := make([]*ast.Node, 0, len(ws))
	for _, w := range ws {
		n, err := w.toAST()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// Encode renders nodes back to the same wire format Decode reads, with
// keys emitted in a fixed field order (Go's encoding/json preserves
// struct field order), so two structurally identical programs always
// produce byte-identical output. internal/cache hashes this output as its
// cache key.
func Encode(nodes []*ast.Node) ([]byte, error) {
	wire := make([]*wireNode, 0, len(nodes))
	for _, n := range nodes {
		wire = append(wire, nodeToWire(n))
	}
	return json.Marshal(wire)
}

func nodeToWire(n *ast.Node) *wireNode {
	if n == nil {
		return nil
	}
	w := &wireNode{Loc: wireLoc{File: n.Loc.File, Line: n.Loc.Line, Col: n.Loc.Col}}

	switch item := n.Item.(type) {
	case ast.PushInt:
		w.Kind, w.Int = "pushInt", item.Value
	case ast.PushString:
		w.Kind, w.Str = "pushString", item.Value
	case ast.NewList:
		w.Kind, w.Elem = "newList", typeToWire(item.Elem)
	case ast.ListLiteral:
		w.Kind, w.Children = "listLiteral", nodesToWire(item.Children)
	case ast.Block:
		w.Kind, w.Children = "block", nodesToWire(item.Children)
	case ast.If:
		w.Kind, w.Head, w.Body, w.Else = "if", nodeToWire(item.Head), nodeToWire(item.Body), nodeToWire(item.Else)
	case ast.Switch:
		w.Kind = "switch"
		for _, a := range item.Arms {
			w.Arms = append(w.Arms, wireSwitchArm{Label: a.Label, Body: nodeToWire(a.Body)})
		}
		w.Default = nodeToWire(item.Default)
	case ast.While:
		w.Kind, w.Head, w.Body = "while", nodeToWire(item.Head), nodeToWire(item.Body)
	case ast.For:
		w.Kind = "for"
		w.Init, w.Condition, w.Modifier, w.Body = nodeToWire(item.Init), nodeToWire(item.Condition), nodeToWire(item.Modifier), nodeToWire(item.Body)
	case ast.Store:
		w.Kind, w.Initializer, w.Name = "store", nodeToWire(item.Initializer), item.Name
	case ast.Load:
		w.Kind, w.Name = "load", item.Name
	case ast.Jasmin:
		w.Kind = "jasmin"
		w.Name, w.ExtraStack, w.JasminBody = item.Name, item.ExtraStack, item.Body
		for _, i := range item.Input {
			w.Input = append(w.Input, matchInToWire(i))
		}
		for _, o := range item.Output {
			w.Output = append(w.Output, matchOutToWire(o))
		}
	case ast.TypeSwitch:
		w.Kind = "typeSwitch"
		for _, a := range item.Arms {
			wa := wireTypeSwitchArm{Body: nodeToWire(a.Body)}
			for _, p := range a.Pattern {
				wa.Pattern = append(wa.Pattern, matchInToWire(p))
			}
			w.TypeSwitchArms = append(w.TypeSwitchArms, wa)
		}
	case ast.CmpErr:
		w.Kind, w.Message = "cmpErr", item.Message
	default:
		panic(fmt.Sprintf("astjson: unhandled ast.Item %T", item))
	}
	return w
}

func nodesToWire(ns []*ast.Node) []*wireNode {
	out := make([]*wireNode, 0, len(ns))
	for _, n := range ns {
		out = append(out, nodeToWire(n))
	}
	return out
}

func matchInToWire(m ast.MatchIn) *wireMatchIn {
	switch v := m.(type) {
	case ast.MatchAny:
		return &wireMatchIn{Kind: "any"}
	case ast.MatchList:
		return &wireMatchIn{Kind: "list", Elem: matchInToWire(v.Elem)}
	case ast.MatchType:
		return &wireMatchIn{Kind: "type", Type: typeToWire(v.Type)}
	case ast.MatchGeneric:
		return &wireMatchIn{Kind: "generic", Name: v.Name}
	default:
		panic(fmt.Sprintf("astjson: unhandled ast.MatchIn %T", m))
	}
}

func matchOutToWire(m ast.MatchOut) *wireMatchOut {
	switch v := m.(type) {
	case ast.OutType:
		return &wireMatchOut{Kind: "type", Type: typeToWire(v.Type)}
	case ast.OutList:
		return &wireMatchOut{Kind: "list", Elem: matchOutToWire(v.Elem)}
	case ast.OutGeneric:
		return &wireMatchOut{Kind: "generic", Name: v.Name}
	default:
		panic(fmt.Sprintf("astjson: unhandled ast.MatchOut %T", m))
	}
}
