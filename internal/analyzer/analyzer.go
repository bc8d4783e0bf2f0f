package analyzer

import (
	"github.com/stackjvm/stackc/internal/ast"
	"github.com/stackjvm/stackc/internal/diagnostics"
	"github.com/stackjvm/stackc/internal/types"
)

// Analyzer runs the static stack-effect pass (spec component C4) over a
// program's top-level nodes, annotating every Node in place and computing
// the final State's high-water marks.
type Analyzer struct {
	// Trace, if non-nil, receives one line per node after it is analyzed,
	// mirroring the teacher's --debug stack dump.
	Trace func(string)
}

// New returns an Analyzer. trace may be nil to disable tracing.
func New(trace func(string)) *Analyzer {
	return &Analyzer{Trace: trace}
}

// Analyze walks nodes in order over a fresh State and requires the stack to
// be empty once every node has been analyzed.
func (a *Analyzer) Analyze(nodes []*ast.Node) (*State, error) {
	st := NewState()
	for _, n := range nodes {
		if err := a.node(st, n); err != nil {
			return nil, err
		}
	}
	if len(st.Stack) != 0 {
		loc := ast.Location{}
		if len(nodes) > 0 {
			loc = nodes[len(nodes)-1].Loc
		}
		return nil, diagnostics.NewTypeErr(diagnostics.PhaseAnalyzer, loc,
			"stack is not empty when program finishes but has %s!", diagnostics.FormatStack(st.Stack))
	}
	return st, nil
}

// node annotates n with the pre-node snapshot, dispatches on its Item, and
// emits a trace line afterward if tracing is enabled.
func (a *Analyzer) node(st *State, n *ast.Node) error {
	n.Annotate(st.Stack, st.Vars)

	var err error
	switch item := n.Item.(type) {
	case ast.PushInt:
		st.Push(types.Int{}, types.IntValue(item.Value))
	case ast.PushString:
		st.Push(types.String{}, types.StringValue(item.Value))
	case ast.NewList:
		a.itemNewList(st, item)
	case ast.ListLiteral:
		err = a.itemListLiteral(st, n, item)
	case ast.If:
		err = a.itemIf(st, n, item)
	case ast.Switch:
		err = a.itemSwitch(st, n, item)
	case ast.While:
		err = a.itemWhile(st, n, item)
	case ast.For:
		err = a.itemFor(st, n, item)
	case ast.Block:
		err = a.itemBlock(st, item)
	case ast.Store:
		err = a.itemStore(st, n, item)
	case ast.Load:
		err = a.itemLoad(st, n, item)
	case ast.Jasmin:
		err = a.itemJasmin(st, n, item)
	case ast.TypeSwitch:
		err = a.itemTypeSwitch(st, n, item)
	case ast.CmpErr:
		err = diagnostics.NewCompilerErr(diagnostics.PhaseAnalyzer, n.Loc,
			"%s\n\tstack: %s", item.Message, diagnostics.FormatStack(st.Stack))
	default:
		err = diagnostics.InternalErr(n.Loc, "unhandled ast.Item in analyzer")
	}
	if err != nil {
		return err
	}

	if a.Trace != nil {
		a.Trace(n.Item.ShortSpelling() + " at " + n.Loc.String() + ": " + diagnostics.FormatStack(st.Stack))
	}
	return nil
}

func (a *Analyzer) itemBlock(st *State, b ast.Block) error {
	for _, c := range b.Children {
		if err := a.node(st, c); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) itemStore(st *State, n *ast.Node, s ast.Store) error {
	if s.Initializer != nil {
		if err := a.node(st, s.Initializer); err != nil {
			return err
		}
	}
	// Every store consumes a local-variable slot count, even when it
	// rebinds an existing name. Matches the teacher's analyzer.rs.
	st.MaxVarsCount++

	elem, err := st.ExpectAny(n.Loc, "stack is empty when `= "+s.Name+"` is reached")
	if err != nil {
		return err
	}

	if existing, ok := st.Vars[s.Name]; ok {
		if !existing.Elem.Ty.Equal(elem.Ty) {
			return diagnostics.NewTypeErr(diagnostics.PhaseAnalyzer, n.Loc,
				"cannot override type %s of variable %s to %s", existing.Elem.Ty, s.Name, elem.Ty)
		}
		existing.Elem.Value = elem.Value
		st.Vars[s.Name] = existing
	} else {
		st.Vars[s.Name] = types.LocalVar{Index: len(st.Vars), Elem: elem}
	}
	// Re-annotate with the post-bind environment: codegen looks up this
	// node's own name in n.Vars to find the slot it was just assigned,
	// which the pre-node snapshot taken at dispatch doesn't have yet on a
	// first declaration.
	n.Annotate(st.Stack, st.Vars)
	return nil
}

func (a *Analyzer) itemLoad(st *State, n *ast.Node, l ast.Load) error {
	v, ok := st.Vars[l.Name]
	if !ok {
		return diagnostics.NewTypeErr(diagnostics.PhaseAnalyzer, n.Loc, "unknown variable %s", l.Name)
	}
	st.Push(v.Elem.Ty, v.Elem.Value)
	return nil
}
