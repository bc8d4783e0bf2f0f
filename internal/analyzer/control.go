package analyzer

import (
	"sort"

	"github.com/stackjvm/stackc/internal/ast"
	"github.com/stackjvm/stackc/internal/diagnostics"
	"github.com/stackjvm/stackc/internal/types"
)

// itemIf analyzes the optional Head and the condition check on a clone of
// st (so Head's locals never leak into the outer scope), then Body (and
// Else, if present) starting from that same branch point. If and Else must
// alter the stack identically; a bodiless-else If must be stack-neutral.
func (a *Analyzer) itemIf(st *State, n *ast.Node, item ast.If) error {
	sub := st.Clone()
	if item.Head != nil {
		if err := a.node(sub, item.Head); err != nil {
			return err
		}
		n.Annotate(sub.Stack, sub.Vars)
	}
	if _, err := sub.Expect(n.Loc, types.Int{}, "expected Int (implicit boolean) on stack for `If`-condition"); err != nil {
		return err
	}
	st.Stack = cloneElems(sub.Stack)

	if err := a.node(sub, item.Body); err != nil {
		return err
	}

	if item.Else != nil {
		elseSt := st.Clone()
		if err := a.node(elseSt, item.Else); err != nil {
			return err
		}
		if !TypesEqual(sub.Stack, elseSt.Stack) {
			return diagnostics.NewTypeErr(diagnostics.PhaseAnalyzer, n.Loc,
				"`if` and `else` don't alter the stack the same way:\n\t`if` results in %s\n\t`else` results in %s",
				diagnostics.FormatStack(sub.Stack), diagnostics.FormatStack(elseSt.Stack))
		}
		st.MergeMaxWith(elseSt)
	} else if !TypesEqual(sub.Stack, st.Stack) {
		return diagnostics.NewTypeErr(diagnostics.PhaseAnalyzer, n.Loc,
			"`if` alters the stack but has no `else`\n\tstack before `if`: %s\n\tstack after `if`-body: %s",
			diagnostics.FormatStack(st.Stack), diagnostics.FormatStack(sub.Stack))
	}

	st.MergeMaxWith(sub)
	st.Stack = sub.Stack
	st.ForgetConstValues()
	return nil
}

// itemSwitch pops the Int selector, analyzes Default and every arm from the
// same post-pop snapshot, and requires every arm to alter the stack the
// same way as Default. Arms are sorted by Label first for deterministic
// codegen ordering. Each arm's high-water marks are folded back into st —
// the teacher's analyzer.rs only carries Default's marks forward here,
// silently dropping a deeper arm's stack/locals usage; this rewrite merges
// every arm explicitly to keep max_stack_size/max_vars_count a true upper
// bound.
func (a *Analyzer) itemSwitch(st *State, n *ast.Node, item ast.Switch) error {
	sort.SliceStable(item.Arms, func(i, j int) bool { return item.Arms[i].Label < item.Arms[j].Label })
	n.Item = item

	if _, err := st.Expect(n.Loc, types.Int{}, "`switch` requires an `Int` on stack!"); err != nil {
		return err
	}
	stackBefore := cloneElems(st.Stack)
	varsBefore := cloneVars(st.Vars)

	def := st.Clone()
	if err := a.node(def, item.Default); err != nil {
		return err
	}
	expected := def.Clone()

	for _, arm := range item.Arms {
		armSt := &State{Stack: cloneElems(stackBefore), Vars: cloneVars(varsBefore), MaxStackSize: st.MaxStackSize, MaxVarsCount: st.MaxVarsCount}
		if err := a.node(armSt, arm.Body); err != nil {
			return err
		}
		if !TypesEqual(armSt.Stack, expected.Stack) {
			return diagnostics.NewTypeErr(diagnostics.PhaseAnalyzer, n.Loc,
				"`switch`-arms don't alter the stack the same way\n\tdefault branch results in %s\n\tarm at %s results in %s",
				diagnostics.FormatStack(expected.Stack), arm.Body.Loc, diagnostics.FormatStack(armSt.Stack))
		}
		expected.MergeMaxWith(armSt)
	}

	expected.Vars = varsBefore
	*st = *expected
	return nil
}

// itemWhile analyzes Head (if present) and Body directly on st, re-running
// Head a second time afterward to confirm the post-body state matches what
// the next iteration would see. This re-analysis (and not resetting Vars
// before the second Head pass) is inherited unaltered from the source
// implementation.
func (a *Analyzer) itemWhile(st *State, n *ast.Node, item ast.While) error {
	savedVars := cloneVars(st.Vars)

	if item.Head != nil {
		if err := a.node(st, item.Head); err != nil {
			return err
		}
		n.Annotate(st.Stack, st.Vars)
	}
	if _, err := st.Expect(n.Loc, types.Int{}, "expected Int (implicit boolean) on stack before `while`-condition"); err != nil {
		return err
	}
	expected := append(cloneElems(st.Stack), types.StackElement{Ty: types.Int{}})

	if err := a.node(st, item.Body); err != nil {
		return err
	}
	if item.Head != nil {
		if err := a.node(st, item.Head); err != nil {
			return err
		}
		n.Annotate(st.Stack, st.Vars)
	}
	if !TypesEqual(st.Stack, expected) {
		return diagnostics.NewTypeErr(diagnostics.PhaseAnalyzer, n.Loc,
			"`while` loop may not alter the stack beyond pushing the condition!\n\tfound (after 1st iteration): %s",
			diagnostics.FormatStack(st.Stack))
	}
	st.Pop()
	st.Vars = savedVars
	st.ForgetConstValues()
	return nil
}

// itemFor analyzes Init once on a private clone (so its locals, e.g. a loop
// counter, never leak into the outer scope), then Condition, Modifier and
// Body in sequence on that same clone, each required to be stack-neutral
// except Condition which must push exactly one Int.
func (a *Analyzer) itemFor(st *State, n *ast.Node, item ast.For) error {
	sub := st.Clone()
	if err := a.node(sub, item.Init); err != nil {
		return err
	}

	st.Push(types.Int{}, nil)
	expected := cloneElems(st.Stack)

	if err := a.node(sub, item.Condition); err != nil {
		return err
	}
	if !TypesEqual(sub.Stack, expected) {
		return diagnostics.NewTypeErr(diagnostics.PhaseAnalyzer, item.Condition.Loc,
			"`for` condition may only push a single Int\n\texpected %s\n\tbut found %s",
			diagnostics.FormatStack(expected), diagnostics.FormatStack(sub.Stack))
	}
	sub.Pop()
	st.Stack = cloneElems(sub.Stack)
	expected = expected[:len(expected)-1]

	if err := a.node(sub, item.Modifier); err != nil {
		return err
	}
	if !TypesEqual(sub.Stack, expected) {
		return diagnostics.NewTypeErr(diagnostics.PhaseAnalyzer, item.Condition.Loc,
			"`for` modifier may not alter the stack\n\texpected %s\n\tbut found %s",
			diagnostics.FormatStack(expected), diagnostics.FormatStack(sub.Stack))
	}

	if err := a.node(sub, item.Body); err != nil {
		return err
	}
	if !TypesEqual(sub.Stack, expected) {
		return diagnostics.NewTypeErr(diagnostics.PhaseAnalyzer, item.Condition.Loc,
			"`for` loop may not alter the stack\n\texpected %s from before the loop\n\tbut found %s",
			diagnostics.FormatStack(expected), diagnostics.FormatStack(sub.Stack))
	}
	st.MergeMaxWith(sub)
	return nil
}

func cloneElems(s []types.StackElement) []types.StackElement {
	out := make([]types.StackElement, len(s))
	copy(out, s)
	return out
}

func cloneVars(v map[string]types.LocalVar) map[string]types.LocalVar {
	out := make(map[string]types.LocalVar, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}
