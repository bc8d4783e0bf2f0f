package analyzer

import (
	"github.com/stackjvm/stackc/internal/ast"
	"github.com/stackjvm/stackc/internal/diagnostics"
	"github.com/stackjvm/stackc/internal/patterns"
)

// itemJasmin matches Input patterns against the stack in reverse (the last
// pattern matches the top element), capturing generics as it goes, then
// resolves every Output shape through those captures and pushes it.
// ExtraStack reserves scratch slots the inline fragment uses transiently.
func (a *Analyzer) itemJasmin(st *State, n *ast.Node, j ast.Jasmin) error {
	st.RequireAdditionalStackSize(j.ExtraStack)

	generics := patterns.Generics{}
	for i := len(j.Input) - 1; i >= 0; i-- {
		pat := j.Input[i]
		elem, err := st.ExpectAny(n.Loc, j.Name+" expected some "+pat.String()+" on stack, found nothing")
		if err != nil {
			return err
		}
		if !patterns.MatchAndCapture(pat, elem.Ty, generics) {
			return diagnostics.NewTypeErr(diagnostics.PhaseAnalyzer, n.Loc,
				"%s expected some %s on stack, %s doesn't match!", j.Name, pat, elem.Ty)
		}
	}

	for _, out := range j.Output {
		ty, err := patterns.Resolve(out, generics)
		if err != nil {
			return diagnostics.NewTypeErr(diagnostics.PhaseAnalyzer, n.Loc,
				"cannot resolve type %s in %s", out, j.Name)
		}
		st.Push(ty, nil)
	}
	return nil
}

// itemTypeSwitch tries each arm's pattern, in order, against a fresh clone
// of the pre-switch state, using a fresh Generics map per attempt (the
// teacher shares one map across all attempts, letting a partially-matched
// failed arm's captures leak into the next arm; this rewrite resets it per
// arm instead). The first arm whose pattern matches every element wins;
// its index is recorded on the node and its body is analyzed for real.
func (a *Analyzer) itemTypeSwitch(st *State, n *ast.Node, ts ast.TypeSwitch) error {
	before := st.Clone()

	chosen := -1
arms:
	for i, arm := range ts.Arms {
		attempt := before.Clone()
		generics := patterns.Generics{}
		for j := len(arm.Pattern) - 1; j >= 0; j-- {
			elem, ok := attempt.Pop()
			if !ok {
				continue arms
			}
			if !patterns.MatchAndCapture(arm.Pattern[j], elem.Ty, generics) {
				continue arms
			}
		}
		chosen = i
		break
	}

	if chosen == -1 {
		return diagnostics.NewTypeErr(diagnostics.PhaseAnalyzer, n.Loc,
			"no arm in `typeswitch` matches on %s", diagnostics.FormatStack(before.Stack))
	}

	ts.ChosenIndex = chosen
	n.Item = ts
	*st = *before
	return a.node(st, ts.Arms[chosen].Body)
}
