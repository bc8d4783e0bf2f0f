package codegen

import (
	"github.com/stackjvm/stackc/internal/ast"
	"github.com/stackjvm/stackc/internal/diagnostics"
)

// itemTypeSwitch emits only the arm the analyzer chose; the alternative
// arms contribute nothing to the generated program.
func (g *Generator) itemTypeSwitch(n *ast.Node, ts ast.TypeSwitch) error {
	if ts.ChosenIndex < 0 || ts.ChosenIndex >= len(ts.Arms) {
		return diagnostics.InternalErr(n.Loc, "typeswitch reached codegen without a chosen arm")
	}
	return g.node(ts.Arms[ts.ChosenIndex].Body)
}
