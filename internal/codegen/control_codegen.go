package codegen

import (
	"fmt"
	"sort"

	"github.com/stackjvm/stackc/internal/ast"
	"github.com/stackjvm/stackc/internal/classfile"
)

// itemIf emits Head (if any), then an ifne/goto pair dispatching between
// Body and Else (or straight past a missing Else), all three labels
// sharing one id so they read as a matched set in the emitted text.
func (g *Generator) itemIf(n *ast.Node, item ast.If) error {
	g.Class.LineDirective(n.Loc.Line)
	if item.Head != nil {
		if err := g.node(item.Head); err != nil {
			return err
		}
	}
	id := g.label()
	bodyLabel := fmt.Sprintf("If%d", id)
	elseLabel := fmt.Sprintf("Else%d", id)
	endLabel := fmt.Sprintf("EndIf%d", id)

	g.Class.PushMain(classfile.IF_NE).AppendMain(bodyLabel).MainEndl()
	g.Class.PushMain(classfile.GOTO).AppendMain(elseLabel).MainEndl()
	g.Class.AppendMain(bodyLabel).AppendMain(":").MainEndl()
	if err := g.node(item.Body); err != nil {
		return err
	}
	g.Class.PushMain(classfile.GOTO).AppendMain(endLabel).MainEndl()
	g.Class.AppendMain(elseLabel).AppendMain(":").MainEndl()
	if item.Else != nil {
		if err := g.node(item.Else); err != nil {
			return err
		}
	}
	g.Class.AppendMain(endLabel).AppendMain(":").MainEndl()
	return nil
}

// itemSwitch emits a lookupswitch over the (already sorted) arm labels,
// dispatching to per-arm bodies and falling through to Default.
func (g *Generator) itemSwitch(n *ast.Node, item ast.Switch) error {
	g.Class.PushStmt(classfile.LOOKUP_SWITCH)
	id := g.label()
	labelFor := func(v int32) string { return fmt.Sprintf("Switch%d_%d", id, v) }
	defaultLabel := fmt.Sprintf("Switch%ddefault", id)
	endLabel := fmt.Sprintf("EndSwitch%d", id)

	sorted := append([]ast.SwitchArm(nil), item.Arms...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Label < sorted[j].Label })

	for _, arm := range sorted {
		g.Class.PushStmt(fmt.Sprintf("%d", arm.Label), ":", labelFor(arm.Label))
	}
	g.Class.PushStmt(classfile.DEFAULT, ":", defaultLabel)
	for _, arm := range sorted {
		g.Class.PushStmt(labelFor(arm.Label), ":")
		if err := g.node(arm.Body); err != nil {
			return err
		}
		g.Class.PushStmt(classfile.GOTO, endLabel)
	}
	g.Class.PushStmt(defaultLabel, ":")
	if err := g.node(item.Default); err != nil {
		return err
	}
	g.Class.PushStmt(endLabel, ":")
	return nil
}

// itemWhile emits a pre-tested loop: re-evaluate Head (if present) at the
// top of every iteration, branch on the resulting Int, and jump back after
// Body.
func (g *Generator) itemWhile(n *ast.Node, item ast.While) error {
	g.Class.LineDirective(n.Loc.Line)
	id := g.label()
	headLabel := fmt.Sprintf("WhileHead%d", id)
	bodyLabel := fmt.Sprintf("While%d", id)
	endLabel := fmt.Sprintf("EndWhile%d", id)

	g.Class.PushMain(headLabel).AppendMain(":").MainEndl()
	if item.Head != nil {
		if err := g.node(item.Head); err != nil {
			return err
		}
	}
	g.Class.PushMain(classfile.IF_NE).AppendMain(bodyLabel).MainEndl()
	g.Class.PushMain(classfile.GOTO).AppendMain(endLabel).MainEndl()
	g.Class.PushMain(bodyLabel).AppendMain(":").MainEndl()
	if err := g.node(item.Body); err != nil {
		return err
	}
	g.Class.PushMain(classfile.GOTO).AppendMain(headLabel).MainEndl()
	g.Class.PushMain(endLabel).AppendMain(":").MainEndl()
	return nil
}

// itemFor emits Init once, then a condition/body/modifier loop jumping back
// to re-check Condition.
func (g *Generator) itemFor(n *ast.Node, item ast.For) error {
	g.Class.LineDirective(n.Loc.Line)
	id := g.label()
	endLabel := fmt.Sprintf("ForEnd%d", id)
	bodyLabel := fmt.Sprintf("ForBody%d", id)
	condLabel := fmt.Sprintf("ForCond%d", id)

	if err := g.node(item.Init); err != nil {
		return err
	}
	g.Class.PushMain(condLabel).AppendMain(":").MainEndl()
	if err := g.node(item.Condition); err != nil {
		return err
	}
	g.Class.PushMain(classfile.IF_NE).AppendMain(bodyLabel).MainEndl()
	g.Class.PushMain(classfile.GOTO).AppendMain(endLabel).MainEndl()
	g.Class.PushMain(bodyLabel).AppendMain(":").MainEndl()
	if err := g.node(item.Body); err != nil {
		return err
	}
	if err := g.node(item.Modifier); err != nil {
		return err
	}
	g.Class.PushMain(classfile.GOTO).AppendMain(condLabel).MainEndl()
	g.Class.PushMain(endLabel).AppendMain(":").MainEndl()
	return nil
}
