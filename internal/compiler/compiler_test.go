package compiler

import (
	"strings"
	"testing"

	"github.com/stackjvm/stackc/internal/ast"
)

func loc() ast.Location { return ast.Location{File: "t.ast.json", Line: 1} }

func node(item ast.Item) *ast.Node { return ast.New(item, loc()) }

func TestCompileEmitsLimitsAndBody(t *testing.T) {
	nodes := []*ast.Node{
		node(ast.Store{Initializer: node(ast.PushInt{Value: 1}), Name: "x"}),
		node(ast.Store{Initializer: node(ast.PushInt{Value: 2}), Name: "y"}),
	}
	out, err := Compile(nodes, Options{Source: "t.ast.json", Class: "T"})
	if err != nil {
		t.Fatalf("Compile: unexpected error: %v", err)
	}
	if !strings.Contains(out, ".limit stack 1") {
		t.Errorf("expected `.limit stack 1`, got:\n%s", out)
	}
	// 2 distinct vars + 1 reserved for the args parameter.
	if !strings.Contains(out, ".limit locals 3") {
		t.Errorf("expected `.limit locals 3`, got:\n%s", out)
	}
	if !strings.Contains(out, ".class public T") {
		t.Errorf("expected class named T, got:\n%s", out)
	}
}

func TestCompileDefaultsExtendsToObject(t *testing.T) {
	out, err := Compile(nil, Options{Source: "t.ast.json", Class: "Empty"})
	if err != nil {
		t.Fatalf("Compile: unexpected error: %v", err)
	}
	if !strings.Contains(out, ".super java/lang/Object") {
		t.Errorf("expected default superclass, got:\n%s", out)
	}
}

func TestCompilePropagatesAnalyzerErrors(t *testing.T) {
	_, err := Compile([]*ast.Node{node(ast.PushInt{Value: 1})}, Options{Source: "t.ast.json", Class: "T"})
	if err == nil {
		t.Fatalf("expected an error for a program that leaves something on the stack")
	}
}
