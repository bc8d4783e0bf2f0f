package classfile

import (
	"strings"
	"testing"
)

func TestPushIntThresholds(t *testing.T) {
	cases := []struct {
		n    int32
		want string
	}{
		{-1, "iconst_m1\n"},
		{0, "iconst_0\n"},
		{5, "iconst_5\n"},
		{6, "bipush 6\n"},
		{-128, "bipush -128\n"},
		{200, "sipush 200\n"},
		{32767, "sipush 32767\n"},
		{70000, "ldc 70000\n"},
		{-70000, "ldc -70000\n"},
	}
	for _, c := range cases {
		cw := New("t.ast.json", "T", CLASS_OBJECT)
		cw.PushInt(c.n)
		if cw.Main != c.want {
			t.Errorf("PushInt(%d) wrote %q, want %q", c.n, cw.Main, c.want)
		}
	}
}

func TestPushStringEscapes(t *testing.T) {
	cw := New("t.ast.json", "T", CLASS_OBJECT)
	cw.PushString(`hi "there"`)
	if !strings.Contains(cw.Main, `ldc "hi \"there\""`) {
		t.Errorf("PushString output = %q, missing escaped quotes", cw.Main)
	}
}

func TestInvokeAssemblesDescriptor(t *testing.T) {
	cw := New("t.ast.json", "T", CLASS_OBJECT)
	cw.Invoke(INVOKE_VIRTUAL, "java/util/ArrayList/add", []string{TYPE_INT, TYPE_OBJECT}, TYPE_BOOL)
	want := "invokevirtual java/util/ArrayList/add(ILjava/lang/Object;)Z\n"
	if cw.Main != want {
		t.Errorf("Invoke wrote %q, want %q", cw.Main, want)
	}
}

func TestNewListSequence(t *testing.T) {
	cw := New("t.ast.json", "T", CLASS_OBJECT)
	cw.NewList()
	want := "new java/util/ArrayList\ndup\ninvokespecial java/util/ArrayList/<init>()V\n"
	if cw.Main != want {
		t.Errorf("NewList wrote %q, want %q", cw.Main, want)
	}
}

func TestAssembleRendersTemplate(t *testing.T) {
	cw := New("prog.ast.json", "Prog", CLASS_OBJECT)
	cw.PushMain(I_ADD).MainEndl()
	out := cw.Assemble()

	for _, want := range []string{
		".source prog.ast.json",
		".class public Prog",
		".super java/lang/Object",
		"invokenonvirtual java/lang/Object/<init>()V",
		".method public static main([Ljava/lang/String;)V",
		"iadd",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Assemble() output missing %q\nfull output:\n%s", want, out)
		}
	}
}

func TestLineDirective(t *testing.T) {
	cw := New("t.ast.json", "T", CLASS_OBJECT)
	cw.LineDirective(42)
	if cw.Main != ".line 42\n" {
		t.Errorf("LineDirective(42) wrote %q", cw.Main)
	}
}
