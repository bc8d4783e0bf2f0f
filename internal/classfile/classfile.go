package classfile

import "fmt"

const classTemplate = `.source %s
.class public %s
.super %s

%s

.method public <init>()V
    aload_0
    invokenonvirtual %s/<init>()V
%s
    return
.end method

.method public static main([Ljava/lang/String;)V
%s
    return
.end method
%s`

// ClassWriter accumulates the textual sections of one Jasmin class file:
// a constant header, the instance initializer body, the generated program
// (Main) and an optional trailing footer, assembled on demand by Assemble.
type ClassWriter struct {
	Source  string
	Name    string
	Extends string

	Header string
	Init   string
	Main   string
	Footer string
}

// New returns a writer for a class named name, deriving from extends, whose
// .source directive names source.
func New(source, name, extends string) *ClassWriter {
	return &ClassWriter{Source: source, Name: name, Extends: extends}
}

// Assemble renders the full .j source text.
func (c *ClassWriter) Assemble() string {
	return fmt.Sprintf(classTemplate, c.Source, c.Name, c.Extends, c.Header, c.Extends, c.Init, c.Main, c.Footer)
}

// PushStmt writes a space-joined instruction line, e.g. PushStmt("sipush",
// "1000") -> "sipush 1000\n". Used for lines whose parts are decided all
// at once rather than built incrementally with PushMain/AppendMain.
func (c *ClassWriter) PushStmt(parts ...string) {
	for i, p := range parts {
		c.Main += p
		if i == len(parts)-1 {
			c.Main += "\n"
		} else {
			c.Main += " "
		}
	}
}

// PushMain appends s followed by a space, for building a line token by
// token (e.g. PushMain(IF_NE).AppendMain(label).MainEndl()).
func (c *ClassWriter) PushMain(s string) *ClassWriter {
	c.Main += s + " "
	return c
}

// AppendMain appends s with no trailing space.
func (c *ClassWriter) AppendMain(s string) *ClassWriter {
	c.Main += s
	return c
}

// MainEndl terminates the current line.
func (c *ClassWriter) MainEndl() {
	c.Main += "\n"
}

// Cursor returns the current length of Main, the emission position the
// source implementation keys its jump labels off. The code generator does
// not call it; it numbers labels with its own counter.
func (c *ClassWriter) Cursor() int {
	return len(c.Main)
}

// LineDirective emits a `.line` directive pointing at a source line.
func (c *ClassWriter) LineDirective(line int) {
	c.PushStmt(DIR_LINE, fmt.Sprintf("%d", line))
}

// PushInt emits the narrowest literal-push opcode for n: an iconst_* form
// for -1..=5, bipush for the signed-byte range, sipush for the signed-short
// range, and ldc otherwise.
func (c *ClassWriter) PushInt(n int32) {
	switch {
	case n >= -1 && n <= 5:
		c.PushStmt(iconstMnemonic(n))
	case n >= -128 && n <= 127:
		c.PushStmt(BIPUSH, fmt.Sprintf("%d", n))
	case n >= -32768 && n <= 32767:
		c.PushStmt(SIPUSH, fmt.Sprintf("%d", n))
	default:
		c.PushStmt(LDC, fmt.Sprintf("%d", n))
	}
}

func iconstMnemonic(n int32) string {
	switch n {
	case -1:
		return ICONST_M1
	case 0:
		return ICONST_0
	case 1:
		return ICONST_1
	case 2:
		return ICONST_2
	case 3:
		return ICONST_3
	case 4:
		return ICONST_4
	case 5:
		return ICONST_5
	default:
		panic("classfile: PushInt iconst range checked by caller")
	}
}

// PushString emits an ldc of a Java string literal, quoted the way a Go
// %q would render it (Jasmin accepts the same escaping Java source does).
func (c *ClassWriter) PushString(s string) {
	c.PushStmt(LDC, fmt.Sprintf("%q", s))
}

func (c *ClassWriter) Dup()   { c.AppendMain(DUP).MainEndl() }
func (c *ClassWriter) DupX1() { c.AppendMain(DUP_X1).MainEndl() }
func (c *ClassWriter) Swap()  { c.AppendMain(SWAP).MainEndl() }
func (c *ClassWriter) Pop()   { c.AppendMain(POP).MainEndl() }

// Invoke emits an invoke instruction with an explicit argument descriptor
// list and return descriptor, already assembled by the caller (codegen
// owns the stack-snapshot-to-descriptor logic; this just writes the line).
func (c *ClassWriter) Invoke(opcode, name string, argDescriptors []string, returns string) {
	c.PushMain(opcode).AppendMain(name).AppendMain("(")
	for _, d := range argDescriptors {
		c.AppendMain(d)
	}
	c.AppendMain(")").AppendMain(returns).MainEndl()
}

// InvokeInterfaceRaw emits a pre-assembled invokeinterface line; Jasmin's
// invokeinterface additionally needs the argument-slot count that ordinary
// descriptor parsing can't recover, so these two call sites (the char-list
// boxing/collecting stream calls) just supply the full signature text.
func (c *ClassWriter) InvokeInterfaceRaw(signature string) {
	c.AppendMain(signature).MainEndl()
}

// NewList emits `new java/util/ArrayList`, dup, and the zero-arg <init>
// call that initializes it.
func (c *ClassWriter) NewList() {
	c.PushMain(NEW).AppendMain(CLASS_ARRAY_LIST).MainEndl()
	c.Dup()
	c.Invoke(INVOKE_SPECIAL, "java/util/ArrayList/<init>", nil, TYPE_VOID)
}

// IntToInteger boxes a primitive int on top of the stack.
func (c *ClassWriter) IntToInteger() {
	c.Invoke(INVOKE_STATIC, "java/lang/Integer/valueOf", []string{TYPE_INT}, TYPE_INTEGER)
}

// IntegerToInt unboxes a boxed Integer on top of the stack.
func (c *ClassWriter) IntegerToInt() {
	c.PushMain(CHECK_CAST).AppendMain(CLASS_INTEGER).MainEndl()
	c.Invoke(INVOKE_VIRTUAL, "java/lang/Integer/intValue", nil, TYPE_INT)
}

// ObjectToString casts an Object reference down to String.
func (c *ClassWriter) ObjectToString() {
	c.PushMain(CHECK_CAST).AppendMain(CLASS_STRING).MainEndl()
}

// ObjectToList casts an Object reference down to ArrayList.
func (c *ClassWriter) ObjectToList() {
	c.PushMain(CHECK_CAST).AppendMain(CLASS_ARRAY_LIST).MainEndl()
}

// Set emits java.util.ArrayList.set(int, Object), boxing an Int element
// first if needed, and discards the replaced-element return value.
func (c *ClassWriter) Set(elemIsInt bool) {
	if elemIsInt {
		c.IntToInteger()
	}
	c.Invoke(INVOKE_VIRTUAL, "java/util/ArrayList/set", []string{TYPE_INT, TYPE_OBJECT}, TYPE_OBJECT)
	c.Pop()
}

// ToCharList rewrites a String reference on top of the stack into a fresh
// ArrayList of boxed code points: NEW ArrayList, dup_x1/swap to leave two
// copies of the fresh reference beneath the String,
// String.codePoints().boxed().collect(...) and finally ArrayList's
// Collection constructor.
func (c *ClassWriter) ToCharList() {
	c.PushMain(NEW).AppendMain(CLASS_ARRAY_LIST).MainEndl()
	c.DupX1()
	c.Swap()
	c.Invoke(INVOKE_VIRTUAL, "java/lang/String/codePoints", nil, "Ljava/util/stream/IntStream;")
	c.InvokeInterfaceRaw("invokeinterface java/util/stream/IntStream/boxed()Ljava/util/stream/Stream; 1")
	c.Invoke(INVOKE_STATIC, "java/util/stream/Collectors/toList", nil, "Ljava/util/stream/Collector;")
	c.InvokeInterfaceRaw("invokeinterface java/util/stream/Stream/collect(Ljava/util/stream/Collector;)Ljava/lang/Object; 2")
	c.PushMain(CHECK_CAST).AppendMain("java/util/Collection").MainEndl()
	c.Invoke(INVOKE_SPECIAL, "java/util/ArrayList/<init>", []string{"Ljava/util/Collection;"}, TYPE_VOID)
}
