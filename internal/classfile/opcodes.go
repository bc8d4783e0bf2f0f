// Package classfile implements the Jasmin text emitter (spec component
// C5): a low-level writer that assembles opcodes, directives and the class
// skeleton into the `.j` source the orchestrator (C7) writes out.
package classfile

// Jasmin mnemonics and directive keywords, named the way the source
// compiler's opcode table names them.
const (
	ICONST_M1 = "iconst_m1"
	ICONST_0  = "iconst_0"
	ICONST_1  = "iconst_1"
	ICONST_2  = "iconst_2"
	ICONST_3  = "iconst_3"
	ICONST_4  = "iconst_4"
	ICONST_5  = "iconst_5"
	BIPUSH    = "bipush"
	SIPUSH    = "sipush"
	LDC       = "ldc"

	NEW     = "new"
	POP     = "pop"
	DUP     = "dup"
	DUP_X1  = "dup_x1"
	DUP2    = "dup2"
	SWAP    = "swap"
	I_ADD   = "iadd"
	I_SUB   = "isub"
	I_MUL   = "imul"
	I_DIV   = "idiv"

	IF_NE = "ifne"
	IF_EQ = "ifeq"
	IF_LT = "iflt"
	IF_LE = "ifle"
	IF_GT = "ifgt"
	IF_GE = "ifge"
	GOTO  = "goto"

	LOOKUP_SWITCH = "lookupswitch"
	DEFAULT       = "default"

	INVOKE_STATIC    = "invokestatic"
	INVOKE_VIRTUAL   = "invokevirtual"
	INVOKE_INTERFACE = "invokeinterface"
	INVOKE_SPECIAL   = "invokespecial"

	I_STORE = "istore"
	A_STORE = "astore"
	I_LOAD  = "iload"
	A_LOAD  = "aload"

	GET_STATIC = "getstatic"

	DIR_STACK_LIMIT  = ".limit stack"
	DIR_LOCALS_LIMIT = ".limit locals"
	DIR_SOURCE_FILE  = ".source"
	DIR_LINE         = ".line"

	TYPE_PRINT_STREAM = "Ljava/io/PrintStream;"
	TYPE_CONSOLE      = "Ljava/io/Console;"
	TYPE_INT          = "I"
	TYPE_OBJECT       = "Ljava/lang/Object;"
	TYPE_STRING       = "Ljava/lang/String;"
	TYPE_INTEGER      = "Ljava/lang/Integer;"
	TYPE_VOID         = "V"
	TYPE_BOOL         = "Z"

	CHECK_CAST = "checkcast"

	CLASS_OBJECT     = "java/lang/Object"
	CLASS_STRING     = "java/lang/String"
	CLASS_INTEGER    = "java/lang/Integer"
	CLASS_ARRAY_LIST = "java/util/ArrayList"

	OBJ_SYSTEM_OUT     = "java/lang/System/out"
	OBJ_SYSTEM_CONSOLE = "java/lang/System/console"
)
