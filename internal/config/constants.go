// Package config holds compiler-wide constants and the jasminc.yaml
// project configuration loader.
package config

// Version is the current stackc version.
var Version = "0.1.0"

const (
	// SourceFileExt is the recognized input extension for JSON AST files.
	SourceFileExt = ".ast.json"
	// ClassFileExt is the extension written for generated Jasmin text.
	ClassFileExt = ".j"
	// DefaultSuperclass is used when a program doesn't need a specific one.
	DefaultSuperclass = "java/lang/Object"
)

// TrimSourceExt removes SourceFileExt from name if present.
func TrimSourceExt(name string) string {
	if len(name) >= len(SourceFileExt) && name[len(name)-len(SourceFileExt):] == SourceFileExt {
		return name[:len(name)-len(SourceFileExt)]
	}
	return name
}
