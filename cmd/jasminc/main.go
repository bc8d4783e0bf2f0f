// Command jasminc is the compiler driver: it reads a JSON AST file, runs
// it through internal/compiler in-process, writes the resulting Jasmin
// text, and optionally shells out to an assembler to produce a .class
// file. The project file's remote daemon setting is not read here.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/stackjvm/stackc/internal/astjson"
	"github.com/stackjvm/stackc/internal/compiler"
	"github.com/stackjvm/stackc/internal/config"
	"github.com/stackjvm/stackc/internal/diagnostics"
)

const projectFile = "jasminc.yaml"

func main() {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "jasminc: internal error: %v\n", r)
			os.Exit(1)
		}
	}()

	args := os.Args[1:]
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		printUsage()
		if len(args) == 0 {
			os.Exit(1)
		}
		return
	}
	if args[0] == "-v" || args[0] == "--version" {
		fmt.Println("jasminc", config.Version)
		return
	}

	inputPath := args[0]
	if err := run(inputPath); err != nil {
		reportFailure(err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: jasminc <input.ast.json>")
}

func run(inputPath string) error {
	proj, err := loadProject(filepath.Dir(inputPath))
	if err != nil {
		return err
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}
	nodes, err := astjson.Decode(data)
	if err != nil {
		return fmt.Errorf("decoding AST from %s: %w", inputPath, err)
	}

	base := filepath.Base(config.TrimSourceExt(inputPath))
	opts := compiler.Options{
		Source:  inputPath,
		Class:   base,
		Extends: proj.Super,
	}

	assembly, err := compiler.Compile(nodes, opts)
	if err != nil {
		return err
	}

	outDir := proj.Output
	if outDir == "" {
		outDir = filepath.Dir(inputPath)
	}
	outPath := filepath.Join(outDir, base+config.ClassFileExt)
	if err := os.WriteFile(outPath, []byte(assembly), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	fmt.Fprintf(os.Stderr, "jasminc: wrote %s\n", outPath)

	if proj.Assembler != "" {
		if err := assemble(proj.Assembler, outPath, outDir); err != nil {
			return err
		}
	}
	return nil
}

// loadProject looks for jasminc.yaml next to the input file. A missing
// file is not an error — Project's zero value (after defaults) compiles
// with java/lang/Object and writes next to the input.
func loadProject(dir string) (*config.Project, error) {
	path := filepath.Join(dir, projectFile)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return config.ParseProject(nil, path)
		}
		return nil, err
	}
	return config.LoadProject(path)
}

func assemble(binary, jasminFile, outDir string) error {
	cmd := exec.Command(binary, jasminFile, "-d", outDir)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running assembler %s: %w", binary, err)
	}
	return nil
}

// reportFailure prints err to stderr, pointing a caret at the offending
// source location when err is a diagnostics.Error and stderr is a
// terminal that supports color.
func reportFailure(err error) {
	var diagErr *diagnostics.Error
	if de, ok := err.(*diagnostics.Error); ok {
		diagErr = de
	}
	if diagErr == nil {
		fmt.Fprintf(os.Stderr, "jasminc: %v\n", err)
		return
	}

	color := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	loc := diagErr.Loc.String()
	if !color {
		fmt.Fprintf(os.Stderr, "jasminc: %s: %s: %s\n", loc, diagErr.Phase, diagErr.Message)
		return
	}

	const (
		red  = "\x1b[31m"
		dim  = "\x1b[2m"
		bold = "\x1b[1m"
		rst  = "\x1b[0m"
	)
	fmt.Fprintf(os.Stderr, "%s%serror%s%s: %s\n", bold, red, rst, rst, diagErr.Message)
	fmt.Fprintf(os.Stderr, "%s  --> %s%s\n", dim, loc, rst)
	if diagErr.Loc.Col > 0 {
		fmt.Fprintf(os.Stderr, "%s%s^%s\n", strings.Repeat(" ", 6+diagErr.Loc.Col), red, rst)
	}
}
