package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Project represents a jasminc.yaml project file.
type Project struct {
	// Output is the directory generated .j files (and any assembled
	// .class files) are written to. Defaults to the input file's directory.
	Output string `yaml:"output,omitempty"`

	// Super is the superclass every generated class extends.
	// Defaults to DefaultSuperclass.
	Super string `yaml:"super,omitempty"`

	// Assembler, if set, names a downstream Jasmin-compatible assembler
	// binary that cmd/jasminc shells out to after writing the .j file.
	Assembler string `yaml:"assembler,omitempty"`

	// Remote addresses an optional internal/rpcserver compile daemon. It
	// is parsed from the project file, but cmd/jasminc does not read it
	// and always compiles in-process.
	Remote *Remote `yaml:"remote,omitempty"`
}

// Remote addresses a running compile daemon (cmd/jasmincd).
type Remote struct {
	Addr string `yaml:"addr"`
}

// LoadProject reads and parses a jasminc.yaml file.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseProject(data, path)
}

// ParseProject parses jasminc.yaml content from bytes. path is used only
// for error messages.
func ParseProject(data []byte, path string) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	p.setDefaults()
	return &p, nil
}

func (p *Project) setDefaults() {
	if p.Super == "" {
		p.Super = DefaultSuperclass
	}
}
