// Package config loads the optional --config file cmd/jmmc accepts, so
// a multi-file project does not need to repeat --optimize/--registers
// on every invocation.
package config

import (
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"
)

// File is the shape of a --config YAML document.
type File struct {
	Optimize           bool   `yaml:"optimize"`
	RegisterAllocation int    `yaml:"registerAllocation"`
	OutputDir          string `yaml:"outputDir"`
}

// Load reads and parses a YAML config file. RegisterAllocation defaults
// to -1 (no ceiling) when the key is absent, since YAML has no way to
// distinguish "omitted" from "zero" once unmarshalled into an int.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f := &File{RegisterAllocation: -1}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, err
	}
	return f, nil
}

// overrideComment matches a `// jmmc: {...}` directive embedded in
// source text, e.g. `// jmmc: {"registers": 4}`.
var overrideComment = regexp.MustCompile(`//\s*jmmc:\s*(\{.*\})`)

// Override holds the per-file knobs a source comment can set, taking
// precedence over --config/flags for that one file.
type Override struct {
	Registers int // -1 when not present
	Optimize  *bool
}

// ScanOverrides finds the last `// jmmc: {...}` directive in source and
// reads its fields with gjson rather than unmarshalling into a struct,
// since the directive is free-form and most files will have none.
func ScanOverrides(source string) Override {
	ov := Override{Registers: -1}
	matches := overrideComment.FindAllStringSubmatch(source, -1)
	if len(matches) == 0 {
		return ov
	}
	body := matches[len(matches)-1][1]
	if r := gjson.Get(body, "registers"); r.Exists() {
		ov.Registers = int(r.Int())
	}
	if o := gjson.Get(body, "optimize"); o.Exists() {
		b := o.Bool()
		ov.Optimize = &b
	}
	return ov
}
