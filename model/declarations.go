// SPDX-License-Identifier: MIT
//
// File: declarations.go
// Role: YAML declarations of rule-backed nodes.
//
// Format:
//
//	nodes:
//	  - path: tasks
//	    type: container
//	  - path: tasks.compile
//	    type: compile
//	  - path: tasks.test
//	    type: test
//	    inputs: [tasks.compile]
//
// Each type name is resolved through a TypeTable; its factory becomes the
// node's Creator. Declarations are returned in file order, so parents must
// be listed before their children.

package model

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDeclaration indicates a malformed declaration document.
var ErrInvalidDeclaration = errors.New("model: invalid declaration")

type declarationFile struct {
	Nodes []declaration `yaml:"nodes"`
}

type declaration struct {
	Path   string   `yaml:"path"`
	Type   string   `yaml:"type"`
	Inputs []string `yaml:"inputs"`
}

// LoadDeclarations parses a YAML declaration document into registrations.
//
// Errors:
//   - ErrInvalidDeclaration: unknown fields, YAML syntax errors, missing path,
//     or a type name absent from types.
func LoadDeclarations(r io.Reader, types *TypeTable) ([]Registration, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file declarationFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidDeclaration, err)
	}

	regs := make([]Registration, 0, len(file.Nodes))
	for i, d := range file.Nodes {
		if d.Path == "" {
			return nil, fmt.Errorf("%w: node %d has no path", ErrInvalidDeclaration, i)
		}
		reg := Registration{Path: Path(d.Path)}
		if d.Type != "" {
			entry, ok := types.Lookup(d.Type)
			if !ok {
				return nil, fmt.Errorf("%w: node %s: unknown type %q", ErrInvalidDeclaration, d.Path, d.Type)
			}
			reg.Type = entry.Type
			reg.Create = entry.Factory
		}
		for _, in := range d.Inputs {
			reg.Inputs = append(reg.Inputs, Path(in))
		}
		regs = append(regs, reg)
	}

	return regs, nil
}

// Load parses a declaration document and registers every node in r.
func (r *Registry) Load(src io.Reader, types *TypeTable) error {
	regs, err := LoadDeclarations(src, types)
	if err != nil {
		return err
	}

	return r.RegisterAll(regs)
}
