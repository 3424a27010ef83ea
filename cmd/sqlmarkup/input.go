package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/leporo/sqlmarkup"
)

// input is a file describing values to compile a template with:
//
//	bind: {a: x}
//	labels:
//	  b: {bind: [7]}
//	  age_in: {type: int, bind: [[18, 24, 36]]}
//	  old: {drop: true}
//	  order: {sql: "ORDER BY ?", bind: [name]}
type input struct {
	Bind   interface{}           `yaml:"bind"`
	Labels map[string]labelInput `yaml:"labels"`
}

type labelInput struct {
	SQL  string      `yaml:"sql"`
	Type string      `yaml:"type"`
	Bind interface{} `yaml:"bind"`
	Drop bool        `yaml:"drop"`
}

func readInput(path string) (*input, error) {
	in := &input{}
	if path == "" {
		return in, nil
	}
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, in); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return in, nil
}

// readFile reads a file, - stands for stdin.
func readFile(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// apply registers labels in name order.
func (in *input) apply(c *sqlmarkup.Compiler) error {
	names := make([]string, 0, len(in.Labels))
	for name := range in.Labels {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		l := in.Labels[name]
		if l.Drop {
			if err := c.Drop(name); err != nil {
				return err
			}
			continue
		}
		bind, err := l.bind()
		if err != nil {
			return fmt.Errorf("label %s: %w", name, err)
		}
		if err := c.RegisterSQL(name, l.SQL, bind); err != nil {
			return err
		}
	}
	return nil
}

func (l labelInput) bind() (interface{}, error) {
	if l.Bind == nil {
		return []interface{}{}, nil
	}
	if l.Type == "" {
		return l.Bind, nil
	}
	typ, err := parseType(l.Type)
	if err != nil {
		return nil, err
	}
	if list, ok := l.Bind.([]interface{}); ok {
		return sqlmarkup.Typed(typ, list...), nil
	}
	return sqlmarkup.Typed(typ, l.Bind), nil
}

func parseType(s string) (sqlmarkup.Type, error) {
	switch t := sqlmarkup.Type(s); t {
	case sqlmarkup.TypeString, sqlmarkup.TypeInt, sqlmarkup.TypeBool, sqlmarkup.TypeNull, sqlmarkup.TypeLOB:
		return t, nil
	}
	return "", fmt.Errorf("unknown type: %s", s)
}
