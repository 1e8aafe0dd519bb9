// Package defs loads behavior definitions from YAML and compiles them
// into behavior trees and utility consideration sets through a registry
// of named implementations.
package defs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// RawDoc is one definition file. A file may declare any mix of trees and
// utility sets; names are global across the library that loads them.
type RawDoc struct {
	Trees   map[string]RawNode            `yaml:"trees"`
	Utility map[string][]RawConsideration `yaml:"utility"`
}

// RawNode is the YAML shape of one behavior tree node. Exactly one of the
// fields may be set.
type RawNode struct {
	Selector []RawNode `yaml:"selector"`
	Sequence []RawNode `yaml:"sequence"`
	Leaf     *RawRef   `yaml:"leaf"`
	Script   string    `yaml:"script"`
}

// RawConsideration pairs a scorer reference with an action reference.
type RawConsideration struct {
	Scorer RawRef `yaml:"scorer"`
	Action RawRef `yaml:"action"`
}

// RawRef names a registered implementation with an optional argument.
// It unmarshals from either a plain string or a {name, arg} mapping.
type RawRef struct {
	Name string `yaml:"name"`
	Arg  any    `yaml:"arg"`
}

func (r *RawRef) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&r.Name)
	}
	type plain RawRef
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	if p.Name == "" {
		return fmt.Errorf("defs: reference missing name")
	}
	*r = RawRef(p)
	return nil
}

// Parse decodes one definition document.
func Parse(data []byte) (RawDoc, error) {
	var doc RawDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return RawDoc{}, fmt.Errorf("defs: unmarshal: %w", err)
	}
	return doc, nil
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case float64:
		return t
	case float32:
		return float64(t)
	default:
		return 0
	}
}
