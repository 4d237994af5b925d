package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// StringOrArray accepts either a single string or a list of strings.
type StringOrArray []string

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected string or array, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}

// UnmarshalYAML accepts "Name(args)" or {name: Name, args: [...]}.
func (a *AttributeRef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		ref, err := ParseAttribute(str)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}

		*a = ref

		return nil

	case yaml.MappingNode:
		// Alias type avoids recursing into this method.
		type plain AttributeRef

		var p plain

		err := node.Decode(&p)
		if err != nil {
			return err
		}

		if p.Name == "" {
			return fmt.Errorf("line %d: attribute requires a name", node.Line)
		}

		*a = AttributeRef(p)

		return nil

	default:
		return fmt.Errorf("line %d: expected attribute string or mapping, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML writes the attribute in its source form.
func (a AttributeRef) MarshalYAML() (any, error) {
	return a.String(), nil
}
