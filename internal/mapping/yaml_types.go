package mapping

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML reads a mapping node of source: destination pairs,
// keeping the document order.
func (p *Pairs) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a map of source: destination pairs", node.Line)
	}

	pairs := make(Pairs, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		if key.Kind != yaml.ScalarNode || value.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: pair must map a field name to a path", key.Line)
		}

		pairs = append(pairs, Pair{Source: key.Value, Destination: value.Value})
	}

	*p = pairs

	return nil
}

// MarshalYAML writes the pairs as a mapping node in order.
func (p Pairs) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, pair := range p {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: pair.Source},
			&yaml.Node{Kind: yaml.ScalarNode, Value: pair.Destination},
		)
	}

	return node, nil
}

// UnmarshalYAML accepts a status code in any case; an empty value means DefaultStatus.
func (s *Status) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return err
	}

	if st, err := ParseStatus(str); err == nil {
		*s = st
		return nil
	}

	// Unknown codes are kept for Validate to report.
	*s = Status(str)

	return nil
}
