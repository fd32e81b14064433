package schema

import (
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Names returns the shape name of every node, the form a Schema takes on
// the wire. Option sets and matrix rows are not part of the names, so a
// schema decoded from them accepts any option value and any row.
func (s Schema) Names() (map[string]string, error) {
	names := make(map[string]string, len(s))
	for id, typ := range s {
		if typ == nil {
			return nil, fmt.Errorf("node %s: type is nil", id)
		}
		names[id] = typ.Name()
	}
	return names, nil
}

func (s Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	names, err := s.Names()
	if err != nil {
		return nil, err
	}
	return json.Marshal(names)
}

func (s *Schema) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = nil
		return nil
	}
	var names map[string]string
	if err := json.Unmarshal(data, &names); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return s.fromNames(names)
}

func (s Schema) MarshalYAML() (any, error) {
	if s == nil {
		return nil, nil
	}
	return s.Names()
}

func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	var names map[string]string
	if err := node.Decode(&names); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return s.fromNames(names)
}

func (s *Schema) fromNames(names map[string]string) error {
	parsed, err := ParseTypeMap(names)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
