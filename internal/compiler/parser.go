package compiler

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/surveykit/pkg/domain"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format is the serialization of a document or answer set.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension. Unknown extensions are JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Parser is responsible for converting raw bytes into documents and answer sets.
type Parser struct {
	format Format
}

// NewParser creates a new parser for the given format (JSON when empty).
func NewParser(format Format) *Parser {
	if format == "" {
		format = FormatJSON
	}
	return &Parser{format: format}
}

// Parse decodes a schema document. The root must have an id and a known type.
func (p *Parser) Parse(data []byte) (*domain.SchemaNode, error) {
	var node domain.SchemaNode
	if err := p.unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if node.ID == "" {
		return nil, fmt.Errorf("document root missing id")
	}
	for n := range node.All() {
		if !n.Type.Valid() {
			return nil, fmt.Errorf("node %q: unknown question type %q", n.ID, n.Type)
		}
	}
	return &node, nil
}

// ParseAnswers decodes an answer set keyed by node id.
func (p *Parser) ParseAnswers(data []byte) (domain.AnswerSet, error) {
	var raw map[string]any
	if err := p.unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse answers: %w", err)
	}
	answers, err := domain.DecodeAnswers(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse answers: %w", err)
	}
	return answers, nil
}

// Marshal encodes a document in the parser's format.
func (p *Parser) Marshal(node *domain.SchemaNode) ([]byte, error) {
	if p.format == FormatYAML {
		return yaml.Marshal(node)
	}
	return json.MarshalIndent(node, "", "  ")
}

func (p *Parser) unmarshal(data []byte, v any) error {
	if p.format == FormatYAML {
		return yaml.Unmarshal(data, v)
	}
	return json.Unmarshal(data, v)
}
