package dsl

import (
	"fmt"

	"github.com/aretw0/surveykit/internal/validator"
	"github.com/aretw0/surveykit/pkg/adapters/memory"
	"github.com/aretw0/surveykit/pkg/domain"
)

// Builder manages the document construction.
type Builder struct {
	root  *NodeBuilder
	nodes map[string]*NodeBuilder
}

// New creates a new document builder with a Survey root.
func New(id string) *Builder {
	b := &Builder{nodes: make(map[string]*NodeBuilder)}
	b.root = b.newNode(id, domain.TypeSurvey)
	return b
}

func (b *Builder) newNode(id string, typ domain.QuestionType) *NodeBuilder {
	nb := &NodeBuilder{
		node:    &domain.SchemaNode{ID: id, Type: typ},
		builder: b,
	}
	b.nodes[id] = nb
	return nb
}

// Root returns the builder of the Survey root, for setting its own attributes.
func (b *Builder) Root() *NodeBuilder { return b.root }

// Add creates a new node under the root.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id string, typ domain.QuestionType) *NodeBuilder {
	return b.root.Add(id, typ)
}

// Node returns the builder of an already added node.
func (b *Builder) Node(id string) (*NodeBuilder, bool) {
	nb, ok := b.nodes[id]
	return nb, ok
}

// Build validates the document and returns an independent copy of it.
// Every integrity finding (bad rule syntax, unknown references, cycles) is
// reported through the returned error.
func (b *Builder) Build() (*domain.SchemaNode, error) {
	doc := b.root.node.Clone()
	if err := validator.ValidateDocument(doc); err != nil {
		return nil, fmt.Errorf("invalid document %s: %w", doc.ID, err)
	}
	return doc, nil
}

// MustBuild is like Build but panics on error. Intended for tests and fixtures.
func (b *Builder) MustBuild() *domain.SchemaNode {
	doc, err := b.Build()
	if err != nil {
		panic(err)
	}
	return doc
}

// Loader builds the document and serves it from a memory.Loader.
func (b *Builder) Loader() (*memory.Loader, error) {
	doc, err := b.Build()
	if err != nil {
		return nil, err
	}
	loader, err := memory.NewFromDocuments(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}
