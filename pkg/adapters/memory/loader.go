package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/surveykit/internal/compiler"
	"github.com/aretw0/surveykit/pkg/domain"
)

// Loader implements ports.DocumentLoader and ports.AnswerLoader using in-memory maps.
// Safe for concurrent use.
type Loader struct {
	mu      sync.RWMutex
	docs    map[string]*domain.SchemaNode
	answers map[string]domain.AnswerSet
}

// NewLoader creates a Loader from raw JSON documents keyed by id.
func NewLoader(data map[string]string) (*Loader, error) {
	l := newLoader()
	parser := compiler.NewParser(compiler.FormatJSON)
	for id, raw := range data {
		root, err := parser.Parse([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to parse document %s: %w", id, err)
		}
		l.docs[id] = root
	}
	return l, nil
}

// NewFromDocuments creates a Loader from domain objects, keyed by their root id.
// This improves DX for tests and for hosts that build documents with the dsl package.
func NewFromDocuments(docs ...*domain.SchemaNode) (*Loader, error) {
	l := newLoader()
	for _, d := range docs {
		if err := l.AddDocument(d); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func newLoader() *Loader {
	return &Loader{
		docs:    make(map[string]*domain.SchemaNode),
		answers: make(map[string]domain.AnswerSet),
	}
}

// AddDocument stores a copy of root under its id, replacing any previous one.
func (l *Loader) AddDocument(root *domain.SchemaNode) error {
	if root == nil || root.ID == "" {
		return fmt.Errorf("document missing ID")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.docs[root.ID] = root.Clone()
	return nil
}

// AddAnswers stores a copy of answers under id.
func (l *Loader) AddAnswers(id string, answers domain.AnswerSet) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.answers[id] = cloneAnswers(answers)
}

// LoadDocument returns a deep copy of the stored document.
func (l *Loader) LoadDocument(_ context.Context, id string) (*domain.SchemaNode, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	root, ok := l.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, id)
	}
	return root.Clone(), nil
}

// ListDocuments returns all available document ids.
func (l *Loader) ListDocuments(_ context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	keys := make([]string, 0, len(l.docs))
	for k := range l.docs {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}

// LoadAnswers returns a copy of the stored answer set.
func (l *Loader) LoadAnswers(_ context.Context, id string) (domain.AnswerSet, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	answers, ok := l.answers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAnswersNotFound, id)
	}
	return cloneAnswers(answers), nil
}

func cloneAnswers(in domain.AnswerSet) domain.AnswerSet {
	out := make(domain.AnswerSet, len(in))
	for id, a := range in {
		c := a
		if a.Values != nil {
			c.Values = append([]string(nil), a.Values...)
		}
		if a.Cells != nil {
			c.Cells = make(map[string][]string, len(a.Cells))
			for row, vs := range a.Cells {
				c.Cells[row] = append([]string(nil), vs...)
			}
		}
		out[id] = c
	}
	return out
}
