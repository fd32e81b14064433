package ports

import (
	"context"

	"github.com/aretw0/surveykit/pkg/domain"
)

// DocumentLoader defines how the engine retrieves survey documents.
// This allows the storage layer (files, memory, a host database) to be decoupled.
type DocumentLoader interface {
	// LoadDocument returns the decoded document with the given id.
	// It returns an error wrapping domain.ErrDocumentNotFound when the id is unknown.
	LoadDocument(ctx context.Context, id string) (*domain.SchemaNode, error)

	// ListDocuments returns the ids of every available document, sorted.
	ListDocuments(ctx context.Context) ([]string, error)
}

// AnswerLoader retrieves submitted answer sets by id.
type AnswerLoader interface {
	LoadAnswers(ctx context.Context, id string) (domain.AnswerSet, error)
}
