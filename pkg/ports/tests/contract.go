package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/surveykit/pkg/domain"
	"github.com/aretw0/surveykit/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DocumentLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.DocumentLoader.
// setupData maps every document id the loader holds to the document it must return.
func DocumentLoaderContractTest(t *testing.T, loader ports.DocumentLoader, setupData map[string]*domain.SchemaNode) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load Document", func(t *testing.T) {
		for id, want := range setupData {
			got, err := loader.LoadDocument(ctx, id)
			require.NoError(t, err, "loading %s", id)
			assert.Equal(t, want, got)
		}
	})

	t.Run("Load Returns Independent Copies", func(t *testing.T) {
		for id := range setupData {
			first, err := loader.LoadDocument(ctx, id)
			require.NoError(t, err)
			first.Title = "mutated"
			first.Children = nil

			second, err := loader.LoadDocument(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, setupData[id], second)
		}
	})

	t.Run("Document Not Found", func(t *testing.T) {
		_, err := loader.LoadDocument(ctx, "non-existent-document")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrDocumentNotFound))
	})

	t.Run("List Documents", func(t *testing.T) {
		ids, err := loader.ListDocuments(ctx)
		require.NoError(t, err)
		assert.Len(t, ids, len(setupData))
		assert.IsNonDecreasing(t, ids)
		for id := range setupData {
			assert.Contains(t, ids, id)
		}
	})
}

// AnswerLoaderContractTest verifies an adapter against ports.AnswerLoader.
func AnswerLoaderContractTest(t *testing.T, loader ports.AnswerLoader, setupData map[string]domain.AnswerSet) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load Answers", func(t *testing.T) {
		for id, want := range setupData {
			got, err := loader.LoadAnswers(ctx, id)
			require.NoError(t, err, "loading %s", id)
			assert.Equal(t, want, got)
		}
	})

	t.Run("Answers Not Found", func(t *testing.T) {
		_, err := loader.LoadAnswers(ctx, "non-existent-answers")
		assert.ErrorIs(t, err, domain.ErrAnswersNotFound)
	})
}
