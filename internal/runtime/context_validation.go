package runtime

import (
	"errors"

	"github.com/aretw0/surveykit/internal/compiler"
	"github.com/aretw0/surveykit/pkg/domain"
	"github.com/aretw0/surveykit/pkg/schema"
)

// validateShape checks that the answer of n has the shape its type expects
// (single value, list, matrix) and that numbers and options are well formed.
// It returns nil when the answer is acceptable.
func validateShape(n *compiler.Node, answer domain.Answer) *domain.ValidationError {
	typ := schema.ForNode(n.Node)
	if typ == nil {
		return nil
	}
	err := typ.Validate(answer)
	if err == nil {
		return nil
	}

	code := domain.CodeShape
	switch {
	case errors.Is(err, schema.ErrNotANumber):
		code = domain.CodeNotANumber
	case errors.Is(err, schema.ErrUnknownOption):
		code = domain.CodeUnknownOption
	}
	return &domain.ValidationError{NodeID: n.ID(), Code: code, Message: err.Error()}
}
