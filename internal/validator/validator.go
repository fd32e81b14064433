package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/surveykit/internal/compiler"
	"github.com/aretw0/surveykit/internal/runtime"
	"github.com/aretw0/surveykit/pkg/domain"
)

// ValidateDocument runs the authoring-time checks on a document: ids are
// unique, every rule parses, rule references point at existing nodes, the
// rules have no dependency cycle and exam answers name declared options.
// All findings are returned together as a *domain.AggregateError.
func ValidateDocument(root *domain.SchemaNode) error {
	prog, err := compiler.Compile(root)
	if err != nil {
		return err
	}

	var errs []error
	for _, n := range prog.Nodes {
		for _, ref := range n.Refs {
			if !prog.Index.Has(ref.ID) {
				errs = append(errs, &domain.UnknownReferenceError{NodeID: n.ID(), Field: ref.Field, Ref: ref.ID})
			}
		}
		if n.Parent >= 0 && n.Logic.Finish != nil {
			errs = append(errs, &domain.InvalidAttributeError{
				NodeID: n.ID(),
				Field:  domain.FieldFinishRule,
				Reason: "only applies to the document root",
			})
		}
		if err := validateExamAnswer(n); err != nil {
			errs = append(errs, err)
		}
	}

	if _, err := runtime.NewGraph(prog).Order(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return &domain.AggregateError{Errors: errs}
	}
	return nil
}

// validateExamAnswer checks that the correct answer of a choice question
// lists declared option values.
func validateExamAnswer(n *compiler.Node) error {
	cfg, ok := n.Config.(*compiler.ChoiceConfig)
	if !ok || cfg.Exam == nil || cfg.Exam.Correct == "" || cfg.Exam.Match == domain.MatchContain {
		return nil
	}
	var unknown []string
	for _, v := range strings.Split(cfg.Exam.Correct, ",") {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, found := n.Node.OptionLabel(v); !found {
			unknown = append(unknown, v)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	return &domain.InvalidAttributeError{
		NodeID: n.ID(),
		Field:  "examCorrectAnswer",
		Reason: fmt.Sprintf("unknown option values: %s", strings.Join(unknown, ", ")),
	}
}

// Findings flattens the error returned by ValidateDocument.
func Findings(err error) []error {
	var agg *domain.AggregateError
	if errors.As(err, &agg) {
		return agg.Errors
	}
	if err != nil {
		return []error{err}
	}
	return nil
}
