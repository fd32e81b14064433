package schema

import "github.com/aretw0/surveykit/pkg/domain"

// Schema is a map of node ids to their expected answer shapes.
// Example: {"q1": Option("a", "b"), "age": Number(), "tags": Multi(Text())}
type Schema map[string]Type

// ForDocument derives the answer contract of a document: one entry per data node.
func ForDocument(root *domain.SchemaNode) Schema {
	result := make(Schema)
	for n := range root.All() {
		if t := ForNode(n); t != nil {
			result[n.ID] = t
		}
	}
	return result
}

// Validate checks if answers conform to the schema.
// Answers for ids outside the schema are errors; missing answers are not.
// Returns an error with all validation failures found.
func Validate(schema Schema, answers domain.AnswerSet) error {
	var errs []error

	for id, answer := range answers {
		fieldType, exists := schema[id]
		if !exists {
			errs = append(errs, &ValidationError{
				Key:    id,
				Reason: "not a question of this document",
				Value:  answer.Raw(),
			})
			continue
		}

		if err := fieldType.Validate(answer); err != nil {
			errs = append(errs, &ValidationError{
				Key:    id,
				Reason: err.Error(),
				Value:  answer.Raw(),
				Err:    err,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}

	return nil
}

// ValidateFields validates only specific answers against the schema.
// Ids not defined in the schema are an error; missing answers are skipped.
func ValidateFields(schema Schema, answers domain.AnswerSet, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	var errs []error

	for _, id := range ids {
		fieldType, exists := schema[id]
		if !exists {
			errs = append(errs, &ValidationError{
				Key:    id,
				Reason: "not defined in schema",
			})
			continue
		}

		answer := answers.Get(id)
		if err := fieldType.Validate(answer); err != nil {
			errs = append(errs, &ValidationError{
				Key:    id,
				Reason: err.Error(),
				Value:  answer.Raw(),
				Err:    err,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}

	return nil
}
