package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNodeNotFound is returned when a lookup by id misses.
	ErrNodeNotFound = errors.New("node not found")
	// ErrDocumentNotFound is returned by loaders for unknown document ids.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrAnswersNotFound is returned by loaders for unknown answer set ids.
	ErrAnswersNotFound = errors.New("answers not found")
)

// DuplicateIDError reports a document whose ids are not unique (or empty).
type DuplicateIDError struct {
	ID     string
	Reason string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("invalid node id %q: %s", e.ID, e.Reason)
}

// InvalidRuleSyntaxError reports a rule string that does not parse.
// It should block saving the document.
type InvalidRuleSyntaxError struct {
	NodeID string
	Field  string
	Rule   string
	Err    error
}

func (e *InvalidRuleSyntaxError) Error() string {
	return fmt.Sprintf("node %q: invalid %s %q: %v", e.NodeID, e.Field, e.Rule, e.Err)
}

func (e *InvalidRuleSyntaxError) Unwrap() error { return e.Err }

// InvalidAttributeError reports an attribute value that is inconsistent with
// the node type (e.g. an exam setting on a non-exam node).
type InvalidAttributeError struct {
	NodeID string
	Field  string
	Reason string
}

func (e *InvalidAttributeError) Error() string {
	return fmt.Sprintf("node %q: attribute %s: %s", e.NodeID, e.Field, e.Reason)
}

// UnknownReferenceError reports a rule that references an id missing from the document.
type UnknownReferenceError struct {
	NodeID string
	Field  string
	Ref    string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("node %q: %s references unknown node %q", e.NodeID, e.Field, e.Ref)
}

// CyclicRuleDependencyError reports rules that depend on each other. It is
// fatal for the evaluation call that detects it.
type CyclicRuleDependencyError struct {
	NodeIDs []string
}

func (e *CyclicRuleDependencyError) Error() string {
	return fmt.Sprintf("cyclic rule dependency between nodes: %s", strings.Join(e.NodeIDs, ", "))
}

// AggregateError collects independent failures found in a single pass.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error { return e.Errors }
