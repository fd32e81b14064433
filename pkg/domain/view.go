package domain

import (
	"fmt"
	"math"

	json "github.com/goccy/go-json"
)

// Issue codes attached to validation errors and warnings.
const (
	CodeRequired        = "required"
	CodeScope           = "scope"
	CodeSoftScope       = "soft_scope"
	CodeTextLimit       = "text_limit"
	CodeAnswerLimit     = "answer_limit"
	CodeValidateRule    = "validate_rule"
	CodeNotANumber      = "not_a_number"
	CodeRejectOther     = "reject_other"
	CodeUnknownOption   = "unknown_option"
	CodeShape           = "answer_shape"
	CodeDivisionByZero  = "division_by_zero"
	CodeNonNumeric      = "non_numeric_operand"
	CodeMatrixRowMissed = "matrix_row_missing"
	CodeRatingRange     = "rating_range"
	CodeFileType        = "file_type"
)

// ValidationError is a hard, per-node failure. It does not abort evaluation
// but makes the document not submittable.
type ValidationError struct {
	NodeID  string `json:"nodeId"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("node %q: %s: %s", e.NodeID, e.Code, e.Message)
}

// Warning is a soft, per-node finding (soft scope violations, numeric
// sentinels). Warnings never block submission.
type Warning struct {
	NodeID  string `json:"nodeId"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("node %q: %s: %s", w.NodeID, w.Code, w.Message)
}

// NodeView is the derived state of one node for a given answer set.
type NodeView struct {
	ID            string            `json:"id"`
	Type          QuestionType      `json:"type"`
	Visible       bool              `json:"visible"`
	Required      bool              `json:"required"`
	Errors        []ValidationError `json:"errors,omitempty"`
	Warnings      []Warning         `json:"warnings,omitempty"`
	ComputedText  *string           `json:"computedText,omitempty"`
	ComputedValue *float64          `json:"computedValue,omitempty"`
}

// MarshalJSON encodes non-finite computed values as null.
func (v NodeView) MarshalJSON() ([]byte, error) {
	type plain NodeView
	out := plain(v)
	if out.ComputedValue != nil && (math.IsNaN(*out.ComputedValue) || math.IsInf(*out.ComputedValue, 0)) {
		return json.Marshal(struct {
			plain
			ComputedValue any `json:"computedValue"`
		}{plain: out, ComputedValue: nil})
	}
	return json.Marshal(out)
}

// View is the result of evaluating a document against an answer set.
type View struct {
	DocumentID string               `json:"documentId"`
	Nodes      map[string]*NodeView `json:"nodes"`
	// Order is the dependency order the nodes were evaluated in.
	Order []string `json:"order"`
	// Submittable is false when any node has a hard validation error.
	Submittable bool `json:"submittable"`
	// Finished is the value of the root finishRule (false when absent).
	Finished bool `json:"finished"`
	// Complete is true when the document is submittable and every visible
	// required node is answered, or when Finished is true.
	Complete bool `json:"complete"`
}

// Node returns the derived state for id.
func (v *View) Node(id string) (*NodeView, error) {
	nv, ok := v.Nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return nv, nil
}

// Errors returns every hard error in evaluation order.
func (v *View) Errors() []ValidationError {
	var out []ValidationError
	for _, id := range v.Order {
		out = append(out, v.Nodes[id].Errors...)
	}
	return out
}

// Warnings returns every warning in evaluation order.
func (v *View) Warnings() []Warning {
	var out []Warning
	for _, id := range v.Order {
		out = append(out, v.Nodes[id].Warnings...)
	}
	return out
}
