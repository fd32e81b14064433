package dsl

import (
	"strconv"
	"strings"

	"github.com/aretw0/surveykit/pkg/domain"
)

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node    *domain.SchemaNode
	builder *Builder
}

// Add creates a child node. Ids are unique per document: adding an id that
// already exists anywhere returns the existing builder unchanged.
func (n *NodeBuilder) Add(id string, typ domain.QuestionType) *NodeBuilder {
	if nb, ok := n.builder.nodes[id]; ok {
		return nb
	}
	nb := n.builder.newNode(id, typ)
	n.node.Children = append(n.node.Children, nb.node)
	return nb
}

func (n *NodeBuilder) attr() *domain.Attribute {
	if n.node.Attribute == nil {
		n.node.Attribute = &domain.Attribute{}
	}
	return n.node.Attribute
}

// Title sets the node title.
func (n *NodeBuilder) Title(title string) *NodeBuilder {
	n.node.Title = title
	return n
}

// Description sets the node description.
func (n *NodeBuilder) Description(desc string) *NodeBuilder {
	n.node.Description = desc
	return n
}

// Tags appends free-form labels.
func (n *NodeBuilder) Tags(tags ...string) *NodeBuilder {
	n.node.Tags = append(n.node.Tags, tags...)
	return n
}

// Option appends a selectable option.
func (n *NodeBuilder) Option(value, label string) *NodeBuilder {
	n.node.DataSource = append(n.node.DataSource, domain.DataSource{Label: label, Value: value})
	return n
}

// Options appends one option per value, using the value as label.
func (n *NodeBuilder) Options(values ...string) *NodeBuilder {
	for _, v := range values {
		n.Option(v, v)
	}
	return n
}

// Blank appends a blank of a multi-blank question with its expected answer.
func (n *NodeBuilder) Blank(correct string) *NodeBuilder {
	v := strconv.Itoa(len(n.node.DataSource) + 1)
	n.node.DataSource = append(n.node.DataSource, domain.DataSource{Label: v, Value: v, ExamCorrectAnswer: correct})
	return n
}

// Weight sets the select-mode weight of the most recently added option or blank.
func (n *NodeBuilder) Weight(score float64) *NodeBuilder {
	if len(n.node.DataSource) > 0 {
		n.node.DataSource[len(n.node.DataSource)-1].ExamScore = &score
	}
	return n
}

// Exclusive flags the most recently added option as governed by RejectOther.
func (n *NodeBuilder) Exclusive() *NodeBuilder {
	if len(n.node.DataSource) > 0 {
		n.node.DataSource[len(n.node.DataSource)-1].Exclusive = true
	}
	return n
}

// Row appends a matrix row.
func (n *NodeBuilder) Row(id, title string) *NodeBuilder {
	n.node.Row = append(n.node.Row, domain.Row{ID: id, Title: title})
	return n
}

// Required marks the node as statically required.
func (n *NodeBuilder) Required() *NodeBuilder {
	required := true
	n.attr().Required = &required
	return n
}

// Hidden hides the node and its subtree.
func (n *NodeBuilder) Hidden() *NodeBuilder {
	hidden := true
	n.attr().Hidden = &hidden
	return n
}

// DataType sets the declared data type ("number" enables numeric checks).
func (n *NodeBuilder) DataType(t string) *NodeBuilder {
	n.attr().DataType = t
	return n
}

// Content sets the stem of a fill-blank or remark node.
func (n *NodeBuilder) Content(content string) *NodeBuilder {
	n.attr().Content = content
	return n
}

// VisibleWhen sets the visibility rule.
func (n *NodeBuilder) VisibleWhen(rule string) *NodeBuilder {
	n.attr().VisibleRule = rule
	return n
}

// RequiredWhen sets the conditional required rule.
func (n *NodeBuilder) RequiredWhen(rule string) *NodeBuilder {
	n.attr().RequiredRule = rule
	return n
}

// Validate sets the validation rule.
func (n *NodeBuilder) Validate(rule string) *NodeBuilder {
	n.attr().ValidateRule = rule
	return n
}

// Calculate sets the calculation expression.
func (n *NodeBuilder) Calculate(expr string) *NodeBuilder {
	n.attr().Calculate = expr
	return n
}

// ReplaceText sets the text replacement template.
func (n *NodeBuilder) ReplaceText(tmpl string) *NodeBuilder {
	n.attr().ReplaceTextRule = tmpl
	return n
}

// FinishWhen sets the early-finish rule. Only meaningful on the root.
func (n *NodeBuilder) FinishWhen(rule string) *NodeBuilder {
	n.attr().FinishRule = rule
	return n
}

// Scope sets the hard numeric range, e.g. "[0,120]", with an optional message.
func (n *NodeBuilder) Scope(r string, desc ...string) *NodeBuilder {
	a := n.attr()
	a.Scope = r
	a.ScopeDesc = strings.Join(desc, " ")
	return n
}

// SoftScope sets the warning-only numeric range.
func (n *NodeBuilder) SoftScope(r string, desc ...string) *NodeBuilder {
	a := n.attr()
	a.SoftScope = r
	a.SoftScopeDesc = strings.Join(desc, " ")
	return n
}

// TextLimit bounds the answer length.
func (n *NodeBuilder) TextLimit(r string) *NodeBuilder {
	n.attr().TextLimit = r
	return n
}

// AnswerLimit bounds the number of selections.
func (n *NodeBuilder) AnswerLimit(r string) *NodeBuilder {
	n.attr().AnswerLimit = r
	return n
}

// RejectOther sets how exclusive options combine with other selections.
// Without Exclusive flags the last option is the exclusive one.
func (n *NodeBuilder) RejectOther(mode domain.RejectOtherOption) *NodeBuilder {
	n.attr().RejectOtherOption = mode
	return n
}

// Exam configures automatic scoring. An empty mode lets the compiler pick the default.
func (n *NodeBuilder) Exam(score float64, mode domain.ExamScoreMode, correct string) *NodeBuilder {
	a := n.attr()
	a.ExamScore = &score
	a.ExamAnswerMode = mode
	a.ExamCorrectAnswer = correct
	return n
}

// Match sets how answers are compared with the expected answer.
func (n *NodeBuilder) Match(rule domain.ExamMatchRule) *NodeBuilder {
	n.attr().ExamMatchRule = rule
	return n
}

// Analysis sets the explanation shown with the exam result.
func (n *NodeBuilder) Analysis(text string) *NodeBuilder {
	n.attr().ExamAnalysis = text
	return n
}

// Build returns a copy of the node and its subtree without validation.
// This is primarily used by the Builder, but exposed for advanced usage.
func (n *NodeBuilder) Build() *domain.SchemaNode {
	return n.node.Clone()
}
