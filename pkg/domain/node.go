package domain

import (
	"fmt"
	"iter"
)

// SchemaNode is one entry of a survey definition tree: a question, a container
// or a presentational element. The root of a document is a node of type Survey.
type SchemaNode struct {
	ID          string        `json:"id" yaml:"id"`
	Title       string        `json:"title,omitempty" yaml:"title,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Type        QuestionType  `json:"type" yaml:"type"`
	Attribute   *Attribute    `json:"attribute,omitempty" yaml:"attribute,omitempty"`
	DataSource  []DataSource  `json:"dataSource,omitempty" yaml:"dataSource,omitempty"`
	Children    []*SchemaNode `json:"children,omitempty" yaml:"children,omitempty"`
	Row         []Row         `json:"row,omitempty" yaml:"row,omitempty"`

	// Tags are free-form labels for filtering; never evaluated.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Row is one line of a matrix question.
type Row struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// DataSource is a selectable option. Children form a cascading option tree
// that is independent from the schema tree.
type DataSource struct {
	Label    string       `json:"label" yaml:"label"`
	Value    string       `json:"value" yaml:"value"`
	Children []DataSource `json:"children,omitempty" yaml:"children,omitempty"`
	// Exclusive marks the option governed by the node's rejectOtherOption.
	Exclusive bool `json:"exclusive,omitempty" yaml:"exclusive,omitempty"`

	// ExamScore is the weight of this option (or blank) in "select" scoring mode.
	ExamScore *float64 `json:"examScore,omitempty" yaml:"examScore,omitempty"`
	// ExamCorrectAnswer is the expected text of this blank for multi-blank questions.
	ExamCorrectAnswer string `json:"examCorrectAnswer,omitempty" yaml:"examCorrectAnswer,omitempty"`
}

// IsDataType reports whether the node carries an answer.
func (n *SchemaNode) IsDataType() bool { return n != nil && n.Type.IsDataType() }

// IsVoidType reports whether the node is structural or presentational.
func (n *SchemaNode) IsVoidType() bool { return n != nil && n.Type.IsVoidType() }

// IsExamType reports whether the node is eligible for automatic scoring.
func (n *SchemaNode) IsExamType() bool { return n != nil && n.Type.IsExamType() }

// Attr returns the attribute bag, or an empty one when the node has none.
func (n *SchemaNode) Attr() *Attribute {
	if n.Attribute == nil {
		return &Attribute{}
	}
	return n.Attribute
}

// All yields the node and all its descendants in pre-order, respecting child
// order. The sequence is lazy and may be ranged over any number of times.
func (n *SchemaNode) All() iter.Seq[*SchemaNode] {
	return func(yield func(*SchemaNode) bool) {
		n.walk(yield)
	}
}

// Walk visits nodes in pre-order until fn returns false.
func (n *SchemaNode) Walk(fn func(*SchemaNode) bool) {
	n.walk(fn)
}

func (n *SchemaNode) walk(fn func(*SchemaNode) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

// Find looks a node up by id using a linear walk.
// Use an Index for repeated lookups.
func Find(root *SchemaNode, id string) (*SchemaNode, error) {
	for n := range root.All() {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
}

// OptionLabel returns the label of the option with the given value, searching
// the data source tree depth-first.
func (n *SchemaNode) OptionLabel(value string) (string, bool) {
	return findLabel(n.DataSource, value)
}

func findLabel(options []DataSource, value string) (string, bool) {
	for _, o := range options {
		if o.Value == value {
			return o.Label, true
		}
		if l, ok := findLabel(o.Children, value); ok {
			return l, true
		}
	}
	return "", false
}

// Clone returns a deep copy: attribute, options, rows, tags and the whole
// subtree are independent from the receiver.
func (n *SchemaNode) Clone() *SchemaNode {
	if n == nil {
		return nil
	}
	out := n.ShallowClone()
	out.Attribute = n.Attribute.Clone()
	out.DataSource = cloneOptions(n.DataSource)
	if n.Row != nil {
		out.Row = append([]Row(nil), n.Row...)
	}
	if n.Tags != nil {
		out.Tags = append([]string(nil), n.Tags...)
	}
	if n.Children != nil {
		out.Children = make([]*SchemaNode, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// ShallowClone copies only the node itself. Attribute, options, rows, tags
// and children are shared with the receiver, so mutating them through either
// copy is visible in both.
func (n *SchemaNode) ShallowClone() *SchemaNode {
	if n == nil {
		return nil
	}
	out := *n
	return &out
}

func cloneOptions(in []DataSource) []DataSource {
	if in == nil {
		return nil
	}
	out := make([]DataSource, len(in))
	for i, o := range in {
		out[i] = o
		if o.ExamScore != nil {
			v := *o.ExamScore
			out[i].ExamScore = &v
		}
		out[i].Children = cloneOptions(o.Children)
	}
	return out
}
