package compiler

import (
	"errors"
	"strings"

	"github.com/aretw0/surveykit/pkg/domain"
	"github.com/aretw0/surveykit/pkg/rules"
)

// Logic holds the pre-parsed rules of a node. Nil fields mean the rule is absent.
type Logic struct {
	Visible   rules.Expr
	Required  rules.Expr
	Validate  rules.Expr
	Calculate rules.Expr
	Finish    rules.Expr
	Replace   *rules.Template
}

// Ref is a reference from one of a node's rules to another node.
type Ref struct {
	Field string
	ID    string
}

// Node is the compiled form of a schema node.
type Node struct {
	Node   *domain.SchemaNode
	Slot   int
	Parent int // -1 for the root
	// Hidden is the static display flag; rules may hide the node further.
	Hidden bool
	Config Config
	Logic  Logic
	// Refs lists every referenced id per rule field, self references excluded.
	Refs []Ref
}

// ID returns the node id.
func (n *Node) ID() string { return n.Node.ID }

// Program is an immutable, compiled document. It is safe for concurrent use.
type Program struct {
	Index *domain.Index
	Nodes []*Node // indexed by slot, pre-order
}

// Root returns the compiled root.
func (p *Program) Root() *Node {
	if len(p.Nodes) == 0 {
		return nil
	}
	return p.Nodes[0]
}

// Lookup returns the compiled node for id.
func (p *Program) Lookup(id string) (*Node, error) {
	slot, ok := p.Index.Slot(id)
	if !ok {
		_, err := p.Index.Lookup(id)
		return nil, err
	}
	return p.Nodes[slot], nil
}

// Compile indexes the document, builds each node's configuration and parses
// all of its rules. Every failure found is reported; a single failure is
// returned as is, several as a *domain.AggregateError.
//
// References to ids that do not exist are kept: they evaluate to the empty
// value at runtime and are reported by the validator.
func Compile(root *domain.SchemaNode) (*Program, error) {
	if root == nil {
		return nil, errors.New("document is empty")
	}
	idx, err := domain.NewIndex(root)
	if err != nil {
		return nil, err
	}

	prog := &Program{Index: idx, Nodes: make([]*Node, idx.Len())}
	var errs []error
	for slot := range idx.Len() {
		n := idx.At(slot)
		cn, nodeErrs := compileNode(n)
		cn.Slot = slot
		cn.Parent = idx.ParentSlot(slot)
		prog.Nodes[slot] = cn
		errs = append(errs, nodeErrs...)
	}

	switch len(errs) {
	case 0:
		return prog, nil
	case 1:
		return nil, errs[0]
	}
	return nil, &domain.AggregateError{Errors: errs}
}

func compileNode(n *domain.SchemaNode) (*Node, []error) {
	attr := n.Attr()
	cn := &Node{Node: n, Hidden: attr.IsHidden()}

	var errs []error
	cfg, err := newConfig(n)
	if err != nil {
		errs = append(errs, err)
	}
	cn.Config = cfg

	expr := func(field, src string) rules.Expr {
		if strings.TrimSpace(src) == "" {
			return nil
		}
		e, err := rules.Parse(src)
		if err != nil {
			errs = append(errs, &domain.InvalidRuleSyntaxError{NodeID: n.ID, Field: field, Rule: src, Err: err})
			return nil
		}
		cn.addRefs(field, rules.Refs(e))
		return e
	}

	cn.Logic.Visible = expr(domain.FieldVisibleRule, attr.VisibleRule)
	cn.Logic.Required = expr(domain.FieldRequiredRule, attr.RequiredRule)
	cn.Logic.Validate = expr(domain.FieldValidateRule, attr.ValidateRule)
	cn.Logic.Calculate = expr(domain.FieldCalculate, attr.Calculate)
	cn.Logic.Finish = expr(domain.FieldFinishRule, attr.FinishRule)

	if attr.ReplaceTextRule != "" {
		tpl, err := rules.ParseTemplate(attr.ReplaceTextRule)
		if err != nil {
			errs = append(errs, &domain.InvalidRuleSyntaxError{
				NodeID: n.ID, Field: domain.FieldReplaceTextRule, Rule: attr.ReplaceTextRule, Err: err,
			})
		} else {
			cn.Logic.Replace = tpl
			cn.addRefs(domain.FieldReplaceTextRule, tpl.Refs())
		}
	}
	return cn, errs
}

func (n *Node) addRefs(field string, ids []string) {
	for _, id := range ids {
		if id == n.Node.ID {
			continue
		}
		n.Refs = append(n.Refs, Ref{Field: field, ID: id})
	}
}
