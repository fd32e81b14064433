package runtime

import (
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/surveykit/internal/compiler"
	"github.com/aretw0/surveykit/pkg/domain"
	"github.com/aretw0/surveykit/pkg/rules"
)

// state is the scratch space of one evaluation pass, indexed by slot.
type state struct {
	prog    *compiler.Program
	answers domain.AnswerSet
	visible []bool
	values  []rules.Value
}

func newState(prog *compiler.Program, answers domain.AnswerSet) *state {
	return &state{
		prog:    prog,
		answers: answers,
		visible: make([]bool, len(prog.Nodes)),
		values:  make([]rules.Value, len(prog.Nodes)),
	}
}

// answerValue converts the submitted answer of a data node into a rule value.
func (st *state) answerValue(slot int) rules.Value {
	n := st.prog.Nodes[slot].Node
	if !n.IsDataType() {
		return rules.Empty()
	}
	return valueOf(st.answers.Get(n.ID))
}

func valueOf(a domain.Answer) rules.Value {
	if a.IsEmpty() {
		return rules.Empty()
	}
	if a.Kind == domain.AnswerScalar {
		return rules.Text(a.Value)
	}
	var items []string
	for _, v := range a.List() {
		if strings.TrimSpace(v) != "" {
			items = append(items, v)
		}
	}
	return rules.ListOf(items)
}

// resolver returns the rules.Resolver seen by the rules of slot.
func (st *state) resolver(slot int) rules.Resolver {
	return &resolver{st: st, slot: slot}
}

// displayText is the text substituted for a ${id} placeholder: option labels
// for choices, the computed value for calculated nodes, empty when hidden.
func (st *state) displayText(id string) string {
	slot, ok := st.prog.Index.Slot(id)
	if !ok || !st.visible[slot] {
		return ""
	}
	cn := st.prog.Nodes[slot]
	if cn.Logic.Calculate != nil {
		v := st.values[slot]
		if n, ok := v.Number(); ok && !math.IsNaN(n) && !math.IsInf(n, 0) {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
		return ""
	}

	answer := st.answers.Get(id)
	if answer.IsEmpty() {
		return ""
	}
	values := answer.List()
	labels := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		if label, ok := cn.Node.OptionLabel(v); ok {
			v = label
		}
		labels = append(labels, v)
	}
	return strings.Join(labels, ",")
}

type resolver struct {
	st   *state
	slot int
}

func (r *resolver) Resolve(id string) rules.Value {
	slot, ok := r.st.prog.Index.Slot(id)
	if !ok || !r.st.visible[slot] {
		return rules.Empty()
	}
	return r.st.values[slot]
}

func (r *resolver) Self() rules.Value {
	return r.st.answerValue(r.slot)
}
