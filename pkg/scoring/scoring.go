package scoring

import (
	"math"
	"slices"
	"strings"

	"github.com/aretw0/surveykit/internal/compiler"
	"github.com/aretw0/surveykit/pkg/domain"
)

// Option configures a scoring call.
type Option func(*options)

type options struct {
	manual map[string]float64
}

// WithManualScores supplies human scores for nodes in manual mode, keyed by
// node id. Scores are clamped to the node maximum.
func WithManualScores(scores map[string]float64) Option {
	return func(o *options) {
		if o.manual == nil {
			o.manual = make(map[string]float64, len(scores))
		}
		for id, s := range scores {
			o.manual[id] = s
		}
	}
}

// Score compiles root and scores its exam nodes against answers.
func Score(root *domain.SchemaNode, answers domain.AnswerSet, opts ...Option) (*Report, error) {
	prog, err := compiler.Compile(root)
	if err != nil {
		return nil, err
	}
	return ScoreProgram(prog, answers, opts...), nil
}

// ScoreProgram scores every exam-type node of prog in document order.
// Void and non-exam nodes are skipped. Missing answers score zero.
func ScoreProgram(prog *compiler.Program, answers domain.AnswerSet, opts ...Option) *Report {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	report := &Report{DocumentID: prog.Root().ID(), Nodes: []NodeScore{}}
	for _, n := range prog.Nodes {
		if !n.Node.IsExamType() {
			continue
		}
		ns := scoreNode(n, answers.Get(n.ID()), o)
		report.Nodes = append(report.Nodes, ns)

		switch ns.Status {
		case StatusExcluded:
			continue
		case StatusManual:
			if ns.Score == nil {
				report.Manual = append(report.Manual, ns.ID)
			} else {
				report.ManualTotal += *ns.Score
			}
		default:
			report.AutoTotal += *ns.Score
		}
		report.MaxTotal += ns.Max
	}
	report.Total = report.AutoTotal + report.ManualTotal
	return report
}

func scoreNode(n *compiler.Node, answer domain.Answer, o *options) NodeScore {
	ns := NodeScore{ID: n.ID(), Type: n.Node.Type, Status: StatusExcluded}
	exam := compiler.ExamOf(n.Config)
	if exam == nil {
		return ns
	}
	ns.Mode = exam.Mode
	ns.Analysis = exam.Analysis
	if exam.Mode == domain.ModeNone {
		return ns
	}
	ns.Max = exam.Score

	if exam.Mode == domain.ModeManual {
		if human, ok := o.manual[ns.ID]; ok {
			s := clamp(human, exam.Score)
			ns.Score = &s
			ns.Correct = s == exam.Score
			ns.Status = StatusManual
			return ns
		}
		if answer.IsEmpty() {
			return unanswered(ns)
		}
		ns.Status = StatusManual
		return ns
	}

	if answer.IsEmpty() {
		return unanswered(ns)
	}

	var s float64
	if n.Node.Type.IsChoice() {
		s = scoreChoice(n.Node, exam, selected(answer))
	} else {
		s = scoreBlanks(n.Node, exam, answer.List())
	}
	s = clamp(s, exam.Score)
	ns.Score = &s
	ns.Correct = exam.Score > 0 && s == exam.Score
	ns.Status = StatusScored
	return ns
}

func unanswered(ns NodeScore) NodeScore {
	zero := 0.0
	ns.Score = &zero
	ns.Status = StatusUnanswered
	return ns
}

// scoreChoice scores the selected option values of a choice question.
func scoreChoice(n *domain.SchemaNode, exam *compiler.ExamConfig, picked []string) float64 {
	correct := splitList(exam.Correct)
	if len(correct) == 0 {
		return 0
	}
	isCorrect := func(v string) bool {
		for _, c := range correct {
			if matches(v, c, exam.Match) {
				return true
			}
		}
		return false
	}

	hits, wrong := 0, 0
	for _, v := range picked {
		if isCorrect(v) {
			hits++
		} else {
			wrong++
		}
	}

	full := exam.Score
	switch exam.Mode {
	case domain.ModeOnlyOne:
		return all(len(picked) == 1 && hits == 1, full)
	case domain.ModeSelectAll:
		// Every correct token must be matched by some pick, with no wrong pick.
		if wrong > 0 {
			return 0
		}
		for _, c := range correct {
			if !slices.ContainsFunc(picked, func(v string) bool { return matches(v, c, exam.Match) }) {
				return 0
			}
		}
		return full
	case domain.ModeSelectCorrect:
		return full / float64(len(correct)) * float64(hits-wrong)
	case domain.ModeSelect:
		total := 0.0
		for _, v := range picked {
			w := optionWeight(n, v)
			switch {
			case isCorrect(v) && w != nil:
				total += *w
			case isCorrect(v):
				total += full / float64(len(correct))
			case w != nil:
				total -= *w
			}
		}
		return total
	}
	return 0
}

// scoreBlanks scores typed answers blank by blank.
func scoreBlanks(n *domain.SchemaNode, exam *compiler.ExamConfig, given []string) float64 {
	expected := expectedBlanks(n, exam)
	if len(expected) == 0 {
		return 0
	}
	if len(expected) == 1 && len(given) > 1 {
		// A single-blank question answered as a list is compared as a whole.
		given = []string{strings.Join(given, ",")}
	}

	hit := make([]bool, len(expected))
	matched := 0
	for i, e := range expected {
		if i < len(given) && matches(given[i], e, exam.Match) {
			hit[i] = true
			matched++
		}
	}

	full := exam.Score
	switch exam.Mode {
	case domain.ModeOnlyOne, domain.ModeSelectAll:
		return all(matched == len(expected), full)
	case domain.ModeSelectCorrect:
		return full * float64(matched) / float64(len(expected))
	case domain.ModeSelect:
		total := 0.0
		for i, w := range blankWeights(n, exam, len(expected)) {
			if hit[i] {
				total += w
			}
		}
		return total
	}
	return 0
}

func optionWeight(n *domain.SchemaNode, value string) *float64 {
	for _, o := range n.DataSource {
		if o.Value == value {
			return o.ExamScore
		}
	}
	return nil
}

func selected(a domain.Answer) []string {
	var out []string
	seen := make(map[string]bool)
	for _, v := range a.List() {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func all(ok bool, full float64) float64 {
	if ok {
		return full
	}
	return 0
}

// clamp bounds s to [0, limit].
func clamp(s, limit float64) float64 {
	if math.IsNaN(s) || s < 0 {
		return 0
	}
	return math.Min(s, limit)
}
