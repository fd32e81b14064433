package compiler

import (
	"strings"

	"github.com/aretw0/surveykit/pkg/domain"
	"github.com/aretw0/surveykit/pkg/rules"
)

// Config is the type-specific configuration of a node. It is a closed set of
// variants, one per family of question types, each holding only the
// attributes that family uses.
type Config interface {
	// AnswerChecks returns the answer checks, or nil for void types.
	AnswerChecks() *Checks
}

// Checks are the answer constraints shared by all data types.
type Checks struct {
	Required bool
	// Numeric answers are validated on their value rather than their length.
	Numeric       bool
	Scope         *rules.Range
	ScopeDesc     string
	SoftScope     *rules.Range
	SoftScopeDesc string
	TextLimit     *rules.Range
	AnswerLimit   *rules.Range
}

// ExamConfig holds the scoring settings of an exam-type node.
type ExamConfig struct {
	Score    float64
	Mode     domain.ExamScoreMode
	Match    domain.ExamMatchRule
	Correct  string
	Analysis string
}

// ContainerConfig is used by Survey, QuestionSet and Pagination.
type ContainerConfig struct{}

// PresentationConfig is used by Remark, SplitLine and Option.
type PresentationConfig struct{}

// TextConfig is used by free-text types: blanks, textarea, signature, address
// and the user/department pickers.
type TextConfig struct {
	Checks
	Exam *ExamConfig
}

// ChoiceConfig is used by Radio, Checkbox, Select and Cascader.
type ChoiceConfig struct {
	Checks
	Options []domain.DataSource
	Reject  domain.RejectOtherOption
	// Exclusive lists the options governed by Reject: those flagged
	// exclusive, or the last declared option when none is.
	Exclusive []string
	Exam      *ExamConfig
}

// RatingConfig is used by Score and Nps.
type RatingConfig struct {
	Checks
	// Bounds is the scale built from npsStartNum and npsTotalNum, nil when
	// neither is set.
	Bounds *rules.Range
}

// MatrixConfig is used by all matrix types.
type MatrixConfig struct {
	Checks
	Rows []string
}

// UploadConfig is used by Upload.
type UploadConfig struct {
	Checks
	// Accept lists the allowed file extensions, lower-cased with a leading dot.
	Accept []string
}

func (*ContainerConfig) AnswerChecks() *Checks    { return nil }
func (*PresentationConfig) AnswerChecks() *Checks { return nil }
func (c *TextConfig) AnswerChecks() *Checks       { return &c.Checks }
func (c *ChoiceConfig) AnswerChecks() *Checks     { return &c.Checks }
func (c *RatingConfig) AnswerChecks() *Checks     { return &c.Checks }
func (c *MatrixConfig) AnswerChecks() *Checks     { return &c.Checks }
func (c *UploadConfig) AnswerChecks() *Checks     { return &c.Checks }

// ExamOf returns the exam settings of a config, or nil.
func ExamOf(c Config) *ExamConfig {
	switch t := c.(type) {
	case *TextConfig:
		return t.Exam
	case *ChoiceConfig:
		return t.Exam
	}
	return nil
}

// newConfig builds the variant for n and validates the attributes it uses.
// Attributes that do not apply to the type are ignored.
func newConfig(n *domain.SchemaNode) (Config, error) {
	attr := n.Attr()
	t := n.Type

	if t.IsVoidType() {
		if t.IsContainer() {
			return &ContainerConfig{}, nil
		}
		return &PresentationConfig{}, nil
	}

	checks, err := newChecks(n, attr)
	if err != nil {
		return nil, err
	}

	switch {
	case t.IsChoice():
		exam, err := newExam(n, attr)
		if err != nil {
			return nil, err
		}
		return &ChoiceConfig{
			Checks:    checks,
			Options:   n.DataSource,
			Reject:    attr.RejectOtherOption,
			Exclusive: exclusiveOptions(n.DataSource),
			Exam:      exam,
		}, nil
	case t.IsMatrix():
		rows := make([]string, len(n.Row))
		for i, r := range n.Row {
			rows[i] = r.ID
		}
		return &MatrixConfig{Checks: checks, Rows: rows}, nil
	case t == domain.TypeScore || t == domain.TypeNps:
		bounds, err := ratingBounds(n, attr)
		if err != nil {
			return nil, err
		}
		return &RatingConfig{Checks: checks, Bounds: bounds}, nil
	case t == domain.TypeUpload:
		cfg := &UploadConfig{Checks: checks}
		for _, ext := range strings.Split(attr.FileAccept, ",") {
			ext = strings.ToLower(strings.TrimSpace(ext))
			// MIME patterns cannot be checked against a file name.
			if ext == "" || strings.Contains(ext, "/") {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			cfg.Accept = append(cfg.Accept, ext)
		}
		if attr.MaxFileCount != nil && cfg.AnswerLimit == nil {
			limit := float64(*attr.MaxFileCount)
			cfg.AnswerLimit = &rules.Range{Max: &limit}
		}
		return cfg, nil
	}

	exam, err := newExam(n, attr)
	if err != nil {
		return nil, err
	}
	return &TextConfig{Checks: checks, Exam: exam}, nil
}

// ratingBounds derives the answer scale of a rating node. The scale starts at
// npsStartNum (default 0) and holds npsTotalNum points.
func ratingBounds(n *domain.SchemaNode, attr *domain.Attribute) (*rules.Range, error) {
	if attr.NpsStartNum == nil && attr.NpsTotalNum == nil {
		return nil, nil
	}
	start := 0.0
	if attr.NpsStartNum != nil {
		start = float64(*attr.NpsStartNum)
	}
	r := &rules.Range{Min: &start}
	if attr.NpsTotalNum != nil {
		if *attr.NpsTotalNum < 1 {
			return nil, &domain.InvalidAttributeError{NodeID: n.ID, Field: "npsTotalNum", Reason: "must be at least 1"}
		}
		end := start + float64(*attr.NpsTotalNum-1)
		r.Max = &end
	}
	return r, nil
}

func exclusiveOptions(options []domain.DataSource) []string {
	var out []string
	for _, o := range options {
		if o.Exclusive {
			out = append(out, o.Value)
		}
	}
	if len(out) == 0 && len(options) > 0 {
		out = []string{options[len(options)-1].Value}
	}
	return out
}

func newChecks(n *domain.SchemaNode, attr *domain.Attribute) (Checks, error) {
	c := Checks{
		Required:      attr.IsRequired(),
		Numeric:       n.Type.IsNumeric() || attr.DataType == "number",
		ScopeDesc:     attr.ScopeDesc,
		SoftScopeDesc: attr.SoftScopeDesc,
	}
	for _, f := range []struct {
		field string
		src   string
		dst   **rules.Range
	}{
		{domain.FieldScope, attr.Scope, &c.Scope},
		{domain.FieldSoftScope, attr.SoftScope, &c.SoftScope},
		{domain.FieldTextLimit, attr.TextLimit, &c.TextLimit},
		{domain.FieldAnswerLimit, attr.AnswerLimit, &c.AnswerLimit},
	} {
		if strings.TrimSpace(f.src) == "" {
			continue
		}
		r, err := rules.ParseRange(f.src)
		if err != nil {
			return Checks{}, &domain.InvalidRuleSyntaxError{NodeID: n.ID, Field: f.field, Rule: f.src, Err: err}
		}
		*f.dst = &r
	}
	if attr.AutoSize != "" {
		if _, err := rules.ParseRange(attr.AutoSize); err != nil {
			return Checks{}, &domain.InvalidRuleSyntaxError{NodeID: n.ID, Field: domain.FieldAutoSize, Rule: attr.AutoSize, Err: err}
		}
	}
	return c, nil
}

func newExam(n *domain.SchemaNode, attr *domain.Attribute) (*ExamConfig, error) {
	if !n.Type.IsExamType() || (attr.ExamScore == nil && attr.ExamAnswerMode == "") {
		return nil, nil
	}
	exam := &ExamConfig{
		Mode:     attr.ExamAnswerMode,
		Match:    attr.ExamMatchRule,
		Correct:  attr.ExamCorrectAnswer,
		Analysis: attr.ExamAnalysis,
	}
	if attr.ExamScore != nil {
		if *attr.ExamScore < 0 {
			return nil, &domain.InvalidAttributeError{NodeID: n.ID, Field: "examScore", Reason: "must not be negative"}
		}
		exam.Score = *attr.ExamScore
	}
	if exam.Match == "" {
		exam.Match = domain.MatchCompleteSame
	}
	if exam.Mode == "" {
		exam.Mode = defaultMode(n.Type, exam.Score)
	}
	for _, o := range n.DataSource {
		if o.ExamScore != nil && *o.ExamScore < 0 {
			return nil, &domain.InvalidAttributeError{
				NodeID: n.ID,
				Field:  "dataSource[" + o.Value + "].examScore",
				Reason: "must not be negative",
			}
		}
	}
	return exam, nil
}

// defaultMode applies when examScore is set but examAnswerMode is not.
func defaultMode(t domain.QuestionType, score float64) domain.ExamScoreMode {
	if score <= 0 {
		return domain.ModeNone
	}
	if t.MultiValued() {
		return domain.ModeSelectAll
	}
	return domain.ModeOnlyOne
}
