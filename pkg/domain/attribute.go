package domain

import "fmt"

// Attribute is the serialized per-node configuration bag. Fields that do not
// apply to a node's type are ignored. The compiler turns this bag into a
// type-specific configuration; the bag itself is kept verbatim so documents
// round-trip without loss.
type Attribute struct {
	// Display is one of "", "visible", "hidden" or "none".
	Display  string `json:"display,omitempty" yaml:"display,omitempty"`
	Hidden   *bool  `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Width    *int   `json:"width,omitempty" yaml:"width,omitempty"`
	DataType string `json:"dataType,omitempty" yaml:"dataType,omitempty"`
	Required *bool  `json:"required,omitempty" yaml:"required,omitempty"`

	DefaultChecked *bool `json:"defaultChecked,omitempty" yaml:"defaultChecked,omitempty"`
	Rows           *int  `json:"rows,omitempty" yaml:"rows,omitempty"`

	// Scope is a hard range check; SoftScope only warns.
	Scope         string `json:"scope,omitempty" yaml:"scope,omitempty"`
	ScopeDesc     string `json:"scopeDesc,omitempty" yaml:"scopeDesc,omitempty"`
	SoftScope     string `json:"softScope,omitempty" yaml:"softScope,omitempty"`
	SoftScopeDesc string `json:"softScopeDesc,omitempty" yaml:"softScopeDesc,omitempty"`

	ReadOnly *bool  `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	Suffix   string `json:"suffix,omitempty" yaml:"suffix,omitempty"`

	// TextLimit bounds text length, e.g. "[1,2]" or "[,5]".
	TextLimit string `json:"textLimit,omitempty" yaml:"textLimit,omitempty"`
	// AnswerLimit bounds the number of selected options.
	AnswerLimit string `json:"answerLimit,omitempty" yaml:"answerLimit,omitempty"`

	Finish       *bool  `json:"finish,omitempty" yaml:"finish,omitempty"`
	CurrentPage  *int   `json:"currentPage,omitempty" yaml:"currentPage,omitempty"`
	TotalPage    *int   `json:"totalPage,omitempty" yaml:"totalPage,omitempty"`
	SubmitButton string `json:"submitButton,omitempty" yaml:"submitButton,omitempty"`
	NumericScale *int   `json:"numericScale,omitempty" yaml:"numericScale,omitempty"`

	BackgroundImage string `json:"backgroundImage,omitempty" yaml:"backgroundImage,omitempty"`
	HeaderImage     string `json:"headerImage,omitempty" yaml:"headerImage,omitempty"`

	FileAccept   string   `json:"fileAccept,omitempty" yaml:"fileAccept,omitempty"`
	MaxFileCount *int     `json:"maxFileCount,omitempty" yaml:"maxFileCount,omitempty"`
	MaxFileSize  *float64 `json:"maxFileSize,omitempty" yaml:"maxFileSize,omitempty"`

	ScoreStyle string `json:"scoreStyle,omitempty" yaml:"scoreStyle,omitempty"`
	// AutoSize is a textarea row range such as "[4,6]".
	AutoSize   string `json:"autoSize,omitempty" yaml:"autoSize,omitempty"`
	CameraOnly *bool  `json:"cameraOnly,omitempty" yaml:"cameraOnly,omitempty"`
	Columns    *int   `json:"columns,omitempty" yaml:"columns,omitempty"`
	// Content is the stem of a fill-blank question.
	Content     string `json:"content,omitempty" yaml:"content,omitempty"`
	MapMove     *bool  `json:"mapMove,omitempty" yaml:"mapMove,omitempty"`
	StatEnabled *bool  `json:"statEnabled,omitempty" yaml:"statEnabled,omitempty"`

	NpsStart      string `json:"npsStart,omitempty" yaml:"npsStart,omitempty"`
	NpsEnd        string `json:"npsEnd,omitempty" yaml:"npsEnd,omitempty"`
	NpsStartNum   *int   `json:"npsStartNum,omitempty" yaml:"npsStartNum,omitempty"`
	NpsTotalNum   *int   `json:"npsTotalNum,omitempty" yaml:"npsTotalNum,omitempty"`
	NpsInvertSort *bool  `json:"npsInvertSort,omitempty" yaml:"npsInvertSort,omitempty"`

	FinishRule      string `json:"finishRule,omitempty" yaml:"finishRule,omitempty"`
	VisibleRule     string `json:"visibleRule,omitempty" yaml:"visibleRule,omitempty"`
	RequiredRule    string `json:"requiredRule,omitempty" yaml:"requiredRule,omitempty"`
	ReplaceTextRule string `json:"replaceTextRule,omitempty" yaml:"replaceTextRule,omitempty"`
	ValidateRule    string `json:"validateRule,omitempty" yaml:"validateRule,omitempty"`
	Calculate       string `json:"calculate,omitempty" yaml:"calculate,omitempty"`

	RejectOtherOption RejectOtherOption `json:"rejectOtherOption,omitempty" yaml:"rejectOtherOption,omitempty"`

	ExamScore         *float64      `json:"examScore,omitempty" yaml:"examScore,omitempty"`
	ExamAnswerMode    ExamScoreMode `json:"examAnswerMode,omitempty" yaml:"examAnswerMode,omitempty"`
	ExamMatchRule     ExamMatchRule `json:"examMatchRule,omitempty" yaml:"examMatchRule,omitempty"`
	ExamCorrectAnswer string        `json:"examCorrectAnswer,omitempty" yaml:"examCorrectAnswer,omitempty"`
	ExamAnalysis      string        `json:"examAnalysis,omitempty" yaml:"examAnalysis,omitempty"`
}

// Rule field names, as they appear in documents and error messages.
const (
	FieldVisibleRule     = "visibleRule"
	FieldRequiredRule    = "requiredRule"
	FieldValidateRule    = "validateRule"
	FieldCalculate       = "calculate"
	FieldReplaceTextRule = "replaceTextRule"
	FieldFinishRule      = "finishRule"
	FieldScope           = "scope"
	FieldSoftScope       = "softScope"
	FieldTextLimit       = "textLimit"
	FieldAnswerLimit     = "answerLimit"
	FieldAutoSize        = "autoSize"
)

// Clone returns an independent copy of the bag.
func (a *Attribute) Clone() *Attribute {
	if a == nil {
		return nil
	}
	out := *a
	out.Hidden = clonePtr(a.Hidden)
	out.Width = clonePtr(a.Width)
	out.Required = clonePtr(a.Required)
	out.DefaultChecked = clonePtr(a.DefaultChecked)
	out.Rows = clonePtr(a.Rows)
	out.ReadOnly = clonePtr(a.ReadOnly)
	out.Finish = clonePtr(a.Finish)
	out.CurrentPage = clonePtr(a.CurrentPage)
	out.TotalPage = clonePtr(a.TotalPage)
	out.NumericScale = clonePtr(a.NumericScale)
	out.MaxFileCount = clonePtr(a.MaxFileCount)
	out.MaxFileSize = clonePtr(a.MaxFileSize)
	out.CameraOnly = clonePtr(a.CameraOnly)
	out.Columns = clonePtr(a.Columns)
	out.MapMove = clonePtr(a.MapMove)
	out.StatEnabled = clonePtr(a.StatEnabled)
	out.NpsStartNum = clonePtr(a.NpsStartNum)
	out.NpsTotalNum = clonePtr(a.NpsTotalNum)
	out.NpsInvertSort = clonePtr(a.NpsInvertSort)
	out.ExamScore = clonePtr(a.ExamScore)
	return &out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// IsHidden reports whether the node is statically hidden.
func (a *Attribute) IsHidden() bool {
	if a == nil {
		return false
	}
	if a.Hidden != nil && *a.Hidden {
		return true
	}
	return a.Display == "hidden" || a.Display == "none"
}

// IsRequired returns the static required flag.
func (a *Attribute) IsRequired() bool {
	return a != nil && a.Required != nil && *a.Required
}

// Rules returns the non-empty rule strings keyed by field name.
func (a *Attribute) Rules() map[string]string {
	out := make(map[string]string)
	if a == nil {
		return out
	}
	for field, rule := range map[string]string{
		FieldVisibleRule:     a.VisibleRule,
		FieldRequiredRule:    a.RequiredRule,
		FieldValidateRule:    a.ValidateRule,
		FieldCalculate:       a.Calculate,
		FieldReplaceTextRule: a.ReplaceTextRule,
		FieldFinishRule:      a.FinishRule,
	} {
		if rule != "" {
			out[field] = rule
		}
	}
	return out
}

// ExamMatchRule selects how an answer is compared with the expected answer.
type ExamMatchRule string

const (
	// MatchCompleteSame requires the answer to equal the expected answer.
	MatchCompleteSame ExamMatchRule = "completeSame"
	// MatchContain requires the answer to contain one of the ";"-separated expected tokens.
	MatchContain ExamMatchRule = "contain"
)

func (r *ExamMatchRule) UnmarshalText(text []byte) error {
	switch v := ExamMatchRule(text); v {
	case "", MatchCompleteSame, MatchContain:
		*r = v
		return nil
	}
	return fmt.Errorf("unknown exam match rule %q", string(text))
}

func (r ExamMatchRule) MarshalText() ([]byte, error) { return []byte(r), nil }

// ExamScoreMode selects how an exam node is scored.
type ExamScoreMode string

const (
	ModeOnlyOne       ExamScoreMode = "onlyOne"
	ModeSelectAll     ExamScoreMode = "selectAll"
	ModeSelectCorrect ExamScoreMode = "selectCorrect"
	ModeSelect        ExamScoreMode = "select"
	ModeManual        ExamScoreMode = "manual"
	ModeNone          ExamScoreMode = "none"
)

func (m *ExamScoreMode) UnmarshalText(text []byte) error {
	switch v := ExamScoreMode(text); v {
	case "", ModeOnlyOne, ModeSelectAll, ModeSelectCorrect, ModeSelect, ModeManual, ModeNone:
		*m = v
		return nil
	}
	return fmt.Errorf("unknown exam answer mode %q", string(text))
}

func (m ExamScoreMode) MarshalText() ([]byte, error) { return []byte(m), nil }

// RejectOtherOption configures the exclusive option of a multiple choice.
type RejectOtherOption string

const (
	// RejectAll makes the exclusive option incompatible with every other selection.
	RejectAll RejectOtherOption = "rejectAll"
	// RejectOther makes exclusive options mutually incompatible.
	RejectOther RejectOtherOption = "rejectOther"
)

func (r *RejectOtherOption) UnmarshalText(text []byte) error {
	switch v := RejectOtherOption(text); v {
	case "", RejectAll, RejectOther:
		*r = v
		return nil
	}
	return fmt.Errorf("unknown reject option mode %q", string(text))
}

func (r RejectOtherOption) MarshalText() ([]byte, error) { return []byte(r), nil }
