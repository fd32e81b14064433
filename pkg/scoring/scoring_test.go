package scoring

import (
	"testing"

	"github.com/aretw0/surveykit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func choices(values ...string) []domain.DataSource {
	out := make([]domain.DataSource, len(values))
	for i, v := range values {
		out[i] = domain.DataSource{Label: v, Value: v}
	}
	return out
}

func exam(children ...*domain.SchemaNode) *domain.SchemaNode {
	return &domain.SchemaNode{ID: "exam", Type: domain.TypeSurvey, Children: children}
}

func score(t *testing.T, doc *domain.SchemaNode, answers domain.AnswerSet, opts ...Option) *Report {
	t.Helper()
	report, err := Score(doc, answers, opts...)
	require.NoError(t, err)
	return report
}

func TestScore_OnlyOneScenario(t *testing.T) {
	doc := exam(&domain.SchemaNode{
		ID:   "q",
		Type: domain.TypeRadio,
		Attribute: &domain.Attribute{
			ExamScore:         ptr(10),
			ExamMatchRule:     domain.MatchCompleteSame,
			ExamAnswerMode:    domain.ModeOnlyOne,
			ExamCorrectAnswer: "optA",
		},
		DataSource: choices("optA", "optB"),
	})

	tests := []struct {
		name    string
		answers domain.AnswerSet
		total   float64
		status  Status
		correct bool
	}{
		{"Correct", domain.AnswerSet{"q": domain.Scalar("optA")}, 10, StatusScored, true},
		{"Wrong", domain.AnswerSet{"q": domain.Scalar("optB")}, 0, StatusScored, false},
		{"Unanswered", domain.AnswerSet{}, 0, StatusUnanswered, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := score(t, doc, tt.answers)
			assert.Equal(t, tt.total, report.Total)
			assert.Equal(t, tt.total, report.AutoTotal)
			assert.Equal(t, 10.0, report.MaxTotal)

			ns, ok := report.Node("q")
			require.True(t, ok)
			assert.Equal(t, tt.status, ns.Status)
			assert.Equal(t, tt.correct, ns.Correct)
			require.NotNil(t, ns.Score)
			assert.Equal(t, tt.total, *ns.Score)
		})
	}
}

func TestScore_ChoiceModes(t *testing.T) {
	node := func(mode domain.ExamScoreMode) *domain.SchemaNode {
		return &domain.SchemaNode{
			ID:   "q",
			Type: domain.TypeCheckbox,
			Attribute: &domain.Attribute{
				ExamScore:         ptr(10),
				ExamAnswerMode:    mode,
				ExamCorrectAnswer: "a,b,c",
			},
			DataSource: choices("a", "b", "c", "d", "e"),
		}
	}

	tests := []struct {
		name   string
		mode   domain.ExamScoreMode
		picked []string
		want   float64
	}{
		{"Select Correct Partial With Penalty", domain.ModeSelectCorrect, []string{"a", "b", "d"}, 10.0 / 3},
		{"Select Correct All", domain.ModeSelectCorrect, []string{"a", "b", "c"}, 10},
		{"Select Correct Floored At Zero", domain.ModeSelectCorrect, []string{"a", "d", "e"}, 0},
		{"Select All Exact", domain.ModeSelectAll, []string{"c", "a", "b"}, 10},
		{"Select All Missing One", domain.ModeSelectAll, []string{"a", "b"}, 0},
		{"Select All With Extra", domain.ModeSelectAll, []string{"a", "b", "c", "d"}, 0},
		{"Select Uniform Weights", domain.ModeSelect, []string{"a", "b"}, 20.0 / 3},
		{"Select Ignores Unweighted Wrong", domain.ModeSelect, []string{"a", "d"}, 10.0 / 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := score(t, exam(node(tt.mode)), domain.AnswerSet{"q": domain.Multi(tt.picked...)})
			assert.InDelta(t, tt.want, report.Total, 1e-9)
			ns, _ := report.Node("q")
			assert.LessOrEqual(t, *ns.Score, ns.Max)
			assert.GreaterOrEqual(t, *ns.Score, 0.0)
		})
	}
}

func TestScore_ContainMatchOnChoices(t *testing.T) {
	node := func(typ domain.QuestionType, mode domain.ExamScoreMode, correct string) *domain.SchemaNode {
		return &domain.SchemaNode{
			ID:   "q",
			Type: typ,
			Attribute: &domain.Attribute{
				ExamScore:         ptr(10),
				ExamMatchRule:     domain.MatchContain,
				ExamAnswerMode:    mode,
				ExamCorrectAnswer: correct,
			},
			DataSource: choices("a", "b", "c", "d"),
		}
	}

	tests := []struct {
		name   string
		node   *domain.SchemaNode
		picked []string
		want   float64
	}{
		{"Select All Exact", node(domain.TypeCheckbox, domain.ModeSelectAll, "a,b"), []string{"b", "a"}, 10},
		{"Select All Every Option", node(domain.TypeCheckbox, domain.ModeSelectAll, "a,b"), []string{"a", "b", "c", "d"}, 0},
		{"Select All Missing One", node(domain.TypeCheckbox, domain.ModeSelectAll, "a,b"), []string{"a", "c"}, 0},
		{"Select All Subset", node(domain.TypeCheckbox, domain.ModeSelectAll, "a,b"), []string{"a"}, 0},
		{"Only One Correct", node(domain.TypeRadio, domain.ModeOnlyOne, "a"), []string{"a"}, 10},
		{"Only One Wrong", node(domain.TypeRadio, domain.ModeOnlyOne, "a"), []string{"c"}, 0},
		{"Only One Several Picks", node(domain.TypeCheckbox, domain.ModeOnlyOne, "a,b"), []string{"a", "b", "c", "d"}, 0},
		{"Only One With Extra Pick", node(domain.TypeCheckbox, domain.ModeOnlyOne, "a,b"), []string{"a", "c"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := score(t, exam(tt.node), domain.AnswerSet{"q": domain.Multi(tt.picked...)})
			assert.Equal(t, tt.want, report.Total)
		})
	}
}

func TestScore_SelectWeights(t *testing.T) {
	q := &domain.SchemaNode{
		ID:   "q",
		Type: domain.TypeCheckbox,
		Attribute: &domain.Attribute{
			ExamScore:         ptr(10),
			ExamAnswerMode:    domain.ModeSelect,
			ExamCorrectAnswer: "a,b",
		},
		DataSource: []domain.DataSource{
			{Label: "A", Value: "a", ExamScore: ptr(7)},
			{Label: "B", Value: "b", ExamScore: ptr(3)},
			{Label: "C", Value: "c", ExamScore: ptr(2)},
		},
	}

	report := score(t, exam(q), domain.AnswerSet{"q": domain.Multi("a")})
	assert.Equal(t, 7.0, report.Total)

	report = score(t, exam(q), domain.AnswerSet{"q": domain.Multi("a", "c")})
	assert.Equal(t, 5.0, report.Total, "weighted wrong options subtract")

	report = score(t, exam(q), domain.AnswerSet{"q": domain.Multi("c")})
	assert.Equal(t, 0.0, report.Total)
}

func TestScore_Blanks(t *testing.T) {
	t.Run("Per Blank Answers", func(t *testing.T) {
		q := &domain.SchemaNode{
			ID:   "q",
			Type: domain.TypeMultipleBlank,
			Attribute: &domain.Attribute{
				ExamScore:      ptr(9),
				ExamAnswerMode: domain.ModeSelectCorrect,
			},
			DataSource: []domain.DataSource{
				{Label: "1", Value: "1", ExamCorrectAnswer: "Paris"},
				{Label: "2", Value: "2", ExamCorrectAnswer: "Rome"},
				{Label: "3", Value: "3", ExamCorrectAnswer: "Oslo"},
			},
		}
		report := score(t, exam(q), domain.AnswerSet{"q": domain.Multi(" Paris ", "Madrid", "Oslo")})
		assert.InDelta(t, 6.0, report.Total, 1e-9)
	})

	t.Run("Default Mode Is Select All", func(t *testing.T) {
		q := &domain.SchemaNode{
			ID:        "q",
			Type:      domain.TypeHorzBlank,
			Attribute: &domain.Attribute{ExamScore: ptr(4), ExamCorrectAnswer: "x,y"},
		}
		ns, _ := score(t, exam(q), domain.AnswerSet{"q": domain.Multi("x", "y")}).Node("q")
		assert.Equal(t, domain.ModeSelectAll, ns.Mode)
		assert.Equal(t, 4.0, *ns.Score)

		ns, _ = score(t, exam(q), domain.AnswerSet{"q": domain.Multi("x", "z")}).Node("q")
		assert.Equal(t, 0.0, *ns.Score)
	})

	t.Run("Select Weights Per Blank", func(t *testing.T) {
		q := &domain.SchemaNode{
			ID:   "q",
			Type: domain.TypeMultipleBlank,
			Attribute: &domain.Attribute{
				ExamScore:      ptr(10),
				ExamAnswerMode: domain.ModeSelect,
			},
			DataSource: []domain.DataSource{
				{Label: "1", Value: "1", ExamCorrectAnswer: "a", ExamScore: ptr(8)},
				{Label: "2", Value: "2", ExamCorrectAnswer: "b", ExamScore: ptr(2)},
			},
		}
		report := score(t, exam(q), domain.AnswerSet{"q": domain.Multi("a", "nope")})
		assert.Equal(t, 8.0, report.Total)
	})

	t.Run("Contain Match", func(t *testing.T) {
		q := &domain.SchemaNode{
			ID:   "q",
			Type: domain.TypeTextarea,
			Attribute: &domain.Attribute{
				ExamScore:         ptr(5),
				ExamMatchRule:     domain.MatchContain,
				ExamCorrectAnswer: "photosynthesis;chlorophyll",
			},
		}
		report := score(t, exam(q), domain.AnswerSet{"q": domain.Scalar("Plants use chlorophyll to capture light")})
		assert.Equal(t, 5.0, report.Total)

		report = score(t, exam(q), domain.AnswerSet{"q": domain.Scalar("Plants are green")})
		assert.Equal(t, 0.0, report.Total)
	})

	t.Run("Complete Same Trims", func(t *testing.T) {
		q := &domain.SchemaNode{
			ID:        "q",
			Type:      domain.TypeFillBlank,
			Attribute: &domain.Attribute{ExamScore: ptr(2), ExamCorrectAnswer: "42"},
		}
		assert.Equal(t, 2.0, score(t, exam(q), domain.AnswerSet{"q": domain.Scalar(" 42 ")}).Total)
		assert.Equal(t, 0.0, score(t, exam(q), domain.AnswerSet{"q": domain.Scalar("42.0")}).Total)
	})
}

func TestScore_ManualAndExcluded(t *testing.T) {
	doc := exam(
		&domain.SchemaNode{ID: "essay", Type: domain.TypeTextarea, Attribute: &domain.Attribute{ExamScore: ptr(20), ExamAnswerMode: domain.ModeManual}},
		&domain.SchemaNode{ID: "skip", Type: domain.TypeRadio, Attribute: &domain.Attribute{ExamScore: ptr(5), ExamAnswerMode: domain.ModeNone}},
		&domain.SchemaNode{ID: "plain", Type: domain.TypeFillBlank},
		&domain.SchemaNode{ID: "auto", Type: domain.TypeFillBlank, Attribute: &domain.Attribute{ExamScore: ptr(3), ExamCorrectAnswer: "ok"}},
		&domain.SchemaNode{ID: "rating", Type: domain.TypeScore, Attribute: &domain.Attribute{ExamScore: ptr(3)}},
		&domain.SchemaNode{ID: "note", Type: domain.TypeRemark},
	)
	answers := domain.AnswerSet{
		"essay": domain.Scalar("A long essay"),
		"skip":  domain.Scalar("x"),
		"auto":  domain.Scalar("ok"),
	}

	t.Run("Pending Review", func(t *testing.T) {
		report := score(t, doc, answers)
		require.Len(t, report.Nodes, 4, "only exam types are reported")

		essay, _ := report.Node("essay")
		assert.Equal(t, StatusManual, essay.Status)
		assert.Nil(t, essay.Score)
		assert.Equal(t, []string{"essay"}, report.Manual)

		skip, _ := report.Node("skip")
		assert.Equal(t, StatusExcluded, skip.Status)
		plain, _ := report.Node("plain")
		assert.Equal(t, StatusExcluded, plain.Status)

		assert.Equal(t, 3.0, report.AutoTotal)
		assert.Equal(t, 0.0, report.ManualTotal)
		assert.Equal(t, 3.0, report.Total)
		assert.Equal(t, 23.0, report.MaxTotal)
		assert.Equal(t, 1, report.Scored())
	})

	t.Run("Human Score Supplied", func(t *testing.T) {
		report := score(t, doc, answers, WithManualScores(map[string]float64{"essay": 25}))
		essay, _ := report.Node("essay")
		require.NotNil(t, essay.Score)
		assert.Equal(t, 20.0, *essay.Score, "clamped to the maximum")
		assert.True(t, essay.Correct)
		assert.Empty(t, report.Manual)
		assert.Equal(t, 20.0, report.ManualTotal)
		assert.Equal(t, 23.0, report.Total)
	})
}

func TestScore_DoesNotMutateInput(t *testing.T) {
	doc := exam(&domain.SchemaNode{
		ID:         "q",
		Type:       domain.TypeRadio,
		Attribute:  &domain.Attribute{ExamScore: ptr(1), ExamCorrectAnswer: "a"},
		DataSource: choices("a", "b"),
	})
	before := doc.Clone()
	_ = score(t, doc, domain.AnswerSet{"q": domain.Scalar("a")})
	assert.Equal(t, before, doc)
}
