package compiler

import (
	"errors"
	"testing"

	"github.com/aretw0/surveykit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const examDoc = `{
  "id": "exam",
  "type": "Survey",
  "children": [
    {
      "id": "q1",
      "type": "Radio",
      "attribute": {"examScore": 10, "examCorrectAnswer": "a", "required": true},
      "dataSource": [{"label": "A", "value": "a"}, {"label": "B", "value": "b"}]
    },
    {
      "id": "q2",
      "type": "Checkbox",
      "attribute": {"examScore": 6, "visibleRule": "${q1} == 'a'", "answerLimit": "[1,2]"},
      "dataSource": [{"label": "A", "value": "a"}, {"label": "B", "value": "b"}]
    },
    {
      "id": "age",
      "type": "FillBlank",
      "attribute": {"dataType": "number", "scope": "[0,130]", "validateRule": "$value >= 18"}
    },
    {
      "id": "hint",
      "type": "Remark",
      "attribute": {"replaceTextRule": "You picked ${q1} and are ${age}", "content": "hi"}
    },
    {
      "id": "files",
      "type": "Upload",
      "attribute": {"maxFileCount": 3, "fileAccept": ".png, .jpg"}
    },
    {
      "id": "grid",
      "type": "MatrixRadio",
      "row": [{"id": "r1"}, {"id": "r2"}]
    }
  ]
}`

func compileJSON(t *testing.T, doc string) (*Program, error) {
	t.Helper()
	root, err := NewParser(FormatJSON).Parse([]byte(doc))
	require.NoError(t, err)
	return Compile(root)
}

func TestCompile_Configs(t *testing.T) {
	prog, err := compileJSON(t, examDoc)
	require.NoError(t, err)
	require.Len(t, prog.Nodes, 7)
	assert.Equal(t, "exam", prog.Root().ID())

	t.Run("Container", func(t *testing.T) {
		assert.IsType(t, &ContainerConfig{}, prog.Root().Config)
		assert.Nil(t, prog.Root().Config.AnswerChecks())
	})

	t.Run("Choice With Default Exam Mode", func(t *testing.T) {
		q1, err := prog.Lookup("q1")
		require.NoError(t, err)
		cfg, ok := q1.Config.(*ChoiceConfig)
		require.True(t, ok)
		assert.True(t, cfg.Required)
		require.NotNil(t, cfg.Exam)
		assert.Equal(t, domain.ModeOnlyOne, cfg.Exam.Mode)
		assert.Equal(t, domain.MatchCompleteSame, cfg.Exam.Match)
		assert.Equal(t, 10.0, cfg.Exam.Score)
		assert.Len(t, cfg.Options, 2)
		assert.Equal(t, []string{"b"}, cfg.Exclusive, "last option is exclusive by default")

		q2, _ := prog.Lookup("q2")
		assert.Equal(t, domain.ModeSelectAll, ExamOf(q2.Config).Mode)
		require.NotNil(t, q2.Config.AnswerChecks().AnswerLimit)
		assert.Equal(t, "[1,2]", q2.Config.AnswerChecks().AnswerLimit.String())
	})

	t.Run("Numeric Text", func(t *testing.T) {
		age, _ := prog.Lookup("age")
		checks := age.Config.AnswerChecks()
		assert.True(t, checks.Numeric)
		require.NotNil(t, checks.Scope)
		assert.True(t, checks.Scope.Contains(130))
		assert.NotNil(t, age.Logic.Validate)
		assert.Empty(t, age.Refs)
		assert.Nil(t, ExamOf(age.Config))
	})

	t.Run("Upload Limits", func(t *testing.T) {
		files, _ := prog.Lookup("files")
		cfg := files.Config.(*UploadConfig)
		assert.Equal(t, []string{".png", ".jpg"}, cfg.Accept)
		require.NotNil(t, cfg.AnswerLimit)
		assert.True(t, cfg.AnswerLimit.Contains(3))
		assert.False(t, cfg.AnswerLimit.Contains(4))
	})

	t.Run("Mime Patterns Dropped From Accept", func(t *testing.T) {
		prog, err := compileJSON(t, `{"id":"s","type":"Survey","children":[
			{"id":"f","type":"Upload","attribute":{"fileAccept":"image/*, PDF"}}]}`)
		require.NoError(t, err)
		f, _ := prog.Lookup("f")
		assert.Equal(t, []string{".pdf"}, f.Config.(*UploadConfig).Accept)
	})

	t.Run("Rating Bounds", func(t *testing.T) {
		prog, err := compileJSON(t, `{"id":"s","type":"Survey","children":[
			{"id":"nps","type":"Nps","attribute":{"npsTotalNum":11}},
			{"id":"stars","type":"Score","attribute":{"npsStartNum":1}},
			{"id":"free","type":"Score"}]}`)
		require.NoError(t, err)

		nps, _ := prog.Lookup("nps")
		require.NotNil(t, nps.Config.(*RatingConfig).Bounds)
		assert.Equal(t, "[0,10]", nps.Config.(*RatingConfig).Bounds.String())

		stars, _ := prog.Lookup("stars")
		bounds := stars.Config.(*RatingConfig).Bounds
		require.NotNil(t, bounds)
		assert.False(t, bounds.Contains(0))
		assert.True(t, bounds.Contains(1000))

		free, _ := prog.Lookup("free")
		assert.Nil(t, free.Config.(*RatingConfig).Bounds)
	})

	t.Run("Flagged Exclusive Options", func(t *testing.T) {
		prog, err := compileJSON(t, `{"id":"s","type":"Survey","children":[
			{"id":"c","type":"Checkbox","attribute":{"rejectOtherOption":"rejectOther"},"dataSource":[
				{"label":"None","value":"none","exclusive":true},{"label":"A","value":"a"},
				{"label":"Unsure","value":"unsure","exclusive":true},{"label":"B","value":"b"}]}]}`)
		require.NoError(t, err)
		c, _ := prog.Lookup("c")
		assert.Equal(t, []string{"none", "unsure"}, c.Config.(*ChoiceConfig).Exclusive)
	})

	t.Run("Matrix Rows", func(t *testing.T) {
		grid, _ := prog.Lookup("grid")
		assert.Equal(t, []string{"r1", "r2"}, grid.Config.(*MatrixConfig).Rows)
	})

	t.Run("Refs", func(t *testing.T) {
		q2, _ := prog.Lookup("q2")
		assert.Equal(t, []Ref{{Field: domain.FieldVisibleRule, ID: "q1"}}, q2.Refs)
		assert.Equal(t, 0, q2.Parent)

		hint, _ := prog.Lookup("hint")
		assert.IsType(t, &PresentationConfig{}, hint.Config)
		require.NotNil(t, hint.Logic.Replace)
		assert.Equal(t, []Ref{
			{Field: domain.FieldReplaceTextRule, ID: "q1"},
			{Field: domain.FieldReplaceTextRule, ID: "age"},
		}, hint.Refs)
	})

	t.Run("Lookup Miss", func(t *testing.T) {
		_, err := prog.Lookup("ghost")
		assert.ErrorIs(t, err, domain.ErrNodeNotFound)
	})
}

func TestCompile_Errors(t *testing.T) {
	t.Run("Single Syntax Error", func(t *testing.T) {
		_, err := compileJSON(t, `{"id":"s","type":"Survey","children":[
			{"id":"a","type":"FillBlank","attribute":{"visibleRule":"${b} =="}}]}`)
		var syn *domain.InvalidRuleSyntaxError
		require.ErrorAs(t, err, &syn)
		assert.Equal(t, "a", syn.NodeID)
		assert.Equal(t, domain.FieldVisibleRule, syn.Field)
	})

	t.Run("Collects Every Failure", func(t *testing.T) {
		_, err := compileJSON(t, `{"id":"s","type":"Survey","children":[
			{"id":"a","type":"FillBlank","attribute":{"scope":"[3,2]"}},
			{"id":"b","type":"Radio","attribute":{"examScore":-1}},
			{"id":"c","type":"Remark","attribute":{"replaceTextRule":"hi ${x"}}]}`)
		var agg *domain.AggregateError
		require.ErrorAs(t, err, &agg)
		assert.Len(t, agg.Errors, 3)

		var attr *domain.InvalidAttributeError
		assert.ErrorAs(t, err, &attr)
		assert.Equal(t, "b", attr.NodeID)
	})

	t.Run("Empty Rating Scale", func(t *testing.T) {
		_, err := compileJSON(t, `{"id":"s","type":"Survey","children":[
			{"id":"n","type":"Nps","attribute":{"npsTotalNum":0}}]}`)
		var attr *domain.InvalidAttributeError
		require.ErrorAs(t, err, &attr)
		assert.Equal(t, "npsTotalNum", attr.Field)
	})

	t.Run("Duplicate Ids", func(t *testing.T) {
		_, err := compileJSON(t, `{"id":"s","type":"Survey","children":[
			{"id":"a","type":"FillBlank"},{"id":"a","type":"Radio"}]}`)
		var dup *domain.DuplicateIDError
		assert.True(t, errors.As(err, &dup))
	})

	t.Run("Unknown References Compile", func(t *testing.T) {
		prog, err := compileJSON(t, `{"id":"s","type":"Survey","children":[
			{"id":"a","type":"FillBlank","attribute":{"requiredRule":"answered(${ghost})"}}]}`)
		require.NoError(t, err)
		a, _ := prog.Lookup("a")
		assert.Equal(t, []Ref{{Field: domain.FieldRequiredRule, ID: "ghost"}}, a.Refs)
	})
}
