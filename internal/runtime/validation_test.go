package runtime_test

import (
	"strings"
	"testing"

	"github.com/aretw0/surveykit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func single(attr string, typ string, extra string) string {
	return `{"id": "s", "type": "Survey", "children": [
	  {"id": "q", "type": "` + typ + `", "attribute": {` + attr + `}` + extra + `}
	]}`
}

func codes[T interface{ domain.ValidationError | domain.Warning }](items []T) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		switch v := any(it).(type) {
		case domain.ValidationError:
			out = append(out, v.Code)
		case domain.Warning:
			out = append(out, v.Code)
		}
	}
	return out
}

func TestValidation_Scope(t *testing.T) {
	long := domain.AnswerSet{"q": domain.Scalar(strings.Repeat("x", 15))}

	t.Run("Hard Scope Blocks", func(t *testing.T) {
		view := evaluate(t, single(`"scope": "[1,10]"`, "FillBlank", ""), long)
		q := view.Nodes["q"]
		require.Len(t, q.Errors, 1)
		assert.Equal(t, domain.CodeScope, q.Errors[0].Code)
		assert.Empty(t, q.Warnings)
		assert.False(t, view.Submittable)
	})

	t.Run("Soft Scope Warns", func(t *testing.T) {
		view := evaluate(t, single(`"softScope": "[1,10]"`, "FillBlank", ""), long)
		q := view.Nodes["q"]
		assert.Empty(t, q.Errors)
		require.Len(t, q.Warnings, 1)
		assert.Equal(t, domain.CodeSoftScope, q.Warnings[0].Code)
		assert.True(t, view.Submittable)
	})

	t.Run("Description Replaces Message", func(t *testing.T) {
		view := evaluate(t, single(`"scope": "[1,10]", "scopeDesc": "Keep it short"`, "FillBlank", ""), long)
		assert.Equal(t, "Keep it short", view.Nodes["q"].Errors[0].Message)
	})

	t.Run("Numeric Nodes Measure Values", func(t *testing.T) {
		doc := single(`"scope": "[1,5]"`, "Score", "")
		assert.True(t, evaluate(t, doc, domain.AnswerSet{"q": domain.Scalar("5")}).Submittable)

		view := evaluate(t, doc, domain.AnswerSet{"q": domain.Scalar("6")})
		assert.Equal(t, []string{domain.CodeScope}, codes(view.Nodes["q"].Errors))
	})

	t.Run("Not A Number", func(t *testing.T) {
		view := evaluate(t, single(`"scope": "[1,5]", "dataType": "number"`, "FillBlank", ""), domain.AnswerSet{"q": domain.Scalar("five")})
		assert.Equal(t, []string{domain.CodeNotANumber}, codes(view.Nodes["q"].Errors))
	})

	t.Run("Range Bounds Are Inclusive", func(t *testing.T) {
		doc := single(`"scope": "[1,2]"`, "Nps", "")
		for value, ok := range map[string]bool{"0": false, "1": true, "2": true, "3": false} {
			view := evaluate(t, doc, domain.AnswerSet{"q": domain.Scalar(value)})
			assert.Equal(t, ok, view.Submittable, value)
		}
	})
}

func TestValidation_Limits(t *testing.T) {
	options := `, "dataSource": [{"label": "A", "value": "a"}, {"label": "B", "value": "b"}, {"label": "C", "value": "c"}, {"label": "None", "value": "none"}]`

	t.Run("Text Limit Per Value", func(t *testing.T) {
		doc := single(`"textLimit": "[,3]"`, "MultipleBlank", "")
		view := evaluate(t, doc, domain.AnswerSet{"q": domain.Multi("abc", "abcd")})
		assert.Equal(t, []string{domain.CodeTextLimit}, codes(view.Nodes["q"].Errors))

		view = evaluate(t, doc, domain.AnswerSet{"q": domain.Multi("héé", "ab")})
		assert.Empty(t, view.Nodes["q"].Errors, "length counts runes")
	})

	t.Run("Answer Limit", func(t *testing.T) {
		doc := single(`"answerLimit": "[1,2]"`, "Checkbox", options)
		assert.True(t, evaluate(t, doc, domain.AnswerSet{"q": domain.Multi("a", "b")}).Submittable)

		view := evaluate(t, doc, domain.AnswerSet{"q": domain.Multi("a", "b", "c")})
		assert.Equal(t, []string{domain.CodeAnswerLimit}, codes(view.Nodes["q"].Errors))
	})

	t.Run("Answer Limit Per Matrix Row", func(t *testing.T) {
		doc := single(`"answerLimit": "[,1]"`, "MatrixCheckbox", options+`, "row": [{"id": "r1"}, {"id": "r2"}]`)
		view := evaluate(t, doc, domain.AnswerSet{"q": domain.Matrix(map[string][]string{"r1": {"a"}, "r2": {"a", "b"}})})
		require.Len(t, view.Nodes["q"].Errors, 1)
		assert.Contains(t, view.Nodes["q"].Errors[0].Message, `row "r2"`)
	})

	t.Run("Upload File Count", func(t *testing.T) {
		doc := single(`"maxFileCount": 1`, "Upload", "")
		view := evaluate(t, doc, domain.AnswerSet{"q": domain.Multi("a.png", "b.png")})
		assert.Equal(t, []string{domain.CodeAnswerLimit}, codes(view.Nodes["q"].Errors))
	})

	t.Run("Reject All Isolates The Last Option", func(t *testing.T) {
		doc := single(`"rejectOtherOption": "rejectAll"`, "Checkbox", options)
		view := evaluate(t, doc, domain.AnswerSet{"q": domain.Multi("none", "c")})
		errs := view.Nodes["q"].Errors
		require.Len(t, errs, 1)
		assert.Equal(t, domain.CodeRejectOther, errs[0].Code)
		assert.Contains(t, errs[0].Message, `"none" cannot be combined with c`)

		assert.True(t, evaluate(t, doc, domain.AnswerSet{"q": domain.Multi("none")}).Submittable)
		assert.True(t, evaluate(t, doc, domain.AnswerSet{"q": domain.Multi("a", "b")}).Submittable)
	})

	exclusive := `, "dataSource": [{"label": "A", "value": "a"}, {"label": "B", "value": "b"},
	  {"label": "None", "value": "none", "exclusive": true}, {"label": "Not sure", "value": "unsure", "exclusive": true}]`

	t.Run("Reject Other Keeps Exclusive Options Apart", func(t *testing.T) {
		doc := single(`"rejectOtherOption": "rejectOther"`, "Checkbox", exclusive)
		view := evaluate(t, doc, domain.AnswerSet{"q": domain.Multi("none", "unsure")})
		errs := view.Nodes["q"].Errors
		require.Len(t, errs, 1)
		assert.Equal(t, domain.CodeRejectOther, errs[0].Code)
		assert.Contains(t, errs[0].Message, "none, unsure")

		assert.True(t, evaluate(t, doc, domain.AnswerSet{"q": domain.Multi("a", "none")}).Submittable)
		assert.True(t, evaluate(t, doc, domain.AnswerSet{"q": domain.Multi("a", "b", "unsure")}).Submittable)
	})

	t.Run("Reject All With Flagged Options", func(t *testing.T) {
		doc := single(`"rejectOtherOption": "rejectAll"`, "Checkbox", exclusive)
		for _, picked := range [][]string{{"a", "none"}, {"b", "unsure"}, {"none", "unsure"}} {
			view := evaluate(t, doc, domain.AnswerSet{"q": domain.Multi(picked...)})
			assert.Equal(t, []string{domain.CodeRejectOther}, codes(view.Nodes["q"].Errors), picked)
		}
		assert.True(t, evaluate(t, doc, domain.AnswerSet{"q": domain.Multi("a", "b")}).Submittable)
	})
}

func TestValidation_RatingScale(t *testing.T) {
	t.Run("Nps Scale", func(t *testing.T) {
		doc := single(`"npsStartNum": 0, "npsTotalNum": 11`, "Nps", "")
		for value, ok := range map[string]bool{"-1": false, "0": true, "10": true, "11": false, "99": false} {
			view := evaluate(t, doc, domain.AnswerSet{"q": domain.Scalar(value)})
			assert.Equal(t, ok, view.Submittable, value)
			if !ok {
				assert.Equal(t, []string{domain.CodeRatingRange}, codes(view.Nodes["q"].Errors), value)
			}
		}
	})

	t.Run("Score Scale Starting At One", func(t *testing.T) {
		doc := single(`"npsStartNum": 1, "npsTotalNum": 5`, "Score", "")
		assert.True(t, evaluate(t, doc, domain.AnswerSet{"q": domain.Scalar("5")}).Submittable)
		assert.False(t, evaluate(t, doc, domain.AnswerSet{"q": domain.Scalar("0")}).Submittable)
		assert.False(t, evaluate(t, doc, domain.AnswerSet{"q": domain.Scalar("6")}).Submittable)
	})

	t.Run("Unbounded Without Scale", func(t *testing.T) {
		doc := single(``, "Nps", "")
		assert.True(t, evaluate(t, doc, domain.AnswerSet{"q": domain.Scalar("99")}).Submittable)
	})
}

func TestValidation_UploadAccept(t *testing.T) {
	doc := single(`"fileAccept": ".png, JPG"`, "Upload", "")

	t.Run("Accepted Extensions", func(t *testing.T) {
		view := evaluate(t, doc, domain.AnswerSet{"q": domain.Multi("logo.PNG", "https://cdn.example.com/photo.jpg")})
		assert.Empty(t, view.Nodes["q"].Errors)
		assert.True(t, view.Submittable)
	})

	t.Run("Rejected Extension", func(t *testing.T) {
		view := evaluate(t, doc, domain.AnswerSet{"q": domain.Multi("logo.png", "virus.exe")})
		errs := view.Nodes["q"].Errors
		require.Len(t, errs, 1)
		assert.Equal(t, domain.CodeFileType, errs[0].Code)
		assert.Contains(t, errs[0].Message, "virus.exe")
		assert.False(t, view.Submittable)
	})

	t.Run("Missing Extension", func(t *testing.T) {
		view := evaluate(t, doc, domain.AnswerSet{"q": domain.Scalar("README")})
		assert.Equal(t, []string{domain.CodeFileType}, codes(view.Nodes["q"].Errors))
	})

	t.Run("Mime Patterns Are Not Checked", func(t *testing.T) {
		view := evaluate(t, single(`"fileAccept": "image/*"`, "Upload", ""), domain.AnswerSet{"q": domain.Scalar("notes.txt")})
		assert.True(t, view.Submittable)
	})
}

func TestValidation_Shape(t *testing.T) {
	t.Run("Unknown Option", func(t *testing.T) {
		doc := single(``, "Radio", `, "dataSource": [{"label": "A", "value": "a"}]`)
		view := evaluate(t, doc, domain.AnswerSet{"q": domain.Scalar("z")})
		assert.Equal(t, []string{domain.CodeUnknownOption}, codes(view.Nodes["q"].Errors))
	})

	t.Run("Matrix Expected", func(t *testing.T) {
		doc := single(``, "MatrixFillBlank", `, "row": [{"id": "r1"}]`)
		view := evaluate(t, doc, domain.AnswerSet{"q": domain.Scalar("x")})
		assert.Equal(t, []string{domain.CodeShape}, codes(view.Nodes["q"].Errors))
	})

	t.Run("Required Matrix Rows", func(t *testing.T) {
		doc := single(`"required": true`, "MatrixFillBlank", `, "row": [{"id": "r1"}, {"id": "r2"}]`)
		view := evaluate(t, doc, domain.AnswerSet{"q": domain.Matrix(map[string][]string{"r1": {"x"}})})
		errs := view.Nodes["q"].Errors
		require.Len(t, errs, 1)
		assert.Equal(t, domain.CodeMatrixRowMissed, errs[0].Code)
		assert.Contains(t, errs[0].Message, "r2")
	})
}

func TestValidation_ValidateRule(t *testing.T) {
	doc := `{"id": "s", "type": "Survey", "children": [
	  {"id": "min", "type": "FillBlank", "attribute": {"dataType": "number"}},
	  {"id": "q", "type": "FillBlank", "attribute": {"dataType": "number", "validateRule": "$value >= ${min}"}}
	]}`

	view := evaluate(t, doc, domain.AnswerSet{"min": domain.Scalar("10"), "q": domain.Scalar("12")})
	assert.Empty(t, view.Nodes["q"].Errors)

	view = evaluate(t, doc, domain.AnswerSet{"min": domain.Scalar("10"), "q": domain.Scalar("8")})
	assert.Equal(t, []string{domain.CodeValidateRule}, codes(view.Nodes["q"].Errors))

	t.Run("Unanswered Is Not Validated", func(t *testing.T) {
		view := evaluate(t, doc, domain.AnswerSet{"min": domain.Scalar("10")})
		assert.Empty(t, view.Nodes["q"].Errors)
	})
}
