package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quizYAML = `
id: quiz
type: Survey
title: Geography
children:
  - id: capital
    type: Radio
    attribute:
      required: true
      examScore: 10
      examCorrectAnswer: paris
    dataSource:
      - {label: Paris, value: paris}
      - {label: Rome, value: rome}
  - id: essay
    type: Textarea
    attribute:
      examScore: 20
      examAnswerMode: manual
      visibleRule: "answered(${capital})"
`

func fixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestCLI_Validate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		code, out, _ := execute("validate", fixture(t, "quiz.yaml", quizYAML))
		assert.Equal(t, 0, code)
		assert.Contains(t, out, "Document quiz is valid!")
	})

	t.Run("Findings", func(t *testing.T) {
		doc := fixture(t, "bad.json", `{"id": "s", "type": "Survey", "children": [
		  {"id": "a", "type": "FillBlank", "attribute": {"visibleRule": "answered(${ghost})"}},
		  {"id": "b", "type": "FillBlank", "attribute": {"visibleRule": "answered(${phantom})"}}
		]}`)
		code, _, errOut := execute("validate", doc)
		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, "ghost")
		assert.Contains(t, errOut, "phantom")
		assert.Contains(t, errOut, "Error: validation failed: 2 finding(s)")
	})

	t.Run("Missing File", func(t *testing.T) {
		code, _, errOut := execute("validate", filepath.Join(t.TempDir(), "none.json"))
		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, "failed to read document")
	})
}

func TestCLI_Evaluate(t *testing.T) {
	doc := fixture(t, "quiz.yaml", quizYAML)

	t.Run("Submittable JSON", func(t *testing.T) {
		answers := fixture(t, "a.json", `{"capital": "rome"}`)
		code, out, _ := execute("evaluate", doc, answers, "--format", "json")
		assert.Equal(t, 0, code)
		assert.Contains(t, out, `"submittable": true`)
		assert.Contains(t, out, `"documentId": "quiz"`)
	})

	t.Run("Not Submittable Exits Two", func(t *testing.T) {
		code, out, _ := execute("evaluate", doc)
		assert.Equal(t, 2, code)
		assert.Contains(t, out, "| capital | Radio | yes | yes |")
		assert.Contains(t, out, "not submittable")
	})

	t.Run("Unknown Answers Logged As JSON", func(t *testing.T) {
		answers := fixture(t, "a.json", `{"capital": "rome", "ghost": "x"}`)
		code, _, errOut := execute("evaluate", doc, answers, "--format", "json")
		assert.Equal(t, 0, code)
		assert.Contains(t, errOut, `"msg":"dropping answers for unknown nodes"`)
		assert.Contains(t, errOut, `"document":"quiz"`)
	})

	t.Run("Strict Rejects Unknown Answers", func(t *testing.T) {
		answers := fixture(t, "a.json", `{"capital": "rome", "ghost": "x"}`)
		code, _, errOut := execute("evaluate", doc, answers, "--strict")
		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, "invalid answers")
	})

	t.Run("Bad Flags", func(t *testing.T) {
		code, _, errOut := execute("evaluate", doc, "--format", "xml")
		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, "unknown format")

		code, _, errOut = execute("evaluate", doc, "--log-level", "loud")
		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, "invalid log level")
	})
}

func TestCLI_Score(t *testing.T) {
	doc := fixture(t, "quiz.yaml", quizYAML)
	answers := fixture(t, "a.yaml", "capital: paris\nessay: Paris is the capital.\n")

	t.Run("Pending Manual", func(t *testing.T) {
		code, out, _ := execute("score", doc, answers)
		assert.Equal(t, 0, code)
		assert.Contains(t, out, "| capital | onlyOne | 10 | 10 | scored |")
		assert.Contains(t, out, "1 awaiting review")
	})

	t.Run("Manual Scores", func(t *testing.T) {
		code, out, _ := execute("score", doc, answers, "--manual", "essay=15", "--format", "json")
		assert.Equal(t, 0, code)
		assert.Contains(t, out, `"total": 25`)
		assert.Contains(t, out, `"maxTotal": 30`)
	})

	t.Run("Invalid Manual Score", func(t *testing.T) {
		code, _, errOut := execute("score", doc, answers, "--manual", "essay")
		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, "expected id=score")
	})
}

func TestCLI_Graph(t *testing.T) {
	doc := fixture(t, "quiz.yaml", quizYAML)

	code, out, _ := execute("graph", doc)
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "graph TD"))
	assert.Contains(t, out, `capital -. "visibleRule" .-> essay`)
	assert.NotContains(t, out, "classDef")

	answers := fixture(t, "a.json", `{}`)
	code, out, _ = execute("graph", doc, answers)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "class essay hidden;")
	assert.Contains(t, out, "class capital invalid;")
}

func TestCLI_Contract(t *testing.T) {
	doc := fixture(t, "quiz.yaml", quizYAML)

	t.Run("YAML", func(t *testing.T) {
		code, out, _ := execute("contract", doc)
		assert.Equal(t, 0, code)
		assert.Equal(t, "capital: option\nessay: text\n", out)
	})

	t.Run("JSON", func(t *testing.T) {
		code, out, _ := execute("contract", doc, "--format", "json")
		assert.Equal(t, 0, code)
		var names map[string]string
		require.NoError(t, json.Unmarshal([]byte(out), &names))
		assert.Equal(t, map[string]string{"capital": "option", "essay": "text"}, names)
	})
}

func TestCLI_Check(t *testing.T) {
	contract := fixture(t, "contract.yaml", "age: number\ntags: \"[text]\"\n")

	t.Run("Matching Answers", func(t *testing.T) {
		answers := fixture(t, "a.json", `{"age": "42", "tags": ["a", "b"]}`)
		code, out, _ := execute("check", contract, answers)
		assert.Equal(t, 0, code)
		assert.Contains(t, out, "Answers match the contract!")
	})

	t.Run("Mismatched Answers", func(t *testing.T) {
		answers := fixture(t, "a.json", `{"age": "old", "ghost": "x"}`)
		code, _, errOut := execute("check", contract, answers)
		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, `answer "age"`)
		assert.Contains(t, errOut, `answer "ghost": not a question of this document`)
		assert.Contains(t, errOut, "Error: answers do not match the contract: 2 problem(s)")
	})

	t.Run("Selected Fields", func(t *testing.T) {
		answers := fixture(t, "a.json", `{"age": "old", "tags": ["a"]}`)
		code, _, _ := execute("check", contract, answers, "--field", "tags")
		assert.Equal(t, 0, code)

		code, _, errOut := execute("check", contract, answers, "--field", "age,nickname")
		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, `answer "nickname": not defined in schema`)
		assert.Contains(t, errOut, "2 problem(s)")
	})

	t.Run("Round Trip From Document", func(t *testing.T) {
		_, out, _ := execute("contract", fixture(t, "quiz.yaml", quizYAML))
		saved := fixture(t, "quiz.contract.yaml", out)
		answers := fixture(t, "a.yaml", "capital: madrid\nessay: Paris\n")
		code, _, _ := execute("check", saved, answers)
		assert.Equal(t, 0, code, "a saved contract keeps shapes but not option sets")
	})
}

func TestCLI_Version(t *testing.T) {
	code, out, _ := execute("version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "surveykit version 0.1.0")
}

func TestParseManual(t *testing.T) {
	got, err := parseManual([]string{"a=1.5", " b = 2 "})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"a": 1.5, "b": 2}, got)

	got, err = parseManual(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseManual([]string{"a=x"})
	assert.Error(t, err)
}
