package domain

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestAnswer(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		assert.True(t, Answer{}.IsEmpty())
		assert.True(t, Scalar("  ").IsEmpty())
		assert.True(t, Multi("", " ").IsEmpty())
		assert.True(t, Matrix(map[string][]string{"r1": {""}}).IsEmpty())
		assert.False(t, Multi("", "a").IsEmpty())
	})

	t.Run("List And Count", func(t *testing.T) {
		m := Matrix(map[string][]string{"r2": {"b"}, "r1": {"a", ""}})
		assert.Equal(t, []string{"a", "", "b"}, m.List())
		assert.Equal(t, []string{"r1", "r2"}, m.Rows())
		assert.Equal(t, 2, m.Count())
		assert.Equal(t, "a,,b", m.Text())
	})

	t.Run("Kinds", func(t *testing.T) {
		assert.Equal(t, "scalar", AnswerScalar.String())
		assert.Equal(t, "empty", AnswerEmpty.String())
	})
}

func TestAnswerFrom(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Answer
	}{
		{"Nil", nil, Answer{}},
		{"String", "x", Scalar("x")},
		{"Number", 3.5, Scalar("3.5")},
		{"Integer", 42, Scalar("42")},
		{"Bool", true, Scalar("true")},
		{"List", []any{"a", 2}, Multi("a", "2")},
		{"Object", map[string]any{"r1": []any{"x"}}, Matrix(map[string][]string{"r1": {"x"}})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AnswerFrom(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnswerSet_Decode(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		var set AnswerSet
		require.NoError(t, json.Unmarshal([]byte(`{"a": "x", "b": ["1", "2"], "c": {"r": ["y"]}, "d": null}`), &set))
		assert.Equal(t, Scalar("x"), set["a"])
		assert.Equal(t, Multi("1", "2"), set["b"])
		assert.Equal(t, Matrix(map[string][]string{"r": {"y"}}), set["c"])
		assert.True(t, set.Get("d").IsEmpty())
		assert.True(t, set.Get("missing").IsEmpty())

		data, err := json.Marshal(set["b"])
		require.NoError(t, err)
		assert.JSONEq(t, `["1","2"]`, string(data))
	})

	t.Run("YAML", func(t *testing.T) {
		var set AnswerSet
		require.NoError(t, yaml.Unmarshal([]byte("a: 7\nb: [x]\n"), &set))
		assert.Equal(t, Scalar("7"), set["a"])
		assert.Equal(t, Multi("x"), set["b"])
	})

	t.Run("Loose Map", func(t *testing.T) {
		set, err := DecodeAnswers(map[string]any{"a": 1, "b": []string{"x"}})
		require.NoError(t, err)
		assert.Equal(t, Scalar("1"), set["a"])
		assert.Equal(t, Multi("x"), set["b"])
	})

	t.Run("Nil Set", func(t *testing.T) {
		var set AnswerSet
		assert.Equal(t, Answer{}, set.Get("a"))
	})
}
