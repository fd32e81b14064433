package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// AnswerKind distinguishes the shapes an answer value can take.
type AnswerKind uint8

const (
	AnswerEmpty  AnswerKind = iota
	AnswerScalar            // one text value
	AnswerMulti             // ordered values: selections, blanks, files
	AnswerMatrix            // values keyed by row id
)

func (k AnswerKind) String() string {
	switch k {
	case AnswerScalar:
		return "scalar"
	case AnswerMulti:
		return "multi"
	case AnswerMatrix:
		return "matrix"
	}
	return "empty"
}

// Answer is the runtime value submitted for one data node.
type Answer struct {
	Kind   AnswerKind
	Value  string
	Values []string
	Cells  map[string][]string
}

// Scalar builds a single-value answer.
func Scalar(v string) Answer { return Answer{Kind: AnswerScalar, Value: v} }

// Multi builds an ordered multi-value answer.
func Multi(vs ...string) Answer { return Answer{Kind: AnswerMulti, Values: vs} }

// Matrix builds a row-keyed answer.
func Matrix(cells map[string][]string) Answer { return Answer{Kind: AnswerMatrix, Cells: cells} }

// IsEmpty reports whether the answer holds no non-blank value.
func (a Answer) IsEmpty() bool {
	switch a.Kind {
	case AnswerScalar:
		return strings.TrimSpace(a.Value) == ""
	case AnswerMulti:
		for _, v := range a.Values {
			if strings.TrimSpace(v) != "" {
				return false
			}
		}
		return true
	case AnswerMatrix:
		for _, vs := range a.Cells {
			if !Multi(vs...).IsEmpty() {
				return false
			}
		}
		return true
	}
	return true
}

// List flattens the answer. Matrix cells are emitted in row id order.
func (a Answer) List() []string {
	switch a.Kind {
	case AnswerScalar:
		return []string{a.Value}
	case AnswerMulti:
		return a.Values
	case AnswerMatrix:
		var out []string
		for _, row := range a.Rows() {
			out = append(out, a.Cells[row]...)
		}
		return out
	}
	return nil
}

// Rows returns the matrix row ids in sorted order.
func (a Answer) Rows() []string {
	rows := make([]string, 0, len(a.Cells))
	for r := range a.Cells {
		rows = append(rows, r)
	}
	sort.Strings(rows)
	return rows
}

// Count returns the number of non-blank values.
func (a Answer) Count() int {
	n := 0
	for _, v := range a.List() {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	return n
}

// Text joins the values with ",".
func (a Answer) Text() string {
	return strings.Join(a.List(), ",")
}

// AnswerFrom converts a loosely typed value (as produced by JSON or YAML
// decoding) into an Answer: arrays become Multi, objects become Matrix and
// anything else a Scalar.
func AnswerFrom(v any) (Answer, error) {
	switch t := v.(type) {
	case nil:
		return Answer{}, nil
	case Answer:
		return t, nil
	case bool:
		return Scalar(strconv.FormatBool(t)), nil
	case []any, []string:
		var vs []string
		if err := mapstructure.WeakDecode(t, &vs); err != nil {
			return Answer{}, fmt.Errorf("decode multi-value answer: %w", err)
		}
		return Multi(vs...), nil
	case map[string]any, map[any]any, map[string][]string, map[string]string:
		var cells map[string][]string
		if err := mapstructure.WeakDecode(t, &cells); err != nil {
			return Answer{}, fmt.Errorf("decode matrix answer: %w", err)
		}
		return Matrix(cells), nil
	default:
		var s string
		if err := mapstructure.WeakDecode(t, &s); err != nil {
			return Answer{}, fmt.Errorf("decode answer: %w", err)
		}
		return Scalar(s), nil
	}
}

// Raw returns the loosely typed representation used for serialization.
func (a Answer) Raw() any {
	switch a.Kind {
	case AnswerScalar:
		return a.Value
	case AnswerMulti:
		if a.Values == nil {
			return []string{}
		}
		return a.Values
	case AnswerMatrix:
		if a.Cells == nil {
			return map[string][]string{}
		}
		return a.Cells
	}
	return nil
}

func (a Answer) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Raw())
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := AnswerFrom(raw)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

func (a Answer) MarshalYAML() (any, error) {
	return a.Raw(), nil
}

func (a *Answer) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	v, err := AnswerFrom(raw)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// AnswerSet maps node ids to answers.
type AnswerSet map[string]Answer

// DecodeAnswers builds an AnswerSet from a loosely typed map.
func DecodeAnswers(raw map[string]any) (AnswerSet, error) {
	out := make(AnswerSet, len(raw))
	for id, v := range raw {
		a, err := AnswerFrom(v)
		if err != nil {
			return nil, fmt.Errorf("answer %q: %w", id, err)
		}
		out[id] = a
	}
	return out, nil
}

// Get returns the answer for id; missing ids yield an empty answer.
func (s AnswerSet) Get(id string) Answer {
	if s == nil {
		return Answer{}
	}
	return s[id]
}
