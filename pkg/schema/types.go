package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/surveykit/pkg/domain"
)

var (
	// ErrNotANumber is returned when a numeric answer does not parse.
	ErrNotANumber = errors.New("not a number")
	// ErrUnknownOption is returned when a selection is not one of the declared options.
	ErrUnknownOption = errors.New("unknown option")
)

// Type defines the contract for answer shape validation.
// Empty answers always validate; required-ness is decided by the evaluator.
type Type interface {
	// Name returns the human-readable name of the shape (e.g. "text", "[option]").
	Name() string
	// Validate checks if an answer conforms to this shape.
	Validate(a domain.Answer) error
}

// --- Value Types ---

// TextType accepts any single text value.
type TextType struct{}

func (t *TextType) Name() string { return "text" }

func (t *TextType) Validate(a domain.Answer) error {
	_, err := single(a)
	return err
}

// NumberType accepts a single numeric value.
type NumberType struct{}

func (t *NumberType) Name() string { return "number" }

func (t *NumberType) Validate(a domain.Answer) error {
	v, err := single(a)
	if err != nil || strings.TrimSpace(v) == "" {
		return err
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
		return fmt.Errorf("%w: %q", ErrNotANumber, v)
	}
	return nil
}

// OptionType accepts a single value out of a fixed set. An empty set accepts anything.
type OptionType struct {
	values map[string]bool
}

func (t *OptionType) Name() string { return "option" }

func (t *OptionType) Validate(a domain.Answer) error {
	v, err := single(a)
	if err != nil || len(t.values) == 0 || strings.TrimSpace(v) == "" {
		return err
	}
	if !t.values[v] {
		return fmt.Errorf("%w: %q", ErrUnknownOption, v)
	}
	return nil
}

// single extracts the one value of a scalar answer. A multi answer with a
// single element is accepted as a scalar.
func single(a domain.Answer) (string, error) {
	switch a.Kind {
	case domain.AnswerEmpty:
		return "", nil
	case domain.AnswerScalar:
		return a.Value, nil
	case domain.AnswerMulti:
		if len(a.Values) <= 1 {
			if len(a.Values) == 0 {
				return "", nil
			}
			return a.Values[0], nil
		}
		return "", fmt.Errorf("expected a single value, got %d", len(a.Values))
	}
	return "", fmt.Errorf("expected a single value, got %s", a.Kind)
}

// --- Composite Types ---

// MultiType validates ordered multi-value answers element by element.
// A scalar answer is read as a one-element list.
type MultiType struct {
	elemType Type
}

func (t *MultiType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *MultiType) Validate(a domain.Answer) error {
	var values []string
	switch a.Kind {
	case domain.AnswerEmpty:
		return nil
	case domain.AnswerScalar:
		values = []string{a.Value}
	case domain.AnswerMulti:
		values = a.Values
	default:
		return fmt.Errorf("expected a list of values, got %s", a.Kind)
	}
	for i, v := range values {
		if err := t.elemType.Validate(domain.Scalar(v)); err != nil {
			return fmt.Errorf("value %d: %w", i, err)
		}
	}
	return nil
}

// MatrixType validates row-keyed answers. When rows are declared, cells for
// other rows are rejected.
type MatrixType struct {
	rows     map[string]bool
	cellType Type
}

func (t *MatrixType) Name() string {
	return fmt.Sprintf("matrix<%s>", t.cellType.Name())
}

func (t *MatrixType) Validate(a domain.Answer) error {
	switch a.Kind {
	case domain.AnswerEmpty:
		return nil
	case domain.AnswerMatrix:
	default:
		return fmt.Errorf("expected a matrix answer keyed by row, got %s", a.Kind)
	}
	for _, row := range a.Rows() {
		if len(t.rows) > 0 && !t.rows[row] {
			return fmt.Errorf("unknown matrix row %q", row)
		}
		if err := t.cellType.Validate(domain.Multi(a.Cells[row]...)); err != nil {
			return fmt.Errorf("row %q: %w", row, err)
		}
	}
	return nil
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(domain.Answer) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(a domain.Answer) error {
	return t.validate(a)
}

// --- Factory Functions ---

// Text creates a single text value validator.
func Text() Type { return &TextType{} }

// Number creates a single numeric value validator.
func Number() Type { return &NumberType{} }

// Option creates a validator accepting one of values.
func Option(values ...string) Type {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return &OptionType{values: set}
}

// Multi creates a list validator for elements of the given type.
func Multi(elemType Type) Type {
	return &MultiType{elemType: elemType}
}

// Matrix creates a row-keyed validator. Rows may be empty to accept any row.
func Matrix(cellType Type, rows ...string) Type {
	set := make(map[string]bool, len(rows))
	for _, r := range rows {
		set[r] = true
	}
	return &MatrixType{rows: set, cellType: cellType}
}

// Custom creates a custom validator with a user-defined function.
func Custom(name string, validate func(domain.Answer) error) Type {
	return &CustomType{name: name, validate: validate}
}

// ForNode returns the answer shape of a data node, or nil for void nodes.
func ForNode(n *domain.SchemaNode) Type {
	numeric := n.Type.IsNumeric() || n.Attr().DataType == "number"
	value := Text()
	if numeric {
		value = Number()
	}

	switch t := n.Type; {
	case t.IsVoidType():
		return nil
	case t.IsMatrix():
		rows := make([]string, len(n.Row))
		for i, r := range n.Row {
			rows[i] = r.ID
		}
		cell := value
		switch t {
		case domain.TypeMatrixRadio:
			cell = Option(optionValues(n.DataSource)...)
		case domain.TypeMatrixCheckbox:
			cell = Multi(Option(optionValues(n.DataSource)...))
		}
		return Matrix(cell, rows...)
	case t == domain.TypeRadio || t == domain.TypeSelect:
		return Option(optionValues(n.DataSource)...)
	case t == domain.TypeCheckbox || t == domain.TypeCascader:
		return Multi(Option(optionValues(n.DataSource)...))
	case t.MultiValued():
		return Multi(value)
	}
	return value
}

// optionValues flattens the option tree.
func optionValues(options []domain.DataSource) []string {
	var out []string
	for _, o := range options {
		out = append(out, o.Value)
		out = append(out, optionValues(o.Children)...)
	}
	return out
}

// ParseType converts a shape name to a Type.
// Supports "text", "number", "option", "[elem]" and "matrix<cell>".
func ParseType(typeStr string) (Type, error) {
	if len(typeStr) > 2 && typeStr[0] == '[' && typeStr[len(typeStr)-1] == ']' {
		elemType, err := ParseType(typeStr[1 : len(typeStr)-1])
		if err != nil {
			return nil, err
		}
		return Multi(elemType), nil
	}
	if strings.HasPrefix(typeStr, "matrix<") && strings.HasSuffix(typeStr, ">") {
		cellType, err := ParseType(typeStr[len("matrix<") : len(typeStr)-1])
		if err != nil {
			return nil, err
		}
		return Matrix(cellType), nil
	}

	switch typeStr {
	case "text":
		return Text(), nil
	case "number":
		return Number(), nil
	case "option":
		return Option(), nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", typeStr)
	}
}

// ParseTypeMap converts a map of node ids to shape names into a Schema.
func ParseTypeMap(typeMap map[string]string) (Schema, error) {
	result := make(Schema)
	for key, typeStr := range typeMap {
		t, err := ParseType(typeStr)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", key, err)
		}
		result[key] = t
	}
	return result, nil
}
