package rules

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind is the dynamic type of a Value.
type Kind uint8

const (
	// KindEmpty marks an unanswered or hidden reference.
	KindEmpty Kind = iota
	KindBool
	KindNumber
	KindText
	KindList
)

// Value is the result of evaluating an expression.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	list []string
}

// Empty returns the distinguished "no answer" value.
func Empty() Value { return Value{} }

func Bool(b bool) Value        { return Value{kind: KindBool, b: b} }
func Number(n float64) Value   { return Value{kind: KindNumber, n: n} }
func Text(s string) Value      { return Value{kind: KindText, s: s} }
func ListOf(xs []string) Value { return Value{kind: KindList, list: xs} }

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsEmpty() bool   { return v.kind == KindEmpty }
func (v Value) Items() []string { return v.list }

// Text renders the value as answer text.
func (v Value) Text() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case KindText:
		return v.s
	case KindList:
		return strings.Join(v.list, ",")
	}
	return ""
}

// Number converts the value to a float. ok is false when the value has no
// numeric reading (free text, lists with several items).
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindEmpty:
		return 0, true
	case KindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	case KindNumber:
		return v.n, true
	case KindText:
		return parseNumber(v.s)
	case KindList:
		if len(v.list) == 1 {
			return parseNumber(v.list[0])
		}
	}
	return math.NaN(), false
}

// Truthy reports the boolean reading of the value.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n != 0 && !math.IsNaN(v.n)
	case KindText:
		return v.s != ""
	case KindList:
		return len(v.list) > 0
	}
	return false
}

// Count returns the number of values held.
func (v Value) Count() int {
	switch v.kind {
	case KindEmpty:
		return 0
	case KindList:
		return len(v.list)
	}
	return 1
}

// Len returns the rune length of the text reading.
func (v Value) Len() int { return utf8.RuneCountInString(v.Text()) }

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN(), false
	}
	return f, true
}

// scalarNumber reports the numeric reading of a non-list, non-empty value.
func scalarNumber(v Value) (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.n, true
	case KindText:
		return parseNumber(v.s)
	}
	return 0, false
}

// equal compares two non-empty values.
func equal(a, b Value) bool {
	switch {
	case a.kind == KindList && b.kind == KindList:
		return sameSet(a.list, b.list)
	case a.kind == KindList:
		return len(a.list) == 1 && equal(Text(a.list[0]), b)
	case b.kind == KindList:
		return equal(b, a)
	}
	if x, ok := scalarNumber(a); ok {
		if y, ok := scalarNumber(b); ok {
			return x == y
		}
	}
	return a.Text() == b.Text()
}

func sameSet(a, b []string) bool {
	as := make(map[string]bool, len(a))
	for _, x := range a {
		as[x] = true
	}
	bs := make(map[string]bool, len(b))
	for _, x := range b {
		if !as[x] {
			return false
		}
		bs[x] = true
	}
	return len(as) == len(bs)
}

func listHas(list []string, v Value) bool {
	for _, it := range list {
		if equal(Text(it), v) {
			return true
		}
	}
	return false
}
