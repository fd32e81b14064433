package rules

import (
	"math"
	"strconv"
	"strings"
)

// Range is an inclusive numeric interval. A nil bound is unbounded.
type Range struct {
	Min *float64
	Max *float64
}

// ParseRange parses "[a,b]". Either side may be blank: "[,5]" means at most 5.
// Non-numeric bounds and reversed ranges (a > b) are rejected.
func ParseRange(s string) (Range, error) {
	src := strings.TrimSpace(s)
	if len(src) < 2 || src[0] != '[' || src[len(src)-1] != ']' {
		return Range{}, &SyntaxError{Pos: 0, Msg: "range must be written as [min,max]"}
	}
	parts := strings.Split(src[1:len(src)-1], ",")
	if len(parts) != 2 {
		return Range{}, &SyntaxError{Pos: 1, Msg: "range needs exactly two bounds separated by ','"}
	}
	var r Range
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || math.IsNaN(v) {
			return Range{}, &SyntaxError{Pos: 1, Msg: "bound " + strconv.Quote(p) + " is not a number"}
		}
		if i == 0 {
			r.Min = &v
		} else {
			r.Max = &v
		}
	}
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		return Range{}, &SyntaxError{Pos: 0, Msg: "lower bound is greater than upper bound"}
	}
	return r, nil
}

// Contains reports whether x lies within the range.
func (r Range) Contains(x float64) bool {
	if math.IsNaN(x) {
		return false
	}
	if r.Min != nil && x < *r.Min {
		return false
	}
	if r.Max != nil && x > *r.Max {
		return false
	}
	return true
}

// Unbounded reports whether neither side is set.
func (r Range) Unbounded() bool { return r.Min == nil && r.Max == nil }

func (r Range) String() string {
	var b strings.Builder
	b.WriteByte('[')
	if r.Min != nil {
		b.WriteString(strconv.FormatFloat(*r.Min, 'f', -1, 64))
	}
	b.WriteByte(',')
	if r.Max != nil {
		b.WriteString(strconv.FormatFloat(*r.Max, 'f', -1, 64))
	}
	b.WriteByte(']')
	return b.String()
}
