package rules

import (
	"fmt"
	"math"
	"strings"
)

// Diagnostic codes reported while evaluating arithmetic.
const (
	DiagDivisionByZero = "division_by_zero"
	DiagNonNumeric     = "non_numeric_operand"
)

// Diagnostic is a non-fatal finding produced during evaluation. The value it
// accompanies is a sentinel (NaN) rather than an error.
type Diagnostic struct {
	Code    string
	Message string
}

// Resolver supplies the current values of referenced nodes.
type Resolver interface {
	// Resolve returns the value of node id, or Empty when it is unanswered or hidden.
	Resolve(id string) Value
	// Self returns the value of the node that owns the rule.
	Self() Value
}

// Eval evaluates e. It never fails: numeric edge cases yield NaN plus a
// diagnostic, and comparisons against Empty are false.
func Eval(e Expr, r Resolver) (Value, []Diagnostic) {
	ev := &evaluator{r: r}
	v := ev.eval(e)
	return v, ev.diags
}

// EvalBool evaluates e and returns its truth value.
func EvalBool(e Expr, r Resolver) (bool, []Diagnostic) {
	v, diags := Eval(e, r)
	return v.Truthy(), diags
}

// EvalNumber evaluates e as arithmetic.
func EvalNumber(e Expr, r Resolver) (float64, []Diagnostic) {
	ev := &evaluator{r: r}
	n := ev.number(ev.eval(e))
	return n, ev.diags
}

type evaluator struct {
	r     Resolver
	diags []Diagnostic
}

func (ev *evaluator) warn(code, format string, args ...any) {
	ev.diags = append(ev.diags, Diagnostic{Code: code, Message: fmt.Sprintf(format, args...)})
}

func (ev *evaluator) eval(e Expr) Value {
	switch t := e.(type) {
	case Literal:
		return t.Value
	case Ref:
		return ev.r.Resolve(t.ID)
	case Self:
		return ev.r.Self()
	case List:
		items := make([]string, 0, len(t.Items))
		for _, it := range t.Items {
			v := ev.eval(it)
			if v.kind == KindList {
				items = append(items, v.list...)
			} else if !v.IsEmpty() {
				items = append(items, v.Text())
			}
		}
		return ListOf(items)
	case Unary:
		x := ev.eval(t.X)
		if t.Op == OpNot {
			return Bool(!x.Truthy())
		}
		return Number(-ev.number(x))
	case Binary:
		return ev.binary(t)
	case Call:
		return ev.call(t)
	}
	return Empty()
}

func (ev *evaluator) binary(b Binary) Value {
	switch b.Op {
	case OpAnd:
		if !ev.eval(b.L).Truthy() {
			return Bool(false)
		}
		return Bool(ev.eval(b.R).Truthy())
	case OpOr:
		if ev.eval(b.L).Truthy() {
			return Bool(true)
		}
		return Bool(ev.eval(b.R).Truthy())
	case OpAdd, OpSub, OpMul, OpDiv:
		return Number(ev.arith(b.Op, ev.number(ev.eval(b.L)), ev.number(ev.eval(b.R))))
	}

	l, r := ev.eval(b.L), ev.eval(b.R)
	if l.IsEmpty() || r.IsEmpty() {
		return Bool(false)
	}
	switch b.Op {
	case OpEq:
		return Bool(equal(l, r))
	case OpNe:
		return Bool(!equal(l, r))
	case OpContains:
		return Bool(contains(l, r))
	case OpIn:
		return Bool(contains(r, l))
	}
	return Bool(order(b.Op, l, r))
}

func (ev *evaluator) arith(op Op, x, y float64) float64 {
	switch op {
	case OpAdd:
		return x + y
	case OpSub:
		return x - y
	case OpMul:
		return x * y
	}
	if y == 0 {
		ev.warn(DiagDivisionByZero, "division by zero")
		return math.NaN()
	}
	return x / y
}

// number coerces v for arithmetic. Empty counts as zero.
func (ev *evaluator) number(v Value) float64 {
	n, ok := v.Number()
	if !ok {
		ev.warn(DiagNonNumeric, "%q is not a number", v.Text())
		return math.NaN()
	}
	return n
}

func contains(hay, needle Value) bool {
	switch hay.kind {
	case KindList:
		if needle.kind == KindList {
			for _, it := range needle.list {
				if !listHas(hay.list, Text(it)) {
					return false
				}
			}
			return true
		}
		return listHas(hay.list, needle)
	case KindText:
		return strings.Contains(hay.s, needle.Text())
	}
	return false
}

func order(op Op, l, r Value) bool {
	if l.kind == KindList || r.kind == KindList {
		return false
	}
	var cmp int
	x, okx := scalarNumber(l)
	y, oky := scalarNumber(r)
	switch {
	case okx && oky:
		if math.IsNaN(x) || math.IsNaN(y) {
			return false
		}
		switch {
		case x < y:
			cmp = -1
		case x > y:
			cmp = 1
		}
	case l.kind == KindText && r.kind == KindText:
		cmp = strings.Compare(l.s, r.s)
	default:
		return false
	}
	switch op {
	case OpLt:
		return cmp < 0
	case OpLe:
		return cmp <= 0
	case OpGt:
		return cmp > 0
	case OpGe:
		return cmp >= 0
	}
	return false
}

func (ev *evaluator) call(c Call) Value {
	arg := ev.eval(c.Args[0])
	switch c.Func {
	case "answered":
		return Bool(!arg.IsEmpty())
	case "empty":
		return Bool(arg.IsEmpty())
	case "count":
		return Number(float64(arg.Count()))
	case "len":
		return Number(float64(arg.Len()))
	case "number":
		return Number(ev.number(arg))
	case "sum":
		if arg.kind != KindList {
			return Number(ev.number(arg))
		}
		total := 0.0
		for _, it := range arg.list {
			total += ev.number(Text(it))
		}
		return Number(total)
	}
	return Empty()
}
