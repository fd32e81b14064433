package rules

import (
	"strconv"
	"strings"
)

// Op identifies a unary or binary operator.
type Op int

const (
	OpNot Op = iota
	OpNeg
	OpAnd
	OpOr
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpContains
	OpIn
	OpAdd
	OpSub
	OpMul
	OpDiv
)

var opNames = map[Op]string{
	OpNot: "!", OpNeg: "-", OpAnd: "&&", OpOr: "||",
	OpEq: "==", OpNe: "!=", OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
	OpContains: "contains", OpIn: "in",
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/",
}

func (o Op) String() string { return opNames[o] }

// Expr is a node of a parsed rule. The concrete types are Literal, Ref, Self,
// List, Unary, Binary and Call.
type Expr interface {
	String() string
	isExpr()
}

// Literal is a constant number, string or boolean.
type Literal struct{ Value Value }

// Ref reads the current value of another node: ${id}.
type Ref struct{ ID string }

// Self reads the value of the node that owns the rule: $value.
type Self struct{}

// List is a literal list: ["a", "b"].
type List struct{ Items []Expr }

// Unary applies OpNot or OpNeg.
type Unary struct {
	Op Op
	X  Expr
}

// Binary applies a logical, comparison or arithmetic operator.
type Binary struct {
	Op   Op
	L, R Expr
}

// Call invokes one of the built-in functions.
type Call struct {
	Func string
	Args []Expr
}

func (Literal) isExpr() {}
func (Ref) isExpr()     {}
func (Self) isExpr()    {}
func (List) isExpr()    {}
func (Unary) isExpr()   {}
func (Binary) isExpr()  {}
func (Call) isExpr()    {}

func (e Literal) String() string {
	if e.Value.Kind() == KindText {
		return strconv.Quote(e.Value.Text())
	}
	return e.Value.Text()
}

func (e Ref) String() string   { return "${" + e.ID + "}" }
func (Self) String() string    { return "$value" }
func (e Unary) String() string { return e.Op.String() + e.X.String() }

func (e List) String() string {
	parts := make([]string, len(e.Items))
	for i, it := range e.Items {
		parts[i] = it.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (e Binary) String() string {
	return "(" + e.L.String() + " " + e.Op.String() + " " + e.R.String() + ")"
}

func (e Call) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return e.Func + "(" + strings.Join(parts, ", ") + ")"
}

// Refs returns the ids referenced by e, in order of first appearance.
func Refs(e Expr) []string {
	var out []string
	seen := make(map[string]bool)
	var visit func(Expr)
	visit = func(e Expr) {
		switch t := e.(type) {
		case Ref:
			if !seen[t.ID] {
				seen[t.ID] = true
				out = append(out, t.ID)
			}
		case List:
			for _, it := range t.Items {
				visit(it)
			}
		case Unary:
			visit(t.X)
		case Binary:
			visit(t.L)
			visit(t.R)
		case Call:
			for _, a := range t.Args {
				visit(a)
			}
		}
	}
	if e != nil {
		visit(e)
	}
	return out
}
