package rules

import (
	"strconv"
	"strings"
)

// builtins maps function names to their arity.
var builtins = map[string]int{
	"answered": 1,
	"empty":    1,
	"count":    1,
	"len":      1,
	"sum":      1,
	"number":   1,
}

// Parse turns a rule string into an expression tree. Parsing is pure: the same
// input always yields the same tree, and answers are never consulted.
func Parse(src string) (Expr, error) {
	if strings.TrimSpace(src) == "" {
		return nil, &SyntaxError{Pos: 0, Msg: "empty expression"}
	}
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, &SyntaxError{Pos: t.pos, Msg: "unexpected " + describe(t)}
	}
	return e, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) accept(kind tokenKind) bool {
	if p.peek().kind == kind {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expect(kind tokenKind, what string) error {
	if p.accept(kind) {
		return nil
	}
	t := p.peek()
	return &SyntaxError{Pos: t.pos, Msg: "expected " + what + ", found " + describe(t)}
}

func (p *parser) parseOr() (Expr, error) {
	l, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.accept(tokOr) {
		r, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		l = Binary{Op: OpOr, L: l, R: r}
	}
	return l, nil
}

func (p *parser) parseAnd() (Expr, error) {
	l, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.accept(tokAnd) {
		r, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		l = Binary{Op: OpAnd, L: l, R: r}
	}
	return l, nil
}

func (p *parser) parseNot() (Expr, error) {
	if p.accept(tokNot) {
		x, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return Unary{Op: OpNot, X: x}, nil
	}
	return p.parseCompare()
}

func (p *parser) parseCompare() (Expr, error) {
	l, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	var op Op
	switch t := p.peek(); {
	case t.kind == tokEq:
		op = OpEq
	case t.kind == tokNe:
		op = OpNe
	case t.kind == tokLt:
		op = OpLt
	case t.kind == tokLe:
		op = OpLe
	case t.kind == tokGt:
		op = OpGt
	case t.kind == tokGe:
		op = OpGe
	case t.kind == tokIdent && t.text == "contains":
		op = OpContains
	case t.kind == tokIdent && t.text == "in":
		op = OpIn
	default:
		return l, nil
	}
	p.next()
	r, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	return Binary{Op: op, L: l, R: r}, nil
}

func (p *parser) parseSum() (Expr, error) {
	l, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for {
		var op Op
		switch p.peek().kind {
		case tokPlus:
			op = OpAdd
		case tokMinus:
			op = OpSub
		default:
			return l, nil
		}
		p.next()
		r, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		l = Binary{Op: op, L: l, R: r}
	}
}

func (p *parser) parseProduct() (Expr, error) {
	l, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op Op
		switch p.peek().kind {
		case tokStar:
			op = OpMul
		case tokSlash:
			op = OpDiv
		default:
			return l, nil
		}
		p.next()
		r, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		l = Binary{Op: op, L: l, R: r}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	if p.accept(tokMinus) {
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Unary{Op: OpNeg, X: x}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		f, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, &SyntaxError{Pos: t.pos, Msg: "invalid number " + strconv.Quote(t.text)}
		}
		return Literal{Value: Number(f)}, nil
	case tokString:
		return Literal{Value: Text(t.text)}, nil
	case tokRef:
		return Ref{ID: t.text}, nil
	case tokSelf:
		return Self{}, nil
	case tokLParen:
		e, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return e, nil
	case tokLBracket:
		items, err := p.parseArgs(tokRBracket, "']'")
		if err != nil {
			return nil, err
		}
		return List{Items: items}, nil
	case tokIdent:
		switch t.text {
		case "true":
			return Literal{Value: Bool(true)}, nil
		case "false":
			return Literal{Value: Bool(false)}, nil
		}
		arity, ok := builtins[t.text]
		if !ok {
			return nil, &SyntaxError{Pos: t.pos, Msg: "unknown identifier " + strconv.Quote(t.text)}
		}
		if err := p.expect(tokLParen, "'(' after "+t.text); err != nil {
			return nil, err
		}
		args, err := p.parseArgs(tokRParen, "')'")
		if err != nil {
			return nil, err
		}
		if len(args) != arity {
			return nil, &SyntaxError{Pos: t.pos, Msg: t.text + " expects " + strconv.Itoa(arity) + " argument(s)"}
		}
		return Call{Func: t.text, Args: args}, nil
	}
	return nil, &SyntaxError{Pos: t.pos, Msg: "unexpected " + describe(t)}
}

// parseArgs reads a comma separated list up to the closing token.
func (p *parser) parseArgs(closing tokenKind, what string) ([]Expr, error) {
	var out []Expr
	if p.accept(closing) {
		return out, nil
	}
	for {
		e, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
		if p.accept(tokComma) {
			continue
		}
		if err := p.expect(closing, what); err != nil {
			return nil, err
		}
		return out, nil
	}
}

func describe(t token) string {
	if t.kind == tokEOF {
		return "end of expression"
	}
	return strconv.Quote(t.text)
}
