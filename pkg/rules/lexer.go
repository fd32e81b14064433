package rules

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokString
	tokIdent
	tokRef
	tokSelf
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokComma
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokEq
	tokNe
	tokLt
	tokLe
	tokGt
	tokGe
	tokAnd
	tokOr
	tokNot
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lex splits src into tokens. It never looks at answers.
func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		r, w := utf8.DecodeRuneInString(src[i:])
		if unicode.IsSpace(r) {
			i += w
			continue
		}
		start := i
		switch {
		case r == '$':
			if strings.HasPrefix(src[i:], "${") {
				end := strings.IndexByte(src[i+2:], '}')
				if end < 0 {
					return nil, &SyntaxError{Pos: i, Msg: "unterminated reference, missing '}'"}
				}
				id := strings.TrimSpace(src[i+2 : i+2+end])
				if id == "" {
					return nil, &SyntaxError{Pos: i, Msg: "empty reference"}
				}
				toks = append(toks, token{kind: tokRef, text: id, pos: start})
				i += end + 3
				continue
			}
			if strings.HasPrefix(src[i:], "$value") {
				toks = append(toks, token{kind: tokSelf, text: "$value", pos: start})
				i += len("$value")
				continue
			}
			return nil, &SyntaxError{Pos: i, Msg: "expected ${id} or $value"}
		case r == '"' || r == '\'':
			s, n, err := lexString(src[i:], r)
			if err != nil {
				err.Pos += i
				return nil, err
			}
			toks = append(toks, token{kind: tokString, text: s, pos: start})
			i += n
			continue
		case unicode.IsDigit(r) || (r == '.' && i+1 < len(src) && isDigit(src[i+1])):
			j := i
			for j < len(src) && (isDigit(src[j]) || src[j] == '.') {
				j++
			}
			toks = append(toks, token{kind: tokNumber, text: src[i:j], pos: start})
			i = j
			continue
		case unicode.IsLetter(r) || r == '_':
			j := i
			for j < len(src) {
				r2, w2 := utf8.DecodeRuneInString(src[j:])
				if !unicode.IsLetter(r2) && !unicode.IsDigit(r2) && r2 != '_' {
					break
				}
				j += w2
			}
			word := src[i:j]
			kind := tokIdent
			switch word {
			case "and":
				kind = tokAnd
			case "or":
				kind = tokOr
			case "not":
				kind = tokNot
			}
			toks = append(toks, token{kind: kind, text: word, pos: start})
			i = j
			continue
		}

		two := ""
		if i+1 < len(src) {
			two = src[i : i+2]
		}
		switch two {
		case "==":
			toks = append(toks, token{kind: tokEq, text: two, pos: start})
			i += 2
			continue
		case "!=":
			toks = append(toks, token{kind: tokNe, text: two, pos: start})
			i += 2
			continue
		case "<=":
			toks = append(toks, token{kind: tokLe, text: two, pos: start})
			i += 2
			continue
		case ">=":
			toks = append(toks, token{kind: tokGe, text: two, pos: start})
			i += 2
			continue
		case "&&":
			toks = append(toks, token{kind: tokAnd, text: two, pos: start})
			i += 2
			continue
		case "||":
			toks = append(toks, token{kind: tokOr, text: two, pos: start})
			i += 2
			continue
		}

		var kind tokenKind
		switch r {
		case '(':
			kind = tokLParen
		case ')':
			kind = tokRParen
		case '[':
			kind = tokLBracket
		case ']':
			kind = tokRBracket
		case ',':
			kind = tokComma
		case '+':
			kind = tokPlus
		case '-':
			kind = tokMinus
		case '*':
			kind = tokStar
		case '/':
			kind = tokSlash
		case '<':
			kind = tokLt
		case '>':
			kind = tokGt
		case '!':
			kind = tokNot
		default:
			return nil, &SyntaxError{Pos: i, Msg: "unexpected character " + string(r)}
		}
		toks = append(toks, token{kind: kind, text: string(r), pos: start})
		i += w
	}
	toks = append(toks, token{kind: tokEOF, pos: len(src)})
	return toks, nil
}

func lexString(src string, quote rune) (string, int, *SyntaxError) {
	var b strings.Builder
	i := 1
	for i < len(src) {
		c := src[i]
		switch {
		case rune(c) == quote:
			return b.String(), i + 1, nil
		case c == '\\' && i+1 < len(src):
			b.WriteByte(src[i+1])
			i += 2
		default:
			b.WriteByte(c)
			i++
		}
	}
	return "", 0, &SyntaxError{Pos: 0, Msg: "unterminated string literal"}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
