package rules

import "strings"

// Template is a parsed replaceTextRule: literal text with ${id} placeholders.
// "$$" writes a literal dollar sign.
type Template struct {
	parts []templatePart
}

type templatePart struct {
	lit string
	ref string
}

// ParseTemplate parses a replacement template.
func ParseTemplate(src string) (*Template, error) {
	t := &Template{}
	var lit strings.Builder
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c != '$' {
			lit.WriteByte(c)
			continue
		}
		if i+1 < len(src) && src[i+1] == '$' {
			lit.WriteByte('$')
			i++
			continue
		}
		if i+1 >= len(src) || src[i+1] != '{' {
			lit.WriteByte(c)
			continue
		}
		end := strings.IndexByte(src[i+2:], '}')
		if end < 0 {
			return nil, &SyntaxError{Pos: i, Msg: "unterminated placeholder, missing '}'"}
		}
		id := strings.TrimSpace(src[i+2 : i+2+end])
		if id == "" {
			return nil, &SyntaxError{Pos: i, Msg: "empty placeholder"}
		}
		if lit.Len() > 0 {
			t.parts = append(t.parts, templatePart{lit: lit.String()})
			lit.Reset()
		}
		t.parts = append(t.parts, templatePart{ref: id})
		i += end + 2
	}
	if lit.Len() > 0 {
		t.parts = append(t.parts, templatePart{lit: lit.String()})
	}
	return t, nil
}

// Refs returns the placeholder ids in order of first appearance.
func (t *Template) Refs() []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range t.parts {
		if p.ref != "" && !seen[p.ref] {
			seen[p.ref] = true
			out = append(out, p.ref)
		}
	}
	return out
}

// Render substitutes each placeholder with the text returned by lookup.
func (t *Template) Render(lookup func(id string) string) string {
	var b strings.Builder
	for _, p := range t.parts {
		if p.ref != "" {
			b.WriteString(lookup(p.ref))
			continue
		}
		b.WriteString(p.lit)
	}
	return b.String()
}
