package runtime

import (
	"fmt"
	"path"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/surveykit/internal/compiler"
	"github.com/aretw0/surveykit/pkg/domain"
	"github.com/aretw0/surveykit/pkg/rules"
)

// validate runs the answer checks of a visible data node, recording hard
// errors and soft-scope warnings on nv. Rule diagnostics are returned.
func (e *Engine) validate(st *state, n *compiler.Node, nv *domain.NodeView, checks *compiler.Checks) []rules.Diagnostic {
	id := n.ID()
	answer := st.answers.Get(id)
	fail := func(code, format string, args ...any) {
		nv.Errors = append(nv.Errors, domain.ValidationError{NodeID: id, Code: code, Message: fmt.Sprintf(format, args...)})
	}

	if err := validateShape(n, answer); err != nil {
		nv.Errors = append(nv.Errors, *err)
		return nil
	}

	if answer.IsEmpty() {
		if nv.Required {
			fail(domain.CodeRequired, "an answer is required")
		}
		return nil
	}

	if matrix, ok := n.Config.(*compiler.MatrixConfig); ok && nv.Required {
		if missing := missingRows(matrix.Rows, answer); len(missing) > 0 {
			fail(domain.CodeMatrixRowMissed, "rows not answered: %s", strings.Join(missing, ", "))
		}
	}

	values := nonBlank(answer.List())

	if checks.Scope != nil {
		if msg, bad := outside(values, *checks.Scope, checks.Numeric); bad {
			fail(domain.CodeScope, "%s", describeScope(checks.ScopeDesc, msg))
		}
	}
	if checks.SoftScope != nil {
		if msg, bad := outside(values, *checks.SoftScope, checks.Numeric); bad {
			nv.Warnings = append(nv.Warnings, domain.Warning{
				NodeID:  id,
				Code:    domain.CodeSoftScope,
				Message: describeScope(checks.SoftScopeDesc, msg),
			})
		}
	}
	if checks.TextLimit != nil {
		if msg, bad := outside(values, *checks.TextLimit, false); bad {
			fail(domain.CodeTextLimit, "%s", msg)
		}
	}
	if checks.AnswerLimit != nil {
		for _, group := range selectionGroups(n, answer) {
			if count := len(nonBlank(group.values)); !checks.AnswerLimit.Contains(float64(count)) {
				fail(domain.CodeAnswerLimit, "%d selected%s, expected %s", count, group.suffix(), checks.AnswerLimit)
				break
			}
		}
	}

	switch cfg := n.Config.(type) {
	case *compiler.ChoiceConfig:
		if cfg.Reject != "" {
			if msg, bad := rejectExclusive(cfg, values); bad {
				fail(domain.CodeRejectOther, "%s", msg)
			}
		}
	case *compiler.RatingConfig:
		if cfg.Bounds != nil {
			if msg, bad := outside(values, *cfg.Bounds, true); bad {
				fail(domain.CodeRatingRange, "%s", msg)
			}
		}
	case *compiler.UploadConfig:
		if file, bad := unaccepted(values, cfg.Accept); bad {
			fail(domain.CodeFileType, "file %q is not one of %s", file, strings.Join(cfg.Accept, ", "))
		}
	}

	var diags []rules.Diagnostic
	if n.Logic.Validate != nil {
		ok, d := rules.EvalBool(n.Logic.Validate, st.resolver(n.Slot))
		diags = d
		if !ok {
			fail(domain.CodeValidateRule, "answer does not satisfy %s", n.Node.Attr().ValidateRule)
		}
	}
	return diags
}

// outside reports the first value that falls outside r. Numeric nodes are
// measured on their value, everything else on rune length.
func outside(values []string, r rules.Range, numeric bool) (string, bool) {
	for _, v := range values {
		if numeric {
			x, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				// Already reported by the shape check.
				continue
			}
			if !r.Contains(x) {
				return fmt.Sprintf("value %s is outside %s", strings.TrimSpace(v), r), true
			}
			continue
		}
		if length := utf8.RuneCountInString(v); !r.Contains(float64(length)) {
			return fmt.Sprintf("length %d is outside %s", length, r), true
		}
	}
	return "", false
}

func describeScope(desc, fallback string) string {
	if desc != "" {
		return desc
	}
	return fallback
}

type selection struct {
	row    string
	values []string
}

func (s selection) suffix() string {
	if s.row == "" {
		return ""
	}
	return fmt.Sprintf(" in row %q", s.row)
}

// selectionGroups splits an answer into the units answerLimit applies to:
// one group per row for matrix checkboxes, a single group otherwise.
func selectionGroups(n *compiler.Node, answer domain.Answer) []selection {
	if n.Node.Type == domain.TypeMatrixCheckbox && answer.Kind == domain.AnswerMatrix {
		groups := make([]selection, 0, len(answer.Cells))
		for _, row := range answer.Rows() {
			groups = append(groups, selection{row: row, values: answer.Cells[row]})
		}
		return groups
	}
	return []selection{{values: answer.List()}}
}

func missingRows(rows []string, answer domain.Answer) []string {
	var missing []string
	for _, row := range rows {
		if len(nonBlank(answer.Cells[row])) == 0 {
			missing = append(missing, row)
		}
	}
	return missing
}

// rejectExclusive checks the selection against the exclusive options.
// rejectAll isolates an exclusive option from every other selection.
// rejectOther only forbids combining exclusive options with each other.
func rejectExclusive(cfg *compiler.ChoiceConfig, values []string) (string, bool) {
	if len(values) < 2 {
		return "", false
	}

	var exclusive, others []string
	for _, v := range values {
		if slices.Contains(cfg.Exclusive, v) {
			exclusive = append(exclusive, v)
		} else {
			others = append(others, v)
		}
	}

	switch {
	case len(exclusive) > 1:
		return fmt.Sprintf("options %s are mutually exclusive", strings.Join(exclusive, ", ")), true
	case cfg.Reject == domain.RejectAll && len(exclusive) == 1 && len(others) > 0:
		return fmt.Sprintf("option %q cannot be combined with %s", exclusive[0], strings.Join(others, ", ")), true
	}
	return "", false
}

// unaccepted reports the first file whose extension is not in accept.
func unaccepted(files, accept []string) (string, bool) {
	if len(accept) == 0 {
		return "", false
	}
	for _, f := range files {
		if !slices.Contains(accept, strings.ToLower(path.Ext(strings.TrimSpace(f)))) {
			return f, true
		}
	}
	return "", false
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
