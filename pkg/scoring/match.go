package scoring

import (
	"strings"

	"github.com/aretw0/surveykit/internal/compiler"
	"github.com/aretw0/surveykit/pkg/domain"
)

// matches compares one answer text with one expected answer.
func matches(answer, expected string, rule domain.ExamMatchRule) bool {
	answer = strings.TrimSpace(answer)
	if rule == domain.MatchContain {
		for _, tok := range strings.Split(expected, ";") {
			if tok = strings.TrimSpace(tok); tok != "" && strings.Contains(answer, tok) {
				return true
			}
		}
		return false
	}
	return answer == strings.TrimSpace(expected)
}

// splitList splits s on "," dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// expectedBlanks returns the expected text of every blank: per-blank answers
// from the data source when present, otherwise the node answer split on ","
// for multi-blank types, otherwise the whole answer as a single blank.
func expectedBlanks(n *domain.SchemaNode, exam *compiler.ExamConfig) []string {
	for _, o := range n.DataSource {
		if o.ExamCorrectAnswer != "" {
			out := make([]string, len(n.DataSource))
			for i, o := range n.DataSource {
				out[i] = o.ExamCorrectAnswer
			}
			return out
		}
	}
	if n.Type == domain.TypeMultipleBlank || n.Type == domain.TypeHorzBlank {
		return splitList(exam.Correct)
	}
	if strings.TrimSpace(exam.Correct) == "" {
		return nil
	}
	return []string{exam.Correct}
}

// blankWeights returns the weight of each blank in select mode. Blanks
// without an explicit weight share the node score evenly.
func blankWeights(n *domain.SchemaNode, exam *compiler.ExamConfig, blanks int) []float64 {
	weights := make([]float64, blanks)
	for i := range weights {
		weights[i] = exam.Score / float64(blanks)
		if i < len(n.DataSource) && n.DataSource[i].ExamScore != nil {
			weights[i] = *n.DataSource[i].ExamScore
		}
	}
	return weights
}
