package scoring

import "github.com/aretw0/surveykit/pkg/domain"

// Status tells how a node's score was obtained.
type Status string

const (
	// StatusScored means the node was scored automatically.
	StatusScored Status = "scored"
	// StatusManual means the node needs (or received) a human score.
	StatusManual Status = "manual"
	// StatusExcluded means the node is exam-eligible but not scored.
	StatusExcluded Status = "excluded"
	// StatusUnanswered means the node scored zero for lack of an answer.
	StatusUnanswered Status = "unanswered"
)

// NodeScore is the result for one exam node.
type NodeScore struct {
	ID   string               `json:"id"`
	Type domain.QuestionType  `json:"type"`
	Mode domain.ExamScoreMode `json:"mode,omitempty"`
	Max  float64              `json:"max"`
	// Score is nil while a manual node waits for a human score.
	Score    *float64 `json:"score"`
	Correct  bool     `json:"correct"`
	Status   Status   `json:"status"`
	Analysis string   `json:"analysis,omitempty"`
}

// Report is the per-node and aggregate scoring result of a document.
type Report struct {
	DocumentID string      `json:"documentId"`
	Nodes      []NodeScore `json:"nodes"`
	// AutoTotal sums the automatically scored nodes.
	AutoTotal float64 `json:"autoTotal"`
	// ManualTotal sums the human scores supplied so far.
	ManualTotal float64 `json:"manualTotal"`
	Total       float64 `json:"total"`
	// MaxTotal sums the maximum of every node that is not excluded.
	MaxTotal float64 `json:"maxTotal"`
	// Manual lists the nodes still waiting for a human score.
	Manual []string `json:"manual,omitempty"`
}

// Node returns the score of id.
func (r *Report) Node(id string) (*NodeScore, bool) {
	for i := range r.Nodes {
		if r.Nodes[i].ID == id {
			return &r.Nodes[i], true
		}
	}
	return nil, false
}

// Scored counts the nodes that received a score, automatic or human.
func (r *Report) Scored() int {
	n := 0
	for _, ns := range r.Nodes {
		if ns.Score != nil && ns.Status != StatusExcluded {
			n++
		}
	}
	return n
}
