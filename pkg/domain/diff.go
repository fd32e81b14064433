package domain

import (
	"math"
	"reflect"
)

// ViewDiff represents the changes between two evaluations of the same
// document, typically before and after the respondent edits an answer.
// It is designed to be serialized to JSON for partial updates on the client.
type ViewDiff struct {
	DocumentID string `json:"documentId"`

	// Nodes holds the new state of every node whose derived state changed.
	Nodes map[string]*NodeView `json:"nodes,omitempty"`

	// Removed lists nodes present in the old view only.
	Removed []string `json:"removed,omitempty"`

	Submittable *bool `json:"submittable,omitempty"`
	Finished    *bool `json:"finished,omitempty"`
	Complete    *bool `json:"complete,omitempty"`
}

// Diff calculates the difference between oldView and newView.
// If oldView is nil, it returns a diff representing the entire newView (initial load).
// It returns nil when nothing changed.
func Diff(oldView, newView *View) *ViewDiff {
	if newView == nil {
		return nil
	}

	diff := &ViewDiff{DocumentID: newView.DocumentID}

	if oldView == nil || oldView.Submittable != newView.Submittable {
		diff.Submittable = &newView.Submittable
	}
	if oldView == nil || oldView.Finished != newView.Finished {
		diff.Finished = &newView.Finished
	}
	if oldView == nil || oldView.Complete != newView.Complete {
		diff.Complete = &newView.Complete
	}

	diff.Nodes = diffNodes(oldView, newView)

	if oldView != nil {
		for _, id := range oldView.Order {
			if _, ok := newView.Nodes[id]; !ok {
				diff.Removed = append(diff.Removed, id)
			}
		}
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffNodes(old, new *View) map[string]*NodeView {
	delta := make(map[string]*NodeView)
	for id, nv := range new.Nodes {
		if old == nil {
			delta[id] = nv
			continue
		}
		prev, ok := old.Nodes[id]
		if !ok || !sameNodeView(prev, nv) {
			delta[id] = nv
		}
	}
	if len(delta) == 0 {
		return nil
	}
	return delta
}

func sameNodeView(a, b *NodeView) bool {
	if a.Visible != b.Visible || a.Required != b.Required {
		return false
	}
	if !reflect.DeepEqual(a.Errors, b.Errors) || !reflect.DeepEqual(a.Warnings, b.Warnings) {
		return false
	}
	if !reflect.DeepEqual(a.ComputedText, b.ComputedText) {
		return false
	}
	return sameNumber(a.ComputedValue, b.ComputedValue)
}

// sameNumber treats two NaN sentinels as equal.
func sameNumber(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	if math.IsNaN(*a) && math.IsNaN(*b) {
		return true
	}
	return *a == *b
}

// IsEmpty checks if the diff contains any actionable changes.
// A nil diff, as returned by Diff for identical views, is empty.
func (d *ViewDiff) IsEmpty() bool {
	return d == nil ||
		d.Submittable == nil &&
		d.Finished == nil &&
		d.Complete == nil &&
		len(d.Nodes) == 0 &&
		len(d.Removed) == 0
}
