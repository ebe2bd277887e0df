// Package catalog holds the static question flows for each plan kind and
// evaluates their visibility rules and dynamic bounds.
package catalog

import (
	"fmt"
	"slices"

	"github.com/theirongolddev/finquest/internal/model"
)

// UnansweredBound is returned for a dynamic bound whose governing question
// has no numeric answer yet, so the dependent slider stays usable.
const UnansweredBound = 1e8

// Answers is the read side of an answer store.
type Answers interface {
	Value(questionID string) (model.Value, bool)
}

// Which selects the lower or upper bound of a question.
type Which int

const (
	Min Which = iota
	Max
)

// Flow returns the ordered questions of kind. Unknown kinds have no
// questions.
func Flow(kind model.PlanKind) []model.QuestionSpec {
	return slices.Clone(flows[kind])
}

// Lookup finds a question by id within the flow of kind.
func Lookup(kind model.PlanKind, questionID string) (model.QuestionSpec, bool) {
	for _, q := range flows[kind] {
		if q.ID == questionID {
			return q, true
		}
	}
	return model.QuestionSpec{}, false
}

// IsVisible reports whether q should be asked given the answers so far.
// A condition whose referenced question is unanswered hides q.
func IsVisible(q model.QuestionSpec, answers Answers) bool {
	if q.Visibility == nil {
		return true
	}
	v, ok := answers.Value(q.Visibility.QuestionID)
	if !ok {
		return false
	}
	for _, accepted := range q.Visibility.Accepted {
		if accepted.Equal(v) {
			return true
		}
	}
	return false
}

// ResolveBound returns the min or max of q. Dynamic bounds follow the
// referenced answer and fall back to UnansweredBound.
func ResolveBound(q model.QuestionSpec, which Which, answers Answers) float64 {
	b := q.Min
	if which == Max {
		b = q.Max
	}
	if !b.IsDynamic() {
		return b.Value
	}
	v, ok := answers.Value(b.Ref)
	if !ok {
		return UnansweredBound
	}
	f, ok := v.Float()
	if !ok {
		return UnansweredBound
	}
	return f
}

// Validate checks that every visibility condition and dynamic bound in
// flow references a question that appears earlier in the same flow.
func Validate(flow []model.QuestionSpec) error {
	seen := make(map[string]bool, len(flow))
	for _, q := range flow {
		if seen[q.ID] {
			return fmt.Errorf("question %q appears twice", q.ID)
		}
		if q.Visibility != nil && !seen[q.Visibility.QuestionID] {
			return fmt.Errorf("question %q is gated on %q, which is not asked before it",
				q.ID, q.Visibility.QuestionID)
		}
		for _, b := range []model.Bound{q.Min, q.Max} {
			if b.IsDynamic() && !seen[b.Ref] {
				return fmt.Errorf("question %q takes a bound from %q, which is not asked before it",
					q.ID, b.Ref)
			}
		}
		if q.Kind == model.KindChoice && len(q.Options) == 0 {
			return fmt.Errorf("choice question %q has no options", q.ID)
		}
		seen[q.ID] = true
	}
	return nil
}
