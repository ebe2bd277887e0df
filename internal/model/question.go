package model

// PlanKind selects the question flow and projection branch of a plan.
type PlanKind string

const (
	PlanSaving     PlanKind = "saving"
	PlanGoal       PlanKind = "goal"
	PlanRetirement PlanKind = "retirement"
)

// PlanKinds lists every kind in display order.
var PlanKinds = []PlanKind{PlanSaving, PlanGoal, PlanRetirement}

// Valid reports whether k is a known plan kind.
func (k PlanKind) Valid() bool {
	switch k {
	case PlanSaving, PlanGoal, PlanRetirement:
		return true
	}
	return false
}

// QuestionKind is the input widget a question expects.
type QuestionKind string

const (
	KindChoice        QuestionKind = "choice"
	KindSliderNumeric QuestionKind = "slider-input"
	KindPlainNumeric  QuestionKind = "number-input"
)

// Numeric reports whether answers to this kind are numbers.
func (k QuestionKind) Numeric() bool {
	return k == KindSliderNumeric || k == KindPlainNumeric
}

// Option is one selectable answer of a choice question.
type Option struct {
	Label string
	Value Value
}

// Bound is a numeric limit that is either fixed or taken from the answer
// to another question (Ref).
type Bound struct {
	Value float64
	Ref   string
}

// Fixed returns a constant bound.
func Fixed(v float64) Bound { return Bound{Value: v} }

// Dynamic returns a bound that follows the answer to questionID.
func Dynamic(questionID string) Bound { return Bound{Ref: questionID} }

// IsDynamic reports whether the bound references another answer.
func (b Bound) IsDynamic() bool { return b.Ref != "" }

// Condition gates a question on an earlier answer.
type Condition struct {
	QuestionID string
	Accepted   []Value
}

// QuestionSpec is the static definition of one question.
type QuestionSpec struct {
	ID         string
	Group      string // pacing/section label
	Prompt     string
	Kind       QuestionKind
	Options    []Option
	Min        Bound
	Max        Bound
	SliderMax  float64 // display range of a slider; input may exceed it
	Step       float64
	Default    float64
	Suffix     string
	Visibility *Condition
}

// Option returns the option whose value equals v.
func (q QuestionSpec) Option(v Value) (Option, bool) {
	for _, o := range q.Options {
		if o.Value.Equal(v) {
			return o, true
		}
	}
	return Option{}, false
}
