package progress

import (
	"fmt"

	"github.com/theirongolddev/finquest/internal/answers"
	"github.com/theirongolddev/finquest/internal/catalog"
	"github.com/theirongolddev/finquest/internal/flow"
	"github.com/theirongolddev/finquest/internal/model"
	"github.com/theirongolddev/finquest/internal/notify"
	"github.com/theirongolddev/finquest/internal/projection"
)

// SelectPlanKind starts a sandbox flow of kind that is not bound to any
// plan. Nothing about it is persisted and it earns no XP.
func (e *Engine) SelectPlanKind(kind model.PlanKind) bool {
	if !kind.Valid() {
		return false
	}
	e.view = flowView{kind: kind, answers: answers.New()}
	return true
}

// FlowKind returns the kind of the current flow, empty when there is none.
func (e *Engine) FlowKind() model.PlanKind { return e.view.kind }

// Sandbox reports whether the current flow is a draft not bound to a plan.
func (e *Engine) Sandbox() bool { return e.view.kind != "" && e.view.planID == "" }

// ActiveQuestions recomputes the visible questions of the current flow.
func (e *Engine) ActiveQuestions() []model.QuestionSpec {
	if e.view.kind == "" {
		return nil
	}
	return flow.ActiveQuestions(catalog.Flow(e.view.kind), e.view.answers)
}

// CurrentIndex is the cursor into ActiveQuestions.
func (e *Engine) CurrentIndex() int { return e.view.cursor.Index() }

// CurrentQuestion returns the question under the cursor, false when the
// flow is complete or there is no flow.
func (e *Engine) CurrentQuestion() (model.QuestionSpec, bool) {
	return e.view.cursor.Current(e.ActiveQuestions())
}

// FlowComplete reports whether the cursor has passed every active question.
func (e *Engine) FlowComplete() bool {
	return e.view.kind != "" && e.view.cursor.Done(e.ActiveQuestions())
}

// Answers returns the answers of the current flow.
func (e *Engine) Answers() []model.Answer { return e.view.answers.All() }

// Answer returns the stored answer for questionID in the current flow.
func (e *Engine) Answer(questionID string) (model.Answer, bool) {
	return e.view.answers.Get(questionID)
}

// ResolveBound evaluates a bound of q against the current answers.
func (e *Engine) ResolveBound(q model.QuestionSpec, which catalog.Which) float64 {
	return catalog.ResolveBound(q, which, e.view.answers)
}

// SubmitAnswer validates raw for questionID and upserts it. label is the
// display text; when empty the option label or the raw value is used. On
// error nothing changes.
func (e *Engine) SubmitAnswer(questionID, raw, label string) (model.Answer, error) {
	q, v, err := e.validate(questionID, raw)
	if err != nil {
		return model.Answer{}, err
	}

	if label == "" {
		label = v.String()
		if o, ok := q.Option(v); ok {
			label = o.Label
		}
	}
	a := model.Answer{QuestionID: questionID, Value: v, Label: label}
	replaced := e.view.answers.Upsert(a)
	e.view.cursor.Clamp(e.ActiveQuestions())

	if p := e.boundPlan(); p != nil {
		p.Answers = e.view.answers.All()
		if !replaced {
			e.addXP(CompleteQuestion)
		}
		e.save()
	}
	return a, nil
}

// CheckAnswer reports whether raw would be accepted for questionID
// without storing it.
func (e *Engine) CheckAnswer(questionID, raw string) error {
	_, _, err := e.validate(questionID, raw)
	return err
}

func (e *Engine) validate(questionID, raw string) (model.QuestionSpec, model.Value, error) {
	if e.view.kind == "" {
		return model.QuestionSpec{}, model.Value{}, ErrNoFlow
	}
	q, ok := catalog.Lookup(e.view.kind, questionID)
	if !ok {
		return q, model.Value{}, fmt.Errorf("%s: %w", questionID, ErrUnknownQuestion)
	}
	if !catalog.IsVisible(q, e.view.answers) {
		return q, model.Value{}, fmt.Errorf("%s: %w", questionID, ErrQuestionHidden)
	}
	v, err := flow.Validate(q, raw, e.view.answers)
	if err != nil {
		return q, model.Value{}, fmt.Errorf("%s: %w", questionID, err)
	}
	return q, v, nil
}

// AdvanceQuestion moves to the next active question. It returns false
// when the flow was already complete or there is no flow.
func (e *Engine) AdvanceQuestion() bool {
	active := e.ActiveQuestions()
	if e.view.kind == "" || e.view.cursor.Done(active) {
		return false
	}
	e.view.cursor.Advance(active)
	return true
}

// RestartFlow moves the cursor back to the first active question.
func (e *Engine) RestartFlow() {
	e.view.cursor.Reset()
}

// CalculateSnapshot recomputes the snapshot of the current flow from all
// of its stored answers and replaces the previous one. It returns false
// when there is no flow.
func (e *Engine) CalculateSnapshot() (model.FinancialSnapshot, bool) {
	if e.view.kind == "" {
		return model.FinancialSnapshot{}, false
	}
	snap := projection.ComputeSnapshot(e.view.kind, e.view.answers)

	if p := e.boundPlan(); p != nil {
		stored := snap
		p.Snapshot = &stored
		e.save()
		e.publish(notify.SnapshotUpdated, 0, "Snapshot updated for %s", p.Name)
		return snap, true
	}
	draft := snap
	e.view.draftSnapshot = &draft
	return snap, true
}

// Snapshot returns the snapshot of the current flow, nil before the first
// calculation.
func (e *Engine) Snapshot() *model.FinancialSnapshot {
	src := e.view.draftSnapshot
	if p := e.boundPlan(); p != nil {
		src = p.Snapshot
	}
	if src == nil {
		return nil
	}
	snap := *src
	return &snap
}

// boundPlan is the plan behind the current flow, nil for a sandbox.
func (e *Engine) boundPlan() *model.Plan {
	if e.view.planID == "" {
		return nil
	}
	i := e.planIndex(e.view.planID)
	if i < 0 {
		return nil
	}
	return &e.state.Plans[i]
}
