package progress

import (
	"slices"

	"github.com/theirongolddev/finquest/internal/answers"
	"github.com/theirongolddev/finquest/internal/catalog"
	"github.com/theirongolddev/finquest/internal/flow"
	"github.com/theirongolddev/finquest/internal/model"
	"github.com/theirongolddev/finquest/internal/notify"
)

var defaultPlanNames = map[model.PlanKind]string{
	model.PlanSaving:     "Saving plan",
	model.PlanGoal:       "Goal plan",
	model.PlanRetirement: "Retirement plan",
}

var defaultPlanEmoji = map[model.PlanKind]string{
	model.PlanSaving:     "💰",
	model.PlanGoal:       "🎯",
	model.PlanRetirement: "🏖️",
}

// CreatePlan adds a new empty plan, makes it the only active plan and
// starts its flow from the first question. Empty name and emoji get the
// defaults of kind.
func (e *Engine) CreatePlan(kind model.PlanKind, name, emoji string) (model.Plan, error) {
	if !kind.Valid() {
		return model.Plan{}, ErrUnknownKind
	}
	if name == "" {
		name = defaultPlanNames[kind]
	}
	if emoji == "" {
		emoji = defaultPlanEmoji[kind]
	}

	p := model.Plan{
		ID:          e.newID(),
		Kind:        kind,
		Name:        name,
		Emoji:       emoji,
		Answers:     []model.Answer{},
		MonthlyLogs: []model.MonthlyLog{},
		CreatedAt:   e.now(),
	}
	e.state.Plans = append(e.state.Plans, p)
	e.activate(p.ID)
	e.view = flowView{kind: kind, planID: p.ID, answers: answers.New()}

	e.save()
	e.log.Debug("plan created", "plan", p.ID, "kind", kind)
	e.publish(notify.PlanCreated, 0, "%s %s created", emoji, name)
	return clonePlan(*e.activePlan()), nil
}

// SwitchPlan activates id and restores its answers, positioning the flow
// at the first unanswered question. Unknown ids are ignored.
func (e *Engine) SwitchPlan(id string) bool {
	if e.planIndex(id) < 0 {
		return false
	}
	e.activate(id)
	p := e.activePlan()
	e.view = viewFor(p)

	e.save()
	e.publish(notify.PlanSwitched, 0, "Switched to %s %s", p.Emoji, p.Name)
	return true
}

// DeletePlan removes id. When it was active the first remaining plan takes
// over, or no plan is active.
func (e *Engine) DeletePlan(id string) bool {
	i := e.planIndex(id)
	if i < 0 {
		return false
	}
	removed := e.state.Plans[i]
	e.state.Plans = slices.Delete(e.state.Plans, i, i+1)
	delete(e.state.ViewedOn, snapshotViewKey(id))

	if e.state.ActivePlanID == id {
		e.state.ActivePlanID = ""
		e.view = flowView{}
		if len(e.state.Plans) > 0 {
			e.activate(e.state.Plans[0].ID)
			e.view = viewFor(e.activePlan())
		}
	}

	e.save()
	e.log.Debug("plan deleted", "plan", id, "active", e.state.ActivePlanID)
	e.publish(notify.PlanDeleted, 0, "%s %s deleted", removed.Emoji, removed.Name)
	return true
}

// Plans returns copies of every plan in creation order.
func (e *Engine) Plans() []model.Plan {
	out := make([]model.Plan, len(e.state.Plans))
	for i, p := range e.state.Plans {
		out[i] = clonePlan(p)
	}
	return out
}

// ActivePlanID is empty when no plan is active.
func (e *Engine) ActivePlanID() string { return e.state.ActivePlanID }

// ActivePlan returns a copy of the active plan.
func (e *Engine) ActivePlan() (model.Plan, bool) {
	p := e.activePlan()
	if p == nil {
		return model.Plan{}, false
	}
	return clonePlan(*p), true
}

func (e *Engine) activate(id string) {
	e.state.ActivePlanID = id
	for i := range e.state.Plans {
		e.state.Plans[i].Active = e.state.Plans[i].ID == id
	}
}

func (e *Engine) planIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(e.state.Plans, func(p model.Plan) bool { return p.ID == id })
}

func (e *Engine) activePlan() *model.Plan {
	i := e.planIndex(e.state.ActivePlanID)
	if i < 0 {
		return nil
	}
	return &e.state.Plans[i]
}

func viewFor(p *model.Plan) flowView {
	store := answers.New(p.Answers...)
	active := flow.ActiveQuestions(catalog.Flow(p.Kind), store)
	return flowView{
		kind:    p.Kind,
		planID:  p.ID,
		answers: store,
		cursor:  flow.Resume(active, store),
	}
}

func clonePlan(p model.Plan) model.Plan {
	p.Answers = slices.Clone(p.Answers)
	p.MonthlyLogs = slices.Clone(p.MonthlyLogs)
	if p.Snapshot != nil {
		snap := *p.Snapshot
		p.Snapshot = &snap
	}
	return p
}
