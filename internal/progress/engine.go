// Package progress owns the mutable game state: XP, plans, the question
// flow of the active plan, quests and monthly history. Every mutation is
// written through to the Store.
package progress

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/finquest/internal/answers"
	"github.com/theirongolddev/finquest/internal/flow"
	"github.com/theirongolddev/finquest/internal/model"
	"github.com/theirongolddev/finquest/internal/notify"
)

// DefaultComebackDays is the absence after which a visit earns a
// comeback bonus.
const DefaultComebackDays = 7

// Store persists the state document and the rollover buckets.
type Store interface {
	LoadState() (model.State, error)
	SaveState(model.State) error
	Rollover(monthKey string) (float64, error)
	AddRollover(monthKey string, amount float64) (float64, error)
	Reset() error
}

// Options configure an Engine. Only Store is required.
type Options struct {
	Store        Store
	Clock        func() time.Time
	Notifier     notify.Publisher
	Logger       *slog.Logger
	ComebackDays int
	NewID        func() string
}

// Engine is the single writer of the game state. It is not safe for
// concurrent use.
type Engine struct {
	store        Store
	now          func() time.Time
	notifier     notify.Publisher
	log          *slog.Logger
	comebackDays int
	newID        func() string

	state model.State
	view  flowView

	lastPersistErr error
}

// flowView is the transient question flow. planID is empty for a sandbox
// draft that is never persisted.
type flowView struct {
	kind          model.PlanKind
	planID        string
	answers       *answers.Store
	cursor        flow.Cursor
	draftSnapshot *model.FinancialSnapshot
}

// New loads the persisted state. A state that cannot be read is replaced
// by the default state and a warning is logged.
func New(opts Options) *Engine {
	e := &Engine{
		store:        opts.Store,
		now:          opts.Clock,
		notifier:     opts.Notifier,
		log:          opts.Logger,
		comebackDays: opts.ComebackDays,
		newID:        opts.NewID,
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.notifier == nil {
		e.notifier = notify.Discard
	}
	if e.log == nil {
		e.log = slog.New(slog.DiscardHandler)
	}
	if e.comebackDays < 1 {
		e.comebackDays = DefaultComebackDays
	}
	if e.newID == nil {
		e.newID = uuid.NewString
	}

	st, err := e.store.LoadState()
	if err != nil {
		e.log.Warn("loading state failed, starting fresh", "err", err)
		st = model.DefaultState()
	}
	e.state = st.Normalized()
	e.restoreActive()
	return e
}

// restoreActive rebuilds the flow view from the active plan, repairing an
// active pointer that names no plan.
func (e *Engine) restoreActive() {
	if e.state.ActivePlanID != "" && e.planIndex(e.state.ActivePlanID) < 0 {
		e.log.Warn("active plan missing, repairing", "plan", e.state.ActivePlanID)
		e.state.ActivePlanID = ""
		if len(e.state.Plans) > 0 {
			e.state.ActivePlanID = e.state.Plans[0].ID
		}
	}
	for i := range e.state.Plans {
		e.state.Plans[i].Active = e.state.Plans[i].ID == e.state.ActivePlanID
	}
	e.view = flowView{}
	if p := e.activePlan(); p != nil {
		e.view = viewFor(p)
	}
}

// save writes the whole state. Failures are logged and remembered; the
// in-memory state is kept.
func (e *Engine) save() {
	if err := e.store.SaveState(e.state); err != nil {
		e.persistFailed(fmt.Errorf("saving state: %w", err))
		return
	}
	e.lastPersistErr = nil
}

func (e *Engine) persistFailed(err error) {
	e.lastPersistErr = err
	e.log.Error("persisting state", "err", err)
}

// LastPersistError returns the most recent persistence failure, or nil
// once a later save succeeded.
func (e *Engine) LastPersistError() error {
	return e.lastPersistErr
}

func (e *Engine) publish(kind notify.Kind, xp int, format string, args ...any) {
	e.notifier.Publish(notify.Event{
		Kind:    kind,
		At:      e.now(),
		Message: fmt.Sprintf(format, args...),
		XP:      xp,
	})
}

// addXP credits ev without saving and returns the points added.
func (e *Engine) addXP(ev Event) int {
	pts := Points(ev)
	if pts <= 0 {
		return 0
	}
	e.state.XP += pts
	e.log.Debug("xp awarded", "event", ev, "points", pts, "total", e.state.XP)
	e.publish(notify.XPAwarded, pts, "+%d XP", pts)
	return pts
}

// AwardXP credits the points of ev and returns them. The engine does not
// deduplicate; callers award each logical event once.
func (e *Engine) AwardXP(ev Event) int {
	pts := e.addXP(ev)
	if pts > 0 {
		e.save()
	}
	return pts
}

// RecordOpen awards open_app once per calendar day, plus comeback_bonus
// when the previous visit was at least ComebackDays ago. It returns the
// XP gained.
func (e *Engine) RecordOpen() int {
	today := e.now().Format(time.DateOnly)
	if e.state.LastActiveDate == today {
		return 0
	}

	gained := e.addXP(OpenApp)
	if days, ok := daysBetween(e.state.LastActiveDate, today); ok && days >= e.comebackDays {
		gained += e.addXP(ComebackBonus)
	}
	e.state.LastActiveDate = today
	e.save()
	return gained
}

// RecordSnapshotView awards view_snapshot the first time the snapshot
// of the bound plan is viewed on a calendar day. Sandbox flows and plans
// without a snapshot earn nothing.
func (e *Engine) RecordSnapshotView() int {
	p := e.boundPlan()
	if p == nil || p.Snapshot == nil {
		return 0
	}
	return e.awardDaily(ViewSnapshot, snapshotViewKey(p.ID))
}

// RecordWhatIfView awards view_snapshot for the first what-if visit of a
// calendar day.
func (e *Engine) RecordWhatIfView() int {
	return e.awardDaily(ViewSnapshot, whatIfViewKey)
}

const whatIfViewKey = "what_if"

func snapshotViewKey(planID string) string { return "snapshot:" + planID }

func (e *Engine) awardDaily(ev Event, key string) int {
	today := e.now().Format(time.DateOnly)
	if e.state.ViewedOn[key] == today {
		return 0
	}
	if e.state.ViewedOn == nil {
		e.state.ViewedOn = make(map[string]string)
	}
	e.state.ViewedOn[key] = today
	pts := e.addXP(ev)
	e.save()
	return pts
}

func daysBetween(from, to string) (int, bool) {
	a, err := time.Parse(time.DateOnly, from)
	if err != nil {
		return 0, false
	}
	b, err := time.Parse(time.DateOnly, to)
	if err != nil {
		return 0, false
	}
	return int(b.Sub(a).Hours() / 24), true
}

// ResetAll wipes every persisted key and returns to the initial state.
func (e *Engine) ResetAll() {
	if err := e.store.Reset(); err != nil {
		e.persistFailed(fmt.Errorf("resetting store: %w", err))
	}
	e.state = model.DefaultState()
	e.view = flowView{}
	e.save()
	e.log.Info("state reset")
	e.publish(notify.StateReset, 0, "Everything has been reset")
}

// Now is the engine clock.
func (e *Engine) Now() time.Time { return e.now() }

// XP returns the current XP total.
func (e *Engine) XP() int { return e.state.XP }

// Rank returns the rank for the current XP.
func (e *Engine) Rank() Rank { return RankFor(e.state.XP) }

// StreakMonths is derived from the monthly history.
func (e *Engine) StreakMonths() int { return Streak(e.state.MonthlyLogs) }

// State returns a copy of the full state document.
func (e *Engine) State() model.State {
	st := e.state
	st.Plans = make([]model.Plan, len(e.state.Plans))
	for i, p := range e.state.Plans {
		st.Plans[i] = clonePlan(p)
	}
	st.QuestStatuses = slices.Clone(e.state.QuestStatuses)
	st.MonthlyLogs = slices.Clone(e.state.MonthlyLogs)
	st.ViewedOn = maps.Clone(e.state.ViewedOn)
	return st
}

// Flow errors returned by SubmitAnswer.
var (
	ErrNoFlow          = errors.New("no plan kind selected")
	ErrUnknownQuestion = errors.New("question is not part of this flow")
	ErrQuestionHidden  = errors.New("question is not asked with the current answers")
	ErrUnknownKind     = errors.New("unknown plan kind")
)
