package progress

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/finquest/internal/catalog"
	"github.com/theirongolddev/finquest/internal/flow"
	"github.com/theirongolddev/finquest/internal/model"
	"github.com/theirongolddev/finquest/internal/notify"
	"github.com/theirongolddev/finquest/internal/quest"
	"github.com/theirongolddev/finquest/internal/store"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	engine *Engine
	store  *store.Memory
	clock  *clock
	bus    *notify.Bus
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: store.NewMemory(),
		clock: &clock{t: time.Date(2026, time.October, 14, 9, 30, 0, 0, time.UTC)},
		bus:   notify.NewBus(100),
	}
	f.engine = f.open()
	return f
}

// open builds an engine over the fixture's store, as a restart would.
func (f *fixture) open() *Engine {
	n := 0
	return New(Options{
		Store:    f.store,
		Clock:    f.clock.now,
		Notifier: f.bus,
		NewID: func() string {
			n++
			return fmt.Sprintf("plan-%d", n)
		},
	})
}

func (f *fixture) submit(t *testing.T, id, raw string) model.Answer {
	t.Helper()
	a, err := f.engine.SubmitAnswer(id, raw, "")
	require.NoError(t, err)
	return a
}

// answerAll walks the current flow answering every question with its
// first option or its default.
func answerAll(t *testing.T, e *Engine) int {
	t.Helper()
	n := 0
	for q, ok := e.CurrentQuestion(); ok; q, ok = e.CurrentQuestion() {
		raw := ""
		if q.Kind == model.KindChoice {
			raw = q.Options[0].Value.String()
		} else {
			raw = strconv.FormatFloat(math.Max(q.Default, e.ResolveBound(q, catalog.Min)), 'f', -1, 64)
		}
		_, err := e.SubmitAnswer(q.ID, raw, "")
		require.NoError(t, err, q.ID)
		require.True(t, e.AdvanceQuestion())
		n++
	}
	return n
}

func TestNewStartsFromDefaults(t *testing.T) {
	f := newFixture(t)
	e := f.engine

	assert.Equal(t, 0, e.XP())
	assert.Empty(t, e.Plans())
	assert.Empty(t, e.ActivePlanID())
	assert.Nil(t, e.Snapshot())
	assert.Nil(t, e.ActiveQuestions())
	assert.False(t, e.FlowComplete())
	assert.Equal(t, 1, e.StreakMonths())
	assert.Equal(t, "seedling", e.Rank().ID)
}

func TestCorruptStateFallsBack(t *testing.T) {
	f := newFixture(t)
	f.store.SetRaw([]byte(`{"xp": "lots"`))

	e := f.open()
	assert.Equal(t, 0, e.XP())
	assert.Empty(t, e.Plans())
}

func TestCreatePlanDeactivatesOthers(t *testing.T) {
	f := newFixture(t)
	e := f.engine

	first, err := e.CreatePlan(model.PlanSaving, "", "")
	require.NoError(t, err)
	assert.Equal(t, "Saving plan", first.Name)
	assert.Equal(t, "💰", first.Emoji)
	f.submit(t, catalog.MonthlyIncome, "45000")

	second, err := e.CreatePlan(model.PlanRetirement, "Beach house", "🏝️")
	require.NoError(t, err)

	plans := e.Plans()
	require.Len(t, plans, 2)
	active := 0
	for _, p := range plans {
		if p.Active {
			active++
		}
	}
	assert.Equal(t, 1, active)
	assert.False(t, plans[0].Active)
	assert.True(t, plans[1].Active)
	assert.Equal(t, second.ID, e.ActivePlanID())
	assert.Empty(t, second.Answers)
	assert.Empty(t, e.Answers())
	assert.Nil(t, second.Snapshot)
	assert.Equal(t, 0, e.CurrentIndex())
	assert.Equal(t, model.PlanRetirement, e.FlowKind())

	// The first plan keeps its own answers.
	assert.Len(t, plans[0].Answers, 1)

	_, err = e.CreatePlan("vacation", "", "")
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Len(t, e.Plans(), 2)
}

func TestSubmitAnswer(t *testing.T) {
	f := newFixture(t)
	e := f.engine
	_, err := e.CreatePlan(model.PlanSaving, "", "")
	require.NoError(t, err)

	a := f.submit(t, catalog.MonthlyIncome, "30,000")
	assert.Equal(t, 30000.0, mustFloat(t, a.Value))
	assert.Equal(t, "30000", a.Label)
	assert.Equal(t, Points(CompleteQuestion), e.XP())

	// Re-answering replaces and earns nothing.
	f.submit(t, catalog.MonthlyIncome, "32000")
	assert.Equal(t, Points(CompleteQuestion), e.XP())
	require.Len(t, e.Answers(), 1)
	assert.Equal(t, 32000.0, mustFloat(t, e.Answers()[0].Value))

	choice := f.submit(t, catalog.IncomeStability, "variable")
	assert.Equal(t, "Very unstable", choice.Label)

	labelled, err := e.SubmitAnswer(catalog.AvgIncome, "22000", "฿22,000")
	require.NoError(t, err)
	assert.Equal(t, "฿22,000", labelled.Label)

	p, ok := e.ActivePlan()
	require.True(t, ok)
	assert.Len(t, p.Answers, 3)
}

func TestSubmitAnswerRejects(t *testing.T) {
	f := newFixture(t)
	e := f.engine

	_, err := e.SubmitAnswer(catalog.MonthlyIncome, "30000", "")
	assert.ErrorIs(t, err, ErrNoFlow)

	_, err = e.CreatePlan(model.PlanSaving, "", "")
	require.NoError(t, err)
	f.submit(t, catalog.MonthlyIncome, "30000")
	saves := f.store.Saves

	tests := []struct {
		name    string
		id, raw string
		want    error
	}{
		{"unknown question", "favourite_colour", "blue", ErrUnknownQuestion},
		{"question from another flow", catalog.CurrentAge, "30", ErrUnknownQuestion},
		{"hidden question", catalog.AvgIncome, "20000", ErrQuestionHidden},
		{"not a number", catalog.MonthlyExpenses, "a lot", flow.ErrNotNumeric},
		{"below minimum", catalog.MonthlyIncome, "10", flow.ErrBelowMinimum},
		{"unknown option", catalog.IncomeStability, "sometimes", flow.ErrUnknownOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, e.CheckAnswer(tt.id, tt.raw), tt.want)
			_, err := e.SubmitAnswer(tt.id, tt.raw, "")
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.NoError(t, e.CheckAnswer(catalog.MonthlyExpenses, "15,000"))

	require.Len(t, e.Answers(), 1)
	assert.Equal(t, 30000.0, mustFloat(t, e.Answers()[0].Value))
	assert.Equal(t, Points(CompleteQuestion), e.XP())
	assert.Equal(t, saves, f.store.Saves, "rejected input is not persisted")
}

func TestRevealAndHideKeepsCursorInRange(t *testing.T) {
	f := newFixture(t)
	e := f.engine
	_, err := e.CreatePlan(model.PlanSaving, "", "")
	require.NoError(t, err)

	f.submit(t, catalog.MonthlyIncome, "30000")
	e.AdvanceQuestion()
	f.submit(t, catalog.IncomeStability, "mixed")
	e.AdvanceQuestion()

	q, ok := e.CurrentQuestion()
	require.True(t, ok)
	assert.Equal(t, catalog.AvgIncome, q.ID)

	f.submit(t, catalog.IncomeStability, "stable")
	q, ok = e.CurrentQuestion()
	require.True(t, ok)
	assert.Equal(t, catalog.MonthlyExpenses, q.ID)
	assert.LessOrEqual(t, e.CurrentIndex(), len(e.ActiveQuestions()))
}

func TestCompleteFlowAndSnapshot(t *testing.T) {
	f := newFixture(t)
	e := f.engine
	_, err := e.CreatePlan(model.PlanSaving, "", "")
	require.NoError(t, err)

	n := answerAll(t, e)
	assert.Equal(t, len(e.ActiveQuestions()), n)
	assert.True(t, e.FlowComplete())
	assert.False(t, e.AdvanceQuestion())
	assert.Equal(t, n*Points(CompleteQuestion), e.XP())

	snap, ok := e.CalculateSnapshot()
	require.True(t, ok)
	assert.Equal(t, int64(30000), snap.MonthlyIncome)
	assert.Equal(t, int64(5000), snap.ExistingSavings)

	stored := e.Snapshot()
	require.NotNil(t, stored)
	assert.Equal(t, snap, *stored)
	p, _ := e.ActivePlan()
	require.NotNil(t, p.Snapshot)
	assert.Equal(t, snap, *p.Snapshot)

	// Recalculation replaces the snapshot wholesale.
	f.submit(t, catalog.MonthlyExpenses, "25000")
	again, _ := e.CalculateSnapshot()
	assert.Equal(t, int64(5000), again.MonthlySavings)
	assert.Equal(t, again, *e.Snapshot())
}

func TestSnapshotPrefersManualAnswer(t *testing.T) {
	f := newFixture(t)
	e := f.engine
	_, err := e.CreatePlan(model.PlanSaving, "", "")
	require.NoError(t, err)

	f.submit(t, catalog.CurrentSavings, catalog.ManualEntry)
	f.submit(t, catalog.CurrentSavingsManual, "73500")
	f.submit(t, catalog.CurrentSavings, "50000")

	for _, q := range e.ActiveQuestions() {
		assert.NotEqual(t, catalog.CurrentSavingsManual, q.ID)
	}
	snap, ok := e.CalculateSnapshot()
	require.True(t, ok)
	assert.Equal(t, int64(73500), snap.ExistingSavings)
}

func TestSwitchPlanRestoresFlow(t *testing.T) {
	f := newFixture(t)
	e := f.engine
	first, _ := e.CreatePlan(model.PlanSaving, "", "")
	f.submit(t, catalog.MonthlyIncome, "40000")
	f.submit(t, catalog.IncomeStability, "stable")
	_, _ = e.CreatePlan(model.PlanGoal, "", "")

	assert.False(t, e.SwitchPlan("missing"))
	assert.Equal(t, model.PlanGoal, e.FlowKind())

	require.True(t, e.SwitchPlan(first.ID))
	assert.Equal(t, first.ID, e.ActivePlanID())
	assert.Equal(t, model.PlanSaving, e.FlowKind())
	assert.Len(t, e.Answers(), 2)
	q, ok := e.CurrentQuestion()
	require.True(t, ok)
	assert.Equal(t, catalog.MonthlyExpenses, q.ID)
}

func TestDeletePlan(t *testing.T) {
	f := newFixture(t)
	e := f.engine
	a, _ := e.CreatePlan(model.PlanSaving, "A", "")
	b, _ := e.CreatePlan(model.PlanGoal, "B", "")
	c, _ := e.CreatePlan(model.PlanRetirement, "C", "")

	assert.False(t, e.DeletePlan("missing"))

	// Deleting an inactive plan keeps the active one.
	require.True(t, e.DeletePlan(b.ID))
	assert.Equal(t, c.ID, e.ActivePlanID())

	// Deleting the active plan promotes the first remaining plan.
	require.True(t, e.DeletePlan(c.ID))
	assert.Equal(t, a.ID, e.ActivePlanID())
	assert.Equal(t, model.PlanSaving, e.FlowKind())
	plans := e.Plans()
	require.Len(t, plans, 1)
	assert.True(t, plans[0].Active)

	require.True(t, e.DeletePlan(a.ID))
	assert.Empty(t, e.ActivePlanID())
	assert.Empty(t, e.Plans())
	assert.Nil(t, e.ActiveQuestions())
	_, ok := e.ActivePlan()
	assert.False(t, ok)
}

func TestAddMonthlyLogUpserts(t *testing.T) {
	f := newFixture(t)
	e := f.engine
	_, _ = e.CreatePlan(model.PlanSaving, "", "")

	require.True(t, e.AddMonthlyLog(model.MonthlyLog{MonthKey: "2026-08", ActualSavings: 1000, Status: model.MonthTrying}))
	require.True(t, e.AddMonthlyLog(model.MonthlyLog{MonthKey: "2026-10", ActualSavings: 5000, Status: model.MonthSuccess}))
	require.True(t, e.AddMonthlyLog(model.MonthlyLog{MonthKey: "2026-09", ActualSavings: 2000, Status: model.MonthSuccess}))
	require.True(t, e.AddMonthlyLog(model.MonthlyLog{MonthKey: "2026-09", ActualSavings: 8000, Status: model.MonthSuccess}))
	assert.False(t, e.AddMonthlyLog(model.MonthlyLog{}))
	for _, bad := range []string{"2026-1", "2026-13", "26-09", "2026-09-01"} {
		assert.False(t, e.AddMonthlyLog(model.MonthlyLog{MonthKey: bad, Status: model.MonthSuccess}), bad)
	}

	logs := e.MonthlyLogs()
	require.Len(t, logs, 3)
	assert.Equal(t, []string{"2026-10", "2026-09", "2026-08"},
		[]string{logs[0].MonthKey, logs[1].MonthKey, logs[2].MonthKey})
	assert.Equal(t, 8000.0, logs[1].ActualSavings)
	assert.Equal(t, 2, e.StreakMonths())

	p, _ := e.ActivePlan()
	assert.Len(t, p.MonthlyLogs, 3)
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name     string
		statuses []model.MonthStatus
		want     int
	}{
		{"no history", nil, 1},
		{"success success trying", []model.MonthStatus{model.MonthSuccess, model.MonthSuccess, model.MonthTrying}, 2},
		{"adjusted counts", []model.MonthStatus{model.MonthAdjusted, model.MonthSuccess}, 2},
		{"latest month missed", []model.MonthStatus{model.MonthRollover, model.MonthSuccess}, 1},
		{"stops at first gap", []model.MonthStatus{model.MonthSuccess, model.MonthTrying, model.MonthSuccess, model.MonthSuccess}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs []model.MonthlyLog
			for _, s := range tt.statuses {
				logs = append(logs, model.MonthlyLog{Status: s})
			}
			assert.Equal(t, tt.want, Streak(logs))
		})
	}
}

func TestQuests(t *testing.T) {
	f := newFixture(t)
	e := f.engine
	week := quest.WeekKey(f.clock.now())

	assert.Equal(t, model.QuestTodo, e.QuestStatus(quest.SaveWeek, week))

	assert.Equal(t, Points(CompleteQuest), e.CompleteQuest(quest.SaveWeek, week))
	assert.Equal(t, model.QuestDone, e.QuestStatus(quest.SaveWeek, week))
	assert.Equal(t, model.QuestTodo, e.QuestStatus(quest.SaveWeek, "2026-W43"))
	statuses := e.QuestStatuses()
	require.Len(t, statuses, 1)
	require.NotNil(t, statuses[0].CompletedAt)
	assert.Equal(t, f.clock.now(), *statuses[0].CompletedAt)

	xp := e.XP()
	assert.Equal(t, "2026-11", e.SkipQuest(quest.TrackExpenses, week, 2500))
	assert.Equal(t, "2026-11", e.SkipQuest(quest.InvestNow, week, 1000))
	assert.Empty(t, e.SkipQuest(quest.SaveWeek, "2026-W43", 0))
	assert.Equal(t, xp, e.XP(), "skipping earns nothing")
	assert.Equal(t, model.QuestSkipped, e.QuestStatus(quest.TrackExpenses, week))
	assert.Equal(t, 3500.0, e.Rollover("2026-11"))
	assert.Equal(t, 0.0, e.Rollover("2026-10"))

	// Re-submission overwrites the status record.
	e.CompleteQuest(quest.TrackExpenses, week)
	assert.Equal(t, model.QuestDone, e.QuestStatus(quest.TrackExpenses, week))
	assert.Len(t, e.QuestStatuses(), 4)
}

func TestWeeklyQuestsUseRollover(t *testing.T) {
	f := newFixture(t)
	e := f.engine
	_, _ = e.CreatePlan(model.PlanSaving, "", "")
	f.submit(t, catalog.MonthlyIncome, "30000")
	f.submit(t, catalog.MonthlyExpenses, "20000")
	_, _ = e.CalculateSnapshot()

	e.SkipQuest(quest.SaveWeek, quest.WeekKey(f.clock.now()), 4000)
	f.clock.t = time.Date(2026, time.November, 7, 9, 0, 0, 0, time.UTC)

	quests := e.WeeklyQuests()
	require.NotEmpty(t, quests)
	assert.Equal(t, quest.SaveWeek, quests[0].ID)
	assert.Equal(t, int64(3500), quests[0].Amount)
}

func TestRecordMonth(t *testing.T) {
	f := newFixture(t)
	e := f.engine
	_, _ = e.CreatePlan(model.PlanSaving, "", "")
	f.submit(t, catalog.MonthlyIncome, "30000")
	f.submit(t, catalog.MonthlyExpenses, "20000")
	_, _ = e.CalculateSnapshot()
	base := e.XP()

	log, err := e.RecordMonth("2026-09", quest.Actuals{Savings: 6000, Investment: 4000, Expenses: 19000})
	require.NoError(t, err)
	assert.Equal(t, model.MonthSuccess, log.Status)
	assert.Equal(t, 6000.0, log.TargetSavings)
	assert.Equal(t, 4000.0, log.TargetInvestment)
	assert.Equal(t, 20000.0, log.SpendingLimit)
	assert.Equal(t, Points(MonthlySuccess), log.XPEarned)
	assert.Equal(t, base+Points(MonthlySuccess), e.XP())

	// Grading the same month again pays nothing more.
	_, err = e.RecordMonth("2026-09", quest.Actuals{Savings: 7000, Investment: 4000, Expenses: 18000})
	require.NoError(t, err)
	assert.Equal(t, base+Points(MonthlySuccess), e.XP())
	require.Len(t, e.MonthlyLogs(), 1)

	short, err := e.RecordMonth("2026-10", quest.Actuals{Savings: 2000, Investment: 1000, Expenses: 15000, Deferred: true})
	require.NoError(t, err)
	assert.Equal(t, model.MonthRollover, short.Status)
	assert.Equal(t, 0, short.XPEarned)
	assert.Equal(t, 7000.0, e.Rollover("2026-11"))

	_, err = e.RecordMonth("2026-10", quest.Actuals{Savings: 2000, Investment: 1000, Expenses: 15000, Deferred: true})
	require.NoError(t, err)
	assert.Equal(t, 7000.0, e.Rollover("2026-11"), "a month defers its shortfall once")

	nov := e.MonthTargets("2026-11")
	assert.Equal(t, 13000.0, nov.Savings)

	assert.Equal(t, 1, e.StreakMonths())

	_, err = e.RecordMonth("sometime", quest.Actuals{})
	assert.Error(t, err)
}

func TestRecordOpen(t *testing.T) {
	f := newFixture(t)
	e := f.engine

	assert.Equal(t, Points(OpenApp), e.RecordOpen())
	assert.Equal(t, 0, e.RecordOpen(), "second open on the same day")

	f.clock.advance(24 * time.Hour)
	assert.Equal(t, Points(OpenApp), e.RecordOpen())

	f.clock.advance(8 * 24 * time.Hour)
	assert.Equal(t, Points(OpenApp)+Points(ComebackBonus), e.RecordOpen())
	assert.Equal(t, 3*Points(OpenApp)+Points(ComebackBonus), e.XP())
}

func TestAwardXP(t *testing.T) {
	f := newFixture(t)
	e := f.engine

	assert.Equal(t, 50, e.AwardXP(CompleteLevel))
	assert.Equal(t, 0, e.AwardXP("mystery"))
	assert.Equal(t, 50, e.XP())

	events := f.bus.Recent()
	require.Len(t, events, 1)
	assert.Equal(t, notify.XPAwarded, events[0].Kind)
	assert.Equal(t, 50, events[0].XP)
}

func TestXPNeverDecreasesUntilReset(t *testing.T) {
	f := newFixture(t)
	e := f.engine
	last := 0
	check := func() {
		t.Helper()
		assert.GreaterOrEqual(t, e.XP(), last)
		last = e.XP()
	}

	e.RecordOpen()
	check()
	p, _ := e.CreatePlan(model.PlanSaving, "", "")
	check()
	f.submit(t, catalog.MonthlyIncome, "30000")
	check()
	e.SkipQuest(quest.SaveWeek, "2026-W42", 100)
	check()
	e.DeletePlan(p.ID)
	check()
	e.CompleteQuest(quest.SaveWeek, "2026-W42")
	check()
	require.Positive(t, e.XP())

	e.ResetAll()
	assert.Equal(t, 0, e.XP())
}

func TestResetAll(t *testing.T) {
	f := newFixture(t)
	e := f.engine
	_, _ = e.CreatePlan(model.PlanSaving, "", "")
	f.submit(t, catalog.MonthlyIncome, "30000")
	e.CompleteQuest(quest.SaveWeek, "2026-W42")
	e.SkipQuest(quest.TrackExpenses, "2026-W42", 500)
	e.AddMonthlyLog(model.MonthlyLog{MonthKey: "2026-09", Status: model.MonthSuccess})
	e.RecordOpen()

	e.ResetAll()

	assert.Equal(t, model.DefaultState(), e.State())
	assert.Equal(t, 0.0, e.Rollover("2026-11"))
	assert.Nil(t, e.ActiveQuestions())

	reopened := f.open()
	assert.Equal(t, model.DefaultState(), reopened.State())
	assert.Equal(t, Points(OpenApp), reopened.RecordOpen(), "the daily guard is reset too")
}

func TestStateSurvivesRestart(t *testing.T) {
	f := newFixture(t)
	e := f.engine
	_, _ = e.CreatePlan(model.PlanSaving, "Rainy day", "")
	f.submit(t, catalog.MonthlyIncome, "30000")
	f.submit(t, catalog.IncomeStability, "stable")
	_, _ = e.CalculateSnapshot()
	e.CompleteQuest(quest.SaveWeek, "2026-W42")

	reopened := f.open()
	assert.Equal(t, e.State(), reopened.State())
	assert.Equal(t, e.XP(), reopened.XP())
	assert.Equal(t, e.Snapshot(), reopened.Snapshot())
	q, ok := reopened.CurrentQuestion()
	require.True(t, ok)
	assert.Equal(t, catalog.MonthlyExpenses, q.ID)
}

func TestPersistFailureKeepsMemoryState(t *testing.T) {
	f := newFixture(t)
	e := f.engine
	f.store.SaveErr = errors.New("disk full")

	e.AwardXP(CompleteLevel)
	assert.Equal(t, 50, e.XP())
	require.Error(t, e.LastPersistError())
	assert.ErrorIs(t, e.LastPersistError(), f.store.SaveErr)

	f.store.SaveErr = nil
	e.AwardXP(ViewSnapshot)
	assert.NoError(t, e.LastPersistError())
	assert.Equal(t, 55, f.open().XP())
}

func TestSandboxIsNotPersisted(t *testing.T) {
	f := newFixture(t)
	e := f.engine

	assert.False(t, e.SelectPlanKind("vacation"))
	require.True(t, e.SelectPlanKind(model.PlanRetirement))
	assert.True(t, e.Sandbox())
	saves := f.store.Saves

	f.submit(t, catalog.MonthlyIncome, "60000")
	f.submit(t, catalog.CurrentAge, "40")
	snap, ok := e.CalculateSnapshot()
	require.True(t, ok)
	assert.Equal(t, 40, snap.CurrentAge)
	require.NotNil(t, e.Snapshot())
	assert.Equal(t, snap, *e.Snapshot())

	assert.Equal(t, 0, e.XP())
	assert.Equal(t, saves, f.store.Saves)
	assert.Empty(t, e.Plans())
}

func TestActivePointerRepairedOnLoad(t *testing.T) {
	f := newFixture(t)
	st := model.DefaultState()
	st.Plans = []model.Plan{{ID: "a", Kind: model.PlanGoal}, {ID: "b", Kind: model.PlanSaving, Active: true}}
	st.ActivePlanID = "gone"
	require.NoError(t, f.store.SaveState(st))

	e := f.open()
	assert.Equal(t, "a", e.ActivePlanID())
	plans := e.Plans()
	assert.True(t, plans[0].Active)
	assert.False(t, plans[1].Active)
	assert.Equal(t, model.PlanGoal, e.FlowKind())
}

func TestRanks(t *testing.T) {
	tests := []struct {
		xp      int
		rank    string
		next    string
		hasNext bool
	}{
		{0, "seedling", "consistent", true},
		{199, "seedling", "consistent", true},
		{200, "consistent", "planner", true},
		{1199, "planner", "master", true},
		{3000, "legend", "", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.rank, RankFor(tt.xp).ID, "xp %d", tt.xp)
		next, ok := NextRank(tt.xp)
		assert.Equal(t, tt.hasNext, ok)
		assert.Equal(t, tt.next, next.ID)
	}
}

func mustFloat(t *testing.T, v model.Value) float64 {
	t.Helper()
	f, ok := v.Float()
	require.True(t, ok, "value %q is not numeric", v.String())
	return f
}

func TestRecordSnapshotViewOncePerDayPerPlan(t *testing.T) {
	f := newFixture(t)
	e := f.engine
	saving, err := e.CreatePlan(model.PlanSaving, "", "")
	require.NoError(t, err)

	assert.Zero(t, e.RecordSnapshotView(), "no snapshot yet")

	_, ok := e.CalculateSnapshot()
	require.True(t, ok)
	start := e.XP()
	assert.Equal(t, Points(ViewSnapshot), e.RecordSnapshotView())
	for range 5 {
		assert.Zero(t, e.RecordSnapshotView())
	}
	assert.Equal(t, start+Points(ViewSnapshot), e.XP())

	_, err = e.CreatePlan(model.PlanGoal, "", "")
	require.NoError(t, err)
	_, _ = e.CalculateSnapshot()
	assert.Equal(t, Points(ViewSnapshot), e.RecordSnapshotView(), "each plan earns its own view")

	// The guard survives a restart.
	e = f.open()
	assert.Zero(t, e.RecordSnapshotView())

	f.clock.advance(24 * time.Hour)
	require.True(t, e.SwitchPlan(saving.ID))
	assert.Equal(t, Points(ViewSnapshot), e.RecordSnapshotView(), "a new day earns again")

	require.True(t, e.DeletePlan(saving.ID))
	assert.NotContains(t, e.State().ViewedOn, snapshotViewKey(saving.ID))
}

func TestRecordSnapshotViewSandbox(t *testing.T) {
	f := newFixture(t)
	e := f.engine
	require.True(t, e.SelectPlanKind(model.PlanSaving))
	_, ok := e.CalculateSnapshot()
	require.True(t, ok)

	assert.Zero(t, e.RecordSnapshotView())
	assert.Zero(t, e.XP())
}

func TestRecordWhatIfViewOncePerDay(t *testing.T) {
	f := newFixture(t)
	e := f.engine

	assert.Equal(t, Points(ViewSnapshot), e.RecordWhatIfView())
	assert.Zero(t, e.RecordWhatIfView())
	f.clock.advance(24 * time.Hour)
	assert.Equal(t, Points(ViewSnapshot), e.RecordWhatIfView())
	assert.Equal(t, 2*Points(ViewSnapshot), e.XP())
}
