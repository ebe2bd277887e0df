package progress

import (
	"slices"

	"github.com/theirongolddev/finquest/internal/model"
	"github.com/theirongolddev/finquest/internal/notify"
	"github.com/theirongolddev/finquest/internal/quest"
)

// CompleteQuest marks questID done for weekKey and awards complete_quest.
// It returns the XP gained.
func (e *Engine) CompleteQuest(questID, weekKey string) int {
	at := e.now()
	e.upsertQuestStatus(model.QuestStatus{
		QuestID:     questID,
		WeekKey:     weekKey,
		Status:      model.QuestDone,
		CompletedAt: &at,
	})
	xp := e.addXP(CompleteQuest)
	e.save()
	e.publish(notify.QuestCompleted, xp, "Quest %s done", questID)
	return xp
}

// SkipQuest marks questID skipped for weekKey. A positive rollover is
// added to next month's bucket, whose key is returned; otherwise the
// result is empty. Skipping earns no XP.
func (e *Engine) SkipQuest(questID, weekKey string, rollover float64) string {
	e.upsertQuestStatus(model.QuestStatus{
		QuestID: questID,
		WeekKey: weekKey,
		Status:  model.QuestSkipped,
	})

	var month string
	if rollover > 0 {
		month = quest.NextMonthKey(e.now())
		if _, err := e.store.AddRollover(month, rollover); err != nil {
			e.persistFailed(err)
			month = ""
		}
	}
	e.save()
	e.publish(notify.QuestSkipped, 0, "Quest %s skipped", questID)
	return month
}

// QuestStatus returns the state of questID in weekKey, todo when unset.
func (e *Engine) QuestStatus(questID, weekKey string) model.QuestState {
	for _, s := range e.state.QuestStatuses {
		if s.QuestID == questID && s.WeekKey == weekKey {
			return s.Status
		}
	}
	return model.QuestTodo
}

// QuestStatuses returns every recorded quest status.
func (e *Engine) QuestStatuses() []model.QuestStatus {
	return slices.Clone(e.state.QuestStatuses)
}

func (e *Engine) upsertQuestStatus(s model.QuestStatus) {
	i := slices.IndexFunc(e.state.QuestStatuses, func(q model.QuestStatus) bool {
		return q.QuestID == s.QuestID && q.WeekKey == s.WeekKey
	})
	if i >= 0 {
		e.state.QuestStatuses[i] = s
		return
	}
	e.state.QuestStatuses = append(e.state.QuestStatuses, s)
}

// WeeklyQuests generates this week's quests from the active plan's
// snapshot and the rollover deferred into the current month.
func (e *Engine) WeeklyQuests() []quest.Quest {
	now := e.now()
	return quest.Weekly(e.planSnapshot(), now, e.Rollover(quest.MonthKey(now)))
}

// Rollover returns the amount deferred into monthKey. Read failures are
// logged and count as nothing.
func (e *Engine) Rollover(monthKey string) float64 {
	amount, err := e.store.Rollover(monthKey)
	if err != nil {
		e.log.Warn("reading rollover", "month", monthKey, "err", err)
		return 0
	}
	return amount
}

// AddMonthlyLog upserts log by month into the history and into the active
// plan's history, both kept newest first. Logs whose month is not a
// YYYY-MM key are ignored.
func (e *Engine) AddMonthlyLog(log model.MonthlyLog) bool {
	if _, err := quest.ParseMonth(log.MonthKey); err != nil {
		e.log.Debug("ignoring monthly log", "month", log.MonthKey, "err", err)
		return false
	}
	e.storeLog(log)
	e.save()
	e.publish(notify.MonthLogged, log.XPEarned, "%s logged: %s", log.MonthKey, log.Status)
	return true
}

func (e *Engine) storeLog(log model.MonthlyLog) {
	e.state.MonthlyLogs = upsertLog(e.state.MonthlyLogs, log)
	if p := e.activePlan(); p != nil {
		p.MonthlyLogs = upsertLog(p.MonthlyLogs, log)
	}
}

// MonthlyLogs returns the history, newest first.
func (e *Engine) MonthlyLogs() []model.MonthlyLog {
	return slices.Clone(e.state.MonthlyLogs)
}

// MonthTargets returns the targets of monthKey for the active plan.
func (e *Engine) MonthTargets(monthKey string) quest.Targets {
	return quest.MonthTargets(e.planSnapshot(), e.Rollover(monthKey))
}

// RecordMonth grades the actuals of monthKey against its targets, awards
// the monthly XP and stores the log. Re-recording a month only awards the
// XP not already earned for it. A deferred shortfall is added to the next
// month's rollover the first time the month is graded as rollover.
func (e *Engine) RecordMonth(monthKey string, actuals quest.Actuals) (model.MonthlyLog, error) {
	next, err := quest.NextMonth(monthKey)
	if err != nil {
		return model.MonthlyLog{}, err
	}

	targets := e.MonthTargets(monthKey)
	status := quest.Classify(actuals, targets)
	prev, seen := findLog(e.state.MonthlyLogs, monthKey)

	log := model.MonthlyLog{
		MonthKey:         monthKey,
		ActualSavings:    actuals.Savings,
		ActualInvestment: actuals.Investment,
		ActualExpenses:   actuals.Expenses,
		TargetSavings:    targets.Savings,
		TargetInvestment: targets.Investment,
		SpendingLimit:    targets.SpendingLimit,
		RolloverAmount:   targets.Rollover,
		Status:           status,
		XPEarned:         prev.XPEarned,
	}

	if ev, ok := MonthEvent(status); ok && Points(ev) > log.XPEarned {
		gain := Points(ev) - log.XPEarned
		e.state.XP += gain
		log.XPEarned = Points(ev)
		e.publish(notify.XPAwarded, gain, "+%d XP", gain)
	}

	if status == model.MonthRollover && !(seen && prev.Status == model.MonthRollover) {
		if _, err := e.store.AddRollover(next, targets.Shortfall(actuals)); err != nil {
			e.persistFailed(err)
		}
	}

	e.storeLog(log)
	e.save()
	e.publish(notify.MonthLogged, log.XPEarned, "%s logged: %s", monthKey, status)
	return log, nil
}

// planSnapshot is the stored snapshot of the active plan.
func (e *Engine) planSnapshot() *model.FinancialSnapshot {
	p := e.activePlan()
	if p == nil || p.Snapshot == nil {
		return nil
	}
	snap := *p.Snapshot
	return &snap
}
