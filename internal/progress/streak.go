package progress

import (
	"cmp"
	"slices"

	"github.com/theirongolddev/finquest/internal/model"
)

// Streak counts the qualifying months at the front of logs, which must be
// sorted newest first. A user without a qualifying month has a streak of 1.
func Streak(logs []model.MonthlyLog) int {
	n := 0
	for _, l := range logs {
		if !l.Status.Qualifies() {
			break
		}
		n++
	}
	return max(n, 1)
}

// upsertLog replaces the entry for log.MonthKey or appends it, then keeps
// the list sorted newest first.
func upsertLog(logs []model.MonthlyLog, log model.MonthlyLog) []model.MonthlyLog {
	i := slices.IndexFunc(logs, func(l model.MonthlyLog) bool { return l.MonthKey == log.MonthKey })
	if i >= 0 {
		logs[i] = log
	} else {
		logs = append(logs, log)
	}
	slices.SortStableFunc(logs, func(a, b model.MonthlyLog) int {
		return cmp.Compare(b.MonthKey, a.MonthKey)
	})
	return logs
}

func findLog(logs []model.MonthlyLog, monthKey string) (model.MonthlyLog, bool) {
	i := slices.IndexFunc(logs, func(l model.MonthlyLog) bool { return l.MonthKey == monthKey })
	if i < 0 {
		return model.MonthlyLog{}, false
	}
	return logs[i], true
}
