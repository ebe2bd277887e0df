package progress

import "github.com/theirongolddev/finquest/internal/model"

// Event is something the user did that is worth XP.
type Event string

const (
	OpenApp          Event = "open_app"
	CompleteQuest    Event = "complete_quest"
	CompleteLevel    Event = "complete_level"
	CompleteQuestion Event = "complete_question"
	ComebackBonus    Event = "comeback_bonus"
	MonthlySuccess   Event = "monthly_success"
	MonthlyAdjusted  Event = "monthly_adjusted"
	PlanAdjusted     Event = "plan_adjusted"
	ViewSnapshot     Event = "view_snapshot"
)

var xpTable = map[Event]int{
	OpenApp:          5,
	CompleteQuest:    20,
	CompleteLevel:    50,
	CompleteQuestion: 10,
	ComebackBonus:    40,
	MonthlySuccess:   50,
	MonthlyAdjusted:  30,
	PlanAdjusted:     5,
	ViewSnapshot:     5,
}

// Points returns the XP value of ev; unknown events are worth nothing.
func Points(ev Event) int {
	return xpTable[ev]
}

// MonthEvent maps a month's status to the event it earns, if any.
func MonthEvent(s model.MonthStatus) (Event, bool) {
	switch s {
	case model.MonthSuccess:
		return MonthlySuccess, true
	case model.MonthAdjusted:
		return MonthlyAdjusted, true
	}
	return "", false
}
