package model

import "time"

// Plan is a user-created scenario with its own answers and snapshot.
type Plan struct {
	ID          string             `json:"id"`
	Kind        PlanKind           `json:"kind"`
	Name        string             `json:"displayName"`
	Emoji       string             `json:"emoji"`
	Answers     []Answer           `json:"answers"`
	Snapshot    *FinancialSnapshot `json:"snapshot"`
	MonthlyLogs []MonthlyLog       `json:"monthlyLogs"`
	CreatedAt   time.Time          `json:"createdAt"`
	Active      bool               `json:"isActive"`
}

// QuestState is the per-week status of a quest.
type QuestState string

const (
	QuestTodo    QuestState = "todo"
	QuestDone    QuestState = "done"
	QuestSkipped QuestState = "skipped"
)

// QuestStatus is keyed by (QuestID, WeekKey).
type QuestStatus struct {
	QuestID     string     `json:"questId"`
	WeekKey     string     `json:"weekKey"`
	Status      QuestState `json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// MonthStatus classifies a finished month.
type MonthStatus string

const (
	MonthSuccess  MonthStatus = "success"
	MonthAdjusted MonthStatus = "adjusted"
	MonthTrying   MonthStatus = "trying"
	MonthRollover MonthStatus = "rollover"
)

// Qualifies reports whether the month extends a streak.
func (s MonthStatus) Qualifies() bool {
	return s == MonthSuccess || s == MonthAdjusted
}

// MonthlyLog records the outcome of one month, keyed by MonthKey (YYYY-MM).
type MonthlyLog struct {
	MonthKey         string      `json:"monthKey"`
	ActualSavings    float64     `json:"actualSavings"`
	ActualInvestment float64     `json:"actualInvestment"`
	ActualExpenses   float64     `json:"actualExpenses"`
	TargetSavings    float64     `json:"targetSavings"`
	TargetInvestment float64     `json:"targetInvestment"`
	SpendingLimit    float64     `json:"spendingLimit"`
	RolloverAmount   float64     `json:"rolloverAmount"`
	Status           MonthStatus `json:"status"`
	XPEarned         int         `json:"xpEarned"`
}

// State is the single persisted document. Rollover buckets are stored
// separately, keyed by month.
type State struct {
	XP             int           `json:"xp"`
	Plans          []Plan        `json:"plans"`
	ActivePlanID   string        `json:"activePlanId,omitempty"`
	QuestStatuses  []QuestStatus `json:"questStatuses"`
	MonthlyLogs    []MonthlyLog  `json:"monthlyLogs"`
	LastActiveDate string        `json:"lastActiveDate,omitempty"` // YYYY-MM-DD

	// ViewedOn records the last day a once-a-day view reward was earned,
	// keyed by what was viewed.
	ViewedOn map[string]string `json:"viewedOn,omitempty"`
}

// DefaultState returns the initial state of a new user.
func DefaultState() State {
	return State{
		Plans:         []Plan{},
		QuestStatuses: []QuestStatus{},
		MonthlyLogs:   []MonthlyLog{},
	}
}

// Normalized replaces nil collections with empty ones so a decoded
// document behaves like DefaultState.
func (s State) Normalized() State {
	if s.Plans == nil {
		s.Plans = []Plan{}
	}
	if s.QuestStatuses == nil {
		s.QuestStatuses = []QuestStatus{}
	}
	if s.MonthlyLogs == nil {
		s.MonthlyLogs = []MonthlyLog{}
	}
	if s.XP < 0 {
		s.XP = 0
	}
	return s
}
