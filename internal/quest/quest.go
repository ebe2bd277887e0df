// Package quest generates the weekly quests and monthly targets derived
// from a plan's snapshot, and classifies a finished month.
package quest

import (
	"fmt"
	"math"
	"time"

	"github.com/theirongolddev/finquest/internal/model"
)

// Quest ids.
const (
	SaveWeek      = "save_week"
	TrackExpenses = "track_expenses"
	InvestNow     = "invest_now"
)

// InvestmentDays are the days of the month on which an investment is due.
var InvestmentDays = []int{5, 15, 25}

// Example amounts used before the user has a snapshot.
const (
	ExampleSavings  = 10000
	ExampleExpenses = 20000
)

const (
	// InvestmentShare of monthly savings is earmarked for investing.
	InvestmentShare = 0.4
	// AdjustedThreshold of the combined target still counts as a good month.
	AdjustedThreshold = 0.8
)

// Quest is one action item for the current week.
type Quest struct {
	ID     string
	Icon   string
	Title  string
	Amount int64
}

// Deferred is the amount carried to next month when q is skipped. Money
// quests defer their amount; tracking defers nothing.
func (q Quest) Deferred() float64 {
	switch q.ID {
	case SaveWeek, InvestNow:
		return float64(max(q.Amount, 0))
	}
	return 0
}

// Find returns the quest with id.
func Find(quests []Quest, id string) (Quest, bool) {
	for _, q := range quests {
		if q.ID == id {
			return q, true
		}
	}
	return Quest{}, false
}

// WeekKey returns the ISO week of t as YYYY-Www.
func WeekKey(t time.Time) string {
	y, w := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", y, w)
}

// MonthKey returns t as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// NextMonthKey returns the month key of the calendar month after t.
func NextMonthKey(t time.Time) string {
	first := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
	return MonthKey(first)
}

// ParseMonth validates a YYYY-MM key.
func ParseMonth(monthKey string) (time.Time, error) {
	t, err := time.Parse("2006-01", monthKey)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing month %q: %w", monthKey, err)
	}
	return t, nil
}

// NextMonth returns the key following monthKey.
func NextMonth(monthKey string) (string, error) {
	t, err := ParseMonth(monthKey)
	if err != nil {
		return "", err
	}
	return NextMonthKey(t), nil
}

// IsInvestmentWeek reports whether an investment day falls within the
// seven days starting at t.
func IsInvestmentWeek(t time.Time) bool {
	day := t.Day()
	for _, d := range InvestmentDays {
		if diff := d - day; diff >= 0 && diff < 7 {
			return true
		}
	}
	return false
}

// Weekly returns this week's quests. rollover is the amount deferred into
// the current month and is spread over the savings quest.
func Weekly(snap *model.FinancialSnapshot, now time.Time, rollover float64) []Quest {
	savings, expenses := float64(ExampleSavings), float64(ExampleExpenses)
	if snap != nil {
		savings, expenses = float64(snap.MonthlySavings), float64(snap.MonthlyExpenses)
	}

	quests := []Quest{
		{ID: SaveWeek, Icon: "💰", Title: "Put this week's savings aside", Amount: wholeUnits((savings + math.Max(0, rollover)) / 4)},
		{ID: TrackExpenses, Icon: "🧾", Title: "Track this week's spending", Amount: wholeUnits(expenses / 4)},
	}
	if IsInvestmentWeek(now) {
		quests = append(quests, Quest{
			ID: InvestNow, Icon: "📈", Title: "Make your scheduled investment",
			Amount: wholeUnits(savings * InvestmentShare / float64(len(InvestmentDays))),
		})
	}
	return quests
}

// Targets are the goals for one month.
type Targets struct {
	Savings       float64
	Investment    float64
	SpendingLimit float64
	Rollover      float64
}

// MonthTargets splits monthly savings into an investment share and a
// savings remainder, and adds any rollover to the savings target.
func MonthTargets(snap *model.FinancialSnapshot, rollover float64) Targets {
	income, savings := float64(ExampleSavings+ExampleExpenses), float64(ExampleSavings)
	if snap != nil {
		income, savings = float64(snap.MonthlyIncome), float64(snap.MonthlySavings)
	}
	rollover = math.Max(0, rollover)

	var investment float64
	if savings > 0 {
		investment = math.Round(savings * InvestmentShare)
	}
	return Targets{
		Savings:       savings - investment + rollover,
		Investment:    investment,
		SpendingLimit: income - savings,
		Rollover:      rollover,
	}
}

// Actuals are what the user reports for a month. Deferred asks for any
// shortfall to roll into the next month.
type Actuals struct {
	Savings    float64
	Investment float64
	Expenses   float64
	Deferred   bool
}

// Shortfall is the unmet part of the combined savings and investment
// target, never negative.
func (t Targets) Shortfall(a Actuals) float64 {
	return math.Max(0, t.Savings+t.Investment-a.Savings-a.Investment)
}

// Classify grades a month against its targets.
func Classify(a Actuals, t Targets) model.MonthStatus {
	withinLimit := a.Expenses <= t.SpendingLimit
	switch {
	case a.Savings >= t.Savings && a.Investment >= t.Investment && withinLimit:
		return model.MonthSuccess
	case withinLimit && a.Savings+a.Investment >= AdjustedThreshold*(t.Savings+t.Investment):
		return model.MonthAdjusted
	case a.Deferred && t.Shortfall(a) > 0:
		return model.MonthRollover
	default:
		return model.MonthTrying
	}
}

func wholeUnits(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return int64(math.Round(f))
}
