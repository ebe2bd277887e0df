// Package projection derives a FinancialSnapshot from a plan's answers.
//
// ComputeSnapshot reads every stored answer of the plan, including answers
// to questions that a later re-answer has hidden. Visibility only decides
// what is asked, not what counts.
package projection

import (
	"math"

	"github.com/theirongolddev/finquest/internal/catalog"
	"github.com/theirongolddev/finquest/internal/model"
)

// Growth assumptions, annual.
const (
	InflationRate = 0.03
	NominalReturn = 0.07
	RealReturn    = NominalReturn - InflationRate

	// SafeWithdrawalRate is the 4% rule.
	SafeWithdrawalRate = 0.04
	// SpendingBand widens the safe withdrawal into a range of ±20%.
	SpendingBand = 0.2
)

// Defaults used when a question is unanswered.
const (
	DefaultMonthlyIncome    = 30000
	DefaultMonthlyExpenses  = 20000
	DefaultCurrentAge       = 30
	DefaultRetirementAge    = 60
	DefaultExpectedLifespan = 80
	DefaultRiskTolerance    = "moderate"

	// MaxAge caps age answers so a horizon of at least one year survives
	// float arithmetic.
	MaxAge = 150
)

// Answers is the read side of an answer store.
type Answers interface {
	Value(questionID string) (model.Value, bool)
}

// ComputeSnapshot is pure: the same kind and answers always produce the
// same snapshot. Money is rounded only when the snapshot is assembled.
func ComputeSnapshot(kind model.PlanKind, answers Answers) model.FinancialSnapshot {
	income := number(answers, catalog.MonthlyIncome, DefaultMonthlyIncome)
	rawExpenses := number(answers, catalog.MonthlyExpenses, DefaultMonthlyExpenses)

	expenses := math.Min(rawExpenses, income)
	savings := math.Max(0, income-expenses)
	annualSavings := savings * 12
	var savingsRate float64
	if income > 0 {
		savingsRate = savings / income * 100
	}

	currentAge := age(answers, catalog.CurrentAge, DefaultCurrentAge)
	retirementAge := math.Max(currentAge+1, age(answers, catalog.RetirementAge, DefaultRetirementAge))
	lifespan := age(answers, catalog.ExpectedLifespan, DefaultExpectedLifespan)

	yearsToRetire := retirementAge - currentAge
	yearsInRetirement := math.Max(1, lifespan-retirementAge)

	existing, monthlyNeed := kindInputs(kind, answers, expenses)

	fvExisting := existing * math.Pow(1+NominalReturn, yearsToRetire)
	fund := fvExisting + futureValueOfContributions(annualSavings, yearsToRetire, RealReturn)
	adjusted := fund / math.Pow(1+InflationRate, yearsToRetire)
	needed := monthlyNeed * 12 * yearsInRetirement

	safeWithdrawal := adjusted * SafeWithdrawalRate

	return model.FinancialSnapshot{
		MonthlyIncome:            round(income),
		MonthlyExpenses:          round(expenses),
		MonthlySavings:           round(savings),
		AnnualSavings:            round(annualSavings),
		SavingsRate:              savingsRate,
		CurrentAge:               int(currentAge),
		RetirementAge:            int(retirementAge),
		YearsToRetire:            int(yearsToRetire),
		ExistingSavings:          round(existing),
		RetirementFund:           round(fund),
		InflationAdjusted:        round(adjusted),
		RetirementNeeded:         round(needed),
		RetirementMonthlyExpense: round(monthlyNeed),
		YearsInRetirement:        int(yearsInRetirement),
		RiskTolerance:            text(answers, catalog.RiskTolerance, DefaultRiskTolerance),
		SafeSpendingRange: [2]int64{
			round(safeWithdrawal * (1 - SpendingBand) / 12),
			round(safeWithdrawal * (1 + SpendingBand) / 12),
		},
	}
}

// kindInputs returns existing savings and the expected monthly expense in
// retirement for the plan kind.
func kindInputs(kind model.PlanKind, answers Answers, monthlyExpenses float64) (existing, monthlyNeed float64) {
	if kind == model.PlanRetirement {
		existing = firstNumber(answers, catalog.RetirementSavingsManual, catalog.RetirementSavings)
		if v, ok := optional(answers, catalog.RetirementMonthlyExpense); ok {
			return existing, v
		}
		return existing, monthlyExpenses
	}
	return firstNumber(answers, catalog.CurrentSavingsManual, catalog.CurrentSavings), monthlyExpenses
}

// futureValueOfContributions compounds a yearly contribution at rate. A
// zero rate or horizon falls back to straight-line accumulation.
func futureValueOfContributions(annual, years, rate float64) float64 {
	if years > 0 && rate != 0 {
		return annual * (math.Pow(1+rate, years) - 1) / rate
	}
	return annual * years
}

// optional returns a usable numeric answer. Negative and non-finite values
// count as unanswered.
func optional(answers Answers, id string) (float64, bool) {
	v, ok := answers.Value(id)
	if !ok {
		return 0, false
	}
	f, ok := v.Float()
	if !ok || f < 0 {
		return 0, false
	}
	return f, true
}

// age reads a whole-year age answer capped at MaxAge.
func age(answers Answers, id string, fallback float64) float64 {
	return math.Min(MaxAge, math.Round(number(answers, id, fallback)))
}

func number(answers Answers, id string, fallback float64) float64 {
	if f, ok := optional(answers, id); ok {
		return f
	}
	return fallback
}

// firstNumber returns the first usable numeric answer among ids, or 0.
// A bracket answer of "manual" is not numeric and is skipped.
func firstNumber(answers Answers, ids ...string) float64 {
	for _, id := range ids {
		if f, ok := optional(answers, id); ok {
			return f
		}
	}
	return 0
}

func text(answers Answers, id, fallback string) string {
	v, ok := answers.Value(id)
	if !ok || v.String() == "" {
		return fallback
	}
	return v.String()
}

// round converts to whole units, saturating instead of overflowing.
func round(f float64) int64 {
	r := math.Round(f)
	switch {
	case math.IsNaN(r):
		return 0
	case r >= math.MaxInt64:
		return math.MaxInt64
	case r <= math.MinInt64:
		return math.MinInt64
	}
	return int64(r)
}
