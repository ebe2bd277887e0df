package projection

import (
	"math"

	"github.com/theirongolddev/finquest/internal/model"
)

// Ranges of the what-if inputs. Retirement age is further held above the
// current age.
const (
	MinWhatIfIncome        = 5000
	MaxWhatIfIncome        = 200000
	MaxWhatIfExtraSaving   = 50000
	MinWhatIfCurrentAge    = 18
	MaxWhatIfCurrentAge    = 60
	MaxWhatIfRetirementAge = 75

	// DefaultExtraSaving is the extra monthly saving a what-if starts with.
	DefaultExtraSaving = 1000
)

// Adjustments are the inputs of a what-if calculation.
type Adjustments struct {
	MonthlyIncome   float64
	MonthlyExpenses float64
	ExtraSaving     float64
	CurrentAge      int
	RetirementAge   int
}

// WhatIfResult is the outcome of a what-if calculation. DiffMonths is
// positive when the adjusted fund is ahead of the baseline, measured in
// months of the adjusted monthly saving.
type WhatIfResult struct {
	MonthlySavings    int64
	SavingsRate       float64
	YearsToRetire     int
	RetirementFund    int64
	InflationAdjusted int64
	SafeMonthly       int64
	BaselineFund      int64
	DiffMonths        int64
}

// DefaultAdjustments seeds a what-if from baseline, or from the snapshot
// defaults when there is none.
func DefaultAdjustments(baseline *model.FinancialSnapshot) Adjustments {
	adj := Adjustments{
		MonthlyIncome:   DefaultMonthlyIncome,
		MonthlyExpenses: DefaultMonthlyExpenses,
		ExtraSaving:     DefaultExtraSaving,
		CurrentAge:      DefaultCurrentAge,
		RetirementAge:   DefaultRetirementAge,
	}
	if baseline == nil {
		return adj
	}
	if baseline.MonthlyIncome > 0 {
		adj.MonthlyIncome = float64(baseline.MonthlyIncome)
	}
	if baseline.MonthlyExpenses > 0 {
		adj.MonthlyExpenses = float64(baseline.MonthlyExpenses)
	}
	if baseline.CurrentAge > 0 {
		adj.CurrentAge = baseline.CurrentAge
	}
	if baseline.RetirementAge > 0 {
		adj.RetirementAge = baseline.RetirementAge
	}
	return adj.Clamped()
}

// Clamped holds every input inside its range.
func (a Adjustments) Clamped() Adjustments {
	a.MonthlyIncome = clamp(finite(a.MonthlyIncome), MinWhatIfIncome, MaxWhatIfIncome)
	a.MonthlyExpenses = clamp(finite(a.MonthlyExpenses), 0, a.MonthlyIncome)
	a.ExtraSaving = clamp(finite(a.ExtraSaving), 0, MaxWhatIfExtraSaving)
	a.CurrentAge = min(max(a.CurrentAge, MinWhatIfCurrentAge), MaxWhatIfCurrentAge)
	a.RetirementAge = min(max(a.RetirementAge, a.CurrentAge+1), MaxWhatIfRetirementAge)
	return a
}

// WhatIf projects the retirement fund for adj with the same growth
// assumptions as ComputeSnapshot. Existing savings of baseline keep
// growing so an unchanged plan compares level with itself. WhatIf is
// pure; a nil baseline yields a zero DiffMonths.
func WhatIf(baseline *model.FinancialSnapshot, adj Adjustments) WhatIfResult {
	adj = adj.Clamped()

	savings := math.Max(0, adj.MonthlyIncome-adj.MonthlyExpenses+adj.ExtraSaving)
	years := float64(adj.RetirementAge - adj.CurrentAge)

	var existing, baseFund float64
	if baseline != nil {
		existing = math.Max(0, float64(baseline.ExistingSavings))
		baseFund = float64(baseline.RetirementFund)
	}
	fund := existing*math.Pow(1+NominalReturn, years) +
		futureValueOfContributions(savings*12, years, RealReturn)
	adjusted := fund / math.Pow(1+InflationRate, years)

	res := WhatIfResult{
		MonthlySavings:    round(savings),
		SavingsRate:       savings / adj.MonthlyIncome * 100,
		YearsToRetire:     int(years),
		RetirementFund:    round(fund),
		InflationAdjusted: round(adjusted),
		SafeMonthly:       round(adjusted * SafeWithdrawalRate / 12),
		BaselineFund:      round(baseFund),
	}
	if baseFund > 0 {
		res.DiffMonths = round((fund - baseFund) / math.Max(savings, 1))
	}
	return res
}

func clamp(f, lo, hi float64) float64 {
	return math.Min(math.Max(f, lo), hi)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
