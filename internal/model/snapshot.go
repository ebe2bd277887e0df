package model

// FinancialSnapshot is the projection derived from a plan's answers.
// It is always recomputed wholesale; monetary fields are whole units.
type FinancialSnapshot struct {
	MonthlyIncome            int64    `json:"monthlyIncome"`
	MonthlyExpenses          int64    `json:"monthlyExpenses"`
	MonthlySavings           int64    `json:"monthlySavings"`
	AnnualSavings            int64    `json:"annualSavings"`
	SavingsRate              float64  `json:"savingsRate"` // percent, 0-100
	CurrentAge               int      `json:"currentAge"`
	RetirementAge            int      `json:"retirementAge"`
	YearsToRetire            int      `json:"yearsToRetire"`
	ExistingSavings          int64    `json:"existingSavings"`
	RetirementFund           int64    `json:"retirementFund"`
	InflationAdjusted        int64    `json:"inflationAdjusted"`
	RetirementNeeded         int64    `json:"retirementNeeded"`
	RetirementMonthlyExpense int64    `json:"retirementMonthlyExpense"`
	YearsInRetirement        int      `json:"yearsInRetirement"`
	RiskTolerance            string   `json:"riskTolerance"`
	SafeSpendingRange        [2]int64 `json:"safeSpendingRange"`
}
