package catalog

import "github.com/theirongolddev/finquest/internal/model"

// CurrencySuffix marks questions whose answers are money amounts.
const CurrencySuffix = "฿"

// Question ids referenced outside the catalog.
const (
	MonthlyIncome            = "monthly_income"
	IncomeStability          = "income_stability"
	AvgIncome                = "avg_income"
	MonthlyExpenses          = "monthly_expenses"
	MinExpenses              = "min_expenses"
	MonthlyObligations       = "monthly_obligations"
	CurrentSavings           = "current_savings"
	CurrentSavingsManual     = "current_savings_manual"
	SavingGoal               = "saving_goal"
	BigPurchase              = "big_purchase"
	BigPurchaseTimeline      = "big_purchase_timeline"
	EmergencyReadiness       = "emergency_readiness"
	FinancialDiscipline      = "financial_discipline"
	RiskTolerance            = "risk_tolerance"
	SavingTimeline           = "saving_timeline"
	GoalPriority             = "goal_priority"
	CurrentAge               = "current_age"
	RetirementAge            = "retirement_age"
	ExpectedLifespan         = "expected_lifespan"
	RetirementMonthlyExpense = "retirement_monthly_expense"
	RetirementSavings        = "retirement_savings"
	RetirementSavingsManual  = "retirement_savings_manual"
)

// ManualEntry is the choice value that reveals a manual amount question.
const ManualEntry = "manual"

func opt(label string, v model.Value) model.Option {
	return model.Option{Label: label, Value: v}
}

func when(questionID string, accepted ...string) *model.Condition {
	c := &model.Condition{QuestionID: questionID}
	for _, a := range accepted {
		c.Accepted = append(c.Accepted, model.Text(a))
	}
	return c
}

var (
	qMonthlyIncome = model.QuestionSpec{
		ID: MonthlyIncome, Group: "income", Kind: model.KindSliderNumeric,
		Prompt: "How much do you earn per month?",
		Min:    model.Fixed(1000), Max: model.Fixed(100_000_000),
		SliderMax: 100_000, Step: 1000, Default: 30000, Suffix: CurrencySuffix,
	}
	qIncomeStability = model.QuestionSpec{
		ID: IncomeStability, Group: "income", Kind: model.KindChoice,
		Prompt: "How stable is your income?",
		Options: []model.Option{
			opt("Very stable", model.Text("stable")),
			opt("Varies sometimes", model.Text("mixed")),
			opt("Very unstable", model.Text("variable")),
		},
	}
	qAvgIncome = model.QuestionSpec{
		ID: AvgIncome, Group: "income", Kind: model.KindSliderNumeric,
		Prompt:     "What do you earn in an average month?",
		Visibility: when(IncomeStability, "mixed", "variable"),
		Min:        model.Fixed(1000), Max: model.Fixed(100_000_000),
		SliderMax: 100_000, Step: 1000, Default: 25000, Suffix: CurrencySuffix,
	}
	qMonthlyExpenses = model.QuestionSpec{
		ID: MonthlyExpenses, Group: "expenses", Kind: model.KindSliderNumeric,
		Prompt: "How much do you spend per month?",
		Min:    model.Fixed(0), Max: model.Dynamic(MonthlyIncome),
		SliderMax: 100_000, Step: 500, Default: 20000, Suffix: CurrencySuffix,
	}
	qMinExpenses = model.QuestionSpec{
		ID: MinExpenses, Group: "expenses", Kind: model.KindSliderNumeric,
		Prompt: "What is the least you could live on per month?",
		Min:    model.Fixed(0), Max: model.Dynamic(MonthlyExpenses),
		SliderMax: 100_000, Step: 500, Default: 10000, Suffix: CurrencySuffix,
	}
	qMonthlyObligations = model.QuestionSpec{
		ID: MonthlyObligations, Group: "expenses", Kind: model.KindChoice,
		Prompt: "Do you have monthly debts or obligations?",
		Options: []model.Option{
			opt("None", model.Text("none")),
			opt("A little", model.Text("some")),
			opt("Quite a lot", model.Text("heavy")),
		},
	}
	qCurrentSavings = model.QuestionSpec{
		ID: CurrentSavings, Group: "savings", Kind: model.KindChoice,
		Prompt: "How much have you saved so far?",
		Options: []model.Option{
			opt("Under 10,000", model.Number(5000)),
			opt("50,000+", model.Number(50000)),
			opt("100,000+", model.Number(100000)),
			opt("1,000,000+", model.Number(1000000)),
			opt("Enter manually", model.Text(ManualEntry)),
		},
	}
	qCurrentSavingsManual = model.QuestionSpec{
		ID: CurrentSavingsManual, Group: "savings", Kind: model.KindPlainNumeric,
		Prompt:     "Enter your current savings",
		Visibility: when(CurrentSavings, ManualEntry),
		Min:        model.Fixed(0), Max: model.Fixed(999_999_999), Suffix: CurrencySuffix,
	}
	qSavingGoal = model.QuestionSpec{
		ID: SavingGoal, Group: "savings", Kind: model.KindPlainNumeric,
		Prompt: "How much do you want to save in total?",
		Min:    model.Fixed(1), Max: model.Fixed(999_999_999), Suffix: CurrencySuffix,
	}
	qBigPurchase = model.QuestionSpec{
		ID: BigPurchase, Group: "goals", Kind: model.KindChoice,
		Prompt: "Are you saving for a big purchase?",
		Options: []model.Option{
			opt("Home", model.Text("home")),
			opt("Car", model.Text("car")),
			opt("Travel", model.Text("travel")),
			opt("No, just saving", model.Text("none")),
		},
	}
	qBigPurchaseTimeline = model.QuestionSpec{
		ID: BigPurchaseTimeline, Group: "goals", Kind: model.KindChoice,
		Prompt:     "When do you want to buy it?",
		Visibility: when(BigPurchase, "home", "car", "travel"),
		Options: []model.Option{
			opt("This year", model.Text("1")),
			opt("2-3 years", model.Text("2")),
			opt("5+ years", model.Text("5")),
			opt("Not sure yet", model.Text("unsure")),
		},
	}
	qEmergencyReadiness = model.QuestionSpec{
		ID: EmergencyReadiness, Group: "behavior", Kind: model.KindChoice,
		Prompt: "How long could your savings cover your expenses?",
		Options: []model.Option{
			opt("Less than 1 month", model.Text("less_1")),
			opt("1-3 months", model.Text("1_3")),
			opt("More than 3 months", model.Text("more_3")),
		},
	}
	qFinancialDiscipline = model.QuestionSpec{
		ID: FinancialDiscipline, Group: "behavior", Kind: model.KindChoice,
		Prompt: "How well do you stick to a money plan?",
		Options: []model.Option{
			opt("I follow my plan", model.Text("disciplined")),
			opt("I try but slip sometimes", model.Text("trying")),
			opt("I'm working on it", model.Text("learning")),
		},
	}
	qRiskTolerance = model.QuestionSpec{
		ID: RiskTolerance, Group: "behavior", Kind: model.KindChoice,
		Prompt: "How do you feel about investment risk?",
		Options: []model.Option{
			opt("Keep it safe", model.Text("conservative")),
			opt("Some ups and downs are fine", model.Text("moderate")),
			opt("Chase growth", model.Text("aggressive")),
		},
	}
	qSavingTimeline = model.QuestionSpec{
		ID: SavingTimeline, Group: "goals", Kind: model.KindChoice,
		Prompt: "When do you want to reach your saving goal?",
		Options: []model.Option{
			opt("3 months", model.Text("3")),
			opt("6 months", model.Text("6")),
			opt("1 year", model.Text("12")),
			opt("3+ years", model.Text("36")),
		},
	}
	qGoalPriority = model.QuestionSpec{
		ID: GoalPriority, Group: "goals", Kind: model.KindChoice,
		Prompt: "What matters most on the way to your goal?",
		Options: []model.Option{
			opt("Speed: reach it ASAP", model.Text("speed")),
			opt("Balance: save and live well", model.Text("balance")),
			opt("Flexible: life happens", model.Text("flexible")),
		},
	}
	qCurrentAge = model.QuestionSpec{
		ID: CurrentAge, Group: "retirement", Kind: model.KindSliderNumeric,
		Prompt: "How old are you?",
		Min:    model.Fixed(18), Max: model.Fixed(70), Step: 1, Default: 30,
	}
	qRetirementAge = model.QuestionSpec{
		ID: RetirementAge, Group: "retirement", Kind: model.KindSliderNumeric,
		Prompt: "At what age do you want to retire?",
		Min:    model.Fixed(40), Max: model.Fixed(80), Step: 1, Default: 60,
	}
	qExpectedLifespan = model.QuestionSpec{
		ID: ExpectedLifespan, Group: "retirement", Kind: model.KindSliderNumeric,
		Prompt: "How long do you expect to live?",
		Min:    model.Fixed(60), Max: model.Fixed(100), Step: 1, Default: 80,
	}
	qRetirementMonthlyExpense = model.QuestionSpec{
		ID: RetirementMonthlyExpense, Group: "retirement", Kind: model.KindSliderNumeric,
		Prompt: "How much do you want to spend per month in retirement?",
		Min:    model.Fixed(5000), Max: model.Fixed(500_000),
		SliderMax: 100_000, Step: 1000, Default: 30000, Suffix: CurrencySuffix,
	}
	qRetirementSavings = model.QuestionSpec{
		ID: RetirementSavings, Group: "retirement", Kind: model.KindChoice,
		Prompt: "How much have you saved for retirement?",
		Options: []model.Option{
			opt("Under 100,000", model.Number(50000)),
			opt("100,000+", model.Number(100000)),
			opt("500,000+", model.Number(500000)),
			opt("1,000,000+", model.Number(1000000)),
			opt("Enter manually", model.Text(ManualEntry)),
		},
	}
	qRetirementSavingsManual = model.QuestionSpec{
		ID: RetirementSavingsManual, Group: "retirement", Kind: model.KindPlainNumeric,
		Prompt:     "Enter your retirement savings",
		Visibility: when(RetirementSavings, ManualEntry),
		Min:        model.Fixed(0), Max: model.Fixed(999_999_999), Suffix: CurrencySuffix,
	}
)

// flows is versioned with the persisted answers; ids must stay stable.
var flows = map[model.PlanKind][]model.QuestionSpec{
	model.PlanSaving: {
		qMonthlyIncome, qIncomeStability, qAvgIncome,
		qMonthlyExpenses, qMinExpenses, qMonthlyObligations,
		qCurrentSavings, qCurrentSavingsManual, qSavingGoal,
		qEmergencyReadiness, qFinancialDiscipline,
		qSavingTimeline,
	},
	model.PlanGoal: {
		qMonthlyIncome, qIncomeStability, qAvgIncome,
		qMonthlyExpenses, qMinExpenses, qMonthlyObligations,
		qCurrentSavings, qCurrentSavingsManual, qSavingGoal,
		qBigPurchase, qBigPurchaseTimeline,
		qEmergencyReadiness, qFinancialDiscipline, qRiskTolerance,
		qGoalPriority,
	},
	model.PlanRetirement: {
		qMonthlyIncome, qIncomeStability, qAvgIncome,
		qMonthlyExpenses, qMinExpenses, qMonthlyObligations,
		qCurrentAge, qRetirementAge, qExpectedLifespan,
		qRetirementMonthlyExpense,
		qRetirementSavings, qRetirementSavingsManual,
		qEmergencyReadiness, qFinancialDiscipline, qRiskTolerance,
	},
}
