package cmd

import (
	"fmt"

	"github.com/theirongolddev/finquest/internal/cli"
	"github.com/theirongolddev/finquest/internal/projection"

	"github.com/spf13/cobra"
)

var (
	flagWhatIfIncome   float64
	flagWhatIfExpenses float64
	flagWhatIfExtra    float64
	flagWhatIfAge      int
	flagWhatIfRetire   int
)

var whatIfCmd = &cobra.Command{
	Use:   "whatif",
	Short: "Try different numbers against the active plan without saving them",
	Long: "Recompute the retirement projection with adjusted income, expenses, extra saving\n" +
		"or ages. Unset flags start from the active plan's snapshot.",
	Args: cobra.NoArgs,
	RunE: runWhatIf,
}

func init() {
	whatIfCmd.Flags().Float64Var(&flagWhatIfIncome, "income", 0, "Monthly income")
	whatIfCmd.Flags().Float64Var(&flagWhatIfExpenses, "expenses", 0, "Monthly expenses")
	whatIfCmd.Flags().Float64Var(&flagWhatIfExtra, "extra", projection.DefaultExtraSaving, "Extra saving per month")
	whatIfCmd.Flags().IntVar(&flagWhatIfAge, "age", 0, "Current age")
	whatIfCmd.Flags().IntVar(&flagWhatIfRetire, "retire-age", 0, "Retirement age")
	rootCmd.AddCommand(whatIfCmd)
}

func runWhatIf(cmd *cobra.Command, _ []string) error {
	return withApp(func(app *appContext) error {
		e := app.engine
		baseline := e.Snapshot()

		adj := projection.DefaultAdjustments(baseline)
		flags := cmd.Flags()
		if flags.Changed("income") {
			adj.MonthlyIncome = flagWhatIfIncome
		}
		if flags.Changed("expenses") {
			adj.MonthlyExpenses = flagWhatIfExpenses
		}
		adj.ExtraSaving = flagWhatIfExtra
		if flags.Changed("age") {
			adj.CurrentAge = flagWhatIfAge
		}
		if flags.Changed("retire-age") {
			adj.RetirementAge = flagWhatIfRetire
		}
		adj = adj.Clamped()

		res := projection.WhatIf(baseline, adj)
		e.RecordWhatIfView()

		fmt.Println()
		fmt.Println(cli.RenderTitle("WHAT IF"))
		fmt.Println()
		fmt.Print(renderWhatIf(adj, res, app.symbol()))
		fmt.Println(cli.Muted("  Nothing here is saved to your plan."))
		return nil
	})
}

func renderWhatIf(adj projection.Adjustments, res projection.WhatIfResult, symbol string) string {
	money := func(n int64) string { return cli.FormatMoney(n, symbol) }

	out := cli.RenderKeyValues([][2]string{
		{"Monthly income", cli.FormatAmount(adj.MonthlyIncome, symbol)},
		{"Monthly expenses", cli.FormatAmount(adj.MonthlyExpenses, symbol)},
		{"Extra saving", cli.FormatAmount(adj.ExtraSaving, symbol)},
		{"Age now / at retirement", fmt.Sprintf("%d / %d", adj.CurrentAge, adj.RetirementAge)},
	})
	out += "\n" + cli.RenderKeyValues([][2]string{
		{"Monthly savings", money(res.MonthlySavings)},
		{"Savings rate", cli.FormatPercent(res.SavingsRate)},
		{"Fund at retirement", money(res.RetirementFund)},
		{"In today's money", money(res.InflationAdjusted)},
		{"Monthly spend in retirement", money(res.SafeMonthly)},
	})

	switch {
	case res.BaselineFund == 0:
		out += cli.Muted("  No plan snapshot to compare against. Run `finquest snapshot` first.") + "\n"
	case res.DiffMonths >= 0:
		out += cli.Good(fmt.Sprintf("  %d months ahead of your plan's %s.", res.DiffMonths, money(res.BaselineFund))) + "\n"
	default:
		out += cli.Warn(fmt.Sprintf("  %d months behind your plan's %s.", -res.DiffMonths, money(res.BaselineFund))) + "\n"
	}
	return out
}
