package cmd

import (
	"fmt"

	"github.com/theirongolddev/finquest/internal/cli"
	"github.com/theirongolddev/finquest/internal/model"
	"github.com/theirongolddev/finquest/internal/progress"

	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Recalculate and show the projection of the active plan",
	Args:  cobra.NoArgs,
	RunE:  runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(_ *cobra.Command, _ []string) error {
	return withApp(func(app *appContext) error {
		e := app.engine
		first := e.Snapshot() == nil
		snap, ok := e.CalculateSnapshot()
		if !ok {
			fmt.Println("\n  No active plan. Create one with `finquest plan new saving`.")
			return nil
		}
		if first && e.FlowComplete() {
			e.AwardXP(progress.CompleteLevel)
		}
		e.RecordSnapshotView()

		fmt.Println()
		fmt.Println(cli.RenderTitle("FINANCIAL SNAPSHOT"))
		fmt.Println()
		fmt.Print(renderSnapshot(snap, e.FlowKind(), app.symbol()))
		if !e.FlowComplete() {
			fmt.Println()
			fmt.Println(cli.Warn("  Some questions are unanswered; defaults were used. See `finquest questions`."))
		}
		return nil
	})
}

func renderSnapshot(s model.FinancialSnapshot, kind model.PlanKind, symbol string) string {
	money := func(n int64) string { return cli.FormatMoney(n, symbol) }

	out := cli.RenderKeyValues([][2]string{
		{"Monthly income", money(s.MonthlyIncome)},
		{"Monthly expenses", money(s.MonthlyExpenses)},
		{"Monthly savings", money(s.MonthlySavings)},
		{"Annual savings", money(s.AnnualSavings)},
		{"Savings rate", cli.FormatPercent(s.SavingsRate)},
		{"Existing savings", money(s.ExistingSavings)},
		{"Safe spending", money(s.SafeSpendingRange[0]) + " to " + money(s.SafeSpendingRange[1])},
		{"Risk tolerance", s.RiskTolerance},
	})
	out += "\n" + cli.RenderTable(cli.Table{
		Title:   "Retirement",
		Headers: []string{"", "Value"},
		Rows: [][]string{
			{"Age now / at retirement", fmt.Sprintf("%d / %d", s.CurrentAge, s.RetirementAge)},
			{"Years to retire", cli.FormatYears(s.YearsToRetire)},
			{"Fund at retirement", money(s.RetirementFund)},
			{"In today's money", money(s.InflationAdjusted)},
			{"Needed to retire", money(s.RetirementNeeded)},
			{"Monthly spend in retirement", money(s.RetirementMonthlyExpense)},
			{"Years in retirement", cli.FormatYears(s.YearsInRetirement)},
		},
	})
	if kind == model.PlanRetirement && s.RetirementNeeded > 0 {
		gap := s.RetirementNeeded - s.InflationAdjusted
		if gap > 0 {
			out += cli.Warn(fmt.Sprintf("  Short by %s in today's money.", money(gap))) + "\n"
		} else {
			out += cli.Good("  On track for retirement.") + "\n"
		}
	}
	return out
}
