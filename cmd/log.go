package cmd

import (
	"fmt"
	"maps"
	"slices"

	"github.com/theirongolddev/finquest/internal/cli"
	"github.com/theirongolddev/finquest/internal/model"
	"github.com/theirongolddev/finquest/internal/quest"

	"github.com/spf13/cobra"
)

var (
	flagLogMonth      string
	flagLogSavings    float64
	flagLogInvestment float64
	flagLogExpenses   float64
	flagLogDeferred   bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record monthly results",
}

var logAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Grade a month's actual savings, investment and spending",
	Args:  cobra.NoArgs,
	RunE:  runLogAdd,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show logged months, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	logAddCmd.Flags().StringVar(&flagLogMonth, "month", "", "Month as YYYY-MM (default current month)")
	logAddCmd.Flags().Float64Var(&flagLogSavings, "savings", 0, "Amount saved")
	logAddCmd.Flags().Float64Var(&flagLogInvestment, "investment", 0, "Amount invested")
	logAddCmd.Flags().Float64Var(&flagLogExpenses, "expenses", 0, "Amount spent")
	logAddCmd.Flags().BoolVar(&flagLogDeferred, "defer", false, "Carry the shortfall into next month")
	logCmd.AddCommand(logAddCmd)
	rootCmd.AddCommand(logCmd, historyCmd)
}

func runLogAdd(_ *cobra.Command, _ []string) error {
	return withApp(func(app *appContext) error {
		e := app.engine
		month := flagLogMonth
		if month == "" {
			month = quest.MonthKey(e.Now())
		}
		log, err := e.RecordMonth(month, quest.Actuals{
			Savings:    flagLogSavings,
			Investment: flagLogInvestment,
			Expenses:   flagLogExpenses,
			Deferred:   flagLogDeferred,
		})
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Print(cli.RenderKeyValues([][2]string{
			{"Month", log.MonthKey},
			{"Saved", vsTarget(log.ActualSavings, log.TargetSavings, app.symbol())},
			{"Invested", vsTarget(log.ActualInvestment, log.TargetInvestment, app.symbol())},
			{"Spent", vsTarget(log.ActualExpenses, log.SpendingLimit, app.symbol()) + " limit"},
			{"Result", monthLabel(log.Status)},
		}))
		fmt.Printf("\n  🔥 Streak: %d month(s)\n", e.StreakMonths())
		return nil
	})
}

func vsTarget(actual, target float64, symbol string) string {
	return cli.FormatAmount(actual, symbol) + " / " + cli.FormatAmount(target, symbol)
}

func monthLabel(s model.MonthStatus) string {
	switch s {
	case model.MonthSuccess:
		return cli.Good("success")
	case model.MonthAdjusted:
		return cli.Good("adjusted")
	case model.MonthRollover:
		return cli.Warn("rollover")
	default:
		return cli.Muted(string(s))
	}
}

func runHistory(_ *cobra.Command, _ []string) error {
	return withApp(func(app *appContext) error {
		logs := app.engine.MonthlyLogs()
		if len(logs) == 0 {
			fmt.Println("\n  No months logged yet. Record one with `finquest log add`.")
			return nil
		}

		rows := make([][]string, 0, len(logs))
		savings := make([]float64, len(logs))
		for i, l := range logs {
			savings[len(logs)-1-i] = l.ActualSavings
			rows = append(rows, []string{
				l.MonthKey,
				vsTarget(l.ActualSavings, l.TargetSavings, app.symbol()),
				vsTarget(l.ActualInvestment, l.TargetInvestment, app.symbol()),
				vsTarget(l.ActualExpenses, l.SpendingLimit, app.symbol()),
				monthLabel(l.Status),
				fmt.Sprintf("%d", l.XPEarned),
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "History",
			Headers: []string{"Month", "Saved", "Invested", "Spent", "Result", "XP"},
			Rows:    rows,
		}))
		fmt.Printf("  %s %s\n", cli.Muted("Savings trend:"), cli.RenderSparkline(savings))
		printRollovers(app)
		fmt.Printf("  🔥 Streak: %d month(s)\n", app.engine.StreakMonths())
		return nil
	})
}

func printRollovers(app *appContext) {
	buckets, err := app.db.Rollovers()
	if err != nil {
		app.log.Warn("reading rollovers", "err", err)
		return
	}
	months := slices.Sorted(maps.Keys(buckets))
	for _, m := range months {
		if buckets[m] > 0 {
			fmt.Printf("  %s %s\n", cli.Muted("Carried into "+m+":"), cli.FormatAmount(buckets[m], app.symbol()))
		}
	}
}
