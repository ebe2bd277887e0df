package cmd

import (
	"fmt"

	"github.com/theirongolddev/finquest/internal/cli"
	"github.com/theirongolddev/finquest/internal/progress"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show XP, rank, streak and the active plan",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	return withApp(func(app *appContext) error {
		e := app.engine
		e.RecordOpen()

		xp := e.XP()
		rank := e.Rank()

		fmt.Println()
		fmt.Println(cli.RenderTitle("FINQUEST"))
		fmt.Println()

		pairs := [][2]string{
			{"Rank", rank.Emoji + " " + rank.Name},
			{"XP", cli.FormatXP(xp)},
			{"Streak", fmt.Sprintf("🔥 %d month(s)", e.StreakMonths())},
		}
		if next, ok := progress.NextRank(xp); ok {
			pairs = append(pairs, [2]string{"Next rank",
				fmt.Sprintf("%s %s in %s", next.Emoji, next.Name, cli.FormatXP(next.MinXP-xp))})
		}
		if p, ok := e.ActivePlan(); ok {
			pairs = append(pairs, [2]string{"Active plan", p.Emoji + " " + p.Name})
		} else {
			pairs = append(pairs, [2]string{"Active plan", cli.Muted("none, run `finquest plan new saving`")})
		}
		fmt.Print(cli.RenderKeyValues(pairs))

		fmt.Println()
		fmt.Println(cli.RenderProgressBar(xp-rank.MinXP, nextSpan(xp, rank), 30))
		fmt.Printf("  %s\n", cli.Muted(rank.Description))
		return nil
	})
}

// nextSpan is the XP between rank's floor and the next rank. At the top
// rank it equals the progress so the bar reads full.
func nextSpan(xp int, rank progress.Rank) int {
	next, ok := progress.NextRank(xp)
	if !ok {
		return max(xp-rank.MinXP, 1)
	}
	return next.MinXP - rank.MinXP
}
