package cmd

import (
	"fmt"

	"github.com/theirongolddev/finquest/internal/cli"
	"github.com/theirongolddev/finquest/internal/model"
	"github.com/theirongolddev/finquest/internal/quest"

	"github.com/spf13/cobra"
)

var questsCmd = &cobra.Command{
	Use:   "quests",
	Short: "Show this week's quests",
	Args:  cobra.NoArgs,
	RunE:  runQuestsList,
}

var questsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show this week's quests",
	Args:  cobra.NoArgs,
	RunE:  runQuestsList,
}

var questsDoneCmd = &cobra.Command{
	Use:   "done <quest-id>",
	Short: "Mark a quest as done",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuestsDone,
}

var questsSkipCmd = &cobra.Command{
	Use:   "skip <quest-id>",
	Short: "Skip a quest and carry its amount into next month",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuestsSkip,
}

func init() {
	questsCmd.AddCommand(questsListCmd, questsDoneCmd, questsSkipCmd)
	rootCmd.AddCommand(questsCmd)
}

func runQuestsList(_ *cobra.Command, _ []string) error {
	return withApp(func(app *appContext) error {
		e := app.engine
		now := e.Now()
		week := quest.WeekKey(now)

		rows := [][]string{}
		for _, q := range e.WeeklyQuests() {
			rows = append(rows, []string{
				q.Icon + " " + q.Title,
				q.ID,
				cli.FormatMoney(q.Amount, app.symbol()),
				statusLabel(e.QuestStatus(q.ID, week)),
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Quests for " + week,
			Headers: []string{"Quest", "ID", "Amount", "Status"},
			Rows:    rows,
		}))

		month := quest.MonthKey(now)
		t := e.MonthTargets(month)
		fmt.Printf("  %s save %s, invest %s, spend at most %s\n",
			cli.Muted(month+" targets:"),
			cli.FormatAmount(t.Savings, app.symbol()),
			cli.FormatAmount(t.Investment, app.symbol()),
			cli.FormatAmount(t.SpendingLimit, app.symbol()))
		if t.Rollover > 0 {
			fmt.Printf("  %s\n", cli.Warn("includes "+cli.FormatAmount(t.Rollover, app.symbol())+" carried over"))
		}
		if _, ok := e.ActivePlan(); !ok || e.Snapshot() == nil {
			fmt.Println(cli.Muted("  Amounts are examples until your plan has a snapshot."))
		}
		return nil
	})
}

func runQuestsDone(_ *cobra.Command, args []string) error {
	return withApp(func(app *appContext) error {
		e := app.engine
		q, err := findQuest(e.WeeklyQuests(), args[0])
		if err != nil {
			return err
		}
		week := quest.WeekKey(e.Now())
		if e.QuestStatus(q.ID, week) == model.QuestDone {
			fmt.Printf("\n  %s is already done this week.\n", q.ID)
			return nil
		}
		e.CompleteQuest(q.ID, week)
		fmt.Printf("\n  %s %s\n", q.Icon, cli.Good(q.Title+": done"))
		return nil
	})
}

func runQuestsSkip(_ *cobra.Command, args []string) error {
	return withApp(func(app *appContext) error {
		e := app.engine
		q, err := findQuest(e.WeeklyQuests(), args[0])
		if err != nil {
			return err
		}
		week := quest.WeekKey(e.Now())
		if st := e.QuestStatus(q.ID, week); st != model.QuestTodo {
			fmt.Printf("\n  %s is already %s this week.\n", q.ID, st)
			return nil
		}
		month := e.SkipQuest(q.ID, week, q.Deferred())
		fmt.Printf("\n  %s skipped\n", q.ID)
		if month != "" {
			fmt.Printf("  %s\n", cli.Warn(cli.FormatMoney(q.Amount, app.symbol())+" carried into "+month))
		}
		return nil
	})
}

func findQuest(quests []quest.Quest, id string) (quest.Quest, error) {
	q, ok := quest.Find(quests, id)
	if !ok {
		return quest.Quest{}, fmt.Errorf("no quest %q this week", id)
	}
	return q, nil
}

func statusLabel(s model.QuestState) string {
	switch s {
	case model.QuestDone:
		return cli.Good("done")
	case model.QuestSkipped:
		return cli.Muted("skipped")
	default:
		return "todo"
	}
}
