package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/finquest/internal/catalog"
	"github.com/theirongolddev/finquest/internal/cli"
	"github.com/theirongolddev/finquest/internal/flow"
	"github.com/theirongolddev/finquest/internal/model"
	"github.com/theirongolddev/finquest/internal/progress"

	"github.com/spf13/cobra"
)

var answerCmd = &cobra.Command{
	Use:   "answer <question-id> <value>",
	Short: "Answer one question of the active plan",
	Long:  "Answer one question of the active plan. Choice questions take the option value shown by `finquest questions`.",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runAnswer,
}

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the visible questions of the active plan",
	Args:  cobra.NoArgs,
	RunE:  runQuestions,
}

func init() {
	rootCmd.AddCommand(answerCmd, questionsCmd)
}

func runAnswer(_ *cobra.Command, args []string) error {
	id, raw := args[0], strings.Join(args[1:], " ")
	return withApp(func(app *appContext) error {
		e := app.engine
		prev, had := e.Answer(id)
		a, err := e.SubmitAnswer(id, raw, "")
		switch {
		case errors.Is(err, progress.ErrNoFlow):
			return errors.New("no active plan, create one with `finquest plan new saving`")
		case errors.Is(err, flow.ErrBelowMinimum):
			q, _ := catalog.Lookup(e.FlowKind(), id)
			return fmt.Errorf("%w (minimum %s)", err,
				cli.Label(q, model.Number(e.ResolveBound(q, catalog.Min)), app.symbol()))
		case err != nil:
			return err
		}

		if had && !prev.Value.Equal(a.Value) && e.Snapshot() != nil {
			e.AwardXP(progress.PlanAdjusted)
		}

		// Keep the cursor on the first open question so play resumes there.
		if cur, ok := e.CurrentQuestion(); ok && cur.ID == id {
			e.AdvanceQuestion()
		}

		q, _ := catalog.Lookup(e.FlowKind(), id)
		fmt.Printf("\n  %s %s\n", cli.Muted(q.Prompt), cli.Label(q, a.Value, app.symbol()))
		if e.FlowComplete() {
			fmt.Println(cli.Good("  Every question is answered. See `finquest snapshot`."))
		} else if next, ok := e.CurrentQuestion(); ok {
			fmt.Printf("  %s %s\n", cli.Muted("Next:"), next.ID)
		}
		return nil
	})
}

func runQuestions(_ *cobra.Command, _ []string) error {
	return withApp(func(app *appContext) error {
		e := app.engine
		active := e.ActiveQuestions()
		if len(active) == 0 {
			fmt.Println("\n  No active plan. Create one with `finquest plan new saving`.")
			return nil
		}

		cur, _ := e.CurrentQuestion()
		rows := make([][]string, 0, len(active))
		for _, q := range active {
			marker := " "
			if q.ID == cur.ID {
				marker = "▸"
			}
			answer := cli.Muted("-")
			if a, ok := e.Answer(q.ID); ok {
				answer = cli.Label(q, a.Value, app.symbol())
			}
			rows = append(rows, []string{marker + " " + q.ID, q.Prompt, accepts(e, q, app.symbol()), answer})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("Questions (%d)", len(active)),
			Headers: []string{"ID", "Question", "Accepts", "Answer"},
			Rows:    rows,
		}))
		return nil
	})
}

// accepts describes the input a question takes.
func accepts(e *progress.Engine, q model.QuestionSpec, symbol string) string {
	if q.Kind == model.KindChoice {
		values := make([]string, len(q.Options))
		for i, o := range q.Options {
			values[i] = o.Value.String()
		}
		return strings.Join(values, " | ")
	}
	return "≥ " + cli.Label(q, model.Number(e.ResolveBound(q, catalog.Min)), symbol)
}
