package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/finquest/internal/cli"
	"github.com/theirongolddev/finquest/internal/model"
	"github.com/theirongolddev/finquest/internal/progress"

	"github.com/spf13/cobra"
)

var (
	flagPlanName  string
	flagPlanEmoji string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage your plans",
}

var planNewCmd = &cobra.Command{
	Use:       "new <saving|goal|retirement>",
	Short:     "Create a plan and make it active",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(model.PlanSaving), string(model.PlanGoal), string(model.PlanRetirement)},
	RunE:      runPlanNew,
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List plans",
	Args:  cobra.NoArgs,
	RunE:  runPlanList,
}

var planSwitchCmd = &cobra.Command{
	Use:   "switch <id>",
	Short: "Make another plan active",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanSwitch,
}

var planDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanDelete,
}

func init() {
	planNewCmd.Flags().StringVar(&flagPlanName, "name", "", "Display name (default per kind)")
	planNewCmd.Flags().StringVar(&flagPlanEmoji, "emoji", "", "Emoji shown next to the name")
	planCmd.AddCommand(planNewCmd, planListCmd, planSwitchCmd, planDeleteCmd)
	rootCmd.AddCommand(planCmd)
}

func runPlanNew(_ *cobra.Command, args []string) error {
	kind := model.PlanKind(strings.ToLower(args[0]))
	return withApp(func(app *appContext) error {
		p, err := app.engine.CreatePlan(kind, flagPlanName, flagPlanEmoji)
		if errors.Is(err, progress.ErrUnknownKind) {
			return fmt.Errorf("unknown plan kind %q (want saving, goal or retirement)", args[0])
		}
		if err != nil {
			return err
		}
		fmt.Printf("\n  Created %s %s (%s)\n", p.Emoji, p.Name, shortID(p.ID))
		fmt.Println(cli.Muted("  Answer its questions with `finquest play`."))
		return nil
	})
}

func runPlanList(_ *cobra.Command, _ []string) error {
	return withApp(func(app *appContext) error {
		plans := app.engine.Plans()
		if len(plans) == 0 {
			fmt.Println("\n  No plans yet. Create one with `finquest plan new saving`.")
			return nil
		}

		rows := make([][]string, 0, len(plans))
		for _, p := range plans {
			marker := ""
			if p.Active {
				marker = "●"
			}
			snapshot := "-"
			if p.Snapshot != nil {
				snapshot = cli.FormatMoney(p.Snapshot.MonthlySavings, app.symbol()) + "/mo"
			}
			rows = append(rows, []string{
				marker + " " + p.Emoji + " " + p.Name,
				shortID(p.ID),
				string(p.Kind),
				fmt.Sprintf("%d", len(p.Answers)),
				snapshot,
				p.CreatedAt.Format("2006-01-02"),
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Plans",
			Headers: []string{"Plan", "ID", "Kind", "Answers", "Saving", "Created"},
			Rows:    rows,
		}))
		return nil
	})
}

func runPlanSwitch(_ *cobra.Command, args []string) error {
	return withApp(func(app *appContext) error {
		id, err := resolvePlanID(app.engine.Plans(), args[0])
		if err != nil {
			return err
		}
		app.engine.SwitchPlan(id)
		p, _ := app.engine.ActivePlan()
		fmt.Printf("\n  Active plan: %s %s\n", p.Emoji, p.Name)
		return nil
	})
}

func runPlanDelete(_ *cobra.Command, args []string) error {
	return withApp(func(app *appContext) error {
		id, err := resolvePlanID(app.engine.Plans(), args[0])
		if err != nil {
			return err
		}
		app.engine.DeletePlan(id)
		if p, ok := app.engine.ActivePlan(); ok {
			fmt.Printf("\n  Active plan: %s %s\n", p.Emoji, p.Name)
		} else {
			fmt.Println("\n  No plans left.")
		}
		return nil
	})
}

// resolvePlanID matches arg against plan ids, accepting a unique prefix.
func resolvePlanID(plans []model.Plan, arg string) (string, error) {
	var matches []string
	for _, p := range plans {
		if p.ID == arg {
			return p.ID, nil
		}
		if strings.HasPrefix(p.ID, arg) {
			matches = append(matches, p.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no plan with id %q", arg)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id %q matches %d plans", arg, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
