package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagResetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all plans, XP, quests and history",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagResetYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(_ *cobra.Command, _ []string) error {
	if !flagResetYes {
		confirmed := false
		err := huh.NewConfirm().
			Title("Erase all finquest progress?").
			Description("Plans, XP, quests, history and rollovers are deleted.").
			Affirmative("Erase").
			Negative("Keep").
			Value(&confirmed).
			Run()
		if errors.Is(err, huh.ErrUserAborted) || (err == nil && !confirmed) {
			fmt.Println("  Nothing was changed.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("confirming reset: %w", err)
		}
	}

	return withApp(func(app *appContext) error {
		app.engine.ResetAll()
		fmt.Println("\n  All progress erased.")
		return nil
	})
}
