package cmd

import (
	"fmt"

	"github.com/theirongolddev/finquest/internal/model"
	"github.com/theirongolddev/finquest/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var flagSandbox string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Answer plan questions and track quests interactively",
	Args:  cobra.NoArgs,
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSandbox, "sandbox", "", "Try a plan kind without saving anything (saving, goal or retirement)")
	rootCmd.AddCommand(playCmd)
}

func runPlay(_ *cobra.Command, _ []string) error {
	return withApp(func(app *appContext) error {
		events, unsubscribe := app.bus.Subscribe(16)
		defer unsubscribe()

		if flagSandbox != "" {
			if !app.engine.SelectPlanKind(model.PlanKind(flagSandbox)) {
				return fmt.Errorf("unknown plan kind %q (want saving, goal or retirement)", flagSandbox)
			}
		} else {
			app.engine.RecordOpen()
		}
		p := tea.NewProgram(tui.NewApp(app.engine, events, app.symbol()), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running TUI: %w", err)
		}
		return nil
	})
}
