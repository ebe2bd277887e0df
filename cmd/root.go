// Package cmd implements the finquest CLI commands.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/theirongolddev/finquest/internal/cli"
	"github.com/theirongolddev/finquest/internal/config"
	"github.com/theirongolddev/finquest/internal/notify"
	"github.com/theirongolddev/finquest/internal/progress"
	"github.com/theirongolddev/finquest/internal/store"
	"github.com/theirongolddev/finquest/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagQuiet   bool
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "finquest",
	Short: "Gamified personal finance planner",
	Long:  "Plan your savings, goals and retirement, then build the habit with weekly quests, XP and streaks.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	},
	SilenceUsage: true,
	RunE:         runStatus,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Directory holding state.db (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress notifications and warnings")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
}

// appContext is everything one command invocation works with.
type appContext struct {
	cfg    config.Config
	db     *store.DB
	bus    *notify.Bus
	engine *progress.Engine
	log    *slog.Logger
}

// openApp loads the config, opens the state store and builds the engine.
// Callers must Close the result.
func openApp() (*appContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger := newLogger(cfg)

	dir := cfg.DataDir()
	if flagDataDir != "" {
		dir = flagDataDir
	}
	db, err := store.Open(store.DefaultPath(dir))
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	theme.SetActive(cfg.Display.Theme)
	bus := notify.NewBus(0)
	engine := progress.New(progress.Options{
		Store:        db,
		Notifier:     bus,
		Logger:       logger.With("component", "engine"),
		ComebackDays: cfg.Game.ComebackDays,
	})
	logger.Debug("state opened", "dir", dir, "plans", len(engine.Plans()))

	return &appContext{cfg: cfg, db: db, bus: bus, engine: engine, log: logger}, nil
}

// newLogger writes text records to stderr at the configured level. The
// quiet flag keeps only errors.
func newLogger(cfg config.Config) *slog.Logger {
	level, err := config.ParseLevel(cfg.General.LogLevel)
	if err != nil {
		level = slog.LevelWarn
	}
	if flagQuiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Close prints the notifications raised during the command and closes
// the store.
func (a *appContext) Close() error {
	if !flagQuiet {
		printNotifications(a.bus.Recent())
	}
	if err := a.engine.LastPersistError(); err != nil {
		a.log.Error("progress was not saved", "err", err)
	}
	return a.db.Close()
}

func (a *appContext) symbol() string {
	return a.cfg.Display.CurrencySymbol
}

func printNotifications(events []notify.Event) {
	if len(events) == 0 {
		return
	}
	fmt.Println()
	for _, ev := range events {
		switch ev.Kind {
		case notify.XPAwarded:
			fmt.Printf("  ✨ %s\n", cli.Good(ev.Message))
		default:
			fmt.Printf("  %s\n", cli.Muted(ev.Message))
		}
	}
}

// withApp runs fn against an opened app and always closes it.
func withApp(fn func(app *appContext) error) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	runErr := fn(app)
	if err := app.Close(); err != nil && runErr == nil {
		return fmt.Errorf("closing state db: %w", err)
	}
	return runErr
}
