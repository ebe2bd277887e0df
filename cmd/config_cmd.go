package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/theirongolddev/finquest/internal/cli"
	"github.com/theirongolddev/finquest/internal/config"
	"github.com/theirongolddev/finquest/internal/tui/theme"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting and save the config file",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("\n  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	pairs := make([][2]string, 0, len(config.Keys))
	for _, k := range config.Keys {
		v, _ := cfg.Get(k)
		pairs = append(pairs, [2]string{k, v})
	}
	fmt.Print(cli.RenderKeyValues(pairs))
	fmt.Println()
	fmt.Println(cli.Muted("  Change a value with `finquest config set <key> <value>`."))
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	v, ok := cfg.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown setting %q (known: %s)", args[0], strings.Join(config.Keys, ", "))
	}
	fmt.Println(v)
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	if key == "display.theme" && !slices.Contains(theme.Names(), value) {
		return fmt.Errorf("unknown theme %q (known: %s)", value, strings.Join(theme.Names(), ", "))
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Printf("  %s = %s\n", key, value)
	return nil
}
