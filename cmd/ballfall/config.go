package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ballfall/internal/config"
)

var flagConfigForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the game configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default config file",
	Long: `Write the default configuration YAML. Without a path it goes to
~/.ballfall/configs/ballfall.yaml, which is picked up automatically.

Examples:
  ballfall config init
  ballfall config init ./configs/ballfall.yaml --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		path := config.UserConfigPath()
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("cannot resolve home directory, pass a path")
		}
		if err := config.WriteDefault(path, flagConfigForce); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after loading, preset application and
normalization, as a game would use it.

Examples:
  ballfall config show
  ballfall config show --difficulty insane --config ./my.yaml`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		logger := newLogger()
		cfg, preset, err := loadGameConfig(logger)
		if err != nil {
			return err
		}
		config.ApplyBallfallPreset(&cfg, preset)

		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Printf("# preset: %s\n", preset)
		fmt.Print(string(data))
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
