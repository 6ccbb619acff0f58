package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opd-ai/go-shipsim/pkg/config"
)

var flagOut string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or generate configuration",
}

var configDefaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Write the default configuration",
	Long: `Write the default configuration to --out. The format follows the file
extension: .yaml or .yml for YAML, anything else for JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SaveConfig(config.DefaultConfig(), flagOut); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", flagOut)
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Check a configuration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(args[0])
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", args[0])
		return nil
	},
}

func init() {
	configDefaultCmd.Flags().StringVar(&flagOut, "out", "shipsim.json", "Output path")

	configCmd.AddCommand(configDefaultCmd)
	configCmd.AddCommand(configValidateCmd)
}
