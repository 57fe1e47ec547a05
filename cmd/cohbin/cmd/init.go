/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ssargent/cohbin/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write a configuration file with default settings.

The archive path is taken from --archive when given. Use --api-key to
generate a key that the REST API will require in the X-API-Key header.

Examples:
  cohbin init
  cohbin init --archive ./piggs/bin.pigg --api-key
  cohbin init --config ./cohbin.yaml --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := runtimeFrom(cmd)
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")
		withKey, _ := cmd.Flags().GetBool("api-key")

		if config.ConfigExists(rt.configPath) && !force {
			return fmt.Errorf("config %s already exists; use --force to overwrite", rt.configPath)
		}

		cfg, err := config.BootstrapConfig(rt.configPath, rt.config.Archive, withKey)
		if err != nil {
			return err
		}

		cmd.Printf("Configuration written to %s\n", rt.configPath)
		cmd.Printf("Archive: %s\n", cfg.Archive)
		if cfg.Security.APIKey != "" {
			cmd.Printf("API key: %s\n", cfg.Security.APIKey)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	initCmd.Flags().Bool("api-key", false, "Generate an API key for the REST API")
}
