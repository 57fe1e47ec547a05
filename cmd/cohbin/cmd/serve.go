/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ssargent/cohbin/pkg/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the cohbin REST API server over the configured archive.

Decoded bins, archive listings and message lookups are served under /api/v1.
When an API key is configured every /api/v1 request must carry it in the
X-API-Key header. Prometheus metrics are served at /metrics.

Examples:
  cohbin serve
  cohbin serve --port 9000 --bind 0.0.0.0 --api-key mysecretkey`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := runtimeFrom(cmd)
		if err != nil {
			return err
		}
		cfg := rt.config
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind") {
			cfg.Bind, _ = cmd.Flags().GetString("bind")
		}
		if cmd.Flags().Changed("api-key") {
			cfg.Security.APIKey, _ = cmd.Flags().GetString("api-key")
		}
		if cmd.Flags().Changed("data-dir") {
			cfg.DataDir, _ = cmd.Flags().GetString("data-dir")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		c, err := openCatalog(rt, nil)
		if err != nil {
			return err
		}
		defer c.Close()

		var exports api.ExportStore
		noExports, _ := cmd.Flags().GetBool("no-exports")
		if !noExports {
			if err := os.MkdirAll(cfg.DataDir, 0o750); err != nil {
				return fmt.Errorf("failed to create data dir: %w", err)
			}
			store, err := container.GetExportStoreOpener()(cfg.DataDir)
			if err != nil {
				return err
			}
			defer store.Close()
			exports = store
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		starter := container.GetServerFactory().CreateServerStarter()
		return starter.StartServer(ctx, c, exports, api.ServerConfig{
			Port:   cfg.Port,
			Bind:   cfg.Bind,
			APIKey: cfg.Security.APIKey,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind")
	serveCmd.Flags().String("api-key", "", "API key required in X-API-Key (default from config)")
	serveCmd.Flags().StringP("data-dir", "d", "./data", "Directory of the export store")
	serveCmd.Flags().Bool("no-exports", false, "Serve without the export store")
}
