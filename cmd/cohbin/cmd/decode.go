package cmd

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/ssargent/cohbin/pkg/catalog"
	"github.com/ssargent/cohbin/pkg/metrics"
	"github.com/ssargent/cohbin/pkg/objects"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <kind>",
	Short: "Decode a bin file into records",
	Long: `Decode the bin file for a kind and print its records. The file is read
from the archive unless --file names a loose file; zstd-compressed files are
decompressed first. Records that fail to decode are skipped and reported on
stderr.

Kinds: classes, villain_classes, power_categories, powersets, powers, boost_sets

Examples:
  cohbin decode powers --resolve
  cohbin decode classes --file ./classes.bin --format yaml
  cohbin decode powers --workers 8 --metrics-file ./cohbin.prom`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := runtimeFrom(cmd)
		if err != nil {
			return err
		}
		kind := args[0]
		if _, err := objects.Lookup(kind); err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		resolve, _ := cmd.Flags().GetBool("resolve")
		path, _ := cmd.Flags().GetString("file")
		metricsFile, _ := cmd.Flags().GetString("metrics-file")
		if cmd.Flags().Changed("workers") {
			rt.config.Decode.Workers, _ = cmd.Flags().GetInt("workers")
		}

		reg := prometheus.NewRegistry()
		m := metrics.New(reg)

		var decoded *objects.Decoded
		if path != "" && !resolve {
			// Loose files need no archive unless strings are resolved
			c := catalog.New(nil, catalog.Options{Config: rt.config, Logger: rt.logger, Metrics: m})
			decoded, err = decodeFile(c, kind, path, false)
		} else {
			c, openErr := openCatalog(rt, m)
			if openErr != nil {
				return openErr
			}
			defer c.Close()
			if path != "" {
				decoded, err = decodeFile(c, kind, path, resolve)
			} else {
				decoded, err = c.Decode(kind, resolve)
			}
		}
		if err != nil {
			return err
		}

		for _, d := range decoded.Failures {
			fmt.Fprintf(cmd.ErrOrStderr(), "record %d: %s\n", d.Index, d.Message)
		}
		for _, d := range decoded.Warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "record %d: warning: %s\n", d.Index, d.Message)
		}

		if metricsFile != "" {
			if err := metrics.WriteTextfile(metricsFile, reg); err != nil {
				return fmt.Errorf("failed to write metrics: %w", err)
			}
		}

		return writeOutput(cmd.OutOrStdout(), format, decoded.Records)
	},
}

func decodeFile(c *catalog.Catalog, kind, path string, resolve bool) (*objects.Decoded, error) {
	data, err := catalog.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.DecodeBytes(kind, path, data, resolve)
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().String("file", "", "Decode a loose bin file instead of the archive entry")
	decodeCmd.Flags().StringP("format", "f", "json", "Output format (json, yaml)")
	decodeCmd.Flags().BoolP("resolve", "r", false, "Resolve display-string keys through the message store")
	decodeCmd.Flags().IntP("workers", "w", 4, "Records decoded in parallel")
	decodeCmd.Flags().String("metrics-file", "", "Write decode metrics to this file in Prometheus text format")
}
