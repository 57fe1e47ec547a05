package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <kind>",
	Short: "Decode a kind and store each record",
	Long: `Decode the bin file for a kind and store every record as a JSON document
in the export store under the data directory. The id of each stored record is
printed in record order.

Examples:
  cohbin export powers --resolve
  cohbin export classes --data-dir ./exports`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := runtimeFrom(cmd)
		if err != nil {
			return err
		}
		kind := args[0]
		resolve, _ := cmd.Flags().GetBool("resolve")
		if cmd.Flags().Changed("data-dir") {
			rt.config.DataDir, _ = cmd.Flags().GetString("data-dir")
		}

		c, err := openCatalog(rt, nil)
		if err != nil {
			return err
		}
		defer c.Close()

		decoded, err := c.Decode(kind, resolve)
		if err != nil {
			return err
		}
		items, err := decoded.MarshalRecords()
		if err != nil {
			return err
		}

		if err := os.MkdirAll(rt.config.DataDir, 0o750); err != nil {
			return fmt.Errorf("failed to create data dir: %w", err)
		}
		store, err := container.GetExportStoreOpener()(rt.config.DataDir)
		if err != nil {
			return err
		}
		defer store.Close()

		ids, err := store.CreateBatch(kind, items)
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), id.String())
		}

		rt.logger.Info().
			Str("kind", kind).
			Int("records", len(ids)).
			Int("failures", len(decoded.Failures)).
			Str("data_dir", rt.config.DataDir).
			Msg("exported records")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().BoolP("resolve", "r", false, "Resolve display-string keys before storing")
	exportCmd.Flags().StringP("data-dir", "d", "./data", "Directory of the export store")
}
