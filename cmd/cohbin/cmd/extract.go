package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <entry>",
	Short: "Write an archive entry's inflated bytes",
	Long: `Inflate one archive entry and write it to a file, or to stdout when
no output is given.

Examples:
  cohbin extract bin/powers.bin -o powers.bin
  cohbin extract texts/English/clientmessages-res.bin > messages.bin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := runtimeFrom(cmd)
		if err != nil {
			return err
		}
		c, err := openCatalog(rt, nil)
		if err != nil {
			return err
		}
		defer c.Close()

		data, err := c.Entry(args[0])
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}

		if err := os.MkdirAll(filepath.Dir(out), 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		rt.logger.Info().Str("entry", args[0]).Str("output", out).Int("bytes", len(data)).Msg("extracted entry")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
}
