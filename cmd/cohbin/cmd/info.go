package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/ssargent/cohbin/pkg/parse7"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info [entry]",
	Short: "Show a bin file's header",
	Long: `Read the header of a bin file without decoding its records: signature,
string pool size and count, section size and record count.

Examples:
  cohbin info bin/powers.bin
  cohbin info --file ./powers.bin --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := runtimeFrom(cmd)
		if err != nil {
			return err
		}
		name, data, err := readInput(cmd, rt, args)
		if err != nil {
			return err
		}

		h, err := parse7.ReadHeader(data)
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}

		format, _ := cmd.Flags().GetString("format")
		if format != "table" {
			return writeOutput(cmd.OutOrStdout(), format, h)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		defer w.Flush()

		fmt.Fprintf(w, "File:\t%s\n", name)
		fmt.Fprintf(w, "Size:\t%s\n", humanize.IBytes(uint64(len(data))))
		fmt.Fprintf(w, "Signature:\t%s\n", h.Signature)
		fmt.Fprintf(w, "Checksum:\t%#08x\n", h.Checksum)
		fmt.Fprintf(w, "String pool:\t%s (%s strings)\n", humanize.IBytes(uint64(h.PoolSize)), humanize.Comma(int64(h.Strings)))
		fmt.Fprintf(w, "Section size:\t%s\n", humanize.IBytes(uint64(h.SectionSize)))
		fmt.Fprintf(w, "Records:\t%s\n", humanize.Comma(int64(h.RecordCount)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().String("file", "", "Read a loose bin file instead of an archive entry")
	infoCmd.Flags().StringP("format", "f", "table", "Output format (table, json, yaml)")
}
