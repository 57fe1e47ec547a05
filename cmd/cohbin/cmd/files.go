package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// filesCmd represents the files command
var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List archive entries",
	Long: `List the entries of the configured pigg archive with their sizes.

Examples:
  cohbin files --archive ./piggs/bin.pigg
  cohbin files --format json`,
	Args: cobra.NoArgs,
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

		format, _ := cmd.Flags().GetString("format")
		files := c.Files()
		if format != "table" {
			return writeOutput(cmd.OutOrStdout(), format, files)
		}

		if len(files) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No entries found")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		defer w.Flush()

		fmt.Fprintln(w, "NAME\tSIZE\tPACKED\tMODIFIED")
		for _, f := range files {
			packed := "stored"
			if f.PackedSize != 0 {
				packed = humanize.IBytes(uint64(f.PackedSize))
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				f.Name,
				humanize.IBytes(uint64(f.Size)),
				packed,
				f.Modified.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(filesCmd)
	filesCmd.Flags().StringP("format", "f", "table", "Output format (table, json, yaml)")
}
