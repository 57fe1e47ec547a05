package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/ssargent/cohbin/pkg/parse7"
)

type poolString struct {
	Offset uint32 `json:"offset" yaml:"offset"`
	Text   string `json:"text" yaml:"text"`
}

// stringsCmd represents the strings command
var stringsCmd = &cobra.Command{
	Use:   "strings [entry]",
	Short: "Dump a bin file's string pool",
	Long: `Print every string in a bin file's pool with the offset records use to
refer to it.

Examples:
  cohbin strings bin/classes.bin
  cohbin strings --file ./classes.bin --format yaml`,
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

		p, err := parse7.ReadStrings(data)
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}

		out := make([]poolString, 0, p.Len())
		for _, off := range p.Offsets() {
			s, _ := p.Lookup(off)
			out = append(out, poolString{Offset: off, Text: s})
		}

		format, _ := cmd.Flags().GetString("format")
		if format != "table" {
			return writeOutput(cmd.OutOrStdout(), format, out)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		defer w.Flush()

		fmt.Fprintln(w, "OFFSET\tTEXT")
		for _, s := range out {
			fmt.Fprintf(w, "%d\t%s\n", s.Offset, strconv.Quote(s.Text))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stringsCmd)
	stringsCmd.Flags().String("file", "", "Read a loose bin file instead of an archive entry")
	stringsCmd.Flags().StringP("format", "f", "table", "Output format (table, json, yaml)")
}
