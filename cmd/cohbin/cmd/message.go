package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// messageCmd represents the message command
var messageCmd = &cobra.Command{
	Use:   "message <key>...",
	Short: "Resolve message keys",
	Long: `Look up display-string keys in the message store and print their text.

Example:
  cohbin message P1234567890 P0987654321`,
	Args: cobra.MinimumNArgs(1),
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

		verbose, _ := cmd.Flags().GetBool("verbose")
		for _, key := range args {
			e, err := c.Message(key)
			if err != nil {
				return err
			}
			if verbose {
				if err := writeOutput(cmd.OutOrStdout(), "json", e); err != nil {
					return err
				}
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", key, e.Message)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(messageCmd)
	messageCmd.Flags().BoolP("verbose", "v", false, "Print the full entry as JSON")
}
