package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/ssargent/cohbin/pkg/catalog"
)

// readInput returns the bytes named by --file, or by the entry argument
// when no file is given
func readInput(cmd *cobra.Command, rt *runtime, args []string) (name string, data []byte, err error) {
	path, _ := cmd.Flags().GetString("file")
	if path != "" {
		data, err := catalog.ReadFile(path)
		return path, data, err
	}
	if len(args) == 0 {
		return "", nil, errors.New("an archive entry or --file is required")
	}

	c, err := openCatalog(rt, nil)
	if err != nil {
		return "", nil, err
	}
	defer c.Close()

	data, err = c.Entry(args[0])
	return args[0], data, err
}
