package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ssargent/cohbin/pkg/pigg"
)

// packCmd represents the pack command
var packCmd = &cobra.Command{
	Use:   "pack <dir>",
	Short: "Build a pigg archive from a directory",
	Long: `Write every file under a directory into a new pigg archive. Entry names
are the slash-separated paths relative to the directory.

Example:
  cohbin pack ./extracted -o ./piggs/bin.pigg`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := runtimeFrom(cmd)
		if err != nil {
			return err
		}
		root := args[0]
		out, _ := cmd.Flags().GetString("output")
		stored, _ := cmd.Flags().GetBool("stored")

		var files []pigg.File
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			files = append(files, pigg.File{
				Name:     filepath.ToSlash(rel),
				Data:     data,
				Stored:   stored,
				Modified: info.ModTime(),
			})
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", root, err)
		}

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		if err := pigg.Write(f, files); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}

		rt.logger.Info().Str("output", out).Int("files", len(files)).Msg("packed archive")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(packCmd)
	packCmd.Flags().StringP("output", "o", "out.pigg", "Archive to write")
	packCmd.Flags().Bool("stored", false, "Store entries uncompressed")
}
