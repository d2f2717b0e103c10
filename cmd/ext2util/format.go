package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/coursefs/ext2fs"
)

var (
	formatIgnoreCase bool
	formatFoldCase   bool
	formatBlocks     int
)

var formatCmd = &cobra.Command{
	Use:   "format <image>",
	Short: "Create a new ext2fs volume image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, err := ext2fs.CreateFileDevice(args[0], formatBlocks)
		if err != nil {
			return err
		}
		defer dev.Close()
		return ext2fs.Format(dev, formatIgnoreCase, formatFoldCase)
	},
}

func init() {
	flags := pflag.NewFlagSet("format", pflag.ContinueOnError)
	flags.BoolVar(&formatIgnoreCase, "ignore-case", false, "make lookups ASCII-case-insensitive")
	flags.BoolVar(&formatFoldCase, "fold-case", false, "upper-case names at creation (implies --ignore-case)")
	flags.IntVar(&formatBlocks, "blocks", 4096, "number of blocks in the new volume")
	formatCmd.Flags().AddFlagSet(flags)
	rootCmd.AddCommand(formatCmd)
}
