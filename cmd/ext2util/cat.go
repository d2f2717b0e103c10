package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/coursefs/ext2fs"
)

var catCmd = &cobra.Command{
	Use:   "cat <image> <path>",
	Short: "Print a regular file's contents",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, dev, err := openVolume(args[0])
		if err != nil {
			return err
		}
		defer dev.Close()

		ino, isDir, err := resolvePath(v, args[1])
		if err != nil {
			return err
		}
		if isDir {
			return ext2fs.ErrIsDir
		}

		st, err := v.Stat(ino)
		if err != nil {
			return err
		}
		buf := make([]byte, st.Size)
		n, err := v.Pread(ino, buf, 0)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(buf[:n])
		return err
	},
}

func init() {
	rootCmd.AddCommand(catCmd)
}
