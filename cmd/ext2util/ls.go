package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coursefs/ext2fs"
)

var lsCmd = &cobra.Command{
	Use:   "ls <image> [path]",
	Short: "List the entries of a directory",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, dev, err := openVolume(args[0])
		if err != nil {
			return err
		}
		defer dev.Close()

		ino := v.RootInode()
		if len(args) == 2 {
			ino, _, err = resolvePath(v, args[1])
			if err != nil {
				return err
			}
		}

		dir, err := v.Opendir(ino)
		if err != nil {
			return err
		}
		defer dir.Close()

		for _, e := range dir.Readdir() {
			kind := "f"
			if e.IsDir {
				kind = "d"
			}
			fmt.Printf("%s %6d %s\n", kind, e.Ino, e.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}

// resolvePath walks a slash-separated path from the volume's root,
// following each directory entry in turn.
func resolvePath(v *ext2fs.Volume, p string) (int, bool, error) {
	ino := v.RootInode()
	isDir := true
	for _, part := range strings.Split(strings.Trim(p, "/"), "/") {
		if part == "" {
			continue
		}
		var err error
		ino, isDir, err = v.Lookup(ino, part)
		if err != nil {
			return 0, false, err
		}
	}
	return ino, isDir, nil
}

func openVolume(path string) (*ext2fs.Volume, *ext2fs.FileDevice, error) {
	dev, err := ext2fs.OpenFileDevice(path)
	if err != nil {
		return nil, nil, err
	}
	v, err := ext2fs.Mount(dev)
	if err != nil {
		dev.Close()
		return nil, nil, err
	}
	return v, dev, nil
}
