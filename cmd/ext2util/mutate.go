package main

import (
	"path"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coursefs/ext2fs"
)

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <image> <path>",
	Short: "Create a directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWritableVolume(args[0], func(v *ext2fs.Volume) error {
			parent, base, err := splitParent(v, args[1])
			if err != nil {
				return err
			}
			_, err = v.Mkdir(parent, base, 0755)
			return err
		})
	},
}

var touchCmd = &cobra.Command{
	Use:   "touch <image> <path>",
	Short: "Create an empty regular file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWritableVolume(args[0], func(v *ext2fs.Volume) error {
			parent, base, err := splitParent(v, args[1])
			if err != nil {
				return err
			}
			_, err = v.Mkfile(parent, base, 0644)
			return err
		})
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <image> <path>",
	Short: "Remove a regular file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWritableVolume(args[0], func(v *ext2fs.Volume) error {
			parent, base, err := splitParent(v, args[1])
			if err != nil {
				return err
			}
			return v.Unlinkfile(parent, base)
		})
	},
}

var rmdirCmd = &cobra.Command{
	Use:   "rmdir <image> <path>",
	Short: "Remove an empty directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWritableVolume(args[0], func(v *ext2fs.Volume) error {
			parent, base, err := splitParent(v, args[1])
			if err != nil {
				return err
			}
			return v.Rmdir(parent, base)
		})
	},
}

var lnCmd = &cobra.Command{
	Use:   "ln <image> <target-path> <new-path>",
	Short: "Create a hard link to an existing regular file",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWritableVolume(args[0], func(v *ext2fs.Volume) error {
			targetIno, isDir, err := resolvePath(v, args[1])
			if err != nil {
				return err
			}
			if isDir {
				return ext2fs.ErrIsDir
			}
			parent, base, err := splitParent(v, args[2])
			if err != nil {
				return err
			}
			_, err = v.Mklink(parent, targetIno, base)
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(mkdirCmd, touchCmd, rmCmd, rmdirCmd, lnCmd)
}

// splitParent resolves the directory component of p and returns it along
// with p's base name, ready to pass to Mkfile/Mkdir/Mklink/Unlinkfile/Rmdir.
func splitParent(v *ext2fs.Volume, p string) (int, string, error) {
	dir, base := path.Split(strings.TrimSuffix(p, "/"))
	parent, isDir, err := resolvePath(v, dir)
	if err != nil {
		return 0, "", err
	}
	if !isDir {
		return 0, "", ext2fs.ErrNotDir
	}
	return parent, base, nil
}

// withWritableVolume opens image, mounts it, runs fn, and unmounts
// (flushing metadata) regardless of fn's outcome.
func withWritableVolume(image string, fn func(*ext2fs.Volume) error) error {
	dev, err := ext2fs.OpenFileDevice(image)
	if err != nil {
		return err
	}
	v, err := ext2fs.Mount(dev)
	if err != nil {
		dev.Close()
		return err
	}

	fnErr := fn(v)
	_, unmountErr := v.Unmount()
	closeErr := dev.Close()

	if fnErr != nil {
		return fnErr
	}
	if unmountErr != nil {
		return unmountErr
	}
	return closeErr
}
