package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statCmd = &cobra.Command{
	Use:   "stat <image> <path>",
	Short: "Print an entry's attributes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, dev, err := openVolume(args[0])
		if err != nil {
			return err
		}
		defer dev.Close()

		ino, _, err := resolvePath(v, args[1])
		if err != nil {
			return err
		}
		st, err := v.Stat(ino)
		if err != nil {
			return err
		}
		fmt.Printf("inode:  %d\n", st.Ino)
		fmt.Printf("mode:   %#o\n", st.Mode)
		fmt.Printf("uid:    %d\n", st.UID)
		fmt.Printf("gid:    %d\n", st.GID)
		fmt.Printf("size:   %d\n", st.Size)
		fmt.Printf("nlink:  %d\n", st.NLink)
		fmt.Printf("ctime:  %s\n", st.CTime)
		fmt.Printf("mtime:  %s\n", st.MTime)
		return nil
	},
}

var statfsCmd = &cobra.Command{
	Use:   "statfs <image>",
	Short: "Print overall volume usage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, dev, err := openVolume(args[0])
		if err != nil {
			return err
		}
		defer dev.Close()

		sf := v.Statfs()
		fmt.Printf("block size:    %d\n", sf.BlockSize)
		fmt.Printf("total blocks:  %d\n", sf.TotalBlocks)
		fmt.Printf("free blocks:   %d\n", sf.FreeBlocks)
		fmt.Printf("total inodes:  %d\n", sf.TotalInodes)
		fmt.Printf("free inodes:   %d\n", sf.FreeInodes)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statCmd, statfsCmd)
}
