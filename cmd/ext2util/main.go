// Command ext2util formats, inspects, and mutates ext2fs volume images from
// the command line, wrapping both the read and write sides of the package.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ext2util",
	Short: "Inspect and manipulate ext2fs volume images",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ext2util:", err)
		os.Exit(1)
	}
}
