package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/haltialabs/snapsum/internal/scan"
)

// NewCountCmd creates and returns the count subcommand for the snapsum CLI.
// It provides file counting functionality for directory trees.
func NewCountCmd() *cobra.Command {
	var (
		path         string
		showProgress bool
	)

	cmd := &cobra.Command{
		Use:   "count [PATH]",
		Short: "Count files in a directory tree",
		Long: `Count the total number of files in a directory tree.

This is a utility command that recursively walks through a directory and
counts all regular files (excluding directories and symlinks), with the
same tolerance for unreadable directories as the scan command. Useful for
getting quick statistics about directory contents.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) > 0 {
				path = args[0]
			}
			runCount(path, showProgress)
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "./", "Path to count files in")
	cmd.Flags().BoolVar(&showProgress, "progress", false, "Show progress every 10,000 files")

	return cmd
}

func runCount(path string, showProgress bool) {
	walker, err := scan.NewWalker(path)
	if err != nil {
		log.Fatalf("Error counting files: %v", err)
	}

	count := 0
	for range walker.Files(context.Background()) {
		count++
		if showProgress && count%10000 == 0 {
			fmt.Printf("Progress: %d files counted\n", count)
		}
	}

	fmt.Printf("Total files: %d\n", count)
	if skipped := walker.DirsSkipped(); skipped > 0 {
		fmt.Printf("Unreadable directories skipped: %d\n", skipped)
	}
}
