package cmd

import (
	"github.com/haltialabs/snapsum/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the snapsum CLI.
// It sets up all subcommands, command groups, and basic configuration.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "snapsum",
		Short: "snapsum - point-in-time hash snapshots of directory trees",
		Long: `snapsum takes a point-in-time inventory of a directory tree.

It walks every regular file beneath a root directory, computes a SHA-256
digest of each file's content, and records the results as a CSV snapshot
(FullPath,Hash). Snapshots are useful for integrity verification, duplicate
detection, and change auditing on a single machine.

Use subcommands to perform different operations:
  - scan: Walk a directory tree and write a hash snapshot
  - dupes: Report files with identical content
  - stats: Summarize a tree by detected MIME type
  - count: Count files in directory trees
  - hash: Print the digest of a single file`,
		Version: version.GetFullVersion(),
	}

	groupSnapshot := "snapshot"
	groupUtilities := "utilities"

	// Add command groups for better organization
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupSnapshot,
		Title: "Snapshot Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	scanCmd := NewScanCmd()
	dupesCmd := NewDupesCmd()
	statsCmd := NewStatsCmd()
	countCmd := NewCountCmd()
	hashCmd := NewHashCmd()

	scanCmd.GroupID = groupSnapshot
	dupesCmd.GroupID = groupSnapshot
	statsCmd.GroupID = groupUtilities
	countCmd.GroupID = groupUtilities
	hashCmd.GroupID = groupUtilities

	// Add subcommands
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(dupesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(hashCmd)

	return rootCmd
}
