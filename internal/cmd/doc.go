// Package cmd provides the command-line interface implementation for snapsum.
//
// This package contains all the subcommand implementations for the snapsum CLI
// tool. It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator and entry point
//   - scan: Directory tree hashing and snapshot writing
//   - dupes: Duplicate-content reporting from live scans or saved snapshots
//   - stats: MIME-type breakdown of a directory tree
//   - count: File counting utilities
//   - hash: Single-file digest printing
//
// Each command is implemented as a separate file with its own constructor
// function that returns a *cobra.Command. The root command coordinates all
// subcommands and groups them into snapshot and utility operations.
//
// The package leverages the scan package for the traversal and hashing
// pipeline and the snapshot package for the on-disk format.
package cmd
