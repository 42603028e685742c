// Package main provides the snapsum command-line interface.
//
// snapsum takes a point-in-time inventory of a directory tree: it walks
// every regular file beneath a root, computes a SHA-256 digest of each
// file's content, and writes the results as a CSV snapshot suitable for
// integrity checks, duplicate detection, or change auditing.
//
// The main binary supports multiple subcommands:
//   - scan: Walk a directory tree and write a hash snapshot
//   - dupes: Report files with identical content
//   - stats: Summarize a tree by detected MIME type
//   - count: Count files in directory trees
//   - hash: Print the digest of a single file
package main
