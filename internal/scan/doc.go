// Package scan implements the traversal and hashing pipeline behind snapsum.
//
// The pipeline has three cooperating parts, all running on one logical
// thread:
//
//   - Walker: an explicit-stack, depth-first traversal that lazily yields
//     regular file paths under a root and treats unreadable directories as
//     empty instead of failing the scan.
//   - Hasher: streams each file through SHA-256 and renders the digest as
//     lowercase hex, with per-file errors classified and skipped.
//   - Reporter: samples the running file count and keeps a progress line
//     fresh without ever influencing control flow.
//
// Run wires the three together against a snapshot sink. The only errors
// that cross the package boundary are an invalid scan root and a failure
// to write the snapshot itself; everything else surfaces as diagnostics.
package scan
