package cmd

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/taigrr/colorhash"

	"github.com/haltialabs/snapsum/internal/scan"
	"github.com/haltialabs/snapsum/internal/snapshot"
)

// NewDupesCmd creates and returns the dupes subcommand for the snapsum CLI.
// It groups files by content digest and reports groups with more than one
// member, either from a live scan or from a saved snapshot.
func NewDupesCmd() *cobra.Command {
	var snapshotPath string

	cmd := &cobra.Command{
		Use:   "dupes [ROOT]",
		Short: "Report files with identical content",
		Long: `Report files with identical content.

Files are grouped by their SHA-256 digest; any group with more than one
member is a set of exact duplicates. By default the tree under ROOT is
scanned live; with --snapshot, a previously written snapshot file is used
instead and no filesystem access happens.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			runDupes(root, snapshotPath)
		},
	}

	cmd.Flags().StringVarP(&snapshotPath, "snapshot", "s", "", "Group a saved snapshot instead of scanning live")

	return cmd
}

func runDupes(root, snapshotPath string) {
	var records []snapshot.Record
	if snapshotPath != "" {
		var err error
		records, err = snapshot.ReadFile(snapshotPath)
		if err != nil {
			log.Fatalf("Failed to read snapshot %s: %v", snapshotPath, err)
		}
	} else {
		walker, err := scan.NewWalker(root)
		if err != nil {
			log.Fatalf("Error scanning %s: %v", root, err)
		}
		for path := range walker.Files(context.Background()) {
			digest, err := scan.DigestFile(path)
			if err != nil {
				continue
			}
			records = append(records, snapshot.Record{Path: path, Digest: digest})
		}
	}

	groups := groupByDigest(records)
	if len(groups) == 0 {
		fmt.Println("No duplicates found.")
		return
	}

	dupeFiles := 0
	for _, g := range groups {
		// One terminal color per digest so groups are visually separable.
		color := lipgloss.Color(strconv.Itoa(17 + int(colorhash.HashString(g.digest))%214))
		style := lipgloss.NewStyle().Foreground(color).Bold(true)

		fmt.Printf("%s (%d files)\n", style.Render(g.digest), len(g.paths))
		for _, p := range g.paths {
			fmt.Printf("  %s\n", p)
		}
		dupeFiles += len(g.paths)
	}
	fmt.Printf("\n%d duplicate groups, %d files\n", len(groups), dupeFiles)
}

type dupeGroup struct {
	digest string
	paths  []string
}

// groupByDigest collects records into duplicate groups, dropping digests
// with a single member. Groups come back sorted by digest and paths sorted
// within each group, so output is stable across runs.
func groupByDigest(records []snapshot.Record) []dupeGroup {
	byDigest := make(map[string][]string)
	for _, rec := range records {
		byDigest[rec.Digest] = append(byDigest[rec.Digest], rec.Path)
	}

	var groups []dupeGroup
	for digest, paths := range byDigest {
		if len(paths) < 2 {
			continue
		}
		sort.Strings(paths)
		groups = append(groups, dupeGroup{digest: digest, paths: paths})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].digest < groups[j].digest })
	return groups
}
