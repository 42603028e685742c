package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	"github.com/haltialabs/snapsum/internal/scan"
)

var statsHeaderStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#7D56F4")).
	Bold(true)

// NewStatsCmd creates and returns the stats subcommand for the snapsum CLI.
// It summarizes a directory tree by detected MIME type.
func NewStatsCmd() *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "stats [PATH]",
		Short: "Summarize a directory tree by detected MIME type",
		Long: `Summarize a directory tree by detected MIME type.

Each regular file is sniffed by content (not extension) and tallied by MIME
type with a file count and cumulative size. Files that cannot be read are
skipped, same as during a scan.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			path := "./"
			if len(args) > 0 {
				path = args[0]
			}
			runStats(path, top)
		},
	}

	cmd.Flags().IntVarP(&top, "top", "t", 20, "Number of MIME types to show")

	return cmd
}

type mimeTally struct {
	mime  string
	count int
	bytes int64
}

func runStats(path string, top int) {
	walker, err := scan.NewWalker(path)
	if err != nil {
		log.Fatalf("Error scanning %s: %v", path, err)
	}

	tallies := make(map[string]*mimeTally)
	total := 0
	for p := range walker.Files(context.Background()) {
		mt, err := mimetype.DetectFile(p)
		if err != nil {
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			continue
		}

		t, ok := tallies[mt.String()]
		if !ok {
			t = &mimeTally{mime: mt.String()}
			tallies[mt.String()] = t
		}
		t.count++
		t.bytes += info.Size()
		total++
	}

	sorted := make([]*mimeTally, 0, len(tallies))
	for _, t := range tallies {
		sorted = append(sorted, t)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].mime < sorted[j].mime
	})
	if top > 0 && len(sorted) > top {
		sorted = sorted[:top]
	}

	fmt.Println(statsHeaderStyle.Render(fmt.Sprintf("%-48s %10s %12s", "MIME type", "files", "bytes")))
	for _, t := range sorted {
		fmt.Printf("%-48s %10d %12d\n", t.mime, t.count, t.bytes)
	}
	fmt.Printf("\nTotal files: %d\n", total)
}
