package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/cobra"

	"github.com/haltialabs/snapsum/internal/logging"
	"github.com/haltialabs/snapsum/internal/prompt"
	"github.com/haltialabs/snapsum/internal/scan"
)

// NewScanCmd creates and returns the scan subcommand for the snapsum CLI.
// It walks a directory tree, hashes every regular file, and writes the
// snapshot CSV.
func NewScanCmd() *cobra.Command {
	var (
		output      string
		excludeFrom string
		interactive bool
		quiet       bool
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "scan [ROOT]",
		Short: "Walk a directory tree and write a hash snapshot",
		Long: `Walk a directory tree and write a hash snapshot.

Every regular file beneath ROOT is streamed through SHA-256 and recorded as
one CSV line in the output file. Unreadable directories and files are logged
and skipped; the scan itself always runs to completion unless the root is
missing. Symlinks are never followed.

With --interactive, both paths are prompted for with editable defaults.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			runScan(root, output, excludeFrom, interactive, quiet, verbose)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "snapshot.csv", "Path of the snapshot file to write")
	cmd.Flags().StringVar(&excludeFrom, "exclude-from", "", "File with gitignore-style patterns to exclude")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Prompt for scan root and output path")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress the progress line")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func runScan(root, output, excludeFrom string, interactive, quiet, verbose bool) {
	if err := logging.Init(verbose); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}

	if interactive {
		var err error
		if root, err = prompt.Ask("Scan root", root); err != nil {
			log.Fatalf("Aborted: %v", err)
		}
		if output, err = prompt.Ask("Output file", output); err != nil {
			log.Fatalf("Aborted: %v", err)
		}
	}

	var matcher *ignore.GitIgnore
	if excludeFrom != "" {
		var err error
		matcher, err = ignore.CompileIgnoreFile(excludeFrom)
		if err != nil {
			log.Fatalf("Failed to read exclude file %s: %v", excludeFrom, err)
		}
	}

	var reporter *scan.Reporter
	if !quiet {
		reporter = scan.NewReporter(os.Stderr, scan.DefaultBatchSize, scan.DefaultInterval)
	}

	// Interrupt stops the walk cleanly; records already written stay valid.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, err := scan.Run(ctx, scan.Options{
		Root:     root,
		Output:   output,
		Exclude:  matcher,
		Logger:   logging.L(),
		Reporter: reporter,
	})
	if errors.Is(err, context.Canceled) {
		fmt.Printf("Scan interrupted; partial snapshot left at %s (%d files hashed)\n",
			summary.Output, summary.Processed)
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("Scan failed: %v", err)
	}

	fmt.Printf("Snapshot written to %s\n", summary.Output)
	fmt.Printf("  Scan ID:      %s\n", summary.ScanID)
	fmt.Printf("  Files hashed: %d\n", summary.Processed)
	if summary.Skipped > 0 {
		fmt.Printf("  Skipped:      %d (see diagnostics above)\n", summary.Skipped)
	}
	fmt.Printf("  Elapsed:      %s\n", summary.Elapsed)
}
