package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/haltialabs/snapsum/internal/scan"
)

// NewHashCmd creates and returns the hash subcommand for the snapsum CLI.
// It prints the SHA-256 digest of a single file.
func NewHashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash FILE",
		Short: "Print the SHA-256 digest of a single file",
		Long: `Print the SHA-256 digest of a single file.

The digest is the same lowercase hexadecimal value a scan would record for
the file, so the output can be compared directly against snapshot lines.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			digest, err := scan.DigestFile(args[0])
			if err != nil {
				log.Fatalf("Failed to hash %s: %v", args[0], err)
			}
			fmt.Printf("%s  %s\n", digest, args[0])
		},
	}

	return cmd
}
