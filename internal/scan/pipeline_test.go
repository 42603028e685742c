package scan

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haltialabs/snapsum/internal/snapshot"
)

func TestRunBasicTree(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.txt":   "hi",
		"b/c.txt": "bye",
	})
	output := filepath.Join(t.TempDir(), "snap.csv")

	sum, err := Run(context.Background(), Options{Root: root, Output: output})
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Processed)
	assert.Equal(t, 0, sum.Skipped)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", sum.ScanID.String())

	raw, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	require.Len(t, lines, 3, "header plus one line per file")
	assert.Equal(t, snapshot.Header, lines[0])

	records, err := snapshot.ReadFile(output)
	require.NoError(t, err)

	byName := map[string]string{}
	for _, rec := range records {
		assert.True(t, filepath.IsAbs(rec.Path), "paths must be absolute: %s", rec.Path)
		byName[filepath.Base(rec.Path)] = rec.Digest
	}
	assert.Equal(t,
		"8f434346648f6b96df89dda901c5176b10a6d83961dd3c1ac88b59b2dc327aa4",
		byName["a.txt"], `digest of "hi"`)
	assert.Equal(t,
		"b49f425a7e1f9cff3856329ada223f2f9d368f15a00cf48df16ca95986137fe8",
		byName["c.txt"], `digest of "bye"`)
}

func TestRunMissingRoot(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "snap.csv")

	_, err := Run(context.Background(), Options{
		Root:   filepath.Join(dir, "no-such-root"),
		Output: output,
	})
	require.Error(t, err)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "no output file may be created for an invalid root")
}

func TestRunIdempotent(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"x.bin": "same bytes",
		"y/z":   "other bytes",
	})

	outA := filepath.Join(t.TempDir(), "a.csv")
	outB := filepath.Join(t.TempDir(), "b.csv")

	_, err := Run(context.Background(), Options{Root: root, Output: outA})
	require.NoError(t, err)
	_, err = Run(context.Background(), Options{Root: root, Output: outB})
	require.NoError(t, err)

	recsA, err := snapshot.ReadFile(outA)
	require.NoError(t, err)
	recsB, err := snapshot.ReadFile(outB)
	require.NoError(t, err)

	setOf := func(recs []snapshot.Record) map[snapshot.Record]bool {
		set := make(map[snapshot.Record]bool, len(recs))
		for _, r := range recs {
			set[r] = true
		}
		return set
	}
	assert.Equal(t, setOf(recsA), setOf(recsB))
}

func TestRunAwkwardFileNames(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		`quo"ted.txt`:    "q",
		"com,ma.txt":     "c",
		"plain name.txt": "p",
	})
	output := filepath.Join(t.TempDir(), "snap.csv")

	sum, err := Run(context.Background(), Options{Root: root, Output: output})
	require.NoError(t, err)
	require.Equal(t, 3, sum.Processed)

	// A standard CSV reader must recover the exact original paths.
	records, err := snapshot.ReadFile(output)
	require.NoError(t, err)

	var bases []string
	for _, rec := range records {
		bases = append(bases, filepath.Base(rec.Path))
	}
	assert.ElementsMatch(t, []string{`quo"ted.txt`, "com,ma.txt", "plain name.txt"}, bases)
}

func TestRunSkipsUnreadableFile(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("running as root, permission bits are not enforced")
	}

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"ok.txt":     "fine",
		"locked.txt": "secret",
	})
	locked := filepath.Join(root, "locked.txt")
	require.NoError(t, os.Chmod(locked, 0000))
	t.Cleanup(func() { os.Chmod(locked, 0644) })

	output := filepath.Join(t.TempDir(), "snap.csv")
	sum, err := Run(context.Background(), Options{Root: root, Output: output})
	require.NoError(t, err, "per-file access errors must not fail the scan")

	assert.Equal(t, 1, sum.Processed)
	assert.Equal(t, 1, sum.Skipped)

	records, err := snapshot.ReadFile(output)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ok.txt", filepath.Base(records[0].Path))
}

func TestRunUnreadableSubtreeSparesSiblings(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("running as root, permission bits are not enforced")
	}

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"open/a.txt":   "a",
		"closed/b.txt": "b",
	})
	closed := filepath.Join(root, "closed")
	require.NoError(t, os.Chmod(closed, 0000))
	t.Cleanup(func() { os.Chmod(closed, 0755) })

	output := filepath.Join(t.TempDir(), "snap.csv")
	sum, err := Run(context.Background(), Options{Root: root, Output: output})
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Processed)
	records, err := snapshot.ReadFile(output)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a.txt", filepath.Base(records[0].Path))
}
