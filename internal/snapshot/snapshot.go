// Package snapshot defines the on-disk snapshot format and its reader and
// writer. A snapshot is UTF-8 text: one header line followed by one line per
// hashed file, `"<path>",<digest>`. The path field is always quoted with
// embedded quotes doubled, which keeps the file parseable by any standard
// CSV reader.
package snapshot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Header is the first line of every snapshot file.
const Header = "FullPath,Hash"

// ErrBadHeader indicates a snapshot file that does not start with Header.
var ErrBadHeader = errors.New("snapshot header mismatch")

// Record is one hashed file: an absolute path and the lowercase hex SHA-256
// digest of its content at read time. Records are immutable and written
// exactly once, in encounter order.
type Record struct {
	Path   string
	Digest string
}

// Writer appends records to a snapshot stream. Each record is written
// through eagerly so that, should a later record fail, everything already
// written remains a valid partial snapshot.
type Writer struct {
	w     io.Writer
	count int
}

// NewWriter writes the header line to w and returns a Writer for it.
func NewWriter(w io.Writer) (*Writer, error) {
	if _, err := io.WriteString(w, Header+"\n"); err != nil {
		return nil, err
	}
	return &Writer{w: w}, nil
}

// Write appends one record. The path is always quoted; embedded double
// quotes are escaped by doubling. encoding/csv is deliberately not used
// here: it only quotes fields when forced to, and the format requires the
// path field quoted unconditionally.
func (w *Writer) Write(rec Record) error {
	escaped := strings.ReplaceAll(rec.Path, `"`, `""`)
	if _, err := fmt.Fprintf(w.w, "\"%s\",%s\n", escaped, rec.Digest); err != nil {
		return err
	}
	w.count++
	return nil
}

// Count returns the number of records written so far, excluding the header.
func (w *Writer) Count() int {
	return w.count
}

// Read parses a snapshot stream back into records, validating the header.
func Read(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading snapshot header: %w", err)
	}
	if strings.Join(head, ",") != Header {
		return nil, fmt.Errorf("%w: got %q", ErrBadHeader, strings.Join(head, ","))
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, Record{Path: row[0], Digest: row[1]})
	}
}

// ReadFile parses the snapshot at path.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
