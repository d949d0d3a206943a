// Package wafer parses semiconductor wafer test CSV exports and
// extracts out-of-limit measurements.
//
// The exports are semi-structured spreadsheets: a block of metadata
// rows, then a header block (test-group labels, test-item labels,
// upper/lower limits, fixed die-coordinate headers plus units), then
// one data row per measured die. See Resolve for the exact layout.
package wafer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// Table is a raw CSV file held in memory: ordered rows of untyped
// cells, padded to a uniform width. Immutable once loaded.
type Table struct {
	// File is the path the table was loaded from, used in error messages.
	File string
	// Rows holds every row of the file, each padded to the same length.
	Rows [][]string
}

// Encodings lists the supported input charsets, sorted.
func Encodings() []string {
	names := make([]string, 0, len(decoders))
	for name := range decoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var decoders = map[string]encoding.Encoding{
	"utf-8":     nil,
	"shift-jis": japanese.ShiftJIS,
	"utf-16le":  unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	"utf-16be":  unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
}

// DecoderFor returns the decoder for a charset name. The empty name
// means UTF-8 (no transformation). Unknown names are a config error,
// not a FormatError, since they never depend on file contents.
func DecoderFor(name string) (encoding.Encoding, error) {
	if name == "" {
		return nil, nil
	}
	enc, ok := decoders[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown encoding %q (supported: %s)", name, strings.Join(Encodings(), ", "))
	}
	return enc, nil
}

// Load reads a CSV file into a Table, decoding it from the named
// charset first. Japanese ATE vendors commonly export Shift-JIS, so
// the charset has to be configurable per site.
func Load(path, charset string) (*Table, error) {
	enc, err := DecoderFor(charset)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var reader io.Reader = f
	if enc != nil {
		reader = enc.NewDecoder().Reader(f)
	}

	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1 // export tools pad rows inconsistently
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return &Table{File: path, Rows: padRows(rows)}, nil
}

// padRows extends every row to the width of the widest row so column
// access never has to bounds-check.
func padRows(rows [][]string) [][]string {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	for i, row := range rows {
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			rows[i] = padded
		}
	}
	return rows
}

// isEmptyCell reports whether a cell carries no value.
func isEmptyCell(s string) bool {
	return strings.TrimSpace(s) == ""
}
