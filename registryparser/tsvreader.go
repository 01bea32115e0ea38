// Package registryparser loads the national product registry exports (tab
// separated text files) into typed in-memory records and reference tables.
package registryparser

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/davzso/pharmadex-api/logging"
	"golang.org/x/text/encoding/charmap"
)

// maxLineSize covers the widest rows seen in registry exports (long substance
// lists) with plenty of headroom.
const maxLineSize = 1 << 20

// readTSV reads a registry export file and calls fn for every data row.
// The first line is the column header and is skipped; empty lines are skipped
// silently. Fields are tab separated and may be wrapped in double quotes,
// which are stripped. Exports are UTF-8 or ISO-8859-2 depending on the
// publishing tool, so non-UTF-8 content is decoded from Latin-2.
func readTSV(path string, fn func(line int, fields []string)) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var reader *bufio.Scanner
	if utf8.Valid(raw) {
		reader = bufio.NewScanner(bytes.NewReader(raw))
	} else {
		decoded := charmap.ISO8859_2.NewDecoder().Reader(bytes.NewReader(raw))
		reader = bufio.NewScanner(decoded)
	}
	reader.Buffer(make([]byte, 64*1024), maxLineSize)

	lineNo := 0
	for reader.Scan() {
		lineNo++
		line := reader.Text()

		// First line is the column header
		if lineNo == 1 {
			continue
		}
		if len(line) == 0 {
			continue
		}

		fields := strings.Split(line, "\t")
		for i, f := range fields {
			fields[i] = unquote(f)
		}

		fn(lineNo, fields)
	}

	if err := reader.Err(); err != nil {
		return fmt.Errorf("failed to scan %s: %w", path, err)
	}

	return nil
}

// unquote strips one layer of double-quote wrapping and surrounding
// whitespace from a field.
func unquote(field string) string {
	field = strings.TrimSpace(field)
	if len(field) >= 2 && field[0] == '"' && field[len(field)-1] == '"' {
		field = field[1 : len(field)-1]
	}
	return field
}

// col returns fields[i] or "" when the row is short. The loaders require a
// minimum column count up front; trailing optional columns go through col so
// a short-but-acceptable row never panics.
func col(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

// logSkips emits one summary line for a parsed file when any rows were
// dropped, mirroring how row-level failures are reported across all loaders.
func logSkips(file string, total, missingColumns, formatErrors, expired, parsed int) {
	if missingColumns > 0 || formatErrors > 0 || expired > 0 {
		logging.Info(file+" skip statistics",
			"missing_columns", missingColumns,
			"format_errors", formatErrors,
			"expired", expired,
			"total_lines", total,
			"records_parsed", parsed)
	}
}
