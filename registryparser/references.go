package registryparser

import (
	"errors"
	"io/fs"

	"github.com/davzso/pharmadex-api/logging"
	"github.com/davzso/pharmadex-api/registryparser/entities"
)

// parseReference reads one auxiliary two-column id→name table. Unlike the
// primary table, a missing auxiliary file only degrades the service: the
// vocabulary stays empty and lookups resolve to "unknown", so the table is
// returned empty rather than failing the whole load.
func parseReference(path string, label string) entities.ReferenceTable {
	table := make(entities.ReferenceTable)
	skippedMissingColumns := 0
	lineCount := 0

	err := readTSV(path, func(line int, fields []string) {
		lineCount++
		if len(fields) < 2 || fields[0] == "" {
			skippedMissingColumns++
			return
		}
		table[fields[0]] = fields[1]
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.Warn("Reference table missing, vocabulary will be empty",
				"table", label, "path", path)
		} else {
			logging.Warn("Reference table unreadable, vocabulary will be empty",
				"table", label, "path", path, "error", err)
		}
		return make(entities.ReferenceTable)
	}

	logSkips(label, lineCount, skippedMissingColumns, 0, 0, len(table))
	logging.Info("Reference table parsed", "table", label, "entries", len(table))

	return table
}
