package search

import "github.com/davzso/pharmadex-api/registryparser/entities"

// Deduplicate collapses historical revisions of the same nominal product to
// one current representative per (name, strength text) pair. Within a group
// the record with the latest ValidFrom wins; a record without a ValidFrom is
// older than any record with one. The order of first appearance of each group
// is preserved.
func Deduplicate(records []entities.ProductRecord) []entities.ProductRecord {
	if len(records) < 2 {
		return records
	}

	position := make(map[string]int, len(records))
	out := make([]entities.ProductRecord, 0, len(records))

	for i := range records {
		key := records[i].Name + "|" + records[i].StrengthText

		pos, seen := position[key]
		if !seen {
			position[key] = len(out)
			out = append(out, records[i])
			continue
		}

		if laterRevision(&records[i], &out[pos]) {
			out[pos] = records[i]
		}
	}

	return out
}

// laterRevision reports whether a supersedes b by validity start date
func laterRevision(a, b *entities.ProductRecord) bool {
	if a.ValidFrom == nil {
		return false
	}
	if b.ValidFrom == nil {
		return true
	}
	return a.ValidFrom.After(*b.ValidFrom)
}
