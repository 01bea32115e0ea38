package search

import (
	"sort"
	"strings"

	"github.com/davzso/pharmadex-api/registryparser/entities"
)

// SortRecords orders records in place by the requested field (name,
// manufacturer or atc; anything else falls back to name), ascending unless
// dir is "desc". Manufacturer ordering uses the resolved company name, so the
// sort matches what callers see. The sort is stable: equal keys keep their
// deduplicated order.
func SortRecords(records []entities.ProductRecord, field, dir string, companies entities.ReferenceTable) {
	key := func(r *entities.ProductRecord) string {
		switch field {
		case entities.SortByManufacturer:
			return companies.Resolve(manufacturerID(r))
		case entities.SortByATC:
			return r.ATCCode
		default:
			return r.Name
		}
	}

	descending := dir == entities.DirDesc

	sort.SliceStable(records, func(i, j int) bool {
		a := strings.ToLower(key(&records[i]))
		b := strings.ToLower(key(&records[j]))
		if descending {
			return a > b
		}
		return a < b
	})
}

// Paginate returns the slice [page*size, page*size+size) clipped to the
// available length. A page beyond the result count yields an empty slice,
// never an error.
func Paginate(records []entities.ProductRecord, page, size int) []entities.ProductRecord {
	start := page * size
	if start >= len(records) || start < 0 {
		return []entities.ProductRecord{}
	}

	end := start + size
	if end > len(records) {
		end = len(records)
	}

	return records[start:end]
}
