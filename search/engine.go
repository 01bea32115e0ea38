package search

import (
	"sort"
	"strings"

	"github.com/davzso/pharmadex-api/interfaces"
	"github.com/davzso/pharmadex-api/registryparser/entities"
)

// MaxSearchResults caps a free-text search so a short term cannot return the
// whole dataset to a caller.
const MaxSearchResults = 50

// Compile-time check to ensure Engine implements SearchEngine interface
var _ interfaces.SearchEngine = (*Engine)(nil)

// Engine answers queries over the snapshot held by the injected data store.
// It carries no state of its own: each call reads whichever snapshot is
// current at that moment.
type Engine struct {
	store interfaces.DataStore
}

// NewEngine creates a search engine reading from the given data store
func NewEngine(store interfaces.DataStore) *Engine {
	return &Engine{store: store}
}

// Search runs a free-text lookup for term and returns the deduplicated
// matches, capped at MaxSearchResults. An empty term matches everything.
func (e *Engine) Search(term string) []entities.ProductRecord {
	matches := Deduplicate(lookup(e.store.GetSnapshot(), term))
	if len(matches) > MaxSearchResults {
		matches = matches[:MaxSearchResults]
	}
	return matches
}

// Query evaluates a full FilterCriteria: free-text candidate selection,
// filter chain, deduplication, sort and pagination. TotalElements reflects
// the deduplicated match count before the page slice.
func (e *Engine) Query(criteria entities.FilterCriteria) entities.SearchResult {
	// One snapshot read for the whole query: every stage sees the same load
	snap := e.store.GetSnapshot()

	candidates := lookup(snap, criteria.Search)

	predicates := buildPredicates(&criteria, snap.Brands, snap.Companies)
	filtered := applyPredicates(candidates, predicates)

	deduped := Deduplicate(filtered)

	SortRecords(deduped, criteria.Sort, criteria.Dir, snap.Companies)

	page, size := normalizePage(criteria.Page, criteria.Size)

	return entities.SearchResult{
		Items:         Paginate(deduped, page, size),
		TotalElements: len(deduped),
		Page:          page,
		Size:          size,
	}
}

// lookup returns the raw candidate set for a term, before filtering and
// deduplication. With no term the whole snapshot is the candidate set and
// the filter chain becomes the sole selector. Index postings are positions
// in the product slice, so both must come from the same snapshot.
func lookup(snap *interfaces.Snapshot, term string) []entities.ProductRecord {
	products := snap.Products

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return products
	}

	// Substring containment against every index key, so a three-letter
	// token key matches a longer search term and vice versa through the
	// full-string keys.
	index := snap.NameIndex
	seen := make(map[int]struct{})
	var hits []int

	for key, postings := range index {
		if !strings.Contains(key, term) {
			continue
		}
		for _, idx := range postings {
			if _, ok := seen[idx]; ok {
				continue
			}
			seen[idx] = struct{}{}
			hits = append(hits, idx)
		}
	}

	// Map iteration order is random; keep results deterministic
	sort.Ints(hits)

	matched := make([]entities.ProductRecord, 0, len(hits))
	for _, idx := range hits {
		if idx >= 0 && idx < len(products) {
			matched = append(matched, products[idx])
		}
	}

	return matched
}

func normalizePage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = entities.DefaultPageSize
	}
	if size > entities.MaxPageSize {
		size = entities.MaxPageSize
	}
	return page, size
}
