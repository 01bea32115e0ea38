// Package search implements the in-memory query engine over a loaded product
// snapshot: an inverted text index, free-text search, a composable filter
// chain, deduplication of historical revisions, sorting, pagination and
// filter-vocabulary extraction. Everything here is a pure read over immutable
// snapshot structures, so queries run lock-free from any goroutine.
package search

import (
	"strings"
	"unicode/utf8"

	"github.com/davzso/pharmadex-api/registryparser/entities"
)

// minTokenLength is the shortest word indexed on its own. Shorter fragments
// still match through the full-string keys.
const minTokenLength = 3

// BuildIndex builds the inverted text index for a product slice: every
// normalized token of at least minTokenLength from the name and the substance
// text maps to the indices of the records containing it, and the full lowered
// source string is indexed as one additional key so multi-word terms match
// exactly. The index is rebuilt in full at every snapshot load, never
// incrementally.
func BuildIndex(products []entities.ProductRecord) map[string][]int {
	index := make(map[string][]int)

	for i := range products {
		indexText(index, products[i].Name, i)
		indexText(index, products[i].SubstanceText, i)
	}

	return index
}

func indexText(index map[string][]int, text string, record int) {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return
	}

	// Full-string key for exact/substring matches against multi-word terms
	index[lowered] = append(index[lowered], record)

	for _, token := range strings.Fields(lowered) {
		if token == lowered {
			continue
		}
		if utf8.RuneCountInString(token) < minTokenLength {
			continue
		}
		index[token] = append(index[token], record)
	}
}
