package search

import (
	"testing"

	"github.com/davzso/pharmadex-api/registryparser/entities"
)

func TestBuildIndexTokens(t *testing.T) {
	products := []entities.ProductRecord{
		{ID: "1", Name: "Aspirin Protect 100mg", SubstanceText: "acetylsalicylic acid"},
	}

	index := BuildIndex(products)

	for _, key := range []string{
		"aspirin",
		"protect",
		"100mg",
		"aspirin protect 100mg",
		"acetylsalicylic",
		"acid",
		"acetylsalicylic acid",
	} {
		postings, ok := index[key]
		if !ok {
			t.Errorf("Expected index key %q to exist", key)
			continue
		}
		if len(postings) == 0 || postings[0] != 0 {
			t.Errorf("Expected key %q to point at record 0, got %v", key, postings)
		}
	}
}

func TestBuildIndexSkipsShortTokens(t *testing.T) {
	products := []entities.ProductRecord{
		{ID: "1", Name: "No Spa"},
	}

	index := BuildIndex(products)

	if _, ok := index["no"]; ok {
		t.Error("Two-letter token should not be indexed on its own")
	}
	if _, ok := index["spa"]; !ok {
		t.Error("Three-letter token should be indexed")
	}
	if _, ok := index["no spa"]; !ok {
		t.Error("Full lowered string should be indexed as one key")
	}
}

func TestBuildIndexEmptyFields(t *testing.T) {
	products := []entities.ProductRecord{
		{ID: "1", Name: "Algopyrin"},
		{ID: "2", Name: "  "},
	}

	index := BuildIndex(products)

	if _, ok := index[""]; ok {
		t.Error("Blank source text should not produce an index key")
	}
	if postings := index["algopyrin"]; len(postings) != 1 {
		t.Errorf("Expected one posting for algopyrin, got %v", postings)
	}
}

func TestBuildIndexMultipleRecordsPerToken(t *testing.T) {
	products := []entities.ProductRecord{
		{ID: "1", Name: "Aspirin Protect"},
		{ID: "2", Name: "Aspirin Ultra"},
	}

	index := BuildIndex(products)

	if postings := index["aspirin"]; len(postings) != 2 {
		t.Errorf("Expected both records under the shared token, got %v", postings)
	}
}
