package search

import (
	"sort"

	"github.com/davzso/pharmadex-api/registryparser/entities"
)

// Vocabulary caps keep the filter-option payload bounded on datasets with
// thousands of distinct companies or codes.
const (
	maxManufacturerOptions = 200
	maxATCOptions          = 500
	maxBrandOptions        = 200
)

// FilterOptions derives the distinct-value vocabularies usable as filter
// choices from the current snapshot, plus aggregate counts. This is a pure
// read of the loaded tables; the text index is not touched.
func (e *Engine) FilterOptions() entities.FilterOptions {
	snap := e.store.GetSnapshot()
	products := snap.Products
	companies := snap.Companies
	brands := snap.Brands
	atcDescriptions := snap.ATCDescriptions

	manufacturerSet := make(map[string]struct{})
	atcSet := make(map[string]struct{})
	formSet := make(map[string]struct{})
	routeSet := make(map[string]struct{})
	brandSet := make(map[string]struct{})
	inStock := 0

	for i := range products {
		r := &products[i]

		if r.InStock {
			inStock++
		}

		if id := manufacturerID(r); id != "" {
			if name, ok := companies[id]; ok && name != "" {
				manufacturerSet[name] = struct{}{}
			}
		}
		if r.BrandID != "" {
			if name, ok := brands[r.BrandID]; ok && name != "" {
				brandSet[name] = struct{}{}
			}
		}
		if r.ATCCode != "" {
			atcSet[r.ATCCode] = struct{}{}
		}
		if r.Form != "" {
			formSet[r.Form] = struct{}{}
		}
		if r.Route != "" {
			routeSet[r.Route] = struct{}{}
		}
	}

	atcCodes := make([]entities.ATCOption, 0, len(atcSet))
	for code := range atcSet {
		atcCodes = append(atcCodes, entities.ATCOption{
			Code:        code,
			Description: atcDescriptions[code],
		})
	}
	sort.Slice(atcCodes, func(i, j int) bool { return atcCodes[i].Code < atcCodes[j].Code })
	if len(atcCodes) > maxATCOptions {
		atcCodes = atcCodes[:maxATCOptions]
	}

	return entities.FilterOptions{
		Manufacturers: sortedCapped(manufacturerSet, maxManufacturerOptions),
		ATCCodes:      atcCodes,
		Forms:         sortedCapped(formSet, 0),
		Routes:        sortedCapped(routeSet, 0),
		Brands:        sortedCapped(brandSet, maxBrandOptions),
		TotalProducts: len(products),
		InStockCount:  inStock,
	}
}

// sortedCapped turns a distinct-value set into a sorted slice, capped at max
// when max is positive.
func sortedCapped(set map[string]struct{}, max int) []string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	if max > 0 && len(values) > max {
		values = values[:max]
	}
	return values
}
