package entities

// SearchResult is one ordered, paginated page of a filter query.
// TotalElements counts the deduplicated matches before pagination, so callers
// can tell a partial page from an exhausted result set.
type SearchResult struct {
	Items         []ProductRecord `json:"items"`
	TotalElements int             `json:"totalElements"`
	Page          int             `json:"page"`
	Size          int             `json:"size"`
}

// ATCOption pairs a classification code with its human-readable description.
// Description is empty when the ATC reference table did not resolve the code.
type ATCOption struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

// FilterOptions is the vocabulary snapshot derived from the loaded dataset:
// the distinct values a query builder can offer as filter choices, plus
// aggregate counts.
type FilterOptions struct {
	Manufacturers []string    `json:"manufacturers"`
	ATCCodes      []ATCOption `json:"atcCodes"`
	Forms         []string    `json:"forms"`
	Routes        []string    `json:"routes"`
	Brands        []string    `json:"brands"`
	TotalProducts int         `json:"totalProducts"`
	InStockCount  int         `json:"inStockCount"`
}
