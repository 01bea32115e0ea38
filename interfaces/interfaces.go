// Package interfaces defines the core abstractions of the pharmadex API so
// that the loader, the snapshot store, the search engine and the scheduler can
// be tested independently of each other.
package interfaces

import (
	"time"

	"github.com/davzso/pharmadex-api/registryparser/entities"
)

// Snapshot is one complete, immutable load of the registry: the product
// slice, its lookup structures and the three reference tables, all built
// together. NameIndex postings are positions in Products, so the two are only
// meaningful as a pair; a Snapshot is always read and replaced as one unit.
type Snapshot struct {
	Products        []entities.ProductRecord
	ProductsMap     map[string]entities.ProductRecord
	NameIndex       map[string][]int
	Brands          entities.ReferenceTable
	ATCDescriptions entities.ReferenceTable
	Companies       entities.ReferenceTable
}

// DataStore is the read side of the product snapshot. All getters return the
// structures of the snapshot that was current when the call was made; the
// returned values are never mutated afterwards, so callers may read them from
// any goroutine without locking. Callers that combine several tables must use
// GetSnapshot so every table comes from the same load.
type DataStore interface {
	GetSnapshot() *Snapshot
	GetProducts() []entities.ProductRecord
	GetProductsMap() map[string]entities.ProductRecord
	GetNameIndex() map[string][]int
	GetBrands() entities.ReferenceTable
	GetATCDescriptions() entities.ReferenceTable
	GetCompanies() entities.ReferenceTable
	GetLastUpdated() time.Time
	IsUpdating() bool
	GetServerStartTime() time.Time
	SetServerStartTime(t time.Time)

	// UpdateData atomically replaces the whole snapshot.
	UpdateData(products []entities.ProductRecord,
		productsMap map[string]entities.ProductRecord,
		nameIndex map[string][]int,
		brands, atcDescriptions, companies entities.ReferenceTable)
	BeginUpdate() bool
	EndUpdate()
}

// Parser loads the registry export files into typed records and the three
// auxiliary reference tables.
type Parser interface {
	// ParseAll reads the primary product table and the auxiliary tables.
	// A missing primary file is an error; missing auxiliary files degrade
	// to empty tables.
	ParseAll() ([]entities.ProductRecord, entities.ReferenceTable,
		entities.ReferenceTable, entities.ReferenceTable, error)
}

// SearchEngine answers free-text and multi-criteria queries over the current
// snapshot.
type SearchEngine interface {
	Search(term string) []entities.ProductRecord
	Query(criteria entities.FilterCriteria) entities.SearchResult
	FilterOptions() entities.FilterOptions
}

// Scheduler manages the initial load and the periodic dataset refresh.
type Scheduler interface {
	Start() error
	Stop()
}

// HealthChecker reports the health of the loaded snapshot.
type HealthChecker interface {
	HealthCheck() (status string, data map[string]any, httpStatus int)
}

// DataValidator checks the integrity of a freshly parsed dataset before it is
// swapped in.
type DataValidator interface {
	ValidateProduct(p *entities.ProductRecord) error
	ValidateDataIntegrity(products []entities.ProductRecord) error
	ReportDataQuality(products []entities.ProductRecord) *DataQualityReport
	ValidateInput(input string) error
}

// DataQualityReport summarizes the issues found in a parsed dataset. The
// refresh logs it; only structural failures block a swap.
type DataQualityReport struct {
	DuplicateIDs            []string
	ProductsWithoutATC      int
	ProductsWithoutCompany  int
	ProductsWithoutStrength int
	InvalidValidityWindows  []string
}
