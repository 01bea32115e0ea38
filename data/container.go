// Package data provides thread-safe storage for the loaded product registry.
// The whole snapshot lives behind one atomic pointer so a dataset refresh
// swaps every table at once and readers never observe a product slice from
// one load paired with an index from another.
package data

import (
	"sync/atomic"
	"time"

	"github.com/davzso/pharmadex-api/interfaces"
	"github.com/davzso/pharmadex-api/logging"
	"github.com/davzso/pharmadex-api/registryparser/entities"
)

// Compile-time check to ensure DataContainer implements DataStore
var _ interfaces.DataStore = (*DataContainer)(nil)

// DataContainer holds the product snapshot behind a single atomic pointer for
// zero-downtime updates.
type DataContainer struct {
	snapshot        atomic.Pointer[interfaces.Snapshot]
	lastUpdated     atomic.Value // time.Time
	updating        atomic.Bool
	serverStartTime atomic.Value // time.Time
}

func emptySnapshot() *interfaces.Snapshot {
	return &interfaces.Snapshot{
		Products:        make([]entities.ProductRecord, 0),
		ProductsMap:     make(map[string]entities.ProductRecord),
		NameIndex:       make(map[string][]int),
		Brands:          make(entities.ReferenceTable),
		ATCDescriptions: make(entities.ReferenceTable),
		Companies:       make(entities.ReferenceTable),
	}
}

// NewDataContainer creates a new DataContainer with empty data
func NewDataContainer() *DataContainer {
	dc := &DataContainer{}
	dc.snapshot.Store(emptySnapshot())
	dc.lastUpdated.Store(time.Time{})
	dc.serverStartTime.Store(time.Time{})
	return dc
}

// GetSnapshot returns the current snapshot. Every table in the returned value
// belongs to the same load, so index postings always line up with the product
// slice they were built for.
func (dc *DataContainer) GetSnapshot() *interfaces.Snapshot {
	if snap := dc.snapshot.Load(); snap != nil {
		return snap
	}

	logging.Warn("Snapshot missing, serving empty dataset")
	return emptySnapshot()
}

// Per-table getters; each one reads the snapshot that is current at call time

// GetProducts returns the product records of the current snapshot
func (dc *DataContainer) GetProducts() []entities.ProductRecord {
	return dc.GetSnapshot().Products
}

// GetProductsMap returns the id→record map for O(1) lookups
func (dc *DataContainer) GetProductsMap() map[string]entities.ProductRecord {
	return dc.GetSnapshot().ProductsMap
}

// GetNameIndex returns the inverted text index of the current snapshot
func (dc *DataContainer) GetNameIndex() map[string][]int {
	return dc.GetSnapshot().NameIndex
}

// GetBrands returns the brand id→name reference table
func (dc *DataContainer) GetBrands() entities.ReferenceTable {
	return dc.GetSnapshot().Brands
}

// GetATCDescriptions returns the ATC code→description reference table
func (dc *DataContainer) GetATCDescriptions() entities.ReferenceTable {
	return dc.GetSnapshot().ATCDescriptions
}

// GetCompanies returns the company id→name reference table
func (dc *DataContainer) GetCompanies() entities.ReferenceTable {
	return dc.GetSnapshot().Companies
}

// GetLastUpdated returns the timestamp of the last snapshot swap
func (dc *DataContainer) GetLastUpdated() time.Time {
	if v := dc.lastUpdated.Load(); v != nil {
		if lastUpdated, ok := v.(time.Time); ok {
			return lastUpdated
		}
	}

	logging.Warn("Could not get the last updated value")
	return time.Time{}
}

// IsUpdating returns true if a snapshot rebuild is currently in progress
func (dc *DataContainer) IsUpdating() bool {
	return dc.updating.Load()
}

// SetServerStartTime sets the server start time
func (dc *DataContainer) SetServerStartTime(startTime time.Time) {
	dc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (dc *DataContainer) GetServerStartTime() time.Time {
	if v := dc.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}

// UpdateData atomically replaces the whole snapshot. The tables must all come
// from the same load; they become visible to readers in one pointer store.
func (dc *DataContainer) UpdateData(products []entities.ProductRecord,
	productsMap map[string]entities.ProductRecord,
	nameIndex map[string][]int,
	brands, atcDescriptions, companies entities.ReferenceTable) {

	dc.snapshot.Store(&interfaces.Snapshot{
		Products:        products,
		ProductsMap:     productsMap,
		NameIndex:       nameIndex,
		Brands:          brands,
		ATCDescriptions: atcDescriptions,
		Companies:       companies,
	})
	dc.lastUpdated.Store(time.Now())
}

// BeginUpdate marks the start of a snapshot rebuild.
// Returns true if the rebuild can proceed, false if another one is running.
func (dc *DataContainer) BeginUpdate() bool {
	return dc.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the end of a snapshot rebuild
func (dc *DataContainer) EndUpdate() {
	dc.updating.Store(false)
}
