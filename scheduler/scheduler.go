// Package scheduler provides the initial dataset load and the automated
// nightly refresh for the pharmadex API. A refresh parses the registry export
// into fresh structures, rebuilds the text index and swaps the snapshot
// atomically through the data store, so readers never observe a partially
// built index.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/davzso/pharmadex-api/interfaces"
	"github.com/davzso/pharmadex-api/logging"
	"github.com/davzso/pharmadex-api/metrics"
	"github.com/davzso/pharmadex-api/registryparser/entities"
	"github.com/davzso/pharmadex-api/search"
	"github.com/davzso/pharmadex-api/validation"
	"github.com/go-co-op/gocron"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler handles dataset refreshes and staleness monitoring using
// dependency injection
type Scheduler struct {
	dataStore interfaces.DataStore
	parser    interfaces.Parser
	scheduler *gocron.Scheduler

	stop        chan struct{}
	stopOnce    sync.Once
	monitorDone chan struct{}
}

// NewScheduler creates a new scheduler instance with injected dependencies
func NewScheduler(dataStore interfaces.DataStore, parser interfaces.Parser) *Scheduler {
	return &Scheduler{
		dataStore:   dataStore,
		parser:      parser,
		scheduler:   gocron.NewScheduler(time.Local),
		stop:        make(chan struct{}),
		monitorDone: make(chan struct{}),
	}
}

// Start performs the initial blocking load and schedules the nightly refresh.
// A failed initial load is fatal for the caller: there is no engine without
// the core dataset.
func (s *Scheduler) Start() error {
	if err := s.refresh(); err != nil {
		logging.Error("Failed to perform initial data load", "error", err)
		return fmt.Errorf("initial data load failed: %w", err)
	}

	// The registry publishes a new export nightly
	_, err := s.scheduler.Every(1).Days().At("05:30").Do(func() {
		if err := s.refresh(); err != nil {
			logging.Error("Failed to refresh dataset", "error", err)
		}
	})
	if err != nil {
		logging.Error("Failed to schedule refresh", "error", err)
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}

	s.scheduler.StartAsync()
	s.startStalenessMonitoring()

	return nil
}

// Stop stops the scheduler and the staleness monitor
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	s.scheduler.Stop()
}

// refresh performs a complete snapshot rebuild and swap
func (s *Scheduler) refresh() error {
	// Prevent concurrent rebuilds
	if !s.dataStore.BeginUpdate() {
		logging.Info("Refresh already in progress, skipping...")
		return nil
	}
	defer s.dataStore.EndUpdate()

	logging.Info("Starting dataset refresh")
	start := time.Now()

	// Parse into fresh structures, not touching the live snapshot
	newProducts, newBrands, newATCDescriptions, newCompanies, err := s.parser.ParseAll()
	if err != nil {
		return fmt.Errorf("failed to parse registry export: %w", err)
	}

	validator := validation.NewDataValidator()
	report := validator.ReportDataQuality(newProducts)

	if len(report.DuplicateIDs) > 0 {
		logging.Warn("Duplicate product ids detected",
			"total", len(report.DuplicateIDs),
			"id_list", report.DuplicateIDs,
		)
		newProducts = dropDuplicateIDs(newProducts)
	}

	if len(report.InvalidValidityWindows) > 0 {
		logging.Warn("Products with inverted validity windows dropped",
			"total", len(report.InvalidValidityWindows),
			"id_list", report.InvalidValidityWindows,
		)
		newProducts = dropInvertedWindows(newProducts)
	}

	if report.ProductsWithoutATC > 0 {
		logging.Info("Products without ATC classification",
			"count", report.ProductsWithoutATC)
	}
	if report.ProductsWithoutCompany > 0 {
		logging.Info("Products without company reference",
			"count", report.ProductsWithoutCompany)
	}

	newProductsMap := make(map[string]entities.ProductRecord, len(newProducts))
	for i := range newProducts {
		newProductsMap[newProducts[i].ID] = newProducts[i]
	}

	newNameIndex := search.BuildIndex(newProducts)

	// Atomic swap (zero downtime replacement)
	s.dataStore.UpdateData(newProducts, newProductsMap, newNameIndex,
		newBrands, newATCDescriptions, newCompanies)

	metrics.SnapshotProducts.Set(float64(len(newProducts)))
	metrics.SnapshotIndexKeys.Set(float64(len(newNameIndex)))

	elapsed := time.Since(start)
	logging.Info("Dataset refresh completed",
		"duration", elapsed.String(),
		"product_count", len(newProducts),
		"index_keys", len(newNameIndex))

	return nil
}

// dropDuplicateIDs keeps the first occurrence of each id so the snapshot
// honors the id-uniqueness invariant.
func dropDuplicateIDs(products []entities.ProductRecord) []entities.ProductRecord {
	seen := make(map[string]bool, len(products))
	out := make([]entities.ProductRecord, 0, len(products))
	for i := range products {
		if seen[products[i].ID] {
			continue
		}
		seen[products[i].ID] = true
		out = append(out, products[i])
	}
	return out
}

// dropInvertedWindows removes records whose validity window is inverted
func dropInvertedWindows(products []entities.ProductRecord) []entities.ProductRecord {
	out := make([]entities.ProductRecord, 0, len(products))
	for i := range products {
		r := &products[i]
		if r.ValidFrom != nil && r.ValidTo != nil && r.ValidTo.Before(*r.ValidFrom) {
			continue
		}
		out = append(out, products[i])
	}
	return out
}

// startStalenessMonitoring warns when the snapshot outlives the refresh
// cycle; the goroutine exits when Stop is called
func (s *Scheduler) startStalenessMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		defer close(s.monitorDone)

		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				lastUpdate := s.dataStore.GetLastUpdated()
				if time.Since(lastUpdate) > 26*time.Hour {
					logging.Warn("Snapshot hasn't been refreshed in over 26 hours")
				}
			}
		}
	}()
}
