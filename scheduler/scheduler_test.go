package scheduler

import (
	"fmt"
	"testing"
	"time"

	"github.com/davzso/pharmadex-api/data"
	"github.com/davzso/pharmadex-api/registryparser/entities"
)

func datePtr(year, month, day int) *time.Time {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &t
}

// stubParser returns a fixed dataset or a fixed error
type stubParser struct {
	products []entities.ProductRecord
	err      error
}

func (p *stubParser) ParseAll() ([]entities.ProductRecord, entities.ReferenceTable,
	entities.ReferenceTable, entities.ReferenceTable, error) {
	if p.err != nil {
		return nil, nil, nil, nil, p.err
	}
	return p.products, make(entities.ReferenceTable),
		make(entities.ReferenceTable), make(entities.ReferenceTable), nil
}

func TestRefreshSwapsSnapshot(t *testing.T) {
	dc := data.NewDataContainer()
	s := NewScheduler(dc, &stubParser{products: []entities.ProductRecord{
		{ID: "1", Name: "Aspirin Protect"},
		{ID: "2", Name: "Cataflam"},
	}})

	if err := s.refresh(); err != nil {
		t.Fatalf("Unexpected refresh error: %v", err)
	}

	if len(dc.GetProducts()) != 2 {
		t.Errorf("Expected 2 products after refresh, got %d", len(dc.GetProducts()))
	}
	if _, ok := dc.GetProductsMap()["2"]; !ok {
		t.Error("Products map should be rebuilt on refresh")
	}
	if len(dc.GetNameIndex()["aspirin"]) != 1 {
		t.Error("Name index should be rebuilt on refresh")
	}
	if dc.IsUpdating() {
		t.Error("Refresh should release the update flag")
	}
}

func TestRefreshPropagatesParserError(t *testing.T) {
	dc := data.NewDataContainer()
	s := NewScheduler(dc, &stubParser{err: fmt.Errorf("export unreadable")})

	if err := s.refresh(); err == nil {
		t.Fatal("Parser failure must fail the refresh")
	}
	if dc.IsUpdating() {
		t.Error("Failed refresh should still release the update flag")
	}
	if len(dc.GetProducts()) != 0 {
		t.Error("Failed refresh must not touch the live snapshot")
	}
}

func TestRefreshDropsDuplicateIDs(t *testing.T) {
	dc := data.NewDataContainer()
	s := NewScheduler(dc, &stubParser{products: []entities.ProductRecord{
		{ID: "1", Name: "First"},
		{ID: "1", Name: "Second"},
	}})

	if err := s.refresh(); err != nil {
		t.Fatalf("Unexpected refresh error: %v", err)
	}

	products := dc.GetProducts()
	if len(products) != 1 || products[0].Name != "First" {
		t.Errorf("Expected the first occurrence of a duplicated id to survive, got %+v", products)
	}
}

func TestRefreshDropsInvertedWindows(t *testing.T) {
	dc := data.NewDataContainer()
	s := NewScheduler(dc, &stubParser{products: []entities.ProductRecord{
		{ID: "ok", Name: "Fine", ValidFrom: datePtr(2020, 1, 1), ValidTo: datePtr(2030, 1, 1)},
		{ID: "bad", Name: "Inverted", ValidFrom: datePtr(2030, 1, 1), ValidTo: datePtr(2020, 1, 1)},
	}})

	if err := s.refresh(); err != nil {
		t.Fatalf("Unexpected refresh error: %v", err)
	}

	products := dc.GetProducts()
	if len(products) != 1 || products[0].ID != "ok" {
		t.Errorf("Inverted validity windows should be dropped, got %+v", products)
	}
}

func TestStopEndsStalenessMonitor(t *testing.T) {
	dc := data.NewDataContainer()
	s := NewScheduler(dc, &stubParser{products: []entities.ProductRecord{
		{ID: "1", Name: "Aspirin"},
	}})

	s.startStalenessMonitoring()
	s.Stop()

	select {
	case <-s.monitorDone:
	case <-time.After(2 * time.Second):
		t.Fatal("Staleness monitor goroutine did not exit after Stop")
	}

	// A second Stop must be a no-op, not a panic.
	s.Stop()
}

func TestRefreshSkipsWhenUpdateInProgress(t *testing.T) {
	dc := data.NewDataContainer()
	s := NewScheduler(dc, &stubParser{products: []entities.ProductRecord{
		{ID: "1", Name: "Aspirin"},
	}})

	if !dc.BeginUpdate() {
		t.Fatal("Could not claim the update flag")
	}

	if err := s.refresh(); err != nil {
		t.Fatalf("Skipped refresh should not error: %v", err)
	}
	if len(dc.GetProducts()) != 0 {
		t.Error("Skipped refresh must not swap the snapshot")
	}
}
