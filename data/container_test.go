package data

import (
	"sync"
	"testing"
	"time"

	"github.com/davzso/pharmadex-api/registryparser/entities"
)

func TestNewDataContainerStartsEmpty(t *testing.T) {
	dc := NewDataContainer()

	if len(dc.GetProducts()) != 0 {
		t.Error("Fresh container should hold no products")
	}
	if len(dc.GetNameIndex()) != 0 {
		t.Error("Fresh container should hold an empty index")
	}
	if !dc.GetLastUpdated().IsZero() {
		t.Error("Fresh container should report a zero last-updated time")
	}
	if dc.IsUpdating() {
		t.Error("Fresh container should not be updating")
	}
}

func TestUpdateDataSwapsSnapshot(t *testing.T) {
	dc := NewDataContainer()

	products := []entities.ProductRecord{{ID: "1", Name: "Aspirin"}}
	productsMap := map[string]entities.ProductRecord{"1": products[0]}
	index := map[string][]int{"aspirin": {0}}
	brands := entities.ReferenceTable{"b1": "Aspirin Family"}

	before := time.Now()
	dc.UpdateData(products, productsMap, index, brands,
		make(entities.ReferenceTable), make(entities.ReferenceTable))

	if len(dc.GetProducts()) != 1 {
		t.Errorf("Expected 1 product after swap, got %d", len(dc.GetProducts()))
	}
	if _, ok := dc.GetProductsMap()["1"]; !ok {
		t.Error("Products map not swapped")
	}
	if len(dc.GetNameIndex()["aspirin"]) != 1 {
		t.Error("Name index not swapped")
	}
	if dc.GetBrands().Resolve("b1") != "Aspirin Family" {
		t.Error("Brand table not swapped")
	}
	if dc.GetLastUpdated().Before(before) {
		t.Error("Last-updated should advance on swap")
	}

	snap := dc.GetSnapshot()
	if len(snap.Products) != 1 || len(snap.NameIndex) != 1 || len(snap.Brands) != 1 {
		t.Error("GetSnapshot should expose every table of the same load")
	}
}

func TestBeginUpdateIsExclusive(t *testing.T) {
	dc := NewDataContainer()

	if !dc.BeginUpdate() {
		t.Fatal("First BeginUpdate should succeed")
	}
	if dc.BeginUpdate() {
		t.Error("Second BeginUpdate should fail while a rebuild is running")
	}
	if !dc.IsUpdating() {
		t.Error("IsUpdating should report the running rebuild")
	}

	dc.EndUpdate()
	if dc.IsUpdating() {
		t.Error("EndUpdate should clear the flag")
	}
	if !dc.BeginUpdate() {
		t.Error("BeginUpdate should succeed again after EndUpdate")
	}
}

func TestBeginUpdateUnderContention(t *testing.T) {
	dc := NewDataContainer()

	var wg sync.WaitGroup
	wins := make(chan struct{}, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if dc.BeginUpdate() {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	count := 0
	for range wins {
		count++
	}
	if count != 1 {
		t.Errorf("Exactly one concurrent BeginUpdate should win, got %d", count)
	}
}

func TestServerStartTime(t *testing.T) {
	dc := NewDataContainer()
	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	dc.SetServerStartTime(start)

	if !dc.GetServerStartTime().Equal(start) {
		t.Errorf("Expected %v, got %v", start, dc.GetServerStartTime())
	}
}
