package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/davzso/pharmadex-api/data"
	"github.com/davzso/pharmadex-api/health"
	"github.com/davzso/pharmadex-api/registryparser/entities"
	"github.com/davzso/pharmadex-api/search"
	"github.com/davzso/pharmadex-api/validation"
	"github.com/go-chi/chi/v5"
)

func datePtr(year, month, day int) *time.Time {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &t
}

// newTestRouter wires the handler over a loaded snapshot with the production
// route patterns
func newTestRouter(t *testing.T, products []entities.ProductRecord,
	brands, atcs, companies entities.ReferenceTable) *chi.Mux {
	t.Helper()

	if brands == nil {
		brands = make(entities.ReferenceTable)
	}
	if atcs == nil {
		atcs = make(entities.ReferenceTable)
	}
	if companies == nil {
		companies = make(entities.ReferenceTable)
	}

	productsMap := make(map[string]entities.ProductRecord, len(products))
	for i := range products {
		productsMap[products[i].ID] = products[i]
	}

	dc := data.NewDataContainer()
	dc.SetServerStartTime(time.Now())
	dc.UpdateData(products, productsMap, search.BuildIndex(products), brands, atcs, companies)

	engine := search.NewEngine(dc)
	handler := NewHTTPHandler(dc, engine, validation.NewDataValidator(), health.NewHealthChecker(dc))

	router := chi.NewRouter()
	router.Get("/products", handler.ServeProducts)
	router.Get("/products/{id}", handler.FindProductByID)
	router.Get("/search/{term}", handler.SearchProducts)
	router.Get("/filters", handler.ServeFilterOptions)
	router.Get("/health", handler.HealthCheck)
	return router
}

func get(t *testing.T, router *chi.Mux, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

var sampleProducts = []entities.ProductRecord{
	{
		ID: "1", Name: "Aspirin Protect", ATCCode: "N02BA01", Form: "tablet",
		StrengthText: "100mg", PrescriptionCode: "VN", CompanyID: "c1",
		ValidFrom: datePtr(2022, 1, 1), InStock: true,
	},
	{
		ID: "2", Name: "Morphine Sandoz", ATCCode: "N02AA01", Form: "injection",
		StrengthText: "10mg", PrescriptionCode: "SZ", CompanyID: "c2",
	},
}

var sampleCompanies = entities.ReferenceTable{"c1": "Bayer", "c2": "Sandoz"}

func TestServeProducts(t *testing.T) {
	router := newTestRouter(t, sampleProducts, nil, nil, sampleCompanies)

	rec := get(t, router, "/products?form=tablet")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Unexpected content type %q", ct)
	}
	if rec.Header().Get("Last-Modified") == "" {
		t.Error("Expected a Last-Modified header")
	}

	var result entities.SearchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Invalid JSON body: %v", err)
	}
	if result.TotalElements != 1 || result.Items[0].ID != "1" {
		t.Errorf("Expected only the tablet, got %+v", result)
	}
}

func TestServeProductsMalformedFilterIgnored(t *testing.T) {
	router := newTestRouter(t, sampleProducts, nil, nil, sampleCompanies)

	rec := get(t, router, "/products?instock=maybe&minStrength=heavy")

	if rec.Code != http.StatusOK {
		t.Fatalf("Malformed filter values must not fail the query, got %d", rec.Code)
	}

	var result entities.SearchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Invalid JSON body: %v", err)
	}
	if result.TotalElements != 2 {
		t.Errorf("Ignored filters should leave all products, got %d", result.TotalElements)
	}
}

func TestServeProductsRejectsDangerousSearch(t *testing.T) {
	router := newTestRouter(t, sampleProducts, nil, nil, sampleCompanies)

	rec := get(t, router, "/products?search=%3Cscript%3E")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for dangerous search input, got %d", rec.Code)
	}
}

func TestServeProductsPagination(t *testing.T) {
	products := make([]entities.ProductRecord, 30)
	for i := range products {
		products[i] = entities.ProductRecord{
			ID:           fmt.Sprintf("p%02d", i),
			Name:         fmt.Sprintf("Product %02d", i),
			StrengthText: "1mg",
		}
	}
	router := newTestRouter(t, products, nil, nil, nil)

	rec := get(t, router, "/products?page=1&size=10")

	var result entities.SearchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Invalid JSON body: %v", err)
	}
	if result.TotalElements != 30 {
		t.Errorf("TotalElements should count all matches, got %d", result.TotalElements)
	}
	if len(result.Items) != 10 || result.Page != 1 {
		t.Errorf("Expected second page of 10, got %d items on page %d", len(result.Items), result.Page)
	}
}

func TestSearchProducts(t *testing.T) {
	router := newTestRouter(t, sampleProducts, nil, nil, sampleCompanies)

	rec := get(t, router, "/search/aspirin")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var results []entities.ProductRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("Invalid JSON body: %v", err)
	}
	if len(results) != 1 || results[0].ID != "1" {
		t.Errorf("Expected the aspirin record, got %+v", results)
	}
}

func TestSearchProductsNoMatch(t *testing.T) {
	router := newTestRouter(t, sampleProducts, nil, nil, sampleCompanies)

	if rec := get(t, router, "/search/zzzzz"); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for no matches, got %d", rec.Code)
	}
}

func TestFindProductByID(t *testing.T) {
	router := newTestRouter(t, sampleProducts, nil, nil, sampleCompanies)

	rec := get(t, router, "/products/2")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var product entities.ProductRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &product); err != nil {
		t.Fatalf("Invalid JSON body: %v", err)
	}
	if product.Name != "Morphine Sandoz" {
		t.Errorf("Expected Morphine Sandoz, got %s", product.Name)
	}

	if rec := get(t, router, "/products/404"); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown id, got %d", rec.Code)
	}
}

func TestServeFilterOptions(t *testing.T) {
	router := newTestRouter(t, sampleProducts, nil, nil, sampleCompanies)

	rec := get(t, router, "/filters")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var opts entities.FilterOptions
	if err := json.Unmarshal(rec.Body.Bytes(), &opts); err != nil {
		t.Fatalf("Invalid JSON body: %v", err)
	}
	if opts.TotalProducts != 2 || len(opts.Manufacturers) != 2 {
		t.Errorf("Unexpected filter options: %+v", opts)
	}
}

func TestHealthCheckEndpoint(t *testing.T) {
	router := newTestRouter(t, sampleProducts, nil, nil, sampleCompanies)

	rec := get(t, router, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 for a fresh snapshot, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON body: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("Expected healthy status, got %v", body["status"])
	}
	if _, ok := body["uptime_seconds"]; !ok {
		t.Error("Expected uptime in the health payload")
	}
}

func TestHealthCheckEmptySnapshot(t *testing.T) {
	dc := data.NewDataContainer()
	handler := NewHTTPHandler(dc, search.NewEngine(dc),
		validation.NewDataValidator(), health.NewHealthChecker(dc))

	router := chi.NewRouter()
	router.Get("/health", handler.HealthCheck)

	if rec := get(t, router, "/health"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 before the first load, got %d", rec.Code)
	}
}
