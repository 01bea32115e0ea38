// Package handlers provides the HTTP request handlers for the pharmadex API:
// filter queries, free-text search, direct id lookup, filter vocabularies and
// health, with input validation and JSON response formatting.
package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/davzso/pharmadex-api/interfaces"
	"github.com/davzso/pharmadex-api/logging"
	"github.com/davzso/pharmadex-api/registryparser/entities"
	"github.com/go-chi/chi/v5"
)

// HTTPHandler bundles the API endpoints with their injected dependencies
type HTTPHandler struct {
	dataStore interfaces.DataStore
	engine    interfaces.SearchEngine
	validator interfaces.DataValidator
	health    interfaces.HealthChecker
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies
func NewHTTPHandler(dataStore interfaces.DataStore, engine interfaces.SearchEngine,
	validator interfaces.DataValidator, health interfaces.HealthChecker) *HTTPHandler {
	return &HTTPHandler{
		dataStore: dataStore,
		engine:    engine,
		validator: validator,
		health:    health,
	}
}

// RespondWithJSON writes a JSON response
func (h *HTTPHandler) RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", h.dataStore.GetLastUpdated().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	w.Write(body)
}

// RespondWithError writes a JSON error response
func (h *HTTPHandler) RespondWithError(w http.ResponseWriter, code int, message string) {
	h.RespondWithJSON(w, code, map[string]any{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	})
}

// ServeProducts answers a full filter query built from the query string
func (h *HTTPHandler) ServeProducts(w http.ResponseWriter, r *http.Request) {
	criteria := h.decodeCriteria(r.URL.Query())

	if criteria.Search != "" {
		if err := h.validator.ValidateInput(criteria.Search); err != nil {
			logging.Warn("Unusual search input", "error", err)
			h.RespondWithError(w, http.StatusBadRequest, "Invalid search term")
			return
		}
	}

	result := h.engine.Query(criteria)
	h.RespondWithJSON(w, http.StatusOK, result)
}

// SearchProducts answers a plain free-text search, capped
func (h *HTTPHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	term := chi.URLParam(r, "term")
	if term == "" {
		h.RespondWithError(w, http.StatusBadRequest, "Missing search term")
		return
	}

	if err := h.validator.ValidateInput(term); err != nil {
		logging.Warn("Unusual search input", "term_length", len(term), "error", err)
		h.RespondWithError(w, http.StatusBadRequest, "Invalid search term")
		return
	}

	results := h.engine.Search(term)
	if len(results) == 0 {
		h.RespondWithError(w, http.StatusNotFound, "No products found")
		return
	}

	h.RespondWithJSON(w, http.StatusOK, results)
}

// FindProductByID finds one product by its registry id
func (h *HTTPHandler) FindProductByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.validator.ValidateInput(id); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, exists := h.dataStore.GetProductsMap()[id]
	if !exists {
		h.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	h.RespondWithJSON(w, http.StatusOK, product)
}

// ServeFilterOptions returns the filter vocabularies of the current snapshot
func (h *HTTPHandler) ServeFilterOptions(w http.ResponseWriter, r *http.Request) {
	h.RespondWithJSON(w, http.StatusOK, h.engine.FilterOptions())
}

// HealthCheck returns the snapshot health status
func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, data, httpStatus := h.health.HealthCheck()

	uptime := time.Since(h.dataStore.GetServerStartTime())
	response := map[string]any{
		"status":         status,
		"uptime_seconds": uptime.Seconds(),
		"data":           data,
	}

	h.RespondWithJSON(w, httpStatus, response)
}

// decodeCriteria maps query parameters to a FilterCriteria. A malformed value
// for an individual filter is logged and that filter ignored; it never fails
// the whole query.
func (h *HTTPHandler) decodeCriteria(q url.Values) entities.FilterCriteria {
	criteria := entities.FilterCriteria{
		Search:            strings.TrimSpace(q.Get("search")),
		ATCCodes:          splitList(q.Get("atc")),
		Manufacturers:     splitList(q.Get("manufacturer")),
		Forms:             splitList(q.Get("form")),
		Routes:            splitList(q.Get("route")),
		RegCodes:          splitList(q.Get("regcode")),
		PrescriptionTypes: splitList(q.Get("ptype")),
		StrengthUnits:     splitList(q.Get("unit")),
		Brands:            splitList(q.Get("brand")),
		Lateralities:      splitList(q.Get("laterality")),
		Sort:              q.Get("sort"),
		Dir:               q.Get("dir"),
	}

	criteria.PrescriptionRequired = parseBoolParam(q, "prescription")
	criteria.Reimbursable = parseBoolParam(q, "reimbursable")
	criteria.InStock = parseBoolParam(q, "instock")
	criteria.SpecialMarker = parseBoolParam(q, "special")

	criteria.MinStrength = parseFloatParam(q, "minStrength")
	criteria.MaxStrength = parseFloatParam(q, "maxStrength")

	if q.Get("validOn") == "now" {
		criteria.ValidOnly = true
	} else {
		criteria.ValidFromDate = parseDateParam(q, "validFrom")
		criteria.ValidToDate = parseDateParam(q, "validTo")
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page >= 0 {
		criteria.Page = page
	}
	if size, err := strconv.Atoi(q.Get("size")); err == nil && size > 0 {
		criteria.Size = size
	}

	return criteria
}

// splitList parses a comma-separated query value into a trimmed list
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBoolParam(q url.Values, name string) *bool {
	value := q.Get(name)
	if value == "" {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Ignoring malformed boolean filter", "param", name, "value", value)
		return nil
	}
	return &b
}

func parseFloatParam(q url.Values, name string) *float64 {
	value := q.Get(name)
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		logging.Warn("Ignoring malformed numeric filter", "param", name, "value", value)
		return nil
	}
	return &f
}

func parseDateParam(q url.Values, name string) *time.Time {
	value := q.Get(name)
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		logging.Warn("Ignoring malformed date filter", "param", name, "value", value)
		return nil
	}
	return &t
}
