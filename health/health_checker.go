// Package health provides health checking functionality for the pharmadex API.
package health

import (
	"math"
	"net/http"
	"time"

	"github.com/davzso/pharmadex-api/interfaces"
)

// Compile-time check to ensure HealthCheckerImpl implements HealthChecker
var _ interfaces.HealthChecker = (*HealthCheckerImpl)(nil)

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	dataStore interfaces.DataStore
}

// NewHealthChecker creates a new health checker with injected dependencies
func NewHealthChecker(dataStore interfaces.DataStore) *HealthCheckerImpl {
	return &HealthCheckerImpl{
		dataStore: dataStore,
	}
}

// HealthCheck returns the snapshot health with HTTP-oriented thresholds.
// An empty snapshot means the initial load has not completed (or failed):
// the engine is "not initialized" rather than erroring per query.
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	products := h.dataStore.GetProducts()
	lastUpdate := h.dataStore.GetLastUpdated()
	isUpdating := h.dataStore.IsUpdating()

	dataAge := time.Since(lastUpdate)

	switch {
	case len(products) == 0 && lastUpdate.IsZero():
		status = "initializing"
		httpStatus = http.StatusServiceUnavailable

	case len(products) == 0:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case dataAge > 72*time.Hour:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case dataAge > 30*time.Hour:
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	data = map[string]any{
		"last_update":    lastUpdate.Format(time.RFC3339),
		"data_age_hours": math.Round(dataAge.Hours()*10) / 10,
		"products":       len(products),
		"brands":         len(h.dataStore.GetBrands()),
		"companies":      len(h.dataStore.GetCompanies()),
		"is_updating":    isUpdating,
	}

	return status, data, httpStatus
}
