package entities

import "time"

// FilterCriteria is the query-time value object. Every field is optional:
// a nil pointer or empty slice means "no constraint for this category".
// Criteria across categories combine with AND, values inside one list with OR.
type FilterCriteria struct {
	Search string `json:"search,omitempty"`

	ATCCodes          []string `json:"atcCodes,omitempty"`
	Manufacturers     []string `json:"manufacturers,omitempty"`
	Forms             []string `json:"forms,omitempty"`
	Routes            []string `json:"routes,omitempty"`
	RegCodes          []string `json:"regCodes,omitempty"`
	PrescriptionTypes []string `json:"prescriptionTypes,omitempty"`
	StrengthUnits     []string `json:"strengthUnits,omitempty"`
	Brands            []string `json:"brands,omitempty"`
	Lateralities      []string `json:"lateralities,omitempty"`

	PrescriptionRequired *bool `json:"prescriptionRequired,omitempty"`
	Reimbursable         *bool `json:"reimbursable,omitempty"`
	InStock              *bool `json:"inStock,omitempty"`
	SpecialMarker        *bool `json:"specialMarker,omitempty"`

	MinStrength *float64 `json:"minStrength,omitempty"`
	MaxStrength *float64 `json:"maxStrength,omitempty"`

	// ValidOnly keeps only records whose validity window contains "now".
	// The explicit bounds are the alternative form: keep records whose own
	// window starts no earlier / ends no later than the given dates.
	ValidOnly     bool       `json:"validOnly,omitempty"`
	ValidFromDate *time.Time `json:"validFromDate,omitempty"`
	ValidToDate   *time.Time `json:"validToDate,omitempty"`

	Page int    `json:"page"`
	Size int    `json:"size"`
	Sort string `json:"sort,omitempty"`
	Dir  string `json:"dir,omitempty"`
}

// Sort fields accepted by the sorter. Anything else falls back to SortByName.
const (
	SortByName         = "name"
	SortByManufacturer = "manufacturer"
	SortByATC          = "atc"

	DirAsc  = "asc"
	DirDesc = "desc"
)

// DefaultPageSize is used when the caller supplies no size (or a non-positive
// one).
const DefaultPageSize = 25

// MaxPageSize caps a single page to protect downstream consumers.
const MaxPageSize = 200
