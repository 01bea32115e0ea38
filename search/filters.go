package search

import (
	"strings"
	"time"

	"github.com/davzso/pharmadex-api/registryparser/entities"
)

// prescriptionRequiredCodes is the closed set of prescription codes that bind
// a product to a prescription; every other code is over-the-counter. The set
// is a business rule inferred from the registry data and should be confirmed
// against current regulatory documentation when it changes.
var prescriptionRequiredCodes = map[string]struct{}{
	"V":   {},
	"V5":  {},
	"SZ":  {},
	"J":   {},
	"KGY": {},
}

// specialMarkerValue is the marker code that flags a special-handling
// (hospital-only) product.
const specialMarkerValue = "H"

// predicate is one stage of the filter chain: a pure test over a single
// record, with no state carried between stages.
type predicate func(r *entities.ProductRecord) bool

// buildPredicates translates a FilterCriteria into the ordered predicate
// chain. Only the criteria that are present contribute a stage; categories
// combine with AND, values inside one list with OR.
func buildPredicates(c *entities.FilterCriteria, brands, companies entities.ReferenceTable) []predicate {
	var chain []predicate

	if set := lowerSet(c.ATCCodes); set != nil {
		chain = append(chain, func(r *entities.ProductRecord) bool {
			return inSet(set, r.ATCCode)
		})
	}

	if set := lowerSet(c.Manufacturers); set != nil {
		// Manufacturer match is indirect: the record carries a company
		// id which resolves to a name through the reference table.
		chain = append(chain, func(r *entities.ProductRecord) bool {
			return inSet(set, companies.Resolve(manufacturerID(r)))
		})
	}

	if set := lowerSet(c.Forms); set != nil {
		chain = append(chain, func(r *entities.ProductRecord) bool {
			return inSet(set, r.Form)
		})
	}

	if set := lowerSet(c.Routes); set != nil {
		chain = append(chain, func(r *entities.ProductRecord) bool {
			return inSet(set, r.Route)
		})
	}

	if set := lowerSet(c.RegCodes); set != nil {
		chain = append(chain, func(r *entities.ProductRecord) bool {
			return inSet(set, r.RegCode)
		})
	}

	if c.PrescriptionRequired != nil {
		want := *c.PrescriptionRequired
		chain = append(chain, func(r *entities.ProductRecord) bool {
			return PrescriptionRequired(r.PrescriptionCode) == want
		})
	}

	if c.Reimbursable != nil {
		want := *c.Reimbursable
		chain = append(chain, func(r *entities.ProductRecord) bool {
			return Reimbursable(r) == want
		})
	}

	if c.InStock != nil {
		want := *c.InStock
		chain = append(chain, func(r *entities.ProductRecord) bool {
			return r.InStock == want
		})
	}

	if set := lowerSet(c.PrescriptionTypes); set != nil {
		chain = append(chain, func(r *entities.ProductRecord) bool {
			return inSet(set, r.PrescriptionCode)
		})
	}

	if c.MinStrength != nil || c.MaxStrength != nil {
		min, max := c.MinStrength, c.MaxStrength
		chain = append(chain, func(r *entities.ProductRecord) bool {
			v, ok := ParseStrength(r.StrengthText)
			if !ok {
				// Fail closed: an unparseable strength cannot
				// satisfy a numeric range.
				return false
			}
			if min != nil && v < *min {
				return false
			}
			if max != nil && v > *max {
				return false
			}
			return true
		})
	}

	if set := lowerSet(c.StrengthUnits); set != nil {
		chain = append(chain, func(r *entities.ProductRecord) bool {
			return inSet(set, r.DoseUnit)
		})
	}

	if set := lowerSet(c.Brands); set != nil {
		chain = append(chain, func(r *entities.ProductRecord) bool {
			return inSet(set, brands.Resolve(r.BrandID))
		})
	}

	if c.SpecialMarker != nil {
		want := *c.SpecialMarker
		chain = append(chain, func(r *entities.ProductRecord) bool {
			return (r.SpecialMarker == specialMarkerValue) == want
		})
	}

	if set := lowerSet(c.Lateralities); set != nil {
		chain = append(chain, func(r *entities.ProductRecord) bool {
			return inSet(set, r.Laterality)
		})
	}

	if c.ValidOnly {
		now := time.Now()
		chain = append(chain, func(r *entities.ProductRecord) bool {
			return currentlyValid(r, now)
		})
	} else if c.ValidFromDate != nil || c.ValidToDate != nil {
		from, to := c.ValidFromDate, c.ValidToDate
		chain = append(chain, func(r *entities.ProductRecord) bool {
			return windowWithinBounds(r, from, to)
		})
	}

	return chain
}

// applyPredicates keeps only the records satisfying every stage of the chain
func applyPredicates(records []entities.ProductRecord, chain []predicate) []entities.ProductRecord {
	if len(chain) == 0 {
		return records
	}

	out := make([]entities.ProductRecord, 0, len(records))
	for i := range records {
		pass := true
		for _, p := range chain {
			if !p(&records[i]) {
				pass = false
				break
			}
		}
		if pass {
			out = append(out, records[i])
		}
	}
	return out
}

// PrescriptionRequired reports whether a prescription code binds the product
// to a prescription.
func PrescriptionRequired(code string) bool {
	_, ok := prescriptionRequiredCodes[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// Reimbursable reports whether a record is reimbursable, derived from a
// non-blank subsidy category.
func Reimbursable(r *entities.ProductRecord) bool {
	return strings.TrimSpace(r.SubsidyCategory) != ""
}

// manufacturerID picks the id resolved against the company table: the
// authorization holder when present, otherwise the distributor.
func manufacturerID(r *entities.ProductRecord) string {
	if r.CompanyID != "" {
		return r.CompanyID
	}
	return r.DistributorID
}

// currentlyValid reports whether the record's validity window contains now.
// An absent ValidFrom has always started, an absent ValidTo never ends.
func currentlyValid(r *entities.ProductRecord, now time.Time) bool {
	if r.ValidFrom != nil && now.Before(*r.ValidFrom) {
		return false
	}
	if r.ValidTo != nil && now.After(*r.ValidTo) {
		return false
	}
	return true
}

// windowWithinBounds keeps records whose own window starts no earlier than
// the from bound and ends no later than the to bound. An open-ended side of
// the record's window cannot satisfy the corresponding bound.
func windowWithinBounds(r *entities.ProductRecord, from, to *time.Time) bool {
	if from != nil {
		if r.ValidFrom == nil || r.ValidFrom.Before(*from) {
			return false
		}
	}
	if to != nil {
		if r.ValidTo == nil || r.ValidTo.After(*to) {
			return false
		}
	}
	return true
}

// lowerSet converts a criteria list to a lowercase lookup set; nil when the
// criterion is absent.
func lowerSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set[v] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

func inSet(set map[string]struct{}, value string) bool {
	_, ok := set[strings.ToLower(strings.TrimSpace(value))]
	return ok
}
