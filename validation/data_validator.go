// Package validation provides data validation for the pharmadex API.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/davzso/pharmadex-api/interfaces"
	"github.com/davzso/pharmadex-api/logging"
	"github.com/davzso/pharmadex-api/registryparser/entities"
)

// Pre-compiled patterns, compiled once at package initialization
var (
	// Input validation: alphanumeric + Hungarian accents + safe punctuation
	inputRegex = regexp.MustCompile(`^[a-zA-Z0-9\s\-\.\+%/'áéíóöőúüűÁÉÍÓÖŐÚÜŰ]+$`)

	// Dangerous substrings checked before the regex; strings.Contains is
	// much faster than regex for plain substring matching
	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "onload=", "onerror=",
		"eval(", "expression(", "union select", "drop table", "delete from",
		"insert into", "--", "/*", "*/", "exec(", "execute(",
		"../", "..\\", "%2e%2e", "file://",
		"`", "$(", "${",
	}
)

// maxInputLength bounds user-supplied search terms
const maxInputLength = 100

// Compile-time check to ensure DataValidatorImpl implements DataValidator
var _ interfaces.DataValidator = (*DataValidatorImpl)(nil)

// DataValidatorImpl implements the interfaces.DataValidator interface
type DataValidatorImpl struct{}

// NewDataValidator creates a new data validator
func NewDataValidator() *DataValidatorImpl {
	return &DataValidatorImpl{}
}

// ValidateProduct checks if a product record is structurally valid
func (v *DataValidatorImpl) ValidateProduct(p *entities.ProductRecord) error {
	if p == nil {
		return fmt.Errorf("product is nil")
	}

	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("missing product id")
	}

	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("empty name for product %s", p.ID)
	}

	if len(p.Name) > 250 {
		return fmt.Errorf("name too long for product %s: %d characters", p.ID, len(p.Name))
	}

	if p.ValidFrom != nil && p.ValidTo != nil && p.ValidTo.Before(*p.ValidFrom) {
		return fmt.Errorf("validity window inverted for product %s", p.ID)
	}

	return nil
}

// ValidateDataIntegrity performs dataset-level validation before a snapshot
// swap: a duplicate id or inverted validity window blocks the swap.
func (v *DataValidatorImpl) ValidateDataIntegrity(products []entities.ProductRecord) error {
	seen := make(map[string]bool, len(products))
	for i := range products {
		if err := v.ValidateProduct(&products[i]); err != nil {
			return err
		}
		if seen[products[i].ID] {
			return fmt.Errorf("duplicate product id found: %s", products[i].ID)
		}
		seen[products[i].ID] = true
	}
	return nil
}

// ReportDataQuality generates a data quality report with all issues found.
// Nothing in the report blocks a swap on its own; the refresh logs it.
func (v *DataValidatorImpl) ReportDataQuality(products []entities.ProductRecord) *interfaces.DataQualityReport {
	report := &interfaces.DataQualityReport{}

	idCount := make(map[string]int, len(products))
	for i := range products {
		r := &products[i]
		idCount[r.ID]++

		if r.ATCCode == "" {
			report.ProductsWithoutATC++
		}
		if r.CompanyID == "" && r.DistributorID == "" {
			report.ProductsWithoutCompany++
		}
		if strings.TrimSpace(r.StrengthText) == "" {
			report.ProductsWithoutStrength++
		}
		if r.ValidFrom != nil && r.ValidTo != nil && r.ValidTo.Before(*r.ValidFrom) {
			report.InvalidValidityWindows = append(report.InvalidValidityWindows, r.ID)
		}
	}

	for id, count := range idCount {
		if count > 1 {
			report.DuplicateIDs = append(report.DuplicateIDs, id)
		}
	}

	return report
}

// ValidateInput validates user-supplied search input
func (v *DataValidatorImpl) ValidateInput(input string) error {
	if input == "" {
		return fmt.Errorf("input cannot be empty")
	}

	if len(input) > maxInputLength {
		return fmt.Errorf("input too long: %d characters (max %d)", len(input), maxInputLength)
	}

	lowered := strings.ToLower(input)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowered, pattern) {
			logging.Warn("Dangerous pattern in user input", "pattern", pattern)
			return fmt.Errorf("input contains disallowed characters")
		}
	}

	if !inputRegex.MatchString(input) {
		return fmt.Errorf("input contains invalid characters")
	}

	return nil
}
