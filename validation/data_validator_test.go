package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/davzso/pharmadex-api/registryparser/entities"
)

func datePtr(year, month, day int) *time.Time {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestValidateProduct(t *testing.T) {
	v := NewDataValidator()

	tests := []struct {
		name    string
		product *entities.ProductRecord
		wantErr bool
	}{
		{"valid", &entities.ProductRecord{ID: "1", Name: "Aspirin"}, false},
		{"nil", nil, true},
		{"missing id", &entities.ProductRecord{Name: "Aspirin"}, true},
		{"blank name", &entities.ProductRecord{ID: "1", Name: "  "}, true},
		{"name too long", &entities.ProductRecord{ID: "1", Name: strings.Repeat("x", 251)}, true},
		{
			"inverted window",
			&entities.ProductRecord{
				ID: "1", Name: "Aspirin",
				ValidFrom: datePtr(2024, 1, 1),
				ValidTo:   datePtr(2020, 1, 1),
			},
			true,
		},
		{
			"open window",
			&entities.ProductRecord{ID: "1", Name: "Aspirin", ValidFrom: datePtr(2024, 1, 1)},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateProduct(tt.product)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProduct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDataIntegrityRejectsDuplicates(t *testing.T) {
	v := NewDataValidator()

	products := []entities.ProductRecord{
		{ID: "1", Name: "Aspirin"},
		{ID: "2", Name: "Nurofen"},
		{ID: "1", Name: "Aspirin Forte"},
	}

	if err := v.ValidateDataIntegrity(products); err == nil {
		t.Error("Duplicate ids should fail integrity validation")
	}

	if err := v.ValidateDataIntegrity(products[:2]); err != nil {
		t.Errorf("Distinct ids should pass, got %v", err)
	}
}

func TestReportDataQuality(t *testing.T) {
	v := NewDataValidator()

	products := []entities.ProductRecord{
		{ID: "1", Name: "Aspirin", ATCCode: "N02BA01", CompanyID: "c1", StrengthText: "100mg"},
		{ID: "1", Name: "Aspirin Copy", ATCCode: "N02BA01", CompanyID: "c1", StrengthText: "100mg"},
		{ID: "2", Name: "No ATC", CompanyID: "c1", StrengthText: "5mg"},
		{ID: "3", Name: "No Company", ATCCode: "A01", StrengthText: "5mg"},
		{ID: "4", Name: "No Strength", ATCCode: "A01", DistributorID: "d1"},
		{
			ID: "5", Name: "Inverted", ATCCode: "A01", CompanyID: "c1", StrengthText: "5mg",
			ValidFrom: datePtr(2024, 1, 1), ValidTo: datePtr(2020, 1, 1),
		},
	}

	report := v.ReportDataQuality(products)

	if len(report.DuplicateIDs) != 1 || report.DuplicateIDs[0] != "1" {
		t.Errorf("Expected duplicate id 1, got %v", report.DuplicateIDs)
	}
	if report.ProductsWithoutATC != 1 {
		t.Errorf("Expected 1 product without ATC, got %d", report.ProductsWithoutATC)
	}
	if report.ProductsWithoutCompany != 1 {
		t.Errorf("Expected 1 product without company, got %d", report.ProductsWithoutCompany)
	}
	if report.ProductsWithoutStrength != 1 {
		t.Errorf("Expected 1 product without strength, got %d", report.ProductsWithoutStrength)
	}
	if len(report.InvalidValidityWindows) != 1 || report.InvalidValidityWindows[0] != "5" {
		t.Errorf("Expected inverted window for id 5, got %v", report.InvalidValidityWindows)
	}
}

func TestValidateInput(t *testing.T) {
	v := NewDataValidator()

	valid := []string{
		"aspirin",
		"ASPIRIN PROTECT 100MG",
		"gyógyszer",
		"12.5 mg",
		"b-complex+c",
	}
	for _, input := range valid {
		if err := v.ValidateInput(input); err != nil {
			t.Errorf("ValidateInput(%q) should pass, got %v", input, err)
		}
	}

	invalid := []string{
		"",
		strings.Repeat("a", 101),
		"<script>alert(1)</script>",
		"aspirin'; drop table products--",
		"../../etc/passwd",
		"${jndi:ldap}",
		"aspirin;select",
	}
	for _, input := range invalid {
		if err := v.ValidateInput(input); err == nil {
			t.Errorf("ValidateInput(%q) should fail", input)
		}
	}
}
