package registryparser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/davzso/pharmadex-api/logging"
	"github.com/davzso/pharmadex-api/registryparser/entities"
)

// Column layout of the primary product table. The export carries 33 columns;
// rows shorter than minProductColumns are dropped, columns past the minimum
// are optional.
const (
	colID = iota
	colParentID
	colValidFrom
	colValidTo
	colProductCode
	colATCCode
	colISOCode
	colRegCode
	colName
	colShortName
	colSubstanceText
	colForm
	colRoute
	colStrengthText
	colDoseAmount
	colDoseUnit
	colPackAmount
	colPackUnit
	colDailyDoseAmount
	colDailyDoseUnit
	colDailyDoseFactor
	colDaysOfTherapy
	colPrescriptionCode
	colSubstitutable
	colSpecialMarker
	colLaterality
	colMultiWarranty
	colSubsidyCategory
	colCompanyID
	colDistributorID
	colBrandID
	colInStock
	colPublicationRef

	productColumnCount = 33
)

const minProductColumns = 24

// dateLayout is the fixed textual date pattern of the registry exports.
// noEndDateSentinel marks an open-ended validity window.
const (
	dateLayout        = "2006.01.02"
	noEndDateSentinel = "9999.12.31"
)

// parseDate maps a registry date field to a time value. Blank fields, the
// open-ended sentinel and unparseable values all map to nil rather than an
// error: an absent date is a valid state of a record, not a failure.
func parseDate(s string) *time.Time {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".")
	if s == "" || s == strings.TrimSuffix(noEndDateSentinel, ".") {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// parseAmount reads a numeric field that may use a comma as decimal
// separator. Unparseable values degrade to 0 (field-level recovery).
func parseAmount(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseFlag reads a boolean field. The exports use I/N (igen/nem) but older
// snapshots carry 1/0, so both spellings are accepted.
func parseFlag(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "1", "I", "IGEN", "X", "TRUE":
		return true
	}
	return false
}

// parseProducts reads the primary product table. Rows are dropped when they
// have fewer than minProductColumns fields, when the id or name is blank, or
// when their validity ended more than retention ago (bounding memory for an
// export that spans many years of history). A missing or unreadable file is
// fatal: there is no engine without the core table.
func parseProducts(path string, retention time.Duration) ([]entities.ProductRecord, error) {
	cutoff := time.Now().Add(-retention)

	var products []entities.ProductRecord
	lineCount := 0
	skippedMissingColumns := 0
	skippedFormatErrors := 0
	skippedExpired := 0

	err := readTSV(path, func(line int, fields []string) {
		lineCount++

		if len(fields) < minProductColumns {
			skippedMissingColumns++
			return
		}

		id := fields[colID]
		name := fields[colName]
		if id == "" || name == "" {
			skippedFormatErrors++
			return
		}

		validFrom := parseDate(fields[colValidFrom])
		validTo := parseDate(fields[colValidTo])

		// Retention horizon: long-expired records are dropped, recently
		// expired ones stay available.
		if validTo != nil && validTo.Before(cutoff) {
			skippedExpired++
			return
		}

		daysOfTherapy, _ := strconv.Atoi(strings.TrimSpace(col(fields, colDaysOfTherapy)))

		record := entities.ProductRecord{
			ID:               id,
			ParentID:         fields[colParentID],
			ValidFrom:        validFrom,
			ValidTo:          validTo,
			ProductCode:      fields[colProductCode],
			ATCCode:          fields[colATCCode],
			ISOCode:          fields[colISOCode],
			RegCode:          fields[colRegCode],
			Name:             name,
			ShortName:        fields[colShortName],
			SubstanceText:    fields[colSubstanceText],
			Form:             fields[colForm],
			Route:            fields[colRoute],
			StrengthText:     fields[colStrengthText],
			DoseAmount:       parseAmount(fields[colDoseAmount]),
			DoseUnit:         fields[colDoseUnit],
			PackAmount:       parseAmount(fields[colPackAmount]),
			PackUnit:         fields[colPackUnit],
			DailyDoseAmount:  parseAmount(fields[colDailyDoseAmount]),
			DailyDoseUnit:    fields[colDailyDoseUnit],
			DailyDoseFactor:  parseAmount(fields[colDailyDoseFactor]),
			DaysOfTherapy:    daysOfTherapy,
			PrescriptionCode: fields[colPrescriptionCode],
			Substitutable:    parseFlag(fields[colSubstitutable]),
			SpecialMarker:    col(fields, colSpecialMarker),
			Laterality:       col(fields, colLaterality),
			MultiWarranty:    parseFlag(col(fields, colMultiWarranty)),
			SubsidyCategory:  col(fields, colSubsidyCategory),
			CompanyID:        col(fields, colCompanyID),
			DistributorID:    col(fields, colDistributorID),
			BrandID:          col(fields, colBrandID),
			InStock:          parseFlag(col(fields, colInStock)),
			PublicationRef:   col(fields, colPublicationRef),
		}

		products = append(products, record)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse product table: %w", err)
	}

	logSkips("products", lineCount, skippedMissingColumns, skippedFormatErrors, skippedExpired, len(products))
	logging.Info("Product table parsed", "records", len(products))

	return products, nil
}
