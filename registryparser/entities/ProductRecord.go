package entities

import "time"

// ProductRecord is one pharmaceutical product/package variant from the
// national registry export. Records are immutable once loaded; pointer date
// fields are nil when the registry carries no value (or the open-ended
// sentinel).
type ProductRecord struct {
	ID       string `json:"id"`
	ParentID string `json:"parentId,omitempty"`

	ValidFrom *time.Time `json:"validFrom,omitempty"`
	ValidTo   *time.Time `json:"validTo,omitempty"`

	ProductCode string `json:"productCode,omitempty"`
	ATCCode     string `json:"atcCode,omitempty"`
	ISOCode     string `json:"isoCode,omitempty"`
	RegCode     string `json:"regCode,omitempty"`

	Name          string `json:"name"`
	ShortName     string `json:"shortName,omitempty"`
	SubstanceText string `json:"substanceText,omitempty"`
	Form          string `json:"form,omitempty"`
	Route         string `json:"route,omitempty"`

	StrengthText    string  `json:"strengthText,omitempty"`
	DoseAmount      float64 `json:"doseAmount,omitempty"`
	DoseUnit        string  `json:"doseUnit,omitempty"`
	PackAmount      float64 `json:"packAmount,omitempty"`
	PackUnit        string  `json:"packUnit,omitempty"`
	DailyDoseAmount float64 `json:"dailyDoseAmount,omitempty"`
	DailyDoseUnit   string  `json:"dailyDoseUnit,omitempty"`
	DailyDoseFactor float64 `json:"dailyDoseFactor,omitempty"`
	DaysOfTherapy   int     `json:"daysOfTherapy,omitempty"`

	PrescriptionCode string `json:"prescriptionCode,omitempty"`
	Substitutable    bool   `json:"substitutable"`
	SpecialMarker    string `json:"specialMarker,omitempty"`
	Laterality       string `json:"laterality,omitempty"`
	MultiWarranty    bool   `json:"multiWarranty"`
	SubsidyCategory  string `json:"subsidyCategory,omitempty"`

	CompanyID      string `json:"companyId,omitempty"`
	DistributorID  string `json:"distributorId,omitempty"`
	BrandID        string `json:"brandId,omitempty"`
	InStock        bool   `json:"inStock"`
	PublicationRef string `json:"publicationRef,omitempty"`
}
