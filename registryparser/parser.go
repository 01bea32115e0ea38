package registryparser

import (
	"path/filepath"
	"time"

	"github.com/davzso/pharmadex-api/interfaces"
	"github.com/davzso/pharmadex-api/registryparser/entities"
)

// File names of the registry export inside the data directory.
const (
	productsFile  = "Products.txt"
	brandsFile    = "Brands.txt"
	atcCodesFile  = "AtcCodes.txt"
	companiesFile = "Companies.txt"
)

// Compile-time check to ensure RegistryParser implements Parser interface
var _ interfaces.Parser = (*RegistryParser)(nil)

// RegistryParser implements the Parser interface over a local export
// directory.
type RegistryParser struct {
	dataDir   string
	retention time.Duration
}

// NewRegistryParser creates a parser reading from dataDir. retentionYears
// bounds how long after its validity end a record is still loaded.
func NewRegistryParser(dataDir string, retentionYears int) *RegistryParser {
	if retentionYears <= 0 {
		retentionYears = 2
	}
	return &RegistryParser{
		dataDir:   dataDir,
		retention: time.Duration(retentionYears) * 365 * 24 * time.Hour,
	}
}

// ParseAll loads the primary product table and the three auxiliary reference
// tables. The product table is required; each reference table degrades to an
// empty vocabulary when its file is missing.
func (p *RegistryParser) ParseAll() ([]entities.ProductRecord, entities.ReferenceTable,
	entities.ReferenceTable, entities.ReferenceTable, error) {

	products, err := parseProducts(filepath.Join(p.dataDir, productsFile), p.retention)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	brands := parseReference(filepath.Join(p.dataDir, brandsFile), "brands")
	atcDescriptions := parseReference(filepath.Join(p.dataDir, atcCodesFile), "atc_codes")
	companies := parseReference(filepath.Join(p.dataDir, companiesFile), "companies")

	return products, brands, atcDescriptions, companies, nil
}
