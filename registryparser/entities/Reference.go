package entities

// UnknownName is returned when an id cannot be resolved through a reference
// table (for example when the auxiliary file was missing at load time).
const UnknownName = "unknown"

// ReferenceTable is one id→display-name vocabulary (brands, ATC descriptions,
// companies). Built once at load time and never mutated afterwards.
type ReferenceTable map[string]string

// Resolve returns the display name for id, or UnknownName when the table has
// no entry for it.
func (t ReferenceTable) Resolve(id string) string {
	if name, ok := t[id]; ok && name != "" {
		return name
	}
	return UnknownName
}
