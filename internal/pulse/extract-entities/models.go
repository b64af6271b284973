// internal/pulse/extract-entities/models.go
package extractentities

// Entities holds what was pulled out of a query. Sector is empty when absent.
type Entities struct {
	Sector string `json:"sector,omitempty"`
}

// HasSector reports whether a sector token was found.
func (e Entities) HasSector() bool {
	return e.Sector != ""
}

// SectorOr returns the extracted sector or the caller-supplied fallback.
func (e Entities) SectorOr(fallback string) string {
	if e.Sector == "" {
		return fallback
	}
	return e.Sector
}

// SectorVocabulary is the fixed set of sector tokens, in priority order for
// matches starting at the same position.
var SectorVocabulary = []string{"ai", "fintech", "healthtech", "saas", "climate"}
