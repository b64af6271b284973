// internal/models/startup.go
package models

// Founder is a founder entry attached to a startup record.
type Founder struct {
	Name       string `json:"name" db:"name" validate:"required"`
	Background string `json:"background" db:"background"`
}

// Startup is a read-only reference record from the portfolio dataset.
type Startup struct {
	ID       string    `json:"id" db:"id" validate:"required"`
	Name     string    `json:"name" db:"name" validate:"required"`
	Sector   string    `json:"sector" db:"sector" validate:"required"`
	Stage    string    `json:"stage" db:"stage" validate:"required"`
	Founders []Founder `json:"founders" validate:"dive"`
}

// Clone returns a deep copy so derived payloads never share the founders
// backing array with the dataset.
func (s Startup) Clone() Startup {
	out := s
	if s.Founders != nil {
		out.Founders = append([]Founder(nil), s.Founders...)
	}
	return out
}

const StageSeed = "Seed"
