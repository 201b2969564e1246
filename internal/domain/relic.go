package domain

import "fmt"

// Relic is the fixed descriptive profile of a museum artifact that the
// language model is grounded on. Relics are immutable once loaded.
type Relic struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	Era     string `yaml:"era" json:"era"`
	Summary string `yaml:"summary" json:"summary"`
	Story   string `yaml:"story" json:"story"`
	Craft   string `yaml:"craft" json:"craft"`
}

// RelicSummary is the list projection served by /api/relics.
type RelicSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Era  string `json:"era"`
}

// Listing returns the list projection of the relic.
func (r Relic) Listing() RelicSummary {
	return RelicSummary{ID: r.ID, Name: r.Name, Era: r.Era}
}

// ValidateRelic validates a Relic loaded from an external source
func ValidateRelic(r *Relic) error {
	if r == nil {
		return fmt.Errorf("relic cannot be nil")
	}

	if r.ID == "" {
		return NewDomainErrorWithCause(ErrCodeValidation, ErrInvalidRelic.Message, fmt.Errorf("id is required"))
	}

	if r.Name == "" {
		return NewDomainErrorWithCause(ErrCodeValidation, ErrInvalidRelic.Message, fmt.Errorf("name is required for %q", r.ID))
	}

	return nil
}

// UnknownRelic is the placeholder background used when a relic id is not in
// the knowledge base.
var UnknownRelic = Relic{Name: "未知文物", Era: "未知"}
