package knowledge

import (
	"fmt"

	"github.com/cloo-solutions/relicguide/internal/domain"
)

// VideoIndex is an immutable mapping from recognized phrase to asset file name.
type VideoIndex struct {
	files map[string]string
}

// NewVideoIndex builds a VideoIndex. Phrases are matched exactly.
func NewVideoIndex(aliases []domain.VideoAlias) (*VideoIndex, error) {
	idx := &VideoIndex{files: make(map[string]string, len(aliases))}
	for _, a := range aliases {
		if err := domain.ValidateVideoAlias(a); err != nil {
			return nil, err
		}
		if _, exists := idx.files[a.Phrase]; exists {
			return nil, fmt.Errorf("duplicate video alias %q", a.Phrase)
		}
		idx.files[a.Phrase] = a.FileName
	}
	return idx, nil
}

// Lookup returns the file name mapped to phrase.
func (v *VideoIndex) Lookup(phrase string) (string, bool) {
	f, ok := v.files[phrase]
	return f, ok
}

// Len returns the number of aliases.
func (v *VideoIndex) Len() int {
	return len(v.files)
}
