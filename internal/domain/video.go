package domain

import (
	"fmt"
	"strings"
)

// VideoAlias maps a recognized phrase to an asset file name.
type VideoAlias struct {
	Phrase   string `yaml:"phrase"`
	FileName string `yaml:"file"`
}

// ValidateVideoAlias validates an alias entry loaded from an external source
func ValidateVideoAlias(a VideoAlias) error {
	if a.Phrase == "" {
		return NewDomainErrorWithCause(ErrCodeValidation, ErrInvalidAlias.Message, fmt.Errorf("phrase is required"))
	}
	if a.FileName == "" || strings.ContainsAny(a.FileName, `/\`) {
		return NewDomainErrorWithCause(ErrCodeValidation, ErrInvalidAlias.Message, fmt.Errorf("invalid file name %q for phrase %q", a.FileName, a.Phrase))
	}
	return nil
}

// ResolutionTier names the step of the video lookup that produced a result.
type ResolutionTier string

const (
	TierAlias       ResolutionTier = "alias"
	TierSynthesized ResolutionTier = "synthesized"
	TierFallback    ResolutionTier = "fallback"
)

// CachedSizeHint is reported instead of a size for fallback assets.
const CachedSizeHint = "Cached"

// AssetReference is a resolved, servable video asset.
type AssetReference struct {
	FileName string
	URL      string
	SizeHint string
	Message  string
	Tier     ResolutionTier
}
