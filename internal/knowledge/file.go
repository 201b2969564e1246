package knowledge

import (
	"fmt"
	"os"

	"github.com/cloo-solutions/relicguide/internal/domain"
	"gopkg.in/yaml.v3"
)

type relicFile struct {
	Relics []domain.Relic `yaml:"relics"`
}

type aliasFile struct {
	Aliases []domain.VideoAlias `yaml:"aliases"`
}

// LoadStore builds the knowledge base from path, or from the built-in
// relics when path is empty.
func LoadStore(path string) (*Store, error) {
	if path == "" {
		return NewStore(DefaultRelics())
	}

	var f relicFile
	if err := decodeFile(path, &f); err != nil {
		return nil, err
	}
	if len(f.Relics) == 0 {
		return nil, fmt.Errorf("knowledge file %s: no relics defined", path)
	}
	return NewStore(f.Relics)
}

// LoadVideoIndex builds the alias table from path, or from the built-in
// aliases when path is empty.
func LoadVideoIndex(path string) (*VideoIndex, error) {
	if path == "" {
		return NewVideoIndex(DefaultAliases())
	}

	var f aliasFile
	if err := decodeFile(path, &f); err != nil {
		return nil, err
	}
	return NewVideoIndex(f.Aliases)
}

func decodeFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
