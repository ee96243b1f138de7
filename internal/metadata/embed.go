package metadata

import (
	_ "embed"

	"go.uber.org/zap"

	"shortnum/internal/pattern"
)

//go:embed data/shortnumbers.yaml
var defaultDocument []byte

// LoadDefault builds a store from the dataset embedded in the binary.
func LoadDefault(cache *pattern.Cache, logger *zap.Logger) (*Store, error) {
	return Load(defaultDocument, cache, logger)
}
