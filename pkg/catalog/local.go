package catalog

import (
	"fmt"
	"os"

	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/pkg/miotspec"
)

// LoadInstanceFile reads and decodes a local JSON instance document.
func LoadInstanceFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := miotspec.DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}
