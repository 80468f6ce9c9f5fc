package preset

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Models map[string]ModelPresets `yaml:"models"`
}

// LoadFile reads a YAML catalog of the form
//
//	models:
//	  <model name>:
//	    current: 1
//	    presets:
//	      - version: 1
//	        description: standard
//	        beam_size: 5
//	        ...
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return nil, errors.New("preset file path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a YAML catalog. Unknown keys are rejected.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f catalogFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidCatalog, err)
	}
	if len(f.Models) == 0 {
		return nil, fmt.Errorf("%w: no models defined", ErrInvalidCatalog)
	}

	return NewCatalog(f.Models)
}
