// Package preset exposes the read-only query surface of the decoding preset
// registry: named, versioned bundles of speech-recognition decoding parameters.
package preset

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var (
	ErrUnknownModel   = errors.New("unknown model")
	ErrUnknownVersion = errors.New("unknown preset version")
	ErrInvalidCatalog = errors.New("invalid preset catalog")
)

// DefaultModel is the medium model the built-in presets were tuned for.
const DefaultModel = "kotoba-tech/kotoba-whisper-v2.0-faster"

// Preset is one versioned set of decoding parameters.
type Preset struct {
	Version                 int     `yaml:"version"`
	Description             string  `yaml:"description"`
	BeamSize                int     `yaml:"beam_size"`
	ChunkLength             int     `yaml:"chunk_length"`
	VADFilter               bool    `yaml:"vad_filter"`
	ConditionOnPreviousText bool    `yaml:"condition_on_previous_text"`
	Temperature             float64 `yaml:"temperature"`
}

// Label renders the version as "V<n>".
func (p Preset) Label() string { return "V" + strconv.Itoa(p.Version) }

// Summary is the listing entry for a preset.
type Summary struct {
	Version     int
	Description string
	Current     bool
}

// Registry is the query interface of a preset store.
type Registry interface {
	Models() []string
	List(model string) ([]Summary, error)
	Get(model string, version int) (Preset, error)
	Current(model string) (int, error)
}

// ModelPresets holds every preset of one model plus the active version.
type ModelPresets struct {
	Current int      `yaml:"current"`
	Presets []Preset `yaml:"presets"`
}

// Catalog is an in-memory Registry.
type Catalog struct {
	models map[string]ModelPresets
}

var _ Registry = (*Catalog)(nil)

// NewCatalog validates models and returns a Catalog over a copy of them.
func NewCatalog(models map[string]ModelPresets) (*Catalog, error) {
	c := &Catalog{models: make(map[string]ModelPresets, len(models))}

	for name, mp := range models {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: empty model name", ErrInvalidCatalog)
		}
		if len(mp.Presets) == 0 {
			return nil, fmt.Errorf("%w: model %q has no presets", ErrInvalidCatalog, name)
		}

		seen := make(map[int]bool, len(mp.Presets))
		for _, p := range mp.Presets {
			if err := validatePreset(p); err != nil {
				return nil, fmt.Errorf("%w: model %q: %w", ErrInvalidCatalog, name, err)
			}
			if seen[p.Version] {
				return nil, fmt.Errorf("%w: model %q: duplicate version %d", ErrInvalidCatalog, name, p.Version)
			}
			seen[p.Version] = true
		}
		if !seen[mp.Current] {
			return nil, fmt.Errorf("%w: model %q: current version %d not defined", ErrInvalidCatalog, name, mp.Current)
		}

		presets := slices.Clone(mp.Presets)
		slices.SortFunc(presets, func(a, b Preset) int { return a.Version - b.Version })
		c.models[name] = ModelPresets{Current: mp.Current, Presets: presets}
	}

	return c, nil
}

func validatePreset(p Preset) error {
	switch {
	case p.Version < 1:
		return fmt.Errorf("version %d must be >= 1", p.Version)
	case p.BeamSize < 1:
		return fmt.Errorf("V%d: beam_size %d must be >= 1", p.Version, p.BeamSize)
	case p.ChunkLength < 1:
		return fmt.Errorf("V%d: chunk_length %d must be >= 1", p.Version, p.ChunkLength)
	case p.Temperature < 0:
		return fmt.Errorf("V%d: temperature %v must be >= 0", p.Version, p.Temperature)
	}

	return nil
}

// Models returns the model names in sorted order.
func (c *Catalog) Models() []string {
	names := make([]string, 0, len(c.models))
	for name := range c.models {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

func (c *Catalog) lookup(model string) (ModelPresets, error) {
	mp, ok := c.models[model]
	if !ok {
		return ModelPresets{}, fmt.Errorf("%w: %q", ErrUnknownModel, model)
	}

	return mp, nil
}

// List returns the presets of model ordered by version.
func (c *Catalog) List(model string) ([]Summary, error) {
	mp, err := c.lookup(model)
	if err != nil {
		return nil, err
	}

	out := make([]Summary, 0, len(mp.Presets))
	for _, p := range mp.Presets {
		out = append(out, Summary{Version: p.Version, Description: p.Description, Current: p.Version == mp.Current})
	}

	return out, nil
}

// Get returns one preset by version.
func (c *Catalog) Get(model string, version int) (Preset, error) {
	mp, err := c.lookup(model)
	if err != nil {
		return Preset{}, err
	}

	for _, p := range mp.Presets {
		if p.Version == version {
			return p, nil
		}
	}

	return Preset{}, fmt.Errorf("%w: V%d for %q", ErrUnknownVersion, version, model)
}

// Current returns the active version of model.
func (c *Catalog) Current(model string) (int, error) {
	mp, err := c.lookup(model)
	if err != nil {
		return 0, err
	}

	return mp.Current, nil
}

// ParseVersion accepts "2", "V2" or "v2".
func ParseVersion(s string) (int, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "V"), "v")

	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%w: %q (want N, VN or vN with N >= 1)", ErrUnknownVersion, s)
	}

	return v, nil
}
