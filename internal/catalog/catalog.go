// Package catalog resolves exercise names to canonical metadata.
//
// A Catalog starts from the built-in exercise list and can be overlaid with
// user entries loaded from YAML. Lookups are exact and case-insensitive.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownExercise is returned when a name has no catalog entry.
var ErrUnknownExercise = errors.New("unknown exercise")

// ExerciseType classifies a catalog entry.
type ExerciseType string

const (
	TypeCardio      ExerciseType = "cardio"
	TypeStrength    ExerciseType = "strength"
	TypeFlexibility ExerciseType = "flexibility"
	TypeSports      ExerciseType = "sports"
	TypeOther       ExerciseType = "other"
)

// ValidType returns true if t is a known exercise type.
func ValidType(t string) bool {
	switch ExerciseType(t) {
	case TypeCardio, TypeStrength, TypeFlexibility, TypeSports, TypeOther:
		return true
	default:
		return false
	}
}

// Entry is the canonical metadata for one exercise.
type Entry struct {
	Name              string       `yaml:"name" json:"name"`
	Type              ExerciseType `yaml:"type" json:"type"`
	CaloriesPerMinute float64      `yaml:"calories_per_minute" json:"calories_per_minute"`
	Category          string       `yaml:"category" json:"category"`
}

// Validate checks that the entry is usable.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return errors.New("name is required")
	}
	if !ValidType(string(e.Type)) {
		return fmt.Errorf("%s: invalid type %q", e.Name, e.Type)
	}
	if e.CaloriesPerMinute < 0 {
		return fmt.Errorf("%s: calories_per_minute must be >= 0", e.Name)
	}
	return nil
}

// Catalog is an immutable name-indexed set of entries. It is safe for
// concurrent reads.
type Catalog struct {
	entries []Entry
	byName  map[string]int
}

// New builds a catalog. Later entries replace earlier ones with the same
// case-insensitive name, keeping the original position.
func New(entries []Entry) *Catalog {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		byName:  make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		key := normalizeName(e.Name)
		if key == "" {
			continue
		}
		if idx, ok := c.byName[key]; ok {
			c.entries[idx] = e
			continue
		}
		c.byName[key] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c
}

// WithOverlay returns a new catalog with overlay entries added or replacing
// existing ones.
func (c *Catalog) WithOverlay(overlay []Entry) *Catalog {
	all := make([]Entry, 0, len(c.entries)+len(overlay))
	all = append(all, c.entries...)
	all = append(all, overlay...)
	return New(all)
}

// Resolve looks up a name, ignoring case and surrounding whitespace.
func (c *Catalog) Resolve(name string) (Entry, bool) {
	idx, ok := c.byName[normalizeName(name)]
	if !ok {
		return Entry{}, false
	}
	return c.entries[idx], true
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns a copy of all entries in catalog order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Names returns all entry names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}

// Search returns entries whose name contains query (case-insensitive).
// Names starting with the query come first; ties sort by name.
func (c *Catalog) Search(query string) []Entry {
	q := normalizeName(query)
	if q == "" {
		return nil
	}

	var out []Entry
	for _, e := range c.entries {
		if strings.Contains(strings.ToLower(e.Name), q) {
			out = append(out, e)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		pi := strings.HasPrefix(strings.ToLower(out[i].Name), q)
		pj := strings.HasPrefix(strings.ToLower(out[j].Name), q)
		if pi != pj {
			return pi
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// EstimateCalories returns caloriesPerMinute * minutes for the named exercise.
func (c *Catalog) EstimateCalories(name string, minutes int) (float64, error) {
	e, ok := c.Resolve(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownExercise, name)
	}
	if minutes <= 0 {
		return 0, nil
	}
	return e.CaloriesPerMinute * float64(minutes), nil
}

// overlayFile is the on-disk shape of a catalog overlay.
type overlayFile struct {
	Exercises []Entry `yaml:"exercises"`
}

// LoadFile reads overlay entries from a YAML file.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var f overlayFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	for i, e := range f.Exercises {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
	}
	return f.Exercises, nil
}

// Load returns the built-in catalog, overlaid with path when path is set.
func Load(path string) (*Catalog, error) {
	base := Builtin()
	if path == "" {
		return base, nil
	}
	overlay, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return base.WithOverlay(overlay), nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
