// Package dictionary holds the static word lists the heuristic detectors
// consult: known person-name tokens, known location phrases, and a stopword
// list of common English words.
//
// The lists ship as embedded YAML data files and are loaded once at startup;
// a Dictionary is immutable after Load and safe for concurrent readers. The
// config layer may point any of the three lists at an override file on disk.
package dictionary

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Dictionary is the immutable word-list set used by the heuristic detectors.
type Dictionary struct {
	names     map[string]struct{}
	stopwords map[string]struct{}

	// Location phrases keep their file order: the dictionary matcher scans
	// phrase by phrase, and that order decides which of two same-start spans
	// sorts first in the aggregator.
	locations   []string
	locationSet map[string]struct{}
}

// yaml shapes for the three data files.
type namesFile struct {
	Names []string `yaml:"names"`
}
type locationsFile struct {
	Locations []string `yaml:"locations"`
}
type stopwordsFile struct {
	Stopwords []string `yaml:"stopwords"`
}

// Overrides names optional on-disk replacements for the embedded lists.
// Empty fields keep the embedded data.
type Overrides struct {
	NamesPath     string
	LocationsPath string
	StopwordsPath string
}

// Load builds a Dictionary from the embedded data files, applying any
// configured overrides.
func Load(ov Overrides) (*Dictionary, error) {
	d := &Dictionary{
		names:       make(map[string]struct{}),
		stopwords:   make(map[string]struct{}),
		locationSet: make(map[string]struct{}),
	}

	var nf namesFile
	if err := loadYAML("data/names.yaml", ov.NamesPath, &nf); err != nil {
		return nil, err
	}
	for _, n := range nf.Names {
		d.names[normalize(n)] = struct{}{}
	}

	var lf locationsFile
	if err := loadYAML("data/locations.yaml", ov.LocationsPath, &lf); err != nil {
		return nil, err
	}
	for _, l := range lf.Locations {
		phrase := normalize(l)
		if _, dup := d.locationSet[phrase]; dup {
			continue
		}
		d.locationSet[phrase] = struct{}{}
		d.locations = append(d.locations, phrase)
	}

	var sf stopwordsFile
	if err := loadYAML("data/stopwords.yaml", ov.StopwordsPath, &sf); err != nil {
		return nil, err
	}
	for _, s := range sf.Stopwords {
		d.stopwords[normalize(s)] = struct{}{}
	}

	return d, nil
}

// loadYAML reads either the override file or the embedded default into out.
func loadYAML(embedded, override string, out any) error {
	var (
		data []byte
		err  error
		src  = embedded
	)
	if override != "" {
		src = override
		data, err = os.ReadFile(override)
	} else {
		data, err = dataFS.ReadFile(embedded)
	}
	if err != nil {
		return fmt.Errorf("read dictionary %s: %w", src, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse dictionary %s: %w", src, err)
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsName reports whether the lowercase key is a known person-name token.
func (d *Dictionary) IsName(key string) bool {
	_, ok := d.names[key]
	return ok
}

// IsStopword reports whether the lowercase key is a common English word.
func (d *Dictionary) IsStopword(key string) bool {
	_, ok := d.stopwords[key]
	return ok
}

// Locations returns the location phrases in scan order.
// Callers must not mutate the returned slice.
func (d *Dictionary) Locations() []string {
	return d.locations
}

// NameCount returns the number of name tokens loaded.
func (d *Dictionary) NameCount() int { return len(d.names) }

// LocationCount returns the number of location phrases loaded.
func (d *Dictionary) LocationCount() int { return len(d.locations) }

// StopwordCount returns the number of stopwords loaded.
func (d *Dictionary) StopwordCount() int { return len(d.stopwords) }
