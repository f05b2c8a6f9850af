package metadata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/natefinch/atomic"
)

// ErrMultipleDefaults is returned by Validate when a menu list flags more than
// one entry as the default.
var ErrMultipleDefaults = errors.New("more than one default entry")

// MenuItem is one dropdown entry.
type MenuItem struct {
	Value       string `json:"value"`
	DisplayText string `json:"display_text"`
	Default     int    `json:"default"`
}

// ImageMetadata is the shape of image_metadata.json.
type ImageMetadata struct {
	AvailableIssueDates []MenuItem `json:"available_issue_dates"`
	AvailableSpecies    []MenuItem `json:"available_species"`
	AvailablePhenophase []MenuItem `json:"available_phenophase"`
	AvailableImages     []string   `json:"available_images"`

	images map[string]struct{}
}

// Decode parses an image metadata document.
func Decode(r io.Reader) (*ImageMetadata, error) {
	var m ImageMetadata
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse image metadata: %w", err)
	}
	m.normalize()
	return &m, nil
}

// Load reads and parses the metadata file at path.
func Load(path string) (*ImageMetadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open image metadata at %s: %w", path, err)
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// normalize replaces nil lists with empty ones so the JSON written back out
// always carries every key, and indexes the image list.
func (m *ImageMetadata) normalize() {
	if m.AvailableIssueDates == nil {
		m.AvailableIssueDates = []MenuItem{}
	}
	if m.AvailableSpecies == nil {
		m.AvailableSpecies = []MenuItem{}
	}
	if m.AvailablePhenophase == nil {
		m.AvailablePhenophase = []MenuItem{}
	}
	if m.AvailableImages == nil {
		m.AvailableImages = []string{}
	}
	m.images = make(map[string]struct{}, len(m.AvailableImages))
	for _, name := range m.AvailableImages {
		m.images[name] = struct{}{}
	}
}

// Validate checks that every menu list has at most one default entry.
func (m *ImageMetadata) Validate() error {
	lists := []struct {
		name  string
		items []MenuItem
	}{
		{"available_issue_dates", m.AvailableIssueDates},
		{"available_species", m.AvailableSpecies},
		{"available_phenophase", m.AvailablePhenophase},
	}
	for _, l := range lists {
		n := 0
		for _, item := range l.items {
			if item.Default == 1 {
				n++
			}
		}
		if n > 1 {
			return fmt.Errorf("%s: %w (%d)", l.name, ErrMultipleDefaults, n)
		}
	}
	return nil
}

// HasImage reports whether filename is listed in available_images.
func (m *ImageMetadata) HasImage(filename string) bool {
	if m.images == nil {
		for _, name := range m.AvailableImages {
			if name == filename {
				return true
			}
		}
		return false
	}
	_, ok := m.images[filename]
	return ok
}

// DefaultIndex returns the index of the default entry, or 0 when no entry is
// flagged.
func DefaultIndex(items []MenuItem) int {
	for i, item := range items {
		if item.Default == 1 {
			return i
		}
	}
	return 0
}

// Marshal encodes the metadata the way it is published next to the page.
func (m *ImageMetadata) Marshal() ([]byte, error) {
	m.normalize()
	data, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal image metadata: %w", err)
	}
	return data, nil
}

// Write atomically replaces the file at path so a browser never reads a
// partial document.
func (m *ImageMetadata) Write(path string) error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
