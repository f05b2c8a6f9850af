package metadata

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleJSON = `{
    "available_issue_dates": [
        {"value": "2018-02-01", "display_text": "Feb 01, 2018", "default": 0},
        {"value": "2018-02-08", "display_text": "Feb 08, 2018", "default": 1}
    ],
    "available_species": [
        {"value": "acer_rubrum", "display_text": "red maple (acer rubrum)", "default": 1}
    ],
    "available_phenophase": [
        {"value": "371", "display_text": "Leaves", "default": 1},
        {"value": "501", "display_text": "Flowers", "default": 0}
    ],
    "available_images": ["acer_rubrum_371_2018-02-08_map.png"]
}`

func TestDecode(t *testing.T) {
	m, err := Decode(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(m.AvailableIssueDates) != 2 {
		t.Errorf("Expected 2 issue dates, got %d", len(m.AvailableIssueDates))
	}
	if m.AvailableSpecies[0].DisplayText != "red maple (acer rubrum)" {
		t.Errorf("Unexpected species display text %q", m.AvailableSpecies[0].DisplayText)
	}
	if !m.HasImage("acer_rubrum_371_2018-02-08_map.png") {
		t.Error("Expected image to be available")
	}
	if m.HasImage("acer_rubrum_501_2018-02-08_map.png") {
		t.Error("Expected image to be unavailable")
	}
}

func TestDecodeMissingListsAreEmpty(t *testing.T) {
	m, err := Decode(strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if m.AvailableSpecies == nil || m.AvailableImages == nil {
		t.Error("Expected missing lists to decode as empty slices")
	}
	if m.HasImage("anything.png") {
		t.Error("Expected no images")
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"available_images": 3}`)); err == nil {
		t.Error("Expected error for malformed metadata")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		meta    ImageMetadata
		wantErr bool
	}{
		{
			name: "single default per list",
			meta: ImageMetadata{
				AvailableSpecies:    []MenuItem{{Value: "a", Default: 1}, {Value: "b"}},
				AvailablePhenophase: []MenuItem{{Value: "371", Default: 1}},
			},
		},
		{
			name: "no defaults",
			meta: ImageMetadata{AvailableSpecies: []MenuItem{{Value: "a"}, {Value: "b"}}},
		},
		{
			name: "two defaults",
			meta: ImageMetadata{
				AvailableIssueDates: []MenuItem{{Value: "2018-02-01", Default: 1}, {Value: "2018-02-08", Default: 1}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.meta.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrMultipleDefaults) {
					t.Errorf("Expected ErrMultipleDefaults, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestDefaultIndex(t *testing.T) {
	items := []MenuItem{{Value: "a"}, {Value: "b", Default: 1}, {Value: "c"}}
	if got := DefaultIndex(items); got != 1 {
		t.Errorf("Expected 1, got %d", got)
	}
	if got := DefaultIndex(items[:1]); got != 0 {
		t.Errorf("Expected 0 without a default, got %d", got)
	}
}

func TestWriteAndLoad(t *testing.T) {
	m, err := Decode(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "image_metadata.json")
	if err := m.Write(path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.AvailableImages) != 1 || !loaded.HasImage("acer_rubrum_371_2018-02-08_map.png") {
		t.Errorf("Round trip lost images: %v", loaded.AvailableImages)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestStore(t *testing.T) {
	s := NewStore(nil)
	if _, ok := s.Get(); ok {
		t.Error("Expected empty store")
	}
	m := &ImageMetadata{}
	s.Set(m)
	got, ok := s.Get()
	if !ok || got != m {
		t.Error("Expected stored metadata")
	}
}
