package generator

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Zachdehooge/phenology-viewer/internal/config"
	"github.com/Zachdehooge/phenology-viewer/internal/metadata"
)

func sampleMetadata() *metadata.ImageMetadata {
	return &metadata.ImageMetadata{
		AvailableIssueDates: []metadata.MenuItem{
			{Value: "2018-02-01", DisplayText: "Feb 01, 2018"},
			{Value: "2018-02-08", DisplayText: "Feb 08, 2018", Default: 1},
		},
		AvailableSpecies: []metadata.MenuItem{
			{Value: "acer_rubrum", DisplayText: "red maple (acer rubrum)"},
			{Value: "quercus_alba", DisplayText: "white oak (quercus alba)"},
		},
		AvailablePhenophase: metadata.Phenophases,
		AvailableImages:     []string{"acer_rubrum_371_2018-02-08_map.png"},
	}
}

func TestMenu(t *testing.T) {
	tests := []struct {
		name     string
		items    []metadata.MenuItem
		selected int
	}{
		{"default flagged", sampleMetadata().AvailableIssueDates, 1},
		{"no default selects first", sampleMetadata().AvailableSpecies, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := Menu(tt.items)
			if len(options) != len(tt.items) {
				t.Fatalf("Expected %d options, got %d", len(tt.items), len(options))
			}
			for i, opt := range options {
				if opt.Selected != (i == tt.selected) {
					t.Errorf("Option %d selected=%v, expected only %d selected", i, opt.Selected, tt.selected)
				}
				if opt.Value != tt.items[i].Value || opt.Text != tt.items[i].DisplayText {
					t.Errorf("Option %d does not match item: %+v", i, opt)
				}
			}
		})
	}

	if got := Menu(nil); len(got) != 0 {
		t.Errorf("Expected no options for an empty list, got %d", len(got))
	}
}

func TestRenderPagePreselectsDefaults(t *testing.T) {
	data, err := NewPageData(config.Default(), sampleMetadata())
	if err != nil {
		t.Fatalf("NewPageData failed: %v", err)
	}
	data.APIURL = "/api/view"

	var buf bytes.Buffer
	if err := RenderPage(&buf, data); err != nil {
		t.Fatalf("RenderPage failed: %v", err)
	}
	page := buf.String()

	for _, want := range []string{
		`<option value="2018-02-08" selected>Feb 08, 2018</option>`,
		`<option value="acer_rubrum" selected>red maple (acer rubrum)</option>`,
		`<option value="501" selected>Flowers</option>`,
		`<option value="371">Leaves</option>`,
		`<option value="static" selected>Static map</option>`,
		`<option value="2018-02-01">Feb 01, 2018</option>`,
		`id="leaflet_map" style="display: none;"`,
		`id="static_map_prediction"`,
		`id="forecast_info"`,
		`const apiURL = "/api/view";`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("Rendered page missing %q", want)
		}
	}
	if strings.Contains(page, "new WebSocket") {
		t.Error("Live reload script should only be rendered when enabled")
	}
}

func TestRenderPageGuardsMapType(t *testing.T) {
	data, err := NewPageData(config.Default(), sampleMetadata())
	if err != nil {
		t.Fatalf("NewPageData failed: %v", err)
	}
	var buf bytes.Buffer
	if err := RenderPage(&buf, data); err != nil {
		t.Fatalf("RenderPage failed: %v", err)
	}
	page := buf.String()

	if !strings.Contains(page, `const mapTypes = ["static","interactive"];`) {
		t.Error("Expected the page to know the accepted map types")
	}
	if !strings.Contains(page, "if (mapTypes.indexOf(sel.map_type_select) === -1) return null;") {
		t.Error("Expected in-page resolution to reject unknown map types before toggling")
	}
	if got := data.MapTypeValues(); len(got) != 2 || got[0] != "static" || got[1] != "interactive" {
		t.Errorf("Unexpected map type values %v", got)
	}
}

func TestRenderIntro(t *testing.T) {
	html, err := RenderIntro("Forecasts from **PRISM** and CFSv2.<script>alert(1)</script>")
	if err != nil {
		t.Fatalf("RenderIntro failed: %v", err)
	}
	if !strings.Contains(string(html), "<strong>PRISM</strong>") {
		t.Errorf("Expected markdown to render, got %s", html)
	}
	if strings.Contains(string(html), "<script>") {
		t.Errorf("Expected script to be sanitized, got %s", html)
	}

	empty, err := RenderIntro("")
	if err != nil || empty != "" {
		t.Errorf("Expected empty intro, got %q (%v)", empty, err)
	}
}

func TestGenerateSite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	if err := GenerateSite(dir, config.Default(), sampleMetadata()); err != nil {
		t.Fatalf("GenerateSite failed: %v", err)
	}

	page, err := os.ReadFile(filepath.Join(dir, "index.html"))
	if err != nil {
		t.Fatalf("index.html not written: %v", err)
	}
	if !strings.Contains(string(page), `const apiURL = "";`) {
		t.Error("Static site should resolve selections in the page")
	}

	meta, err := metadata.Load(filepath.Join(dir, "image_metadata.json"))
	if err != nil {
		t.Fatalf("image_metadata.json not readable: %v", err)
	}
	if !meta.HasImage("acer_rubrum_371_2018-02-08_map.png") {
		t.Error("Expected written metadata to keep images")
	}
}
