package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/Zachdehooge/phenology-viewer/internal/config"
	"github.com/Zachdehooge/phenology-viewer/internal/metadata"
	"github.com/Zachdehooge/phenology-viewer/internal/selection"
	"github.com/Zachdehooge/phenology-viewer/internal/viewer"
)

// Option is one rendered <option> of a dropdown.
type Option struct {
	Value    string
	Text     string
	Selected bool
}

// PageData is everything the viewer template needs.
type PageData struct {
	Title       string
	Intro       template.HTML
	MapTypes    []Option
	IssueDates  []Option
	Species     []Option
	Phenophases []Option
	TileURL     string
	Center      [2]float64
	Zoom        int
	Bounds      viewer.Bounds
	Opacity     float64
	ImageBase   string
	// APIURL is the resolve endpoint. When empty the page resolves
	// selections itself from MetadataURL.
	APIURL      string
	MetadataURL string
	LiveReload  bool
	Debug       bool
}

// Menu converts metadata items into options with the default entry selected,
// or the first entry when none is flagged.
func Menu(items []metadata.MenuItem) []Option {
	selected := metadata.DefaultIndex(items)
	options := make([]Option, len(items))
	for i, item := range items {
		options[i] = Option{
			Value:    item.Value,
			Text:     item.DisplayText,
			Selected: i == selected,
		}
	}
	return options
}

// MapTypeValues returns the accepted map_type_select values.
func (d PageData) MapTypeValues() []string {
	values := make([]string, len(d.MapTypes))
	for i, opt := range d.MapTypes {
		values[i] = opt.Value
	}
	return values
}

// MapTypeMenu lists the display modes with static selected, matching the
// initial display.
func MapTypeMenu() []Option {
	return []Option{
		{Value: selection.Static.String(), Text: "Static map", Selected: true},
		{Value: selection.Interactive.String(), Text: "Interactive map"},
	}
}

// NewPageData fills PageData from config and metadata.
func NewPageData(cfg config.Config, meta *metadata.ImageMetadata) (PageData, error) {
	intro, err := RenderIntro(cfg.Intro)
	if err != nil {
		return PageData{}, err
	}
	return PageData{
		Title:       cfg.Title,
		Intro:       intro,
		MapTypes:    MapTypeMenu(),
		IssueDates:  Menu(meta.AvailableIssueDates),
		Species:     Menu(meta.AvailableSpecies),
		Phenophases: Menu(meta.AvailablePhenophase),
		TileURL:     cfg.TileURL,
		Center:      cfg.Center,
		Zoom:        cfg.Zoom,
		Bounds:      cfg.OverlayBounds,
		Opacity:     cfg.OverlayOpacity,
		ImageBase:   cfg.ImageBaseURL,
		MetadataURL: metadataFile,
	}, nil
}

const metadataFile = "image_metadata.json"

var pageTemplate = template.Must(template.New("viewer").Funcs(template.FuncMap{
	"toJSON": toJSON,
}).Parse(pageHTML))

// RenderPage writes the viewer HTML to w.
func RenderPage(w io.Writer, data PageData) error {
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render viewer page: %w", err)
	}
	return nil
}

// GenerateSite writes index.html and image_metadata.json to outDir for
// hosting without the server.
func GenerateSite(outDir string, cfg config.Config, meta *metadata.ImageMetadata) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", outDir, err)
	}

	data, err := NewPageData(cfg, meta)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := RenderPage(&buf, data); err != nil {
		return err
	}
	if err := atomic.WriteFile(filepath.Join(outDir, "index.html"), &buf); err != nil {
		return fmt.Errorf("failed to write index.html: %w", err)
	}
	return meta.Write(filepath.Join(outDir, metadataFile))
}

func toJSON(v interface{}) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}
