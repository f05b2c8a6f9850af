package viewer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Zachdehooge/phenology-viewer/internal/metadata"
	"github.com/Zachdehooge/phenology-viewer/internal/selection"
)

// ForecastNotAvailable is shown under the menus when the selected image is
// not listed in the metadata.
const ForecastNotAvailable = "Forecast not available"

var ErrMetadataNotLoaded = errors.New("image metadata not loaded")

// Bounds is a south-west / north-east lat-lon pair.
type Bounds [2][2]float64

// DefaultBounds covers the continental US grid the forecasts are made on.
var DefaultBounds = Bounds{{24.0625, -125.0208}, {49.9375, -66.479}}

const DefaultOpacity = 0.7

// MetadataSource provides the metadata currently in effect.
type MetadataSource interface {
	Get() (*metadata.ImageMetadata, bool)
}

// Overlay is an image layer to add to the interactive map.
type Overlay struct {
	URL      string  `json:"url"`
	Filename string  `json:"filename"`
	Bounds   Bounds  `json:"bounds"`
	Opacity  float64 `json:"opacity"`
}

// View is the display update the page applies after a selection change.
type View struct {
	MapType        selection.MapType `json:"map_type"`
	Toggled        bool              `json:"toggled"`
	LeafletVisible bool              `json:"leaflet_visible"`
	StaticVisible  bool              `json:"static_visible"`
	ForecastInfo   string            `json:"forecast_info"`
	Available      bool              `json:"available"`
	ClearOverlays  bool              `json:"clear_overlays"`
	Overlay        *Overlay          `json:"overlay,omitempty"`
	PredictionSrc  string            `json:"prediction_src,omitempty"`
	UncertaintySrc string            `json:"uncertainty_src,omitempty"`
}

// Resolver turns a selection into a View.
type Resolver struct {
	Metadata  MetadataSource
	ImageBase string
	Bounds    Bounds
	Opacity   float64
}

func NewResolver(src MetadataSource, imageBase string) *Resolver {
	return &Resolver{
		Metadata:  src,
		ImageBase: imageBase,
		Bounds:    DefaultBounds,
		Opacity:   DefaultOpacity,
	}
}

// Resolve switches display to the requested map type if needed and builds the
// image references for sel. The display is only mutated when sel is valid and
// metadata is loaded.
func (r *Resolver) Resolve(display *Display, sel selection.Selection) (View, error) {
	mapType, err := selection.ParseMapType(sel.MapType)
	if err != nil {
		return View{}, err
	}
	meta, ok := r.Metadata.Get()
	if !ok {
		return View{}, ErrMetadataNotLoaded
	}

	slog.Debug("Drawing map",
		"map_type", mapType,
		"issue_date", sel.IssueDate,
		"species", sel.Species,
		"phenophase", sel.Phenophase)

	toggled := display.Switch(mapType)
	if toggled {
		slog.Debug("Map type changed", "map_type", mapType)
	}

	view := View{
		MapType:        display.Mode,
		Toggled:        toggled,
		LeafletVisible: display.LeafletVisible,
		StaticVisible:  display.StaticVisible,
	}

	switch mapType {
	case selection.Interactive:
		filename := ImageFilename(sel.Species, sel.Phenophase, sel.IssueDate, SuffixMap)
		view.ClearOverlays = true
		view.Available = meta.HasImage(filename)
		// The overlay is requested even when the image is not listed.
		view.Overlay = &Overlay{
			URL:      ImageURL(r.ImageBase, sel.IssueDate, filename),
			Filename: filename,
			Bounds:   r.Bounds,
			Opacity:  r.Opacity,
		}
		if view.Available {
			slog.Debug("Setting overlay", "image", filename)
		} else {
			view.ForecastInfo = ForecastNotAvailable
			slog.Debug("Map not available", "image", filename)
		}
	case selection.Static:
		prediction := ImageFilename(sel.Species, sel.Phenophase, sel.IssueDate, SuffixPrediction)
		uncertainty := ImageFilename(sel.Species, sel.Phenophase, sel.IssueDate, SuffixUncertainty)
		view.Available = meta.HasImage(prediction)
		view.PredictionSrc = ImageURL(r.ImageBase, sel.IssueDate, prediction)
		view.UncertaintySrc = ImageURL(r.ImageBase, sel.IssueDate, uncertainty)
		if view.Available {
			slog.Debug("Setting images", "prediction", view.PredictionSrc, "uncertainty", view.UncertaintySrc)
		} else {
			view.ForecastInfo = ForecastNotAvailable
			slog.Debug("Image not available", "image", prediction)
		}
	default:
		return View{}, fmt.Errorf("%w: %v", selection.ErrUnknownMapType, mapType)
	}

	return view, nil
}
