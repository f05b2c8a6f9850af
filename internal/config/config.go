package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Zachdehooge/phenology-viewer/internal/viewer"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = "viewer.yaml"

// Config holds the settings from viewer.yaml.
type Config struct {
	Title          string        `yaml:"title"`
	Intro          string        `yaml:"intro"`
	Metadata       string        `yaml:"metadata"`
	ImagesDir      string        `yaml:"images_dir"`
	ImageBaseURL   string        `yaml:"image_base_url"`
	Port           int           `yaml:"port"`
	TileURL        string        `yaml:"tile_url"`
	Center         [2]float64    `yaml:"center"`
	Zoom           int           `yaml:"zoom"`
	OverlayBounds  viewer.Bounds `yaml:"overlay_bounds"`
	OverlayOpacity float64       `yaml:"overlay_opacity"`
}

func Default() Config {
	return Config{
		Title:          "Phenology Forecasts",
		Metadata:       "image_metadata.json",
		ImagesDir:      "images",
		ImageBaseURL:   viewer.DefaultImageBase,
		Port:           8080,
		TileURL:        "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		Center:         [2]float64{39, -95},
		Zoom:           4,
		OverlayBounds:  viewer.DefaultBounds,
		OverlayOpacity: viewer.DefaultOpacity,
	}
}

// Load reads path over the defaults, then applies PHENO_* environment
// overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("could not read config file at %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("could not parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PHENO_METADATA"); v != "" {
		c.Metadata = v
	}
	if v := os.Getenv("PHENO_IMAGES_DIR"); v != "" {
		c.ImagesDir = v
	}
	if v := os.Getenv("PHENO_IMAGE_BASE_URL"); v != "" {
		c.ImageBaseURL = v
	}
	if v := os.Getenv("PHENO_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PHENO_PORT %q: %w", v, err)
		}
		c.Port = port
	}
	return nil
}
