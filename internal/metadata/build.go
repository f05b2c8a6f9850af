package metadata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

const (
	issueDateLayout        = "2006-01-02"
	issueDateDisplayLayout = "Jan 02, 2006"
)

// Phenophases offered in the viewer, keyed by their USA-NPN phenophase id.
var Phenophases = []MenuItem{
	{Value: "371", DisplayText: "Leaves"},
	{Value: "501", DisplayText: "Flowers", Default: 1},
}

var requiredColumns = []string{"species", "common_name", "forecast_issue_date", "img_filename"}

// BuildFromFigures builds image metadata from the forecast figure metadata
// CSV written by the map rendering step. One row describes one image.
func BuildFromFigures(r io.Reader) (*ImageMetadata, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("figure metadata is empty")
		}
		return nil, fmt.Errorf("failed to read figure metadata header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("figure metadata is missing column %q", name)
		}
	}

	type figure struct {
		species, commonName, issueDate, image string
		date                                  time.Time
	}
	var figures []figure
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read figure metadata line %d: %w", line, err)
		}
		field := func(name string) string {
			return strings.TrimSpace(record[cols[name]])
		}

		f := figure{
			species:    field("species"),
			commonName: field("common_name"),
			issueDate:  field("forecast_issue_date"),
			image:      field("img_filename"),
		}
		f.date, err = time.Parse(issueDateLayout, f.issueDate)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid forecast_issue_date %q: %w", line, f.issueDate, err)
		}
		figures = append(figures, f)
	}

	// Issue dates oldest first, species by name within a date.
	sort.SliceStable(figures, func(i, j int) bool {
		if !figures[i].date.Equal(figures[j].date) {
			return figures[i].date.Before(figures[j].date)
		}
		return figures[i].species < figures[j].species
	})

	m := &ImageMetadata{}
	seenDates := make(map[string]bool)
	seenSpecies := make(map[string]bool)

	for _, f := range figures {
		if !seenDates[f.issueDate] {
			seenDates[f.issueDate] = true
			m.AvailableIssueDates = append(m.AvailableIssueDates, MenuItem{
				Value:       f.issueDate,
				DisplayText: f.date.Format(issueDateDisplayLayout),
			})
		}

		speciesValue := strings.ReplaceAll(f.species, " ", "_")
		display := fmt.Sprintf("%s (%s)", f.commonName, capitalize(f.species))
		if key := speciesValue + "\x00" + display; !seenSpecies[key] {
			seenSpecies[key] = true
			m.AvailableSpecies = append(m.AvailableSpecies, MenuItem{
				Value:       speciesValue,
				DisplayText: display,
			})
		}

		m.AvailableImages = append(m.AvailableImages, f.image)
	}

	// Sorted ascending, so the newest issue date is last.
	if n := len(m.AvailableIssueDates); n > 0 {
		m.AvailableIssueDates[n-1].Default = 1
	}
	if len(m.AvailableSpecies) > 0 {
		m.AvailableSpecies[0].Default = 1
	}
	m.AvailablePhenophase = append([]MenuItem(nil), Phenophases...)
	m.normalize()
	return m, nil
}

// capitalize upper-cases the genus and lower-cases the rest of a scientific
// name: "acer RUBRUM" becomes "Acer rubrum".
func capitalize(s string) string {
	if s == "" {
		return s
	}
	s = strings.ToLower(s)
	return strings.ToUpper(s[:1]) + s[1:]
}
