package viewer

import "strings"

// Image suffixes written by the map rendering step.
const (
	SuffixMap         = "map"
	SuffixPrediction  = "prediction"
	SuffixUncertainty = "uncertainty"
	SuffixNone        = ""
)

// DefaultImageBase is the path images are published under, relative to the
// page.
const DefaultImageBase = "images"

// ImageFilename builds species_phenophase_issuedate_suffix.png. An empty
// suffix drops the trailing separator.
func ImageFilename(species, phenophase, issueDate, suffix string) string {
	name := species + "_" + phenophase + "_" + issueDate
	if suffix != SuffixNone {
		name += "_" + suffix
	}
	return name + ".png"
}

// ImageURL places filename in its issue date directory under base.
func ImageURL(base, issueDate, filename string) string {
	if base == "" {
		base = DefaultImageBase
	}
	return strings.TrimSuffix(base, "/") + "/" + issueDate + "/" + filename
}
