// Package selection reads the viewer's dropdown controls.
package selection

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Control ids of the four dropdowns on the viewer page.
const (
	MapTypeControl    = "map_type_select"
	IssueDateControl  = "issue_date_select"
	SpeciesControl    = "species_select"
	PhenophaseControl = "phenophase_select"
)

var ErrUnknownMapType = errors.New("unknown map type")

// MapType is how a forecast is displayed.
type MapType int

const (
	Static MapType = iota
	Interactive
)

func (t MapType) String() string {
	switch t {
	case Interactive:
		return "interactive"
	case Static:
		return "static"
	default:
		return fmt.Sprintf("MapType(%d)", int(t))
	}
}

// ParseMapType accepts the values of the map_type_select dropdown.
func ParseMapType(s string) (MapType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "interactive":
		return Interactive, nil
	case "static":
		return Static, nil
	default:
		return Static, fmt.Errorf("%w: %q", ErrUnknownMapType, s)
	}
}

func (t MapType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *MapType) UnmarshalText(b []byte) error {
	parsed, err := ParseMapType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Selection is the state of all four dropdowns. MapType is kept raw so the
// resolver decides what to do with an unknown value.
type Selection struct {
	MapType    string
	IssueDate  string
	Species    string
	Phenophase string
}

// Read returns the selected value of a control, or "" when nothing is
// selected.
func Read(values url.Values, controlID string) string {
	return strings.TrimSpace(values.Get(controlID))
}

// FromValues reads all four controls.
func FromValues(values url.Values) Selection {
	return Selection{
		MapType:    Read(values, MapTypeControl),
		IssueDate:  Read(values, IssueDateControl),
		Species:    Read(values, SpeciesControl),
		Phenophase: Read(values, PhenophaseControl),
	}
}

// Values is the inverse of FromValues.
func (s Selection) Values() url.Values {
	v := url.Values{}
	v.Set(MapTypeControl, s.MapType)
	v.Set(IssueDateControl, s.IssueDate)
	v.Set(SpeciesControl, s.Species)
	v.Set(PhenophaseControl, s.Phenophase)
	return v
}
