package metadata

import (
	"strings"
	"testing"
)

func TestBuildFromFigures(t *testing.T) {
	csvData := `species,common_name,forecast_issue_date,img_filename,extra
acer rubrum,red maple,2018-02-01,acer_rubrum_371_2018-02-01_map.png,x
acer rubrum,red maple,2018-02-08,acer_rubrum_371_2018-02-08_map.png,x
quercus alba,white oak,2018-02-08,quercus_alba_501_2018-02-08_prediction.png,x
`
	m, err := BuildFromFigures(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("BuildFromFigures failed: %v", err)
	}

	if len(m.AvailableIssueDates) != 2 {
		t.Fatalf("Expected 2 issue dates, got %d", len(m.AvailableIssueDates))
	}
	if got := m.AvailableIssueDates[0].DisplayText; got != "Feb 01, 2018" {
		t.Errorf("Expected display text %q, got %q", "Feb 01, 2018", got)
	}
	if m.AvailableIssueDates[1].Default != 1 || m.AvailableIssueDates[0].Default != 0 {
		t.Errorf("Expected the newest issue date to be the default: %+v", m.AvailableIssueDates)
	}

	if len(m.AvailableSpecies) != 2 {
		t.Fatalf("Expected 2 species, got %d", len(m.AvailableSpecies))
	}
	if m.AvailableSpecies[1].Value != "quercus_alba" {
		t.Errorf("Expected underscored species value, got %q", m.AvailableSpecies[1].Value)
	}
	if m.AvailableSpecies[1].DisplayText != "white oak (Quercus alba)" {
		t.Errorf("Unexpected species display %q", m.AvailableSpecies[1].DisplayText)
	}
	if m.AvailableSpecies[0].Default != 1 {
		t.Error("Expected first species to be the default")
	}

	if len(m.AvailablePhenophase) != 2 || m.AvailablePhenophase[0].Value != "371" {
		t.Errorf("Unexpected phenophases: %+v", m.AvailablePhenophase)
	}
	if m.AvailablePhenophase[1].Default != 1 || m.AvailablePhenophase[0].Default != 0 {
		t.Errorf("Expected Flowers to be the default phenophase: %+v", m.AvailablePhenophase)
	}
	if !m.HasImage("quercus_alba_501_2018-02-08_prediction.png") {
		t.Error("Expected built metadata to index images")
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Built metadata should validate: %v", err)
	}
}

func TestBuildFromFiguresSortsRows(t *testing.T) {
	csvData := `species,common_name,forecast_issue_date,img_filename
quercus alba,white oak,2018-03-01,quercus_alba_501_2018-03-01_map.png
acer rubrum,red maple,2018-03-01,acer_rubrum_501_2018-03-01_map.png
quercus alba,white oak,2018-02-08,quercus_alba_501_2018-02-08_map.png
betula nigra,river birch,2018-02-08,betula_nigra_501_2018-02-08_map.png
`
	m, err := BuildFromFigures(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("BuildFromFigures failed: %v", err)
	}

	wantDates := []string{"2018-02-08", "2018-03-01"}
	if len(m.AvailableIssueDates) != len(wantDates) {
		t.Fatalf("Expected %d issue dates, got %+v", len(wantDates), m.AvailableIssueDates)
	}
	for i, want := range wantDates {
		if m.AvailableIssueDates[i].Value != want {
			t.Errorf("Issue date %d: expected %s, got %s", i, want, m.AvailableIssueDates[i].Value)
		}
	}
	if m.AvailableIssueDates[1].Default != 1 || m.AvailableIssueDates[0].Default != 0 {
		t.Errorf("Expected the newest issue date to be the default: %+v", m.AvailableIssueDates)
	}

	wantSpecies := []string{"betula_nigra", "quercus_alba", "acer_rubrum"}
	if len(m.AvailableSpecies) != len(wantSpecies) {
		t.Fatalf("Expected %d species, got %+v", len(wantSpecies), m.AvailableSpecies)
	}
	for i, want := range wantSpecies {
		if m.AvailableSpecies[i].Value != want {
			t.Errorf("Species %d: expected %s, got %s", i, want, m.AvailableSpecies[i].Value)
		}
	}
	if m.AvailableSpecies[0].DisplayText != "river birch (Betula nigra)" {
		t.Errorf("Unexpected species display %q", m.AvailableSpecies[0].DisplayText)
	}

	wantImages := []string{
		"betula_nigra_501_2018-02-08_map.png",
		"quercus_alba_501_2018-02-08_map.png",
		"acer_rubrum_501_2018-03-01_map.png",
		"quercus_alba_501_2018-03-01_map.png",
	}
	for i, want := range wantImages {
		if m.AvailableImages[i] != want {
			t.Errorf("Image %d: expected %s, got %s", i, want, m.AvailableImages[i])
		}
	}
}

func TestCapitalize(t *testing.T) {
	tests := map[string]string{
		"acer rubrum": "Acer rubrum",
		"ACER RUBRUM": "Acer rubrum",
		"":            "",
	}
	for input, want := range tests {
		if got := capitalize(input); got != want {
			t.Errorf("capitalize(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestBuildFromFiguresErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"empty", "", "empty"},
		{"missing column", "species,common_name,img_filename\n", "forecast_issue_date"},
		{"bad date", "species,common_name,forecast_issue_date,img_filename\na,b,02/01/2018,c.png\n", "invalid forecast_issue_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildFromFigures(strings.NewReader(tt.data))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
