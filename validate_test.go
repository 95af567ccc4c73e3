package cityscout

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
)

// TestValidateData runs the same checks as the validate-data command.
func TestValidateData(t *testing.T) {
	var lines []string
	report := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}
	if err := ValidateData(report); err != nil {
		t.Fatalf("ValidateData() error = %v", err)
	}
	if len(lines) != 4 {
		t.Fatalf("ValidateData() reported %d lines, want 4: %q", len(lines), lines)
	}
	if lines[0] != "City count: 15 (OK)\n" {
		t.Errorf("first report line = %q", lines[0])
	}
}

func TestValidateData_NilReport(t *testing.T) {
	if err := ValidateData(nil); err != nil {
		t.Fatalf("ValidateData(nil) error = %v", err)
	}
}

func validCity(slug string, lat float64) City {
	return City{
		Slug: slug, Name: "Test", State: "CO", Pop: 1000,
		RPP: 100, RentIndex: 50, IncomeMedian: 50_000,
		DiversityIndex: 0.5, InternetMbps: 100,
		ParksPer10k: 10, CafesPer10k: 10, BarsPer10k: 10,
		Latitude: lat, Longitude: -105,
		Geohash: encodeGeohash(lat, -105),
	}
}

func TestValidateCities(t *testing.T) {
	for _, empty := range [][]City{nil, {}} {
		err := ValidateCities(empty)
		if !errors.Is(err, ErrInvalidData) || !strings.Contains(err.Error(), "no cities") {
			t.Errorf("ValidateCities(%v) = %v, want ErrInvalidData for an empty dataset", empty, err)
		}
	}
	if err := ValidateCities([]City{validCity("a", 39), validCity("b-2", 40)}); err != nil {
		t.Errorf("ValidateCities(valid) = %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(c *City)
		wantMsg string
	}{
		{"empty slug", func(c *City) { c.Slug = "" }, "empty slug"},
		{"uppercase slug", func(c *City) { c.Slug = "Denver" }, "slug must be lowercase"},
		{"double hyphen", func(c *City) { c.Slug = "fort--collins" }, "slug must be lowercase"},
		{"empty name", func(c *City) { c.Name = "" }, "empty name"},
		{"unknown state", func(c *City) { c.State = "ZZ" }, `unknown state "ZZ"`},
		{"negative population", func(c *City) { c.Pop = -1 }, "negative population"},
		{"NaN rent", func(c *City) { c.RentIndex = math.NaN() }, "rentIndex must be a non-negative finite number"},
		{"infinite income", func(c *City) { c.IncomeMedian = math.Inf(1) }, "incomeMedian must be"},
		{"negative bars", func(c *City) { c.BarsPer10k = -2 }, "barsPer10k must be"},
		{"zero rpp", func(c *City) { c.RPP = 0 }, "rpp must be positive"},
		{"diversity above one", func(c *City) { c.DiversityIndex = 1.2 }, "diversity index 1.2 outside [0,1]"},
		{"latitude", func(c *City) { c.Latitude = 95 }, "latitude 95 out of range"},
		{"longitude", func(c *City) { c.Longitude = -190 }, "longitude -190 out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCity("fort-collins", 40.5)
			tt.mutate(&c)
			err := ValidateCities([]City{validCity("denver", 39.7), c})
			if !errors.Is(err, ErrInvalidData) {
				t.Fatalf("ValidateCities() error = %v, want ErrInvalidData", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("ValidateCities() error = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestValidateCities_Duplicates(t *testing.T) {
	err := ValidateCities([]City{validCity("boulder", 40), validCity("boulder", 41)})
	if !errors.Is(err, ErrInvalidData) || !strings.Contains(err.Error(), "duplicate slug (records 0 and 1)") {
		t.Errorf("duplicate slug error = %v", err)
	}

	err = ValidateCities([]City{validCity("boulder", 40), validCity("boulder-twin", 40)})
	if !errors.Is(err, ErrInvalidData) || !strings.Contains(err.Error(), "share location cell") {
		t.Errorf("duplicate location error = %v", err)
	}
}

func TestNewStoreFromCities_RejectsInvalid(t *testing.T) {
	_, err := NewStoreFromCities([]City{validCity("denver", 39.7), validCity("Denver", 41)})
	if !errors.Is(err, ErrInvalidData) {
		t.Errorf("NewStoreFromCities() error = %v, want ErrInvalidData", err)
	}

	s, err := NewStoreFromCities(nil)
	if !errors.Is(err, ErrInvalidData) || s != nil {
		t.Errorf("NewStoreFromCities(nil) = %v, %v; want nil, ErrInvalidData", s, err)
	}
}

// The store keeps its own copy, so later edits to the caller's slice do not
// leave the slug index or ranges out of step with the data.
func TestNewStoreFromCities_CopiesInput(t *testing.T) {
	cities := []City{validCity("denver", 39.7), validCity("boulder", 40)}
	s, err := NewStoreFromCities(cities)
	if err != nil {
		t.Fatal(err)
	}

	cities[0].Slug = "renamed"
	cities[0].RPP = 500

	if _, ok := s.City("denver"); !ok {
		t.Error("City(denver) lost after mutating the input slice")
	}
	if _, hi, _ := s.Range(MetricRPP); hi != 100 {
		t.Errorf("Range(rpp) max = %v, want 100", hi)
	}
}

func TestStateCodes(t *testing.T) {
	codes := StateCodes()
	if len(codes) != len(UsStateCodes) {
		t.Fatalf("StateCodes() len = %d, want %d", len(codes), len(UsStateCodes))
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("StateCodes() not sorted at %d: %s >= %s", i, codes[i-1], codes[i])
		}
	}

	tests := []struct {
		code, want string
	}{
		{"DC", "District of Columbia"},
		{"ne", "Nebraska"},
		{"PR", "Puerto Rico"},
		{"XX", ""},
	}
	for _, tt := range tests {
		if got := StateName(tt.code); got != tt.want {
			t.Errorf("StateName(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
	if IsStateCode("") || !IsStateCode("tx") {
		t.Error("IsStateCode() case handling is wrong")
	}
}
