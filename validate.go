package cityscout

import (
	"fmt"
	"math"
	"regexp"
	"sync"
)

// slugPattern is compiled once; slugs are lowercase words joined by single hyphens.
var slugPattern = sync.OnceValue(func() *regexp.Regexp {
	return regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
})

// ValidateCities checks the dataset invariants the engines rely on. It returns
// an error wrapping ErrInvalidData that names the first offending record.
func ValidateCities(cities []City) error {
	if len(cities) == 0 {
		return fmt.Errorf("%w: no cities", ErrInvalidData)
	}
	seenSlug := make(map[string]int, len(cities))
	seenCell := make(map[string]string, len(cities))

	for i, c := range cities {
		if c.Slug == "" {
			return fmt.Errorf("%w: record %d: empty slug", ErrInvalidData, i)
		}
		if !slugPattern().MatchString(c.Slug) {
			return fmt.Errorf("%w: %q: slug must be lowercase and hyphen-separated", ErrInvalidData, c.Slug)
		}
		if prev, ok := seenSlug[c.Slug]; ok {
			return fmt.Errorf("%w: %q: duplicate slug (records %d and %d)", ErrInvalidData, c.Slug, prev, i)
		}
		seenSlug[c.Slug] = i

		if c.Name == "" {
			return fmt.Errorf("%w: %q: empty name", ErrInvalidData, c.Slug)
		}
		if !IsStateCode(c.State) {
			return fmt.Errorf("%w: %q: unknown state %q", ErrInvalidData, c.Slug, c.State)
		}
		if c.Pop < 0 {
			return fmt.Errorf("%w: %q: negative population", ErrInvalidData, c.Slug)
		}

		if err := validateMetrics(c); err != nil {
			return err
		}

		if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
			return fmt.Errorf("%w: %q: latitude %v out of range", ErrInvalidData, c.Slug, c.Latitude)
		}
		if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
			return fmt.Errorf("%w: %q: longitude %v out of range", ErrInvalidData, c.Slug, c.Longitude)
		}
		if c.Geohash != "" {
			if other, ok := seenCell[c.Geohash]; ok {
				return fmt.Errorf("%w: %q and %q share location cell %s", ErrInvalidData, other, c.Slug, c.Geohash)
			}
			seenCell[c.Geohash] = c.Slug
		}
	}
	return nil
}

// validateMetrics checks the numeric fields the engines compute with.
func validateMetrics(c City) error {
	for _, m := range Metrics {
		v := m.Value(c)
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %q: %s must be a non-negative finite number, got %v", ErrInvalidData, c.Slug, m.Key, v)
		}
	}
	if c.RPP == 0 {
		return fmt.Errorf("%w: %q: rpp must be positive", ErrInvalidData, c.Slug)
	}
	if c.DiversityIndex > 1 {
		return fmt.Errorf("%w: %q: diversity index %v outside [0,1]", ErrInvalidData, c.Slug, c.DiversityIndex)
	}
	return nil
}

// Validation thresholds for the bundled dataset.
const minCityCount = 15

// validationPair is a known comparison used to check the spending-power
// direction end to end.
type validationPair struct {
	from, to  string
	salary    float64
	wantEquiv float64
	wantDelta float64
	tolerance float64
}

var knownPairs = []validationPair{
	{"washington-dc", "omaha", 100_000, 133_072, 33.07, 1},
	{"omaha", "washington-dc", 100_000, 75_147, -24.85, 1},
}

// knownSuggestions are misspellings that must resolve to the given slug.
var knownSuggestions = map[string]string{
	"omha":      "omaha",
	"seatle":    "seattle",
	"new york":  "new-york-city",
	"san diego": "san-diego",
}

// ValidateData loads a store with the given options and runs integrity and
// functional checks against it. Progress is written through report, which
// may be nil.
func ValidateData(report func(format string, args ...any), opts ...Option) error {
	if report == nil {
		report = func(string, ...any) {}
	}

	s, err := NewStore(opts...)
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}

	if s.Len() < minCityCount {
		return fmt.Errorf("city count too low: got %d, want >= %d", s.Len(), minCityCount)
	}
	report("City count: %d (OK)\n", s.Len())

	for _, tc := range knownPairs {
		cmp, err := s.Compare(tc.from, tc.to, tc.salary)
		if err != nil {
			return fmt.Errorf("compare(%s, %s): %w", tc.from, tc.to, err)
		}
		if math.Abs(cmp.Spending.DestEquivalent-tc.wantEquiv) > tc.tolerance {
			return fmt.Errorf("compare(%s, %s) destEquivalent = %.2f, want %.2f", tc.from, tc.to, cmp.Spending.DestEquivalent, tc.wantEquiv)
		}
		if math.Abs(cmp.Spending.DeltaPct-tc.wantDelta) > 0.01 {
			return fmt.Errorf("compare(%s, %s) deltaPct = %.3f, want %.3f", tc.from, tc.to, cmp.Spending.DeltaPct, tc.wantDelta)
		}
	}
	report("Spending power: %d pairs OK\n", len(knownPairs))

	for query, want := range knownSuggestions {
		got := s.SuggestSlugs(query, 1)
		if len(got) == 0 || got[0] != want {
			return fmt.Errorf("suggest(%q) = %v, want %q", query, got, want)
		}
	}
	report("Suggestions: %d queries OK\n", len(knownSuggestions))

	prefs := Preferences{Salary: DefaultSalary, Weights: DefaultWeights()}
	matches, err := s.TopMatches(prefs, s.Len())
	if err != nil {
		return fmt.Errorf("top matches: %w", err)
	}
	for i, m := range matches {
		if m.Score < 0 || m.Score > 100 {
			return fmt.Errorf("score for %s = %v, outside [0,100]", m.City.Slug, m.Score)
		}
		if i > 0 && m.Score > matches[i-1].Score {
			return fmt.Errorf("matches not sorted at rank %d", i+1)
		}
	}
	report("Matching: %d cities scored OK\n", len(matches))

	return nil
}
