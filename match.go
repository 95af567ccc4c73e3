package cityscout

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// MaxWeight is the largest importance a caller may give one dimension.
const MaxWeight = 5

// Affordability blends price parity and rent, in these proportions.
const (
	affordabilityRPPShare  = 0.7
	affordabilityRentShare = 0.3
)

var (
	// ErrInvalidWeight is returned when a weight falls outside [0, MaxWeight].
	ErrInvalidWeight = errors.New("weight out of range")
	// ErrInvalidLimit is returned for a negative result limit.
	ErrInvalidLimit = errors.New("limit must be non-negative")
)

// Weights is the importance, 0 to MaxWeight, a user gives each lifestyle
// dimension.
type Weights struct {
	Affordability int
	Internet      int
	Parks         int
	Cafes         int
	Nightlife     int
	Diversity     int
}

// DefaultWeights returns the starting weights offered to new users.
func DefaultWeights() Weights {
	return Weights{
		Affordability: 4,
		Internet:      3,
		Parks:         2,
		Cafes:         2,
		Nightlife:     2,
		Diversity:     3,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() int {
	return w.Affordability + w.Internet + w.Parks + w.Cafes + w.Nightlife + w.Diversity
}

// Validate checks that every weight is within [0, MaxWeight].
func (w Weights) Validate() error {
	named := []struct {
		name string
		v    int
	}{
		{"affordability", w.Affordability},
		{"internet", w.Internet},
		{"parks", w.Parks},
		{"cafes", w.Cafes},
		{"nightlife", w.Nightlife},
		{"diversity", w.Diversity},
	}
	for _, n := range named {
		if n.v < 0 || n.v > MaxWeight {
			return fmt.Errorf("%w: %s = %d, want 0..%d", ErrInvalidWeight, n.name, n.v, MaxWeight)
		}
	}
	return nil
}

// Preferences is one scoring request.
type Preferences struct {
	Salary          float64
	CurrentCitySlug string // Optional; enables spending power on each match
	Weights         Weights
}

// Validate rejects preferences the engine cannot score.
func (p Preferences) Validate() error {
	if err := checkSalary(p.Salary); err != nil {
		return err
	}
	return p.Weights.Validate()
}

// DimensionScores are a city's normalized values, each in [0,1], on the six
// lifestyle dimensions.
type DimensionScores struct {
	Affordability float64
	Internet      float64
	Parks         float64
	Cafes         float64
	Nightlife     float64
	Diversity     float64
}

// Dimensions normalizes c against the ranges of the store's dataset. Each
// value is clamped into [0,1], so cities outside those ranges saturate.
func (s *Store) Dimensions(c City) DimensionScores {
	r := s.ranges
	return DimensionScores{
		Affordability: affordabilityRPPShare*r[MetricRPP].normLower(c.RPP) +
			affordabilityRentShare*r[MetricRentIndex].normLower(c.RentIndex),
		Internet:  r[MetricInternetMbps].normHigher(c.InternetMbps),
		Parks:     r[MetricParksPer10k].normHigher(c.ParksPer10k),
		Cafes:     r[MetricCafesPer10k].normHigher(c.CafesPer10k),
		Nightlife: r[MetricBarsPer10k].normHigher(c.BarsPer10k),
		Diversity: r[MetricDiversityIndex].normHigher(c.DiversityIndex),
	}
}

// ScoreCity returns c's composite score, 0 to 100, for the given preferences.
// With every weight at zero the score is 0. c need not belong to the store,
// but its metrics must pass the same checks as loaded data; values outside
// the store's ranges saturate.
func (s *Store) ScoreCity(c City, p Preferences) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if err := validateMetrics(c); err != nil {
		return 0, err
	}
	return s.score(c, p.Weights), nil
}

func (s *Store) score(c City, w Weights) float64 {
	d := s.Dimensions(c)
	composite := float64(w.Affordability)*d.Affordability +
		float64(w.Internet)*d.Internet +
		float64(w.Parks)*d.Parks +
		float64(w.Cafes)*d.Cafes +
		float64(w.Nightlife)*d.Nightlife +
		float64(w.Diversity)*d.Diversity

	sum := w.Sum()
	if sum == 0 {
		sum = 1
	}
	// Each term is weight * [0,1] so the ratio is already bounded;
	// the clamp only absorbs floating-point drift at the edges.
	return clamp(100*composite/float64(sum), 0, 100)
}

// clamp bounds v to [lo, hi]; NaN maps to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// Match is one ranked city.
type Match struct {
	Rank  int // 1-based
	City  City
	Score float64
	// Spending is the spending power moving from the current city to this
	// one; nil when the preferences name no current city.
	Spending *SpendingPowerResult
}

// TopMatches scores every city and returns the best limit of them, highest
// score first. Cities with equal scores keep their dataset order. A limit
// larger than the dataset returns every city.
func (s *Store) TopMatches(p Preferences, limit int) ([]Match, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var current *City
	if p.CurrentCitySlug != "" {
		c, err := s.FindCity(p.CurrentCitySlug)
		if err != nil {
			return nil, fmt.Errorf("current city: %w", err)
		}
		current = &c
	}

	scored := make([]Match, len(s.Cities))
	for i, c := range s.Cities {
		scored[i] = Match{City: c, Score: s.score(c, p.Weights)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if limit > len(scored) {
		limit = len(scored)
	}
	out := scored[:limit]
	for i := range out {
		out[i].Rank = i + 1
		if current != nil {
			sp, err := SpendingPower(p.Salary, current.RPP, out[i].City.RPP)
			if err != nil {
				return nil, fmt.Errorf("spending power for %s: %w", out[i].City.Slug, err)
			}
			out[i].Spending = &sp
		}
	}
	return out, nil
}
