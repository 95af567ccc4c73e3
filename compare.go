package cityscout

import (
	"errors"
	"fmt"
	"math"
)

// NationalAverageRPP is the regional price parity of the US as a whole.
const NationalAverageRPP = 100.0

var (
	// ErrInvalidSalary is returned for negative or non-finite salaries.
	ErrInvalidSalary = errors.New("salary must be a finite, non-negative number")
	// ErrInvalidRPP is returned for non-positive or non-finite price parities.
	ErrInvalidRPP = errors.New("rpp must be a finite, positive number")
)

// PercentDelta returns the signed percent change from a to b.
// When a is zero the change is reported as 0 if b is also zero and as a
// full-scale 100 otherwise.
func PercentDelta(a, b float64) float64 {
	if a == 0 && b == 0 {
		return 0
	}
	if a == 0 {
		return 100
	}
	return (b - a) / a * 100
}

// SpendingPowerResult is a salary translated between two price levels.
type SpendingPowerResult struct {
	Salary         float64 // Salary earned at the origin price level
	DestEquivalent float64 // Salary that buys the same basket at the destination
	DeltaPct       float64 // PercentDelta(Salary, DestEquivalent)
}

// SpendingPower translates salary earned under price level rppA into the
// equivalent purchasing power under rppB:
//
//	destEquivalent = salary * rppA / rppB
//
// Moving to a cheaper place (rppB < rppA) always yields destEquivalent >
// salary and a positive DeltaPct.
func SpendingPower(salary, rppA, rppB float64) (SpendingPowerResult, error) {
	if err := checkSalary(salary); err != nil {
		return SpendingPowerResult{}, err
	}
	if err := checkRPP(rppA); err != nil {
		return SpendingPowerResult{}, fmt.Errorf("origin: %w", err)
	}
	if err := checkRPP(rppB); err != nil {
		return SpendingPowerResult{}, fmt.Errorf("destination: %w", err)
	}

	dest := salary * (rppA / rppB)
	return SpendingPowerResult{
		Salary:         salary,
		DestEquivalent: dest,
		DeltaPct:       PercentDelta(salary, dest),
	}, nil
}

// NationalSpendingPower is the spending power of salary, earned at the
// national average price level, when living in c.
func NationalSpendingPower(salary float64, c City) (SpendingPowerResult, error) {
	return SpendingPower(salary, NationalAverageRPP, c.RPP)
}

func checkSalary(salary float64) error {
	if math.IsNaN(salary) || math.IsInf(salary, 0) || salary < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSalary, salary)
	}
	return nil
}

func checkRPP(rpp float64) error {
	if math.IsNaN(rpp) || math.IsInf(rpp, 0) || rpp <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRPP, rpp)
	}
	return nil
}

// Comparison is everything needed to render a two-city comparison.
type Comparison struct {
	From, To   City
	Spending   SpendingPowerResult
	Metrics    []MetricDelta
	DistanceKm float64
}

// Compare resolves both slugs and compares moving from one city to the other
// at the given salary. Unknown slugs return an error wrapping ErrCityNotFound.
func (s *Store) Compare(fromSlug, toSlug string, salary float64) (Comparison, error) {
	from, err := s.FindCity(fromSlug)
	if err != nil {
		return Comparison{}, err
	}
	to, err := s.FindCity(toSlug)
	if err != nil {
		return Comparison{}, err
	}

	sp, err := SpendingPower(salary, from.RPP, to.RPP)
	if err != nil {
		return Comparison{}, fmt.Errorf("spending power %s -> %s: %w", from.Slug, to.Slug, err)
	}

	return Comparison{
		From:       from,
		To:         to,
		Spending:   sp,
		Metrics:    CompareMetrics(from, to),
		DistanceKm: DistanceKm(from, to),
	}, nil
}
