package cityscout

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
)

var matchesCSVHeader = []string{"rank", "slug", "city", "state", "score", "destEquivalent", "deltaPct"}

// WriteMatchesCSV writes ranked matches as CSV, one row per match.
// Score is rounded to an integer and destEquivalent to whole dollars;
// the spending columns are empty for matches without spending power.
func WriteMatchesCSV(w io.Writer, matches []Match) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(matchesCSVHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for i, m := range matches {
		rank := m.Rank
		if rank == 0 {
			rank = i + 1
		}
		dest, delta := "", ""
		if m.Spending != nil {
			dest = strconv.FormatInt(int64(math.Round(m.Spending.DestEquivalent)), 10)
			delta = strconv.FormatFloat(m.Spending.DeltaPct, 'f', 1, 64)
		}
		row := []string{
			strconv.Itoa(rank),
			m.City.Slug,
			m.City.Name,
			m.City.State,
			strconv.FormatFloat(math.Round(m.Score), 'f', 0, 64),
			dest,
			delta,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
