package cityscout

import "math"

// Better describes which direction of a metric is desirable.
type Better int

const (
	Neutral Better = iota
	HigherIsBetter
	LowerIsBetter
)

func (b Better) String() string {
	switch b {
	case HigherIsBetter:
		return "higher"
	case LowerIsBetter:
		return "lower"
	default:
		return "neutral"
	}
}

// Format is the display format of a metric value.
type Format string

const (
	FormatNumber Format = "number"
	FormatMoney  Format = "money"
	FormatIndex  Format = "index"
)

// MetricKey identifies a numeric City field.
type MetricKey string

const (
	MetricRPP            MetricKey = "rpp"
	MetricRentIndex      MetricKey = "rentIndex"
	MetricIncomeMedian   MetricKey = "incomeMedian"
	MetricDiversityIndex MetricKey = "diversityIndex"
	MetricInternetMbps   MetricKey = "internetMbps"
	MetricParksPer10k    MetricKey = "parksPer10k"
	MetricCafesPer10k    MetricKey = "cafesPer10k"
	MetricBarsPer10k     MetricKey = "barsPer10k"
)

// MetricDef describes one comparable city metric.
type MetricDef struct {
	Key      MetricKey
	Label    string
	Category string // cost, income, internet, amenities, demographics
	Better   Better
	Format   Format
	Source   string // upstream data publisher
}

// Value returns the metric's value for c.
func (m MetricDef) Value(c City) float64 {
	switch m.Key {
	case MetricRPP:
		return c.RPP
	case MetricRentIndex:
		return c.RentIndex
	case MetricIncomeMedian:
		return c.IncomeMedian
	case MetricDiversityIndex:
		return c.DiversityIndex
	case MetricInternetMbps:
		return c.InternetMbps
	case MetricParksPer10k:
		return c.ParksPer10k
	case MetricCafesPer10k:
		return c.CafesPer10k
	case MetricBarsPer10k:
		return c.BarsPer10k
	}
	return math.NaN()
}

// Metrics is the registry of comparable metrics, in display order.
var Metrics = []MetricDef{
	{Key: MetricRPP, Label: "Affordability (RPP, lower is cheaper)", Category: "cost", Better: LowerIsBetter, Format: FormatIndex, Source: "BEA"},
	{Key: MetricRentIndex, Label: "Rent Index (higher is pricier)", Category: "cost", Better: LowerIsBetter, Format: FormatIndex, Source: "Zillow"},
	{Key: MetricIncomeMedian, Label: "Median Household Income", Category: "income", Better: HigherIsBetter, Format: FormatMoney, Source: "ACS"},
	{Key: MetricDiversityIndex, Label: "Diversity Index (0–1)", Category: "demographics", Better: HigherIsBetter, Format: FormatNumber, Source: "ACS"},
	{Key: MetricInternetMbps, Label: "Internet Median Mbps", Category: "internet", Better: HigherIsBetter, Format: FormatNumber, Source: "Ookla"},
	{Key: MetricParksPer10k, Label: "Parks per 10k", Category: "amenities", Better: HigherIsBetter, Format: FormatNumber, Source: "OSM"},
	{Key: MetricCafesPer10k, Label: "Cafes per 10k", Category: "amenities", Better: HigherIsBetter, Format: FormatNumber, Source: "OSM"},
	{Key: MetricBarsPer10k, Label: "Bars per 10k", Category: "amenities", Better: HigherIsBetter, Format: FormatNumber, Source: "OSM"},
}

// MetricByKey returns the registry entry for key.
func MetricByKey(key MetricKey) (MetricDef, bool) {
	for _, m := range Metrics {
		if m.Key == key {
			return m, true
		}
	}
	return MetricDef{}, false
}

// MetricDelta is one row of a side-by-side city comparison.
type MetricDelta struct {
	Metric   MetricDef
	A, B     float64
	DeltaPct float64 // PercentDelta(A, B)
	// Favorable is true when moving from A to B improves the metric:
	// a lower-is-better metric decreased or a higher-is-better one increased.
	Favorable bool
}

// Formatted returns the value rendered for display according to the
// metric's format.
func (d MetricDelta) Formatted(v float64) string {
	if d.Metric.Format == FormatMoney {
		return FmtMoney(v)
	}
	return formatNumber(v)
}

// CompareMetrics returns one delta row per registered metric, moving from a to b.
func CompareMetrics(a, b City) []MetricDelta {
	rows := make([]MetricDelta, 0, len(Metrics))
	for _, m := range Metrics {
		va, vb := m.Value(a), m.Value(b)
		delta := PercentDelta(va, vb)
		rows = append(rows, MetricDelta{
			Metric:   m,
			A:        va,
			B:        vb,
			DeltaPct: delta,
			Favorable: (m.Better == LowerIsBetter && delta < 0) ||
				(m.Better == HigherIsBetter && delta > 0),
		})
	}
	return rows
}

// metricRange is the observed span of one metric across the dataset.
type metricRange struct {
	min, max float64
}

// normHigher maps v into [0,1] where larger values score higher.
// A zero-width range scores every city 0.5. Values outside the range
// saturate at 0 or 1.
func (r metricRange) normHigher(v float64) float64 {
	span := r.max - r.min
	if span <= 0 {
		return 0.5
	}
	return clamp((v-r.min)/span, 0, 1)
}

// normLower maps v into [0,1] where smaller values score higher.
func (r metricRange) normLower(v float64) float64 {
	span := r.max - r.min
	if span <= 0 {
		return 0.5
	}
	return clamp((r.max-v)/span, 0, 1)
}

// metricRanges holds the precomputed range of every registered metric.
type metricRanges map[MetricKey]metricRange

func computeRanges(cities []City) metricRanges {
	ranges := make(metricRanges, len(Metrics))
	for _, m := range Metrics {
		r := metricRange{min: math.Inf(1), max: math.Inf(-1)}
		for _, c := range cities {
			v := m.Value(c)
			r.min = math.Min(r.min, v)
			r.max = math.Max(r.max, v)
		}
		ranges[m.Key] = r
	}
	return ranges
}

// Range returns the min and max of a metric across the store's cities.
func (s *Store) Range(key MetricKey) (lo, hi float64, ok bool) {
	r, ok := s.ranges[key]
	if !ok {
		return 0, 0, false
	}
	return r.min, r.max, true
}
