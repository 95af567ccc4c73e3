package cityscout

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	geohash "github.com/TomiHiltunen/geohash-golang"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed data/cities.yaml
var embeddedData embed.FS

// embeddedDataFile is the path of the bundled dataset inside embeddedData.
const embeddedDataFile = "data/cities.yaml"

// geohashPrecision is the number of geohash characters kept per city.
// Seven characters is a ~150m cell, tight enough that two cities sharing one
// almost certainly means a duplicated row.
const geohashPrecision = 7

var (
	// ErrCityNotFound is returned when a slug does not resolve to a city.
	ErrCityNotFound = errors.New("city not found")
	// ErrInvalidData is returned when the city dataset violates an invariant.
	ErrInvalidData = errors.New("invalid city data")
)

// StoreConfig contains configuration options for Store initialization.
type StoreConfig struct {
	DataFile        string      // Optional YAML dataset on disk; embedded data is used when empty or unreadable
	RequireDataFile bool        // Fail instead of falling back when DataFile cannot be opened
	Logger          *zap.Logger // Defaults to a no-op logger
}

// Option is a functional option for configuring a Store.
type Option func(*StoreConfig)

// WithDataFile loads city records from the given YAML file instead of the
// embedded dataset. If the file cannot be opened the embedded data is used.
func WithDataFile(path string) Option {
	return func(c *StoreConfig) {
		c.DataFile = path
	}
}

// WithRequiredDataFile is like WithDataFile but makes NewStore fail when the
// file cannot be opened instead of using the embedded dataset.
func WithRequiredDataFile(path string) Option {
	return func(c *StoreConfig) {
		c.DataFile = path
		c.RequireDataFile = true
	}
}

// WithLogger sets the logger used while loading data.
func WithLogger(l *zap.Logger) Option {
	return func(c *StoreConfig) {
		c.Logger = l
	}
}

func defaultConfig() *StoreConfig {
	return &StoreConfig{
		Logger: zap.NewNop(),
	}
}

// City is a single city record with economic and lifestyle attributes.
type City struct {
	Slug  string // Unique key, lowercase-hyphenated (e.g. "washington-dc")
	Name  string // Display name (e.g. "Washington")
	State string // USPS state or territory code (e.g. "DC")
	Pop   int32  // Population, 0 when unknown

	RPP          float64 // Regional price parity, 100 = national average
	RentIndex    float64
	IncomeMedian float64 // Median household income in USD

	DiversityIndex float64 // Simpson's diversity index, 0-1
	InternetMbps   float64 // Median download speed
	ParksPer10k    float64
	CafesPer10k    float64
	BarsPer10k     float64

	Climate string

	Latitude  float64
	Longitude float64
	Geohash   string // Derived from Latitude/Longitude at load
}

// Label returns "Name, ST".
func (c City) Label() string {
	return c.Name + ", " + c.State
}

// StateName returns the full name of the city's state.
func (c City) StateName() string {
	return StateName(c.State)
}

// cityRecord is the on-disk YAML shape of a City.
type cityRecord struct {
	Slug           string  `yaml:"slug"`
	Name           string  `yaml:"name"`
	State          string  `yaml:"state"`
	Pop            int32   `yaml:"pop"`
	RPP            float64 `yaml:"rpp"`
	RentIndex      float64 `yaml:"rent_index"`
	IncomeMedian   float64 `yaml:"income_median"`
	DiversityIndex float64 `yaml:"diversity_index"`
	InternetMbps   float64 `yaml:"internet_mbps"`
	ParksPer10k    float64 `yaml:"parks_per_10k"`
	CafesPer10k    float64 `yaml:"cafes_per_10k"`
	BarsPer10k     float64 `yaml:"bars_per_10k"`
	Climate        string  `yaml:"climate"`
	Lat            float64 `yaml:"lat"`
	Lng            float64 `yaml:"lng"`
}

type dataFile struct {
	Cities []cityRecord `yaml:"cities"`
}

// Store holds the city dataset and the ranges derived from it.
// A Store is safe for concurrent reads. Cities is exported for iteration
// only: the slug index and metric ranges are computed from it once, so
// callers must treat it as read-only, especially on the shared default store.
type Store struct {
	Cities    []City         // All cities in dataset order; do not modify
	slugIndex map[string]int // lowercase slug -> index into Cities
	ranges    metricRanges   // per-metric min/max, computed once
	config    *StoreConfig
}

// Singleton pattern for the default Store.
var (
	defaultStore     *Store
	defaultStoreOnce sync.Once
	defaultStoreErr  error
)

// GetDefaultStore returns a shared Store built from the embedded dataset,
// initializing it on first call.
func GetDefaultStore() (*Store, error) {
	defaultStoreOnce.Do(func() {
		defaultStore, defaultStoreErr = NewStore()
	})
	return defaultStore, defaultStoreErr
}

// NewStore loads the city dataset and precomputes the metric ranges.
//
//	s, err := NewStore(WithDataFile("./cities.yaml"), WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	dc, ok := s.City("washington-dc")
func NewStore(opts ...Option) (*Store, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	fh, source, err := openDataFile(cfg)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	cities, err := decodeCities(fh)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", source, err)
	}

	s, err := newStore(cities, cfg)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", source, err)
	}
	cfg.Logger.Info("city data loaded",
		zap.String("source", source),
		zap.Int("cities", len(s.Cities)),
	)
	return s, nil
}

// NewStoreFromCities builds a Store from records already in memory.
// The slice is copied; geohashes are derived from the coordinates.
func NewStoreFromCities(cities []City, opts ...Option) (*Store, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	cp := make([]City, len(cities))
	copy(cp, cities)
	for i := range cp {
		cp[i].Geohash = encodeGeohash(cp[i].Latitude, cp[i].Longitude)
	}
	return newStore(cp, cfg)
}

func newStore(cities []City, cfg *StoreConfig) (*Store, error) {
	if err := ValidateCities(cities); err != nil {
		return nil, err
	}

	s := &Store{
		Cities:    cities,
		slugIndex: make(map[string]int, len(cities)),
		config:    cfg,
	}
	for i, c := range cities {
		s.slugIndex[toLower(c.Slug)] = i
	}
	s.ranges = computeRanges(cities)
	return s, nil
}

// openDataFile tries the configured file on disk first and falls back to the
// embedded dataset.
func openDataFile(cfg *StoreConfig) (fs.File, string, error) {
	if cfg.DataFile != "" {
		fh, err := os.Open(cfg.DataFile)
		if err == nil {
			return fh, cfg.DataFile, nil
		}
		if cfg.RequireDataFile {
			return nil, "", fmt.Errorf("opening data file: %w", err)
		}
		cfg.Logger.Warn("data file unavailable, using embedded dataset",
			zap.String("path", cfg.DataFile),
			zap.Error(err),
		)
	}
	fh, err := embeddedData.Open(embeddedDataFile)
	if err != nil {
		return nil, "", fmt.Errorf("opening embedded data: %w", err)
	}
	return fh, "embedded:" + embeddedDataFile, nil
}

func decodeCities(r io.Reader) ([]City, error) {
	var df dataFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&df); err != nil {
		return nil, err
	}

	cities := make([]City, len(df.Cities))
	for i, rc := range df.Cities {
		cities[i] = City{
			Slug:           strings.TrimSpace(rc.Slug),
			Name:           strings.TrimSpace(rc.Name),
			State:          toUpper(strings.TrimSpace(rc.State)),
			Pop:            rc.Pop,
			RPP:            rc.RPP,
			RentIndex:      rc.RentIndex,
			IncomeMedian:   rc.IncomeMedian,
			DiversityIndex: rc.DiversityIndex,
			InternetMbps:   rc.InternetMbps,
			ParksPer10k:    rc.ParksPer10k,
			CafesPer10k:    rc.CafesPer10k,
			BarsPer10k:     rc.BarsPer10k,
			Climate:        strings.TrimSpace(rc.Climate),
			Latitude:       rc.Lat,
			Longitude:      rc.Lng,
			Geohash:        encodeGeohash(rc.Lat, rc.Lng),
		}
	}
	return cities, nil
}

func encodeGeohash(lat, lng float64) string {
	gh := geohash.Encode(lat, lng)
	if len(gh) > geohashPrecision {
		gh = gh[:geohashPrecision]
	}
	return gh
}

// City returns the city with the given slug. Matching is exact but
// case-insensitive. The boolean is false when no city has that slug.
func (s *Store) City(slug string) (City, bool) {
	idx, ok := s.slugIndex[toLower(slug)]
	if !ok {
		return City{}, false
	}
	return s.Cities[idx], true
}

// FindCity is like City but returns ErrCityNotFound for unknown slugs.
func (s *Store) FindCity(slug string) (City, error) {
	c, ok := s.City(slug)
	if !ok {
		return City{}, fmt.Errorf("%w: %q", ErrCityNotFound, slug)
	}
	return c, nil
}

// Len returns the number of cities in the store.
func (s *Store) Len() int {
	return len(s.Cities)
}

func toLower(s string) string {
	return strings.ToLower(s)
}

func toUpper(s string) string {
	return strings.ToUpper(s)
}
