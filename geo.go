package cityscout

import (
	"math"
	"sort"

	"github.com/golang/geo/s2"
)

// earthRadiusKm is the mean Earth radius used to turn s2 angles into distances.
const earthRadiusKm = 6371.0088

// maxNearestDistanceKm is how far Nearest looks before reporting no match.
const maxNearestDistanceKm = 150.0

func (c City) latLng() s2.LatLng {
	return s2.LatLngFromDegrees(c.Latitude, c.Longitude)
}

// DistanceKm returns the great-circle distance between two cities.
func DistanceKm(a, b City) float64 {
	return a.latLng().Distance(b.latLng()).Radians() * earthRadiusKm
}

type nearestCandidate struct {
	city City
	dist float64
}

// Nearest returns the city closest to the given coordinates, if one lies
// within 150 km. Ties are broken by population, then dataset order.
func (s *Store) Nearest(lat, lng float64) (City, bool) {
	if math.IsNaN(lat) || math.IsNaN(lng) ||
		math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return City{}, false
	}

	query := s2.LatLngFromDegrees(lat, lng)
	if !query.IsValid() {
		return City{}, false
	}

	candidates := make([]nearestCandidate, 0, len(s.Cities))
	for _, c := range s.Cities {
		d := query.Distance(c.latLng()).Radians() * earthRadiusKm
		if d <= maxNearestDistanceKm {
			candidates = append(candidates, nearestCandidate{city: c, dist: d})
		}
	}
	if len(candidates) == 0 {
		return City{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].city.Pop > candidates[j].city.Pop
	})
	return candidates[0].city, true
}
