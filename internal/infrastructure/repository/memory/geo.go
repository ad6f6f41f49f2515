package memory

import (
	"fmt"
	"math"

	"github.com/riskibarqy/findrival/internal/domain/team"
)

// earthRadiusMeters matches the sphere MongoDB uses for 2dsphere distances.
const earthRadiusMeters = 6378100.0

func haversineMeters(lng1, lat1, lng2, lat2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(a)))
}

// validateNearbyQuery rejects what the document store would reject.
func validateNearbyQuery(query team.NearbyQuery) error {
	for _, v := range []float64{query.Longitude, query.Latitude, query.MaxDistanceKm} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: geo query values must be finite numbers", team.ErrGeoQuery)
		}
	}
	if query.Longitude < -180 || query.Longitude > 180 || query.Latitude < -90 || query.Latitude > 90 {
		return fmt.Errorf("%w: invalid point: longitude/latitude is out of bounds, lng: %v lat: %v",
			team.ErrGeoQuery, query.Longitude, query.Latitude)
	}
	if query.MaxDistanceKm < 0 {
		return fmt.Errorf("%w: $maxDistance must be non-negative", team.ErrGeoQuery)
	}
	return nil
}
