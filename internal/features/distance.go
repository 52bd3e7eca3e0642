// README: Great-circle pickup-to-dropoff distance feature.
package features

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"farecast/internal/dataset"
)

const earthRadiusKm = 6371.0

// DistanceTransformer derives a single haversine-distance column from the
// four coordinate columns. It has no learned parameters.
type DistanceTransformer struct{}

var _ Transformer = DistanceTransformer{}

func (DistanceTransformer) Fit(*dataset.Dataset) error { return nil }

func (DistanceTransformer) Transform(ds *dataset.Dataset) (*mat.Dense, error) {
	out := mat.NewDense(ds.Len(), 1, nil)
	for i, r := range ds.Records {
		out.Set(i, 0, haversineKm(r.PickupLatitude, r.PickupLongitude, r.DropoffLatitude, r.DropoffLongitude))
	}
	return out, nil
}

// haversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees. Identical points yield exactly 0.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
