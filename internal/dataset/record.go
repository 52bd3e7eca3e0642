// README: Ride record and dataset types with the fixed training schema.
package dataset

import (
	"errors"
	"math"
	"time"
)

var ErrSchema = errors.New("dataset schema mismatch")

// Columns of the raw training table, in file order. The schema is fixed and
// known in advance; no inference is performed.
var Columns = []string{
	"key",
	"fare_amount",
	"pickup_datetime",
	"pickup_longitude",
	"pickup_latitude",
	"dropoff_longitude",
	"dropoff_latitude",
	"passenger_count",
}

// Record is one ride observation. FareAmount is the regression label and is
// NaN when the record comes from unlabeled (test/inference) data. Missing
// numeric fields are NaN; a missing pickup time is the zero time.
type Record struct {
	Key              string
	PickupDatetime   time.Time
	PickupLongitude  float64
	PickupLatitude   float64
	DropoffLongitude float64
	DropoffLatitude  float64
	PassengerCount   float64
	FareAmount       float64
}

// Dataset is an ordered collection of records sharing one schema. HasFare
// records whether the fare_amount column was present in the source.
type Dataset struct {
	Records []Record
	HasFare bool
}

func (d *Dataset) Len() int { return len(d.Records) }

// Labels returns the fare column as the regression target.
func (d *Dataset) Labels() []float64 {
	y := make([]float64, len(d.Records))
	for i, r := range d.Records {
		y[i] = r.FareAmount
	}
	return y
}

// Keys returns the opaque identifier column, used for submission matching.
func (d *Dataset) Keys() []string {
	ks := make([]string, len(d.Records))
	for i, r := range d.Records {
		ks[i] = r.Key
	}
	return ks
}

// complete reports whether a record has every required field present.
func (r Record) complete(hasFare bool) bool {
	if r.PickupDatetime.IsZero() {
		return false
	}
	if hasFare && math.IsNaN(r.FareAmount) {
		return false
	}
	for _, v := range []float64{
		r.PickupLongitude, r.PickupLatitude,
		r.DropoffLongitude, r.DropoffLatitude,
		r.PassengerCount,
	} {
		if math.IsNaN(v) {
			return false
		}
	}
	return true
}
