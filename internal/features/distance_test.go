package features

import (
	"math"
	"testing"

	"farecast/internal/dataset"
)

func TestDistanceZeroForIdenticalPoints(t *testing.T) {
	ds := &dataset.Dataset{Records: []dataset.Record{
		{PickupLatitude: 40.7, PickupLongitude: -73.9, DropoffLatitude: 40.7, DropoffLongitude: -73.9},
		{PickupLatitude: 41.99, PickupLongitude: -72.95, DropoffLatitude: 41.99, DropoffLongitude: -72.95},
	}}
	out, err := DistanceTransformer{}.Transform(ds)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < ds.Len(); i++ {
		if d := out.At(i, 0); d != 0 {
			t.Errorf("row %d: distance = %v, want 0", i, d)
		}
	}
}

func TestDistanceKnownValue(t *testing.T) {
	// Midtown to JFK is roughly 21 km as the crow flies.
	ds := &dataset.Dataset{Records: []dataset.Record{{
		PickupLatitude: 40.758, PickupLongitude: -73.985,
		DropoffLatitude: 40.641, DropoffLongitude: -73.778,
	}}}
	out, err := DistanceTransformer{}.Transform(ds)
	if err != nil {
		t.Fatal(err)
	}
	d := out.At(0, 0)
	if d < 20 || d > 23 {
		t.Errorf("distance = %v km, want about 21", d)
	}
}

func TestDistanceNeverNaN(t *testing.T) {
	ds := &dataset.Dataset{Records: []dataset.Record{
		{PickupLatitude: 40, PickupLongitude: -74.3, DropoffLatitude: 42, DropoffLongitude: -72.9},
		{PickupLatitude: 42, PickupLongitude: -72.9, DropoffLatitude: 40, DropoffLongitude: -74},
	}}
	out, err := DistanceTransformer{}.Transform(ds)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < ds.Len(); i++ {
		if math.IsNaN(out.At(i, 0)) {
			t.Errorf("row %d: distance is NaN", i)
		}
	}
}
