// README: Cleaning filters that restrict raw rides to the valid NYC domain.
package dataset

// Coordinate and fare bounds for a valid ride. Bounds are inclusive.
const (
	fareMin = 0.0
	fareMax = 4000.0

	pickupLatMin = 40.0
	pickupLatMax = 42.0
	pickupLngMin = -74.3
	pickupLngMax = -72.9

	dropoffLatMin = 40.0
	dropoffLatMax = 42.0
	dropoffLngMin = -74.0
	dropoffLngMax = -72.9

	passengerMin = 0
	passengerMax = 8 // exclusive
)

// Clean returns the subset of records inside the valid domain. Rows are only
// removed, never mutated, and order is preserved. The fare filter applies
// only when the dataset carries a fare column.
func Clean(ds *Dataset) *Dataset {
	out := &Dataset{HasFare: ds.HasFare}
	for _, r := range ds.Records {
		if !r.complete(ds.HasFare) {
			continue
		}
		if r.DropoffLatitude == 0 && r.DropoffLongitude == 0 {
			continue
		}
		if r.PickupLatitude == 0 && r.PickupLongitude == 0 {
			continue
		}
		if ds.HasFare && (r.FareAmount < fareMin || r.FareAmount > fareMax) {
			continue
		}
		if r.PassengerCount < passengerMin || r.PassengerCount >= passengerMax {
			continue
		}
		if r.PickupLatitude < pickupLatMin || r.PickupLatitude > pickupLatMax {
			continue
		}
		if r.PickupLongitude < pickupLngMin || r.PickupLongitude > pickupLngMax {
			continue
		}
		if r.DropoffLatitude < dropoffLatMin || r.DropoffLatitude > dropoffLatMax {
			continue
		}
		if r.DropoffLongitude < dropoffLngMin || r.DropoffLongitude > dropoffLngMax {
			continue
		}
		out.Records = append(out.Records, r)
	}
	return out
}
