// README: Ride source backed by PostgreSQL.
package dataset

import (
	"context"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGSource reads rides from a Postgres table with the fixed schema. It is
// interchangeable with CSVSource from the training job's perspective.
type PGSource struct {
	DB    *pgxpool.Pool
	Table string
	NRows int // 0 means unbounded
}

func (s PGSource) Load(ctx context.Context) (*Dataset, error) {
	q := fmt.Sprintf(`
        SELECT key, fare_amount, pickup_datetime,
               pickup_longitude, pickup_latitude,
               dropoff_longitude, dropoff_latitude,
               passenger_count
        FROM %s
        ORDER BY pickup_datetime`, s.Table)
	if s.NRows > 0 {
		q += fmt.Sprintf(" LIMIT %d", s.NRows)
	}

	rows, err := s.DB.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query rides: %w", err)
	}
	defer rows.Close()

	ds := &Dataset{HasFare: true}
	for rows.Next() {
		var r Record
		var fare *float64
		if err := rows.Scan(
			&r.Key, &fare, &r.PickupDatetime,
			&r.PickupLongitude, &r.PickupLatitude,
			&r.DropoffLongitude, &r.DropoffLatitude,
			&r.PassengerCount,
		); err != nil {
			return nil, fmt.Errorf("scan ride: %w", err)
		}
		r.FareAmount = math.NaN()
		if fare != nil {
			r.FareAmount = *fare
		}
		ds.Records = append(ds.Records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rides: %w", err)
	}
	return ds, nil
}
