// README: Calendar/time-of-day feature extraction from the pickup timestamp.
package features

import (
	"strconv"
	"time"

	"farecast/internal/dataset"
)

// TimeFeaturesEncoder decomposes the pickup timestamp into categorical
// calendar features. All timestamps are interpreted in one fixed reference
// location so training and inference never skew apart. It has no learned
// parameters.
type TimeFeaturesEncoder struct {
	Loc *time.Location
}

func NewTimeFeaturesEncoder(loc *time.Location) TimeFeaturesEncoder {
	if loc == nil {
		loc = time.UTC
	}
	return TimeFeaturesEncoder{Loc: loc}
}

func (TimeFeaturesEncoder) Fit(*dataset.Dataset) error { return nil }

// Transform returns one row of categorical values per record: hour 0-23,
// weekday 0-6 (Sunday=0), month 1-12, year. The values are pre-one-hot;
// downstream encoding decides the numeric layout.
func (e TimeFeaturesEncoder) Transform(ds *dataset.Dataset) [][]string {
	out := make([][]string, ds.Len())
	for i, r := range ds.Records {
		t := r.PickupDatetime.In(e.Loc)
		out[i] = []string{
			strconv.Itoa(t.Hour()),
			strconv.Itoa(int(t.Weekday())),
			strconv.Itoa(int(t.Month())),
			strconv.Itoa(t.Year()),
		}
	}
	return out
}
