// README: CSV-backed ride source and the submission file writer.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"
)

// Raw pickup timestamps appear either in the Kaggle export form
// ("2015-06-15 14:30:00 UTC") or as RFC 3339.
var timeLayouts = []string{
	"2006-01-02 15:04:05 MST",
	time.RFC3339,
}

// CSVSource reads rides from a local CSV file with the fixed schema.
type CSVSource struct {
	Path  string
	NRows int // 0 means unbounded
}

// Load reads up to NRows records. The header must match the known schema,
// except that unlabeled files may omit the fare_amount column.
func (s CSVSource) Load() (*Dataset, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()
	return readCSV(f, s.NRows)
}

func readCSV(r io.Reader, nrows int) (*Dataset, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, hasFare, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{HasFare: hasFare}
	for nrows == 0 || len(ds.Records) < nrows {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		ds.Records = append(ds.Records, parseRow(row, idx, hasFare))
	}
	return ds, nil
}

// columnIndex maps the fixed schema onto header positions. Any missing or
// unexpected column is a schema error, not something to silently skip.
func columnIndex(header []string) (map[string]int, bool, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	hasFare := false
	want := 0
	for _, col := range Columns {
		if col == "fare_amount" {
			if _, ok := idx[col]; ok {
				hasFare = true
				want++
			}
			continue
		}
		if _, ok := idx[col]; !ok {
			return nil, false, fmt.Errorf("%w: missing column %q", ErrSchema, col)
		}
		want++
	}
	if len(header) != want {
		return nil, false, fmt.Errorf("%w: got %d columns, want %d", ErrSchema, len(header), want)
	}
	return idx, hasFare, nil
}

func parseRow(row []string, idx map[string]int, hasFare bool) Record {
	rec := Record{
		Key:              row[idx["key"]],
		PickupDatetime:   parseTime(row[idx["pickup_datetime"]]),
		PickupLongitude:  parseFloat(row[idx["pickup_longitude"]]),
		PickupLatitude:   parseFloat(row[idx["pickup_latitude"]]),
		DropoffLongitude: parseFloat(row[idx["dropoff_longitude"]]),
		DropoffLatitude:  parseFloat(row[idx["dropoff_latitude"]]),
		PassengerCount:   parseFloat(row[idx["passenger_count"]]),
		FareAmount:       math.NaN(),
	}
	if hasFare {
		rec.FareAmount = parseFloat(row[idx["fare_amount"]])
	}
	return rec
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// WriteSubmission writes the two-column (key, fare_amount) table used for
// scoring uploads. Keys and fares must be aligned by row.
func WriteSubmission(w io.Writer, keys []string, fares []float64) error {
	if len(keys) != len(fares) {
		return fmt.Errorf("submission rows mismatch: %d keys, %d fares", len(keys), len(fares))
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"key", "fare_amount"}); err != nil {
		return err
	}
	for i, k := range keys {
		if err := cw.Write([]string{k, strconv.FormatFloat(fares[i], 'f', -1, 64)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
