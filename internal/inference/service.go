// README: Inference service; validates ride payloads and serves predictions.
package inference

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync/atomic"
	"time"

	"farecast/internal/artifact"
	"farecast/internal/dataset"
	"farecast/internal/model"
)

var (
	ErrMalformedRequest = errors.New("malformed request")
	ErrModelUnavailable = errors.New("model unavailable")
)

// RideRequest is the wire shape of one ride description. Numeric fields are
// typed loosely because callers send them either as JSON numbers or as
// strings; coercion happens here so a type error never reaches the
// regressor.
type RideRequest struct {
	Key              string `json:"key"`
	PickupDatetime   string `json:"pickup_datetime"`
	PickupLongitude  any    `json:"pickup_longitude"`
	PickupLatitude   any    `json:"pickup_latitude"`
	DropoffLongitude any    `json:"dropoff_longitude"`
	DropoffLatitude  any    `json:"dropoff_latitude"`
	PassengerCount   any    `json:"passenger_count"`
}

// Service runs the persisted training pipeline over single rides. The loaded
// pipeline is immutable, so concurrent predicts share it without locking;
// Reload swaps it atomically.
type Service struct {
	store  artifact.Store
	cached atomic.Pointer[model.Pipeline]
}

func NewService(store artifact.Store) *Service {
	return &Service{store: store}
}

// Predict validates and coerces the payload, wraps it as a one-row dataset
// and runs the same fitted pipeline used at training time. Cleaning filters
// are deliberately not applied: supplying in-domain values is the caller's
// responsibility.
func (s *Service) Predict(ctx context.Context, req RideRequest) (float64, error) {
	rec, err := toRecord(req)
	if err != nil {
		return 0, err
	}
	p, err := s.pipeline(ctx)
	if err != nil {
		return 0, err
	}

	ds := &dataset.Dataset{Records: []dataset.Record{rec}}
	pred, err := p.Predict(ds)
	if err != nil {
		return 0, fmt.Errorf("predict: %w", err)
	}
	return pred[0], nil
}

// PredictBatch runs the same logic over a full dataset, one prediction per
// row in input order. Used by the submission export.
func (s *Service) PredictBatch(ctx context.Context, ds *dataset.Dataset) ([]float64, error) {
	p, err := s.pipeline(ctx)
	if err != nil {
		return nil, err
	}
	pred, err := p.Predict(ds)
	if err != nil {
		return nil, fmt.Errorf("predict batch: %w", err)
	}
	return pred, nil
}

// Reload fetches the artifact again and swaps it in atomically, so an
// in-flight predict keeps the pipeline it already resolved.
func (s *Service) Reload(ctx context.Context) error {
	p, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	s.cached.Store(p)
	return nil
}

func (s *Service) pipeline(ctx context.Context) (*model.Pipeline, error) {
	if p := s.cached.Load(); p != nil {
		return p, nil
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s.cached.Load(), nil
}

func toRecord(req RideRequest) (dataset.Record, error) {
	rec := dataset.Record{Key: req.Key, FareAmount: math.NaN()}

	t, err := parseDatetime(req.PickupDatetime)
	if err != nil {
		return rec, err
	}
	rec.PickupDatetime = t

	fields := []struct {
		name string
		raw  any
		dst  *float64
	}{
		{"pickup_longitude", req.PickupLongitude, &rec.PickupLongitude},
		{"pickup_latitude", req.PickupLatitude, &rec.PickupLatitude},
		{"dropoff_longitude", req.DropoffLongitude, &rec.DropoffLongitude},
		{"dropoff_latitude", req.DropoffLatitude, &rec.DropoffLatitude},
		{"passenger_count", req.PassengerCount, &rec.PassengerCount},
	}
	for _, f := range fields {
		v, err := coerceFloat(f.raw)
		if err != nil {
			return rec, fmt.Errorf("%w: field %s: %v", ErrMalformedRequest, f.name, err)
		}
		*f.dst = v
	}
	return rec, nil
}

func parseDatetime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: missing pickup_datetime", ErrMalformedRequest)
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05 MST", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparsable pickup_datetime %q", ErrMalformedRequest, s)
}

func coerceFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", x)
		}
		return f, nil
	case nil:
		return 0, errors.New("missing")
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
