package tracking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPTrackerLogMetric(t *testing.T) {
	var got metricBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/runs/log-metric" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Error(err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := NewHTTPTracker(srv.URL, "taxifare")
	if err := tr.LogMetric(context.Background(), "run-9", "rmse", 5.5); err != nil {
		t.Fatal(err)
	}
	if got.RunID != "run-9" || got.Key != "rmse" || got.Value != 5.5 || got.Experiment != "taxifare" {
		t.Errorf("body = %+v", got)
	}
	if got.Timestamp == 0 {
		t.Error("timestamp not set")
	}
}

func TestHTTPTrackerServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	tr := NewHTTPTracker(srv.URL, "taxifare")
	if err := tr.LogParam(context.Background(), "run-9", "model", "random_forest"); err == nil {
		t.Error("server error not surfaced")
	}
}

func TestHTTPTrackerUnreachable(t *testing.T) {
	tr := NewHTTPTracker("http://127.0.0.1:1", "taxifare")
	if err := tr.LogMetric(context.Background(), "run", "rmse", 1); err == nil {
		t.Error("connection failure not surfaced")
	}
}
