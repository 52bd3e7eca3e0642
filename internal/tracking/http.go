// README: Remote tracking client posting runs to an MLflow-style server.
package tracking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPTracker reports params and metrics to a remote tracking server. The
// server exposes two endpoints accepting small JSON bodies:
//
//	POST {base}/api/runs/log-parameter  {"run_id", "key", "value"}
//	POST {base}/api/runs/log-metric     {"run_id", "key", "value", "timestamp"}
type HTTPTracker struct {
	BaseURL    string
	Experiment string
	Client     *http.Client
}

func NewHTTPTracker(baseURL, experiment string) *HTTPTracker {
	return &HTTPTracker{
		BaseURL:    baseURL,
		Experiment: experiment,
		Client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type paramBody struct {
	RunID      string `json:"run_id"`
	Experiment string `json:"experiment"`
	Key        string `json:"key"`
	Value      string `json:"value"`
}

type metricBody struct {
	RunID      string  `json:"run_id"`
	Experiment string  `json:"experiment"`
	Key        string  `json:"key"`
	Value      float64 `json:"value"`
	Timestamp  int64   `json:"timestamp"`
}

func (t *HTTPTracker) LogParam(ctx context.Context, runID, key, value string) error {
	return t.post(ctx, "/api/runs/log-parameter", paramBody{
		RunID: runID, Experiment: t.Experiment, Key: key, Value: value,
	})
}

func (t *HTTPTracker) LogMetric(ctx context.Context, runID, key string, value float64) error {
	return t.post(ctx, "/api/runs/log-metric", metricBody{
		RunID: runID, Experiment: t.Experiment, Key: key, Value: value,
		Timestamp: time.Now().UnixMilli(),
	})
}

func (t *HTTPTracker) post(ctx context.Context, path string, body any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.BaseURL+path, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("tracking server returned %s", resp.Status)
	}
	return nil
}
