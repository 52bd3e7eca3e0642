// README: Serialized artifact format for the fitted pipeline.
package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"farecast/internal/features"
	"farecast/internal/model"
)

var (
	ErrNotFound     = errors.New("artifact not found")
	ErrIncompatible = errors.New("artifact format incompatible")
)

// formatVersion guards against loading blobs written by an older or newer
// schema. Bump whenever the envelope layout changes.
const formatVersion = 1

// envelope is the one self-contained blob: feature-transform parameters and
// regressor parameters travel together, never separately.
type envelope struct {
	FormatVersion int       `json:"format_version"`
	SavedAt       time.Time `json:"saved_at"`

	Timezone string                  `json:"timezone"`
	Scaler   features.StandardScaler `json:"scaler"`
	OneHot   features.OneHotEncoder  `json:"one_hot"`
	Forest   *model.Forest           `json:"forest"`
}

func encode(p *model.Pipeline) ([]byte, error) {
	if !p.Pre.Fitted() {
		return nil, fmt.Errorf("encode artifact: %w", model.ErrNotFitted)
	}
	return json.Marshal(envelope{
		FormatVersion: formatVersion,
		SavedAt:       time.Now().UTC(),
		Timezone:      p.Pre.Timezone,
		Scaler:        p.Pre.Scaler,
		OneHot:        p.Pre.OneHot,
		Forest:        p.Reg,
	})
}

func decode(blob []byte) (*model.Pipeline, error) {
	var env envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncompatible, err)
	}
	if env.FormatVersion != formatVersion {
		return nil, fmt.Errorf("%w: format version %d, want %d", ErrIncompatible, env.FormatVersion, formatVersion)
	}
	if env.Forest == nil || env.Scaler.Mean == nil || env.OneHot.Categories == nil {
		return nil, fmt.Errorf("%w: incomplete pipeline parameters", ErrIncompatible)
	}

	loc, err := time.LoadLocation(env.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrIncompatible, env.Timezone)
	}

	pre := features.NewPreprocessor(loc)
	pre.Scaler = env.Scaler
	pre.OneHot = env.OneHot
	pre.MarkFitted()
	return &model.Pipeline{Pre: pre, Reg: env.Forest}, nil
}
