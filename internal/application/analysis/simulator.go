package analysis

import (
	"context"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	domain "talenttrack/internal/domain/analysis"
)

// Default delays of the simulated pipeline.
const (
	DefaultUploadDelay   = 2 * time.Second
	DefaultAnalysisDelay = 3 * time.Second
)

// Rand is the random source a measurement is drawn from.
type Rand interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// Simulator stands in for video upload and analysis. No media is processed.
type Simulator struct {
	UploadDelay   time.Duration
	AnalysisDelay time.Duration
	Rand          Rand
}

// NewSimulator creates a Simulator. A nil rand uses the global source.
func NewSimulator(uploadDelay, analysisDelay time.Duration, r Rand) *Simulator {
	if r == nil {
		r = globalRand{}
	}
	return &Simulator{UploadDelay: uploadDelay, AnalysisDelay: analysisDelay, Rand: r}
}

// Run waits out the upload and analysis delays, then grades a drawn measurement.
// PRE: activity is a known activity type
// POST: Returns a rated Result, or ctx.Err() if the caller gave up during a delay
func (s *Simulator) Run(ctx context.Context, activity string) (domain.Result, error) {
	p, err := domain.ProfileFor(activity)
	if err != nil {
		return domain.Result{}, err
	}

	slog.Info("analysis_event", "event", "upload_started", "activity", activity)
	if err := wait(ctx, s.UploadDelay); err != nil {
		slog.Info("analysis_event", "event", "abandoned", "stage", "upload", "activity", activity)
		return domain.Result{}, err
	}
	slog.Info("analysis_event", "event", "analysis_started", "activity", activity)
	if err := wait(ctx, s.AnalysisDelay); err != nil {
		slog.Info("analysis_event", "event", "abandoned", "stage", "analysis", "activity", activity)
		return domain.Result{}, err
	}

	r := s.Rand
	if r == nil {
		r = globalRand{}
	}
	measurement := math.Round(p.Measure(r.Float64())*10) / 10
	rating := p.Rate(measurement)
	result := domain.Result{
		Activity:    activity,
		Measurement: measurement,
		Unit:        p.Unit,
		Rating:      rating,
		Reward:      domain.RewardFor(rating),
	}
	slog.Info("analysis_event", "event", "analysis_complete", "activity", activity, "measurement", measurement, "rating", rating)
	return result, nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
