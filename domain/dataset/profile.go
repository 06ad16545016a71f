package dataset

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// Profile summarizes a spectrum for reporting and API exposure.
type Profile struct {
	Samples     int     `json:"samples"`
	FreqMin     float64 `json:"freq_min"`
	FreqMax     float64 `json:"freq_max"`
	TempMean    float64 `json:"temp_mean"`
	TempStd     float64 `json:"temp_std"`
	TempMin     float64 `json:"temp_min"`
	TempMax     float64 `json:"temp_max"`
	TempMedian  float64 `json:"temp_median"`
	Fingerprint string  `json:"fingerprint"`
}

// Profile computes summary statistics over the temperature column.
func (s *Spectrum) Profile() (*Profile, error) {
	data := stats.Float64Data(s.temp)

	mean, err := stats.Mean(data)
	if err != nil {
		return nil, fmt.Errorf("computing mean: %w", err)
	}
	std, err := stats.StandardDeviation(data)
	if err != nil {
		return nil, fmt.Errorf("computing standard deviation: %w", err)
	}
	min, err := stats.Min(data)
	if err != nil {
		return nil, fmt.Errorf("computing min: %w", err)
	}
	max, err := stats.Max(data)
	if err != nil {
		return nil, fmt.Errorf("computing max: %w", err)
	}
	median, err := stats.Median(data)
	if err != nil {
		return nil, fmt.Errorf("computing median: %w", err)
	}

	return &Profile{
		Samples:     s.Len(),
		FreqMin:     s.FreqMin(),
		FreqMax:     s.FreqMax(),
		TempMean:    mean,
		TempStd:     std,
		TempMin:     min,
		TempMax:     max,
		TempMedian:  median,
		Fingerprint: s.fingerprint.String(),
	}, nil
}
