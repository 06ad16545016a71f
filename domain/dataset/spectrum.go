package dataset

import (
	"fmt"

	"flexknot/domain/core"
)

// Spectrum is the canonical observed dataset: sky temperature sampled on a
// strictly increasing frequency grid. It is the single input to the
// likelihood engine and is immutable after construction.
type Spectrum struct {
	freq []float64
	temp []float64

	// Fingerprint for replayability
	fingerprint core.DatasetHash
}

// NewSpectrum copies and validates the frequency and temperature columns.
// The copies mean later mutation of the caller's slices cannot reach the
// engine.
func NewSpectrum(freq, temp []float64) (*Spectrum, error) {
	if len(freq) == 0 {
		return nil, core.ErrEmptyDataset
	}
	if len(freq) != len(temp) {
		return nil, fmt.Errorf("%w: %d frequencies, %d temperatures", core.ErrLengthMismatch, len(freq), len(temp))
	}
	for i := 1; i < len(freq); i++ {
		if freq[i] <= freq[i-1] {
			return nil, fmt.Errorf("%w: freq[%d]=%v follows freq[%d]=%v", core.ErrFrequencyOrder, i, freq[i], i-1, freq[i-1])
		}
	}

	s := &Spectrum{
		freq: append([]float64(nil), freq...),
		temp: append([]float64(nil), temp...),
	}
	s.fingerprint = core.ComputeDatasetHash(s.freq, s.temp)
	return s, nil
}

// Len returns the number of observations.
func (s *Spectrum) Len() int { return len(s.freq) }

// Freq returns the frequency at index i in MHz.
func (s *Spectrum) Freq(i int) float64 { return s.freq[i] }

// Temp returns the sky temperature at index i in Kelvin.
func (s *Spectrum) Temp(i int) float64 { return s.temp[i] }

// FreqMin returns the lowest frequency in the grid.
func (s *Spectrum) FreqMin() float64 { return s.freq[0] }

// FreqMax returns the highest frequency in the grid.
func (s *Spectrum) FreqMax() float64 { return s.freq[len(s.freq)-1] }

// Freqs returns a copy of the frequency column.
func (s *Spectrum) Freqs() []float64 {
	return append([]float64(nil), s.freq...)
}

// Temps returns a copy of the temperature column.
func (s *Spectrum) Temps() []float64 {
	return append([]float64(nil), s.temp...)
}

// Fingerprint identifies the dataset contents.
func (s *Spectrum) Fingerprint() core.DatasetHash { return s.fingerprint }
