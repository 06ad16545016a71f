package ports

import (
	"flexknot/domain/dataset"
)

// SpectrumReaderPort loads an observed spectrum from a data file.
// Implementations own format detection and row/column selection; the
// returned spectrum is already validated.
type SpectrumReaderPort interface {
	Read(path string) (*dataset.Spectrum, error)
}
