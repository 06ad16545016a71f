package edges

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"flexknot/domain/dataset"
	"flexknot/ports"
)

// ReaderConfig selects which rows and columns of a release file form the
// spectrum. The defaults match the EDGES low-band figure 1 data release:
// one header row, frequency in column 0, sky temperature in column 2, and
// the band edges trimmed by three leading and two trailing rows.
type ReaderConfig struct {
	FreqColumn int `json:"freq_column"`
	TempColumn int `json:"temp_column"`
	SkipHeader int `json:"skip_header"`
	TrimHead   int `json:"trim_head"`
	TrimTail   int `json:"trim_tail"`
}

// DefaultReaderConfig returns the figure-1 release layout.
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		FreqColumn: 0,
		TempColumn: 2,
		SkipHeader: 1,
		TrimHead:   3,
		TrimTail:   2,
	}
}

// Reader loads spectrum files in CSV or XLSX form.
type Reader struct {
	cfg ReaderConfig
}

// NewReader creates a reader with the given layout.
func NewReader(cfg ReaderConfig) *Reader {
	return &Reader{cfg: cfg}
}

// Read loads, trims, and validates the spectrum at path.
func (r *Reader) Read(path string) (*dataset.Spectrum, error) {
	log.Printf("[EdgesReader] Reading spectrum file: %s", path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("spectrum file not found: %s", path)
	}

	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = r.readExcelRows(path)
	default:
		rows, err = r.readCSVRows(path)
	}
	if err != nil {
		return nil, err
	}

	return r.processRows(path, rows)
}

// readExcelRows reads all rows from Sheet1
func (r *Reader) readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	log.Printf("[EdgesReader] Excel file read (%d rows)", len(rows))
	return rows, nil
}

// readCSVRows reads all rows, tolerating ragged record lengths
func (r *Reader) readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	log.Printf("[EdgesReader] CSV file read (%d rows)", len(rows))
	return rows, nil
}

// processRows applies the header skip and edge trims, then parses the
// frequency and temperature columns.
func (r *Reader) processRows(path string, rows [][]string) (*dataset.Spectrum, error) {
	if len(rows) <= r.cfg.SkipHeader {
		return nil, fmt.Errorf("spectrum file %s has no data rows", path)
	}
	data := rows[r.cfg.SkipHeader:]

	trimmed := r.cfg.TrimHead + r.cfg.TrimTail
	if len(data) <= trimmed {
		return nil, fmt.Errorf("spectrum file %s has %d data rows, need more than the %d trimmed", path, len(data), trimmed)
	}
	data = data[r.cfg.TrimHead : len(data)-r.cfg.TrimTail]

	freq := make([]float64, 0, len(data))
	temp := make([]float64, 0, len(data))
	for i, row := range data {
		fileRow := r.cfg.SkipHeader + r.cfg.TrimHead + i + 1

		f, err := parseCell(row, r.cfg.FreqColumn)
		if err != nil {
			return nil, fmt.Errorf("row %d of %s: %w", fileRow, path, err)
		}
		y, err := parseCell(row, r.cfg.TempColumn)
		if err != nil {
			return nil, fmt.Errorf("row %d of %s: %w", fileRow, path, err)
		}

		freq = append(freq, f)
		temp = append(temp, y)
	}

	spec, err := dataset.NewSpectrum(freq, temp)
	if err != nil {
		return nil, fmt.Errorf("spectrum file %s: %w", path, err)
	}

	log.Printf("[EdgesReader] Loaded %d observations spanning %.2f-%.2f MHz", spec.Len(), spec.FreqMin(), spec.FreqMax())
	return spec, nil
}

func parseCell(row []string, col int) (float64, error) {
	if col >= len(row) {
		return 0, fmt.Errorf("missing column %d", col)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
	if err != nil {
		return 0, fmt.Errorf("bad numeric cell in column %d: %q", col, row[col])
	}
	return v, nil
}

var _ ports.SpectrumReaderPort = (*Reader)(nil)
