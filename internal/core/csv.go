package core

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/JonMunkholm/equipview/internal/equipment"
)

var (
	// ErrEmptyFile is returned for a file with no header row.
	ErrEmptyFile = errors.New("empty file: no header row")

	// ErrNoFile is returned when an upload or comparison is missing a file.
	ErrNoFile = errors.New("no file provided")
)

// MissingColumnsError lists required headers absent from an uploaded file.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required column(s): %s (expected: %s)",
		strings.Join(e.Missing, ", "), strings.Join(equipment.RequiredHeaders, ", "))
}

// ParseCSV reads an equipment telemetry file.
//
// The first non-blank line is the header; header names are trimmed and
// columns other than the required five are ignored. Flowrate, Pressure and
// Temperature cells that are empty or not numbers become invalid metrics
// rather than failing the row. Short rows are padded with empty cells.
func ParseCSV(r io.Reader) ([]equipment.Record, error) {
	cr := csv.NewReader(WrapForStreaming(r, 0))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, wrapCSVError(err)
	}

	idx, err := indexHeader(header)
	if err != nil {
		return nil, err
	}

	records := make([]equipment.Record, 0, 64)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapCSVError(err)
		}
		if isEmptyRow(row) {
			continue
		}

		records = append(records, equipment.Record{
			Name:        cell(row, idx[equipment.HeaderName]),
			Type:        cell(row, idx[equipment.HeaderType]),
			Flowrate:    parseMetric(cell(row, idx[equipment.HeaderFlowrate])),
			Pressure:    parseMetric(cell(row, idx[equipment.HeaderPressure])),
			Temperature: parseMetric(cell(row, idx[equipment.HeaderTemperature])),
		})
	}

	return records, nil
}

func wrapCSVError(err error) error {
	if errors.Is(err, ErrFileTooLarge) {
		return err
	}
	return fmt.Errorf("invalid csv: %w", err)
}

// indexHeader maps each required header to its column position. The first
// occurrence of a duplicated header wins.
func indexHeader(header []string) (map[string]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	idx := make(map[string]int, len(equipment.RequiredHeaders))
	var missing []string
	for _, h := range equipment.RequiredHeaders {
		i, ok := pos[h]
		if !ok {
			missing = append(missing, h)
			continue
		}
		idx[h] = i
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}
	return idx, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// parseMetric coerces a cell to a number. Blank, non-numeric and non-finite
// values are invalid.
func parseMetric(s string) equipment.Metric {
	s = strings.TrimSpace(s)
	if s == "" {
		return equipment.Metric{}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return equipment.Metric{}
	}
	return equipment.Num(f)
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
