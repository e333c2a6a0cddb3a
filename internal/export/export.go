package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/san-kum/walksim/internal/walk"
)

// Format is an export file format.
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(s, "."))) {
	case CSV:
		return CSV, nil
	case JSON:
		return JSON, nil
	}
	return "", fmt.Errorf("unknown export format: %s", s)
}

// FormatFor picks a format from the file extension, defaulting to CSV.
func FormatFor(path string) Format {
	if f, err := ParseFormat(filepath.Ext(path)); err == nil {
		return f
	}
	return CSV
}

type ExportData struct {
	Distribution string       `json:"distribution"`
	Mode         string       `json:"mode"`
	Steps        int          `json:"steps"`
	Mean         float64      `json:"mean"`
	Seed         int64        `json:"seed,omitempty"`
	Summary      walk.Summary `json:"summary"`
	Points       []walk.Point `json:"points"`
}

func newExportData(t *walk.Trajectory, seed int64) ExportData {
	return ExportData{
		Distribution: t.Params.Kind.String(),
		Mode:         t.Mode.String(),
		Steps:        t.Steps(),
		Mean:         t.Mean,
		Seed:         seed,
		Summary:      walk.Summarize(t, t.Steps()),
		Points:       t.Points,
	}
}

func WriteJSON(w io.Writer, t *walk.Trajectory, seed int64) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newExportData(t, seed))
}

func WriteCSV(w io.Writer, t *walk.Trajectory) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"step", "statistic", "reference"}); err != nil {
		return err
	}
	for _, p := range t.Points {
		row := []string{
			strconv.Itoa(p.Step),
			strconv.FormatFloat(p.Statistic, 'f', 6, 64),
			strconv.FormatFloat(p.Reference, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Write encodes t to w in the given format.
func Write(w io.Writer, format Format, t *walk.Trajectory, seed int64) error {
	switch format {
	case JSON:
		return WriteJSON(w, t, seed)
	case CSV:
		return WriteCSV(w, t)
	default:
		return fmt.Errorf("unknown export format: %s", format)
	}
}

// SaveFile writes t to path, choosing the format from its extension.
func SaveFile(path string, t *walk.Trajectory, seed int64) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := Write(file, FormatFor(path), t, seed); err != nil {
		return err
	}
	return file.Close()
}

// ReadCSV parses a file produced by WriteCSV back into points.
func ReadCSV(r io.Reader) ([]walk.Point, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("empty csv")
	}

	points := make([]walk.Point, 0, len(records)-1)
	for i, record := range records[1:] {
		step, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		stat, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		ref, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		points = append(points, walk.Point{Step: step, Statistic: stat, Reference: ref})
	}
	return points, nil
}
