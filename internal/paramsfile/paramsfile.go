// Package paramsfile implements the round-trip read/write of §6's
// parameters file: one line per agent, read at UI boot and written back on
// submit. The UI itself is out of scope per spec §1; only the round trip
// is algorithmic content worth a testable property (§8).
package paramsfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Entry is one parameters-file line.
type Entry struct {
	Name         string
	InitX        float64
	InitY        float64
	InitZ        float64
	TakeoffZ     float64
	Connectivity []string
	OffsetX      float64
	OffsetY      float64
	ManualFlag   bool
	EnabledFlag  bool
}

const connectivitySep = ";"

// Read parses the parameters file format from src.
func Read(src io.Reader) ([]Entry, error) {
	r := csv.NewReader(src)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = 10

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("paramsfile: read: %w", err)
	}

	entries := make([]Entry, 0, len(records))
	for i, rec := range records {
		e, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("paramsfile: line %d: %w", i+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func parseRecord(rec []string) (Entry, error) {
	f := make([]float64, 6)
	values := []string{rec[1], rec[2], rec[3], rec[4], rec[6], rec[7]}
	for i, s := range values {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return Entry{}, fmt.Errorf("field %d: %w", i+1, err)
		}
		f[i] = v
	}

	var connectivity []string
	if raw := strings.TrimSpace(rec[5]); raw != "" {
		connectivity = strings.Split(raw, connectivitySep)
	}

	manual, err := strconv.ParseBool(strings.TrimSpace(rec[8]))
	if err != nil {
		return Entry{}, fmt.Errorf("manual flag: %w", err)
	}
	enabled, err := strconv.ParseBool(strings.TrimSpace(rec[9]))
	if err != nil {
		return Entry{}, fmt.Errorf("enabled flag: %w", err)
	}

	return Entry{
		Name:         strings.TrimSpace(rec[0]),
		InitX:        f[0],
		InitY:        f[1],
		InitZ:        f[2],
		TakeoffZ:     f[3],
		Connectivity: connectivity,
		OffsetX:      f[4],
		OffsetY:      f[5],
		ManualFlag:   manual,
		EnabledFlag:  enabled,
	}, nil
}

// Write serializes entries back to the parameters file format.
func Write(dst io.Writer, entries []Entry) error {
	w := csv.NewWriter(dst)
	for _, e := range entries {
		rec := []string{
			e.Name,
			strconv.FormatFloat(e.InitX, 'f', -1, 64),
			strconv.FormatFloat(e.InitY, 'f', -1, 64),
			strconv.FormatFloat(e.InitZ, 'f', -1, 64),
			strconv.FormatFloat(e.TakeoffZ, 'f', -1, 64),
			strings.Join(e.Connectivity, connectivitySep),
			strconv.FormatFloat(e.OffsetX, 'f', -1, 64),
			strconv.FormatFloat(e.OffsetY, 'f', -1, 64),
			strconv.FormatBool(e.ManualFlag),
			strconv.FormatBool(e.EnabledFlag),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("paramsfile: write: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
