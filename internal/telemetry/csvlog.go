// Package telemetry implements the CSV telemetry writer and the structured
// console event log from §6/§9's ambient stack. The CSV format is out of
// scope as algorithmic content per spec §1 (it carries none), but its exact
// schema is specified, so the writer here is the literal external
// interface: one row per tick per agent, unused fields written as "None".
package telemetry

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Header is the exact column order of the telemetry file.
var Header = []string{
	"name", "timestamp", "x", "y", "z", "yaw", "vx", "vy", "vz",
	"vx_c", "vy_c", "vz_c", "roll_c", "pitch_c", "yaw_rate_c", "thrust_c",
}

// Opt is an optional float64 field: command fields that only apply to some
// control laws are written as the literal "None" when unset.
type Opt struct {
	set bool
	v   float64
}

// Some wraps a present value.
func Some(v float64) Opt { return Opt{set: true, v: v} }

// None is the absent value.
var None = Opt{}

func (o Opt) string() string {
	if !o.set {
		return "None"
	}
	return strconv.FormatFloat(o.v, 'f', -1, 64)
}

// Row is one tick's telemetry for one agent.
type Row struct {
	Name            string
	TimestampMicros int64
	X, Y, Z, Yaw    float64
	Vx, Vy, Vz      float64
	VxC, VyC, VzC   Opt
	RollC, PitchC   Opt
	YawRateC        Opt
	ThrustC         Opt
}

// CSVWriter is the single per-run telemetry writer: one append per tick per
// agent, flushed after every row per §5's "single writer, per-row flush"
// resource rule.
type CSVWriter struct {
	w           *csv.Writer
	wroteHeader bool
}

// NewCSVWriter wraps dst in a flushing CSV writer and emits the header row.
func NewCSVWriter(dst io.Writer) (*CSVWriter, error) {
	w := csv.NewWriter(dst)
	if err := w.Write(Header); err != nil {
		return nil, fmt.Errorf("telemetry: write header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return &CSVWriter{w: w, wroteHeader: true}, nil
}

// WriteRow appends one row and flushes immediately.
func (c *CSVWriter) WriteRow(r Row) error {
	record := []string{
		r.Name,
		strconv.FormatInt(r.TimestampMicros, 10),
		strconv.FormatFloat(r.X, 'f', -1, 64),
		strconv.FormatFloat(r.Y, 'f', -1, 64),
		strconv.FormatFloat(r.Z, 'f', -1, 64),
		strconv.FormatFloat(r.Yaw, 'f', -1, 64),
		strconv.FormatFloat(r.Vx, 'f', -1, 64),
		strconv.FormatFloat(r.Vy, 'f', -1, 64),
		strconv.FormatFloat(r.Vz, 'f', -1, 64),
		r.VxC.string(),
		r.VyC.string(),
		r.VzC.string(),
		r.RollC.string(),
		r.PitchC.string(),
		r.YawRateC.string(),
		r.ThrustC.string(),
	}
	if err := c.w.Write(record); err != nil {
		return fmt.Errorf("telemetry: write row: %w", err)
	}
	c.w.Flush()
	return c.w.Error()
}
