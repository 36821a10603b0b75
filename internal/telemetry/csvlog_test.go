package telemetry

import (
	"bytes"
	"encoding/csv"
	"testing"
)

func TestCSVWriterHeaderAndNoneFields(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewCSVWriter(&buf)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}

	if err := w.WriteRow(Row{
		Name: "A", TimestampMicros: 1000,
		X: 0.1, Y: 0.2, Z: 0.3, Yaw: 0,
		Vx: 0, Vy: 0, Vz: 0,
		RollC: Some(1.5), ThrustC: Some(38000),
	}); err != nil {
		t.Fatalf("WriteRow: %v", err)
	}

	r := csv.NewReader(bytes.NewReader(buf.Bytes()))
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d records", len(records))
	}
	if records[0][0] != "name" {
		t.Errorf("header[0] = %q, want \"name\"", records[0][0])
	}
	row := records[1]
	if row[9] != "None" { // vx_c, unset
		t.Errorf("vx_c = %q, want \"None\"", row[9])
	}
	if row[12] != "1.5" { // roll_c
		t.Errorf("roll_c = %q, want \"1.5\"", row[12])
	}
}
