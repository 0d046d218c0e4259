package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// WriteCSV emits a header row followed by one row per record, fields in
// header order. Quoting follows RFC 4180 (fields with commas or quotes are
// double-quoted).
func WriteCSV(w io.Writer, headers []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseCSV reads every data row of r and maps columns onto the requested
// field names. Header matching is case-insensitive; extra columns are
// ignored. The returned maps are keyed by the canonical field names given
// by the caller.
func ParseCSV(r io.Reader, fields ...string) ([]map[string]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // rows may carry trailing extras
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("missing header row: %w", err)
	}

	// canonical field -> column index
	index := make(map[string]int, len(fields))
	for _, f := range fields {
		index[f] = -1
	}
	for col, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		for _, f := range fields {
			if strings.ToLower(f) == name && index[f] == -1 {
				index[f] = col
			}
		}
	}
	var missing []string
	for _, f := range fields {
		if index[f] == -1 {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	var out []map[string]string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		record := make(map[string]string, len(fields))
		for f, col := range index {
			if col < len(row) {
				record[f] = strings.TrimSpace(row[col])
			}
		}
		out = append(out, record)
	}
	return out, nil
}
