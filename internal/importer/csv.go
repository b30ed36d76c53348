package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// readRows loads a legacy CSV export into header-keyed rows. The 1.0 exports
// come in a mix of encodings: UTF-8 is tried first, then Windows-1252 and
// Latin-1.
func readRows(path string) ([]map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if !utf8.Valid(data) {
		decoded, derr := charmap.Windows1252.NewDecoder().Bytes(data)
		if derr != nil {
			decoded, derr = charmap.ISO8859_1.NewDecoder().Bytes(data)
			if derr != nil {
				return nil, fmt.Errorf("could not decode %s with any supported encoding: %w", path, derr)
			}
		}
		data = decoded
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Legacy exports contain the odd mangled row; skip it.
			continue
		}

		row := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(record) {
				row[h] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// safeGet returns the first non-empty value among the given column names.
// The 1.0 exporter wrote literal "nan" for missing cells.
func safeGet(row map[string]string, keys ...string) string {
	for _, k := range keys {
		v := strings.TrimSpace(row[k])
		if v != "" && !strings.EqualFold(v, "nan") {
			return v
		}
	}
	return ""
}
