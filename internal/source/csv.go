package source

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/pivotkit/pivotkit/pkg/classify"
	"github.com/pivotkit/pivotkit/pkg/pivot"
)

// FromCSV reads a headed CSV file into documents, one per data row. Cells
// that look like booleans or numbers are parsed, everything else stays a
// string.
func FromCSV(path string) ([]pivot.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewLoadError(path, err)
	}
	defer f.Close() //nolint:errcheck

	return ReadCSV(f, path)
}

// ReadCSV parses CSV content from a reader. The name is used in errors only.
func ReadCSV(r io.Reader, name string) ([]pivot.Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return []pivot.Record{}, nil
	}
	if err != nil {
		return nil, NewLoadError(name, err)
	}

	records := []pivot.Record{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, NewLoadError(name, err)
		}
		doc := classify.Document{}
		for i, cell := range row {
			if i < len(header) {
				doc[header[i]] = parseScalar(cell)
			}
		}
		records = append(records, doc)
	}
	return records, nil
}
