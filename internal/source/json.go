package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/pivotkit/pivotkit/pkg/classify"
	"github.com/pivotkit/pivotkit/pkg/pivot"
)

// FromJSON reads records from a JSON file holding either a top-level array
// of objects or newline-delimited objects (NDJSON).
func FromJSON(path string) ([]pivot.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewLoadError(path, err)
	}
	defer f.Close() //nolint:errcheck

	return ReadJSON(f, path)
}

// ReadJSON parses JSON records from a reader. The name is used in errors
// only.
func ReadJSON(r io.Reader, name string) ([]pivot.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, NewLoadError(name, err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []pivot.Record{}, nil
	}

	if trimmed[0] == '[' {
		docs := []classify.Document{}
		if err := json.Unmarshal(trimmed, &docs); err != nil {
			return nil, NewLoadError(name, err)
		}
		records := make([]pivot.Record, 0, len(docs))
		for _, doc := range docs {
			records = append(records, doc)
		}
		return records, nil
	}

	// NDJSON: one object per non-empty line.
	records := []pivot.Record{}
	scanner := bufio.NewScanner(bytes.NewReader(trimmed))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		doc := classify.Document{}
		if err := json.Unmarshal(line, &doc); err != nil {
			return nil, NewLoadError(name, err)
		}
		records = append(records, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, NewLoadError(name, err)
	}
	return records, nil
}
