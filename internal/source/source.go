// Package source loads record collections for the pivotkit CLI. Loading is
// deliberately outside the engine: the pivot and crosstab packages consume
// any []pivot.Record, this package only provides the common file and
// database shapes.
package source

import (
	"fmt"
	"path/filepath"
	"strconv"
)

type ErrLoad = error

func NewLoadError(path string, err error) ErrLoad {
	return fmt.Errorf("failed to load records from %q: %w", path, err)
}

// Format names a supported record source format.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatSQLite Format = "sqlite"
)

// Detect guesses the source format from the file extension.
func Detect(path string) (Format, error) {
	switch filepath.Ext(path) {
	case ".csv":
		return FormatCSV, nil
	case ".json", ".ndjson", ".jsonl":
		return FormatJSON, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("cannot detect record format of %q", path)
	}
}

// parseScalar converts a raw text cell into the value it looks like: bool,
// integer, float, or the verbatim string.
func parseScalar(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
