package source

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pivotkit/pivotkit/pkg/classify"
	"github.com/pivotkit/pivotkit/pkg/pivot"
)

// FromSQLite runs a query against a SQLite database file and returns one
// document per result row, keyed by the result column names.
func FromSQLite(path, query string) ([]pivot.Record, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, NewLoadError(path, err)
	}
	defer db.Close() //nolint:errcheck

	rows, err := db.Query(query)
	if err != nil {
		return nil, NewLoadError(path, err)
	}
	defer rows.Close() //nolint:errcheck

	cols, err := rows.Columns()
	if err != nil {
		return nil, NewLoadError(path, err)
	}

	records := []pivot.Record{}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, NewLoadError(path, err)
		}
		doc := classify.Document{}
		for i, col := range cols {
			// The sqlite driver hands TEXT columns back as []byte.
			if b, ok := vals[i].([]byte); ok {
				doc[col] = string(b)
			} else {
				doc[col] = vals[i]
			}
		}
		records = append(records, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, NewLoadError(path, err)
	}
	return records, nil
}
