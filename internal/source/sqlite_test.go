package source

import (
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// seedSQLite creates a small items table for the source tests.
func seedSQLite(path string) {
	GinkgoHelper()

	db, err := sql.Open("sqlite3", path)
	Expect(err).NotTo(HaveOccurred())
	defer db.Close() //nolint:errcheck

	_, err = db.Exec(`CREATE TABLE items (
		id INTEGER PRIMARY KEY,
		size TEXT,
		color TEXT,
		price REAL
	)`)
	Expect(err).NotTo(HaveOccurred())

	_, err = db.Exec(`INSERT INTO items (size, color, price) VALUES
		('big', 'green', 4.5),
		('small', 'brown', 2.5)`)
	Expect(err).NotTo(HaveOccurred())
}
