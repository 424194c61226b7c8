// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: A single records table holds one JSON document per key.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		key TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`

	_, err := d.db.Exec(schema)
	return err
}
