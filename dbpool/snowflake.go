package dbpool

import (
	"database/sql"
	"fmt"

	_ "github.com/snowflakedb/gosnowflake"
)

// openSnowflake opens a Snowflake connection. Snowflake sessions are
// expensive to establish and the driver surfaces auth failures immediately,
// so a single attempt is made regardless of retry options.
func (m *DBManager) openSnowflake(opts OpenOptions) (*sql.DB, error) {
	db, err := sql.Open("snowflake", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("dbpool: failed to open Snowflake: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		m.logger(fmt.Sprintf("[dbpool] Snowflake ping failed: %v", err))
		return nil, fmt.Errorf("dbpool: failed to connect to Snowflake: %w", err)
	}

	return db, nil
}
