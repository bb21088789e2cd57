package schema

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Required lists the tables ingest writes to.
var Required = []string{
	"gating_decision",
	"gating_histogram",
}

// Check verifies the required tables exist in the currently selected
// database (SELECT DATABASE()). Returns the missing table names.
func Check(ctx context.Context, conn *sql.DB) ([]string, error) {
	var dbName sql.NullString
	if err := conn.QueryRowContext(ctx, "SELECT DATABASE()").Scan(&dbName); err != nil {
		return nil, fmt.Errorf("SELECT DATABASE() failed: %w", err)
	}
	if !dbName.Valid || strings.TrimSpace(dbName.String) == "" {
		return nil, fmt.Errorf("no active database selected")
	}

	rows, err := conn.QueryContext(ctx,
		"SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = ?",
		dbName.String,
	)
	if err != nil {
		return nil, fmt.Errorf("schema list query failed: %w", err)
	}
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan table failed: %w", err)
		}
		found[t] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}

	var missing []string
	for _, t := range Required {
		if !found[t] {
			missing = append(missing, t)
		}
	}
	return missing, nil
}
