package postgres

import (
	pgwriter "github.com/specvital/reporter/pkg/writer/postgres"
)

// Schema returns the SQL used to initialize a fresh test database.
func Schema() string {
	return pgwriter.Schema()
}
