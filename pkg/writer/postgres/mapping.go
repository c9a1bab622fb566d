package postgres

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/specvital/reporter/pkg/report"
)

const (
	childKindTest  = "test"
	childKindGroup = "group"
)

// toPgUUID converts domain UUID (google/uuid) to pgtype.UUID for database operations.
func toPgUUID(id report.UUID) pgtype.UUID {
	return pgtype.UUID{
		Bytes: id,
		Valid: id != report.NilUUID,
	}
}

// toPgTimestamp converts epoch milliseconds; zero means unset.
func toPgTimestamp(ms int64) pgtype.Timestamptz {
	if ms == 0 {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: time.UnixMilli(ms).UTC(), Valid: true}
}

func toPgText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
