package report

import "github.com/google/uuid"

// UUID is the identifier type for results, containers and attachments.
type UUID = uuid.UUID

var NilUUID = uuid.Nil

func NewUUID() UUID {
	return uuid.New()
}

func ParseUUID(s string) (UUID, error) {
	return uuid.Parse(s)
}
