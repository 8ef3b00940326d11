package core

import "time"

// AuditRecord traces who changed what. Append-only.
type AuditRecord struct {
	ID        string
	UserID    string
	Action    string // CREATE, UPDATE, DELETE, LOGIN
	Entity    string // transaction, bill, category, ...
	EntityID  string
	Timestamp time.Time
}
