package domain

import "time"

const (
	AuditEntityTask = "task"
	AuditEntityUser = "user"
	AuditEntityAuth = "auth"

	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
	AuditActionLogin  = "login"
	AuditActionLogout = "logout"
)

// AuditEntry records one successful mutating operation. Entries are written
// synchronously within the request and read back through the admin surface.
type AuditEntry struct {
	ID        string    `json:"id"`
	ActorID   string    `json:"actor_id"`
	Entity    string    `json:"entity"`
	Action    string    `json:"action"`
	SubjectID string    `json:"subject_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
