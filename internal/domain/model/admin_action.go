package model

import "time"

// AdminAction is an audit-log entry for privileged operations (vendor
// approvals, settings changes). Append-only.
type AdminAction struct {
	ID         string    `json:"id"             db:"id"`
	AdminID    string    `json:"admin_id"       db:"admin_id"`
	Action     string    `json:"action"         db:"action"`
	TargetType string    `json:"target_type"    db:"target_type"`
	TargetID   string    `json:"target_id"      db:"target_id"`
	Note       *string   `json:"note,omitempty" db:"note"`
	CreatedAt  time.Time `json:"created_at"     db:"created_at"`
}

// AdminActionsListOptions controls paging for the admin activity log.
type AdminActionsListOptions struct {
	Limit      int
	Offset     int
	AdminID    *string
	TargetType *string
}
