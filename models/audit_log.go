package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Operation is the kind of event recorded in an audit log entry
type Operation string

const (
	OperationCreate Operation = "CREATE"
	OperationUpdate Operation = "UPDATE"
	OperationDelete Operation = "DELETE"
	OperationLogin  Operation = "LOGIN"
	OperationLogout Operation = "LOGOUT"
	OperationAccess Operation = "ACCESS"
)

func (o Operation) String() string { return string(o) }

// AuditUser is the actor embedded in audit entries and comments
type AuditUser struct {
	Username string `json:"username"`
}

// AuditLogEntry is an immutable backend-recorded event on an entity
type AuditLogEntry struct {
	ID          int64      `json:"id"`
	Operation   Operation  `json:"operation"`
	EntityType  EntityType `json:"entityType"`
	FieldName   string     `json:"fieldName,omitempty"`
	OldValue    any        `json:"oldValue,omitempty"`
	NewValue    any        `json:"newValue,omitempty"`
	User        AuditUser  `json:"user"`
	CreatedAt   time.Time  `json:"createdAt"`
	IsSensitive bool       `json:"isSensitive"`
}

// Actor returns the username that performed the change
func (e *AuditLogEntry) Actor() string {
	if e.User.Username == "" {
		return "System"
	}
	return e.User.Username
}

// Redacted returns a copy of the entry with the values of sensitive
// entries removed
func (e *AuditLogEntry) Redacted() AuditLogEntry {
	c := *e
	if c.IsSensitive {
		c.OldValue = nil
		c.NewValue = nil
	}
	return c
}

// Summary renders the entry as a one-line sentence. Values of sensitive
// entries never appear in the output.
func (e *AuditLogEntry) Summary() string {
	entity := e.EntityType.Label()

	switch e.Operation {
	case OperationCreate:
		return "created this " + entity
	case OperationDelete:
		return "deleted this " + entity
	case OperationLogin:
		return "logged in"
	case OperationLogout:
		return "logged out"
	case OperationAccess:
		return "viewed this " + entity
	}

	if e.FieldName == "" {
		return "updated this " + entity
	}
	if e.IsSensitive {
		return "changed " + e.FieldName
	}

	field := strings.ToLower(e.FieldName)
	switch {
	case field == "status":
		return "changed status to " + FormatAuditValue(e.NewValue)
	case strings.Contains(field, "id"):
		return fmt.Sprintf("moved %s to %s", entity, FormatAuditValue(e.NewValue))
	default:
		return fmt.Sprintf("changed %s: %s → %s", e.FieldName, FormatAuditValue(e.OldValue), FormatAuditValue(e.NewValue))
	}
}

// FormatAuditValue renders a decoded JSON scalar for display
func FormatAuditValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "empty"
	case string:
		if strings.TrimSpace(val) == "" {
			return "empty"
		}
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return val.String()
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}

// AuditQuery describes one paginated read of an entity's audit log
type AuditQuery struct {
	Limit   int
	Page    int
	Filters map[string]string
}

// Offset returns the zero-based row offset for the page
func (q AuditQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// AuditPage is one page of audit entries as delivered by the backend
type AuditPage struct {
	Entries []AuditLogEntry
	Total   int
	Pages   int
	Limit   int
}

// RequestLogEntry represents a single mutating request sent through this frontend
type RequestLogEntry struct {
	ID        int64
	Timestamp time.Time
	Username  string
	Method    string
	Path      string
	FormData  string
	UserAgent string
	IPAddress string
}
