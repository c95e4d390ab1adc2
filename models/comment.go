package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Comment is a free-text note attached to a ticket
type Comment struct {
	ID         int64     `json:"id"`
	Comment    string    `json:"comment"`
	IsInternal bool      `json:"isInternal"`
	User       AuditUser `json:"user"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CommentInput is the body of a new comment
type CommentInput struct {
	Comment    string `json:"comment"`
	IsInternal bool   `json:"isInternal"`
}

// Author returns the comment author's username
func (c *Comment) Author() string {
	if c.User.Username == "" {
		return "Unknown"
	}
	return c.User.Username
}

// Visibility returns the badge label for the comment
func (c *Comment) Visibility() string {
	if c.IsInternal {
		return "Internal"
	}
	return "Public"
}

// UnmarshalJSON accepts the timestamp under either "createdAt" or
// "created_at". "createdAt" wins when both are present and non-empty.
func (c *Comment) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         int64     `json:"id"`
		Comment    string    `json:"comment"`
		IsInternal bool      `json:"isInternal"`
		User       AuditUser `json:"user"`
		CreatedAt  string    `json:"createdAt"`
		CreatedAtS string    `json:"created_at"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.ID = raw.ID
	c.Comment = raw.Comment
	c.IsInternal = raw.IsInternal
	c.User = raw.User
	c.CreatedAt = time.Time{}

	stamp := strings.TrimSpace(raw.CreatedAt)
	if stamp == "" {
		stamp = strings.TrimSpace(raw.CreatedAtS)
	}
	if stamp != "" {
		t, err := time.Parse(time.RFC3339Nano, stamp)
		if err != nil {
			return err
		}
		c.CreatedAt = t
	}
	return nil
}
