package models

import (
	"time"
)

// FlashMessage represents a flash message for user feedback
type FlashMessage struct {
	Type    string `json:"type"` // "success", "error", "warning", "info"
	Message string `json:"message"`
}

// Pagination carries the page metadata of a paginated list
type Pagination struct {
	Total       int `json:"total"`
	Pages       int `json:"pages"`
	CurrentPage int `json:"currentPage"`
	Limit       int `json:"limit"`
}

// HasNext reports whether a page after the current one exists
func (p Pagination) HasNext() bool {
	return p.CurrentPage < p.Pages
}

// HasPrev reports whether a page before the current one exists
func (p Pagination) HasPrev() bool {
	return p.CurrentPage > 1
}

// NextPage returns the following page number
func (p Pagination) NextPage() int {
	return p.CurrentPage + 1
}

// PrevPage returns the preceding page number
func (p Pagination) PrevPage() int {
	return p.CurrentPage - 1
}

// FormatDateTime formats a time as YYYY-MM-DD HH:MM
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "unknown time"
	}
	return t.Format("2006-01-02 15:04")
}
