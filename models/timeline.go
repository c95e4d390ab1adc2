package models

import (
	"slices"
	"time"
)

// TimelineItemKind tags which source a timeline item came from
type TimelineItemKind string

const (
	TimelineItemAudit   TimelineItemKind = "audit"
	TimelineItemComment TimelineItemKind = "comment"
)

// TimelineItem is the render-only union of an audit entry or a comment
type TimelineItem struct {
	Kind      TimelineItemKind `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	Audit     *AuditLogEntry   `json:"audit,omitempty"`
	Comment   *Comment         `json:"comment,omitempty"`
}

// IsComment is a template helper
func (i TimelineItem) IsComment() bool {
	return i.Kind == TimelineItemComment
}

// MergeTimeline projects audit entries and comments onto one list sorted by
// timestamp, newest first. Equal timestamps keep input order: audit entries
// (in backend order) before comments (in backend order). Audit items are
// redacted copies, so sensitive values never reach a renderer.
func MergeTimeline(audits []AuditLogEntry, comments []Comment) []TimelineItem {
	items := make([]TimelineItem, 0, len(audits)+len(comments))
	for i := range audits {
		entry := audits[i].Redacted()
		items = append(items, TimelineItem{
			Kind:      TimelineItemAudit,
			Timestamp: entry.CreatedAt,
			Audit:     &entry,
		})
	}
	for i := range comments {
		items = append(items, TimelineItem{
			Kind:      TimelineItemComment,
			Timestamp: comments[i].CreatedAt,
			Comment:   &comments[i],
		})
	}

	slices.SortStableFunc(items, func(a, b TimelineItem) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return items
}
