package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/blogem/crm-web/models"
	"github.com/blogem/crm-web/services"
)

func renderTimeline(w io.Writer, snap services.TimelineSnapshot) {
	fmt.Fprintf(w, "Activity for %s #%s\n", snap.EntityType.Label(), snap.EntityID)

	switch {
	case !snap.HasAccess:
		fmt.Fprintf(w, "Access restricted: you cannot view the history of this %s.\n", snap.EntityType.Label())
		return
	case snap.State == services.ViewStateError:
		fmt.Fprintln(w, snap.Error)
		return
	}

	if snap.CommentWarning != "" {
		fmt.Fprintf(w, "warning: %s\n", snap.CommentWarning)
	}
	if len(snap.Items) == 0 {
		fmt.Fprintln(w, "No activity recorded yet.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, item := range snap.Items {
		fmt.Fprintf(tw, "%s\t%s\n", models.FormatDateTime(item.Timestamp), describe(item))
	}
	tw.Flush()

	p := snap.Pagination
	if p.Pages > 1 {
		fmt.Fprintf(w, "page %d of %d (%d changes)\n", p.CurrentPage, p.Pages, p.Total)
	}
}

func describe(item models.TimelineItem) string {
	if item.IsComment() {
		return fmt.Sprintf("%s [%s]: %s", item.Comment.Author(), item.Comment.Visibility(), item.Comment.Comment)
	}
	lock := ""
	if item.Audit.IsSensitive {
		lock = " [sensitive]"
	}
	return fmt.Sprintf("%s %s%s", item.Audit.Actor(), item.Audit.Summary(), lock)
}
