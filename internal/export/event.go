package export

import "github.com/gorewood/clickup-export/internal/page"

// EventKind identifies what an Event reports.
type EventKind string

// Event kinds, in the order they can occur for a single page.
const (
	EventCollision EventKind = "collision"
	EventMarkdown  EventKind = "markdown"
	EventMetadata  EventKind = "metadata"
	EventDirectory EventKind = "directory"
)

// Event describes one step of an export.
type Event struct {
	Kind EventKind
	Path string
	Page *page.Page
	// PreviousID is the id of the sibling that claimed the name first.
	// Only set for EventCollision.
	PreviousID string
}

// Observer receives events synchronously, in export order.
type Observer func(Event)
