package domain

import (
	"context"
	"io"
)

// KeyValueStore is the durable key-value store the catalog persists its
// records to. Implementations can be in-memory, bbolt, SQLite, or any
// other backend.
type KeyValueStore interface {
	// Get returns ErrNotFound when key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// IntentParser converts raw user input into structured intents.
type IntentParser interface {
	Parse(ctx context.Context, input string) (*Intent, error)
}

// Notifier delivers messages to the user. Implementations can write to
// stdout, the terminal UI, or a log.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}

// DocumentExporter is the external document-generation capability. The
// export layer lays out text; the exporter only draws it.
type DocumentExporter interface {
	// NewDocument returns ErrExportUnavailable (or a wrapped cause) when
	// the capability can't be used.
	NewDocument() (Document, error)
}

// Document is a paginated drawing surface measured in points.
type Document interface {
	SetFontSize(pt float64)
	Text(x, y float64, s string)
	AddPage()
	Output(w io.Writer) error
}
