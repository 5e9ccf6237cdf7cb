// Package repository persists accepted inquiries. Every sink is append-only:
// records and attachments are written under names derived from the receipt
// time and never read back or rewritten.
package repository

import (
	"context"

	"buildcare_site/internal/inquiry/domain"
)

// Upload is an attachment held in memory between validation and storage.
// Attachments are small enough that every sink can take its own copy.
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// RecordStore is one durable sink for inquiries.
type RecordStore interface {
	// Name identifies the sink in logs.
	Name() string
	// Save persists rec and, when upload is non-nil, its attachment.
	Save(ctx context.Context, rec domain.Record, upload *Upload) error
}

// Index lists recent inquiries for the admin view.
type Index interface {
	List(ctx context.Context, limit int) ([]domain.Record, error)
}
