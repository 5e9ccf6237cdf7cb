package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"buildcare_site/internal/adapters/storage"
	"buildcare_site/internal/inquiry/domain"
)

const (
	recordPrefix     = "inquiries/"
	attachmentPrefix = "attachments/"
	jsonContentType  = "application/json"
)

// ObjectStore writes inquiries/<ms>-<id>.json and attachments/<ms>-<name>
// to an S3-compatible bucket.
type ObjectStore struct {
	storage storage.StorageService
	bucket  string
}

// NewObjectStore creates a new object store sink.
func NewObjectStore(svc storage.StorageService, bucket string) *ObjectStore {
	return &ObjectStore{storage: svc, bucket: bucket}
}

// Name returns the sink identifier.
func (s *ObjectStore) Name() string { return "minio" }

// ObjectKeyForAttachment is the key an attachment received at ms is stored under.
func ObjectKeyForAttachment(ms int64, original string) string {
	return attachmentPrefix + AttachmentFileName(ms, original)
}

// ObjectKeyForRecord is the key of a record's JSON document.
func ObjectKeyForRecord(rec domain.Record) string {
	return recordPrefix + strconv.FormatInt(rec.ReceivedAtMillis(), 10) + "-" + rec.ID.String() + ".json"
}

// Save uploads the attachment, then the record.
func (s *ObjectStore) Save(ctx context.Context, rec domain.Record, upload *Upload) error {
	if upload != nil && rec.Attachment != nil {
		key := rec.Attachment.ObjectKey
		if key == "" {
			key = ObjectKeyForAttachment(rec.ReceivedAtMillis(), upload.FileName)
		}
		if err := s.storage.PutObject(ctx, s.bucket, key, upload.ContentType, bytes.NewReader(upload.Data), int64(len(upload.Data))); err != nil {
			return fmt.Errorf("put attachment: %w", err)
		}
	}

	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := s.storage.PutObject(ctx, s.bucket, ObjectKeyForRecord(rec), jsonContentType, bytes.NewReader(body), int64(len(body))); err != nil {
		return fmt.Errorf("put record: %w", err)
	}
	return nil
}
