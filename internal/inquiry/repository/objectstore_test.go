package repository

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"buildcare_site/internal/adapters/storage"
	"buildcare_site/internal/inquiry/domain"
)

type putCall struct {
	bucket      string
	key         string
	contentType string
	body        []byte
}

type fakeStorage struct {
	puts []putCall
	err  error
}

func (f *fakeStorage) PutObject(_ context.Context, bucket, key, contentType string, reader io.Reader, _ int64) error {
	if f.err != nil {
		return f.err
	}
	body, _ := io.ReadAll(reader)
	f.puts = append(f.puts, putCall{bucket: bucket, key: key, contentType: contentType, body: body})
	return nil
}

func (f *fakeStorage) GenerateDownloadURL(context.Context, string, string) (*storage.PresignedURL, error) {
	return nil, nil
}

func (f *fakeStorage) EnsureBucketExists(context.Context, string) error { return nil }

func TestObjectStore_KeysAreTimestamped(t *testing.T) {
	fake := &fakeStorage{}
	store := NewObjectStore(fake, "inquiries")

	at := time.UnixMilli(1700000000123)
	rec := testRecord(at)
	rec.HasFile = true
	rec.Attachment = &domain.Attachment{ObjectKey: ObjectKeyForAttachment(at.UnixMilli(), "site.png"), ContentType: "image/png"}

	err := store.Save(context.Background(), rec, &Upload{FileName: "site.png", ContentType: "image/png", Data: []byte("png")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fake.puts) != 2 {
		t.Fatalf("expected two uploads, got %d", len(fake.puts))
	}
	if fake.puts[0].key != "attachments/1700000000123-site.png" || fake.puts[0].contentType != "image/png" {
		t.Fatalf("unexpected attachment upload %+v", fake.puts[0])
	}
	wantRecordKey := "inquiries/1700000000123-" + rec.ID.String() + ".json"
	if fake.puts[1].key != wantRecordKey || fake.puts[1].contentType != "application/json" {
		t.Fatalf("unexpected record upload %+v", fake.puts[1])
	}
	if fake.puts[1].bucket != "inquiries" {
		t.Fatalf("expected configured bucket, got %s", fake.puts[1].bucket)
	}
}

func TestObjectStore_PropagatesErrors(t *testing.T) {
	store := NewObjectStore(&fakeStorage{err: errors.New("down")}, "inquiries")
	if err := store.Save(context.Background(), testRecord(time.Now()), nil); err == nil {
		t.Fatal("expected error")
	}
}
