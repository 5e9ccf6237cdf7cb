package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"buildcare_site/internal/inquiry/domain"
)

const maxNameAttempts = 100

// FileStore writes submission-<ms>.json and <ms>-<fileName> into one
// directory. Files are created exclusively; a same-millisecond clash gets a
// numeric suffix instead of overwriting.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create inquiry dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Name returns the sink identifier.
func (s *FileStore) Name() string { return "filesystem" }

// Dir returns the directory records are written to.
func (s *FileStore) Dir() string { return s.dir }

// RecordFileName is the base name of the record file for ms.
func RecordFileName(ms int64) string {
	return "submission-" + strconv.FormatInt(ms, 10) + ".json"
}

// AttachmentFileName is the base name of an attachment received at ms.
func AttachmentFileName(ms int64, original string) string {
	return strconv.FormatInt(ms, 10) + "-" + SafeFileName(original)
}

// Save writes the attachment first so the record names the file actually
// created.
func (s *FileStore) Save(ctx context.Context, rec domain.Record, upload *Upload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if upload != nil && rec.Attachment != nil {
		name, err := s.writeExclusive(AttachmentFileName(rec.ReceivedAtMillis(), upload.FileName), upload.Data)
		if err != nil {
			return fmt.Errorf("write attachment: %w", err)
		}
		att := *rec.Attachment
		att.Key = name
		rec.Attachment = &att
	}

	body, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if _, err := s.writeExclusive(RecordFileName(rec.ReceivedAtMillis()), body); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

func (s *FileStore) writeExclusive(base string, data []byte) (string, error) {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name := base
		if attempt > 0 {
			name = stem + "-" + strconv.Itoa(attempt) + ext
		}

		f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}

		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
			return "", err
		}
		if err := f.Close(); err != nil {
			return "", err
		}
		return name, nil
	}
	return "", fmt.Errorf("no free name for %s after %d attempts", base, maxNameAttempts)
}

// SafeFileName keeps only the base name of a client-supplied file name and
// replaces characters that are unsafe in paths or object keys.
func SafeFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := strings.TrimLeft(b.String(), ".")
	if out == "" {
		return "attachment"
	}
	return out
}
