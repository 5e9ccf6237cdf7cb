package repository

import (
	"context"
	"fmt"
	"time"

	"buildcare_site/internal/inquiry/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresIndex keeps a queryable copy of every inquiry. Attachment bytes
// stay in the file and object sinks.
type PostgresIndex struct {
	pool *pgxpool.Pool
}

// Compile-time checks.
var (
	_ RecordStore = (*PostgresIndex)(nil)
	_ Index       = (*PostgresIndex)(nil)
	_ RecordStore = (*FileStore)(nil)
	_ RecordStore = (*ObjectStore)(nil)
)

// NewPostgresIndex creates a new inquiry index.
func NewPostgresIndex(pool *pgxpool.Pool) *PostgresIndex {
	return &PostgresIndex{pool: pool}
}

// Name returns the sink identifier.
func (r *PostgresIndex) Name() string { return "postgres" }

// Save inserts the record. The upload is ignored.
func (r *PostgresIndex) Save(ctx context.Context, rec domain.Record, _ *Upload) error {
	var (
		attKey, attObjectKey, attContentType *string
		attSize                              *int64
		attCapturedAt                        *time.Time
	)
	if rec.Attachment != nil {
		attKey = &rec.Attachment.Key
		attObjectKey = nullable(rec.Attachment.ObjectKey)
		attContentType = &rec.Attachment.ContentType
		attSize = &rec.Attachment.Size
		attCapturedAt = rec.Attachment.CapturedAt
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO inquiries (
			id, received_at, variant, name, email, phone, phone_e164, company,
			service, project_type, message, language, has_file, file_name,
			attachment_key, attachment_object_key, attachment_content_type,
			attachment_size, attachment_captured_at, source_ip
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		rec.ID, rec.ReceivedAt, string(rec.Variant), rec.Name, rec.Email, rec.Phone,
		nullable(rec.PhoneE164), nullable(rec.Company), nullable(rec.Service), nullable(rec.ProjectType),
		rec.Message, rec.Language, rec.HasFile, nullable(rec.FileName),
		attKey, attObjectKey, attContentType, attSize, attCapturedAt, nullable(rec.SourceIP),
	)
	if err != nil {
		return fmt.Errorf("insert inquiry: %w", err)
	}
	return nil
}

// List returns the most recent inquiries first.
func (r *PostgresIndex) List(ctx context.Context, limit int) ([]domain.Record, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, received_at, variant, name, email, phone, phone_e164, company,
			service, project_type, message, language, has_file, file_name,
			attachment_key, attachment_object_key, attachment_content_type,
			attachment_size, attachment_captured_at, source_ip
		FROM inquiries
		ORDER BY received_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query inquiries: %w", err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("scan inquiries: %w", err)
	}
	return records, nil
}

func scanRecord(row pgx.CollectableRow) (domain.Record, error) {
	var (
		rec                                                    domain.Record
		variant                                                string
		phoneE164, company, service, projectType, fileName, ip *string
		attKey, attObjectKey, attContentType                   *string
		attSize                                                *int64
		attCapturedAt                                          *time.Time
	)

	err := row.Scan(
		&rec.ID, &rec.ReceivedAt, &variant, &rec.Name, &rec.Email, &rec.Phone, &phoneE164, &company,
		&service, &projectType, &rec.Message, &rec.Language, &rec.HasFile, &fileName,
		&attKey, &attObjectKey, &attContentType, &attSize, &attCapturedAt, &ip,
	)
	if err != nil {
		return domain.Record{}, err
	}

	rec.Variant = domain.Variant(variant)
	rec.PhoneE164 = deref(phoneE164)
	rec.Company = deref(company)
	rec.Service = deref(service)
	rec.ProjectType = deref(projectType)
	rec.FileName = deref(fileName)
	rec.SourceIP = deref(ip)
	if attKey != nil {
		rec.Attachment = &domain.Attachment{
			Key:         *attKey,
			ObjectKey:   deref(attObjectKey),
			ContentType: deref(attContentType),
			CapturedAt:  attCapturedAt,
		}
		if attSize != nil {
			rec.Attachment.Size = *attSize
		}
	}
	return rec, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
