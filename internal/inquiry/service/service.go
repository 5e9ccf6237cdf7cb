// Package service provides business logic for inquiry intake.
package service

import (
	"bytes"
	"context"
	"time"

	"buildcare_site/internal/adapters/storage"
	"buildcare_site/internal/events"
	"buildcare_site/internal/inquiry/domain"
	"buildcare_site/internal/inquiry/repository"
	"buildcare_site/platform/apperr"
	"buildcare_site/platform/logger"
	"buildcare_site/platform/phone"
	"buildcare_site/platform/sanitize"

	"github.com/google/uuid"
	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/sync/errgroup"
)

// Client-facing messages. Nothing else about a failure reaches the caller.
const (
	MsgMissingFields     = "Missing required fields"
	MsgInvalidSubmission = "Invalid submission"
	MsgInvalidAttachment = "Invalid attachment"
	MsgAccepted          = "Thank you! We will get back to you soon."
)

// persistTimeout bounds the storage fan-out once it is detached from the
// request.
const persistTimeout = 30 * time.Second

// Config is what the intake needs from the application config.
type Config interface {
	GetInquiryMaxFileSize() int64
	GetPhoneDefaultRegion() string
}

// Submission is one intake request after decoding.
type Submission struct {
	Fields   domain.Fields
	Upload   *repository.Upload
	Language string
	SourceIP string
}

// Service validates and stores inquiries.
type Service struct {
	validator    *domain.Validator
	stores       []repository.RecordStore
	objectsReady bool
	bus          events.Bus
	cfg          Config
	log          *logger.Logger
	now          func() time.Time
}

// New creates a new inquiry service. objectsReady reports whether one of
// stores is the object store, so records carry the attachment object key.
func New(validator *domain.Validator, stores []repository.RecordStore, objectsReady bool, bus events.Bus, cfg Config, log *logger.Logger) *Service {
	return &Service{
		validator:    validator,
		stores:       stores,
		objectsReady: objectsReady,
		bus:          bus,
		cfg:          cfg,
		log:          log,
		now:          time.Now,
	}
}

// Submit checks a submission and, when it passes, stores it in every sink
// and publishes InquiryReceived. Storage failures are logged and never
// returned: once validation passes the inquiry is accepted.
func (s *Service) Submit(ctx context.Context, sub Submission) (domain.Record, error) {
	variant := domain.VariantOf(sub.Fields)
	if missing := MissingFields(sub.Fields, variant); len(missing) > 0 {
		return domain.Record{}, apperr.Validation(MsgMissingFields)
	}

	if errs := s.validator.Validate(sub.Fields, variant); !errs.OK() {
		return domain.Record{}, apperr.Validation(MsgInvalidSubmission).WithDetails(errs)
	}

	if sub.Upload != nil {
		size := int64(len(sub.Upload.Data))
		if err := storage.ValidateAttachment(sub.Upload.FileName, sub.Upload.ContentType, size, s.cfg.GetInquiryMaxFileSize()); err != nil {
			s.log.WithContext(ctx).Info("attachment rejected", "fileName", sub.Upload.FileName, "error", err.Error())
			return domain.Record{}, apperr.BadRequest(MsgInvalidAttachment)
		}
		if ct := storage.NormalizeContentType(sub.Upload.ContentType); ct == "" || ct == "application/octet-stream" {
			sub.Upload.ContentType = storage.ContentTypeFor(sub.Upload.FileName)
		}
	}

	rec := s.buildRecord(sub, variant)
	stored := s.persist(ctx, rec, sub.Upload)

	if s.bus != nil {
		s.bus.Publish(ctx, events.InquiryReceived{
			BaseEvent:   events.NewBaseEvent(),
			InquiryID:   rec.ID,
			ReceivedAt:  rec.ReceivedAt,
			Name:        rec.Name,
			Email:       rec.Email,
			Phone:       rec.Phone,
			Company:     rec.Company,
			Service:     rec.Service,
			ProjectType: rec.ProjectType,
			Message:     rec.Message,
			FileName:    rec.FileName,
			Language:    rec.Language,
			Stored:      stored,
		})
	}

	return rec, nil
}

// MissingFields lists required fields of v that are empty after trimming.
func MissingFields(f domain.Fields, v domain.Variant) []string {
	trimmed := f.Trimmed()
	var missing []string
	for _, field := range domain.RequiredFields(v) {
		if trimmed.Get(field) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

func (s *Service) buildRecord(sub Submission, variant domain.Variant) domain.Record {
	f := sub.Fields.Trimmed()
	receivedAt := s.now().UTC()

	rec := domain.Record{
		ID:          uuid.New(),
		ReceivedAt:  receivedAt,
		Name:        sanitize.Text(f.Name),
		Email:       f.Email,
		Phone:       f.Phone,
		PhoneE164:   phone.NormalizeE164(f.Phone, s.cfg.GetPhoneDefaultRegion()),
		Company:     sanitize.Text(f.Company),
		Service:     f.Service,
		ProjectType: f.ProjectType,
		Message:     sanitize.Text(f.Message),
		Variant:     variant,
		Language:    sub.Language,
		SourceIP:    sub.SourceIP,
	}

	if sub.Upload != nil {
		ms := receivedAt.UnixMilli()
		rec.HasFile = true
		rec.FileName = sub.Upload.FileName
		rec.Attachment = &domain.Attachment{
			Key:         repository.AttachmentFileName(ms, sub.Upload.FileName),
			ContentType: sub.Upload.ContentType,
			Size:        int64(len(sub.Upload.Data)),
			CapturedAt:  captureTime(sub.Upload),
		}
		if s.objectsReady {
			rec.Attachment.ObjectKey = repository.ObjectKeyForAttachment(ms, sub.Upload.FileName)
		}
	}

	return rec
}

// persist writes rec to every sink concurrently and returns the names of the
// sinks that succeeded.
func (s *Service) persist(ctx context.Context, rec domain.Record, upload *repository.Upload) []string {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	log := s.log.WithContext(ctx)
	ok := make([]bool, len(s.stores))

	var g errgroup.Group
	for i, store := range s.stores {
		i, store := i, store
		g.Go(func() error {
			if err := store.Save(ctx, rec, upload); err != nil {
				log.StorageError(store.Name(), "save_inquiry", err)
				return nil
			}
			ok[i] = true
			return nil
		})
	}
	_ = g.Wait()

	stored := make([]string, 0, len(s.stores))
	for i, store := range s.stores {
		if ok[i] {
			stored = append(stored, store.Name())
		}
	}
	if len(stored) == 0 && len(s.stores) > 0 {
		log.Error("inquiry not stored in any sink", "inquiryId", rec.ID.String())
	}
	return stored
}

// captureTime reads the EXIF capture time of a photo. Documents and images
// without EXIF data have none.
func captureTime(upload *repository.Upload) *time.Time {
	if !storage.IsImageContentType(upload.ContentType) {
		return nil
	}
	x, err := exif.Decode(bytes.NewReader(upload.Data))
	if err != nil {
		return nil
	}
	taken, err := x.DateTime()
	if err != nil {
		return nil
	}
	return &taken
}
