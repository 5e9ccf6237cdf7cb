package service

import (
	"context"
	"crypto/subtle"
	"time"

	"buildcare_site/internal/adapters/storage"
	"buildcare_site/internal/inquiry/domain"
	"buildcare_site/internal/inquiry/repository"
	"buildcare_site/platform/apperr"
	"buildcare_site/platform/config"
	"buildcare_site/platform/httpkit"
	"buildcare_site/platform/logger"

	"golang.org/x/crypto/bcrypt"
)

const (
	msgInvalidCredentials = "invalid credentials"
	msgIndexUnavailable   = "inquiry index not configured"

	// DefaultListLimit and MaxListLimit bound the admin listing.
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// Token is an issued admin access token.
type Token struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// RecordView is an inquiry as shown to staff, with a short-lived download
// link when the attachment is in object storage.
type RecordView struct {
	domain.Record
	DownloadURL string `json:"downloadUrl,omitempty"`
}

// AdminService authenticates staff and lists stored inquiries.
type AdminService struct {
	cfg     config.AdminConfig
	index   repository.Index
	objects storage.StorageService
	bucket  string
	log     *logger.Logger
	now     func() time.Time
}

// NewAdminService creates the admin service. index and objects may be nil.
func NewAdminService(cfg config.AdminConfig, index repository.Index, objects storage.StorageService, bucket string, log *logger.Logger) *AdminService {
	return &AdminService{
		cfg:     cfg,
		index:   index,
		objects: objects,
		bucket:  bucket,
		log:     log,
		now:     time.Now,
	}
}

// Login checks the admin credentials and issues an access token.
func (s *AdminService) Login(ctx context.Context, username, password string) (Token, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.GetAdminUsername())) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.GetAdminPasswordHash()), []byte(password))
	if !userOK || passErr != nil {
		s.log.WithContext(ctx).Warn("admin login failed", "username", username)
		return Token{}, apperr.Unauthorized(msgInvalidCredentials)
	}

	token, expiresAt, err := httpkit.IssueAccessToken(s.cfg, username, []string{httpkit.RoleAdmin}, s.cfg.GetAccessTokenTTL(), s.now())
	if err != nil {
		return Token{}, apperr.Wrap(apperr.KindInternal, "issue token", err)
	}
	return Token{AccessToken: token, TokenType: "Bearer", ExpiresAt: expiresAt}, nil
}

// ListRecent returns the newest inquiries, newest first.
func (s *AdminService) ListRecent(ctx context.Context, limit int) ([]RecordView, error) {
	if s.index == nil {
		return nil, apperr.Unavailable(msgIndexUnavailable)
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	records, err := s.index.List(ctx, limit)
	if err != nil {
		return nil, err
	}

	views := make([]RecordView, len(records))
	for i, rec := range records {
		views[i] = RecordView{Record: rec}
		if s.objects == nil || rec.Attachment == nil || rec.Attachment.ObjectKey == "" {
			continue
		}
		url, err := s.objects.GenerateDownloadURL(ctx, s.bucket, rec.Attachment.ObjectKey)
		if err != nil {
			s.log.WithContext(ctx).StorageError("minio", "presign_attachment", err)
			continue
		}
		views[i].DownloadURL = url.URL
	}
	return views, nil
}
