package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrAttachmentType is returned for files outside the allowlist.
	ErrAttachmentType = errors.New("attachment type not allowed")
	// ErrAttachmentSize is returned for empty or oversized files.
	ErrAttachmentSize = errors.New("attachment size not allowed")
)

// AllowedAttachments maps each accepted extension to the content types a
// browser may send for it. application/octet-stream is accepted for every
// extension since some clients send nothing more specific.
var AllowedAttachments = map[string][]string{
	".pdf":  {"application/pdf"},
	".doc":  {"application/msword"},
	".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	".jpg":  {"image/jpeg", "image/pjpeg"},
	".jpeg": {"image/jpeg", "image/pjpeg"},
	".png":  {"image/png"},
}

// AcceptAttribute is the value for an HTML file input's accept attribute.
const AcceptAttribute = ".pdf,.doc,.docx,.jpg,.jpeg,.png"

// ValidateAttachment checks the extension, declared content type and size of
// an upload against the allowlist and maxSize.
func ValidateAttachment(fileName, contentType string, size, maxSize int64) error {
	ext := strings.ToLower(filepath.Ext(fileName))
	allowed, ok := AllowedAttachments[ext]
	if !ok {
		return fmt.Errorf("%w: extension %q", ErrAttachmentType, ext)
	}

	normalized := NormalizeContentType(contentType)
	if normalized != "" && normalized != "application/octet-stream" && !contains(allowed, normalized) {
		return fmt.Errorf("%w: %q for %s", ErrAttachmentType, normalized, ext)
	}

	if size <= 0 {
		return fmt.Errorf("%w: empty file", ErrAttachmentSize)
	}
	if size > maxSize {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrAttachmentSize, size, maxSize)
	}
	return nil
}

// ContentTypeFor returns the canonical content type for fileName's extension.
func ContentTypeFor(fileName string) string {
	if allowed, ok := AllowedAttachments[strings.ToLower(filepath.Ext(fileName))]; ok {
		return allowed[0]
	}
	return "application/octet-stream"
}

// NormalizeContentType strips parameters such as charset and lowercases.
func NormalizeContentType(contentType string) string {
	normalized := strings.Split(contentType, ";")[0]
	return strings.TrimSpace(strings.ToLower(normalized))
}

// IsImageContentType checks if the content type is an image.
func IsImageContentType(contentType string) bool {
	return strings.HasPrefix(NormalizeContentType(contentType), "image/")
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
