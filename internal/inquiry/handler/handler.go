package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	contenthandler "buildcare_site/internal/content/handler"
	"buildcare_site/internal/inquiry/domain"
	"buildcare_site/internal/inquiry/repository"
	"buildcare_site/internal/inquiry/service"
	"buildcare_site/internal/inquiry/transport"
	"buildcare_site/platform/httpkit"
	"buildcare_site/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"

	// multipartMemory is how much of a multipart body is held in memory
	// before spilling to temp files.
	multipartMemory = 8 << 20
	// bodyOverhead is allowed on top of the attachment size for the text
	// fields and multipart framing.
	bodyOverhead = 1 << 20
)

// Handler handles HTTP requests for inquiry intake and the admin listing.
type Handler struct {
	svc         *service.Service
	admin       *service.AdminService
	val         *validator.Validator
	maxFileSize int64
}

// New creates a new inquiry handler.
func New(svc *service.Service, admin *service.AdminService, val *validator.Validator, maxFileSize int64) *Handler {
	return &Handler{svc: svc, admin: admin, val: val, maxFileSize: maxFileSize}
}

// Submit accepts one inquiry as multipart, urlencoded or JSON.
// POST /api/contact
// POST /api/v1/inquiries
func (h *Handler) Submit(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxFileSize+bodyOverhead)

	sub, err := h.parseSubmission(c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || errors.Is(err, errAttachmentTooLarge) {
			httpkit.Error(c, http.StatusBadRequest, service.MsgInvalidAttachment, nil)
			return
		}
		httpkit.Error(c, http.StatusBadRequest, service.MsgMissingFields, nil)
		return
	}

	if _, err := h.svc.Submit(c.Request.Context(), sub); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.SubmitResponse{Success: true, Message: service.MsgAccepted})
}

var errAttachmentTooLarge = errors.New("attachment too large")

func (h *Handler) parseSubmission(c *gin.Context) (service.Submission, error) {
	sub := service.Submission{
		Language: string(contenthandler.RequestLanguage(c)),
		SourceIP: c.ClientIP(),
	}

	if c.ContentType() == gin.MIMEJSON {
		if err := c.ShouldBindJSON(&sub.Fields); err != nil {
			return sub, err
		}
		return sub, nil
	}

	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			return sub, err
		}
		if err := c.Request.ParseForm(); err != nil {
			return sub, err
		}
	}

	sub.Fields = collectFormFields(c)

	upload, err := h.collectUpload(c)
	if err != nil {
		return sub, err
	}
	sub.Upload = upload
	return sub, nil
}

func collectFormFields(c *gin.Context) domain.Fields {
	value := func(key string) string {
		if c.Request.MultipartForm != nil {
			if values := c.Request.MultipartForm.Value[key]; len(values) > 0 {
				return values[0]
			}
		}
		return c.Request.PostForm.Get(key)
	}

	return domain.Fields{
		Name:        value(domain.FieldName),
		Email:       value(domain.FieldEmail),
		Phone:       value(domain.FieldPhone),
		Company:     value(domain.FieldCompany),
		Service:     value(domain.FieldService),
		ProjectType: value(domain.FieldProjectType),
		Message:     value(domain.FieldMessage),
	}
}

// collectUpload reads the single "file" part. A part with no file name and no
// content is what browsers send when nothing was chosen.
func (h *Handler) collectUpload(c *gin.Context) (*repository.Upload, error) {
	if c.Request.MultipartForm == nil {
		return nil, nil
	}
	headers := c.Request.MultipartForm.File[domain.FieldFile]
	if len(headers) == 0 {
		return nil, nil
	}
	fh := headers[0]
	if fh.Filename == "" && fh.Size == 0 {
		return nil, nil
	}
	if fh.Size > h.maxFileSize {
		return nil, errAttachmentTooLarge
	}

	data, err := readPart(fh, h.maxFileSize)
	if err != nil {
		return nil, err
	}
	return &repository.Upload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func readPart(fh *multipart.FileHeader, limit int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errAttachmentTooLarge
	}
	return data, nil
}

// Login issues an admin access token.
// POST /api/v1/admin/login
func (h *Handler) Login(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	token, err := h.admin.Login(c.Request.Context(), req.Username, req.Password)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, token)
}

// List returns the most recent inquiries.
// GET /api/v1/admin/inquiries
func (h *Handler) List(c *gin.Context) {
	var req transport.ListInquiriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	items, err := h.admin.ListRecent(c.Request.Context(), req.Limit)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ListInquiriesResponse{Items: items, Count: len(items)})
}
