package form

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"buildcare_site/internal/inquiry/domain"
)

// maxReplyBytes bounds how much of a response body is read.
const maxReplyBytes = 64 << 10

// Attachment is a file picked by the visitor.
type Attachment struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Request is what a Transport sends.
type Request struct {
	Variant    domain.Variant
	Fields     domain.Fields
	Attachment *Attachment
	Language   string
}

// Reply is an accepted submission.
type Reply struct {
	Message string
}

// ServerError is a rejection the endpoint explained.
type ServerError struct {
	StatusCode int
	Message    string
	Fields     domain.FieldErrors
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("endpoint rejected submission (%d): %s", e.StatusCode, e.Message)
}

// Transport delivers a submission to the ingestion endpoint.
type Transport interface {
	Send(ctx context.Context, req Request) (Reply, error)
}

// HTTPTransport posts submissions to one endpoint URL. Submissions with an
// attachment, and every service form submission, go as multipart; project
// form submissions without a file go as JSON.
type HTTPTransport struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPTransport creates a transport for endpoint, for example
// https://example.com/api/contact.
func NewHTTPTransport(endpoint string, httpClient *http.Client) *HTTPTransport {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPTransport{endpoint: endpoint, httpClient: httpClient}
}

// reply is the union of the success and error bodies.
type reply struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details"`
}

// Send posts req and interprets the response.
func (t *HTTPTransport) Send(ctx context.Context, req Request) (Reply, error) {
	body, contentType, err := encode(req)
	if err != nil {
		return Reply{}, fmt.Errorf("encode submission: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, body)
	if err != nil {
		return Reply{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	if req.Language != "" {
		httpReq.Header.Set("Accept-Language", req.Language)
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return Reply{}, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	var decoded reply
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxReplyBytes)).Decode(&decoded)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && decodeErr == nil && decoded.Success {
		return Reply{Message: decoded.Message}, nil
	}

	if decodeErr != nil {
		return Reply{}, fmt.Errorf("unexpected response: status %d", resp.StatusCode)
	}

	message := decoded.Error
	if message == "" && !decoded.Success {
		message = decoded.Message
	}
	if message == "" {
		return Reply{}, fmt.Errorf("unexpected response: status %d", resp.StatusCode)
	}

	serverErr := &ServerError{StatusCode: resp.StatusCode, Message: message}
	if len(decoded.Details) > 0 {
		var fields domain.FieldErrors
		if json.Unmarshal(decoded.Details, &fields) == nil {
			serverErr.Fields = fields
		}
	}
	return Reply{}, serverErr
}

func encode(req Request) (io.Reader, string, error) {
	if req.Attachment == nil && req.Variant == domain.VariantProject {
		data, err := json.Marshal(req.Fields)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, field := range []string{
		domain.FieldName, domain.FieldEmail, domain.FieldPhone, domain.FieldCompany,
		domain.FieldService, domain.FieldProjectType, domain.FieldMessage,
	} {
		value := req.Fields.Get(field)
		if value == "" {
			continue
		}
		if err := w.WriteField(field, value); err != nil {
			return nil, "", err
		}
	}

	if a := req.Attachment; a != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, domain.FieldFile, escapeQuotes(a.FileName)))
		contentType := a.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(a.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
