package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
	CTALabel   string
	CTAURL     string
}

type inquiryEmailData struct {
	baseEmailData
	InquiryNotification
	ReceivedAtFormatted string
	Topic               string
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

// renderInquiry builds the subject and HTML body of a staff notification.
func renderInquiry(n InquiryNotification) (subject, body string, err error) {
	topic := n.Service
	if topic == "" {
		topic = n.ProjectType
	}

	subject = fmt.Sprintf(subjectInquiryFmt, n.Name)
	if topic != "" {
		subject = fmt.Sprintf(subjectInquiryServiceFmt, topic, n.Name)
	}

	body, err = renderEmailTemplate("inquiry.html", inquiryEmailData{
		baseEmailData: baseEmailData{
			Title:      "New inquiry",
			Heading:    "New inquiry",
			Subheading: "Submitted through the website contact form.",
			CTALabel:   "Reply to " + n.Name,
			CTAURL:     "mailto:" + n.Email,
		},
		InquiryNotification: n,
		ReceivedAtFormatted: n.ReceivedAt.UTC().Format("2 Jan 2006 15:04 MST"),
		Topic:               topic,
	})
	return subject, body, err
}
