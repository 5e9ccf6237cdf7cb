// Command inquiry-submit sends one inquiry to a running site backend, the
// same way the contact forms do.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"time"

	"buildcare_site/internal/adapters/storage"
	catalog "buildcare_site/internal/catalog/domain"
	content "buildcare_site/internal/content/domain"
	"buildcare_site/internal/inquiry/domain"
	"buildcare_site/internal/inquiry/form"
	"buildcare_site/platform/logger"
)

func main() {
	var (
		endpoint    = flag.String("endpoint", "http://localhost:8080/api/contact", "ingestion endpoint URL")
		lang        = flag.String("lang", string(content.Default), "language (en or ar)")
		name        = flag.String("name", "", "full name")
		email       = flag.String("email", "", "email address")
		phone       = flag.String("phone", "", "phone number")
		company     = flag.String("company", "", "company (project form only)")
		service     = flag.String("service", "", "catalog service id (service form)")
		projectType = flag.String("project-type", "", "project type (project form)")
		message     = flag.String("message", "", "message")
		file        = flag.String("file", "", "path of an attachment")
		timeout     = flag.Duration("timeout", 30*time.Second, "request timeout")
	)
	flag.Parse()

	log := logger.New(os.Getenv("APP_ENV"))

	services := catalog.MustLoadEmbedded()
	bundle, err := content.LoadEmbedded(services)
	if err != nil {
		log.Error("failed to load content", "error", err)
		os.Exit(1)
	}
	resolver := content.NewResolver(bundle, services)

	initial, ok := content.Parse(*lang)
	if !ok {
		initial = content.Default
	}
	selector := content.NewSelector(initial)

	variant := domain.VariantService
	if *service == "" && *projectType != "" {
		variant = domain.VariantProject
	}

	f := form.New(form.Options{
		Variant:   variant,
		Validator: domain.NewValidator(services),
		Transport: form.NewHTTPTransport(*endpoint, nil),
		Language:  string(selector.Current()),
		OnChange: func(o form.Outcome) {
			if o.Status == form.StatusSubmitting {
				fmt.Println(label(resolver, selector.Current(), "contact.submitting"))
			}
		},
	})
	defer f.Close()

	f.Set(domain.FieldName, *name)
	f.Set(domain.FieldEmail, *email)
	f.Set(domain.FieldPhone, *phone)
	f.Set(domain.FieldCompany, *company)
	f.Set(domain.FieldService, *service)
	f.Set(domain.FieldProjectType, *projectType)
	f.Set(domain.FieldMessage, *message)

	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			log.Error("failed to read attachment", "path", *file, "error", err)
			os.Exit(1)
		}
		base := filepath.Base(*file)
		f.Attach(&form.Attachment{FileName: base, ContentType: storage.ContentTypeFor(base), Data: data})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	outcome, err := f.Submit(ctx)
	if errors.Is(err, form.ErrInvalid) {
		errs := f.Errors()
		fields := make([]string, 0, len(errs))
		for field := range errs {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Fprintf(os.Stderr, "%s: %s\n", field, errs[field])
		}
		os.Exit(2)
	}
	if err != nil {
		log.Error("submit failed", "error", err)
		os.Exit(1)
	}

	switch outcome.Status {
	case form.StatusSuccess:
		msg := outcome.Message
		if msg == "" {
			msg = label(resolver, selector.Current(), "contact.success")
		}
		fmt.Println(msg)
	default:
		fmt.Fprintln(os.Stderr, outcome.Message)
		for field, msg := range f.Errors() {
			fmt.Fprintf(os.Stderr, "%s: %s\n", field, msg)
		}
		os.Exit(1)
	}
}

func label(r *content.Resolver, lang content.Language, key string) string {
	text, err := r.Text(lang, key)
	if err != nil {
		return key
	}
	return text
}
