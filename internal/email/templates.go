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
}

type listingSubmittedEmailData struct {
	baseEmailData
	Kind       string
	Type       string
	NameEn     string
	NameAr     string
	DocumentID string
	UserID     string
}

func renderListingSubmitted(n ListingNotice) (string, string, error) {
	var subject, heading string
	switch {
	case n.Kind == ListingStable:
		subject, heading = fmt.Sprintf(subjectStableSubmittedFmt, n.NameEn), "New stable"
	case n.Edited:
		subject, heading = fmt.Sprintf(subjectServiceEditedFmt, n.NameEn), "Service listing updated"
	default:
		subject, heading = fmt.Sprintf(subjectServiceSubmittedFmt, n.NameEn), "New service listing"
	}

	content, err := renderEmailTemplate("listing_submitted.html", listingSubmittedEmailData{
		baseEmailData: baseEmailData{
			Title:      subject,
			Heading:    heading,
			Subheading: "Review it in the content studio and set statusAdminApproved.",
		},
		Kind:       n.Kind,
		Type:       n.Type,
		NameEn:     n.NameEn,
		NameAr:     n.NameAr,
		DocumentID: n.DocumentID,
		UserID:     n.UserID,
	})
	if err != nil {
		return "", "", err
	}
	return subject, content, nil
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
