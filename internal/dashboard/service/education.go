package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"horse_portal_backend/internal/contentstore"
	"horse_portal_backend/internal/dashboard/transport"
	"horse_portal_backend/internal/i18n"
	"horse_portal_backend/platform/sanitize"
)

// Items lists the user's courses or books.
func (s *Service) Items(ctx context.Context, tr i18n.Translator, userID uuid.UUID, docType string) ([]transport.ItemResponse, error) {
	if _, err := s.requireUserType(ctx, tr, userID, contentstore.UserTypeEducational, i18n.MsgEducationalOnly); err != nil {
		return nil, err
	}
	docs, err := s.repo.Owned(ctx, docType, userID)
	if err != nil {
		return nil, err
	}
	return lo.Map(docs, func(d contentstore.Document, _ int) transport.ItemResponse { return mapItem(d) }), nil
}

// CreateCourse adds a course.
func (s *Service) CreateCourse(ctx context.Context, tr i18n.Translator, userID uuid.UUID, req transport.CourseRequest) (transport.ItemResponse, error) {
	return s.saveItem(ctx, tr, userID, contentstore.TypeCourse, nil, func() (map[string]any, error) { return courseBody(tr, req) })
}

// UpdateCourse replaces a course's fields.
func (s *Service) UpdateCourse(ctx context.Context, tr i18n.Translator, userID, id uuid.UUID, req transport.CourseRequest) (transport.ItemResponse, error) {
	return s.saveItem(ctx, tr, userID, contentstore.TypeCourse, &id, func() (map[string]any, error) { return courseBody(tr, req) })
}

// CreateBook adds a book.
func (s *Service) CreateBook(ctx context.Context, tr i18n.Translator, userID uuid.UUID, req transport.BookRequest) (transport.ItemResponse, error) {
	return s.saveItem(ctx, tr, userID, contentstore.TypeBook, nil, func() (map[string]any, error) { return bookBody(tr, req) })
}

// UpdateBook replaces a book's fields.
func (s *Service) UpdateBook(ctx context.Context, tr i18n.Translator, userID, id uuid.UUID, req transport.BookRequest) (transport.ItemResponse, error) {
	return s.saveItem(ctx, tr, userID, contentstore.TypeBook, &id, func() (map[string]any, error) { return bookBody(tr, req) })
}

// DeleteItem removes a course or book.
func (s *Service) DeleteItem(ctx context.Context, tr i18n.Translator, userID, id uuid.UUID, docType string) error {
	if _, err := s.requireUserType(ctx, tr, userID, contentstore.UserTypeEducational, i18n.MsgEducationalOnly); err != nil {
		return err
	}
	if _, err := s.repo.GetOwned(ctx, docType, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) saveItem(ctx context.Context, tr i18n.Translator, userID uuid.UUID, docType string, id *uuid.UUID, build func() (map[string]any, error)) (transport.ItemResponse, error) {
	if _, err := s.requireUserType(ctx, tr, userID, contentstore.UserTypeEducational, i18n.MsgEducationalOnly); err != nil {
		return transport.ItemResponse{}, err
	}
	body, err := build()
	if err != nil {
		return transport.ItemResponse{}, err
	}

	var doc contentstore.Document
	if id == nil {
		doc, err = s.repo.CreateOwned(ctx, docType, userID, body)
	} else {
		if _, err = s.repo.GetOwned(ctx, docType, *id, userID); err != nil {
			return transport.ItemResponse{}, err
		}
		doc, err = s.repo.Update(ctx, *id, body)
	}
	if err != nil {
		return transport.ItemResponse{}, err
	}
	return mapItem(doc), nil
}

func courseBody(tr i18n.Translator, req transport.CourseRequest) (map[string]any, error) {
	price, err := parseAmount(tr, "price", req.Price, i18n.MsgInvalidPrice)
	if err != nil {
		return nil, err
	}
	body := map[string]any{
		"title_ar":       sanitize.Text(req.TitleAr),
		"title_en":       sanitize.Text(req.TitleEn),
		"description_ar": sanitize.Text(req.DescriptionAr),
		"description_en": sanitize.Text(req.DescriptionEn),
		"price":          price.InexactFloat64(),
		"level":          req.Level,
		"startDate":      strings.TrimSpace(req.StartDate),
	}
	if req.DurationHours != "" {
		hours, err := parseAmount(tr, "duration_hours", req.DurationHours, i18n.MsgInvalidNumber)
		if err != nil {
			return nil, err
		}
		body["duration_hours"] = hours.InexactFloat64()
	}
	return body, nil
}

func bookBody(tr i18n.Translator, req transport.BookRequest) (map[string]any, error) {
	price, err := parseAmount(tr, "price", req.Price, i18n.MsgInvalidPrice)
	if err != nil {
		return nil, err
	}
	body := map[string]any{
		"title_ar":       sanitize.Text(req.TitleAr),
		"title_en":       sanitize.Text(req.TitleEn),
		"author":         sanitize.Text(req.Author),
		"description_ar": sanitize.Text(req.DescriptionAr),
		"description_en": sanitize.Text(req.DescriptionEn),
		"price":          price.InexactFloat64(),
		"language":       req.Language,
	}
	if req.Pages != nil {
		body["pages"] = *req.Pages
	}
	return body, nil
}

func mapItem(d contentstore.Document) transport.ItemResponse {
	fields := make(map[string]any, len(d.Body))
	for k, v := range d.Body {
		if k != "userRef" {
			fields[k] = v
		}
	}
	return transport.ItemResponse{ID: d.ID, Type: d.Type, Fields: fields, UpdatedAt: d.UpdatedAt}
}
