package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"horse_portal_backend/internal/contentstore"
	"horse_portal_backend/internal/dashboard/transport"
	"horse_portal_backend/internal/i18n"
	"horse_portal_backend/platform/apperr"
	"horse_portal_backend/platform/sanitize"
)

// Products lists the supplier's products.
func (s *Service) Products(ctx context.Context, tr i18n.Translator, userID uuid.UUID) ([]transport.ProductResponse, error) {
	if _, err := s.requireUserType(ctx, tr, userID, contentstore.UserTypeSupplier, i18n.MsgSupplierOnly); err != nil {
		return nil, err
	}
	docs, err := s.repo.Owned(ctx, contentstore.TypeProduct, userID)
	if err != nil {
		return nil, err
	}
	return lo.Map(docs, func(d contentstore.Document, _ int) transport.ProductResponse { return mapProduct(d) }), nil
}

// CreateProduct adds a product.
func (s *Service) CreateProduct(ctx context.Context, tr i18n.Translator, userID uuid.UUID, req transport.ProductRequest) (transport.ProductResponse, error) {
	if _, err := s.requireUserType(ctx, tr, userID, contentstore.UserTypeSupplier, i18n.MsgSupplierOnly); err != nil {
		return transport.ProductResponse{}, err
	}
	body, err := productBody(tr, req)
	if err != nil {
		return transport.ProductResponse{}, err
	}
	doc, err := s.repo.CreateOwned(ctx, contentstore.TypeProduct, userID, body)
	if err != nil {
		return transport.ProductResponse{}, err
	}
	return mapProduct(doc), nil
}

// UpdateProduct replaces a product's fields. The image is kept.
func (s *Service) UpdateProduct(ctx context.Context, tr i18n.Translator, userID, id uuid.UUID, req transport.ProductRequest) (transport.ProductResponse, error) {
	if _, err := s.requireUserType(ctx, tr, userID, contentstore.UserTypeSupplier, i18n.MsgSupplierOnly); err != nil {
		return transport.ProductResponse{}, err
	}
	if _, err := s.repo.GetOwned(ctx, contentstore.TypeProduct, id, userID); err != nil {
		return transport.ProductResponse{}, err
	}
	body, err := productBody(tr, req)
	if err != nil {
		return transport.ProductResponse{}, err
	}
	var unset []string
	if req.Stock == nil {
		unset = append(unset, "stock")
	}
	doc, err := s.repo.Update(ctx, id, body, unset...)
	if err != nil {
		return transport.ProductResponse{}, err
	}
	return mapProduct(doc), nil
}

// DeleteProduct removes a product and releases its image.
func (s *Service) DeleteProduct(ctx context.Context, tr i18n.Translator, userID, id uuid.UUID) error {
	if _, err := s.requireUserType(ctx, tr, userID, contentstore.UserTypeSupplier, i18n.MsgSupplierOnly); err != nil {
		return err
	}
	doc, err := s.repo.GetOwned(ctx, contentstore.TypeProduct, id, userID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.orphan(ctx, "product deleted", contentstore.ImageAssetID(doc.Body["image"]))
	return nil
}

// SetProductImage uploads an image and attaches it, releasing the previous one.
func (s *Service) SetProductImage(ctx context.Context, tr i18n.Translator, userID, id uuid.UUID, file contentstore.AssetUpload) (transport.ProductResponse, error) {
	if _, err := s.requireUserType(ctx, tr, userID, contentstore.UserTypeSupplier, i18n.MsgSupplierOnly); err != nil {
		return transport.ProductResponse{}, err
	}
	doc, err := s.repo.GetOwned(ctx, contentstore.TypeProduct, id, userID)
	if err != nil {
		return transport.ProductResponse{}, err
	}
	if err := s.assets.Validate(file.ContentType, int64(len(file.Data))); err != nil {
		return transport.ProductResponse{}, err
	}

	file.Folder = "products/" + userID.String()
	asset, err := s.assets.Upload(ctx, file)
	if err != nil {
		s.log.BackendError("dashboard.product_image_upload", err)
		return transport.ProductResponse{}, apperr.Unavailable(tr.T(i18n.MsgUploadFailed), err)
	}
	updated, err := s.repo.Update(ctx, id, map[string]any{"image": contentstore.Image(asset.ID)})
	if err != nil {
		s.orphan(ctx, "product image patch failed", asset.ID)
		return transport.ProductResponse{}, err
	}
	s.orphan(ctx, "product image replaced", contentstore.ImageAssetID(doc.Body["image"]))
	return mapProduct(updated), nil
}

func productBody(tr i18n.Translator, req transport.ProductRequest) (map[string]any, error) {
	price, err := parseAmount(tr, "price", req.Price, i18n.MsgInvalidPrice)
	if err != nil {
		return nil, err
	}
	body := map[string]any{
		"name_ar":        sanitize.Text(req.NameAr),
		"name_en":        sanitize.Text(req.NameEn),
		"description_ar": sanitize.Text(req.DescriptionAr),
		"description_en": sanitize.Text(req.DescriptionEn),
		"price":          price.InexactFloat64(),
		"currency":       currencyOf(req.Currency),
		"category":       strings.TrimSpace(req.Category),
	}
	if req.Stock != nil {
		body["stock"] = *req.Stock
	}
	return body, nil
}

func mapProduct(d contentstore.Document) transport.ProductResponse {
	return transport.ProductResponse{
		ID:            d.ID,
		NameAr:        d.String("name_ar"),
		NameEn:        d.String("name_en"),
		DescriptionAr: d.String("description_ar"),
		DescriptionEn: d.String("description_en"),
		Price:         amount(d.Body["price"]).StringFixed(2),
		Currency:      currencyOf(d.String("currency")),
		Stock:         intField(d, "stock"),
		Category:      d.String("category"),
		ImageAssetID:  contentstore.ImageAssetID(d.Body["image"]),
	}
}
