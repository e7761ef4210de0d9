package listings

import (
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"horse_portal_backend/internal/contentstore"
	"horse_portal_backend/platform/phone"
	"horse_portal_backend/platform/sanitize"
)

// AssetResolver maps a media reference to its stored asset id.
type AssetResolver func(MediaRef) string

// BuildPayload turns a validated form into the service document body. Only
// the active variant is included. Rating and approval defaults are added by
// NewServiceBody.
func BuildPayload(f FormData, region string, asset AssetResolver) map[string]any {
	body := map[string]any{
		"name_ar":             sanitize.Text(f.NameAr),
		"name_en":             sanitize.Text(f.NameEn),
		"about_ar":            sanitize.Text(f.AboutAr),
		"about_en":            sanitize.Text(f.AboutEn),
		"past_experience_ar":  sanitize.Text(f.PastExperienceAr),
		"past_experience_en":  sanitize.Text(f.PastExperienceEn),
		"years_of_experience": toNumber(f.YearsOfExperience),
		"servicePhone":        phone.NormalizeE164(f.ServicePhone, region),
		"serviceEmail":        strings.TrimSpace(f.ServiceEmail),
		"links":               payloadLinks(f.Links),
		"country":             contentstore.Ref(f.Country),
		"government":          contentstore.Ref(f.Government),
		"city":                contentstore.Ref(f.City),
		"addressLink":         strings.TrimSpace(f.AddressLink),
		"serviceType":         string(f.ServiceType),
	}
	if f.ServiceType != TypeSuppliers {
		body["price"] = toNumber(f.Price)
		body["priceUnit"] = f.PriceUnit
	}
	if f.Image != nil {
		body["image"] = contentstore.Image(asset(*f.Image))
	}
	body["images"] = lo.Map(f.Images, func(m MediaRef, _ int) map[string]any {
		return contentstore.Image(asset(m))
	})
	if f.Details != nil && f.Details.PayloadKey() != "" {
		body[f.Details.PayloadKey()] = detailsPayload(f.Details)
	}
	return body
}

// NewServiceBody adds the fields every freshly created service starts with.
func NewServiceBody(payload map[string]any, userID uuid.UUID) map[string]any {
	payload["statusAdminApproved"] = false
	payload["averageRating"] = 0
	payload["ratingCount"] = 0
	payload["userRef"] = contentstore.Ref(userID.String())
	return payload
}

// InactivePayloadKeys lists the detail keys an edited document must drop
// because another variant is active.
func InactivePayloadKeys(active ServiceType) []string {
	keys := make([]string, 0, len(WizardTypes))
	for _, t := range WizardTypes {
		if t == active {
			continue
		}
		d, _ := NewDetails(t)
		keys = append(keys, d.PayloadKey())
	}
	return keys
}

func payloadLinks(links []Link) []map[string]any {
	out := make([]map[string]any, 0, len(links))
	for _, l := range links {
		if u := strings.TrimSpace(l.URL); u != "" {
			out = append(out, map[string]any{"url": u})
		}
	}
	return out
}

func detailsPayload(d Details) map[string]any {
	out := map[string]any{}
	for _, b := range d.bindings() {
		switch b.kind {
		case KindText:
			if b.url {
				out[b.name] = strings.TrimSpace(*b.text)
			} else {
				out[b.name] = sanitize.Text(*b.text)
			}
		case KindNumber:
			if n := toNumber(*b.text); n != nil {
				out[b.name] = n
			}
		case KindDate, KindSelect:
			if v := strings.TrimSpace(*b.text); v != "" {
				out[b.name] = v
			}
		case KindBool:
			out[b.name] = *b.flag
		case KindToggle:
			out[b.name] = append([]string{}, *b.set...)
		case KindList:
			out[b.name] = lo.Map(*b.items, func(item ListItem, _ int) map[string]any {
				row := map[string]any{
					"name_ar": sanitize.Text(item.NameAr),
					"name_en": sanitize.Text(item.NameEn),
				}
				if b.itemPrice {
					if n := toNumber(item.Price); n != nil {
						row["price"] = n
					}
				}
				return row
			})
		}
	}
	return out
}

// toNumber converts a validated raw string; empty input yields nil.
func toNumber(raw string) any {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return d.InexactFloat64()
}

// FormFromDocument rebuilds a form from a stored service so it can be edited.
// Acceptance flags start unchecked and images point at the stored assets.
func FormFromDocument(doc contentstore.Document) FormData {
	f := NewFormData()
	f.NameAr = doc.String("name_ar")
	f.NameEn = doc.String("name_en")
	f.AboutAr = doc.String("about_ar")
	f.AboutEn = doc.String("about_en")
	f.PastExperienceAr = doc.String("past_experience_ar")
	f.PastExperienceEn = doc.String("past_experience_en")
	f.YearsOfExperience = fromNumber(doc.Body["years_of_experience"])
	f.ServicePhone = doc.String("servicePhone")
	f.ServiceEmail = doc.String("serviceEmail")
	f.Country = doc.RefID("country")
	f.Government = doc.RefID("government")
	f.City = doc.RefID("city")
	f.AddressLink = doc.String("addressLink")
	f.Price = fromNumber(doc.Body["price"])
	f.PriceUnit = doc.String("priceUnit")

	if raw, ok := doc.Body["links"].([]any); ok {
		f.Links = lo.FilterMap(raw, func(v any, _ int) (Link, bool) {
			m, ok := v.(map[string]any)
			if !ok {
				return Link{}, false
			}
			u, _ := m["url"].(string)
			return Link{URL: u}, u != ""
		})
		f.normalizeLinks()
	}
	if id := contentstore.ImageAssetID(doc.Body["image"]); id != "" {
		f.Image = &MediaRef{AssetID: id}
	}
	if raw, ok := doc.Body["images"].([]any); ok {
		f.Images = lo.FilterMap(raw, func(v any, _ int) (MediaRef, bool) {
			id := contentstore.ImageAssetID(v)
			return MediaRef{AssetID: id}, id != ""
		})
	}

	f.ServiceType = ServiceType(doc.String("serviceType"))
	if d, ok := NewDetails(f.ServiceType); ok {
		if stored, ok := doc.Body[d.PayloadKey()].(map[string]any); ok {
			restoreDetails(d, stored)
		}
		f.Details = d
	}
	return f
}

func restoreDetails(d Details, stored map[string]any) {
	for _, b := range d.bindings() {
		v, ok := stored[b.name]
		if !ok {
			continue
		}
		switch b.kind {
		case KindNumber:
			*b.text = fromNumber(v)
		case KindText, KindDate, KindSelect:
			*b.text, _ = v.(string)
		case KindBool:
			*b.flag, _ = v.(bool)
		case KindToggle:
			raw, _ := v.([]any)
			*b.set = lo.FilterMap(raw, func(x any, _ int) (string, bool) {
				s, ok := x.(string)
				return s, ok
			})
		case KindList:
			raw, _ := v.([]any)
			*b.items = lo.FilterMap(raw, func(x any, _ int) (ListItem, bool) {
				m, ok := x.(map[string]any)
				if !ok {
					return ListItem{}, false
				}
				item := ListItem{Price: fromNumber(m["price"])}
				item.NameAr, _ = m["name_ar"].(string)
				item.NameEn, _ = m["name_en"].(string)
				return item, true
			})
		}
	}
}

func fromNumber(v any) string {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n).String()
	case string:
		return n
	}
	return ""
}
