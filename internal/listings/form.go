package listings

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Link is one external profile or portfolio URL.
type Link struct {
	URL string `json:"url"`
}

// MediaRef points at a staged upload (StagingID) or an asset already stored
// with a previous submission (AssetID).
type MediaRef struct {
	StagingID   string `json:"stagingId,omitempty"`
	AssetID     string `json:"assetId,omitempty"`
	FileName    string `json:"fileName,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	Size        int64  `json:"size,omitempty"`
}

// Uploaded reports whether the media already lives in the asset store.
func (m MediaRef) Uploaded() bool { return m.AssetID != "" }

// FormData is everything the service wizard collects. Numeric inputs are
// raw strings so non-numeric input can be rejected with a specific message.
// Only the active detail variant exists.
type FormData struct {
	NameAr              string      `json:"name_ar"`
	NameEn              string      `json:"name_en"`
	AboutAr             string      `json:"about_ar"`
	AboutEn             string      `json:"about_en"`
	PastExperienceAr    string      `json:"past_experience_ar"`
	PastExperienceEn    string      `json:"past_experience_en"`
	YearsOfExperience   string      `json:"years_of_experience"`
	ServicePhone        string      `json:"servicePhone"`
	ServiceEmail        string      `json:"serviceEmail"`
	Links               []Link      `json:"links"`
	Country             string      `json:"country"`
	Government          string      `json:"government"`
	City                string      `json:"city"`
	AddressLink         string      `json:"addressLink"`
	Price               string      `json:"price"`
	PriceUnit           string      `json:"priceUnit"`
	Image               *MediaRef   `json:"image,omitempty"`
	Images              []MediaRef  `json:"images"`
	ServiceType         ServiceType `json:"serviceType"`
	Details             Details     `json:"-"`
	TermsAccepted       bool        `json:"termsAccepted"`
	ConfirmDataAccuracy bool        `json:"confirmDataAccuracy"`
}

// NewFormData returns an empty form with the three permanent link rows.
func NewFormData() FormData {
	return FormData{
		Links:  make([]Link, MinLinks),
		Images: []MediaRef{},
	}
}

type formAlias FormData

type formJSON struct {
	formAlias
	Details json.RawMessage `json:"details,omitempty"`
}

// MarshalJSON encodes the form with the active variant under "details".
func (f FormData) MarshalJSON() ([]byte, error) {
	out := formJSON{formAlias: formAlias(f)}
	if f.Details != nil {
		raw, err := json.Marshal(f.Details)
		if err != nil {
			return nil, fmt.Errorf("encode details: %w", err)
		}
		out.Details = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores the variant matching serviceType.
func (f *FormData) UnmarshalJSON(data []byte) error {
	var in formJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*f = FormData(in.formAlias)
	f.Details = nil
	if d, ok := NewDetails(f.ServiceType); ok {
		if len(in.Details) > 0 && string(in.Details) != "null" {
			if err := json.Unmarshal(in.Details, d); err != nil {
				return fmt.Errorf("decode %s details: %w", f.ServiceType, err)
			}
		}
		f.Details = d
	}
	f.normalizeLinks()
	if f.Images == nil {
		f.Images = []MediaRef{}
	}
	return nil
}

// HasContent reports whether any field was filled; empty forms are not autosaved.
func (f FormData) HasContent() bool {
	for _, v := range f.textFields() {
		if strings.TrimSpace(*v) != "" {
			return true
		}
	}
	for _, l := range f.Links {
		if strings.TrimSpace(l.URL) != "" {
			return true
		}
	}
	return f.ServiceType != "" || f.Image != nil || len(f.Images) > 0 ||
		f.Country != "" || f.TermsAccepted || f.ConfirmDataAccuracy
}

// textFields maps the free-text top-level keys to their storage.
func (f *FormData) textFields() map[string]*string {
	return map[string]*string{
		"name_ar":             &f.NameAr,
		"name_en":             &f.NameEn,
		"about_ar":            &f.AboutAr,
		"about_en":            &f.AboutEn,
		"past_experience_ar":  &f.PastExperienceAr,
		"past_experience_en":  &f.PastExperienceEn,
		"years_of_experience": &f.YearsOfExperience,
		"servicePhone":        &f.ServicePhone,
		"serviceEmail":        &f.ServiceEmail,
		"addressLink":         &f.AddressLink,
		"price":               &f.Price,
		"priceUnit":           &f.PriceUnit,
	}
}

func (f *FormData) normalizeLinks() {
	if len(f.Links) > MaxLinks {
		f.Links = f.Links[:MaxLinks]
	}
	for len(f.Links) < MinLinks {
		f.Links = append(f.Links, Link{})
	}
}

// clone copies the form so it can be read outside the controller lock.
func (f FormData) clone() FormData {
	out := f
	out.Links = append([]Link(nil), f.Links...)
	out.Images = append([]MediaRef{}, f.Images...)
	if f.Image != nil {
		img := *f.Image
		out.Image = &img
	}
	if f.Details != nil {
		d, _ := NewDetails(f.ServiceType)
		raw, err := json.Marshal(f.Details)
		if d != nil && err == nil && json.Unmarshal(raw, d) == nil {
			out.Details = d
		}
	}
	return out
}
