package stables

import (
	"fmt"

	"github.com/samber/lo"

	"horse_portal_backend/internal/listings"
	"horse_portal_backend/platform/apperr"
)

// IntentType names one stable form edit.
type IntentType string

const (
	IntentSetField          IntentType = "setField"
	IntentSetFlag           IntentType = "setFlag"
	IntentToggleAmenity     IntentType = "toggleAmenity"
	IntentAppendService     IntentType = "appendService"
	IntentUpdateService     IntentType = "updateService"
	IntentRemoveService     IntentType = "removeService"
	IntentRemoveImage       IntentType = "removeImage"
	IntentSelectCountry     IntentType = "selectCountry"
	IntentSelectGovernorate IntentType = "selectGovernorate"
	IntentSelectCity        IntentType = "selectCity"
)

// Intent is one form edit.
type Intent struct {
	Type      IntentType `json:"type" validate:"required"`
	Field     string     `json:"field"`
	Value     string     `json:"value"`
	Index     int        `json:"index"`
	ItemField string     `json:"itemField"`
	Checked   bool       `json:"checked"`
}

// IsLocation reports whether the intent selects a location level.
func (in Intent) IsLocation() bool {
	return in.Type == IntentSelectCountry || in.Type == IntentSelectGovernorate || in.Type == IntentSelectCity
}

// ApplyIntent edits f and returns the staging ids of removed images.
func ApplyIntent(f *FormData, in Intent) ([]string, error) {
	services := &f.BoardingDetails.AdditionalServices
	switch in.Type {
	case IntentSetField:
		target, ok := f.textFields()[in.Field]
		if !ok {
			return nil, apperr.BadRequest(fmt.Sprintf("unknown field %q", in.Field))
		}
		*target = in.Value
	case IntentSetFlag:
		switch in.Field {
		case "termsAccepted":
			f.TermsAccepted = in.Checked
		case "confirmDataAccuracy":
			f.ConfirmDataAccuracy = in.Checked
		default:
			return nil, apperr.BadRequest(fmt.Sprintf("unknown flag %q", in.Field))
		}
	case IntentToggleAmenity:
		present := lo.Contains(f.BoardingDetails.Amenities, in.Value)
		if in.Checked && !present {
			f.BoardingDetails.Amenities = append(f.BoardingDetails.Amenities, in.Value)
		} else if !in.Checked && present {
			f.BoardingDetails.Amenities = lo.Without(f.BoardingDetails.Amenities, in.Value)
		}
	case IntentAppendService:
		*services = append(*services, listings.ListItem{})
	case IntentUpdateService:
		if in.Index < 0 || in.Index >= len(*services) {
			return nil, apperr.BadRequest(fmt.Sprintf("no service at index %d", in.Index))
		}
		item := &(*services)[in.Index]
		switch in.ItemField {
		case "name_ar":
			item.NameAr = in.Value
		case "name_en":
			item.NameEn = in.Value
		case "price":
			item.Price = in.Value
		default:
			return nil, apperr.BadRequest(fmt.Sprintf("unknown row field %q", in.ItemField))
		}
	case IntentRemoveService:
		if in.Index < 0 || in.Index >= len(*services) {
			return nil, apperr.BadRequest(fmt.Sprintf("no service at index %d", in.Index))
		}
		*services = append((*services)[:in.Index:in.Index], (*services)[in.Index+1:]...)
	case IntentRemoveImage:
		if in.Index < 0 || in.Index >= len(f.Images) {
			return nil, apperr.BadRequest(fmt.Sprintf("no image at index %d", in.Index))
		}
		removed := f.Images[in.Index]
		f.Images = append(f.Images[:in.Index:in.Index], f.Images[in.Index+1:]...)
		if removed.StagingID != "" {
			return []string{removed.StagingID}, nil
		}
	default:
		return nil, apperr.BadRequest(fmt.Sprintf("unsupported intent %q", in.Type))
	}
	return nil, nil
}
