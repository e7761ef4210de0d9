package listings

import (
	"fmt"

	"horse_portal_backend/platform/apperr"
)

// IntentType names one edit a client can make to the form.
type IntentType string

const (
	IntentSetField           IntentType = "setField"
	IntentSetFlag            IntentType = "setFlag"
	IntentSetServiceType     IntentType = "setServiceType"
	IntentAddLink            IntentType = "addLink"
	IntentUpdateLink         IntentType = "updateLink"
	IntentRemoveLink         IntentType = "removeLink"
	IntentRemoveImage        IntentType = "removeImage"
	IntentRemoveGalleryImage IntentType = "removeGalleryImage"
	IntentSetDetailField     IntentType = "setDetailField"
	IntentToggleDetailValue  IntentType = "toggleDetailValue"
	IntentAppendDetailItem   IntentType = "appendDetailItem"
	IntentUpdateDetailItem   IntentType = "updateDetailItem"
	IntentRemoveDetailItem   IntentType = "removeDetailItem"

	// Location intents go through the session's cascade.
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
	switch in.Type {
	case IntentSelectCountry, IntentSelectGovernorate, IntentSelectCity:
		return true
	}
	return false
}

// ApplyIntent edits f. It returns the staging ids of media the edit
// removed so the caller can release their bytes.
func ApplyIntent(f *FormData, in Intent) ([]string, error) {
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
	case IntentSetServiceType:
		f.SetServiceType(ServiceType(in.Value))
	case IntentAddLink:
		if len(f.Links) < MaxLinks {
			f.Links = append(f.Links, Link{})
		}
	case IntentUpdateLink:
		if in.Index < 0 || in.Index >= len(f.Links) {
			return nil, apperr.BadRequest(fmt.Sprintf("no link at index %d", in.Index))
		}
		f.Links[in.Index].URL = in.Value
	case IntentRemoveLink:
		if in.Index >= MinLinks && in.Index < len(f.Links) {
			f.Links = append(f.Links[:in.Index:in.Index], f.Links[in.Index+1:]...)
		}
	case IntentRemoveImage:
		if f.Image == nil {
			return nil, nil
		}
		released := stagingIDs(*f.Image)
		f.Image = nil
		return released, nil
	case IntentRemoveGalleryImage:
		if in.Index < 0 || in.Index >= len(f.Images) {
			return nil, apperr.BadRequest(fmt.Sprintf("no gallery image at index %d", in.Index))
		}
		released := stagingIDs(f.Images[in.Index])
		f.Images = append(f.Images[:in.Index:in.Index], f.Images[in.Index+1:]...)
		return released, nil
	case IntentSetDetailField:
		return nil, SetDetailField(f.Details, in.Field, in.Value)
	case IntentToggleDetailValue:
		return nil, ToggleDetailValue(f.Details, in.Field, in.Value, in.Checked)
	case IntentAppendDetailItem:
		return nil, AppendDetailItem(f.Details, in.Field)
	case IntentUpdateDetailItem:
		return nil, UpdateDetailItem(f.Details, in.Field, in.Index, in.ItemField, in.Value)
	case IntentRemoveDetailItem:
		return nil, RemoveDetailItem(f.Details, in.Field, in.Index)
	default:
		return nil, apperr.BadRequest(fmt.Sprintf("unsupported intent %q", in.Type))
	}
	return nil, nil
}

// SetServiceType switches the active variant. Choosing the current type
// keeps its values; any other type starts from an empty variant. Unknown
// tags leave no variant so the details step rejects them.
func (f *FormData) SetServiceType(t ServiceType) {
	if t == f.ServiceType && f.Details != nil {
		return
	}
	f.ServiceType = t
	f.Details = nil
	if d, ok := NewDetails(t); ok {
		f.Details = d
	}
}

func stagingIDs(m MediaRef) []string {
	if m.StagingID == "" {
		return nil
	}
	return []string{m.StagingID}
}
