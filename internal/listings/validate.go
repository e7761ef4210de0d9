package listings

import (
	"strings"

	"horse_portal_backend/internal/i18n"
	"horse_portal_backend/internal/wizard"
)

// Step names.
const (
	StepBasic       = "basic"
	StepDescription = "description"
	StepContact     = "contact"
	StepMedia       = "media"
	StepDetails     = "details"
	StepPricing     = "pricing"
	StepReview      = "review"
)

// NewSteps returns the seven service wizard steps. region is the default
// phone region for numbers entered without a country code.
func NewSteps(region string) []wizard.Step[FormData] {
	return []wizard.Step[FormData]{
		{Name: StepBasic, Validate: ValidateBasic},
		{Name: StepDescription, Validate: ValidateDescription},
		{Name: StepContact, Validate: func(f FormData, tr i18n.Translator) wizard.Errors {
			return ValidateContact(f, tr, region)
		}},
		{Name: StepMedia, Validate: ValidateMedia},
		{Name: StepDetails, Validate: ValidateDetails},
		{Name: StepPricing, Validate: ValidatePricing},
		{Name: StepReview, Validate: ValidateReview},
	}
}

// ValidateBasic checks both names and the years of experience.
func ValidateBasic(f FormData, tr i18n.Translator) wizard.Errors {
	r := wizard.NewRules(tr)
	r.Required("name_ar", f.NameAr)
	r.Required("name_en", f.NameEn)
	r.Number("years_of_experience", f.YearsOfExperience, true)
	return r.Errs
}

// ValidateDescription checks the bilingual about texts.
func ValidateDescription(f FormData, tr i18n.Translator) wizard.Errors {
	r := wizard.NewRules(tr)
	r.MinRunes("about_ar", f.AboutAr, MinAboutLength)
	r.MinRunes("about_en", f.AboutEn, MinAboutLength)
	return r.Errs
}

// ValidateContact checks phone, email, location and the optional map link.
func ValidateContact(f FormData, tr i18n.Translator, region string) wizard.Errors {
	r := wizard.NewRules(tr)
	r.Phone("servicePhone", f.ServicePhone, region)
	r.Email("serviceEmail", f.ServiceEmail)
	r.Location(f.Country, f.Government, f.City)
	r.URL("addressLink", f.AddressLink, false)
	return r.Errs
}

// ValidateMedia checks the primary image and the link rows.
func ValidateMedia(f FormData, tr i18n.Translator) wizard.Errors {
	r := wizard.NewRules(tr)
	if f.Image == nil {
		r.Fail("image", i18n.MsgImageRequired)
	}
	if len(f.Images) > MaxGalleryImages {
		r.Fail("images", i18n.MsgGalleryLimit, MaxGalleryImages)
	}
	if len(f.Links) < MinLinks || len(f.Links) > MaxLinks {
		r.Fail("links", i18n.MsgLinksBounds, MinLinks, MaxLinks)
	}
	for i, l := range f.Links {
		if strings.TrimSpace(l.URL) != "" {
			r.URL(itemKey("links", i), l.URL, false)
		}
	}
	return r.Errs
}

// ValidateDetails checks the service type and the active variant.
func ValidateDetails(f FormData, tr i18n.Translator) wizard.Errors {
	r := wizard.NewRules(tr)
	if strings.TrimSpace(string(f.ServiceType)) == "" {
		r.Fail("serviceType", i18n.MsgServiceTypeRequired)
		return r.Errs
	}
	if !f.ServiceType.Valid() || f.Details == nil || f.Details.ServiceType() != f.ServiceType {
		r.Fail("serviceType", i18n.MsgInvalidServiceType)
		return r.Errs
	}
	for _, b := range f.Details.bindings() {
		validateBinding(r, b)
	}
	if cc, ok := f.Details.(crossChecker); ok {
		cc.crossCheck(r)
	}
	return r.Errs
}

// ValidatePricing checks price and unit. Suppliers price per product instead.
func ValidatePricing(f FormData, tr i18n.Translator) wizard.Errors {
	r := wizard.NewRules(tr)
	if f.ServiceType == TypeSuppliers {
		return r.Errs
	}
	r.Price("price", f.Price, true)
	r.OneOf("priceUnit", f.PriceUnit, PriceUnits, i18n.MsgPriceUnitRequired)
	return r.Errs
}

// ValidateReview checks both acceptance flags.
func ValidateReview(f FormData, tr i18n.Translator) wizard.Errors {
	r := wizard.NewRules(tr)
	r.True("termsAccepted", f.TermsAccepted, i18n.MsgTermsRequired)
	r.True("confirmDataAccuracy", f.ConfirmDataAccuracy, i18n.MsgAccuracyRequired)
	return r.Errs
}
