package stables

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"horse_portal_backend/internal/i18n"
	"horse_portal_backend/internal/listings"
	"horse_portal_backend/internal/wizard"
)

// Step names.
const (
	StepBasic    = "basic"
	StepContact  = "contact"
	StepBoarding = "boarding"
	StepReview   = "review"
)

// NewSteps returns the four stable wizard steps.
func NewSteps(region string) []wizard.Step[FormData] {
	return []wizard.Step[FormData]{
		{Name: StepBasic, Validate: ValidateBasic},
		{Name: StepContact, Validate: func(f FormData, tr i18n.Translator) wizard.Errors {
			return ValidateContact(f, tr, region)
		}},
		{Name: StepBoarding, Validate: ValidateBoarding},
		{Name: StepReview, Validate: ValidateReview},
	}
}

// ValidateBasic checks names, kind and descriptions.
func ValidateBasic(f FormData, tr i18n.Translator) wizard.Errors {
	r := wizard.NewRules(tr)
	r.Required("name_ar", f.NameAr)
	r.Required("name_en", f.NameEn)
	r.OneOf("kindOfStable", f.KindOfStable, KindsOfStable, i18n.MsgKindOfStableRequired)
	r.Required("description_ar", f.DescriptionAr)
	r.Required("description_en", f.DescriptionEn)
	r.Number("years_of_experience", f.YearsOfExperience, false)
	return r.Errs
}

// ValidateContact checks location, phone and email.
func ValidateContact(f FormData, tr i18n.Translator, region string) wizard.Errors {
	r := wizard.NewRules(tr)
	r.Location(f.Country, f.Government, f.City)
	r.URL("addressLink", f.AddressLink, false)
	r.Phone("servicePhone", f.ServicePhone, region)
	r.Email("serviceEmail", f.ServiceEmail)
	return r.Errs
}

// ValidateBoarding checks the boarding offer, file link and gallery.
func ValidateBoarding(f FormData, tr i18n.Translator) wizard.Errors {
	r := wizard.NewRules(tr)
	b := f.BoardingDetails
	r.Integer("boarding_capacity", b.BoardingCapacity, 1, true)
	r.Price("boarding_price", b.BoardingPrice, true)
	r.OneOf("boarding_price_unit", b.BoardingPriceUnit, listings.PriceUnits, i18n.MsgPriceUnitRequired)
	for _, a := range b.Amenities {
		if !lo.Contains(Amenities, a) {
			r.Fail("amenities", i18n.MsgInvalidOption)
			break
		}
	}
	for i, item := range b.AdditionalServices {
		key := "additionalServices." + strconv.Itoa(i)
		if strings.TrimSpace(item.NameAr) == "" || strings.TrimSpace(item.NameEn) == "" {
			r.Fail(key, i18n.MsgItemNamesRequired)
		}
		r.Price(key+".price", item.Price, false)
	}
	r.URL("fileLink", f.FileLink, false)
	if len(f.Images) > listings.MaxGalleryImages {
		r.Fail("images", i18n.MsgGalleryLimit, listings.MaxGalleryImages)
	}
	return r.Errs
}

// ValidateReview checks both acceptance flags.
func ValidateReview(f FormData, tr i18n.Translator) wizard.Errors {
	r := wizard.NewRules(tr)
	r.True("termsAccepted", f.TermsAccepted, i18n.MsgTermsRequired)
	r.True("confirmDataAccuracy", f.ConfirmDataAccuracy, i18n.MsgAccuracyRequired)
	return r.Errs
}
