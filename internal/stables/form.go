// Package stables implements the four-step stable listing wizard for stable
// owners: eligibility, validation, submission and the HTTP surface.
package stables

import (
	"strings"

	"horse_portal_backend/internal/listings"
)

// Kinds of stable.
const (
	KindHorseStable    = "horse_stable"
	KindRidingSchool   = "riding_school"
	KindBreedingFarm   = "breeding_farm"
	KindTrainingCenter = "training_center"
)

// KindsOfStable is the enum accepted by step 1.
var KindsOfStable = []string{KindHorseStable, KindRidingSchool, KindBreedingFarm, KindTrainingCenter}

// Amenities offered by a stable.
var Amenities = []string{"arena", "paddock", "horse_walker", "vet_clinic", "tack_room", "wash_bay", "cameras", "parking"}

// BoardingDetails is the boarding offer of a stable.
type BoardingDetails struct {
	BoardingCapacity   string              `json:"boarding_capacity"`
	BoardingPrice      string              `json:"boarding_price"`
	BoardingPriceUnit  string              `json:"boarding_price_unit"`
	Amenities          []string            `json:"amenities"`
	AdditionalServices []listings.ListItem `json:"additionalServices"`
}

// FormData is everything the stable wizard collects.
type FormData struct {
	NameAr              string              `json:"name_ar"`
	NameEn              string              `json:"name_en"`
	KindOfStable        string              `json:"kindOfStable"`
	DescriptionAr       string              `json:"description_ar"`
	DescriptionEn       string              `json:"description_en"`
	YearsOfExperience   string              `json:"years_of_experience"`
	Country             string              `json:"country"`
	Government          string              `json:"government"`
	City                string              `json:"city"`
	AddressDetails      string              `json:"addressDetails"`
	AddressLink         string              `json:"addressLink"`
	ServicePhone        string              `json:"servicePhone"`
	ServiceEmail        string              `json:"serviceEmail"`
	BoardingDetails     BoardingDetails     `json:"boardingDetails"`
	FileLink            string              `json:"fileLink"`
	Images              []listings.MediaRef `json:"images"`
	TermsAccepted       bool                `json:"termsAccepted"`
	ConfirmDataAccuracy bool                `json:"confirmDataAccuracy"`
}

// NewFormData returns an empty stable form.
func NewFormData() FormData {
	return FormData{
		BoardingDetails: BoardingDetails{Amenities: []string{}, AdditionalServices: []listings.ListItem{}},
		Images:          []listings.MediaRef{},
	}
}

// HasContent reports whether any field was filled.
func (f FormData) HasContent() bool {
	for _, v := range f.textFields() {
		if strings.TrimSpace(*v) != "" {
			return true
		}
	}
	return f.Country != "" || len(f.Images) > 0 || len(f.BoardingDetails.Amenities) > 0 ||
		len(f.BoardingDetails.AdditionalServices) > 0 || f.TermsAccepted || f.ConfirmDataAccuracy
}

func (f *FormData) textFields() map[string]*string {
	return map[string]*string{
		"name_ar":             &f.NameAr,
		"name_en":             &f.NameEn,
		"kindOfStable":        &f.KindOfStable,
		"description_ar":      &f.DescriptionAr,
		"description_en":      &f.DescriptionEn,
		"years_of_experience": &f.YearsOfExperience,
		"addressDetails":      &f.AddressDetails,
		"addressLink":         &f.AddressLink,
		"servicePhone":        &f.ServicePhone,
		"serviceEmail":        &f.ServiceEmail,
		"fileLink":            &f.FileLink,
		"boarding_capacity":   &f.BoardingDetails.BoardingCapacity,
		"boarding_price":      &f.BoardingDetails.BoardingPrice,
		"boarding_price_unit": &f.BoardingDetails.BoardingPriceUnit,
	}
}

func (f FormData) clone() FormData {
	out := f
	out.BoardingDetails.Amenities = append([]string{}, f.BoardingDetails.Amenities...)
	out.BoardingDetails.AdditionalServices = append([]listings.ListItem{}, f.BoardingDetails.AdditionalServices...)
	out.Images = append([]listings.MediaRef{}, f.Images...)
	return out
}
