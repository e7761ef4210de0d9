// Package listings implements the seven-step service listing wizard: the
// form model, the per-type detail variants, step validation, submission to
// the content store and the HTTP surface.
package listings

import "github.com/samber/lo"

// ServiceType is the discriminator selecting a detail variant.
type ServiceType string

const (
	TypeHorseStable         ServiceType = "horse_stable"
	TypeVeterinary          ServiceType = "veterinary"
	TypeCompetitions        ServiceType = "competitions"
	TypeHousing             ServiceType = "housing"
	TypeHorseTrainer        ServiceType = "horse_trainer"
	TypeHoofTrimmer         ServiceType = "hoof_trimmer"
	TypeHorseGrooming       ServiceType = "horse_grooming"
	TypeEventJudging        ServiceType = "event_judging"
	TypeMarketingPromotion  ServiceType = "marketing_promotion"
	TypeEventCommentary     ServiceType = "event_commentary"
	TypeConsultingServices  ServiceType = "consulting_services"
	TypePhotographyServices ServiceType = "photography_services"
	TypeHorseTransport      ServiceType = "horse_transport"
	TypeContractors         ServiceType = "contractors"
	TypeSuppliers           ServiceType = "suppliers"
	TypeHorseCatering       ServiceType = "horse_catering"
	TypeTripCoordinator     ServiceType = "trip_coordinator"

	// Catalog-only types exist in the marketplace catalog but have no
	// wizard-specific fields.
	TypeHorseInsurance      ServiceType = "horse_insurance"
	TypeMaintenanceServices ServiceType = "maintenance_services"
)

// WizardTypes are the types with their own detail fields.
var WizardTypes = []ServiceType{
	TypeHorseStable, TypeVeterinary, TypeCompetitions, TypeHousing,
	TypeHorseTrainer, TypeHoofTrimmer, TypeHorseGrooming, TypeEventJudging,
	TypeMarketingPromotion, TypeEventCommentary, TypeConsultingServices,
	TypePhotographyServices, TypeHorseTransport, TypeContractors,
	TypeSuppliers, TypeHorseCatering, TypeTripCoordinator,
}

// CatalogOnlyTypes have no detail fields.
var CatalogOnlyTypes = []ServiceType{TypeHorseInsurance, TypeMaintenanceServices}

// AllServiceTypes is the closed set of 19 tags.
var AllServiceTypes = append(append([]ServiceType{}, WizardTypes...), CatalogOnlyTypes...)

// Valid reports whether t is one of the known tags.
func (t ServiceType) Valid() bool { return lo.Contains(AllServiceTypes, t) }

// PriceUnit values.
const (
	PricePerHour    = "per_hour"
	PricePerDay     = "per_day"
	PricePerSession = "per_session"
	PricePerService = "per_service"
	PricePerMonth   = "per_month"
	PricePerKm      = "per_km"
)

// PriceUnits is the enum accepted by the pricing step.
var PriceUnits = []string{PricePerHour, PricePerDay, PricePerSession, PricePerService, PricePerMonth, PricePerKm}

// Link bounds.
const (
	MinLinks = 3
	MaxLinks = 6

	MaxGalleryImages = 10
	MinAboutLength   = 50
)
