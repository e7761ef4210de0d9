package listings

import (
	"horse_portal_backend/internal/i18n"
	"horse_portal_backend/internal/wizard"
)

// HorseStableDetails describes a stable offered as a service.
type HorseStableDetails struct {
	DescriptionAr      string     `json:"description_ar"`
	DescriptionEn      string     `json:"description_en"`
	BoardingCapacity   string     `json:"boarding_capacity"`
	Facilities         []string   `json:"facilities"`
	AdditionalServices []ListItem `json:"additionalServices"`
}

func (*HorseStableDetails) ServiceType() ServiceType { return TypeHorseStable }
func (*HorseStableDetails) PayloadKey() string       { return "horseStableDetails" }
func (d *HorseStableDetails) bindings() []binding {
	return []binding{
		textField("description_ar", &d.DescriptionAr, true),
		textField("description_en", &d.DescriptionEn, true),
		integerField("boarding_capacity", &d.BoardingCapacity, false, 0),
		toggleField("facilities", &d.Facilities, false, "arena", "paddock", "horse_walker", "vet_clinic", "tack_room", "wash_bay"),
		listField("additionalServices", &d.AdditionalServices, false, true),
	}
}

// VeterinaryDetails describes a veterinary practice.
type VeterinaryDetails struct {
	Specialties        []string   `json:"specialties"`
	ClinicNameAr       string     `json:"clinic_name_ar"`
	ClinicNameEn       string     `json:"clinic_name_en"`
	LicenseNumber      string     `json:"license_number"`
	EmergencyAvailable bool       `json:"emergency_available"`
	Services           []ListItem `json:"services"`
}

func (*VeterinaryDetails) ServiceType() ServiceType { return TypeVeterinary }
func (*VeterinaryDetails) PayloadKey() string       { return "VeterinaryDetails" }
func (d *VeterinaryDetails) bindings() []binding {
	specialties := toggleField("specialties", &d.Specialties, true,
		"general_practice", "surgery", "dentistry", "lameness", "reproduction", "internal_medicine", "imaging", "emergency_care")
	specialties.emptyKey = i18n.MsgSpecialtyRequired
	return []binding{
		specialties,
		textField("clinic_name_ar", &d.ClinicNameAr, false),
		textField("clinic_name_en", &d.ClinicNameEn, false),
		textField("license_number", &d.LicenseNumber, false),
		boolField("emergency_available", &d.EmergencyAvailable),
		listField("services", &d.Services, false, true),
	}
}

// CompetitionsDetails describes an organised competition.
type CompetitionsDetails struct {
	CompetitionNameAr string     `json:"competition_name_ar"`
	CompetitionNameEn string     `json:"competition_name_en"`
	StartDate         string     `json:"start_date"`
	EndDate           string     `json:"end_date"`
	Level             string     `json:"level"`
	EventTypes        []string   `json:"event_types"`
	Prizes            []ListItem `json:"prizes"`
}

func (*CompetitionsDetails) ServiceType() ServiceType { return TypeCompetitions }
func (*CompetitionsDetails) PayloadKey() string       { return "competitions" }
func (d *CompetitionsDetails) bindings() []binding {
	return []binding{
		textField("competition_name_ar", &d.CompetitionNameAr, true),
		textField("competition_name_en", &d.CompetitionNameEn, true),
		dateField("start_date", &d.StartDate, true),
		dateField("end_date", &d.EndDate, true),
		selectField("level", &d.Level, true, "local", "national", "international"),
		toggleField("event_types", &d.EventTypes, true, "show_jumping", "dressage", "endurance", "racing", "arabian_beauty"),
		listField("prizes", &d.Prizes, false, true),
	}
}

func (d *CompetitionsDetails) crossCheck(r *wizard.Rules) {
	if _, bad := r.Errs["start_date"]; bad {
		return
	}
	if _, bad := r.Errs["end_date"]; bad {
		return
	}
	start, okStart := r.Date("start_date", d.StartDate, true)
	end, okEnd := r.Date("end_date", d.EndDate, true)
	if okStart && okEnd && end.Before(start) {
		r.Fail("end_date", i18n.MsgEndBeforeStart)
	}
}

// HousingDetails describes horse housing.
type HousingDetails struct {
	HousingType        string     `json:"housing_type"`
	Capacity           string     `json:"capacity"`
	Amenities          []string   `json:"amenities"`
	AdditionalServices []ListItem `json:"additionalServices"`
}

func (*HousingDetails) ServiceType() ServiceType { return TypeHousing }
func (*HousingDetails) PayloadKey() string       { return "housingDetails" }
func (d *HousingDetails) bindings() []binding {
	return []binding{
		selectField("housing_type", &d.HousingType, true, "stall", "paddock", "pasture"),
		integerField("capacity", &d.Capacity, true, 1),
		toggleField("amenities", &d.Amenities, false, "water", "electricity", "cameras", "shade", "feeding"),
		listField("additionalServices", &d.AdditionalServices, false, true),
	}
}

// HorseTrainerDetails describes a trainer.
type HorseTrainerDetails struct {
	TrainingTypes    []string   `json:"training_types"`
	CertificationsAr string     `json:"certifications_ar"`
	CertificationsEn string     `json:"certifications_en"`
	MaxHorses        string     `json:"max_horses"`
	Programs         []ListItem `json:"programs"`
}

func (*HorseTrainerDetails) ServiceType() ServiceType { return TypeHorseTrainer }
func (*HorseTrainerDetails) PayloadKey() string       { return "horseTrainerDetails" }
func (d *HorseTrainerDetails) bindings() []binding {
	return []binding{
		toggleField("training_types", &d.TrainingTypes, true, "show_jumping", "dressage", "endurance", "flat_racing", "groundwork", "beginner_riding"),
		textField("certifications_ar", &d.CertificationsAr, false),
		textField("certifications_en", &d.CertificationsEn, false),
		integerField("max_horses", &d.MaxHorses, false, 0),
		listField("programs", &d.Programs, false, true),
	}
}

// HoofTrimmerDetails describes a farrier.
type HoofTrimmerDetails struct {
	Methods       []string   `json:"methods"`
	MobileService bool       `json:"mobile_service"`
	Services      []ListItem `json:"services"`
}

func (*HoofTrimmerDetails) ServiceType() ServiceType { return TypeHoofTrimmer }
func (*HoofTrimmerDetails) PayloadKey() string       { return "hoofTrimmerDetails" }
func (d *HoofTrimmerDetails) bindings() []binding {
	return []binding{
		toggleField("methods", &d.Methods, true, "barefoot_trim", "hot_shoeing", "cold_shoeing", "corrective_shoeing"),
		boolField("mobile_service", &d.MobileService),
		listField("services", &d.Services, false, true),
	}
}

// HorseGroomingDetails describes grooming.
type HorseGroomingDetails struct {
	GroomingServices []string   `json:"grooming_services"`
	ProductsUsedAr   string     `json:"products_used_ar"`
	ProductsUsedEn   string     `json:"products_used_en"`
	Packages         []ListItem `json:"packages"`
}

func (*HorseGroomingDetails) ServiceType() ServiceType { return TypeHorseGrooming }
func (*HorseGroomingDetails) PayloadKey() string       { return "horseGroomingDetails" }
func (d *HorseGroomingDetails) bindings() []binding {
	return []binding{
		toggleField("grooming_services", &d.GroomingServices, true, "bathing", "clipping", "mane_braiding", "hoof_care", "show_preparation"),
		textField("products_used_ar", &d.ProductsUsedAr, false),
		textField("products_used_en", &d.ProductsUsedEn, false),
		listField("packages", &d.Packages, false, true),
	}
}

// EventJudgingDetails describes a judge.
type EventJudgingDetails struct {
	Disciplines        []string `json:"judging_disciplines"`
	CertificationBody  string   `json:"certification_body"`
	CertificationLevel string   `json:"certification_level"`
	EventsJudged       string   `json:"events_judged"`
}

func (*EventJudgingDetails) ServiceType() ServiceType { return TypeEventJudging }
func (*EventJudgingDetails) PayloadKey() string       { return "eventJudgingDetails" }
func (d *EventJudgingDetails) bindings() []binding {
	return []binding{
		toggleField("judging_disciplines", &d.Disciplines, true, "show_jumping", "dressage", "endurance", "arabian_beauty"),
		textField("certification_body", &d.CertificationBody, true),
		selectField("certification_level", &d.CertificationLevel, true, "national", "international", "fei"),
		integerField("events_judged", &d.EventsJudged, false, 0),
	}
}

// MarketingPromotionDetails describes a marketing agency.
type MarketingPromotionDetails struct {
	Channels     []string   `json:"marketing_channels"`
	PortfolioURL string     `json:"portfolio_url"`
	Packages     []ListItem `json:"packages"`
}

func (*MarketingPromotionDetails) ServiceType() ServiceType { return TypeMarketingPromotion }
func (*MarketingPromotionDetails) PayloadKey() string       { return "marketingPromotionDetails" }
func (d *MarketingPromotionDetails) bindings() []binding {
	return []binding{
		toggleField("marketing_channels", &d.Channels, true, "social_media", "photography", "video", "website", "print"),
		urlField("portfolio_url", &d.PortfolioURL),
		listField("packages", &d.Packages, false, true),
	}
}

// EventCommentaryDetails describes a commentator.
type EventCommentaryDetails struct {
	Languages       []string `json:"languages"`
	CommentaryTypes []string `json:"commentary_types"`
	EventsCovered   string   `json:"events_covered"`
}

func (*EventCommentaryDetails) ServiceType() ServiceType { return TypeEventCommentary }
func (*EventCommentaryDetails) PayloadKey() string       { return "eventCommentaryDetails" }
func (d *EventCommentaryDetails) bindings() []binding {
	return []binding{
		toggleField("languages", &d.Languages, true, "ar", "en", "fr"),
		toggleField("commentary_types", &d.CommentaryTypes, false, "live", "broadcast", "recorded"),
		integerField("events_covered", &d.EventsCovered, false, 0),
	}
}

// ConsultingServicesDetails describes a consultant.
type ConsultingServicesDetails struct {
	Areas       []string   `json:"consulting_areas"`
	SessionType string     `json:"session_type"`
	Packages    []ListItem `json:"packages"`
}

func (*ConsultingServicesDetails) ServiceType() ServiceType { return TypeConsultingServices }
func (*ConsultingServicesDetails) PayloadKey() string       { return "consultingServicesDetails" }
func (d *ConsultingServicesDetails) bindings() []binding {
	return []binding{
		toggleField("consulting_areas", &d.Areas, true, "stable_management", "breeding", "nutrition", "purchasing", "health"),
		selectField("session_type", &d.SessionType, true, "online", "onsite", "both"),
		listField("packages", &d.Packages, false, true),
	}
}

// PhotographyServicesDetails describes a photographer.
type PhotographyServicesDetails struct {
	PhotographyTypes []string   `json:"photography_types"`
	EquipmentAr      string     `json:"equipment_ar"`
	EquipmentEn      string     `json:"equipment_en"`
	DeliveryDays     string     `json:"delivery_days"`
	Packages         []ListItem `json:"packages"`
}

func (*PhotographyServicesDetails) ServiceType() ServiceType { return TypePhotographyServices }
func (*PhotographyServicesDetails) PayloadKey() string       { return "photographyServicesDetails" }
func (d *PhotographyServicesDetails) bindings() []binding {
	return []binding{
		toggleField("photography_types", &d.PhotographyTypes, true, "event", "portrait", "video", "drone"),
		textField("equipment_ar", &d.EquipmentAr, false),
		textField("equipment_en", &d.EquipmentEn, false),
		integerField("delivery_days", &d.DeliveryDays, false, 0),
		listField("packages", &d.Packages, false, true),
	}
}

// TransportDetails describes horse transport.
type TransportDetails struct {
	VehicleType       string   `json:"vehicle_type"`
	MaxLoad           string   `json:"maxLoad"`
	CoverageAreas     []string `json:"coverage_areas"`
	AirConditioned    bool     `json:"air_conditioned"`
	InsuranceIncluded bool     `json:"insurance_included"`
}

func (*TransportDetails) ServiceType() ServiceType { return TypeHorseTransport }
func (*TransportDetails) PayloadKey() string       { return "transportDetails" }
func (d *TransportDetails) bindings() []binding {
	return []binding{
		selectField("vehicle_type", &d.VehicleType, true, "trailer", "truck", "van"),
		integerField("maxLoad", &d.MaxLoad, true, 1),
		toggleField("coverage_areas", &d.CoverageAreas, false, "local", "national", "international"),
		boolField("air_conditioned", &d.AirConditioned),
		boolField("insurance_included", &d.InsuranceIncluded),
	}
}

// ContractorsDetails describes a contractor.
type ContractorsDetails struct {
	Services          []string   `json:"contractor_services"`
	ProjectsCompleted string     `json:"projects_completed"`
	Projects          []ListItem `json:"projects"`
}

func (*ContractorsDetails) ServiceType() ServiceType { return TypeContractors }
func (*ContractorsDetails) PayloadKey() string       { return "contractorsDetails" }
func (d *ContractorsDetails) bindings() []binding {
	return []binding{
		toggleField("contractor_services", &d.Services, true, "stable_construction", "arena_construction", "fencing", "irrigation", "maintenance"),
		integerField("projects_completed", &d.ProjectsCompleted, false, 0),
		listField("projects", &d.Projects, false, true),
	}
}

// SupplierDetails describes a supplier. Suppliers price per product, so the
// pricing step does not apply to them.
type SupplierDetails struct {
	Categories        []string   `json:"product_categories"`
	Products          []ListItem `json:"products"`
	DeliveryAvailable bool       `json:"delivery_available"`
}

func (*SupplierDetails) ServiceType() ServiceType { return TypeSuppliers }
func (*SupplierDetails) PayloadKey() string       { return "supplierDetails" }
func (d *SupplierDetails) bindings() []binding {
	return []binding{
		toggleField("product_categories", &d.Categories, true, "feed", "equipment", "tack", "supplements", "bedding", "medicine"),
		listField("products", &d.Products, true, true),
		boolField("delivery_available", &d.DeliveryAvailable),
	}
}

// CateringDetails describes event catering.
type CateringDetails struct {
	CuisineTypes []string   `json:"cuisine_types"`
	MinGuests    string     `json:"min_guests"`
	Menu         []ListItem `json:"menu"`
}

func (*CateringDetails) ServiceType() ServiceType { return TypeHorseCatering }
func (*CateringDetails) PayloadKey() string       { return "cateringDetails" }
func (d *CateringDetails) bindings() []binding {
	return []binding{
		toggleField("cuisine_types", &d.CuisineTypes, true, "arabic", "international", "snacks", "beverages"),
		integerField("min_guests", &d.MinGuests, false, 1),
		listField("menu", &d.Menu, false, true),
	}
}

// TripCoordinatorDetails describes an organised horse trip.
type TripCoordinatorDetails struct {
	TripType        string     `json:"trip_type"`
	DurationHours   string     `json:"duration_hours"`
	MaxParticipants string     `json:"max_participants"`
	Meals           []ListItem `json:"meals"`
	Benefits        []ListItem `json:"benefits"`
}

func (*TripCoordinatorDetails) ServiceType() ServiceType { return TypeTripCoordinator }
func (*TripCoordinatorDetails) PayloadKey() string       { return "tripCoordinator" }
func (d *TripCoordinatorDetails) bindings() []binding {
	return []binding{
		selectField("trip_type", &d.TripType, true, "desert", "beach", "mountain", "city"),
		numberField("duration_hours", &d.DurationHours, true),
		integerField("max_participants", &d.MaxParticipants, false, 1),
		listField("meals", &d.Meals, false, false),
		listField("benefits", &d.Benefits, false, false),
	}
}

// CatalogOnlyDetails is the variant of types without wizard fields. It is
// accepted by validation and contributes nothing to the document.
type CatalogOnlyDetails struct {
	Type ServiceType `json:"-"`
}

func (d *CatalogOnlyDetails) ServiceType() ServiceType { return d.Type }
func (*CatalogOnlyDetails) PayloadKey() string         { return "" }
func (*CatalogOnlyDetails) bindings() []binding        { return nil }

// NewDetails returns an empty variant for t. Unknown tags yield false.
func NewDetails(t ServiceType) (Details, bool) {
	switch t {
	case TypeHorseStable:
		return &HorseStableDetails{Facilities: []string{}, AdditionalServices: []ListItem{}}, true
	case TypeVeterinary:
		return &VeterinaryDetails{Specialties: []string{}, Services: []ListItem{}}, true
	case TypeCompetitions:
		return &CompetitionsDetails{EventTypes: []string{}, Prizes: []ListItem{}}, true
	case TypeHousing:
		return &HousingDetails{Amenities: []string{}, AdditionalServices: []ListItem{}}, true
	case TypeHorseTrainer:
		return &HorseTrainerDetails{TrainingTypes: []string{}, Programs: []ListItem{}}, true
	case TypeHoofTrimmer:
		return &HoofTrimmerDetails{Methods: []string{}, Services: []ListItem{}}, true
	case TypeHorseGrooming:
		return &HorseGroomingDetails{GroomingServices: []string{}, Packages: []ListItem{}}, true
	case TypeEventJudging:
		return &EventJudgingDetails{Disciplines: []string{}}, true
	case TypeMarketingPromotion:
		return &MarketingPromotionDetails{Channels: []string{}, Packages: []ListItem{}}, true
	case TypeEventCommentary:
		return &EventCommentaryDetails{Languages: []string{}, CommentaryTypes: []string{}}, true
	case TypeConsultingServices:
		return &ConsultingServicesDetails{Areas: []string{}, Packages: []ListItem{}}, true
	case TypePhotographyServices:
		return &PhotographyServicesDetails{PhotographyTypes: []string{}, Packages: []ListItem{}}, true
	case TypeHorseTransport:
		return &TransportDetails{CoverageAreas: []string{}}, true
	case TypeContractors:
		return &ContractorsDetails{Services: []string{}, Projects: []ListItem{}}, true
	case TypeSuppliers:
		return &SupplierDetails{Categories: []string{}, Products: []ListItem{}}, true
	case TypeHorseCatering:
		return &CateringDetails{CuisineTypes: []string{}, Menu: []ListItem{}}, true
	case TypeTripCoordinator:
		return &TripCoordinatorDetails{Meals: []ListItem{}, Benefits: []ListItem{}}, true
	case TypeHorseInsurance, TypeMaintenanceServices:
		return &CatalogOnlyDetails{Type: t}, true
	}
	return nil, false
}
