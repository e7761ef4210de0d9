// Package transport holds the request and response shapes of the dashboard.
package transport

import (
	"time"

	"github.com/google/uuid"
)

type OverviewResponse struct {
	Services     int  `json:"services"`
	Orders       int  `json:"orders"`
	Favorites    int  `json:"favorites"`
	Products     int  `json:"products"`
	Courses      int  `json:"courses"`
	Books        int  `json:"books"`
	Reservations int  `json:"reservations"`
	HasStable    bool `json:"hasStable"`
}

type ListOrdersRequest struct {
	Role   string `form:"role" validate:"omitempty,oneof=buyer provider"`
	Status string `form:"status" validate:"omitempty,oneof=pending accepted rejected completed cancelled"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected completed cancelled"`
}

type OrderResponse struct {
	ID         uuid.UUID `json:"id"`
	ServiceID  string    `json:"serviceId"`
	BuyerID    string    `json:"buyerId"`
	ProviderID string    `json:"providerId"`
	Status     string    `json:"status"`
	Price      string    `json:"price"`
	Currency   string    `json:"currency"`
	OrderDate  string    `json:"orderDate"`
	Paid       bool      `json:"paid"`
	Notes      string    `json:"notes,omitempty"`
}

type AddFavoriteRequest struct {
	ServiceID string `json:"serviceId" validate:"required,uuid"`
}

type FavoriteResponse struct {
	ID          uuid.UUID `json:"id"`
	ServiceID   string    `json:"serviceId"`
	ServiceType string    `json:"serviceType,omitempty"`
	NameAr      string    `json:"name_ar,omitempty"`
	NameEn      string    `json:"name_en,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CurrencyTotal struct {
	Currency string `json:"currency"`
	Total    string `json:"total"`
	Orders   int    `json:"orders"`
}

type BillingResponse struct {
	Orders []OrderResponse `json:"orders"`
	Totals []CurrencyTotal `json:"totals"`
}

type UpdateProfileRequest struct {
	NameAr *string `json:"name_ar,omitempty" validate:"omitempty,notblank,max=120"`
	NameEn *string `json:"name_en,omitempty" validate:"omitempty,notblank,max=120"`
	Phone  *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Bio    *string `json:"bio,omitempty" validate:"omitempty,max=2000"`
}

type ProfileResponse struct {
	ID       uuid.UUID `json:"id"`
	UserType string    `json:"userType"`
	NameAr   string    `json:"name_ar"`
	NameEn   string    `json:"name_en"`
	Phone    string    `json:"phone"`
	Email    string    `json:"email"`
	Bio      string    `json:"bio,omitempty"`
	Stable   string    `json:"stableId,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,nefield=CurrentPassword"`
}

type DeleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

type ReservationDecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
}

type ReservationResponse struct {
	ID        uuid.UUID `json:"id"`
	StableID  string    `json:"stableId"`
	UserID    string    `json:"userId"`
	HorseName string    `json:"horseName,omitempty"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
}

type StableResponse struct {
	ID           uuid.UUID             `json:"id"`
	NameAr       string                `json:"name_ar"`
	NameEn       string                `json:"name_en"`
	KindOfStable string                `json:"kindOfStable"`
	Approved     bool                  `json:"statusAdminApproved"`
	Reservations []ReservationResponse `json:"reservations"`
}

type ProductRequest struct {
	NameAr        string `json:"name_ar" validate:"required,notblank,max=200"`
	NameEn        string `json:"name_en" validate:"required,notblank,max=200"`
	DescriptionAr string `json:"description_ar" validate:"omitempty,max=5000"`
	DescriptionEn string `json:"description_en" validate:"omitempty,max=5000"`
	Price         string `json:"price" validate:"required,numeric"`
	Currency      string `json:"currency" validate:"omitempty,len=3,alpha"`
	Stock         *int   `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Category      string `json:"category" validate:"omitempty,max=100"`
}

type ProductResponse struct {
	ID            uuid.UUID `json:"id"`
	NameAr        string    `json:"name_ar"`
	NameEn        string    `json:"name_en"`
	DescriptionAr string    `json:"description_ar,omitempty"`
	DescriptionEn string    `json:"description_en,omitempty"`
	Price         string    `json:"price"`
	Currency      string    `json:"currency"`
	Stock         *int      `json:"stock,omitempty"`
	Category      string    `json:"category,omitempty"`
	ImageAssetID  string    `json:"imageAssetId,omitempty"`
}

type CourseRequest struct {
	TitleAr       string `json:"title_ar" validate:"required,notblank,max=200"`
	TitleEn       string `json:"title_en" validate:"required,notblank,max=200"`
	DescriptionAr string `json:"description_ar" validate:"omitempty,max=5000"`
	DescriptionEn string `json:"description_en" validate:"omitempty,max=5000"`
	Price         string `json:"price" validate:"required,numeric"`
	DurationHours string `json:"duration_hours" validate:"omitempty,numeric"`
	Level         string `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	StartDate     string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
}

type BookRequest struct {
	TitleAr       string `json:"title_ar" validate:"required,notblank,max=200"`
	TitleEn       string `json:"title_en" validate:"required,notblank,max=200"`
	Author        string `json:"author" validate:"required,notblank,max=200"`
	DescriptionAr string `json:"description_ar" validate:"omitempty,max=5000"`
	DescriptionEn string `json:"description_en" validate:"omitempty,max=5000"`
	Price         string `json:"price" validate:"required,numeric"`
	Pages         *int   `json:"pages,omitempty" validate:"omitempty,gte=1"`
	Language      string `json:"language" validate:"omitempty,oneof=ar en"`
}

// ItemResponse is a course or book. Fields mirrors the stored body.
type ItemResponse struct {
	ID        uuid.UUID      `json:"id"`
	Type      string         `json:"type"`
	Fields    map[string]any `json:"fields"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
