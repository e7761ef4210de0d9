package listings

import "github.com/google/uuid"

// OpenRequest is the query of POST /wizards/services.
type OpenRequest struct {
	ServiceID string `form:"serviceId" validate:"omitempty,uuid"`
}

// StageRequest is the non-file part of a media upload.
type StageRequest struct {
	Slot string `form:"slot" validate:"required,oneof=primary gallery"`
}

// NextResponse reports whether the step passed validation.
type NextResponse struct {
	View
	Valid bool `json:"valid"`
}

// SubmitResponse is returned after a successful submission.
type SubmitResponse struct {
	ServiceID uuid.UUID `json:"serviceId"`
	Redirect  string    `json:"redirect"`
}

// DashboardPath is where clients go after submitting.
const DashboardPath = "/dashboard"
