package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"horse_portal_backend/internal/auth"
	"horse_portal_backend/internal/contentstore"
	"horse_portal_backend/internal/dashboard/transport"
	"horse_portal_backend/internal/i18n"
	"horse_portal_backend/platform/apperr"
	"horse_portal_backend/platform/phone"
	"horse_portal_backend/platform/sanitize"
)

// Profile returns the user's profile.
func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (transport.ProfileResponse, error) {
	user, err := s.repo.Profile(ctx, userID)
	if err != nil {
		return transport.ProfileResponse{}, err
	}
	return mapProfile(user), nil
}

// UpdateProfile patches the bilingual names, phone and bio.
func (s *Service) UpdateProfile(ctx context.Context, tr i18n.Translator, userID uuid.UUID, req transport.UpdateProfileRequest) (transport.ProfileResponse, error) {
	user, err := s.repo.Profile(ctx, userID)
	if err != nil {
		return transport.ProfileResponse{}, err
	}

	set := map[string]any{}
	var unset []string
	if req.NameAr != nil {
		set["name_ar"] = sanitize.Text(*req.NameAr)
	}
	if req.NameEn != nil {
		set["name_en"] = sanitize.Text(*req.NameEn)
	}
	if req.Bio != nil {
		set["bio"] = sanitize.Text(*req.Bio)
	}
	if req.Phone != nil {
		raw := strings.TrimSpace(*req.Phone)
		switch {
		case raw == "":
			unset = append(unset, "phone")
		case !phone.IsValid(raw, s.region):
			msg := tr.T(i18n.MsgInvalidPhone)
			return transport.ProfileResponse{}, apperr.Validation(msg).WithDetails(map[string]string{"phone": msg})
		default:
			set["phone"] = phone.NormalizeE164(raw, s.region)
		}
	}
	if len(set) == 0 && len(unset) == 0 {
		return mapProfile(user), nil
	}

	updated, err := s.repo.Update(ctx, user.ID, set, unset...)
	if err != nil {
		return transport.ProfileResponse{}, err
	}
	return mapProfile(updated), nil
}

// ChangePassword forwards a password change to the auth API.
func (s *Service) ChangePassword(ctx context.Context, token string, req transport.ChangePasswordRequest) error {
	return s.accounts.ChangePassword(ctx, token, auth.ChangePasswordRequest{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
}

// DeleteAccount deletes the account at the auth API.
func (s *Service) DeleteAccount(ctx context.Context, userID uuid.UUID, token string, req transport.DeleteAccountRequest) error {
	if err := s.accounts.DeleteAccount(ctx, token, auth.DeleteAccountRequest{Password: req.Password}); err != nil {
		return err
	}
	s.log.WithUserID(userID.String()).Info("account deleted")
	return nil
}

// Logout ends the session at the auth API.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.accounts.Logout(ctx, token)
}

func mapProfile(d contentstore.Document) transport.ProfileResponse {
	return transport.ProfileResponse{
		ID:       d.ID,
		UserType: d.String("userType"),
		NameAr:   d.String("name_ar"),
		NameEn:   d.String("name_en"),
		Phone:    d.String("phone"),
		Email:    d.String("email"),
		Bio:      d.String("bio"),
		Stable:   d.RefID("stableRef"),
	}
}
