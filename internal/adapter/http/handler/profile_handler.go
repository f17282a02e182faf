package handler

import (
	"context"
	"net/http"

	"github.com/iho/exemptledger/internal/adapter/http/dto"
	"github.com/iho/exemptledger/internal/domain"
	"github.com/iho/exemptledger/internal/usecase"
)

// ProfileService defines the behavior needed by ProfileHandler.
type ProfileService interface {
	CreateProfile(ctx context.Context, input usecase.CreateProfileInput) (*domain.Profile, error)
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
}

// ProfileHandler handles profile-related HTTP requests.
type ProfileHandler struct {
	profileUC ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileUC ProfileService) *ProfileHandler {
	return &ProfileHandler{profileUC: profileUC}
}

// Create creates the caller's profile.
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req dto.CreateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	profile, err := h.profileUC.CreateProfile(r.Context(), req.ToUseCaseInput(uid))
	if err != nil {
		writeDomainError(w, "failed to create profile", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ProfileFromDomain(profile))
}

// Get returns the caller's profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	profile, err := h.profileUC.GetProfile(r.Context(), uid)
	if err != nil {
		writeDomainError(w, "failed to get profile", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ProfileFromDomain(profile))
}
